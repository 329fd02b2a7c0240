package config

// DatabaseConfig holds catalog store configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// DriveConfig holds Google Drive API access configuration
type DriveConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	APIKey   string `mapstructure:"api_key"  yaml:"api_key"`
}

// SyncConfig holds tunables for the source synchronization pipeline
type SyncConfig struct {
	Workers      int    `mapstructure:"workers"        yaml:"workers"`
	MaxImageSize int64  `mapstructure:"max_image_size" yaml:"max_image_size"`
	LocalRoot    string `mapstructure:"local_root"     yaml:"local_root"`
}

// AgentConfig holds settings for the long-running agent mode
type AgentConfig struct {
	Interval string `mapstructure:"interval" yaml:"interval"`
}
