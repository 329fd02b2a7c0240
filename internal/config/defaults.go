package config

import "github.com/spf13/viper"

func GetDefault() BaseConfig {
	return BaseConfig{
		ShutdownTimeout: "10s",
		Game:            "MTG",

		Log: LogConfig{
			Level:      "INFO",
			TimeFormat: "2006-01-02 15:04:05",
			File:       "",
			NoColor:    false,
			JSON:       false,
			NoTerminal: false,
			Rotation: LogRotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
				Compress:   false,
			},
		},
		Database: DatabaseConfig{
			Path: "cardindex.db",
		},
		Drive: DriveConfig{
			Endpoint: "https://www.googleapis.com/drive/v3",
			APIKey:   "",
		},
		Sync: SyncConfig{
			Workers:      5,
			MaxImageSize: 30_000_000,
			LocalRoot:    "",
		},
		Agent: AgentConfig{
			Interval: "1h",
		},
	}
}

func setDefaults() {
	defaults := GetDefault()

	viper.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)
	viper.SetDefault("game", defaults.Game)

	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.time_format", defaults.Log.TimeFormat)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.no_color", defaults.Log.NoColor)
	viper.SetDefault("log.json", defaults.Log.JSON)
	viper.SetDefault("log.no_terminal", defaults.Log.NoTerminal)
	viper.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	viper.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	viper.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	viper.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)

	viper.SetDefault("database.path", defaults.Database.Path)

	viper.SetDefault("drive.endpoint", defaults.Drive.Endpoint)
	viper.SetDefault("drive.api_key", defaults.Drive.APIKey)

	viper.SetDefault("sync.workers", defaults.Sync.Workers)
	viper.SetDefault("sync.max_image_size", defaults.Sync.MaxImageSize)
	viper.SetDefault("sync.local_root", defaults.Sync.LocalRoot)

	viper.SetDefault("agent.interval", defaults.Agent.Interval)
}
