package cli

import (
	"fmt"
	"os"

	"github.com/mwantia/cardindex/internal/config"
	"github.com/mwantia/cardindex/pkg/db/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewSourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage configured card image sources",
		Long:  "List the configured card image sources or load source definitions from a YAML file.",
	}

	cmd.AddCommand(newSourcesListCommand())
	cmd.AddCommand(newSourcesLoadCommand())

	return cmd
}

func newSourcesListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			srcs, err := st.ListSources(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list sources: %w", err)
			}

			for _, src := range srcs {
				summary, err := st.SourceSummary(cmd.Context(), src.ID)
				if err != nil {
					return fmt.Errorf("failed to summarise source '%s': %w", src.Key, err)
				}

				fmt.Printf("[%d.] %s (%s, %s): %d total (%d cards, %d cardbacks, %d tokens), avg %d DPI\n",
					src.Ordinal, src.Name, src.Key, src.SourceType.Label(),
					summary.Total(), summary.Cards, summary.Cardbacks, summary.Tokens, summary.AvgDPI)
			}

			return nil
		},
	}

	return cmd
}

// sourceDefinition is the YAML shape accepted by `sources load`
type sourceDefinition struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	DriveID     string `yaml:"drive_id"`
	DriveLink   string `yaml:"drive_link"`
	Description string `yaml:"description"`
	Ordinal     int    `yaml:"ordinal"`
	SourceType  string `yaml:"source_type"`
}

func newSourcesLoadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load source definitions from a YAML file",
		Long:  "Load source definitions from a YAML file, creating new sources and updating existing ones by key.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read source file: %w", err)
			}

			var definitions []sourceDefinition
			if err := yaml.Unmarshal(data, &definitions); err != nil {
				return fmt.Errorf("failed to parse source file: %w", err)
			}

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, def := range definitions {
				if def.Key == "" || def.Name == "" || def.DriveID == "" {
					return fmt.Errorf("source definition requires key, name and drive_id: %+v", def)
				}

				sourceType := models.SourceType(def.SourceType)
				if def.SourceType == "" {
					sourceType = models.SourceTypeGoogleDrive
				}

				source := &models.Source{
					Key:         def.Key,
					Name:        def.Name,
					DriveID:     def.DriveID,
					DriveLink:   def.DriveLink,
					Description: def.Description,
					Ordinal:     def.Ordinal,
					SourceType:  sourceType,
				}

				if err := st.UpsertSource(cmd.Context(), source); err != nil {
					return fmt.Errorf("failed to upsert source '%s': %w", def.Key, err)
				}

				fmt.Printf("Loaded source %s (%s)\n", def.Key, def.Name)
			}

			return nil
		},
	}

	return cmd
}
