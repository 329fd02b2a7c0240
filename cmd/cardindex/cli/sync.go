package cli

import (
	"fmt"

	"github.com/mwantia/cardindex/internal/config"
	"github.com/mwantia/cardindex/internal/sources"
	"github.com/mwantia/cardindex/pkg/log"
	"github.com/spf13/cobra"
)

func NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [source-key]",
		Short: "Synchronise the catalog against its remote sources",
		Long: `Synchronise the local card catalog against the configured remote sources.

Without arguments every configured source is updated, grouped by source
type. With a source key only that source is updated; an unknown key lists
the valid keys and fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			logger := log.NewLoggerService("cardindex", cfg.Log)

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			registry := sources.NewRegistry(cfg, logger)
			updater := sources.NewUpdater(st, registry, cfg.Sync.Workers, cfg.Sync.MaxImageSize, logger)

			if len(args) == 1 {
				return updater.SyncOne(cmd.Context(), args[0])
			}
			return updater.SyncAll(cmd.Context())
		},
	}

	return cmd
}
