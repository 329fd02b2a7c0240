package cli

import (
	"errors"
	"fmt"

	"github.com/mwantia/cardindex/internal/config"
	"github.com/mwantia/cardindex/internal/integrations"
	"github.com/mwantia/cardindex/pkg/log"
	"github.com/spf13/cobra"

	// Register the available game integrations
	_ "github.com/mwantia/cardindex/internal/integrations/mtg"
)

func NewImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <url>",
		Short: "Import a decklist from a deck-building site",
		Long: `Import a decklist from a supported deck-building site and print it as a
normalized plain-text card list, one "<qty> <name>" line per distinct card.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			logger := log.NewLoggerService("cardindex", cfg.Log)

			game, err := integrations.ForName(cfg.Game)
			if err != nil {
				return err
			}

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			pairs, err := st.ListDFCPairs(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load DFC pairs: %w", err)
			}

			resolver := integrations.NewResolver(game, pairs, logger)

			decklist, err := resolver.QueryImportSite(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, integrations.ErrUnsupportedDeckSite) {
					return fmt.Errorf("unsupported deck site: %w", err)
				}
				return err
			}

			fmt.Println(decklist)
			return nil
		},
	}

	return cmd
}
