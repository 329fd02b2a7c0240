package cli

import (
	"fmt"

	"github.com/mwantia/cardindex/internal/config"
	"github.com/mwantia/cardindex/internal/integrations"
	"github.com/spf13/cobra"
)

func NewDFCCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dfc",
		Short: "Manage double-faced card reference data",
	}

	cmd.AddCommand(newDFCUpdateCommand())

	return cmd
}

func newDFCUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Refresh DFC and meld pairs from the configured game integration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			game, err := integrations.ForName(cfg.Game)
			if err != nil {
				return err
			}

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			pairs, err := game.DFCPairs(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch DFC pairs: %w", err)
			}
			if err := st.ReplaceDFCPairs(cmd.Context(), pairs); err != nil {
				return fmt.Errorf("failed to store DFC pairs: %w", err)
			}

			melds, err := game.MeldPairs(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch meld pairs: %w", err)
			}
			if err := st.ReplaceMeldPairs(cmd.Context(), melds); err != nil {
				return fmt.Errorf("failed to store meld pairs: %w", err)
			}

			fmt.Printf("Updated %d DFC pair/s and %d meld pair/s\n", len(pairs), len(melds))
			return nil
		},
	}

	return cmd
}
