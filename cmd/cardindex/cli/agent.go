package cli

import (
	"fmt"

	"github.com/mwantia/cardindex/internal/agent"
	"github.com/mwantia/cardindex/internal/config"
	"github.com/spf13/cobra"
)

func NewAgentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Run the CardIndex sync agent",
		Long:  "Run the CardIndex sync agent, re-synchronising all sources on a configured interval until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			agent := agent.NewAgent(cfg)
			if err := agent.Serve(cmd.Context()); err != nil {
				return err
			}

			return nil
		},
	}

	return cmd
}
