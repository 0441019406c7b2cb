package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Long: `Check that the server is up and its storage is reachable.

Exits non-zero if the server reports itself degraded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			if err := client.Get("/api/v1/health", &result); err != nil {
				return fmt.Errorf("server unhealthy: %w", err)
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
