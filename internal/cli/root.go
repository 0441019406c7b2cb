package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "wordchain",
		Short: "Play the word chain game against an AI",
		Long: `wordchain is a CLI for the word chain game server.

Each word must start with the last two letters of the AI's previous word.
Invalid words and broken chains cost a life; the AI loses a life whenever
it cannot find a word. Run 'wordchain play' for an interactive game, or use
the individual commands to drive a round step by step.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.Verbose)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: WORDCHAIN_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.RoundFile, "round-file", cfg.RoundFile, "File remembering the current round (env: WORDCHAIN_ROUND_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newSayCmd())
	rootCmd.AddCommand(newGiveUpCmd())
	rootCmd.AddCommand(newRestartCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
