package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new round and make it current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			round, err := client.CreateRound()
			if err != nil {
				return err
			}

			if err := cfg.SaveRound(round.ID); err != nil {
				return fmt.Errorf("failed to save current round: %w", err)
			}

			NewOutput(cfg.Output).Print(round)
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [round-id]",
		Short: "Show a round's state (defaults to the current round)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.ResolveRound(args)
			if err != nil {
				return err
			}

			round, err := client.GetRound(id)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(round)
			return nil
		},
	}
}

func newSayCmd() *cobra.Command {
	var roundID string

	cmd := &cobra.Command{
		Use:   "say <word>",
		Short: "Play a word and wait for the AI's reply",
		Long: `Play a word in the current round (or the one given with --round).

The word must start with the last two letters of the AI's previous word.
The command returns once the AI has replied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.ResolveRound([]string{roundID})
			if err != nil {
				return err
			}

			word := strings.TrimSpace(args[0])
			if word == "" {
				return fmt.Errorf("word must not be empty")
			}

			result, err := client.SubmitWord(id, word)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&roundID, "round", "", "Round ID (defaults to the current round)")

	return cmd
}

func newGiveUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "give-up [round-id]",
		Short: "Forfeit a round",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.ResolveRound(args)
			if err != nil {
				return err
			}

			round, err := client.GiveUp(id)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(round)
			return nil
		},
	}
}

func newRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart [round-id]",
		Short: "Reset a round to full lives and no words",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.ResolveRound(args)
			if err != nil {
				return err
			}

			round, err := client.Restart(id)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(round)
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [round-id]",
		Short: "Delete a round",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.ResolveRound(args)
			if err != nil {
				return err
			}

			if err := client.DeleteRound(id); err != nil {
				return err
			}

			current, err := cfg.LoadRound()
			if err == nil && current == id {
				_ = cfg.ClearRound()
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Deleted round %s", id))
			return nil
		},
	}
}
