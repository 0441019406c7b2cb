package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

const playHelp = `Type a word to play it. Commands:
  /state     show the round
  /give-up   forfeit the round
  /restart   start the round over
  /new       start a fresh round
  /quit      leave (the round is kept)`

func newPlayCmd() *cobra.Command {
	var fresh bool

	cmd := &cobra.Command{
		Use:   "play [round-id]",
		Short: "Play interactively",
		Long: `Play a round at an interactive prompt.

Resumes the current round unless a round ID or --new is given.
` + playHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if !fresh {
				resolved, err := cfg.ResolveRound(args)
				if err == nil {
					id = resolved
				}
			}
			return runPlay(id)
		},
	}

	cmd.Flags().BoolVar(&fresh, "new", false, "Start a new round instead of resuming")

	return cmd
}

// playSession holds the state of one interactive session
type playSession struct {
	config *Config
	client *Client
	out    *Output
	round  Round
}

// start resumes round id, or creates a new round if id is empty or gone
func (s *playSession) start(id string) error {
	if id != "" {
		round, err := s.client.GetRound(id)
		if err == nil {
			s.round = round
			return nil
		}
		s.out.PrintMessage(fmt.Sprintf("Could not resume round %s: %s", id, err))
	}
	return s.newRound()
}

func (s *playSession) newRound() error {
	round, err := s.client.CreateRound()
	if err != nil {
		return err
	}
	s.round = round
	if err := s.config.SaveRound(round.ID); err != nil {
		return fmt.Errorf("failed to save current round: %w", err)
	}
	s.out.PrintMessage(fmt.Sprintf("New round %s. You have %d lives, the AI has %d.", round.ID, round.PlayerLives, round.AILives))
	return nil
}

// handle processes one line of input. It returns true when the session should end.
func (s *playSession) handle(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	switch strings.ToLower(line) {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		s.out.PrintMessage(playHelp)
		return false, nil
	case "/state":
		round, err := s.client.GetRound(s.round.ID)
		if err != nil {
			return false, err
		}
		s.round = round
		s.out.Print(round)
		return false, nil
	case "/give-up":
		round, err := s.client.GiveUp(s.round.ID)
		if err != nil {
			return false, err
		}
		s.round = round
		s.out.PrintMessage("You gave up. Type /restart to play again.")
		return false, nil
	case "/restart":
		round, err := s.client.Restart(s.round.ID)
		if err != nil {
			return false, err
		}
		s.round = round
		s.out.PrintMessage("Round restarted. Play any word.")
		return false, nil
	case "/new":
		return false, s.newRound()
	}

	if strings.HasPrefix(line, "/") {
		s.out.PrintMessage("Unknown command. Type /help for help.")
		return false, nil
	}

	if s.round.IsOver() {
		s.out.PrintMessage("The round is over. Type /restart or /new to play again.")
		return false, nil
	}

	result, err := s.client.SubmitWord(s.round.ID, line)
	if err != nil {
		return false, err
	}
	s.round = result.Round
	s.out.Print(result)
	if s.round.IsOver() {
		s.out.PrintMessage("Type /restart or /new to play again, or /quit to leave.")
	}
	return false, nil
}

// prompt shows the prefix the next word needs, if any
func (s *playSession) prompt() string {
	if s.round.IsOver() {
		return "(over) » "
	}
	if s.round.RequiredPrefix != "" {
		return fmt.Sprintf("%s… » ", s.round.RequiredPrefix)
	}
	return "» "
}

func runPlay(roundID string) error {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("/state"),
		readline.PcItem("/give-up"),
		readline.PcItem("/restart"),
		readline.PcItem("/new"),
		readline.PcItem("/help"),
		readline.PcItem("/quit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "» ",
		HistoryFile:     cfg.HistoryFile(),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "/quit",
	})
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	session := &playSession{
		config: cfg,
		client: client,
		out:    NewOutputTo(cfg.Output, rl.Stdout()),
	}
	if err := session.start(roundID); err != nil {
		return err
	}
	session.out.PrintMessage(playHelp)

	for {
		rl.SetPrompt(session.prompt())

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := session.handle(line)
		if err != nil {
			session.out.PrintError(err)
			continue
		}
		if quit {
			return nil
		}
	}
}
