package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return NewOutputTo(format, os.Stdout)
}

// NewOutputTo creates a new Output formatter writing to w
func NewOutputTo(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Round:
		o.printRound(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case TurnResult:
		o.printTurnResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Round response type (matches API)
type Round struct {
	ID               string   `json:"id"`
	PlayerLives      int      `json:"player_lives"`
	AILives          int      `json:"ai_lives"`
	PlayerWords      []string `json:"player_words"`
	AIWords          []string `json:"ai_words"`
	UsedWords        []string `json:"used_words"`
	LastOpponentWord string   `json:"last_opponent_word,omitempty"`
	RequiredPrefix   string   `json:"required_prefix,omitempty"`
	TurnOwner        string   `json:"turn_owner"`
	Phase            string   `json:"phase"`
	Version          int      `json:"version"`
}

// IsOver returns true once the round accepts no more words
func (r Round) IsOver() bool {
	return r.Phase != "" && r.Phase != "in_progress"
}

// TurnResult response type
type TurnResult struct {
	Outcome   string      `json:"outcome"`
	Word      string      `json:"word,omitempty"`
	Source    string      `json:"source"`
	Reason    string      `json:"reason,omitempty"`
	LivesLost int         `json:"lives_lost"`
	Attempts  int         `json:"attempts,omitempty"`
	Phase     string      `json:"phase"`
	Message   string      `json:"message"`
	AIReply   *TurnResult `json:"ai_reply,omitempty"`
}

// SubmitResult is the response to playing a word
type SubmitResult struct {
	Result TurnResult `json:"result"`
	Round  Round      `json:"round"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
	Oracle  string `json:"oracle,omitempty"`
}

func (o *Output) printRound(r Round) {
	fmt.Fprintf(o.w, "Round: %s\n", r.ID)
	fmt.Fprintf(o.w, "Phase: %s\n", phaseLabel(r.Phase))
	fmt.Fprintf(o.w, "Lives: you %d | AI %d\n", r.PlayerLives, r.AILives)
	if !r.IsOver() {
		fmt.Fprintf(o.w, "Turn: %s\n", r.TurnOwner)
	}

	if len(r.UsedWords) > 0 {
		fmt.Fprintf(o.w, "Used words: %s\n", strings.Join(r.UsedWords, ", "))
	}
	if r.RequiredPrefix != "" && !r.IsOver() {
		fmt.Fprintf(o.w, "AI played %q; your word must start with %q\n", r.LastOpponentWord, r.RequiredPrefix)
	}
}

func (o *Output) printTurnResult(t TurnResult) {
	fmt.Fprintln(o.w, t.Message)
	if t.AIReply != nil {
		o.printTurnResult(*t.AIReply)
	}
}

func (o *Output) printSubmitResult(s SubmitResult) {
	o.printTurnResult(s.Result)
	fmt.Fprintf(o.w, "Lives: you %d | AI %d\n", s.Round.PlayerLives, s.Round.AILives)
	if s.Round.RequiredPrefix != "" && !s.Round.IsOver() {
		fmt.Fprintf(o.w, "Next word must start with %q\n", s.Round.RequiredPrefix)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Storage != "" {
		fmt.Fprintf(o.w, "Storage: %s\n", h.Storage)
	}
	if h.Oracle != "" {
		fmt.Fprintf(o.w, "Oracle: %s\n", h.Oracle)
	}
}

func phaseLabel(phase string) string {
	switch phase {
	case "in_progress":
		return "in progress"
	case "player_won":
		return "you won"
	case "player_lost":
		return "you lost"
	case "player_gave_up":
		return "you gave up"
	default:
		return phase
	}
}
