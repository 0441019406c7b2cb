package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events [round-id]",
		Short: "Stream a round's events",
		Long: `Connect to the round's event stream and print events as they happen.

The first event is a snapshot of the round. After that:
  - round_started, round_restarted, round_ended
  - player_word_accepted, player_word_rejected
  - ai_thinking: the AI is looking for a word
  - ai_attempt_failed: the AI missed and lost a life
  - ai_word_played, ai_turn_failed

Press Ctrl+C to disconnect.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cfg.ResolveRound(args)
			if err != nil {
				return err
			}
			return streamEvents(id, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

// streamedEvent is the part of an event payload worth printing
type streamedEvent struct {
	Round   *Round      `json:"round"`
	Result  *TurnResult `json:"result"`
	Attempt int         `json:"attempt"`
}

func streamEvents(roundID string, jsonOutput bool) error {
	url := strings.TrimSuffix(cfg.ServerURL, "/") + roundPath(roundID, "/events")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// No timeout for SSE
	httpClient := &http.Client{}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if !jsonOutput {
		fmt.Printf("Connected to round %s\n", roundID)
	}

	scanner := bufio.NewScanner(resp.Body)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			currentEvent = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case line == "":
			if currentEvent != "" {
				printEvent(currentEvent, strings.Join(dataLines, "\n"), jsonOutput)
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	if err := scanner.Err(); err != nil {
		// Context cancellation is expected
		if ctx.Err() != nil {
			if !jsonOutput {
				fmt.Println("\nDisconnected")
			}
			return nil
		}
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Println("Disconnected")
	}
	return nil
}

func printEvent(event, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		jsonData, _ := json.Marshal(SSEEvent{Time: now, Event: event, Data: data})
		fmt.Println(string(jsonData))
		return
	}

	fmt.Printf("[%s] %s%s\n", now.Format("2006-01-02 15:04:05"), event, describeEvent(data))
}

// describeEvent renders the interesting part of an event payload
func describeEvent(data string) string {
	var evt streamedEvent
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		return ""
	}

	var parts []string
	if evt.Attempt > 0 {
		parts = append(parts, fmt.Sprintf("attempt %d", evt.Attempt))
	}
	if evt.Result != nil && evt.Result.Message != "" {
		parts = append(parts, evt.Result.Message)
	}
	if evt.Round != nil {
		parts = append(parts, fmt.Sprintf("lives %d/%d", evt.Round.PlayerLives, evt.Round.AILives))
	}
	if len(parts) == 0 {
		return ""
	}
	return ": " + strings.Join(parts, " | ")
}
