package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ChatConfig holds settings for the chat-completion oracle
type ChatConfig struct {
	APIKey string
	// BaseURL overrides the API endpoint (e.g. a proxy or a test server)
	BaseURL string
	Model   string
	// Timeout bounds a single completion request
	Timeout time.Duration

	ValidateMaxTokens int
	SuggestMaxTokens  int
}

// DefaultChatConfig returns sensible defaults for the chat oracle
func DefaultChatConfig() ChatConfig {
	return ChatConfig{
		Model:             openai.GPT3Dot5Turbo,
		Timeout:           15 * time.Second,
		ValidateMaxTokens: 5,
		SuggestMaxTokens:  10,
	}
}

// ChatOracle asks a chat-completion model about words
type ChatOracle struct {
	client *openai.Client
	cfg    ChatConfig
	logger *slog.Logger
}

// NewChatOracle creates a new ChatOracle
func NewChatOracle(cfg ChatConfig, logger *slog.Logger) *ChatOracle {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	return &ChatOracle{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
		logger: logger.With(slog.String("component", "chat-oracle")),
	}
}

// Ensure ChatOracle implements Oracle
var _ Oracle = (*ChatOracle)(nil)

// IsValidWord asks the model for a yes/no verdict
func (o *ChatOracle) IsValidWord(ctx context.Context, word string) bool {
	reply, err := o.complete(ctx, validationPrompt(word), o.cfg.ValidateMaxTokens)
	if err != nil {
		o.logger.Warn("word validation failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return false
	}

	valid := ParseVerdict(reply)
	o.logger.Debug("word validated",
		slog.String("word", word),
		slog.String("reply", reply),
		slog.Bool("valid", valid),
	)
	return valid
}

// SuggestWord asks the model for a word starting with prefix
func (o *ChatOracle) SuggestWord(ctx context.Context, prefix string, excluded []string) (string, bool) {
	reply, err := o.complete(ctx, suggestionPrompt(prefix, excluded), o.cfg.SuggestMaxTokens)
	if err != nil {
		o.logger.Warn("word suggestion failed",
			slog.String("prefix", prefix),
			slog.String("error", err.Error()),
		)
		return "", false
	}

	word, ok := ParseSuggestion(reply)
	o.logger.Debug("word suggested",
		slog.String("prefix", prefix),
		slog.String("reply", reply),
		slog.Bool("usable", ok),
	)
	return word, ok
}

// complete sends a single-message chat request and returns the reply text
func (o *ChatOracle) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in reply", ErrInvalidResponse)
	}

	return resp.Choices[0].Message.Content, nil
}

func validationPrompt(word string) string {
	return fmt.Sprintf(`Is "%s" a valid English word? Answer with "Yes" or "No" only.`, word)
}

func suggestionPrompt(prefix string, excluded []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Give one complete English word that begins exactly with "%s". `, prefix)
	fmt.Fprintf(&b, "It must have at least %d letters and must not be an abbreviation or a proper noun. ", MinSuggestionLength)
	if len(excluded) > 0 {
		fmt.Fprintf(&b, "Do not use any of these words: %s. ", strings.Join(excluded, ", "))
	}
	fmt.Fprintf(&b, `Reply with the word alone. If no such word exists, reply "%s".`, "Word not found")
	return b.String()
}
