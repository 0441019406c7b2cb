package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	RoundFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("WORDCHAIN_SERVER", "http://localhost:8080"),
		RoundFile: getEnvOrDefault("WORDCHAIN_ROUND_FILE", defaultRoundFile()),
		Output:    "text",
		Verbose:   false,
	}
}

// LoadRound returns the ID of the round last created or played, or "" if none
func (c *Config) LoadRound() (string, error) {
	data, err := os.ReadFile(c.RoundFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveRound remembers the current round so later commands can omit its ID
func (c *Config) SaveRound(id string) error {
	dir := filepath.Dir(c.RoundFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.RoundFile, []byte(id), 0600)
}

// ClearRound forgets the current round
func (c *Config) ClearRound() error {
	err := os.Remove(c.RoundFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ResolveRound picks the round a command acts on: the explicit argument if
// given, otherwise the saved current round
func (c *Config) ResolveRound(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	id, err := c.LoadRound()
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.New("no round given and no current round; run 'wordchain new' first")
	}
	return id, nil
}

// HistoryFile is where the interactive prompt keeps its line history
func (c *Config) HistoryFile() string {
	return filepath.Join(filepath.Dir(c.RoundFile), "history")
}

func defaultRoundFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wordchain/round"
	}
	return filepath.Join(home, ".wordchain", "round")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
