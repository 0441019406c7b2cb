package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mcoot/wordchain/internal/model"
	"github.com/mcoot/wordchain/internal/storage"
)

// MinWordLength is the shortest entry IsValidWord accepts
const MinWordLength = 2

// Service holds the word list behind the offline oracle. Words are kept
// lowercase in one sorted slice so both lookups and prefix scans are
// binary searches.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu     sync.RWMutex
	words  []string
	loaded bool
}

func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "dictionary")),
	}
}

// LoadFromStorage installs the word list persisted by an earlier LoadFromFile
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	s.install(words)
	s.logger.Info("dictionary loaded from storage", slog.Int("word_count", s.WordCount()))
	return nil
}

// LoadFromFile reads a word list, persists it to storage and installs it
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	words, err := ParseWordList(f)
	if err != nil {
		return fmt.Errorf("read word list %s: %w", path, err)
	}

	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return fmt.Errorf("persist word list: %w", err)
	}
	s.install(words)

	s.logger.Info("dictionary loaded",
		slog.String("path", path),
		slog.Int("word_count", s.WordCount()),
	)
	return nil
}

// LoadWords installs words directly
func (s *Service) LoadWords(words []string) error {
	s.install(words)
	return nil
}

// ParseWordList reads one word per line. Blank lines and lines starting
// with '#' are skipped.
func ParseWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}

func (s *Service) install(words []string) {
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		normalized = append(normalized, strings.ToLower(w))
	}
	slices.Sort(normalized)
	normalized = slices.Compact(normalized)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = normalized
	s.loaded = true
}

// IsValidWord reports whether the word is listed, ignoring case
func (s *Service) IsValidWord(word string) bool {
	if utf8.RuneCountInString(word) < MinWordLength {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, found := slices.BinarySearch(s.words, strings.ToLower(word))
	return s.loaded && found
}

func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of distinct words
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// WordsWithPrefix returns the lowercase words starting with prefix
// (case-insensitive) in alphabetical order, or nil before loading.
func (s *Service) WordsWithPrefix(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil
	}

	prefix = strings.ToLower(prefix)
	start, _ := slices.BinarySearch(s.words, prefix)
	end := start
	for end < len(s.words) && strings.HasPrefix(s.words[end], prefix) {
		end++
	}
	return slices.Clone(s.words[start:end])
}

// ServiceInterface is the dictionary surface the oracle depends on
type ServiceInterface interface {
	IsValidWord(word string) bool
	IsLoaded() bool
	WordCount() int
	WordsWithPrefix(prefix string) []string
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadWords(words []string) error
}

var _ ServiceInterface = (*Service)(nil)

var ErrDictionaryNotLoaded = model.ErrDictionaryNotLoaded
