package mocks

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/wordchain/internal/services/oracle"
)

// SuggestCall records one SuggestWord invocation
type SuggestCall struct {
	Prefix   string
	Excluded []string
}

// MockOracle is a scripted Oracle for testing
type MockOracle struct {
	mu sync.Mutex

	// Verdicts maps words to IsValidWord answers; unknown words are invalid
	Verdicts map[string]bool

	// Suggestions is a queue of SuggestWord answers. An empty string means
	// "no word found". Once drained, SuggestWord finds nothing.
	Suggestions []string

	// BeforeValidate and BeforeSuggest, if set, run before the answer is
	// returned. Tests use them to change the round while the oracle "thinks".
	BeforeValidate func(word string)
	BeforeSuggest  func(call SuggestCall)

	ValidateCalls []string
	SuggestCalls  []SuggestCall
}

// Ensure MockOracle implements Oracle
var _ oracle.Oracle = (*MockOracle)(nil)

// NewMockOracle creates a MockOracle with no known words
func NewMockOracle() *MockOracle {
	return &MockOracle{Verdicts: make(map[string]bool)}
}

// IsValidWord returns the scripted verdict for word
func (o *MockOracle) IsValidWord(ctx context.Context, word string) bool {
	o.mu.Lock()
	o.ValidateCalls = append(o.ValidateCalls, word)
	hook := o.BeforeValidate
	valid := o.Verdicts[word]
	o.mu.Unlock()

	if hook != nil {
		hook(word)
	}
	return valid
}

// SuggestWord returns the next queued suggestion
func (o *MockOracle) SuggestWord(ctx context.Context, prefix string, excluded []string) (string, bool) {
	o.mu.Lock()
	call := SuggestCall{Prefix: prefix, Excluded: slices.Clone(excluded)}
	o.SuggestCalls = append(o.SuggestCalls, call)
	hook := o.BeforeSuggest

	word := ""
	if len(o.Suggestions) > 0 {
		word = o.Suggestions[0]
		o.Suggestions = o.Suggestions[1:]
	}
	o.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	if word == "" {
		return "", false
	}
	return word, true
}

// Allow marks words as valid
func (o *MockOracle) Allow(words ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, w := range words {
		o.Verdicts[w] = true
	}
}

// QueueSuggestions appends answers to the suggestion queue
func (o *MockOracle) QueueSuggestions(words ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Suggestions = append(o.Suggestions, words...)
}

// SuggestCallCount returns how many times SuggestWord was called
func (o *MockOracle) SuggestCallCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.SuggestCalls)
}

// ValidateCallCount returns how many times IsValidWord was called
func (o *MockOracle) ValidateCallCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.ValidateCalls)
}

// LastSuggestCall returns the most recent SuggestWord call
func (o *MockOracle) LastSuggestCall() SuggestCall {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.SuggestCalls) == 0 {
		return SuggestCall{}
	}
	return o.SuggestCalls[len(o.SuggestCalls)-1]
}

// Reset clears scripted answers and recorded calls
func (o *MockOracle) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Verdicts = make(map[string]bool)
	o.Suggestions = nil
	o.BeforeValidate = nil
	o.BeforeSuggest = nil
	o.ValidateCalls = nil
	o.SuggestCalls = nil
}
