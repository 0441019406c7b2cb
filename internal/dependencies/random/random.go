package random

import (
	crand "crypto/rand"
	"math/rand/v2"
	"sync"
)

// Random picks round IDs and AI suggestions. Mocked in tests.
type Random interface {
	// Intn returns an int in [0, n), or 0 when n <= 0
	Intn(n int) int

	// String returns length characters drawn from alphabet
	String(length int, alphabet string) string
}

// Source is a ChaCha8 generator safe for concurrent use
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Source seeded from crypto/rand
func New() *Source {
	var seed [32]byte
	_, _ = crand.Read(seed[:])
	return NewSeeded(seed)
}

// NewSeeded returns a deterministic Source
func NewSeeded(seed [32]byte) *Source {
	return &Source{rng: rand.New(rand.NewChaCha8(seed))}
}

func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

func (s *Source) String(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	chars := []rune(alphabet)
	out := make([]rune, length)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range out {
		out[i] = chars[s.rng.IntN(len(chars))]
	}
	return string(out)
}
