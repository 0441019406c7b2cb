package factory

import (
	"time"

	"github.com/mcoot/wordchain/internal/dependencies/mocks"
	"github.com/mcoot/wordchain/internal/services/dictionary"
	"github.com/mcoot/wordchain/internal/services/round"
	"github.com/mcoot/wordchain/internal/storage/memory"
	"github.com/mcoot/wordchain/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	MockOracle *mocks.MockOracle
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The mock clock makes AI pacing instant.
func NewTestApp() *TestApp {
	store := memory.New()
	logger := testutil.NopLogger()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockOracle := mocks.NewMockOracle()

	app := newWithDependencies(store, dictionary.New(store, logger), mockOracle, mockClock, mockRandom, round.DefaultConfig(), logger)
	app.StorageType = StorageTypeMemory
	app.OracleType = "mock"

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		MockOracle: mockOracle,
	}
}
