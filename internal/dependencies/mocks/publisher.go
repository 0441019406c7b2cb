package mocks

import (
	"sync"

	"github.com/mcoot/wordchain/internal/model"
)

// MockPublisher records published round events
type MockPublisher struct {
	mu     sync.Mutex
	Events []model.Event
}

// NewMockPublisher creates a new MockPublisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// Publish records the event
func (p *MockPublisher) Publish(event model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

// Types returns the types of all recorded events in order
func (p *MockPublisher) Types() []model.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]model.EventType, len(p.Events))
	for i, e := range p.Events {
		types[i] = e.Type
	}
	return types
}

// Last returns the most recent event of the given type, or nil
func (p *MockPublisher) Last(eventType model.EventType) *model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.Events) - 1; i >= 0; i-- {
		if p.Events[i].Type == eventType {
			e := p.Events[i]
			return &e
		}
	}
	return nil
}

// Reset clears recorded events
func (p *MockPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = nil
}
