package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/wordchain/internal/api/response"
	"github.com/mcoot/wordchain/internal/model"
)

// EventSnapshot is sent once when a client connects, carrying the current round
const EventSnapshot model.EventType = "snapshot"

// Broadcaster publishes round events to the round's SSE clients
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends the event to every client watching its round. Events for
// rounds nobody is watching are dropped.
func (b *Broadcaster) Publish(event model.Event) {
	hub := b.hubManager.GetHub(event.RoundID)
	if hub == nil {
		return
	}

	msg, err := encodeEvent(event)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("round_id", string(event.RoundID)),
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}
	hub.Broadcast(msg)
}

func encodeEvent(event model.Event) ([]byte, error) {
	data, err := json.Marshal(response.EventFromModel(event))
	if err != nil {
		return nil, err
	}
	return formatSSEMessage(string(event.Type), string(data)), nil
}
