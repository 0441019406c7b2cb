package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/wordchain/internal/api/response"
)

// Pinger checks that a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports server health
type HealthHandler struct {
	storageType string
	oracleType  string
	storage     Pinger // nil if the storage cannot be pinged
	logger      *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storageType, oracleType string, storage Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		storageType: storageType,
		oracleType:  oracleType,
		storage:     storage,
		logger:      logger,
	}
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := response.Health{
		Status:  "ok",
		Storage: h.storageType,
		Oracle:  h.oracleType,
	}

	if h.storage != nil {
		if err := h.storage.Ping(r.Context()); err != nil {
			h.logger.Warn("health check failed", slog.String("error", err.Error()))
			resp.Status = "degraded"
			response.JSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}

	response.JSON(w, http.StatusOK, resp)
}
