package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordchain/internal/api/apierr"
	"github.com/mcoot/wordchain/internal/api/request"
	"github.com/mcoot/wordchain/internal/api/response"
	"github.com/mcoot/wordchain/internal/api/sse"
	"github.com/mcoot/wordchain/internal/model"
	"github.com/mcoot/wordchain/internal/services/round"
)

// RoundHandler handles round endpoints
type RoundHandler struct {
	controller *round.Controller
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewRoundHandler creates a new round handler
func NewRoundHandler(controller *round.Controller, hubManager *sse.HubManager, logger *slog.Logger) *RoundHandler {
	return &RoundHandler{
		controller: controller,
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "round-handler")),
	}
}

func roundID(r *http.Request) model.RoundID {
	return model.RoundID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/rounds
func (h *RoundHandler) Create(w http.ResponseWriter, r *http.Request) {
	rd, err := h.controller.CreateRound(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/rounds/"+string(rd.ID), response.RoundFromModel(rd))
}

// Get handles GET /api/v1/rounds/{id}
func (h *RoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	rd, err := h.controller.GetRound(r.Context(), roundID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundFromModel(rd))
}

// Submit handles POST /api/v1/rounds/{id}/words.
// Rule rejections are normal results, not errors.
func (h *RoundHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	word := strings.TrimSpace(req.Word)
	if word == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("word is required"))
		return
	}

	result, rd, err := h.controller.SubmitPlayerWord(r.Context(), roundID(r), word)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitResponse{
		Result: response.TurnResultFromModel(result),
		Round:  response.RoundFromModel(rd),
	})
}

// GiveUp handles POST /api/v1/rounds/{id}/give-up
func (h *RoundHandler) GiveUp(w http.ResponseWriter, r *http.Request) {
	rd, err := h.controller.GiveUp(r.Context(), roundID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundFromModel(rd))
}

// Restart handles POST /api/v1/rounds/{id}/restart
func (h *RoundHandler) Restart(w http.ResponseWriter, r *http.Request) {
	rd, err := h.controller.Restart(r.Context(), roundID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundFromModel(rd))
}

// Delete handles DELETE /api/v1/rounds/{id}
func (h *RoundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := roundID(r)
	if err := h.controller.DeleteRound(r.Context(), id); err != nil {
		apierr.WriteError(w, err)
		return
	}

	// Disconnect anyone still watching the round
	h.hubManager.RemoveHub(id)
	response.NoContent(w)
}

// Events handles GET /api/v1/rounds/{id}/events
func (h *RoundHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := roundID(r)
	rd, err := h.controller.GetRound(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(id), rd)
}
