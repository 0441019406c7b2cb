package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordchain/internal/api/response"
	"github.com/mcoot/wordchain/internal/api/sse"
	"github.com/mcoot/wordchain/internal/model"
	"github.com/mcoot/wordchain/internal/services/round"
	"github.com/mcoot/wordchain/internal/web/middleware"
	"github.com/mcoot/wordchain/internal/web/views"
)

// RoundHandler serves the play pages
type RoundHandler struct {
	controller *round.Controller
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewRoundHandler creates a new RoundHandler
func NewRoundHandler(controller *round.Controller, hubManager *sse.HubManager, logger *slog.Logger) *RoundHandler {
	return &RoundHandler{
		controller: controller,
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "web-round-handler")),
	}
}

func roundPath(id model.RoundID) string {
	return "/play/" + string(id)
}

// Create starts a round and sends the browser to it
func (h *RoundHandler) Create(w http.ResponseWriter, r *http.Request) {
	rd, err := h.controller.CreateRound(r.Context())
	if err != nil {
		h.logger.Error("failed to create round", slog.String("error", err.Error()))
		middleware.SetFlash(w, "error", "Could not start a round. Please try again.")
		redirect(w, r, "/")
		return
	}

	redirect(w, r, roundPath(rd.ID))
}

// View renders a round
func (h *RoundHandler) View(w http.ResponseWriter, r *http.Request) {
	id := model.RoundID(mux.Vars(r)["id"])

	rd, err := h.controller.GetRound(r.Context(), id)
	if err != nil {
		h.roundError(w, r, id, err)
		return
	}

	rememberRound(w, rd.ID)
	render(w, r, http.StatusOK, views.RoundPage(views.RoundData{
		PageData: views.PageData{
			Title: "Round " + string(rd.ID),
			Flash: middleware.GetFlash(r.Context()),
		},
		Round: rd,
	}))
}

// Word plays the submitted word and shows the feedback on the round page
func (h *RoundHandler) Word(w http.ResponseWriter, r *http.Request) {
	id := model.RoundID(mux.Vars(r)["id"])

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		redirect(w, r, roundPath(id))
		return
	}

	word := strings.TrimSpace(r.FormValue("word"))
	if word == "" {
		middleware.SetFlash(w, "error", "Please enter a word")
		redirect(w, r, roundPath(id))
		return
	}

	result, _, err := h.controller.SubmitPlayerWord(r.Context(), id, word)
	if err != nil {
		h.roundError(w, r, id, err)
		return
	}

	middleware.SetFlash(w, flashType(result), feedback(result))
	redirect(w, r, roundPath(id))
}

// GiveUp forfeits the round
func (h *RoundHandler) GiveUp(w http.ResponseWriter, r *http.Request) {
	id := model.RoundID(mux.Vars(r)["id"])

	if _, err := h.controller.GiveUp(r.Context(), id); err != nil {
		h.roundError(w, r, id, err)
		return
	}

	middleware.SetFlash(w, "info", "You gave up.")
	redirect(w, r, roundPath(id))
}

// Restart resets the round
func (h *RoundHandler) Restart(w http.ResponseWriter, r *http.Request) {
	id := model.RoundID(mux.Vars(r)["id"])

	if _, err := h.controller.Restart(r.Context(), id); err != nil {
		h.roundError(w, r, id, err)
		return
	}

	middleware.SetFlash(w, "info", "Round restarted. Play any word.")
	redirect(w, r, roundPath(id))
}

// Events streams the round's events to the page
func (h *RoundHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := model.RoundID(mux.Vars(r)["id"])

	rd, err := h.controller.GetRound(r.Context(), id)
	if err != nil {
		http.Error(w, "Round not found", http.StatusNotFound)
		return
	}

	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(id), rd)
}

func (h *RoundHandler) roundError(w http.ResponseWriter, r *http.Request, id model.RoundID, err error) {
	switch {
	case errors.Is(err, model.ErrRoundNotFound):
		middleware.SetFlash(w, "error", "Round not found")
		redirect(w, r, "/")
	case errors.Is(err, model.ErrRoundOver):
		middleware.SetFlash(w, "info", "The round is over. Restart to play again.")
		redirect(w, r, roundPath(id))
	case errors.Is(err, model.ErrNotPlayerTurn), errors.Is(err, model.ErrStaleTurn):
		middleware.SetFlash(w, "info", "The round changed while your word was being judged.")
		redirect(w, r, roundPath(id))
	default:
		h.logger.Error("round request failed",
			slog.String("round_id", string(id)),
			slog.String("error", err.Error()),
		)
		middleware.SetFlash(w, "error", "Something went wrong. Please try again.")
		redirect(w, r, roundPath(id))
	}
}

// feedback joins the player's line with the AI's reply, if any
func feedback(result *model.TurnResult) string {
	msg := response.FeedbackMessage(result)
	if result.AIReply != nil {
		msg += " " + response.FeedbackMessage(result.AIReply)
	}
	return msg
}

func flashType(result *model.TurnResult) string {
	switch {
	case result.Outcome == model.OutcomeRejected:
		return "error"
	case result.AIReply != nil && result.AIReply.Outcome == model.OutcomeAIDefeated:
		return "success"
	default:
		return "info"
	}
}
