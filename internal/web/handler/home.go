package handler

import (
	"net/http"

	"github.com/mcoot/wordchain/internal/model"
	"github.com/mcoot/wordchain/internal/services/round"
	"github.com/mcoot/wordchain/internal/web/middleware"
	"github.com/mcoot/wordchain/internal/web/views"
)

const lastRoundCookie = "wordchain_round"

// HomeHandler serves the landing page
type HomeHandler struct {
	controller *round.Controller
}

func NewHomeHandler(controller *round.Controller) *HomeHandler {
	return &HomeHandler{controller: controller}
}

// Home renders the rules and offers to resume the last round still in progress
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := views.HomeData{
		PageData: views.PageData{
			Title: "Home",
			Flash: middleware.GetFlash(r.Context()),
		},
	}

	if c, err := r.Cookie(lastRoundCookie); err == nil && c.Value != "" {
		rd, err := h.controller.GetRound(r.Context(), model.RoundID(c.Value))
		if err == nil && !rd.IsOver() {
			data.Resume = rd
		}
	}

	render(w, r, http.StatusOK, views.Home(data))
}

// rememberRound points the home page at the round being viewed
func rememberRound(w http.ResponseWriter, id model.RoundID) {
	http.SetCookie(w, &http.Cookie{
		Name:     lastRoundCookie,
		Value:    string(id),
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PanicPage answers a recovered panic with the error page
func PanicPage(w http.ResponseWriter, r *http.Request, _ any) {
	render(w, r, http.StatusInternalServerError,
		views.ErrorPage("Something went wrong", "The round could not be updated. Please try again."))
}
