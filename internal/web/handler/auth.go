package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/auth"
	"github.com/mcoot/battleship-go2/internal/web/middleware"
)

// AuthHandler handles guest sign-in and sign-out
type AuthHandler struct {
	authService     *auth.Service
	sessionDuration time.Duration
	logger          *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, sessionDuration time.Duration, logger *slog.Logger) *AuthHandler {
	if sessionDuration <= 0 {
		sessionDuration = auth.DefaultConfig().SessionDuration
	}
	return &AuthHandler{
		authService:     authService,
		sessionDuration: sessionDuration,
		logger:          logger.With(slog.String("component", "web-auth")),
	}
}

// CreateGuest handles guest player creation
func (h *AuthHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	next := r.FormValue("next")
	session, err := h.authService.CreateGuestPlayer(r.Context(), r.FormValue("display_name"))
	if err != nil {
		message := "Failed to create guest player"
		if errors.Is(err, model.ErrInvalidDisplayName) {
			message = "Display name must be 1 to 32 characters"
		} else {
			h.logger.Error("guest sign-in failed", slog.String("error", err.Error()))
		}
		middleware.SetFlash(w, "error", message)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetSessionCookie(w, session.Token, int(h.sessionDuration.Seconds()))
	middleware.SetFlash(w, "success", "Welcome aboard, "+session.Player.DisplayName+"!")

	// Only same-site paths are followed
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		h.authService.InvalidateSession(token)
	}
	middleware.ClearSessionCookie(w)
	middleware.SetFlash(w, "info", "You have been signed out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
