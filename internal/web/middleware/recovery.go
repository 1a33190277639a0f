package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/battleship-go2/internal/middleware"
	"github.com/mcoot/battleship-go2/internal/web/templates/layout"
)

// Recovery creates panic recovery middleware for the web interface
// Returns an HTML error page on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

// RenderError writes a full error page with the given status
func RenderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = layout.ErrorPage(message).Render(r.Context(), w)
}
