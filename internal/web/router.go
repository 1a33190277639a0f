package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship-go2/internal/services/auth"
	"github.com/mcoot/battleship-go2/internal/services/game"
	"github.com/mcoot/battleship-go2/internal/web/handler"
	"github.com/mcoot/battleship-go2/internal/web/middleware"
	"github.com/mcoot/battleship-go2/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	SessionDuration time.Duration
	GameController  game.ControllerInterface
	HubManager      *sse.HubManager
	StaticDir       string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	activeGameMiddleware := middleware.ActiveGame(cfg.GameController)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	homeHandler := handler.NewHomeHandler()
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.SessionDuration, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.GameController, hubManager, cfg.Logger)

	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (optional auth for showing player info in nav)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.Use(activeGameMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)

	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.Use(flashMiddleware)
	authRoutes.HandleFunc("/guest", authHandler.CreateGuest).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes (require auth)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)

	protected.HandleFunc("/game", gameHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/game/{id}", gameHandler.View).Methods(http.MethodGet)
	protected.HandleFunc("/game/{id}/select", gameHandler.Select).Methods(http.MethodPost)
	protected.HandleFunc("/game/{id}/rotate", gameHandler.Rotate).Methods(http.MethodPost)
	protected.HandleFunc("/game/{id}/cell", gameHandler.Cell).Methods(http.MethodPost)
	protected.HandleFunc("/game/{id}/auto-place", gameHandler.AutoPlace).Methods(http.MethodPost)
	protected.HandleFunc("/game/{id}/reset", gameHandler.Reset).Methods(http.MethodPost)
	protected.HandleFunc("/game/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	return r
}
