package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wutheringcup/echodraft/internal/auth"
	"github.com/wutheringcup/echodraft/internal/config"
	"github.com/wutheringcup/echodraft/internal/handlers"
	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/repository"
	"github.com/wutheringcup/echodraft/internal/services"
	"github.com/wutheringcup/echodraft/internal/websocket"
)

// App holds all application dependencies
type App struct {
	log      logger.Logger
	handlers *handlers.Handlers
	repo     *repository.Repository
}

// New creates and initializes a new application instance
func New(log logger.Logger, cfg config.Config) (*App, error) {
	repo, err := repository.New(cfg.DBPath, cfg.BusyTimeout)
	if err != nil {
		return nil, err
	}

	// WebSocket hub doubles as the notifier behind the match services.
	hub := websocket.New(log)
	hub.Start()

	draftService := services.NewDraftService(log, repo, hub)
	lifecycleService := services.NewLifecycleService(log, repo, hub)
	bracketService := services.NewBracketService(log, repo)
	matchService := services.NewMatchService(log, repo)
	playerService := services.NewPlayerService(log, repo)
	resonatorService := services.NewResonatorService(log, repo)
	bossService := services.NewBossService(log, repo)
	tournamentService := services.NewTournamentService(log, repo)
	userService := services.NewUserService(log, repo)

	sessions := auth.NewSessions(cfg.SessionTTL)

	h := handlers.New(
		draftService,
		lifecycleService,
		bracketService,
		matchService,
		playerService,
		resonatorService,
		bossService,
		tournamentService,
		userService,
		sessions,
		hub,
		log,
		cfg.BaseURL,
	)

	return &App{
		log:      log,
		handlers: h,
		repo:     repo,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Run starts the HTTP server
func (a *App) Run(addr string) error {
	a.log.Info("Server starting", "addr", addr)
	return http.ListenAndServe(addr, a.Router())
}

// Close releases app resources
func (a *App) Close() error {
	return a.repo.Close()
}
