package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.HTTPLogging() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(h.withActor)

	// Auth
	r.Post("/api/login", h.handleLogin)
	r.Post("/api/logout", h.handleLogout)
	r.Get("/api/me", h.handleCurrentUser)

	// Public read views
	r.Get("/api/leaderboards", h.handleLeaderboards)
	r.Get("/api/players", h.handleGetPlayers)
	r.Get("/api/players/{id}", h.handleGetPlayer)
	r.Get("/api/players/{id}/matches", h.handlePlayerMatches)
	r.Get("/api/resonators", h.handleGetResonators)
	r.Get("/api/bosses", h.handleGetBosses)
	r.Get("/api/tournaments", h.handleGetTournaments)
	r.Get("/api/tournaments/{id}", h.handleGetTournament)
	r.Get("/api/tournaments/{id}/matches", h.handleTournamentMatches)
	r.Get("/api/tournaments/{id}/roster", h.handleGetRoster)
	r.Get("/api/matches/{id}", h.handleGetMatch)
	r.Get("/api/matches/{id}/qr", h.handleMatchQR)
	r.Get("/api/matches/{id}/draft", h.handleDraftView)
	r.Get("/api/matches/{id}/draft/catalog", h.handleDraftCatalog)

	// WebSocket
	r.Get("/ws/matches/{id}", h.handleMatchSocket)

	// Authenticated API
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		// Draft
		r.Post("/api/matches/{id}/draft/actions", h.handleDraftAction)
		r.Post("/api/matches/{id}/draft/reset", h.handleDraftReset)

		// Match lifecycle
		r.Post("/api/matches/{id}/start", h.handleStartMatch)
		r.Post("/api/matches/{id}/time", h.handleSubmitTime)
		r.Post("/api/matches/{id}/finish", h.handleFinishMatch)

		// Matches and bracket
		r.Post("/api/matches", h.handleCreateMatch)
		r.Post("/api/tournaments/{id}/bracket", h.handleGenerateBracket)

		// Roster
		r.Put("/api/tournaments/{id}/roster", h.handleSetRoster)

		// Players
		r.Post("/api/players", h.handleCreatePlayer)
		r.Put("/api/players/{id}", h.handleUpdatePlayer)
		r.Delete("/api/players/{id}", h.handleDeletePlayer)

		// Resonators
		r.Post("/api/resonators", h.handleCreateResonator)
		r.Put("/api/resonators/{id}", h.handleUpdateResonator)
		r.Delete("/api/resonators/{id}", h.handleDeleteResonator)

		// Bosses
		r.Post("/api/bosses", h.handleCreateBoss)
		r.Put("/api/bosses/{id}", h.handleUpdateBoss)
		r.Delete("/api/bosses/{id}", h.handleDeleteBoss)

		// Tournaments
		r.Post("/api/tournaments", h.handleCreateTournament)
		r.Put("/api/tournaments/{id}", h.handleUpdateTournament)
		r.Delete("/api/tournaments/{id}", h.handleDeleteTournament)

		// Accounts
		r.Post("/api/users", h.handleCreateUser)
	})

	return r
}

// handleMatchSocket subscribes the connection to one match's events
func (h *Handlers) handleMatchSocket(w http.ResponseWriter, r *http.Request) {
	matchID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	h.Hub.ServeWs(w, r, matchID)
}
