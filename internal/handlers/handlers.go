package handlers

import (
	"context"
	"net/http"

	"github.com/wutheringcup/echodraft/internal/auth"
	"github.com/wutheringcup/echodraft/internal/services"
	"github.com/wutheringcup/echodraft/internal/websocket"
)

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	HTTPLogging() bool
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Draft      services.DraftServicer
	Lifecycle  services.LifecycleServicer
	Bracket    services.BracketServicer
	Match      services.MatchServicer
	Player     services.PlayerServicer
	Resonator  services.ResonatorServicer
	Boss       services.BossServicer
	Tournament services.TournamentServicer
	User       services.UserServicer
	Sessions   *auth.Sessions
	Hub        *websocket.Hub
	Log        HTTPLogger
	BaseURL    string
}

// New creates a new Handlers instance with all dependencies
func New(
	draft services.DraftServicer,
	lifecycle services.LifecycleServicer,
	bracket services.BracketServicer,
	match services.MatchServicer,
	player services.PlayerServicer,
	resonator services.ResonatorServicer,
	boss services.BossServicer,
	tournament services.TournamentServicer,
	user services.UserServicer,
	sessions *auth.Sessions,
	hub *websocket.Hub,
	log HTTPLogger,
	baseURL string,
) *Handlers {
	return &Handlers{
		Draft:      draft,
		Lifecycle:  lifecycle,
		Bracket:    bracket,
		Match:      match,
		Player:     player,
		Resonator:  resonator,
		Boss:       boss,
		Tournament: tournament,
		User:       user,
		Sessions:   sessions,
		Hub:        hub,
		Log:        log,
		BaseURL:    baseURL,
	}
}

// NoopHTTPLogger is a test logger that never logs HTTP requests
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) HTTPLogging() bool { return false }

type contextKey string

const actorKey contextKey = "actor"

// withActor resolves the session cookie into a capability and stores it on
// the request context. Requests without a valid session get the zero-value
// observer capability, which can read public views but mutate nothing.
func (h *Handlers) withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := services.Actor{}
		if userID, ok := h.Sessions.ResolveRequest(r); ok {
			user, err := h.User.GetUser(r.Context(), userID)
			if err == nil {
				actor = services.Actor{UserID: user.ID, Role: user.Role, PlayerID: user.PlayerID}
			}
		}
		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth rejects requests whose actor has no account behind it
func (h *Handlers) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actorFrom(r).UserID == 0 {
			respondError(w, Unauthorized("Unauthorized - please log in"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// actorFrom returns the capability stored by withActor
func actorFrom(r *http.Request) services.Actor {
	actor, _ := r.Context().Value(actorKey).(services.Actor)
	return actor
}
