package services

import (
	"context"

	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository"
)

// Notifier fans out match change events to connected observers.
// Implementations are fire-and-forget and at-least-once: emission happens
// after the storage transaction commits, and a failed notification never
// rolls back state.
type Notifier interface {
	NotifyDraftChanged(matchID int64)
	NotifyPageChanged(matchID int64)
}

// DraftServicer defines the draft state machine operations
type DraftServicer interface {
	SubmitAction(ctx context.Context, actor Actor, matchID int64, side models.Side, actionType models.ActionType, resonatorID int64) (*DraftView, error)
	ResetDraft(ctx context.Context, actor Actor, matchID int64) error
	AvailableFor(ctx context.Context, matchID int64, side models.Side, actionType models.ActionType, allowReselect bool) ([]models.Resonator, error)
	View(ctx context.Context, actor Actor, matchID int64) (*DraftView, error)
}

// LifecycleServicer defines match start/finish operations
type LifecycleServicer interface {
	Start(ctx context.Context, actor Actor, matchID int64) (*models.Match, error)
	SubmitTime(ctx context.Context, actor Actor, matchID int64, side models.Side, timeInput string) (*models.Match, error)
	Finish(ctx context.Context, actor Actor, matchID int64) (*models.Match, error)
}

// BracketServicer defines bracket generation
type BracketServicer interface {
	Generate(ctx context.Context, actor Actor, tournamentID int64, seed *int64, overwrite bool) ([]models.Match, error)
}

// MatchServicer defines match CRUD and views
type MatchServicer interface {
	GetMatch(ctx context.Context, id int64) (*MatchDetail, error)
	CreateMatch(ctx context.Context, actor Actor, req MatchCreate) (*models.Match, error)
	ListForTournament(ctx context.Context, tournamentID int64) ([]models.Match, error)
	ListForPlayer(ctx context.Context, playerID int64) ([]models.Match, error)
}

// PlayerServicer defines player roster operations
type PlayerServicer interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	GetPlayer(ctx context.Context, id int64) (*models.Player, error)
	CreatePlayer(ctx context.Context, actor Actor, displayName string) (int64, error)
	UpdatePlayer(ctx context.Context, actor Actor, id int64, displayName string) error
	DeletePlayer(ctx context.Context, actor Actor, id int64) error
}

// ResonatorServicer defines champion catalog operations
type ResonatorServicer interface {
	ListResonators(ctx context.Context) ([]models.Resonator, error)
	CreateResonator(ctx context.Context, actor Actor, res ResonatorInput) (int64, error)
	UpdateResonator(ctx context.Context, actor Actor, id int64, res ResonatorInput) error
	DeleteResonator(ctx context.Context, actor Actor, id int64) error
}

// BossServicer defines boss and leaderboard operations
type BossServicer interface {
	ListBosses(ctx context.Context) ([]models.Boss, error)
	CreateBoss(ctx context.Context, actor Actor, name string) (int64, error)
	UpdateBoss(ctx context.Context, actor Actor, id int64, name string) error
	DeleteBoss(ctx context.Context, actor Actor, id int64) error
	Leaderboards(ctx context.Context) ([]BossLeaderboard, error)
}

// TournamentServicer defines tournament and roster operations
type TournamentServicer interface {
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	GetTournament(ctx context.Context, id int64) (*models.Tournament, error)
	CreateTournament(ctx context.Context, actor Actor, name string, active bool) (int64, error)
	UpdateTournament(ctx context.Context, actor Actor, id int64, name string, active bool) error
	DeleteTournament(ctx context.Context, actor Actor, id int64) error
	SetRoster(ctx context.Context, actor Actor, tournamentID int64, playerIDs []int64) error
	ListRoster(ctx context.Context, tournamentID int64) ([]models.Player, error)
}

// UserServicer defines account operations
type UserServicer interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, actor Actor, username, password string, role models.Role, playerID *int64) (int64, error)
}

// BossLeaderboard is one boss with its best recorded times.
type BossLeaderboard struct {
	Boss    models.Boss                `json:"boss"`
	Entries []repository.LeaderboardRow `json:"entries"`
}
