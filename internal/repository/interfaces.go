package repository

import (
	"context"

	"github.com/wutheringcup/echodraft/internal/models"
)

// PlayerRepository defines player data operations
type PlayerRepository interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	GetPlayer(ctx context.Context, id int64) (*models.Player, error)
	CreatePlayer(ctx context.Context, displayName string) (int64, error)
	UpdatePlayer(ctx context.Context, id int64, displayName string) error
	DeletePlayer(ctx context.Context, id int64) error
}

// ResonatorRepository defines champion catalog data operations
type ResonatorRepository interface {
	ListResonators(ctx context.Context) ([]models.Resonator, error)
	ListEnabledResonators(ctx context.Context) ([]models.Resonator, error)
	GetResonator(ctx context.Context, id int64) (*models.Resonator, error)
	CreateResonator(ctx context.Context, slug, name, iconURL string, enabled bool) (int64, error)
	UpdateResonator(ctx context.Context, id int64, slug, name, iconURL string, enabled bool) error
	DeleteResonator(ctx context.Context, id int64) error
}

// BossRepository defines boss data operations
type BossRepository interface {
	ListBosses(ctx context.Context) ([]models.Boss, error)
	GetBoss(ctx context.Context, id int64) (*models.Boss, error)
	CreateBoss(ctx context.Context, name string) (int64, error)
	UpdateBoss(ctx context.Context, id int64, name string) error
	DeleteBoss(ctx context.Context, id int64) error
}

// TournamentRepository defines tournament and roster data operations
type TournamentRepository interface {
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	GetTournament(ctx context.Context, id int64) (*models.Tournament, error)
	CreateTournament(ctx context.Context, name string, active bool) (int64, error)
	UpdateTournament(ctx context.Context, id int64, name string, active bool) error
	DeleteTournament(ctx context.Context, id int64) error
	SetRoster(ctx context.Context, tournamentID int64, playerIDs []int64) error
	ListRoster(ctx context.Context, tournamentID int64) ([]models.Player, error)
	// ListRosterPlayers returns the roster for bracket generation and
	// fails with ErrRosterSize unless it holds exactly 8 players.
	ListRosterPlayers(ctx context.Context, tournamentID int64) ([]models.Player, error)
}

// MatchRepository defines match data operations.
//
// GetMatchForUpdate must be called inside InTx; the surrounding immediate
// transaction is what holds the exclusive lock for the read-modify-write.
type MatchRepository interface {
	GetMatch(ctx context.Context, id int64) (*models.Match, error)
	GetMatchForUpdate(ctx context.Context, id int64) (*models.Match, error)
	ListMatchesForTournament(ctx context.Context, tournamentID int64) ([]models.Match, error)
	ListMatchesForPlayer(ctx context.Context, playerID int64) ([]models.Match, error)
	CreateMatch(ctx context.Context, match *models.Match) (int64, error)
	SaveMatch(ctx context.Context, match *models.Match) error
	DeleteMatchesForTournament(ctx context.Context, tournamentID int64) error
}

// DraftRepository defines draft action data operations
type DraftRepository interface {
	ListDraftActions(ctx context.Context, matchID int64) ([]models.MatchDraftAction, error)
	UpsertDraftAction(ctx context.Context, action *models.MatchDraftAction) error
	LockSlotActions(ctx context.Context, matchID int64, actionType models.ActionType, slotIndex int) error
	DeleteDraftActions(ctx context.Context, matchID int64) error
}

// BossTimeRepository defines personal-best data operations
type BossTimeRepository interface {
	GetBossTime(ctx context.Context, playerID, bossID int64) (*models.BossTime, error)
	// UpsertBestTime records timeMs as the personal best only if it is
	// strictly smaller than the stored best (or no record exists yet).
	UpsertBestTime(ctx context.Context, playerID, bossID, timeMs int64) error
	TopTimesForBoss(ctx context.Context, bossID int64, limit int) ([]LeaderboardRow, error)
}

// UserRepository defines account data operations
type UserRepository interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, username, password string, role models.Role, playerID *int64) (int64, error)
}

// LeaderboardRow is one entry of a per-boss leaderboard.
type LeaderboardRow struct {
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player_name"`
	BestTimeMs int64  `json:"best_time_ms"`
}

// Store combines all repository interfaces. Services that span domains
// take this; narrower services take the sub-interface they need.
type Store interface {
	PlayerRepository
	ResonatorRepository
	BossRepository
	TournamentRepository
	MatchRepository
	DraftRepository
	BossTimeRepository
	UserRepository
}

// TxStore adds transactional execution to a Store. All state-mutating
// match operations run through InTx so that the lock-check and the write
// land in the same transaction.
type TxStore interface {
	Store
	InTx(ctx context.Context, fn func(tx Store) error) error
}

// Ensure Repository implements all interfaces
var _ TxStore = (*Repository)(nil)
