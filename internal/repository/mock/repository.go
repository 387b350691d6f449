package mock

import (
	"context"

	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.SaveMatchError = errors.New("database error")
//	svc := services.NewLifecycleService(log, mockRepo, notifier)
//	_, err := svc.Start(ctx, actor, matchID)
//	// err will now contain the injected error
type Repository struct {
	// store is the delegate for pass-through calls. Outside a transaction
	// it is the real repository; inside InTx it is the tx-scoped store, so
	// pass-throughs never reach for a second connection while the
	// transaction holds the only one.
	store repository.Store
	real  repository.TxStore

	// ===== Player Errors =====
	ListPlayersError  error
	GetPlayerError    error
	CreatePlayerError error
	UpdatePlayerError error
	DeletePlayerError error

	// ===== Resonator Errors =====
	ListResonatorsError        error
	ListEnabledResonatorsError error
	GetResonatorError          error
	CreateResonatorError       error
	UpdateResonatorError       error
	DeleteResonatorError       error

	// ===== Boss Errors =====
	ListBossesError error
	GetBossError    error
	CreateBossError error
	UpdateBossError error
	DeleteBossError error

	// ===== Tournament Errors =====
	ListTournamentsError   error
	GetTournamentError     error
	CreateTournamentError  error
	UpdateTournamentError  error
	DeleteTournamentError  error
	SetRosterError         error
	ListRosterError        error
	ListRosterPlayersError error

	// ===== Match Errors =====
	GetMatchError                   error
	GetMatchForUpdateError          error
	ListMatchesForTournamentError   error
	ListMatchesForPlayerError       error
	CreateMatchError                error
	SaveMatchError                  error
	DeleteMatchesForTournamentError error

	// ===== Draft Errors =====
	ListDraftActionsError   error
	UpsertDraftActionError  error
	LockSlotActionsError    error
	DeleteDraftActionsError error

	// ===== BossTime Errors =====
	GetBossTimeError     error
	UpsertBestTimeError  error
	TopTimesForBossError error

	// ===== User Errors =====
	GetUserError           error
	GetUserByUsernameError error
	CreateUserError        error

	// ===== Transaction Errors =====
	InTxError error
}

var _ repository.TxStore = (*Repository)(nil)

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.TxStore) *Repository {
	return &Repository{
		store: real,
		real:  real,
	}
}

// ===== Player Methods =====

func (m *Repository) ListPlayers(ctx context.Context) ([]models.Player, error) {
	if m.ListPlayersError != nil {
		return nil, m.ListPlayersError
	}
	return m.store.ListPlayers(ctx)
}

func (m *Repository) GetPlayer(ctx context.Context, id int64) (*models.Player, error) {
	if m.GetPlayerError != nil {
		return nil, m.GetPlayerError
	}
	return m.store.GetPlayer(ctx, id)
}

func (m *Repository) CreatePlayer(ctx context.Context, displayName string) (int64, error) {
	if m.CreatePlayerError != nil {
		return 0, m.CreatePlayerError
	}
	return m.store.CreatePlayer(ctx, displayName)
}

func (m *Repository) UpdatePlayer(ctx context.Context, id int64, displayName string) error {
	if m.UpdatePlayerError != nil {
		return m.UpdatePlayerError
	}
	return m.store.UpdatePlayer(ctx, id, displayName)
}

func (m *Repository) DeletePlayer(ctx context.Context, id int64) error {
	if m.DeletePlayerError != nil {
		return m.DeletePlayerError
	}
	return m.store.DeletePlayer(ctx, id)
}

// ===== Resonator Methods =====

func (m *Repository) ListResonators(ctx context.Context) ([]models.Resonator, error) {
	if m.ListResonatorsError != nil {
		return nil, m.ListResonatorsError
	}
	return m.store.ListResonators(ctx)
}

func (m *Repository) ListEnabledResonators(ctx context.Context) ([]models.Resonator, error) {
	if m.ListEnabledResonatorsError != nil {
		return nil, m.ListEnabledResonatorsError
	}
	return m.store.ListEnabledResonators(ctx)
}

func (m *Repository) GetResonator(ctx context.Context, id int64) (*models.Resonator, error) {
	if m.GetResonatorError != nil {
		return nil, m.GetResonatorError
	}
	return m.store.GetResonator(ctx, id)
}

func (m *Repository) CreateResonator(ctx context.Context, slug, name, iconURL string, enabled bool) (int64, error) {
	if m.CreateResonatorError != nil {
		return 0, m.CreateResonatorError
	}
	return m.store.CreateResonator(ctx, slug, name, iconURL, enabled)
}

func (m *Repository) UpdateResonator(ctx context.Context, id int64, slug, name, iconURL string, enabled bool) error {
	if m.UpdateResonatorError != nil {
		return m.UpdateResonatorError
	}
	return m.store.UpdateResonator(ctx, id, slug, name, iconURL, enabled)
}

func (m *Repository) DeleteResonator(ctx context.Context, id int64) error {
	if m.DeleteResonatorError != nil {
		return m.DeleteResonatorError
	}
	return m.store.DeleteResonator(ctx, id)
}

// ===== Boss Methods =====

func (m *Repository) ListBosses(ctx context.Context) ([]models.Boss, error) {
	if m.ListBossesError != nil {
		return nil, m.ListBossesError
	}
	return m.store.ListBosses(ctx)
}

func (m *Repository) GetBoss(ctx context.Context, id int64) (*models.Boss, error) {
	if m.GetBossError != nil {
		return nil, m.GetBossError
	}
	return m.store.GetBoss(ctx, id)
}

func (m *Repository) CreateBoss(ctx context.Context, name string) (int64, error) {
	if m.CreateBossError != nil {
		return 0, m.CreateBossError
	}
	return m.store.CreateBoss(ctx, name)
}

func (m *Repository) UpdateBoss(ctx context.Context, id int64, name string) error {
	if m.UpdateBossError != nil {
		return m.UpdateBossError
	}
	return m.store.UpdateBoss(ctx, id, name)
}

func (m *Repository) DeleteBoss(ctx context.Context, id int64) error {
	if m.DeleteBossError != nil {
		return m.DeleteBossError
	}
	return m.store.DeleteBoss(ctx, id)
}

// ===== Tournament Methods =====

func (m *Repository) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	if m.ListTournamentsError != nil {
		return nil, m.ListTournamentsError
	}
	return m.store.ListTournaments(ctx)
}

func (m *Repository) GetTournament(ctx context.Context, id int64) (*models.Tournament, error) {
	if m.GetTournamentError != nil {
		return nil, m.GetTournamentError
	}
	return m.store.GetTournament(ctx, id)
}

func (m *Repository) CreateTournament(ctx context.Context, name string, active bool) (int64, error) {
	if m.CreateTournamentError != nil {
		return 0, m.CreateTournamentError
	}
	return m.store.CreateTournament(ctx, name, active)
}

func (m *Repository) UpdateTournament(ctx context.Context, id int64, name string, active bool) error {
	if m.UpdateTournamentError != nil {
		return m.UpdateTournamentError
	}
	return m.store.UpdateTournament(ctx, id, name, active)
}

func (m *Repository) DeleteTournament(ctx context.Context, id int64) error {
	if m.DeleteTournamentError != nil {
		return m.DeleteTournamentError
	}
	return m.store.DeleteTournament(ctx, id)
}

func (m *Repository) SetRoster(ctx context.Context, tournamentID int64, playerIDs []int64) error {
	if m.SetRosterError != nil {
		return m.SetRosterError
	}
	return m.store.SetRoster(ctx, tournamentID, playerIDs)
}

func (m *Repository) ListRoster(ctx context.Context, tournamentID int64) ([]models.Player, error) {
	if m.ListRosterError != nil {
		return nil, m.ListRosterError
	}
	return m.store.ListRoster(ctx, tournamentID)
}

func (m *Repository) ListRosterPlayers(ctx context.Context, tournamentID int64) ([]models.Player, error) {
	if m.ListRosterPlayersError != nil {
		return nil, m.ListRosterPlayersError
	}
	return m.store.ListRosterPlayers(ctx, tournamentID)
}

// ===== Match Methods =====

func (m *Repository) GetMatch(ctx context.Context, id int64) (*models.Match, error) {
	if m.GetMatchError != nil {
		return nil, m.GetMatchError
	}
	return m.store.GetMatch(ctx, id)
}

func (m *Repository) GetMatchForUpdate(ctx context.Context, id int64) (*models.Match, error) {
	if m.GetMatchForUpdateError != nil {
		return nil, m.GetMatchForUpdateError
	}
	return m.store.GetMatchForUpdate(ctx, id)
}

func (m *Repository) ListMatchesForTournament(ctx context.Context, tournamentID int64) ([]models.Match, error) {
	if m.ListMatchesForTournamentError != nil {
		return nil, m.ListMatchesForTournamentError
	}
	return m.store.ListMatchesForTournament(ctx, tournamentID)
}

func (m *Repository) ListMatchesForPlayer(ctx context.Context, playerID int64) ([]models.Match, error) {
	if m.ListMatchesForPlayerError != nil {
		return nil, m.ListMatchesForPlayerError
	}
	return m.store.ListMatchesForPlayer(ctx, playerID)
}

func (m *Repository) CreateMatch(ctx context.Context, match *models.Match) (int64, error) {
	if m.CreateMatchError != nil {
		return 0, m.CreateMatchError
	}
	return m.store.CreateMatch(ctx, match)
}

func (m *Repository) SaveMatch(ctx context.Context, match *models.Match) error {
	if m.SaveMatchError != nil {
		return m.SaveMatchError
	}
	return m.store.SaveMatch(ctx, match)
}

func (m *Repository) DeleteMatchesForTournament(ctx context.Context, tournamentID int64) error {
	if m.DeleteMatchesForTournamentError != nil {
		return m.DeleteMatchesForTournamentError
	}
	return m.store.DeleteMatchesForTournament(ctx, tournamentID)
}

// ===== Draft Methods =====

func (m *Repository) ListDraftActions(ctx context.Context, matchID int64) ([]models.MatchDraftAction, error) {
	if m.ListDraftActionsError != nil {
		return nil, m.ListDraftActionsError
	}
	return m.store.ListDraftActions(ctx, matchID)
}

func (m *Repository) UpsertDraftAction(ctx context.Context, action *models.MatchDraftAction) error {
	if m.UpsertDraftActionError != nil {
		return m.UpsertDraftActionError
	}
	return m.store.UpsertDraftAction(ctx, action)
}

func (m *Repository) LockSlotActions(ctx context.Context, matchID int64, actionType models.ActionType, slotIndex int) error {
	if m.LockSlotActionsError != nil {
		return m.LockSlotActionsError
	}
	return m.store.LockSlotActions(ctx, matchID, actionType, slotIndex)
}

func (m *Repository) DeleteDraftActions(ctx context.Context, matchID int64) error {
	if m.DeleteDraftActionsError != nil {
		return m.DeleteDraftActionsError
	}
	return m.store.DeleteDraftActions(ctx, matchID)
}

// ===== BossTime Methods =====

func (m *Repository) GetBossTime(ctx context.Context, playerID, bossID int64) (*models.BossTime, error) {
	if m.GetBossTimeError != nil {
		return nil, m.GetBossTimeError
	}
	return m.store.GetBossTime(ctx, playerID, bossID)
}

func (m *Repository) UpsertBestTime(ctx context.Context, playerID, bossID, timeMs int64) error {
	if m.UpsertBestTimeError != nil {
		return m.UpsertBestTimeError
	}
	return m.store.UpsertBestTime(ctx, playerID, bossID, timeMs)
}

func (m *Repository) TopTimesForBoss(ctx context.Context, bossID int64, limit int) ([]repository.LeaderboardRow, error) {
	if m.TopTimesForBossError != nil {
		return nil, m.TopTimesForBossError
	}
	return m.store.TopTimesForBoss(ctx, bossID, limit)
}

// ===== User Methods =====

func (m *Repository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if m.GetUserError != nil {
		return nil, m.GetUserError
	}
	return m.store.GetUser(ctx, id)
}

func (m *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetUserByUsernameError != nil {
		return nil, m.GetUserByUsernameError
	}
	return m.store.GetUserByUsername(ctx, username)
}

func (m *Repository) CreateUser(ctx context.Context, username, password string, role models.Role, playerID *int64) (int64, error) {
	if m.CreateUserError != nil {
		return 0, m.CreateUserError
	}
	return m.store.CreateUser(ctx, username, password, role, playerID)
}

// ===== Transaction Methods =====

// InTx runs fn against a tx-scoped copy of the mock so injected errors
// still fire inside the transaction body while pass-through calls use the
// transaction's connection.
func (m *Repository) InTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if m.InTxError != nil {
		return m.InTxError
	}
	return m.real.InTx(ctx, func(tx repository.Store) error {
		txMock := *m
		txMock.store = tx
		return fn(&txMock)
	})
}
