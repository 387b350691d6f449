package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/wutheringcup/echodraft/internal/errors"
	"github.com/wutheringcup/echodraft/internal/models"
)

// queryer is satisfied by both *sql.DB and *sql.Tx so every repository
// method works unchanged inside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository provides data access methods
type Repository struct {
	db *sql.DB
	q  queryer
}

// New creates a new Repository. busyTimeout bounds how long a writer waits
// for the database lock before failing with a contention error.
func New(dbPath string, busyTimeout time.Duration) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=%d&_txlock=immediate",
		dbPath, busyTimeout.Milliseconds())

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// SQLite works best with a single connection; it also keeps the
	// in-memory test database alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}
	repo.q = db

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// InTx runs fn inside a single immediate transaction. The immediate
// transaction takes the write lock up front, which serializes concurrent
// read-modify-write operations on match rows; a lock that cannot be
// acquired within the busy timeout surfaces as a retryable contention
// error and nothing is applied.
func (r *Repository) InTx(ctx context.Context, fn func(tx Store) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapContention(err)
	}

	txRepo := &Repository{db: r.db, q: tx}
	if err := fn(txRepo); err != nil {
		tx.Rollback()
		return mapContention(err)
	}

	if err := tx.Commit(); err != nil {
		return mapContention(err)
	}
	return nil
}

// mapContention converts sqlite busy/locked failures into the retryable
// contention error kind; everything else passes through unchanged.
func mapContention(err error) error {
	var se sqlite3.Error
	if stderrors.As(err, &se) {
		if se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked {
			return errors.Contention(err)
		}
	}
	return err
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			display_name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS resonators (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slug TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			icon_url TEXT NOT NULL DEFAULT '',
			enabled BOOLEAN NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS bosses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tournaments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			active BOOLEAN NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS tournament_players (
			tournament_id INTEGER NOT NULL,
			player_id INTEGER NOT NULL,
			PRIMARY KEY (tournament_id, player_id),
			FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE,
			FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tournament_id INTEGER,
			player_left_id INTEGER,
			player_right_id INTEGER,
			boss_id INTEGER,
			first_pick_side TEXT NOT NULL DEFAULT 'LEFT',
			winner_id INTEGER,
			left_time_ms INTEGER,
			right_time_ms INTEGER,
			started_at DATETIME,
			finished_at DATETIME,
			left_bans_confirmed BOOLEAN NOT NULL DEFAULT 0,
			right_bans_confirmed BOOLEAN NOT NULL DEFAULT 0,
			left_picks_confirmed BOOLEAN NOT NULL DEFAULT 0,
			right_picks_confirmed BOOLEAN NOT NULL DEFAULT 0,
			round_index INTEGER NOT NULL DEFAULT 0,
			match_index INTEGER NOT NULL DEFAULT 1,
			next_match_id INTEGER,
			next_side TEXT,
			FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE,
			FOREIGN KEY (player_left_id) REFERENCES players(id),
			FOREIGN KEY (player_right_id) REFERENCES players(id),
			FOREIGN KEY (boss_id) REFERENCES bosses(id),
			FOREIGN KEY (winner_id) REFERENCES players(id),
			FOREIGN KEY (next_match_id) REFERENCES matches(id)
		)`,
		`CREATE TABLE IF NOT EXISTS match_draft_actions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id INTEGER NOT NULL,
			action_type TEXT NOT NULL,
			acting_side TEXT NOT NULL,
			target_side TEXT NOT NULL,
			slot_index INTEGER NOT NULL,
			resonator_id INTEGER NOT NULL,
			locked BOOLEAN NOT NULL DEFAULT 0,
			step_index INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (match_id, action_type, slot_index, acting_side),
			FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE,
			FOREIGN KEY (resonator_id) REFERENCES resonators(id)
		)`,
		`CREATE TABLE IF NOT EXISTS boss_times (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id INTEGER NOT NULL,
			boss_id INTEGER NOT NULL,
			best_time_ms INTEGER NOT NULL,
			UNIQUE (player_id, boss_id),
			FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE,
			FOREIGN KEY (boss_id) REFERENCES bosses(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'PLAYER',
			player_id INTEGER,
			FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE SET NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_draft_actions_match ON match_draft_actions(match_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_tournament ON matches(tournament_id)`,
		`CREATE INDEX IF NOT EXISTS idx_boss_times_boss ON boss_times(boss_id, best_time_ms)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ===== Players =====

func (r *Repository) ListPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, display_name FROM players ORDER BY display_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.DisplayName); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *Repository) GetPlayer(ctx context.Context, id int64) (*models.Player, error) {
	var p models.Player
	err := r.q.QueryRowContext(ctx,
		`SELECT id, display_name FROM players WHERE id = ?`, id,
	).Scan(&p.ID, &p.DisplayName)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) CreatePlayer(ctx context.Context, displayName string) (int64, error) {
	result, err := r.q.ExecContext(ctx,
		`INSERT INTO players (display_name) VALUES (?)`, displayName)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (r *Repository) UpdatePlayer(ctx context.Context, id int64, displayName string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE players SET display_name = ? WHERE id = ?`, displayName, id)
	return err
}

func (r *Repository) DeletePlayer(ctx context.Context, id int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	return err
}

// ===== Resonators =====

func (r *Repository) ListResonators(ctx context.Context) ([]models.Resonator, error) {
	return r.queryResonators(ctx,
		`SELECT id, slug, name, icon_url, enabled FROM resonators ORDER BY name`)
}

func (r *Repository) ListEnabledResonators(ctx context.Context) ([]models.Resonator, error) {
	return r.queryResonators(ctx,
		`SELECT id, slug, name, icon_url, enabled FROM resonators WHERE enabled = 1 ORDER BY name`)
}

func (r *Repository) queryResonators(ctx context.Context, query string) ([]models.Resonator, error) {
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resonators []models.Resonator
	for rows.Next() {
		var res models.Resonator
		if err := rows.Scan(&res.ID, &res.Slug, &res.Name, &res.IconURL, &res.Enabled); err != nil {
			return nil, err
		}
		resonators = append(resonators, res)
	}
	return resonators, rows.Err()
}

func (r *Repository) GetResonator(ctx context.Context, id int64) (*models.Resonator, error) {
	var res models.Resonator
	err := r.q.QueryRowContext(ctx,
		`SELECT id, slug, name, icon_url, enabled FROM resonators WHERE id = ?`, id,
	).Scan(&res.ID, &res.Slug, &res.Name, &res.IconURL, &res.Enabled)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *Repository) CreateResonator(ctx context.Context, slug, name, iconURL string, enabled bool) (int64, error) {
	result, err := r.q.ExecContext(ctx,
		`INSERT INTO resonators (slug, name, icon_url, enabled) VALUES (?, ?, ?, ?)`,
		slug, name, iconURL, enabled)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (r *Repository) UpdateResonator(ctx context.Context, id int64, slug, name, iconURL string, enabled bool) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE resonators SET slug = ?, name = ?, icon_url = ?, enabled = ? WHERE id = ?`,
		slug, name, iconURL, enabled, id)
	return err
}

func (r *Repository) DeleteResonator(ctx context.Context, id int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM resonators WHERE id = ?`, id)
	return err
}

// ===== Bosses =====

func (r *Repository) ListBosses(ctx context.Context) ([]models.Boss, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM bosses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bosses []models.Boss
	for rows.Next() {
		var b models.Boss
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, err
		}
		bosses = append(bosses, b)
	}
	return bosses, rows.Err()
}

func (r *Repository) GetBoss(ctx context.Context, id int64) (*models.Boss, error) {
	var b models.Boss
	err := r.q.QueryRowContext(ctx, `SELECT id, name FROM bosses WHERE id = ?`, id).Scan(&b.ID, &b.Name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) CreateBoss(ctx context.Context, name string) (int64, error) {
	result, err := r.q.ExecContext(ctx, `INSERT INTO bosses (name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (r *Repository) UpdateBoss(ctx context.Context, id int64, name string) error {
	_, err := r.q.ExecContext(ctx, `UPDATE bosses SET name = ? WHERE id = ?`, name, id)
	return err
}

func (r *Repository) DeleteBoss(ctx context.Context, id int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM bosses WHERE id = ?`, id)
	return err
}

// ===== Tournaments =====

func (r *Repository) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, active FROM tournaments ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tournaments []models.Tournament
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.Active); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (r *Repository) GetTournament(ctx context.Context, id int64) (*models.Tournament, error) {
	var t models.Tournament
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, active FROM tournaments WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Active)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) CreateTournament(ctx context.Context, name string, active bool) (int64, error) {
	result, err := r.q.ExecContext(ctx,
		`INSERT INTO tournaments (name, active) VALUES (?, ?)`, name, active)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (r *Repository) UpdateTournament(ctx context.Context, id int64, name string, active bool) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE tournaments SET name = ?, active = ? WHERE id = ?`, name, active, id)
	return err
}

func (r *Repository) DeleteTournament(ctx context.Context, id int64) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM tournaments WHERE id = ?`, id)
	return err
}

func (r *Repository) SetRoster(ctx context.Context, tournamentID int64, playerIDs []int64) error {
	if _, err := r.q.ExecContext(ctx,
		`DELETE FROM tournament_players WHERE tournament_id = ?`, tournamentID); err != nil {
		return err
	}
	for _, playerID := range playerIDs {
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO tournament_players (tournament_id, player_id) VALUES (?, ?)`,
			tournamentID, playerID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) ListRoster(ctx context.Context, tournamentID int64) ([]models.Player, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT p.id, p.display_name
		FROM players p
		JOIN tournament_players tp ON tp.player_id = p.id
		WHERE tp.tournament_id = ?
		ORDER BY p.id`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.DisplayName); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *Repository) ListRosterPlayers(ctx context.Context, tournamentID int64) ([]models.Player, error) {
	players, err := r.ListRoster(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(players) != 8 {
		return nil, fmt.Errorf("%w: got %d", ErrRosterSize, len(players))
	}
	return players, nil
}

// ===== Matches =====

const matchColumns = `id, tournament_id, player_left_id, player_right_id, boss_id,
	first_pick_side, winner_id, left_time_ms, right_time_ms, started_at, finished_at,
	left_bans_confirmed, right_bans_confirmed, left_picks_confirmed, right_picks_confirmed,
	round_index, match_index, next_match_id, next_side`

func scanMatch(row interface{ Scan(...any) error }) (*models.Match, error) {
	var m models.Match
	var tournamentID, playerLeft, playerRight, boss, winner, leftTime, rightTime, nextMatch sql.NullInt64
	var startedAt, finishedAt sql.NullTime
	var nextSide sql.NullString

	err := row.Scan(
		&m.ID, &tournamentID, &playerLeft, &playerRight, &boss,
		&m.FirstPickSide, &winner, &leftTime, &rightTime, &startedAt, &finishedAt,
		&m.LeftBansConfirmed, &m.RightBansConfirmed, &m.LeftPicksConfirmed, &m.RightPicksConfirmed,
		&m.RoundIndex, &m.MatchIndex, &nextMatch, &nextSide,
	)
	if err != nil {
		return nil, err
	}

	m.TournamentID = nullableInt64(tournamentID)
	m.PlayerLeftID = nullableInt64(playerLeft)
	m.PlayerRightID = nullableInt64(playerRight)
	m.BossID = nullableInt64(boss)
	m.WinnerID = nullableInt64(winner)
	m.LeftTimeMs = nullableInt64(leftTime)
	m.RightTimeMs = nullableInt64(rightTime)
	m.NextMatchID = nullableInt64(nextMatch)
	if startedAt.Valid {
		t := startedAt.Time
		m.StartedAt = &t
	}
	if finishedAt.Valid {
		t := finishedAt.Time
		m.FinishedAt = &t
	}
	if nextSide.Valid {
		s := models.Side(nextSide.String)
		m.NextSide = &s
	}
	return &m, nil
}

func (r *Repository) GetMatch(ctx context.Context, id int64) (*models.Match, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// GetMatchForUpdate reads a match for a read-modify-write. The exclusive
// lock comes from the surrounding immediate transaction, so this must only
// be called inside InTx.
func (r *Repository) GetMatchForUpdate(ctx context.Context, id int64) (*models.Match, error) {
	return r.GetMatch(ctx, id)
}

func (r *Repository) ListMatchesForTournament(ctx context.Context, tournamentID int64) ([]models.Match, error) {
	return r.queryMatches(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE tournament_id = ? ORDER BY round_index, match_index`,
		tournamentID)
}

func (r *Repository) ListMatchesForPlayer(ctx context.Context, playerID int64) ([]models.Match, error) {
	return r.queryMatches(ctx,
		`SELECT `+matchColumns+` FROM matches
		 WHERE player_left_id = ? OR player_right_id = ?
		 ORDER BY id DESC`,
		playerID, playerID)
}

func (r *Repository) queryMatches(ctx context.Context, query string, args ...any) ([]models.Match, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func (r *Repository) CreateMatch(ctx context.Context, match *models.Match) (int64, error) {
	result, err := r.q.ExecContext(ctx, `
		INSERT INTO matches (
			tournament_id, player_left_id, player_right_id, boss_id, first_pick_side,
			winner_id, left_time_ms, right_time_ms, started_at, finished_at,
			left_bans_confirmed, right_bans_confirmed, left_picks_confirmed, right_picks_confirmed,
			round_index, match_index, next_match_id, next_side
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64Arg(match.TournamentID), int64Arg(match.PlayerLeftID), int64Arg(match.PlayerRightID),
		int64Arg(match.BossID), string(match.FirstPickSide),
		int64Arg(match.WinnerID), int64Arg(match.LeftTimeMs), int64Arg(match.RightTimeMs),
		timeArg(match.StartedAt), timeArg(match.FinishedAt),
		match.LeftBansConfirmed, match.RightBansConfirmed,
		match.LeftPicksConfirmed, match.RightPicksConfirmed,
		match.RoundIndex, match.MatchIndex, int64Arg(match.NextMatchID), sideArg(match.NextSide))
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	match.ID = id
	return id, nil
}

func (r *Repository) SaveMatch(ctx context.Context, match *models.Match) error {
	result, err := r.q.ExecContext(ctx, `
		UPDATE matches SET
			tournament_id = ?, player_left_id = ?, player_right_id = ?, boss_id = ?,
			first_pick_side = ?, winner_id = ?, left_time_ms = ?, right_time_ms = ?,
			started_at = ?, finished_at = ?,
			left_bans_confirmed = ?, right_bans_confirmed = ?,
			left_picks_confirmed = ?, right_picks_confirmed = ?,
			round_index = ?, match_index = ?, next_match_id = ?, next_side = ?
		WHERE id = ?`,
		int64Arg(match.TournamentID), int64Arg(match.PlayerLeftID), int64Arg(match.PlayerRightID),
		int64Arg(match.BossID), string(match.FirstPickSide), int64Arg(match.WinnerID),
		int64Arg(match.LeftTimeMs), int64Arg(match.RightTimeMs),
		timeArg(match.StartedAt), timeArg(match.FinishedAt),
		match.LeftBansConfirmed, match.RightBansConfirmed,
		match.LeftPicksConfirmed, match.RightPicksConfirmed,
		match.RoundIndex, match.MatchIndex, int64Arg(match.NextMatchID), sideArg(match.NextSide),
		match.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteMatchesForTournament(ctx context.Context, tournamentID int64) error {
	// Successor references point forward; clear them first so the
	// self-referencing foreign key does not block the delete.
	if _, err := r.q.ExecContext(ctx,
		`UPDATE matches SET next_match_id = NULL WHERE tournament_id = ?`, tournamentID); err != nil {
		return err
	}
	_, err := r.q.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = ?`, tournamentID)
	return err
}

// ===== Draft actions =====

func (r *Repository) ListDraftActions(ctx context.Context, matchID int64) ([]models.MatchDraftAction, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, match_id, action_type, acting_side, target_side, slot_index,
		       resonator_id, locked, step_index, created_at
		FROM match_draft_actions
		WHERE match_id = ?
		ORDER BY step_index`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []models.MatchDraftAction
	for rows.Next() {
		var a models.MatchDraftAction
		if err := rows.Scan(&a.ID, &a.MatchID, &a.ActionType, &a.ActingSide, &a.TargetSide,
			&a.SlotIndex, &a.ResonatorID, &a.Locked, &a.StepIndex, &a.CreatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// UpsertDraftAction inserts or replaces the single row for
// (match, action type, slot, acting side). A replaced row resets to
// unlocked; locking is the separate LockSlotActions step.
func (r *Repository) UpsertDraftAction(ctx context.Context, action *models.MatchDraftAction) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO match_draft_actions (
			match_id, action_type, acting_side, target_side, slot_index,
			resonator_id, locked, step_index
		) VALUES (?, ?, ?, ?, ?, ?, 0, ?)
		ON CONFLICT (match_id, action_type, slot_index, acting_side) DO UPDATE SET
			target_side = excluded.target_side,
			resonator_id = excluded.resonator_id,
			locked = 0,
			step_index = excluded.step_index`,
		action.MatchID, string(action.ActionType), string(action.ActingSide),
		string(action.TargetSide), action.SlotIndex, action.ResonatorID, action.StepIndex)
	return err
}

func (r *Repository) LockSlotActions(ctx context.Context, matchID int64, actionType models.ActionType, slotIndex int) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE match_draft_actions SET locked = 1
		WHERE match_id = ? AND action_type = ? AND slot_index = ?`,
		matchID, string(actionType), slotIndex)
	return err
}

func (r *Repository) DeleteDraftActions(ctx context.Context, matchID int64) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM match_draft_actions WHERE match_id = ?`, matchID)
	return err
}

// ===== Boss times =====

func (r *Repository) GetBossTime(ctx context.Context, playerID, bossID int64) (*models.BossTime, error) {
	var bt models.BossTime
	err := r.q.QueryRowContext(ctx, `
		SELECT id, player_id, boss_id, best_time_ms
		FROM boss_times WHERE player_id = ? AND boss_id = ?`,
		playerID, bossID,
	).Scan(&bt.ID, &bt.PlayerID, &bt.BossID, &bt.BestTimeMs)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bt, nil
}

func (r *Repository) UpsertBestTime(ctx context.Context, playerID, bossID, timeMs int64) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO boss_times (player_id, boss_id, best_time_ms) VALUES (?, ?, ?)
		ON CONFLICT (player_id, boss_id) DO UPDATE SET
			best_time_ms = excluded.best_time_ms
		WHERE excluded.best_time_ms < boss_times.best_time_ms`,
		playerID, bossID, timeMs)
	return err
}

func (r *Repository) TopTimesForBoss(ctx context.Context, bossID int64, limit int) ([]LeaderboardRow, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT bt.player_id, p.display_name, bt.best_time_ms
		FROM boss_times bt
		JOIN players p ON p.id = bt.player_id
		WHERE bt.boss_id = ?
		ORDER BY bt.best_time_ms ASC
		LIMIT ?`, bossID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardRow
	for rows.Next() {
		var e LeaderboardRow
		if err := rows.Scan(&e.PlayerID, &e.PlayerName, &e.BestTimeMs); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ===== Users =====

func (r *Repository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return r.scanUser(r.q.QueryRowContext(ctx, `
		SELECT id, username, password, role, player_id FROM users WHERE id = ?`, id))
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.scanUser(r.q.QueryRowContext(ctx, `
		SELECT id, username, password, role, player_id FROM users WHERE username = ?`, username))
}

func (r *Repository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var playerID sql.NullInt64
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Role, &playerID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.PlayerID = nullableInt64(playerID)
	return &u, nil
}

func (r *Repository) CreateUser(ctx context.Context, username, password string, role models.Role, playerID *int64) (int64, error) {
	result, err := r.q.ExecContext(ctx,
		`INSERT INTO users (username, password, role, player_id) VALUES (?, ?, ?, ?)`,
		username, password, string(role), int64Arg(playerID))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ===== Scan/arg helpers =====

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	value := v.Int64
	return &value
}

func int64Arg(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func timeArg(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}

func sideArg(v *models.Side) any {
	if v == nil {
		return nil
	}
	return string(*v)
}
