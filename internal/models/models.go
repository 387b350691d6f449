package models

import "time"

// Side identifies one of the two competing parties in a match.
type Side string

const (
	SideLeft  Side = "LEFT"
	SideRight Side = "RIGHT"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == SideLeft || s == SideRight
}

// ActionType distinguishes draft bans from draft picks.
type ActionType string

const (
	ActionBan  ActionType = "BAN"
	ActionPick ActionType = "PICK"
)

// Valid reports whether t is a known draft action type.
func (t ActionType) Valid() bool {
	return t == ActionBan || t == ActionPick
}

// Role is the access level of a user account.
type Role string

const (
	RoleHost   Role = "HOST"
	RolePlayer Role = "PLAYER"
)

// Player represents a tournament participant.
type Player struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

// Resonator is a draftable champion. Disabled resonators are never
// selectable, but stay valid as history inside already-locked actions.
type Resonator struct {
	ID      int64  `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
	Enabled bool   `json:"enabled"`
}

// Boss is the encounter both players race during a match.
type Boss struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tournament groups a roster of players and their matches.
type Tournament struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Match is the draft and lifecycle unit. Player slots are nil while the
// corresponding predecessor match in the bracket is unresolved.
type Match struct {
	ID            int64      `json:"id"`
	TournamentID  *int64     `json:"tournament_id"`
	PlayerLeftID  *int64     `json:"player_left_id"`
	PlayerRightID *int64     `json:"player_right_id"`
	BossID        *int64     `json:"boss_id"`
	FirstPickSide Side       `json:"first_pick_side"`
	WinnerID      *int64     `json:"winner_id"`
	LeftTimeMs    *int64     `json:"left_time_ms"`
	RightTimeMs   *int64     `json:"right_time_ms"`
	StartedAt     *time.Time `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at"`

	LeftBansConfirmed   bool `json:"left_bans_confirmed"`
	RightBansConfirmed  bool `json:"right_bans_confirmed"`
	LeftPicksConfirmed  bool `json:"left_picks_confirmed"`
	RightPicksConfirmed bool `json:"right_picks_confirmed"`

	RoundIndex  int    `json:"round_index"`
	MatchIndex  int    `json:"match_index"`
	NextMatchID *int64 `json:"next_match_id"`
	NextSide    *Side  `json:"next_side"`
}

// Started reports whether the match has been started.
func (m *Match) Started() bool { return m.StartedAt != nil }

// Finished reports whether the match has been finished.
func (m *Match) Finished() bool { return m.FinishedAt != nil }

// BansConfirmed reports whether the ban phase is complete for both sides.
func (m *Match) BansConfirmed() bool {
	return m.LeftBansConfirmed && m.RightBansConfirmed
}

// PicksConfirmed reports whether the pick phase is complete for both sides.
func (m *Match) PicksConfirmed() bool {
	return m.LeftPicksConfirmed && m.RightPicksConfirmed
}

// PlayerFor returns the player id occupying the given side, nil while the
// slot is still unresolved.
func (m *Match) PlayerFor(side Side) *int64 {
	if side == SideLeft {
		return m.PlayerLeftID
	}
	return m.PlayerRightID
}

// TimeFor returns the submitted time for the given side.
func (m *Match) TimeFor(side Side) *int64 {
	if side == SideLeft {
		return m.LeftTimeMs
	}
	return m.RightTimeMs
}

// MatchDraftAction is one slot occupancy of the sparse draft grid: at most
// one row exists per (match, action type, slot, acting side).
type MatchDraftAction struct {
	ID          int64      `json:"id"`
	MatchID     int64      `json:"match_id"`
	ActionType  ActionType `json:"action_type"`
	ActingSide  Side       `json:"acting_side"`
	TargetSide  Side       `json:"target_side"`
	SlotIndex   int        `json:"slot_index"`
	ResonatorID int64      `json:"resonator_id"`
	Locked      bool       `json:"locked"`
	StepIndex   int        `json:"step_index"`
	CreatedAt   time.Time  `json:"created_at"`
}

// BossTime is a player's personal best against one boss. It only ever
// improves; the match submit-time flow is the single writer.
type BossTime struct {
	ID         int64 `json:"id"`
	PlayerID   int64 `json:"player_id"`
	BossID     int64 `json:"boss_id"`
	BestTimeMs int64 `json:"best_time_ms"`
}

// User is a login account. Hosts run tournaments; players are linked to
// their Player record and may only act for their own match side.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
	PlayerID *int64 `json:"player_id"`
}

// WSMessage is the envelope broadcast to websocket observers of a match.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}
