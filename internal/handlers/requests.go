package handlers

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DraftActionRequest is one ban or pick selection
type DraftActionRequest struct {
	Side        string `json:"side"`
	ActionType  string `json:"action_type"`
	ResonatorID int64  `json:"resonator_id"`
}

// SubmitTimeRequest carries one side's clear time as entered
type SubmitTimeRequest struct {
	Side string `json:"side"`
	Time string `json:"time"`
}

// GenerateBracketRequest controls bracket generation. Overwrite defaults
// to true when omitted: regenerating replaces the existing tree.
type GenerateBracketRequest struct {
	Seed      *int64 `json:"seed"`
	Overwrite *bool  `json:"overwrite"`
}

// PlayerRequest creates or renames a player
type PlayerRequest struct {
	DisplayName string `json:"display_name"`
}

// BossRequest creates or renames a boss
type BossRequest struct {
	Name string `json:"name"`
}

// TournamentRequest creates or updates a tournament
type TournamentRequest struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// RosterRequest replaces a tournament's roster
type RosterRequest struct {
	PlayerIDs []int64 `json:"player_ids"`
}

// CreateUserRequest registers an account
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	PlayerID *int64 `json:"player_id"`
}
