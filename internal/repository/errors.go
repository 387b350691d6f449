package repository

import "errors"

// ErrNotFound is returned when a requested record is not found in the
// repository. This abstracts away the underlying storage implementation
// from the service layer.
var ErrNotFound = errors.New("record not found")

// ErrRosterSize is returned by ListRosterPlayers when the tournament
// roster does not hold exactly the bracket size of players.
var ErrRosterSize = errors.New("roster does not hold exactly 8 players")
