package services

import "github.com/wutheringcup/echodraft/internal/models"

// Actor is the capability of the requester, computed once per request by
// the auth middleware and passed into each service operation instead of
// being re-derived ad hoc.
type Actor struct {
	UserID   int64
	Role     models.Role
	PlayerID *int64
}

// IsHost reports whether the actor may run host-only operations.
func (a Actor) IsHost() bool {
	return a.Role == models.RoleHost
}

// SideIn returns the side the actor's player occupies in the match, or nil
// if the actor is not a participant.
func (a Actor) SideIn(m *models.Match) *models.Side {
	if a.PlayerID == nil {
		return nil
	}
	if m.PlayerLeftID != nil && *m.PlayerLeftID == *a.PlayerID {
		s := models.SideLeft
		return &s
	}
	if m.PlayerRightID != nil && *m.PlayerRightID == *a.PlayerID {
		s := models.SideRight
		return &s
	}
	return nil
}

// MayActFor reports whether the actor may submit draft or time actions for
// the given side of the match. Hosts may act for either side; players only
// for their own.
func (a Actor) MayActFor(m *models.Match, side models.Side) bool {
	if a.IsHost() {
		return true
	}
	actorSide := a.SideIn(m)
	return actorSide != nil && *actorSide == side
}
