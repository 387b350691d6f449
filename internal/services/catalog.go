package services

import (
	"github.com/wutheringcup/echodraft/internal/models"
)

// catalogFor computes the set of resonator ids the given side may select
// for the given action type at this instant.
//
// For bans, every resonator the side already used in a ban is excluded.
// For picks, the side's previous picks are excluded, plus every resonator
// locked as a ban targeting the side. reselect, when non-nil, is the
// side's own still-unlocked entry in the current slot; its resonator stays
// selectable so the side can change its mind before the slot locks.
func catalogFor(
	enabled []models.Resonator,
	actions []models.MatchDraftAction,
	side models.Side,
	actionType models.ActionType,
	reselect *models.MatchDraftAction,
) map[int64]bool {
	excluded := make(map[int64]bool)

	for _, a := range actions {
		switch actionType {
		case models.ActionBan:
			// Locked or pending: a side never bans the same resonator twice.
			if a.ActionType == models.ActionBan && a.ActingSide == side {
				excluded[a.ResonatorID] = true
			}
		case models.ActionPick:
			if a.ActionType == models.ActionPick && a.ActingSide == side {
				excluded[a.ResonatorID] = true
			}
			// A locked ban against this side removes the resonator for good.
			if a.ActionType == models.ActionBan && a.TargetSide == side && a.Locked {
				excluded[a.ResonatorID] = true
			}
		}
	}

	if reselect != nil {
		delete(excluded, reselect.ResonatorID)
	}

	available := make(map[int64]bool, len(enabled))
	for _, res := range enabled {
		if !excluded[res.ID] {
			available[res.ID] = true
		}
	}
	return available
}

// pendingAction returns the side's unlocked entry in the given slot, nil
// if there is none.
func pendingAction(actions []models.MatchDraftAction, side models.Side, actionType models.ActionType, slotIndex int) *models.MatchDraftAction {
	for i := range actions {
		a := &actions[i]
		if a.ActionType == actionType && a.ActingSide == side && a.SlotIndex == slotIndex && !a.Locked {
			return a
		}
	}
	return nil
}

// currentSlot derives the 1-based slot both sides are filling: the number
// of distinct fully-locked slots plus one.
func currentSlot(actions []models.MatchDraftAction, actionType models.ActionType) int {
	lockedSlots := make(map[int]bool)
	for _, a := range actions {
		if a.ActionType == actionType && a.Locked {
			lockedSlots[a.SlotIndex] = true
		}
	}
	return len(lockedSlots) + 1
}

// slotFilledBy reports whether the side has any entry (locked or pending)
// in the given slot.
func slotFilledBy(actions []models.MatchDraftAction, side models.Side, actionType models.ActionType, slotIndex int) bool {
	for _, a := range actions {
		if a.ActionType == actionType && a.ActingSide == side && a.SlotIndex == slotIndex {
			return true
		}
	}
	return false
}
