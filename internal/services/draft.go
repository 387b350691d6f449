package services

import (
	"context"
	"sort"

	"github.com/wutheringcup/echodraft/internal/errors"
	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository"
)

// Draft phase sizes. Every match drafts the same fixed ban-then-pick
// format: both sides fill three ban slots, then three pick slots.
const (
	BanCount  = 3
	PickCount = 3
)

// Display key bases. stepIndex is a stable total order for chronological
// rendering only; business logic never reads it.
const (
	banStepBase  = 1000
	pickStepBase = 3000
)

// DraftService owns the ban/pick state machine: slot progression, the
// slot-lock rule and re-selection. Phase state is derived from the
// confirmation flags and locked-action counts, never stored separately.
type DraftService struct {
	log      logger.Logger
	repo     repository.TxStore
	notifier Notifier
}

// NewDraftService creates a new DraftService
func NewDraftService(log logger.Logger, repo repository.TxStore, notifier Notifier) *DraftService {
	return &DraftService{log: log, repo: repo, notifier: notifier}
}

// DraftView is the observer-safe snapshot of a draft. Pending entries of
// the opposing side are withheld until their slot locks.
type DraftView struct {
	MatchID        int64                     `json:"match_id"`
	CurrentBanSlot int                       `json:"current_ban_slot"`
	CurrentPickSlot int                      `json:"current_pick_slot"`
	BanPhaseDone   bool                      `json:"ban_phase_done"`
	PickPhaseDone  bool                      `json:"pick_phase_done"`
	BansLeftToRight []models.MatchDraftAction `json:"bans_left_to_right"`
	BansRightToLeft []models.MatchDraftAction `json:"bans_right_to_left"`
	PicksLeft      []models.MatchDraftAction `json:"picks_left"`
	PicksRight     []models.MatchDraftAction `json:"picks_right"`
	Pending        *models.MatchDraftAction  `json:"pending,omitempty"`
}

type draftOutcome struct {
	view         *DraftView
	picksJustDone bool
}

// SubmitAction applies one ban or pick selection for a side. The row for
// the current slot is upserted, so re-submission before the other side
// commits overwrites the side's pending choice. Once both sides have an
// entry for the slot, both rows lock atomically; locking the final slot of
// a phase confirms that phase for both sides.
func (s *DraftService) SubmitAction(ctx context.Context, actor Actor, matchID int64, side models.Side, actionType models.ActionType, resonatorID int64) (*DraftView, error) {
	if !side.Valid() {
		return nil, errors.Validationf("unknown side %q", side)
	}
	if !actionType.Valid() {
		return nil, errors.Validationf("unknown action type %q", actionType)
	}

	var outcome draftOutcome
	err := s.repo.InTx(ctx, func(tx repository.Store) error {
		match, err := tx.GetMatchForUpdate(ctx, matchID)
		if err != nil {
			return err
		}

		if !actor.MayActFor(match, side) {
			return errors.Permission("not allowed to act for this side")
		}

		if err := s.checkPhaseOpen(match, side, actionType); err != nil {
			return err
		}

		actions, err := tx.ListDraftActions(ctx, matchID)
		if err != nil {
			return err
		}

		slot := currentSlot(actions, actionType)
		if slot > phaseCount(actionType) {
			return errors.Validationf("%s phase already exhausted", actionType)
		}

		reselect := pendingAction(actions, side, actionType, slot)

		enabled, err := tx.ListEnabledResonators(ctx)
		if err != nil {
			return err
		}
		available := catalogFor(enabled, actions, side, actionType, reselect)
		if !available[resonatorID] {
			return errors.Validation("resonator is not selectable")
		}

		targetSide := side
		if actionType == models.ActionBan {
			targetSide = side.Opposite()
		}

		action := &models.MatchDraftAction{
			MatchID:     matchID,
			ActionType:  actionType,
			ActingSide:  side,
			TargetSide:  targetSide,
			SlotIndex:   slot,
			ResonatorID: resonatorID,
			StepIndex:   stepIndexFor(actionType, slot, side),
		}
		if err := tx.UpsertDraftAction(ctx, action); err != nil {
			return err
		}

		// Slot-lock rule: the slot closes only once both sides committed,
		// so neither side sees the other's in-progress choice early.
		otherCommitted := slotFilledBy(actions, side.Opposite(), actionType, slot)
		if otherCommitted {
			if err := tx.LockSlotActions(ctx, matchID, actionType, slot); err != nil {
				return err
			}
			if slot == phaseCount(actionType) {
				confirmPhase(match, actionType)
				if err := tx.SaveMatch(ctx, match); err != nil {
					return err
				}
				if actionType == models.ActionPick {
					outcome.picksJustDone = true
				}
			}
		}

		view, err := s.buildView(ctx, tx, actor, match)
		if err != nil {
			return err
		}
		outcome.view = view
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Draft action submitted",
		"match_id", matchID, "side", side, "action", actionType, "resonator_id", resonatorID)

	// Observers are outside the transaction: notify only after commit.
	s.notifier.NotifyDraftChanged(matchID)
	if outcome.picksJustDone {
		s.notifier.NotifyPageChanged(matchID)
	}
	return outcome.view, nil
}

// checkPhaseOpen rejects actions against a phase that is closed for the
// acting side: the whole phase is confirmed, the side already confirmed
// it, or (for picks) the ban phase is still running.
func (s *DraftService) checkPhaseOpen(match *models.Match, side models.Side, actionType models.ActionType) error {
	switch actionType {
	case models.ActionBan:
		if match.BansConfirmed() {
			return errors.Validation("ban phase is already confirmed")
		}
		if sideConfirmed(match, side, models.ActionBan) {
			return errors.Validation("side already confirmed its bans")
		}
	case models.ActionPick:
		if !match.BansConfirmed() {
			return errors.Validation("pick phase is not open until bans are confirmed")
		}
		if match.PicksConfirmed() {
			return errors.Validation("pick phase is already confirmed")
		}
		if sideConfirmed(match, side, models.ActionPick) {
			return errors.Validation("side already confirmed its picks")
		}
	}
	return nil
}

// ResetDraft removes every draft action of the match and clears all four
// confirmation flags. Host only; no draft state survives.
func (s *DraftService) ResetDraft(ctx context.Context, actor Actor, matchID int64) error {
	if !actor.IsHost() {
		return errors.Permission("only the host may reset a draft")
	}

	err := s.repo.InTx(ctx, func(tx repository.Store) error {
		match, err := tx.GetMatchForUpdate(ctx, matchID)
		if err != nil {
			return err
		}
		if err := tx.DeleteDraftActions(ctx, matchID); err != nil {
			return err
		}
		match.LeftBansConfirmed = false
		match.RightBansConfirmed = false
		match.LeftPicksConfirmed = false
		match.RightPicksConfirmed = false
		return tx.SaveMatch(ctx, match)
	})
	if err != nil {
		return err
	}

	s.log.Info("Draft reset", "match_id", matchID)
	s.notifier.NotifyDraftChanged(matchID)
	return nil
}

// AvailableFor returns the selectable resonators for a side, sorted by
// name for display. The underlying catalog is an unordered set.
func (s *DraftService) AvailableFor(ctx context.Context, matchID int64, side models.Side, actionType models.ActionType, allowReselect bool) ([]models.Resonator, error) {
	if !side.Valid() {
		return nil, errors.Validationf("unknown side %q", side)
	}
	if !actionType.Valid() {
		return nil, errors.Validationf("unknown action type %q", actionType)
	}

	actions, err := s.repo.ListDraftActions(ctx, matchID)
	if err != nil {
		return nil, err
	}
	enabled, err := s.repo.ListEnabledResonators(ctx)
	if err != nil {
		return nil, err
	}

	var reselect *models.MatchDraftAction
	if allowReselect {
		reselect = pendingAction(actions, side, actionType, currentSlot(actions, actionType))
	}

	available := catalogFor(enabled, actions, side, actionType, reselect)

	result := make([]models.Resonator, 0, len(available))
	for _, res := range enabled {
		if available[res.ID] {
			result = append(result, res)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// View builds the draft snapshot for the requesting actor.
func (s *DraftService) View(ctx context.Context, actor Actor, matchID int64) (*DraftView, error) {
	match, err := s.repo.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, s.repo, actor, match)
}

func (s *DraftService) buildView(ctx context.Context, store repository.Store, actor Actor, match *models.Match) (*DraftView, error) {
	actions, err := store.ListDraftActions(ctx, match.ID)
	if err != nil {
		return nil, err
	}

	view := &DraftView{
		MatchID:         match.ID,
		CurrentBanSlot:  currentSlot(actions, models.ActionBan),
		CurrentPickSlot: currentSlot(actions, models.ActionPick),
		BanPhaseDone:    match.BansConfirmed(),
		PickPhaseDone:   match.PicksConfirmed(),
	}

	for _, a := range actions {
		switch {
		case a.ActionType == models.ActionBan && a.Locked && a.ActingSide == models.SideLeft:
			view.BansLeftToRight = append(view.BansLeftToRight, a)
		case a.ActionType == models.ActionBan && a.Locked && a.ActingSide == models.SideRight:
			view.BansRightToLeft = append(view.BansRightToLeft, a)
		case a.ActionType == models.ActionPick && a.Locked && a.ActingSide == models.SideLeft:
			view.PicksLeft = append(view.PicksLeft, a)
		case a.ActionType == models.ActionPick && a.Locked && a.ActingSide == models.SideRight:
			view.PicksRight = append(view.PicksRight, a)
		}
	}

	// Only the acting side sees its own pending entry; the opponent's
	// stays hidden until the slot locks.
	if actorSide := actor.SideIn(match); actorSide != nil {
		if !match.BansConfirmed() {
			view.Pending = pendingAction(actions, *actorSide, models.ActionBan, view.CurrentBanSlot)
		} else if !match.PicksConfirmed() {
			view.Pending = pendingAction(actions, *actorSide, models.ActionPick, view.CurrentPickSlot)
		}
	}

	return view, nil
}

func phaseCount(actionType models.ActionType) int {
	if actionType == models.ActionBan {
		return BanCount
	}
	return PickCount
}

func sideConfirmed(match *models.Match, side models.Side, actionType models.ActionType) bool {
	switch {
	case actionType == models.ActionBan && side == models.SideLeft:
		return match.LeftBansConfirmed
	case actionType == models.ActionBan && side == models.SideRight:
		return match.RightBansConfirmed
	case actionType == models.ActionPick && side == models.SideLeft:
		return match.LeftPicksConfirmed
	default:
		return match.RightPicksConfirmed
	}
}

func confirmPhase(match *models.Match, actionType models.ActionType) {
	if actionType == models.ActionBan {
		match.LeftBansConfirmed = true
		match.RightBansConfirmed = true
	} else {
		match.LeftPicksConfirmed = true
		match.RightPicksConfirmed = true
	}
}

func stepIndexFor(actionType models.ActionType, slot int, side models.Side) int {
	base := banStepBase
	if actionType == models.ActionPick {
		base = pickStepBase
	}
	ord := 1
	if side == models.SideRight {
		ord = 2
	}
	return base + slot*10 + ord
}
