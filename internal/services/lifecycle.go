package services

import (
	"context"
	"time"

	"github.com/wutheringcup/echodraft/internal/errors"
	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository"
	"github.com/wutheringcup/echodraft/internal/timefmt"
)

// LifecycleService drives a match through CREATED, STARTED and FINISHED,
// and propagates the winner into the successor bracket match.
type LifecycleService struct {
	log      logger.Logger
	repo     repository.TxStore
	notifier Notifier
	now      func() time.Time
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(log logger.Logger, repo repository.TxStore, notifier Notifier) *LifecycleService {
	return &LifecycleService{log: log, repo: repo, notifier: notifier, now: time.Now}
}

// Start moves a match from CREATED to STARTED. Starting an already
// started match is a no-op.
func (s *LifecycleService) Start(ctx context.Context, actor Actor, matchID int64) (*models.Match, error) {
	if !actor.IsHost() {
		return nil, errors.Permission("only the host may start a match")
	}

	var result *models.Match
	err := s.repo.InTx(ctx, func(tx repository.Store) error {
		match, err := tx.GetMatchForUpdate(ctx, matchID)
		if err != nil {
			return err
		}
		if !match.Started() {
			now := s.now().UTC()
			match.StartedAt = &now
			match.FinishedAt = nil
			if err := tx.SaveMatch(ctx, match); err != nil {
				return err
			}
			s.log.Info("Match started", "match_id", matchID)
		}
		result = match
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SubmitTime records a side's run time, once. A second submission for the
// same side is a no-op, never an overwrite. The player's personal best
// against the match boss improves as a side effect when the new time is
// strictly smaller.
func (s *LifecycleService) SubmitTime(ctx context.Context, actor Actor, matchID int64, side models.Side, timeInput string) (*models.Match, error) {
	if !side.Valid() {
		return nil, errors.Validationf("unknown side %q", side)
	}

	timeMs, err := timefmt.ParseMs(timeInput)
	if err != nil {
		return nil, err
	}

	var result *models.Match
	var submitted bool
	err = s.repo.InTx(ctx, func(tx repository.Store) error {
		match, err := tx.GetMatchForUpdate(ctx, matchID)
		if err != nil {
			return err
		}

		if !actor.MayActFor(match, side) {
			return errors.Permission("not allowed to submit a time for this side")
		}
		if !match.Started() {
			return errors.Validation("match has not started")
		}
		if match.Finished() {
			return errors.Validation("match is already finished")
		}
		if match.BossID == nil {
			return errors.Validation("match has no boss assigned")
		}
		playerID := match.PlayerFor(side)
		if playerID == nil {
			return errors.Consistencyf("side %s has no player", side)
		}

		// Exactly once per side: keep the first submission.
		if match.TimeFor(side) != nil {
			result = match
			return nil
		}

		if side == models.SideLeft {
			match.LeftTimeMs = &timeMs
		} else {
			match.RightTimeMs = &timeMs
		}
		if err := tx.SaveMatch(ctx, match); err != nil {
			return err
		}

		if err := tx.UpsertBestTime(ctx, *playerID, *match.BossID, timeMs); err != nil {
			return err
		}

		result = match
		submitted = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if submitted {
		s.log.Info("Time submitted", "match_id", matchID, "side", side, "time_ms", timeMs)
		s.notifier.NotifyPageChanged(matchID)
	}
	return result, nil
}

// Finish closes a started match once both times are in. The side with the
// strictly smaller time wins; equal times leave the winner unset. A
// determined winner is written into the successor match's slot while the
// successor row is held in the same transaction, so sibling semifinals
// finishing concurrently cannot clobber each other's propagation.
func (s *LifecycleService) Finish(ctx context.Context, actor Actor, matchID int64) (*models.Match, error) {
	if !actor.IsHost() {
		return nil, errors.Permission("only the host may finish a match")
	}

	var result *models.Match
	err := s.repo.InTx(ctx, func(tx repository.Store) error {
		match, err := tx.GetMatchForUpdate(ctx, matchID)
		if err != nil {
			return err
		}
		if !match.Started() {
			return errors.Validation("match has not started")
		}
		if match.Finished() {
			return errors.Validation("match is already finished")
		}
		if match.LeftTimeMs == nil || match.RightTimeMs == nil {
			return errors.Validation("both sides must submit a time first")
		}

		if *match.LeftTimeMs < *match.RightTimeMs {
			match.WinnerID = match.PlayerLeftID
		} else if *match.LeftTimeMs > *match.RightTimeMs {
			match.WinnerID = match.PlayerRightID
		}
		// Equal times leave WinnerID nil: ties have no winner.

		if match.WinnerID != nil && match.NextMatchID != nil {
			if match.NextSide == nil {
				return errors.Consistency("match has a successor but no successor side")
			}
			next, err := tx.GetMatchForUpdate(ctx, *match.NextMatchID)
			if err != nil {
				if err == repository.ErrNotFound {
					return errors.Consistencyf("successor match %d is missing", *match.NextMatchID)
				}
				return err
			}
			if *match.NextSide == models.SideLeft {
				next.PlayerLeftID = match.WinnerID
			} else {
				next.PlayerRightID = match.WinnerID
			}
			if err := tx.SaveMatch(ctx, next); err != nil {
				return err
			}
		}

		now := s.now().UTC()
		match.FinishedAt = &now
		if err := tx.SaveMatch(ctx, match); err != nil {
			return err
		}
		result = match
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Match finished", "match_id", matchID, "winner_id", result.WinnerID)
	s.notifier.NotifyPageChanged(matchID)
	return result, nil
}
