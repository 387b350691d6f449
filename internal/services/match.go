package services

import (
	"context"

	"github.com/wutheringcup/echodraft/internal/errors"
	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository"
	"github.com/wutheringcup/echodraft/internal/timefmt"
)

// MatchService handles match creation and read views
type MatchService struct {
	log  logger.Logger
	repo repository.TxStore
}

// NewMatchService creates a new MatchService
func NewMatchService(log logger.Logger, repo repository.TxStore) *MatchService {
	return &MatchService{log: log, repo: repo}
}

// MatchCreate is the host request to create a standalone match.
type MatchCreate struct {
	TournamentID  *int64      `json:"tournament_id"`
	PlayerLeftID  int64       `json:"player_left_id"`
	PlayerRightID int64       `json:"player_right_id"`
	BossID        *int64      `json:"boss_id"`
	FirstPickSide models.Side `json:"first_pick_side"`
}

// MatchDetail is the match read view with resolved names and formatted times.
type MatchDetail struct {
	Match       models.Match   `json:"match"`
	PlayerLeft  *models.Player `json:"player_left"`
	PlayerRight *models.Player `json:"player_right"`
	Boss        *models.Boss   `json:"boss"`
	Winner      *models.Player `json:"winner"`
	LeftTime    string         `json:"left_time"`
	RightTime   string         `json:"right_time"`
}

// GetMatch returns the match detail view.
func (s *MatchService) GetMatch(ctx context.Context, id int64) (*MatchDetail, error) {
	match, err := s.repo.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &MatchDetail{
		Match:     *match,
		LeftTime:  timefmt.FormatMs(match.LeftTimeMs),
		RightTime: timefmt.FormatMs(match.RightTimeMs),
	}

	if detail.PlayerLeft, err = s.optionalPlayer(ctx, match.PlayerLeftID); err != nil {
		return nil, err
	}
	if detail.PlayerRight, err = s.optionalPlayer(ctx, match.PlayerRightID); err != nil {
		return nil, err
	}
	if detail.Winner, err = s.optionalPlayer(ctx, match.WinnerID); err != nil {
		return nil, err
	}
	if match.BossID != nil {
		boss, err := s.repo.GetBoss(ctx, *match.BossID)
		if err != nil && err != repository.ErrNotFound {
			return nil, err
		}
		detail.Boss = boss
	}

	return detail, nil
}

func (s *MatchService) optionalPlayer(ctx context.Context, id *int64) (*models.Player, error) {
	if id == nil {
		return nil, nil
	}
	player, err := s.repo.GetPlayer(ctx, *id)
	if err == repository.ErrNotFound {
		return nil, nil
	}
	return player, err
}

// CreateMatch creates a standalone match outside any bracket. Host only.
func (s *MatchService) CreateMatch(ctx context.Context, actor Actor, req MatchCreate) (*models.Match, error) {
	if !actor.IsHost() {
		return nil, errors.Permission("only the host may create matches")
	}
	if req.PlayerLeftID == req.PlayerRightID {
		return nil, errors.Validation("left and right player must be different")
	}
	if !req.FirstPickSide.Valid() {
		req.FirstPickSide = models.SideLeft
	}

	if _, err := s.repo.GetPlayer(ctx, req.PlayerLeftID); err != nil {
		return nil, errors.Validation("left player not found")
	}
	if _, err := s.repo.GetPlayer(ctx, req.PlayerRightID); err != nil {
		return nil, errors.Validation("right player not found")
	}

	match := &models.Match{
		TournamentID:  req.TournamentID,
		PlayerLeftID:  &req.PlayerLeftID,
		PlayerRightID: &req.PlayerRightID,
		BossID:        req.BossID,
		FirstPickSide: req.FirstPickSide,
		RoundIndex:    0,
		MatchIndex:    1,
	}
	if _, err := s.repo.CreateMatch(ctx, match); err != nil {
		return nil, err
	}

	s.log.Info("Match created", "match_id", match.ID)
	return match, nil
}

// ListForTournament returns the tournament's matches in bracket order.
func (s *MatchService) ListForTournament(ctx context.Context, tournamentID int64) ([]models.Match, error) {
	return s.repo.ListMatchesForTournament(ctx, tournamentID)
}

// ListForPlayer returns the matches a player takes part in, newest first.
func (s *MatchService) ListForPlayer(ctx context.Context, playerID int64) ([]models.Match, error) {
	return s.repo.ListMatchesForPlayer(ctx, playerID)
}
