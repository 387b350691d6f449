package services

import (
	"context"
	"strings"

	"github.com/wutheringcup/echodraft/internal/errors"
	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository"
)

// leaderboardSize is how many entries each public per-boss leaderboard shows.
const leaderboardSize = 5

// BossService manages bosses and the public leaderboards built from
// recorded personal bests.
type BossService struct {
	log  logger.Logger
	repo repository.Store
}

// NewBossService creates a new BossService
func NewBossService(log logger.Logger, repo repository.Store) *BossService {
	return &BossService{log: log, repo: repo}
}

func (s *BossService) ListBosses(ctx context.Context) ([]models.Boss, error) {
	return s.repo.ListBosses(ctx)
}

func (s *BossService) CreateBoss(ctx context.Context, actor Actor, name string) (int64, error) {
	if !actor.IsHost() {
		return 0, errors.Permission("only the host may manage bosses")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.Validation("name is required")
	}
	id, err := s.repo.CreateBoss(ctx, name)
	if err != nil {
		return 0, err
	}
	s.log.Info("Boss created", "boss_id", id, "name", name)
	return id, nil
}

func (s *BossService) UpdateBoss(ctx context.Context, actor Actor, id int64, name string) error {
	if !actor.IsHost() {
		return errors.Permission("only the host may manage bosses")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.Validation("name is required")
	}
	if _, err := s.repo.GetBoss(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateBoss(ctx, id, name)
}

func (s *BossService) DeleteBoss(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsHost() {
		return errors.Permission("only the host may manage bosses")
	}
	return s.repo.DeleteBoss(ctx, id)
}

// Leaderboards returns the top recorded times per boss, best first.
func (s *BossService) Leaderboards(ctx context.Context) ([]BossLeaderboard, error) {
	bosses, err := s.repo.ListBosses(ctx)
	if err != nil {
		return nil, err
	}

	boards := make([]BossLeaderboard, 0, len(bosses))
	for _, boss := range bosses {
		entries, err := s.repo.TopTimesForBoss(ctx, boss.ID, leaderboardSize)
		if err != nil {
			return nil, err
		}
		boards = append(boards, BossLeaderboard{Boss: boss, Entries: entries})
	}
	return boards, nil
}
