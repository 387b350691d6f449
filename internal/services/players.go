package services

import (
	"context"
	"strings"

	"github.com/wutheringcup/echodraft/internal/errors"
	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository"
)

// PlayerService handles player roster business logic
type PlayerService struct {
	log  logger.Logger
	repo repository.PlayerRepository
}

// NewPlayerService creates a new PlayerService
func NewPlayerService(log logger.Logger, repo repository.PlayerRepository) *PlayerService {
	return &PlayerService{log: log, repo: repo}
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return s.repo.ListPlayers(ctx)
}

func (s *PlayerService) GetPlayer(ctx context.Context, id int64) (*models.Player, error) {
	return s.repo.GetPlayer(ctx, id)
}

func (s *PlayerService) CreatePlayer(ctx context.Context, actor Actor, displayName string) (int64, error) {
	if !actor.IsHost() {
		return 0, errors.Permission("only the host may manage players")
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return 0, errors.Validation("display name is required")
	}
	id, err := s.repo.CreatePlayer(ctx, displayName)
	if err != nil {
		return 0, err
	}
	s.log.Info("Player created", "player_id", id, "name", displayName)
	return id, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, actor Actor, id int64, displayName string) error {
	if !actor.IsHost() {
		return errors.Permission("only the host may manage players")
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return errors.Validation("display name is required")
	}
	if _, err := s.repo.GetPlayer(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdatePlayer(ctx, id, displayName)
}

func (s *PlayerService) DeletePlayer(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsHost() {
		return errors.Permission("only the host may manage players")
	}
	return s.repo.DeletePlayer(ctx, id)
}
