package services

import (
	"context"
	"strings"

	"github.com/wutheringcup/echodraft/internal/errors"
	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository"
)

// TournamentService manages tournaments and their rosters
type TournamentService struct {
	log  logger.Logger
	repo repository.TxStore
}

// NewTournamentService creates a new TournamentService
func NewTournamentService(log logger.Logger, repo repository.TxStore) *TournamentService {
	return &TournamentService{log: log, repo: repo}
}

func (s *TournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	return s.repo.ListTournaments(ctx)
}

func (s *TournamentService) GetTournament(ctx context.Context, id int64) (*models.Tournament, error) {
	return s.repo.GetTournament(ctx, id)
}

func (s *TournamentService) CreateTournament(ctx context.Context, actor Actor, name string, active bool) (int64, error) {
	if !actor.IsHost() {
		return 0, errors.Permission("only the host may manage tournaments")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.Validation("name is required")
	}
	id, err := s.repo.CreateTournament(ctx, name, active)
	if err != nil {
		return 0, err
	}
	s.log.Info("Tournament created", "tournament_id", id, "name", name)
	return id, nil
}

func (s *TournamentService) UpdateTournament(ctx context.Context, actor Actor, id int64, name string, active bool) error {
	if !actor.IsHost() {
		return errors.Permission("only the host may manage tournaments")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.Validation("name is required")
	}
	if _, err := s.repo.GetTournament(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateTournament(ctx, id, name, active)
}

func (s *TournamentService) DeleteTournament(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsHost() {
		return errors.Permission("only the host may manage tournaments")
	}
	return s.repo.DeleteTournament(ctx, id)
}

// SetRoster replaces the tournament's participant set. Duplicates are
// rejected; the roster size is only checked at bracket generation.
func (s *TournamentService) SetRoster(ctx context.Context, actor Actor, tournamentID int64, playerIDs []int64) error {
	if !actor.IsHost() {
		return errors.Permission("only the host may manage the roster")
	}
	if _, err := s.repo.GetTournament(ctx, tournamentID); err != nil {
		return err
	}

	seen := make(map[int64]bool, len(playerIDs))
	for _, id := range playerIDs {
		if seen[id] {
			return errors.Validationf("player %d listed twice", id)
		}
		seen[id] = true
		if _, err := s.repo.GetPlayer(ctx, id); err != nil {
			if err == repository.ErrNotFound {
				return errors.Validationf("player %d not found", id)
			}
			return err
		}
	}

	return s.repo.InTx(ctx, func(tx repository.Store) error {
		return tx.SetRoster(ctx, tournamentID, playerIDs)
	})
}

func (s *TournamentService) ListRoster(ctx context.Context, tournamentID int64) ([]models.Player, error) {
	if _, err := s.repo.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.repo.ListRoster(ctx, tournamentID)
}
