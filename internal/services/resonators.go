package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/wutheringcup/echodraft/internal/errors"
	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ResonatorInput is the create/update payload for a catalog entry.
type ResonatorInput struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
	Enabled bool   `json:"enabled"`
}

// ResonatorService manages the champion catalog. Disabling a resonator
// removes it from future drafts without touching locked history.
type ResonatorService struct {
	log  logger.Logger
	repo repository.ResonatorRepository
}

// NewResonatorService creates a new ResonatorService
func NewResonatorService(log logger.Logger, repo repository.ResonatorRepository) *ResonatorService {
	return &ResonatorService{log: log, repo: repo}
}

func (s *ResonatorService) ListResonators(ctx context.Context) ([]models.Resonator, error) {
	return s.repo.ListResonators(ctx)
}

func (s *ResonatorService) CreateResonator(ctx context.Context, actor Actor, res ResonatorInput) (int64, error) {
	if !actor.IsHost() {
		return 0, errors.Permission("only the host may manage resonators")
	}
	if err := validateResonator(&res); err != nil {
		return 0, err
	}
	id, err := s.repo.CreateResonator(ctx, res.Slug, res.Name, res.IconURL, res.Enabled)
	if err != nil {
		return 0, err
	}
	s.log.Info("Resonator created", "resonator_id", id, "slug", res.Slug)
	return id, nil
}

func (s *ResonatorService) UpdateResonator(ctx context.Context, actor Actor, id int64, res ResonatorInput) error {
	if !actor.IsHost() {
		return errors.Permission("only the host may manage resonators")
	}
	if err := validateResonator(&res); err != nil {
		return err
	}
	if _, err := s.repo.GetResonator(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateResonator(ctx, id, res.Slug, res.Name, res.IconURL, res.Enabled)
}

func (s *ResonatorService) DeleteResonator(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsHost() {
		return errors.Permission("only the host may manage resonators")
	}
	return s.repo.DeleteResonator(ctx, id)
}

func validateResonator(res *ResonatorInput) error {
	res.Slug = strings.TrimSpace(strings.ToLower(res.Slug))
	res.Name = strings.TrimSpace(res.Name)
	if res.Name == "" {
		return errors.Validation("name is required")
	}
	if !slugPattern.MatchString(res.Slug) {
		return errors.Validation("slug must be lowercase kebab-case")
	}
	return nil
}
