package services

import (
	"context"
	stderrors "errors"
	"math/rand"
	"time"

	"github.com/wutheringcup/echodraft/internal/errors"
	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository"
)

// BracketSize is the only supported tournament size.
const BracketSize = 8

// BracketService materializes the single-elimination match tree for a
// tournament. It runs once per tournament; winner propagation afterwards
// is the lifecycle service's job.
type BracketService struct {
	log  logger.Logger
	repo repository.TxStore
}

// NewBracketService creates a new BracketService
func NewBracketService(log logger.Logger, repo repository.TxStore) *BracketService {
	return &BracketService{log: log, repo: repo}
}

// Generate builds the 7-match tree for exactly 8 roster players:
//
//	Q1 -> S1 LEFT    Q2 -> S1 RIGHT
//	Q3 -> S2 LEFT    Q4 -> S2 RIGHT
//	S1 -> F LEFT     S2 -> F RIGHT
//
// The roster is shuffled with seed when given (a nil seed draws a random
// one), quarterfinals take the shuffled pairs (0,1) (2,3) (4,5) (6,7),
// and semifinal/final player slots stay empty until predecessors finish.
// With overwrite, existing tournament matches are deleted first.
// Returned order: quarterfinals, semifinals, final.
func (s *BracketService) Generate(ctx context.Context, actor Actor, tournamentID int64, seed *int64, overwrite bool) ([]models.Match, error) {
	if !actor.IsHost() {
		return nil, errors.Permission("only the host may generate a bracket")
	}

	shuffleSeed := time.Now().UnixNano()
	if seed != nil {
		shuffleSeed = *seed
	}

	var matches []models.Match
	err := s.repo.InTx(ctx, func(tx repository.Store) error {
		tournament, err := tx.GetTournament(ctx, tournamentID)
		if err != nil {
			return err
		}

		players, err := tx.ListRosterPlayers(ctx, tournamentID)
		if err != nil {
			if stderrors.Is(err, repository.ErrRosterSize) {
				return errors.Validationf("bracket needs exactly %d players", BracketSize)
			}
			return err
		}

		rng := rand.New(rand.NewSource(shuffleSeed))
		rng.Shuffle(len(players), func(i, j int) {
			players[i], players[j] = players[j], players[i]
		})

		if overwrite {
			if err := tx.DeleteMatchesForTournament(ctx, tournamentID); err != nil {
				return err
			}
		}

		// The final goes in first so the semifinals can reference it.
		final := newBracketMatch(tournament.ID, 2, 1, nil, nil)
		if _, err := tx.CreateMatch(ctx, final); err != nil {
			return err
		}

		semi1 := newBracketMatch(tournament.ID, 1, 1, &final.ID, sidePtr(models.SideLeft))
		semi2 := newBracketMatch(tournament.ID, 1, 2, &final.ID, sidePtr(models.SideRight))
		if _, err := tx.CreateMatch(ctx, semi1); err != nil {
			return err
		}
		if _, err := tx.CreateMatch(ctx, semi2); err != nil {
			return err
		}

		quarterWiring := []struct {
			next *models.Match
			side models.Side
		}{
			{semi1, models.SideLeft},
			{semi1, models.SideRight},
			{semi2, models.SideLeft},
			{semi2, models.SideRight},
		}

		quarters := make([]*models.Match, 0, 4)
		for i, wiring := range quarterWiring {
			q := newBracketMatch(tournament.ID, 0, i+1, &wiring.next.ID, sidePtr(wiring.side))
			q.PlayerLeftID = &players[i*2].ID
			q.PlayerRightID = &players[i*2+1].ID
			if _, err := tx.CreateMatch(ctx, q); err != nil {
				return err
			}
			quarters = append(quarters, q)
		}

		matches = make([]models.Match, 0, 7)
		for _, q := range quarters {
			matches = append(matches, *q)
		}
		matches = append(matches, *semi1, *semi2, *final)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Bracket generated", "tournament_id", tournamentID, "matches", len(matches))
	return matches, nil
}

func newBracketMatch(tournamentID int64, roundIndex, matchIndex int, nextMatchID *int64, nextSide *models.Side) *models.Match {
	return &models.Match{
		TournamentID:  &tournamentID,
		FirstPickSide: models.SideLeft,
		RoundIndex:    roundIndex,
		MatchIndex:    matchIndex,
		NextMatchID:   nextMatchID,
		NextSide:      nextSide,
	}
}

func sidePtr(side models.Side) *models.Side {
	return &side
}
