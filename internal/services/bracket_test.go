package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository"
	"github.com/wutheringcup/echodraft/internal/services"
	"github.com/wutheringcup/echodraft/internal/testutil"
)

func setupBracketService(t *testing.T, rosterSize int) (*services.BracketService, *repository.Repository, int64, services.Actor) {
	t.Helper()
	ctx := context.Background()
	repo := testutil.NewTestRepository(t)

	tournamentID, err := repo.CreateTournament(ctx, "Whispering Sea Cup", true)
	if err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}

	var playerIDs []int64
	for i := 1; i <= rosterSize; i++ {
		id, err := repo.CreatePlayer(ctx, fmt.Sprintf("Player %02d", i))
		if err != nil {
			t.Fatalf("CreatePlayer failed: %v", err)
		}
		playerIDs = append(playerIDs, id)
	}
	if err := repo.SetRoster(ctx, tournamentID, playerIDs); err != nil {
		t.Fatalf("SetRoster failed: %v", err)
	}

	svc := services.NewBracketService(logger.New(), repo)
	return svc, repo, tournamentID, services.Actor{UserID: 1, Role: models.RoleHost}
}

func TestGenerate_HostOnly(t *testing.T) {
	svc, _, tournamentID, _ := setupBracketService(t, 8)
	ctx := context.Background()

	player := services.Actor{UserID: 2, Role: models.RolePlayer}
	if _, err := svc.Generate(ctx, player, tournamentID, nil, false); err == nil {
		t.Fatal("expected generation by a player to be rejected")
	}
}

func TestGenerate_RequiresExactlyEightPlayers(t *testing.T) {
	for _, size := range []int{0, 7, 9} {
		t.Run(fmt.Sprintf("roster_%d", size), func(t *testing.T) {
			svc, _, tournamentID, host := setupBracketService(t, size)

			if _, err := svc.Generate(context.Background(), host, tournamentID, nil, false); err == nil {
				t.Fatalf("expected roster of %d to be rejected", size)
			}
		})
	}
}

func TestGenerate_BuildsSevenMatchTree(t *testing.T) {
	svc, _, tournamentID, host := setupBracketService(t, 8)
	ctx := context.Background()

	seed := int64(42)
	matches, err := svc.Generate(ctx, host, tournamentID, &seed, false)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(matches) != 7 {
		t.Fatalf("expected 7 matches, got %d", len(matches))
	}

	quarters, semis, final := matches[:4], matches[4:6], matches[6]

	if final.RoundIndex != 2 || final.MatchIndex != 1 {
		t.Errorf("expected final at round 2 index 1, got round %d index %d", final.RoundIndex, final.MatchIndex)
	}
	if final.NextMatchID != nil {
		t.Error("expected final to have no successor")
	}
	if final.PlayerLeftID != nil || final.PlayerRightID != nil {
		t.Error("expected final player slots to start empty")
	}

	for i, s := range semis {
		if s.RoundIndex != 1 || s.MatchIndex != i+1 {
			t.Errorf("semi %d: expected round 1 index %d, got round %d index %d", i+1, i+1, s.RoundIndex, s.MatchIndex)
		}
		if s.NextMatchID == nil || *s.NextMatchID != final.ID {
			t.Errorf("semi %d: expected successor final %d, got %v", i+1, final.ID, s.NextMatchID)
		}
		if s.PlayerLeftID != nil || s.PlayerRightID != nil {
			t.Errorf("semi %d: expected player slots to start empty", i+1)
		}
	}
	if *semis[0].NextSide != models.SideLeft || *semis[1].NextSide != models.SideRight {
		t.Error("expected S1 to feed the final's left slot and S2 its right slot")
	}

	// Quarter wiring: Q1/Q2 feed S1, Q3/Q4 feed S2, left side first.
	wantNext := []struct {
		matchID int64
		side    models.Side
	}{
		{semis[0].ID, models.SideLeft},
		{semis[0].ID, models.SideRight},
		{semis[1].ID, models.SideLeft},
		{semis[1].ID, models.SideRight},
	}
	seen := make(map[int64]int)
	for i, q := range quarters {
		if q.RoundIndex != 0 || q.MatchIndex != i+1 {
			t.Errorf("quarter %d: expected round 0 index %d, got round %d index %d", i+1, i+1, q.RoundIndex, q.MatchIndex)
		}
		if q.NextMatchID == nil || *q.NextMatchID != wantNext[i].matchID || *q.NextSide != wantNext[i].side {
			t.Errorf("quarter %d: wrong successor wiring", i+1)
		}
		if q.PlayerLeftID == nil || q.PlayerRightID == nil {
			t.Fatalf("quarter %d: expected both player slots filled", i+1)
		}
		seen[*q.PlayerLeftID]++
		seen[*q.PlayerRightID]++
	}

	// Every roster player appears in exactly one quarterfinal slot
	if len(seen) != 8 {
		t.Fatalf("expected 8 distinct players across quarterfinals, got %d", len(seen))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("player %d appears %d times", id, count)
		}
	}
}

func TestGenerate_SeedIsDeterministic(t *testing.T) {
	ctx := context.Background()
	seed := int64(7)

	pairings := func(t *testing.T) [][2]int64 {
		svc, _, tournamentID, host := setupBracketService(t, 8)
		matches, err := svc.Generate(ctx, host, tournamentID, &seed, false)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		var out [][2]int64
		for _, q := range matches[:4] {
			out = append(out, [2]int64{*q.PlayerLeftID, *q.PlayerRightID})
		}
		return out
	}

	first := pairings(t)
	second := pairings(t)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected identical pairings for the same seed, got %v vs %v", first, second)
		}
	}
}

func TestGenerate_OverwriteReplacesExistingBracket(t *testing.T) {
	svc, repo, tournamentID, host := setupBracketService(t, 8)
	ctx := context.Background()

	if _, err := svc.Generate(ctx, host, tournamentID, nil, false); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := svc.Generate(ctx, host, tournamentID, nil, true); err != nil {
		t.Fatalf("overwrite Generate failed: %v", err)
	}

	matches, err := repo.ListMatchesForTournament(ctx, tournamentID)
	if err != nil {
		t.Fatalf("ListMatchesForTournament failed: %v", err)
	}
	if len(matches) != 7 {
		t.Errorf("expected overwrite to leave exactly 7 matches, got %d", len(matches))
	}
}
