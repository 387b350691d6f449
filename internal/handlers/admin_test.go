package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/wutheringcup/echodraft/internal/handlers"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/services"
)

// ==================== Player Tests ====================

func TestPlayerCRUD(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/players",
		handlers.PlayerRequest{DisplayName: "Phoebe"}, setup.hostCookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[map[string]int64](t, rec)
	playerID := created["id"]

	rec = setup.do(t, http.MethodPut, fmt.Sprintf("/api/players/%d", playerID),
		handlers.PlayerRequest{DisplayName: "Phoebe Renamed"}, setup.hostCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", rec.Code)
	}

	rec = setup.do(t, http.MethodGet, fmt.Sprintf("/api/players/%d", playerID), nil, nil)
	player := decodeBody[models.Player](t, rec)
	if player.DisplayName != "Phoebe Renamed" {
		t.Errorf("expected renamed player, got %q", player.DisplayName)
	}

	rec = setup.do(t, http.MethodDelete, fmt.Sprintf("/api/players/%d", playerID), nil, setup.hostCookie)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}

	rec = setup.do(t, http.MethodGet, fmt.Sprintf("/api/players/%d", playerID), nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCreatePlayer_PlayerForbidden(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/players",
		handlers.PlayerRequest{DisplayName: "Nope"}, setup.leftCookie)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

// ==================== Resonator Tests ====================

func TestResonatorCreate_AppearsInList(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/resonators", services.ResonatorInput{
		Slug:    "phrolova",
		Name:    "Phrolova",
		Enabled: true,
	}, setup.hostCookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = setup.do(t, http.MethodGet, "/api/resonators", nil, nil)
	resonators := decodeBody[[]models.Resonator](t, rec)
	var found bool
	for _, res := range resonators {
		if res.Slug == "phrolova" {
			found = true
		}
	}
	if !found {
		t.Error("expected the new resonator in the catalog")
	}
}

func TestResonatorDisable_LeavesDraftCatalog(t *testing.T) {
	setup := newTestSetup(t)

	// Disable one resonator, then check it is gone from the draft catalog
	rec := setup.do(t, http.MethodPut, fmt.Sprintf("/api/resonators/%d", setup.resonators[0]),
		services.ResonatorInput{Slug: "res-01", Name: "Resonator 01", Enabled: false}, setup.hostCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	path := fmt.Sprintf("/api/matches/%d/draft/catalog?side=LEFT&action_type=BAN", setup.matchID)
	rec = setup.do(t, http.MethodGet, path, nil, nil)
	catalog := decodeBody[[]models.Resonator](t, rec)
	for _, res := range catalog {
		if res.ID == setup.resonators[0] {
			t.Error("expected the disabled resonator to leave the draft catalog")
		}
	}
}

// ==================== Boss and Leaderboard Tests ====================

func TestBossCRUD(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/bosses",
		handlers.BossRequest{Name: "Fallacy of No Return"}, setup.hostCookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}
	created := decodeBody[map[string]int64](t, rec)

	rec = setup.do(t, http.MethodPut, fmt.Sprintf("/api/bosses/%d", created["id"]),
		handlers.BossRequest{Name: "Impermanence Heron"}, setup.hostCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", rec.Code)
	}

	rec = setup.do(t, http.MethodDelete, fmt.Sprintf("/api/bosses/%d", created["id"]), nil, setup.hostCookie)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rec.Code)
	}
}

func TestHandleLeaderboards_ReflectsSubmittedTimes(t *testing.T) {
	setup := newTestSetup(t)

	// Run a match so a personal best lands on the leaderboard
	rec := setup.do(t, http.MethodPost, fmt.Sprintf("/api/matches/%d/start", setup.matchID), nil, setup.hostCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("start failed: %d", rec.Code)
	}
	rec = setup.do(t, http.MethodPost, fmt.Sprintf("/api/matches/%d/time", setup.matchID),
		handlers.SubmitTimeRequest{Side: "LEFT", Time: "1:02.500"}, setup.leftCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("time failed: %d", rec.Code)
	}

	rec = setup.do(t, http.MethodGet, "/api/leaderboards", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	boards := decodeBody[[]services.BossLeaderboard](t, rec)
	var found bool
	for _, board := range boards {
		if board.Boss.ID != setup.bossID {
			continue
		}
		for _, entry := range board.Entries {
			if entry.PlayerID == setup.leftID && entry.BestTimeMs == 62500 {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected the submitted time on the boss leaderboard")
	}
}

// ==================== Tournament Tests ====================

func TestTournamentRoster_RoundTrip(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/tournaments",
		handlers.TournamentRequest{Name: "Rinascita Open", Active: true}, setup.hostCookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}
	created := decodeBody[map[string]int64](t, rec)
	tournamentID := created["id"]

	rec = setup.do(t, http.MethodPut, fmt.Sprintf("/api/tournaments/%d/roster", tournamentID),
		handlers.RosterRequest{PlayerIDs: []int64{setup.leftID, setup.rightID}}, setup.hostCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("set roster: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = setup.do(t, http.MethodGet, fmt.Sprintf("/api/tournaments/%d/roster", tournamentID), nil, nil)
	roster := decodeBody[[]models.Player](t, rec)
	if len(roster) != 2 {
		t.Errorf("expected roster of 2, got %d", len(roster))
	}
}

func TestSetRoster_PlayerForbidden(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/tournaments",
		handlers.TournamentRequest{Name: "Cup", Active: true}, setup.hostCookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}
	created := decodeBody[map[string]int64](t, rec)

	rec = setup.do(t, http.MethodPut, fmt.Sprintf("/api/tournaments/%d/roster", created["id"]),
		handlers.RosterRequest{PlayerIDs: []int64{setup.leftID}}, setup.leftCookie)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}
