package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository"
	"github.com/wutheringcup/echodraft/internal/services"
	"github.com/wutheringcup/echodraft/internal/testutil"
)

// fakeNotifier records emitted match events for assertions
type fakeNotifier struct {
	mu           sync.Mutex
	draftChanged []int64
	pageChanged  []int64
}

func (n *fakeNotifier) NotifyDraftChanged(matchID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.draftChanged = append(n.draftChanged, matchID)
}

func (n *fakeNotifier) NotifyPageChanged(matchID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pageChanged = append(n.pageChanged, matchID)
}

func (n *fakeNotifier) draftChangedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.draftChanged)
}

func (n *fakeNotifier) pageChangedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pageChanged)
}

// matchFixture is a ready-to-draft match with two players and a boss
type matchFixture struct {
	repo       *repository.Repository
	matchID    int64
	bossID     int64
	leftID     int64
	rightID    int64
	resonators []int64
	host       services.Actor
	left       services.Actor
	right      services.Actor
}

// newMatchFixture seeds two players, a boss, twelve enabled resonators and
// one match between the players.
func newMatchFixture(t *testing.T) *matchFixture {
	t.Helper()
	ctx := context.Background()
	repo := testutil.NewTestRepository(t)

	leftID, err := repo.CreatePlayer(ctx, "Rover")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	rightID, err := repo.CreatePlayer(ctx, "Cartethyia")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}

	bossID, err := repo.CreateBoss(ctx, "Hecate")
	if err != nil {
		t.Fatalf("CreateBoss failed: %v", err)
	}

	var resonators []int64
	for i := 1; i <= 12; i++ {
		id, err := repo.CreateResonator(ctx, fmt.Sprintf("res-%02d", i), fmt.Sprintf("Resonator %02d", i), "", true)
		if err != nil {
			t.Fatalf("CreateResonator failed: %v", err)
		}
		resonators = append(resonators, id)
	}

	matchID, err := repo.CreateMatch(ctx, &models.Match{
		PlayerLeftID:  &leftID,
		PlayerRightID: &rightID,
		BossID:        &bossID,
		FirstPickSide: models.SideLeft,
	})
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}

	return &matchFixture{
		repo:       repo,
		matchID:    matchID,
		bossID:     bossID,
		leftID:     leftID,
		rightID:    rightID,
		resonators: resonators,
		host:       services.Actor{UserID: 1, Role: models.RoleHost},
		left:       services.Actor{UserID: 2, Role: models.RolePlayer, PlayerID: &leftID},
		right:      services.Actor{UserID: 3, Role: models.RolePlayer, PlayerID: &rightID},
	}
}
