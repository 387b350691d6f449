package services_test

import (
	"context"
	"testing"

	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/services"
)

func setupDraftService(t *testing.T) (*services.DraftService, *matchFixture, *fakeNotifier) {
	t.Helper()
	fx := newMatchFixture(t)
	notifier := &fakeNotifier{}
	svc := services.NewDraftService(logger.New(), fx.repo, notifier)
	return svc, fx, notifier
}

// completeBans walks both sides through all three ban slots
func completeBans(t *testing.T, svc *services.DraftService, fx *matchFixture) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < services.BanCount; i++ {
		if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[i]); err != nil {
			t.Fatalf("left ban slot %d failed: %v", i+1, err)
		}
		if _, err := svc.SubmitAction(ctx, fx.right, fx.matchID, models.SideRight, models.ActionBan, fx.resonators[3+i]); err != nil {
			t.Fatalf("right ban slot %d failed: %v", i+1, err)
		}
	}
}

func TestSubmitAction_PendingHiddenFromOpponent(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	view, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[0])
	if err != nil {
		t.Fatalf("SubmitAction failed: %v", err)
	}

	// The acting side sees its own pending choice
	if view.Pending == nil {
		t.Fatal("expected acting side to see its pending ban")
	}
	if view.Pending.ResonatorID != fx.resonators[0] {
		t.Errorf("expected pending resonator %d, got %d", fx.resonators[0], view.Pending.ResonatorID)
	}
	if len(view.BansLeftToRight) != 0 {
		t.Error("unlocked ban must not appear in the locked ban list")
	}

	// The opponent sees nothing until the slot locks
	opponentView, err := svc.View(ctx, fx.right, fx.matchID)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if opponentView.Pending != nil {
		t.Error("opponent must not see the other side's pending ban")
	}
	if len(opponentView.BansLeftToRight) != 0 {
		t.Error("opponent must not see the unlocked ban")
	}
}

func TestSubmitAction_SlotLocksWhenBothSidesCommit(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[0]); err != nil {
		t.Fatalf("left ban failed: %v", err)
	}
	view, err := svc.SubmitAction(ctx, fx.right, fx.matchID, models.SideRight, models.ActionBan, fx.resonators[3])
	if err != nil {
		t.Fatalf("right ban failed: %v", err)
	}

	if len(view.BansLeftToRight) != 1 || len(view.BansRightToLeft) != 1 {
		t.Fatalf("expected both bans locked, got %d/%d", len(view.BansLeftToRight), len(view.BansRightToLeft))
	}
	if view.CurrentBanSlot != 2 {
		t.Errorf("expected ban slot to advance to 2, got %d", view.CurrentBanSlot)
	}
}

func TestSubmitAction_ReselectionOverwritesPending(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[0]); err != nil {
		t.Fatalf("first selection failed: %v", err)
	}
	view, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[1])
	if err != nil {
		t.Fatalf("re-selection failed: %v", err)
	}

	if view.Pending == nil || view.Pending.ResonatorID != fx.resonators[1] {
		t.Fatal("expected pending entry to hold the replacement resonator")
	}

	// The slot holds one row per side, so locking it yields exactly one
	// left ban carrying the replacement.
	if _, err := svc.SubmitAction(ctx, fx.right, fx.matchID, models.SideRight, models.ActionBan, fx.resonators[3]); err != nil {
		t.Fatalf("right ban failed: %v", err)
	}
	locked, err := svc.View(ctx, fx.host, fx.matchID)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if len(locked.BansLeftToRight) != 1 {
		t.Fatalf("expected exactly one left ban after re-selection, got %d", len(locked.BansLeftToRight))
	}
	if locked.BansLeftToRight[0].ResonatorID != fx.resonators[1] {
		t.Errorf("expected locked ban to be the replacement, got %d", locked.BansLeftToRight[0].ResonatorID)
	}
}

func TestSubmitAction_FinalBanSlotConfirmsPhase(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	completeBans(t, svc, fx)

	view, err := svc.View(ctx, fx.host, fx.matchID)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if !view.BanPhaseDone {
		t.Error("expected ban phase to be confirmed after the final slot locked")
	}
	if view.CurrentPickSlot != 1 {
		t.Errorf("expected pick phase to open at slot 1, got %d", view.CurrentPickSlot)
	}

	// Further bans are rejected
	if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[6]); err == nil {
		t.Error("expected a ban after phase confirmation to be rejected")
	}
}

func TestSubmitAction_PickBeforeBansConfirmed(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	_, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionPick, fx.resonators[0])
	if err == nil {
		t.Fatal("expected pick before ban confirmation to be rejected")
	}
}

func TestSubmitAction_BannedResonatorNotPickable(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	completeBans(t, svc, fx)

	// resonators[3] was banned by the right side against the left side
	_, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionPick, fx.resonators[3])
	if err == nil {
		t.Fatal("expected pick of a resonator banned against the side to be rejected")
	}

	// A resonator the left side itself banned targets the right side and
	// stays pickable for the left side.
	if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionPick, fx.resonators[0]); err != nil {
		t.Errorf("expected own-ban resonator to stay pickable, got %v", err)
	}
}

func TestSubmitAction_SideCannotRepeatOwnBan(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[0]); err != nil {
		t.Fatalf("left ban failed: %v", err)
	}
	if _, err := svc.SubmitAction(ctx, fx.right, fx.matchID, models.SideRight, models.ActionBan, fx.resonators[3]); err != nil {
		t.Fatalf("right ban failed: %v", err)
	}

	_, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[0])
	if err == nil {
		t.Fatal("expected repeated ban of the same resonator to be rejected")
	}
}

func TestSubmitAction_PlayerCannotActForOpponent(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	_, err := svc.SubmitAction(ctx, fx.right, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[0])
	if err == nil {
		t.Fatal("expected a player acting for the opposing side to be rejected")
	}
}

func TestSubmitAction_HostMayActForEitherSide(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	if _, err := svc.SubmitAction(ctx, fx.host, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[0]); err != nil {
		t.Errorf("host acting for left failed: %v", err)
	}
	if _, err := svc.SubmitAction(ctx, fx.host, fx.matchID, models.SideRight, models.ActionBan, fx.resonators[3]); err != nil {
		t.Errorf("host acting for right failed: %v", err)
	}
}

func TestSubmitAction_InvalidInputs(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, "MIDDLE", models.ActionBan, fx.resonators[0]); err == nil {
		t.Error("expected unknown side to be rejected")
	}
	if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, "SWAP", fx.resonators[0]); err == nil {
		t.Error("expected unknown action type to be rejected")
	}
	if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionBan, 99999); err == nil {
		t.Error("expected unknown resonator to be rejected")
	}
}

func TestSubmitAction_DisabledResonatorNotSelectable(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	disabled, err := fx.repo.CreateResonator(ctx, "benched", "Benched", "", false)
	if err != nil {
		t.Fatalf("CreateResonator failed: %v", err)
	}

	if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionBan, disabled); err == nil {
		t.Error("expected disabled resonator to be rejected")
	}
}

func TestResetDraft_ClearsActionsAndFlags(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	completeBans(t, svc, fx)

	if err := svc.ResetDraft(ctx, fx.host, fx.matchID); err != nil {
		t.Fatalf("ResetDraft failed: %v", err)
	}

	view, err := svc.View(ctx, fx.host, fx.matchID)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if view.BanPhaseDone {
		t.Error("expected ban confirmation flags to be cleared")
	}
	if view.CurrentBanSlot != 1 {
		t.Errorf("expected draft to restart at ban slot 1, got %d", view.CurrentBanSlot)
	}
	if len(view.BansLeftToRight)+len(view.BansRightToLeft) != 0 {
		t.Error("expected all draft actions to be deleted")
	}

	// A fresh draft can run again from the top
	if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[0]); err != nil {
		t.Errorf("expected ban after reset to succeed, got %v", err)
	}
}

func TestResetDraft_HostOnly(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	if err := svc.ResetDraft(ctx, fx.left, fx.matchID); err == nil {
		t.Fatal("expected reset by a player to be rejected")
	}
}

func TestSubmitAction_Notifications(t *testing.T) {
	svc, fx, notifier := setupDraftService(t)
	ctx := context.Background()

	if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[0]); err != nil {
		t.Fatalf("SubmitAction failed: %v", err)
	}
	if notifier.draftChangedCount() != 1 {
		t.Errorf("expected one draft-changed event, got %d", notifier.draftChangedCount())
	}
	if notifier.pageChangedCount() != 0 {
		t.Errorf("expected no page-changed event yet, got %d", notifier.pageChangedCount())
	}
}

func TestSubmitAction_FinalPickEmitsPageChanged(t *testing.T) {
	svc, fx, notifier := setupDraftService(t)
	ctx := context.Background()

	completeBans(t, svc, fx)
	for i := 0; i < services.PickCount; i++ {
		if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionPick, fx.resonators[6+i]); err != nil {
			t.Fatalf("left pick slot %d failed: %v", i+1, err)
		}
		if _, err := svc.SubmitAction(ctx, fx.right, fx.matchID, models.SideRight, models.ActionPick, fx.resonators[9+i]); err != nil {
			t.Fatalf("right pick slot %d failed: %v", i+1, err)
		}
	}

	view, err := svc.View(ctx, fx.host, fx.matchID)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if !view.PickPhaseDone {
		t.Error("expected pick phase to be confirmed")
	}
	if notifier.pageChangedCount() != 1 {
		t.Errorf("expected exactly one page-changed event, got %d", notifier.pageChangedCount())
	}
}

func TestAvailableFor_ExcludesAndSorts(t *testing.T) {
	svc, fx, _ := setupDraftService(t)
	ctx := context.Background()

	if _, err := svc.SubmitAction(ctx, fx.left, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[0]); err != nil {
		t.Fatalf("SubmitAction failed: %v", err)
	}

	available, err := svc.AvailableFor(ctx, fx.matchID, models.SideLeft, models.ActionBan, false)
	if err != nil {
		t.Fatalf("AvailableFor failed: %v", err)
	}
	if len(available) != len(fx.resonators)-1 {
		t.Fatalf("expected %d selectable resonators, got %d", len(fx.resonators)-1, len(available))
	}
	for _, res := range available {
		if res.ID == fx.resonators[0] {
			t.Error("pending ban must not be selectable again without reselect")
		}
	}
	for i := 1; i < len(available); i++ {
		if available[i-1].Name > available[i].Name {
			t.Fatal("expected catalog to be sorted by name")
		}
	}

	// With reselect, the pending resonator reappears
	withReselect, err := svc.AvailableFor(ctx, fx.matchID, models.SideLeft, models.ActionBan, true)
	if err != nil {
		t.Fatalf("AvailableFor failed: %v", err)
	}
	if len(withReselect) != len(fx.resonators) {
		t.Errorf("expected reselect catalog to include the pending resonator, got %d entries", len(withReselect))
	}
}
