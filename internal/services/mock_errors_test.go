package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository/mock"
	"github.com/wutheringcup/echodraft/internal/services"
)

func TestDraftAct_StorageErrorSurfaces(t *testing.T) {
	fx := newMatchFixture(t)
	mockRepo := mock.NewRepository(fx.repo)
	mockRepo.UpsertDraftActionError = stderrors.New("database error")
	svc := services.NewDraftService(logger.New(), mockRepo, &fakeNotifier{})

	_, err := svc.SubmitAction(context.Background(), fx.left, fx.matchID,
		models.SideLeft, models.ActionBan, fx.resonators[0])
	if err == nil {
		t.Error("expected storage error to surface")
	}
}

func TestDraftAct_MatchLookupErrorSurfaces(t *testing.T) {
	fx := newMatchFixture(t)
	mockRepo := mock.NewRepository(fx.repo)
	mockRepo.GetMatchForUpdateError = stderrors.New("database error")
	svc := services.NewDraftService(logger.New(), mockRepo, &fakeNotifier{})

	_, err := svc.SubmitAction(context.Background(), fx.left, fx.matchID,
		models.SideLeft, models.ActionBan, fx.resonators[0])
	if err == nil {
		t.Error("expected lookup error to surface")
	}
}

func TestDraftAct_StorageErrorEmitsNoEvents(t *testing.T) {
	fx := newMatchFixture(t)
	mockRepo := mock.NewRepository(fx.repo)
	mockRepo.UpsertDraftActionError = stderrors.New("database error")
	notifier := &fakeNotifier{}
	svc := services.NewDraftService(logger.New(), mockRepo, notifier)

	svc.SubmitAction(context.Background(), fx.left, fx.matchID, models.SideLeft, models.ActionBan, fx.resonators[0])

	if notifier.draftChangedCount() != 0 {
		t.Error("expected no events after a failed action")
	}
}

func TestSubmitTime_SaveErrorSurfaces(t *testing.T) {
	fx := newMatchFixture(t)
	mockRepo := mock.NewRepository(fx.repo)
	svc := services.NewLifecycleService(logger.New(), mockRepo, &fakeNotifier{})
	ctx := context.Background()

	if _, err := svc.Start(ctx, fx.host, fx.matchID); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	mockRepo.SaveMatchError = stderrors.New("database error")
	if _, err := svc.SubmitTime(ctx, fx.left, fx.matchID, models.SideLeft, "1:00"); err == nil {
		t.Error("expected save error to surface")
	}
}

func TestGenerateBracket_RosterErrorSurfaces(t *testing.T) {
	fx := newMatchFixture(t)
	ctx := context.Background()

	tournamentID, err := fx.repo.CreateTournament(ctx, "Cup", true)
	if err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}

	mockRepo := mock.NewRepository(fx.repo)
	mockRepo.ListRosterPlayersError = stderrors.New("database error")
	svc := services.NewBracketService(logger.New(), mockRepo)

	if _, err := svc.Generate(ctx, fx.host, tournamentID, nil, false); err == nil {
		t.Error("expected roster error to surface")
	}
}
