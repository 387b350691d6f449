package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/services"
)

func setupUserService(t *testing.T) (*services.UserService, *matchFixture) {
	t.Helper()
	fx := newMatchFixture(t)
	return services.NewUserService(logger.New(), fx.repo), fx
}

func TestAuthenticate_Success(t *testing.T) {
	svc, fx := setupUserService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, fx.host, "rover", "secret", models.RoleHost, nil); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	user, err := svc.Authenticate(ctx, "rover", "secret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.Username != "rover" || user.Role != models.RoleHost {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestAuthenticate_TrimsUsername(t *testing.T) {
	svc, fx := setupUserService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, fx.host, "rover", "secret", models.RoleHost, nil); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "  rover ", "secret"); err != nil {
		t.Errorf("expected whitespace around the username to be ignored, got %v", err)
	}
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Authenticate(context.Background(), "nobody", "secret")
	if !stderrors.Is(err, services.ErrBadCredentials) {
		t.Errorf("expected ErrBadCredentials, got %v", err)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, fx := setupUserService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, fx.host, "rover", "secret", models.RoleHost, nil); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	_, err := svc.Authenticate(ctx, "rover", "wrong")
	if !stderrors.Is(err, services.ErrBadCredentials) {
		t.Errorf("expected ErrBadCredentials, got %v", err)
	}
}

func TestCreateUser_HostOnly(t *testing.T) {
	svc, fx := setupUserService(t)

	_, err := svc.CreateUser(context.Background(), fx.left, "new", "password", models.RoleHost, nil)
	if err == nil {
		t.Error("expected player actor to be rejected")
	}
}

func TestCreateUser_Validation(t *testing.T) {
	svc, fx := setupUserService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		role     models.Role
		playerID *int64
	}{
		{"empty username", "  ", "password", models.RoleHost, nil},
		{"short password", "new", "pw", models.RoleHost, nil},
		{"unknown role", "new", "password", models.Role("ADMIN"), nil},
		{"player without reference", "new", "password", models.RolePlayer, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateUser(ctx, fx.host, tc.username, tc.password, tc.role, tc.playerID); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreateUser_HashesPassword(t *testing.T) {
	svc, fx := setupUserService(t)
	ctx := context.Background()

	id, err := svc.CreateUser(ctx, fx.host, "rover", "secret", models.RoleHost, nil)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	user, err := svc.GetUser(ctx, id)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Password == "secret" {
		t.Error("password stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")) != nil {
		t.Error("stored password is not a bcrypt hash of the input")
	}
}

func TestCreateUser_PlayerAccount(t *testing.T) {
	svc, fx := setupUserService(t)
	ctx := context.Background()

	id, err := svc.CreateUser(ctx, fx.host, "cartethyia", "password", models.RolePlayer, &fx.rightID)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	user, err := svc.GetUser(ctx, id)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Role != models.RolePlayer {
		t.Errorf("expected role PLAYER, got %s", user.Role)
	}
	if user.PlayerID == nil || *user.PlayerID != fx.rightID {
		t.Errorf("expected player reference %d, got %v", fx.rightID, user.PlayerID)
	}
}
