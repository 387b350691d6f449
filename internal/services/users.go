package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/wutheringcup/echodraft/internal/errors"
	"github.com/wutheringcup/echodraft/internal/logger"
	"github.com/wutheringcup/echodraft/internal/models"
	"github.com/wutheringcup/echodraft/internal/repository"
)

// ErrBadCredentials is returned for unknown users and wrong passwords
// alike, so login failures do not reveal which of the two it was.
var ErrBadCredentials = errors.Permission("invalid credentials")

// UserService handles accounts and login checks
type UserService struct {
	log  logger.Logger
	repo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(log logger.Logger, repo repository.UserRepository) *UserService {
	return &UserService{log: log, repo: repo}
}

// Authenticate checks a username/password pair and returns the account.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err == repository.ErrNotFound {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

// CreateUser registers an account. Host only; player accounts reference
// their Player record so the capability middleware can derive match sides.
func (s *UserService) CreateUser(ctx context.Context, actor Actor, username, password string, role models.Role, playerID *int64) (int64, error) {
	if !actor.IsHost() {
		return 0, errors.Permission("only the host may create accounts")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, errors.Validation("username is required")
	}
	if len(password) < 4 {
		return 0, errors.Validation("password is too short")
	}
	if role != models.RoleHost && role != models.RolePlayer {
		return 0, errors.Validationf("unknown role %q", role)
	}
	if role == models.RolePlayer && playerID == nil {
		return 0, errors.Validation("player accounts need a player reference")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, errors.Internal(err)
	}

	id, err := s.repo.CreateUser(ctx, username, string(hash), role, playerID)
	if err != nil {
		return 0, err
	}
	s.log.Info("User created", "user_id", id, "username", username, "role", role)
	return id, nil
}
