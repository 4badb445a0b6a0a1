package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/electroshop/internal/models"
	"github.com/Skotchmaster/electroshop/internal/repo"
	pkg_hash "github.com/Skotchmaster/electroshop/pkg/hash"
	"github.com/Skotchmaster/electroshop/pkg/logging"
	"github.com/Skotchmaster/electroshop/pkg/tokens"
)

const minPasswordLen = 6

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *tokens.Service
}

type AuthResult struct {
	Token     string
	UserID    uuid.UUID
	Role      string
	ExpiresAt time.Time
}

func validateRegistration(username, email, password string) error {
	if strings.TrimSpace(username) == "" || email == "" || password == "" {
		return fmt.Errorf("username, email and password are required: %w", ErrValidation)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, ErrValidation)
	}
	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("email is not valid: %w", ErrValidation)
	}
	return nil
}

// Register creates an ordinary user. The role is never taken from the caller.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register", "username", username)

	if err := validateRegistration(username, email, password); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid input", "error", err)
		return nil, err
	}

	taken, err := s.Repo.UserTaken(ctx, username, email)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot check existing users", "error", err)
		return nil, err
	}
	if taken {
		l.Warn("register_error", "status", 400, "reason", "user already exists")
		return nil, ErrUserExists
	}

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         tokens.RoleUser,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Warn("register_error", "status", 400, "reason", "user already exists")
			return nil, ErrUserExists
		}
		l.Error("register_error", "status", 500, "reason", "cannot create user", "error", err)
		return nil, err
	}

	l.Info("user_registered", "user_id", user.ID)
	return s.issue(&user)
}

func (s *AuthService) Login(ctx context.Context, emailOrUsername, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "login", emailOrUsername)

	if emailOrUsername == "" || password == "" {
		return nil, fmt.Errorf("email/username and password are required: %w", ErrValidation)
	}

	user, err := s.Repo.FindUserByLogin(ctx, emailOrUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown user")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	l.Info("login_success", "user_id", user.ID)
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, exp, err := s.Tokens.Issue(user.ID.String(), user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, UserID: user.ID, Role: user.Role, ExpiresAt: exp}, nil
}

// CurrentRole reads the stored role; the auth gateway uses it to re-check admins.
func (s *AuthService) CurrentRole(ctx context.Context, userID string) (string, bool, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return "", false, nil
	}
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return user.Role, true, nil
}

// EnsureAdmin creates the bootstrap admin, or promotes an existing account
// with that username. It reports whether anything changed.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	l := logging.FromContext(ctx).With("svc", "auth.ensure_admin", "username", username)

	existing, err := s.Repo.FindUserByLogin(ctx, username)
	switch {
	case err == nil:
		if existing.Role == tokens.RoleAdmin {
			return false, nil
		}
		if err := s.Repo.SetUserRole(ctx, existing.ID, tokens.RoleAdmin); err != nil {
			return false, err
		}
		l.Info("admin_promoted", "user_id", existing.ID)
		return true, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, err
	}

	if err := validateRegistration(username, email, password); err != nil {
		return false, err
	}
	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := models.User{Username: username, Email: email, PasswordHash: pwHash, Role: tokens.RoleAdmin}
	if err := s.Repo.CreateUser(ctx, &admin); err != nil {
		return false, err
	}
	l.Info("admin_created", "user_id", admin.ID)
	return true, nil
}
