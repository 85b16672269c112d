package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/store"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// AdminUserStore is the subset of the admin user repository used for sign-in.
type AdminUserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Create(ctx context.Context, user *models.AdminUser) (string, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

// LoginGuard enforces the failed sign-in lockout per client key.
type LoginGuard interface {
	Blocked(ctx context.Context, key string) (time.Duration, error)
	RecordFailure(ctx context.Context, key string) (time.Duration, error)
	Reset(ctx context.Context, key string) error
	Name() string
}

// LockedOutError is returned while a client is blocked from signing in.
type LockedOutError struct {
	RetryAfter time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("too many failed login attempts, try again in %d seconds", int(e.RetryAfter.Round(time.Second).Seconds()))
}

// Session is an issued admin session.
type Session struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      *models.AdminUser `json:"user"`
}

type AuthService struct {
	adminRepo AdminUserStore
	guard     LoginGuard
}

func NewAuthService(adminRepo AdminUserStore, guard LoginGuard) *AuthService {
	return &AuthService{adminRepo: adminRepo, guard: guard}
}

// GuardName reports the lockout backend for health checks.
func (s *AuthService) GuardName() string {
	return s.guard.Name()
}

// Login checks the lockout for clientKey before touching the credential
// store, then verifies email and password.
func (s *AuthService) Login(ctx context.Context, clientKey, email, password string) (*Session, error) {
	remaining, err := s.guard.Blocked(ctx, clientKey)
	if err != nil {
		log.Error().Err(err).Str("client", clientKey).Msg("Lockout check failed")
	} else if remaining > 0 {
		log.Warn().Str("client", clientKey).Dur("retry_after", remaining).Msg("Login rejected, client locked out")
		return nil, &LockedOutError{RetryAfter: remaining}
	}

	email = strings.ToLower(strings.TrimSpace(email))
	log.Debug().Str("email", email).Msg("Login attempt")

	user, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return nil, fmt.Errorf("%w: %v", utils.ErrServiceUnavailable, err)
		}
		if !errors.Is(err, store.ErrNotFound) {
			log.Error().Err(err).Str("email", email).Msg("Failed to get user by email")
			return nil, err
		}
		return nil, s.fail(ctx, clientKey, email, utils.ErrInvalidCredentials)
	}

	if !user.IsActive {
		log.Warn().Str("email", email).Msg("Account is inactive")
		return nil, s.fail(ctx, clientKey, email, utils.ErrAccountInactive)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("Password verification failed")
		return nil, s.fail(ctx, clientKey, email, utils.ErrInvalidCredentials)
	}

	if err := s.guard.Reset(ctx, clientKey); err != nil {
		log.Error().Err(err).Str("client", clientKey).Msg("Failed to reset login attempts")
	}
	if err := s.adminRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to record last login")
	}

	token, expiresAt, err := utils.GenerateJWT(user.ID, user.Email, user.Name, user.IsAdmin())
	if err != nil {
		return nil, err
	}

	log.Info().Str("email", email).Msg("Login successful")
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) fail(ctx context.Context, clientKey, email string, cause error) error {
	blocked, err := s.guard.RecordFailure(ctx, clientKey)
	if err != nil {
		log.Error().Err(err).Str("client", clientKey).Msg("Failed to record login failure")
		return cause
	}
	if blocked > 0 {
		log.Warn().Str("client", clientKey).Str("email", email).Dur("lockout", blocked).Msg("Client locked out after repeated login failures")
		return &LockedOutError{RetryAfter: blocked}
	}
	return cause
}

// EnsureAdmin creates the bootstrap admin when no user with that email
// exists. Existing users are left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, errors.New("admin email and password are required")
	}

	_, err := s.adminRepo.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	if err := s.CreateAdmin(ctx, email, password, name); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) CreateAdmin(ctx context.Context, email, password, name string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.AdminUser{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hashedPassword),
		Name:         name,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	_, err = s.adminRepo.Create(ctx, user)
	return err
}
