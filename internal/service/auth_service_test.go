package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/affordablebilliards/billiards_api/internal/cache"
	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/repository"
	"github.com/affordablebilliards/billiards_api/internal/store"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// countingUsers wraps the real repository and counts credential lookups.
type countingUsers struct {
	*repository.AdminUserRepository
	mu      sync.Mutex
	lookups int
}

func (c *countingUsers) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	c.mu.Lock()
	c.lookups++
	c.mu.Unlock()
	return c.AdminUserRepository.GetByEmail(ctx, email)
}

func newAuthService(t *testing.T) (*AuthService, *countingUsers) {
	t.Helper()
	utils.InitJWT("test-secret", time.Hour)
	users := &countingUsers{AdminUserRepository: repository.NewAdminUserRepository(store.NewMemory())}
	svc := NewAuthService(users, cache.NewMemoryLoginGuard(3, 5*time.Minute))
	if _, err := svc.EnsureAdmin(context.Background(), "Admin@Example.com", "hunter22", "Matt"); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}
	users.lookups = 0
	return svc, users
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newAuthService(t)
	sess, err := svc.Login(context.Background(), "10.0.0.1", " admin@example.com ", "hunter22")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	claims, err := utils.ValidateJWT(sess.Token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if !claims.IsAdmin || claims.Email != "admin@example.com" || claims.Name != "Matt" {
		t.Errorf("claims = %+v", claims)
	}
	if !sess.ExpiresAt.After(time.Now()) {
		t.Errorf("expiresAt = %v", sess.ExpiresAt)
	}
}

func TestLoginLockout(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(ctx, "10.0.0.2", "admin@example.com", "wrong"); !errors.Is(err, utils.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: err = %v", i+1, err)
		}
	}
	_, err := svc.Login(ctx, "10.0.0.2", "admin@example.com", "wrong")
	var locked *LockedOutError
	if !errors.As(err, &locked) || locked.RetryAfter != 5*time.Minute {
		t.Fatalf("third failure: err = %v, want LockedOutError", err)
	}

	before := users.lookups
	_, err = svc.Login(ctx, "10.0.0.2", "admin@example.com", "hunter22")
	if !errors.As(err, &locked) {
		t.Fatalf("correct password while locked: err = %v", err)
	}
	if users.lookups != before {
		t.Error("credential store consulted while locked out")
	}

	if _, err := svc.Login(ctx, "10.0.0.3", "admin@example.com", "hunter22"); err != nil {
		t.Errorf("other client blocked: %v", err)
	}
}

func TestLoginResetsFailuresOnSuccess(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	svc.Login(ctx, "ip", "admin@example.com", "wrong")
	svc.Login(ctx, "ip", "admin@example.com", "wrong")
	if _, err := svc.Login(ctx, "ip", "admin@example.com", "hunter22"); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Login(ctx, "ip", "admin@example.com", "wrong")
	if !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Errorf("counter not reset: err = %v", err)
	}
}

func TestLoginUnknownEmailCountsAsFailure(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)
	var err error
	for i := 0; i < 3; i++ {
		_, err = svc.Login(ctx, "ip", "nobody@example.com", "x")
	}
	var locked *LockedOutError
	if !errors.As(err, &locked) {
		t.Fatalf("err = %v, want lockout", err)
	}
	if !strings.Contains(locked.Error(), "300 seconds") {
		t.Errorf("message = %q", locked.Error())
	}
}

func TestLoginStoreUnavailable(t *testing.T) {
	utils.InitJWT("test-secret", time.Hour)
	svc := NewAuthService(repository.NewAdminUserRepository(store.NewUnavailable(nil)), cache.NewMemoryLoginGuard(3, time.Minute))
	_, err := svc.Login(context.Background(), "ip", "a@b.co", "x")
	if !errors.Is(err, utils.ErrServiceUnavailable) {
		t.Errorf("err = %v, want ErrServiceUnavailable", err)
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, _ := newAuthService(t)
	created, err := svc.EnsureAdmin(context.Background(), "admin@example.com", "other", "Other")
	if err != nil || created {
		t.Errorf("EnsureAdmin() = %v, %v; want false, nil", created, err)
	}
	if _, err := svc.Login(context.Background(), "ip", "admin@example.com", "hunter22"); err != nil {
		t.Errorf("original password no longer works: %v", err)
	}
}
