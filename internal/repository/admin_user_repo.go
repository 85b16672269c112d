package repository

import (
	"context"
	"strings"
	"time"

	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/store"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// adminUserDoc is the stored form of models.AdminUser, which hides the
// password hash from API output.
type adminUserDoc struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	IsActive     bool   `json:"isActive"`
	LastLoginAt  string `json:"lastLoginAt,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

func (d adminUserDoc) model() *models.AdminUser {
	return &models.AdminUser{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		Role:         d.Role,
		IsActive:     d.IsActive,
		LastLoginAt:  d.LastLoginAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type AdminUserRepository struct {
	coll collection[adminUserDoc]
}

func NewAdminUserRepository(s store.Store) *AdminUserRepository {
	return &AdminUserRepository{coll: collection[adminUserDoc]{store: s, name: store.CollectionAdminUsers}}
}

// GetByEmail looks the user up by lowercase email.
func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	users, err := r.coll.list(ctx, store.Eq("email", strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, store.ErrNotFound
	}
	return users[0].model(), nil
}

func (r *AdminUserRepository) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	d, err := r.coll.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.model(), nil
}

func (r *AdminUserRepository) Create(ctx context.Context, user *models.AdminUser) (string, error) {
	id, err := r.coll.create(ctx, &adminUserDoc{
		Email:        strings.ToLower(strings.TrimSpace(user.Email)),
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		Role:         user.Role,
		IsActive:     user.IsActive,
	})
	if err != nil {
		return "", err
	}
	user.ID = id
	return id, nil
}

func (r *AdminUserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	return r.coll.update(ctx, id, store.Document{"lastLoginAt": utils.FormatISO(time.Now())})
}
