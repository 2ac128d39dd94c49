package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-api/internal/domain"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

type UserGormRepository struct {
	users *Gorm[models.User]
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{users: NewGorm[models.User](db)}
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	return r.users.Create(ctx, u)
}

func (r *UserGormRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.users.FindByID(ctx, id, Query{})
}

// FindByLogin matches identifier against the username or the email.
func (r *UserGormRepository) FindByLogin(ctx context.Context, identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)

	found, err := r.users.Find(ctx, Query{
		Scopes: []Scope{func(tx *gorm.DB) *gorm.DB {
			return tx.Where("username = ? OR email = ?", identifier, strings.ToLower(identifier))
		}},
		Order: "created_at ASC",
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domain.ErrNotFound
	}
	return &found[0], nil
}

// Exists reports whether the username or, when non-empty, the email is
// already taken.
func (r *UserGormRepository) Exists(ctx context.Context, username, email string) (bool, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		if email == "" {
			return tx.Where("username = ?", username)
		}
		return tx.Where("username = ? OR email = ?", username, email)
	}

	n, err := r.users.Count(ctx, Query{Scopes: []Scope{scope}})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserGormRepository) SetCredentials(
	ctx context.Context,
	id string,
	passwordHash string,
	role string,
) (*models.User, error) {
	return r.users.UpdateByID(ctx, id, Update{Set: map[string]any{
		"password_hash": passwordHash,
		"role":          role,
	}})
}
