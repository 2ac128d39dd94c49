package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/shop-api/internal/db"
	"github.com/BruksfildServices01/shop-api/internal/domain"
	"github.com/BruksfildServices01/shop-api/internal/httperr"
	"github.com/BruksfildServices01/shop-api/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user_not_found")
	ErrInvalidPassword = errors.New("invalid_password")
)

type Users interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByLogin(ctx context.Context, identifier string) (*models.User, error)
	Exists(ctx context.Context, username, email string) (bool, error)
	SetCredentials(ctx context.Context, id, passwordHash, role string) (*models.User, error)
}

// ======================================================
// SIGNUP
// ======================================================

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type Signup struct {
	users Users
}

func NewSignup(users Users) *Signup {
	return &Signup{users: users}
}

// Execute always creates a plain user; admins come from the CLI.
func (uc *Signup) Execute(ctx context.Context, in SignupInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if username == "" || in.Password == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	taken, err := uc.users.Exists(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness("user_exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if email != "" {
		u.Email = &email
	}

	if err := uc.users.Create(ctx, u); err != nil {
		// lost a race with a concurrent signup
		if db.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("user_exists")
		}
		return nil, err
	}

	return u, nil
}

// ======================================================
// LOGIN
// ======================================================

type LoginResult struct {
	Token string
	User  *models.User
}

type Login struct {
	users  Users
	tokens *Tokens
}

func NewLogin(users Users, tokens *Tokens) *Login {
	return &Login{users: users, tokens: tokens}
}

func (uc *Login) Execute(ctx context.Context, identifier, password string) (*LoginResult, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	u, err := uc.users.FindByLogin(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	token, err := uc.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: u}, nil
}

// ======================================================
// CREATE ADMIN
// ======================================================

type CreateAdmin struct {
	users Users
}

func NewCreateAdmin(users Users) *CreateAdmin {
	return &CreateAdmin{users: users}
}

// Execute creates the admin, or promotes an existing user with that
// username and resets its password. created reports which happened.
func (uc *CreateAdmin) Execute(ctx context.Context, in SignupInput) (u *models.User, created bool, err error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, false, httperr.ErrBusiness("missing_fields")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	existing, err := uc.users.FindByLogin(ctx, username)
	switch {
	case err == nil && existing.Username == username:
		promoted, err := uc.users.SetCredentials(ctx, existing.ID, string(hash), models.RoleAdmin)
		return promoted, false, err
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, false, err
	}

	u = &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		u.Email = &email
	}

	if err := uc.users.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}
