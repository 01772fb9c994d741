package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// RegisterInput is the data needed to create a principal under one guard.
type RegisterInput struct {
	ID       string
	Name     string
	Email    string
	Password string
	Age      int
	Sex      string
	ImageURL *string
	Salary   decimal.Decimal
	Role     string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	Principal *domain.Principal
	Grant     domain.Grant
}

// Profile is the authenticated principal together with its grant.
type Profile struct {
	Principal *domain.Principal
	Grant     domain.Grant
}

// AuthService authenticates principals of a single guard.
type AuthService interface {
	Guard() domain.Guard
	Register(ctx context.Context, in RegisterInput) (*domain.Principal, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, tokenID string) error
	Authenticate(ctx context.Context, rawToken string) (*domain.Identity, error)
	Profile(ctx context.Context, principalID string) (*Profile, error)
}

// UpdatePrincipalInput is the service-level update; Password is plain text
// and gets hashed before storage.
type UpdatePrincipalInput struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
	Sex      *string
	ImageURL *string
	Salary   *decimal.Decimal
	Role     *string
}

// PrincipalService manages the principals of a single guard.
type PrincipalService interface {
	Guard() domain.Guard
	Get(ctx context.Context, id string) (*domain.Principal, error)
	GetByEmail(ctx context.Context, email string) (*domain.Principal, error)
	SearchByName(ctx context.Context, fragment string) ([]*domain.Principal, error)
	List(ctx context.Context) ([]*domain.Principal, error)
	Update(ctx context.Context, id string, in UpdatePrincipalInput) (*domain.Principal, error)
	Delete(ctx context.Context, id string) error
}
