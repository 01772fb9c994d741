package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// PrincipalUpdate carries the fields to change on a principal. Nil fields
// are left untouched. Salary and Role only apply to staff guards.
type PrincipalUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Age          *int
	Sex          *string
	ImageURL     *string
	Salary       *decimal.Decimal
	Role         *string
}

// CredentialStore persists the principals of a single guard. Identity and
// email are unique within the store only.
type CredentialStore interface {
	Guard() domain.Guard
	// Create inserts p. Returns domain.ErrDuplicateIdentity or
	// domain.ErrDuplicateEmail when a unique key is taken.
	Create(ctx context.Context, p *domain.Principal) error
	FindByID(ctx context.Context, id string) (*domain.Principal, error)
	FindByEmail(ctx context.Context, email string) (*domain.Principal, error)
	// SearchByName returns principals whose name contains fragment.
	SearchByName(ctx context.Context, fragment string) ([]*domain.Principal, error)
	List(ctx context.Context) ([]*domain.Principal, error)
	Update(ctx context.Context, id string, upd PrincipalUpdate) (*domain.Principal, error)
	Delete(ctx context.Context, id string) error
}

// TokenStore persists issued access tokens so they can be revoked.
type TokenStore interface {
	Store(ctx context.Context, token domain.AccessToken) error
	Find(ctx context.Context, id string) (*domain.AccessToken, error)
	Delete(ctx context.Context, id string) error
	// DeleteByName removes every token of the principal issued under name.
	DeleteByName(ctx context.Context, guard domain.Guard, principalID, name string) error
	DeleteAll(ctx context.Context, guard domain.Guard, principalID string) error
}

// PermissionStore is the persistent side of the role-permission authority.
type PermissionStore interface {
	AssignRole(ctx context.Context, guard domain.Guard, principalID, role string) error
	// Grant returns the role and permissions of the principal. A principal
	// without a role yields an empty grant.
	Grant(ctx context.Context, guard domain.Guard, principalID string) (domain.Grant, error)
}

// PermissionCache memoises resolved grants.
type PermissionCache interface {
	Get(ctx context.Context, guard domain.Guard, principalID string) (*domain.Grant, error)
	Set(ctx context.Context, guard domain.Guard, principalID string, grant domain.Grant) error
	Invalidate(ctx context.Context, guard domain.Guard, principalID string) error
}

// PermissionAuthority answers (principal, guard) -> grant.
type PermissionAuthority interface {
	Assign(ctx context.Context, guard domain.Guard, principalID, role string) error
	Resolve(ctx context.Context, guard domain.Guard, principalID string) (domain.Grant, error)
}
