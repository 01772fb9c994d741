package domain

import (
	"context"
	"time"
)

// AccessToken is the persisted side of a bearer token. The signed token
// carries ID as its jti claim; deleting the row revokes the token.
type AccessToken struct {
	ID          string
	Guard       Guard
	PrincipalID string
	Name        string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t AccessToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

// Identity is the authenticated caller of a request.
type Identity struct {
	PrincipalID string
	Guard       Guard
	TokenID     string
	Grant       Grant
}

// Can reports whether the caller holds perm.
func (i Identity) Can(perm string) bool { return i.Grant.Has(perm) }

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller stored by WithIdentity.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
