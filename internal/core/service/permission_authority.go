package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// PermissionAuthority resolves grants from the permission store, reading
// through an optional cache. Cache failures fall back to the store.
type PermissionAuthority struct {
	store ports.PermissionStore
	cache ports.PermissionCache
	log   zerolog.Logger
}

// NewPermissionAuthority returns an authority over store. cache may be nil.
func NewPermissionAuthority(store ports.PermissionStore, cache ports.PermissionCache, log zerolog.Logger) *PermissionAuthority {
	return &PermissionAuthority{store: store, cache: cache, log: log}
}

func (a *PermissionAuthority) Assign(ctx context.Context, guard domain.Guard, principalID, role string) error {
	if err := a.store.AssignRole(ctx, guard, principalID, role); err != nil {
		return domain.Persistence("assign role", err)
	}
	if a.cache != nil {
		if err := a.cache.Invalidate(ctx, guard, principalID); err != nil {
			a.log.Warn().Err(err).Str("guard", guard.String()).Str("cedula", principalID).Msg("permission cache invalidate failed")
		}
	}
	return nil
}

func (a *PermissionAuthority) Resolve(ctx context.Context, guard domain.Guard, principalID string) (domain.Grant, error) {
	if a.cache != nil {
		cached, err := a.cache.Get(ctx, guard, principalID)
		if err != nil {
			a.log.Warn().Err(err).Str("guard", guard.String()).Msg("permission cache read failed")
		} else if cached != nil {
			return *cached, nil
		}
	}

	grant, err := a.store.Grant(ctx, guard, principalID)
	if err != nil {
		return domain.Grant{}, domain.Persistence("resolve permissions", err)
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, guard, principalID, grant); err != nil {
			a.log.Warn().Err(err).Str("guard", guard.String()).Msg("permission cache write failed")
		}
	}
	return grant, nil
}
