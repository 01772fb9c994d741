package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// SessionPolicy decides what happens to earlier tokens on login.
// SingleSession deletes tokens with the same name before issuing a new one.
// An empty TokenName means the principal's email is used.
type SessionPolicy struct {
	SingleSession bool
	TokenName     string
}

// DefaultSessionPolicy returns the login policy of guard: clients may hold
// many sessions, staff one per guard.
func DefaultSessionPolicy(guard domain.Guard) SessionPolicy {
	switch guard {
	case domain.GuardReceptionist:
		return SessionPolicy{SingleSession: true, TokenName: "recepcionista-auth-token"}
	case domain.GuardSalesAssistant:
		return SessionPolicy{SingleSession: true, TokenName: "asistente-auth-token"}
	case domain.GuardSpecialist:
		return SessionPolicy{SingleSession: true, TokenName: "especialista-auth-token"}
	}
	return SessionPolicy{}
}

// AuthConfig holds the settings shared by every guard's AuthService.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// AuthService implements registration, login and token checks for a single
// guard. One instance exists per guard.
type AuthService struct {
	guard     domain.Guard
	store     ports.CredentialStore
	tokens    ports.TokenStore
	authority ports.PermissionAuthority
	issuer    *TokenIssuer
	policy    SessionPolicy
	cost      int
	log       zerolog.Logger
	now       func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(
	store ports.CredentialStore,
	tokens ports.TokenStore,
	authority ports.PermissionAuthority,
	cfg AuthConfig,
	log zerolog.Logger,
) *AuthService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	guard := store.Guard()
	return &AuthService{
		guard:     guard,
		store:     store,
		tokens:    tokens,
		authority: authority,
		issuer:    NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		policy:    DefaultSessionPolicy(guard),
		cost:      cost,
		log:       log.With().Str("guard", guard.String()).Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Guard() domain.Guard { return s.guard }

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Principal, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.ID == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.store.FindByID(ctx, in.ID); err == nil {
		return nil, domain.ErrDuplicateIdentity
	} else if !errors.Is(err, domain.ErrPrincipalNotFound) {
		return nil, domain.Persistence("register", err)
	}
	if _, err := s.store.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrPrincipalNotFound) {
		return nil, domain.Persistence("register", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p := &domain.Principal{
		ID:           in.ID,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Age:          in.Age,
		Sex:          in.Sex,
		ImageURL:     in.ImageURL,
		Details:      domain.NewDetails(s.guard, in.Salary, in.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, domain.Persistence("register", err)
	}

	// No principal is left behind without a role.
	if err := s.authority.Assign(ctx, s.guard, p.ID, s.guard.DefaultRole()); err != nil {
		s.log.Error().Err(err).Str("cedula", p.ID).Msg("role assignment failed")
		if derr := s.store.Delete(ctx, p.ID); derr != nil {
			s.log.Error().Err(derr).Str("cedula", p.ID).Msg("principal cleanup failed")
		}
		return nil, domain.Persistence("register", err)
	}

	s.log.Info().Str("cedula", p.ID).Msg("principal registered")
	return p, nil
}

// Login returns domain.ErrInvalidCredentials for both an unknown email and a
// wrong password. The unknown-email path still pays for a bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	p, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.fallbackHash(), []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, domain.Persistence("login", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	name := s.policy.TokenName
	if name == "" {
		name = p.Email
	}
	if s.policy.SingleSession {
		if err := s.tokens.DeleteByName(ctx, s.guard, p.ID, name); err != nil {
			return nil, domain.Persistence("revoke previous session", err)
		}
	}

	signed, rec, err := s.issuer.Issue(s.guard, p.ID, name, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Store(ctx, rec); err != nil {
		return nil, domain.Persistence("store token", err)
	}

	grant, err := s.authority.Resolve(ctx, s.guard, p.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("cedula", p.ID).Msg("login")
	return &ports.LoginResult{Token: signed, Principal: p, Grant: grant}, nil
}

func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	if err := s.tokens.Delete(ctx, tokenID); err != nil && !errors.Is(err, domain.ErrTokenNotFound) {
		return domain.Persistence("logout", err)
	}
	return nil
}

// Authenticate accepts rawToken only when it was issued under this guard and
// its row has not been revoked or expired.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*domain.Identity, error) {
	claims, err := s.issuer.Parse(rawToken)
	if err != nil {
		return nil, err
	}
	if claims.Guard != s.guard {
		return nil, domain.ErrUnauthenticated
	}

	rec, err := s.tokens.Find(ctx, claims.TokenID)
	if errors.Is(err, domain.ErrTokenNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, domain.Persistence("authenticate", err)
	}
	if rec.Guard != s.guard || rec.PrincipalID != claims.Subject || rec.Expired(s.now()) {
		return nil, domain.ErrUnauthenticated
	}

	grant, err := s.authority.Resolve(ctx, s.guard, claims.Subject)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{
		PrincipalID: claims.Subject,
		Guard:       s.guard,
		TokenID:     claims.TokenID,
		Grant:       grant,
	}, nil
}

func (s *AuthService) Profile(ctx context.Context, principalID string) (*ports.Profile, error) {
	p, err := s.store.FindByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return nil, err
		}
		return nil, domain.Persistence("profile", err)
	}
	grant, err := s.authority.Resolve(ctx, s.guard, principalID)
	if err != nil {
		return nil, err
	}
	return &ports.Profile{Principal: p, Grant: grant}, nil
}

func (s *AuthService) fallbackHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-principal"), s.cost)
	})
	return s.dummyHash
}
