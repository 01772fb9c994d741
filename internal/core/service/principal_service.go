package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// PrincipalService manages the accounts of one guard.
type PrincipalService struct {
	store  ports.CredentialStore
	tokens ports.TokenStore
	cost   int
	log    zerolog.Logger
}

func NewPrincipalService(store ports.CredentialStore, tokens ports.TokenStore, bcryptCost int, log zerolog.Logger) *PrincipalService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &PrincipalService{
		store:  store,
		tokens: tokens,
		cost:   bcryptCost,
		log:    log.With().Str("guard", store.Guard().String()).Logger(),
	}
}

func (s *PrincipalService) Guard() domain.Guard { return s.store.Guard() }

func (s *PrincipalService) Get(ctx context.Context, id string) (*domain.Principal, error) {
	p, err := s.store.FindByID(ctx, id)
	return p, s.readErr("get principal", err)
}

func (s *PrincipalService) GetByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	p, err := s.store.FindByEmail(ctx, strings.TrimSpace(email))
	return p, s.readErr("get principal by email", err)
}

// SearchByName returns domain.ErrPrincipalNotFound when nothing matches.
func (s *PrincipalService) SearchByName(ctx context.Context, fragment string) ([]*domain.Principal, error) {
	list, err := s.store.SearchByName(ctx, strings.TrimSpace(fragment))
	if err != nil {
		return nil, domain.Persistence("search principals", err)
	}
	if len(list) == 0 {
		return nil, domain.ErrPrincipalNotFound
	}
	return list, nil
}

func (s *PrincipalService) List(ctx context.Context) ([]*domain.Principal, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, domain.Persistence("list principals", err)
	}
	return list, nil
}

func (s *PrincipalService) Update(ctx context.Context, id string, in ports.UpdatePrincipalInput) (*domain.Principal, error) {
	upd := ports.PrincipalUpdate{
		Name:     in.Name,
		Email:    in.Email,
		Age:      in.Age,
		Sex:      in.Sex,
		ImageURL: in.ImageURL,
	}
	if s.Guard().IsStaff() {
		upd.Salary = in.Salary
	}
	if s.Guard() == domain.GuardSpecialist {
		upd.Role = in.Role
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		upd.Email = &email
		existing, err := s.store.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != id:
			return nil, domain.ErrDuplicateEmail
		case err != nil && !errors.Is(err, domain.ErrPrincipalNotFound):
			return nil, domain.Persistence("update principal", err)
		}
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.cost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		upd.PasswordHash = &h
	}

	p, err := s.store.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, domain.Persistence("update principal", err)
	}
	s.log.Info().Str("cedula", id).Msg("principal updated")
	return p, nil
}

// Delete removes the principal and revokes all of its tokens. Bookings that
// reference the principal are removed by the store's cascade.
func (s *PrincipalService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return err
		}
		return domain.Persistence("delete principal", err)
	}
	if err := s.tokens.DeleteAll(ctx, s.Guard(), id); err != nil {
		s.log.Warn().Err(err).Str("cedula", id).Msg("token cleanup failed")
	}
	s.log.Info().Str("cedula", id).Msg("principal deleted")
	return nil
}

func (s *PrincipalService) readErr(op string, err error) error {
	if err == nil || errors.Is(err, domain.ErrPrincipalNotFound) {
		return err
	}
	return domain.Persistence(op, err)
}
