package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// AppointmentService runs the appointment booking workflow. Every write runs
// the header change and the service association in one transaction.
type AppointmentService struct {
	repo    ports.AppointmentRepository
	events  bookingNotifier
	log     zerolog.Logger
	newCode func() string
}

func NewAppointmentService(repo ports.AppointmentRepository, publisher ports.EventPublisher, log zerolog.Logger) *AppointmentService {
	return &AppointmentService{
		repo:    repo,
		events:  bookingNotifier{publisher: publisher, log: log},
		log:     log,
		newCode: domain.NewAppointmentCode,
	}
}

// CreateStaff stores the appointment as supplied, including its total cost.
// Unknown service codes are ignored.
func (s *AppointmentService) CreateStaff(ctx context.Context, in ports.StaffAppointmentInput) (*domain.Appointment, error) {
	a := &domain.Appointment{
		Code:           s.newCode(),
		ClientID:       in.ClientID,
		ReceptionistID: in.ReceptionistID,
		ScheduledAt:    in.ScheduledAt,
		Status:         in.Status,
		TotalCost:      in.TotalCost,
	}
	codes := domain.UniqueCodes(in.ServiceCodes)

	err := s.repo.Transact(ctx, func(ctx context.Context, tx ports.AppointmentTx) error {
		if err := tx.InsertAppointment(ctx, a); err != nil {
			return err
		}
		services, err := tx.ResolveServices(ctx, codes)
		if err != nil {
			return err
		}
		return tx.ReplaceServices(ctx, a.Code, domain.ServiceCodes(services))
	})
	if err != nil {
		return nil, s.fail("create appointment", a.Code, err)
	}

	s.log.Info().Str("codigo", a.Code).Str("idCliente", a.ClientID).Msg("appointment created")
	s.events.notify(ctx, domain.AggregateAppointment, domain.ActionCreated, a.Code, a.ClientID, &a.TotalCost)
	return s.reload(ctx, a.Code)
}

// CreateSelf books for the calling client. The status starts as pending, no
// receptionist is attached and the total is the sum of the resolved
// services' prices.
func (s *AppointmentService) CreateSelf(ctx context.Context, in ports.SelfAppointmentInput) (*domain.Appointment, error) {
	a := &domain.Appointment{
		Code:        s.newCode(),
		ClientID:    in.ClientID,
		ScheduledAt: in.ScheduledAt,
		Status:      domain.StatusPending,
	}
	codes := domain.UniqueCodes(in.ServiceCodes)

	err := s.repo.Transact(ctx, func(ctx context.Context, tx ports.AppointmentTx) error {
		services, err := tx.ResolveServices(ctx, codes)
		if err != nil {
			return err
		}
		a.TotalCost = domain.ServicesTotal(services)
		if err := tx.InsertAppointment(ctx, a); err != nil {
			return err
		}
		return tx.ReplaceServices(ctx, a.Code, domain.ServiceCodes(services))
	})
	if err != nil {
		return nil, s.fail("create own appointment", a.Code, err)
	}

	s.log.Info().Str("codigo", a.Code).Str("idCliente", a.ClientID).Str("costoTotal", a.TotalCost.String()).Msg("own appointment created")
	s.events.notify(ctx, domain.AggregateAppointment, domain.ActionCreated, a.Code, a.ClientID, &a.TotalCost)
	return s.reload(ctx, a.Code)
}

// Update overwrites every header field and replaces the service set. An
// empty code list detaches all services. A missing appointment aborts the
// transaction before any write.
func (s *AppointmentService) Update(ctx context.Context, code string, in ports.StaffAppointmentInput) (*domain.Appointment, error) {
	a := &domain.Appointment{
		Code:           code,
		ClientID:       in.ClientID,
		ReceptionistID: in.ReceptionistID,
		ScheduledAt:    in.ScheduledAt,
		Status:         in.Status,
		TotalCost:      in.TotalCost,
	}
	codes := domain.UniqueCodes(in.ServiceCodes)

	err := s.repo.Transact(ctx, func(ctx context.Context, tx ports.AppointmentTx) error {
		ok, err := tx.LockAppointment(ctx, code)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAppointmentNotFound
		}
		if err := tx.UpdateAppointment(ctx, a); err != nil {
			return err
		}
		services, err := tx.ResolveServices(ctx, codes)
		if err != nil {
			return err
		}
		return tx.ReplaceServices(ctx, code, domain.ServiceCodes(services))
	})
	if err != nil {
		return nil, s.fail("update appointment", code, err)
	}

	s.log.Info().Str("codigo", code).Msg("appointment updated")
	s.events.notify(ctx, domain.AggregateAppointment, domain.ActionUpdated, code, a.ClientID, &a.TotalCost)
	return s.reload(ctx, code)
}

func (s *AppointmentService) Get(ctx context.Context, code string) (*domain.Appointment, error) {
	a, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, bookingErr("get appointment", err)
	}
	return a, nil
}

func (s *AppointmentService) List(ctx context.Context) ([]*domain.Appointment, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, bookingErr("list appointments", err)
	}
	return list, nil
}

// ListByClient returns an empty slice, not an error, when the client has no
// appointments.
func (s *AppointmentService) ListByClient(ctx context.Context, clientID string) ([]*domain.Appointment, error) {
	list, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, bookingErr("list client appointments", err)
	}
	if list == nil {
		list = []*domain.Appointment{}
	}
	return list, nil
}

func (s *AppointmentService) Delete(ctx context.Context, code string) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		return s.fail("delete appointment", code, err)
	}
	s.log.Info().Str("codigo", code).Msg("appointment deleted")
	s.events.notify(ctx, domain.AggregateAppointment, domain.ActionDeleted, code, "", nil)
	return nil
}

func (s *AppointmentService) reload(ctx context.Context, code string) (*domain.Appointment, error) {
	a, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, bookingErr("reload appointment", err)
	}
	return a, nil
}

func (s *AppointmentService) fail(op, code string, err error) error {
	err = bookingErr(op, err)
	if errors.Is(err, domain.ErrPersistence) {
		s.log.Error().Err(err).Str("codigo", code).Msg(op + " failed")
	}
	return err
}
