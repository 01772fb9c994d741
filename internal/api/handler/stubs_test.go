package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// newContext builds an echo context for a JSON request. A non-nil id is
// placed in the request context the way the Auth middleware does.
func newContext(method, target, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if id != nil {
		req = req.WithContext(domain.WithIdentity(req.Context(), *id))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func clientIdentity(cedula string) *domain.Identity {
	return &domain.Identity{
		PrincipalID: cedula,
		Guard:       domain.GuardClient,
		TokenID:     "jti-client",
		Grant:       domain.Grant{Role: domain.RoleClient, Permissions: domain.DefaultPermissions[domain.GuardClient]},
	}
}

func receptionistIdentity(cedula string) *domain.Identity {
	return &domain.Identity{
		PrincipalID: cedula,
		Guard:       domain.GuardReceptionist,
		TokenID:     "jti-recep",
		Grant:       domain.Grant{Role: domain.RoleReceptionist, Permissions: domain.DefaultPermissions[domain.GuardReceptionist]},
	}
}

func assistantIdentity(cedula string) *domain.Identity {
	return &domain.Identity{
		PrincipalID: cedula,
		Guard:       domain.GuardSalesAssistant,
		TokenID:     "jti-asist",
		Grant:       domain.Grant{Role: domain.RoleSalesAssistant, Permissions: domain.DefaultPermissions[domain.GuardSalesAssistant]},
	}
}

// ---------------------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------------------

type stubAppointmentService struct {
	staffIn  ports.StaffAppointmentInput
	selfIn   ports.SelfAppointmentInput
	updated  string
	deleted  string
	byCode   map[string]*domain.Appointment
	byClient []*domain.Appointment
	err      error
}

func (s *stubAppointmentService) CreateStaff(_ context.Context, in ports.StaffAppointmentInput) (*domain.Appointment, error) {
	s.staffIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Appointment{Code: "CITA-1", ClientID: in.ClientID, ReceptionistID: in.ReceptionistID, Status: in.Status}, nil
}

func (s *stubAppointmentService) CreateSelf(_ context.Context, in ports.SelfAppointmentInput) (*domain.Appointment, error) {
	s.selfIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Appointment{Code: "CITA-2", ClientID: in.ClientID, Status: domain.StatusPending}, nil
}

func (s *stubAppointmentService) Update(_ context.Context, code string, in ports.StaffAppointmentInput) (*domain.Appointment, error) {
	s.updated, s.staffIn = code, in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Appointment{Code: code, ClientID: in.ClientID, Status: in.Status}, nil
}

func (s *stubAppointmentService) Get(_ context.Context, code string) (*domain.Appointment, error) {
	a, ok := s.byCode[code]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return a, nil
}

func (s *stubAppointmentService) List(context.Context) ([]*domain.Appointment, error) {
	return s.byClient, s.err
}

func (s *stubAppointmentService) ListByClient(context.Context, string) ([]*domain.Appointment, error) {
	return s.byClient, s.err
}

func (s *stubAppointmentService) Delete(_ context.Context, code string) error {
	s.deleted = code
	return s.err
}

type stubOrderService struct {
	staffIn ports.StaffOrderInput
	selfIn  ports.SelfOrderInput
	updated string
	byCode  map[string]*domain.Order
	list    []*domain.Order
	err     error
}

func (s *stubOrderService) CreateStaff(_ context.Context, in ports.StaffOrderInput) (*domain.Order, error) {
	s.staffIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Order{Code: "PEDIDO-1", ClientID: in.ClientID, SalesAssistantID: in.SalesAssistantID}, nil
}

func (s *stubOrderService) CreateSelf(_ context.Context, in ports.SelfOrderInput) (*domain.Order, error) {
	s.selfIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Order{Code: "PEDIDO-2", ClientID: in.ClientID, Address: in.Address}, nil
}

func (s *stubOrderService) Update(_ context.Context, code string, in ports.StaffOrderInput) (*domain.Order, error) {
	s.staffIn = in
	s.updated = code
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Order{Code: code, ClientID: in.ClientID}, nil
}

func (s *stubOrderService) Get(_ context.Context, code string) (*domain.Order, error) {
	o, ok := s.byCode[code]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (s *stubOrderService) List(context.Context) ([]*domain.Order, error) { return s.list, s.err }

func (s *stubOrderService) ListByClient(context.Context, string) ([]*domain.Order, error) {
	return s.list, s.err
}

func (s *stubOrderService) Delete(context.Context, string) error { return s.err }

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

type stubAuthService struct {
	guard      domain.Guard
	registered ports.RegisterInput
	login      *ports.LoginResult
	loginEmail string
	loggedOut  string
	err        error
}

func (s *stubAuthService) Guard() domain.Guard { return s.guard }

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*domain.Principal, error) {
	s.registered = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Principal{
		ID:      in.ID,
		Name:    in.Name,
		Email:   in.Email,
		Details: domain.NewDetails(s.guard, in.Salary, in.Role),
	}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (*ports.LoginResult, error) {
	s.loginEmail = email
	if s.err != nil {
		return nil, s.err
	}
	return s.login, nil
}

func (s *stubAuthService) Logout(_ context.Context, tokenID string) error {
	s.loggedOut = tokenID
	return s.err
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.Identity, error) {
	return nil, domain.ErrUnauthenticated
}

func (s *stubAuthService) Profile(_ context.Context, id string) (*ports.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ports.Profile{
		Principal: &domain.Principal{ID: id, Details: domain.ClientDetails{}},
		Grant:     domain.Grant{Role: domain.RoleClient},
	}, nil
}

type stubPrincipalService struct {
	guard   domain.Guard
	updated string
	input   ports.UpdatePrincipalInput
	err     error
}

func (s *stubPrincipalService) Guard() domain.Guard { return s.guard }

func (s *stubPrincipalService) Get(_ context.Context, id string) (*domain.Principal, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Principal{ID: id, Details: domain.ClientDetails{}}, nil
}

func (s *stubPrincipalService) GetByEmail(_ context.Context, email string) (*domain.Principal, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Principal{ID: "1", Email: email, Details: domain.ClientDetails{}}, nil
}

func (s *stubPrincipalService) SearchByName(context.Context, string) ([]*domain.Principal, error) {
	return nil, s.err
}

func (s *stubPrincipalService) List(context.Context) ([]*domain.Principal, error) {
	return []*domain.Principal{}, s.err
}

func (s *stubPrincipalService) Update(_ context.Context, id string, in ports.UpdatePrincipalInput) (*domain.Principal, error) {
	s.updated, s.input = id, in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Principal{ID: id, Details: domain.ClientDetails{}}, nil
}

func (s *stubPrincipalService) Delete(context.Context, string) error { return s.err }

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

type stubCatalog struct {
	services []domain.Service
}

func (s stubCatalog) ListServices(context.Context) ([]domain.Service, error) { return s.services, nil }

func (s stubCatalog) FindService(_ context.Context, code string) (*domain.Service, error) {
	for _, svc := range s.services {
		if svc.Code == code {
			return &svc, nil
		}
	}
	return nil, domain.ErrServiceNotFound
}

func (s stubCatalog) ListProducts(context.Context) ([]domain.Product, error) { return nil, nil }

func (s stubCatalog) FindProduct(context.Context, string) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}
