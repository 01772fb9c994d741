package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

func TestAccountHandler_Register_Success(t *testing.T) {
	auth := &stubAuthService{guard: domain.GuardSpecialist}
	h := NewAccountHandler(auth, &stubPrincipalService{guard: domain.GuardSpecialist})

	body := `{"cedula":"2002","nombre":"Luis","email":"luis@example.com","password":"secret","edad":40,"sexo":"M","salario":1500.5,"rol":"dermatologo"}`
	c, rec := newContext(http.MethodPost, "/especialista/register", body, nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if auth.registered.Role != "dermatologo" || auth.registered.Salary.String() != "1500.5" {
		t.Fatalf("unexpected input %+v", auth.registered)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["message"] != "Registro de especialista exitoso" {
		t.Fatalf("unexpected message %v", resp["message"])
	}
	if _, ok := resp["user"]; !ok {
		t.Fatalf("expected user in response")
	}
}

func TestAccountHandler_Register_GuardFields(t *testing.T) {
	h := NewAccountHandler(&stubAuthService{guard: domain.GuardSpecialist}, &stubPrincipalService{})
	body := `{"cedula":"2002","nombre":"Luis","email":"luis@example.com","password":"secret","edad":40,"sexo":"M"}`
	c, _ := newContext(http.MethodPost, "/especialista/register", body, nil)

	err := h.Register(c)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields["salario"]) == 0 || len(ve.Fields["rol"]) == 0 {
		t.Fatalf("expected salario and rol errors, got %v", ve.Fields)
	}
}

func TestAccountHandler_Register_ClientNeedsNoSalary(t *testing.T) {
	h := NewAccountHandler(&stubAuthService{guard: domain.GuardClient}, &stubPrincipalService{})
	body := `{"cedula":"1001","nombre":"Ana","email":"ana@example.com","password":"secret","edad":30,"sexo":"F"}`
	c, rec := newContext(http.MethodPost, "/cliente/register", body, nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAccountHandler_Register_ShortPassword(t *testing.T) {
	h := NewAccountHandler(&stubAuthService{guard: domain.GuardClient}, &stubPrincipalService{})
	body := `{"cedula":"1001","nombre":"Ana","email":"not-an-email","password":"abc","edad":30,"sexo":"F"}`
	c, _ := newContext(http.MethodPost, "/cliente/register", body, nil)

	var ve *ValidationError
	if err := h.Register(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields["password"]) == 0 || len(ve.Fields["email"]) == 0 {
		t.Fatalf("expected password and email errors, got %v", ve.Fields)
	}
}

func TestAccountHandler_Login(t *testing.T) {
	auth := &stubAuthService{
		guard: domain.GuardClient,
		login: &ports.LoginResult{
			Token:     "signed",
			Principal: &domain.Principal{ID: "1001", Email: "ana@example.com", Details: domain.ClientDetails{}},
			Grant:     domain.Grant{Role: domain.RoleClient},
		},
	}
	h := NewAccountHandler(auth, &stubPrincipalService{})
	c, rec := newContext(http.MethodPost, "/cliente/login", `{"email":" ana@example.com ","password":"secret"}`, nil)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	var resp struct {
		Message     string   `json:"message"`
		Token       string   `json:"token"`
		Role        string   `json:"role"`
		Permissions []string `json:"permissions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token != "signed" || resp.Role != domain.RoleClient {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if resp.Permissions == nil {
		t.Fatalf("permissions must render as [] not null: %s", rec.Body.String())
	}
	if auth.loginEmail != "ana@example.com" {
		t.Fatalf("expected trimmed email, got %q", auth.loginEmail)
	}
}

func TestAccountHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAccountHandler(&stubAuthService{guard: domain.GuardClient, err: domain.ErrInvalidCredentials}, &stubPrincipalService{})
	c, _ := newContext(http.MethodPost, "/cliente/login", `{"email":"ana@example.com","password":"nope"}`, nil)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountHandler_Logout_RevokesCurrentToken(t *testing.T) {
	auth := &stubAuthService{guard: domain.GuardClient}
	h := NewAccountHandler(auth, &stubPrincipalService{})
	c, rec := newContext(http.MethodGet, "/cliente/logout", "", clientIdentity("1001"))

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if auth.loggedOut != "jti-client" || rec.Code != http.StatusOK {
		t.Fatalf("expected jti-client revoked, got %q (%d)", auth.loggedOut, rec.Code)
	}
}

func TestAccountHandler_Update_NotFoundNamesGuard(t *testing.T) {
	principals := &stubPrincipalService{guard: domain.GuardReceptionist, err: domain.ErrPrincipalNotFound}
	h := NewAccountHandler(&stubAuthService{guard: domain.GuardReceptionist}, principals)
	c, _ := newContext(http.MethodPut, "/recepcionista/update", `{"cedula":"404","nombre":"X"}`, receptionistIdentity("200"))

	err := h.Update(c)
	var op *OpError
	if !errors.As(err, &op) || op.Message != "Recepcionista no encontrado" {
		t.Fatalf("expected guard not-found message, got %v", err)
	}
	if principals.updated != "404" || principals.input.Name == nil || *principals.input.Name != "X" {
		t.Fatalf("unexpected update call %q %+v", principals.updated, principals.input)
	}
}

func TestAccountHandler_UpdateProfile_TargetsCaller(t *testing.T) {
	principals := &stubPrincipalService{guard: domain.GuardClient}
	h := NewAccountHandler(&stubAuthService{guard: domain.GuardClient}, principals)
	c, _ := newContext(http.MethodPost, "/cliente/update-perfil", `{"cedula":"someone-else","edad":31}`, clientIdentity("1001"))

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if principals.updated != "1001" {
		t.Fatalf("expected caller to be updated, got %q", principals.updated)
	}
}

func TestAccountHandler_SearchByCedula_RequiresQuery(t *testing.T) {
	h := NewAccountHandler(&stubAuthService{guard: domain.GuardClient}, &stubPrincipalService{})
	c, _ := newContext(http.MethodGet, "/cliente/search-cedula", "", receptionistIdentity("200"))

	var ve *ValidationError
	if err := h.SearchByCedula(c); !errors.As(err, &ve) || len(ve.Fields["cedula"]) == 0 {
		t.Fatalf("expected cedula error, got %v", err)
	}
}

func TestAccountHandler_SearchByEmail(t *testing.T) {
	h := NewAccountHandler(&stubAuthService{guard: domain.GuardClient}, &stubPrincipalService{})
	c, rec := newContext(http.MethodGet, "/cliente/search-email?email=ana@example.com", "", receptionistIdentity("200"))

	if err := h.SearchByEmail(c); err != nil {
		t.Fatalf("SearchByEmail: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCatalogHandler_ServiceNotFound(t *testing.T) {
	h := NewCatalogHandler(stubCatalog{services: []domain.Service{{Code: "S1", Name: "Limpieza"}}})

	c, rec := newContext(http.MethodPost, "/servicio/get", `{"codigo":"S1"}`, nil)
	if err := h.Service(c); err != nil {
		t.Fatalf("Service: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodPost, "/servicio/get", `{"codigo":"S9"}`, nil)
	err := h.Service(c)
	var op *OpError
	if !errors.As(err, &op) || op.Message != "Servicio no encontrado" || !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected service not found, got %v", err)
	}
}
