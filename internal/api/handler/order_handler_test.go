package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

func TestOrderHandler_Create_AssistantIsRecorded(t *testing.T) {
	svc := &stubOrderService{}
	h := NewOrderHandler(svc)

	body := `{"idCliente":"100","direccion":"Calle 1","fechaRegistro":"2030-03-15 09:30:00","estado":"Pendiente","costoTotal":45.5,"productos_con_cantidades":[{"codigo":"P1","cantidad":2}]}`
	c, rec := newContext(http.MethodPost, "/pedido/create", body, assistantIdentity("300"))

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.staffIn.SalesAssistantID == nil || *svc.staffIn.SalesAssistantID != "300" {
		t.Fatalf("expected caller as assistant, got %v", svc.staffIn.SalesAssistantID)
	}
	if want := time.Date(2030, 3, 15, 9, 30, 0, 0, time.UTC); !svc.staffIn.RegisteredAt.Equal(want) {
		t.Fatalf("expected registration date %v, got %v", want, svc.staffIn.RegisteredAt)
	}
	if svc.staffIn.TotalCost.String() != "45.5" {
		t.Fatalf("expected exact total 45.5, got %s", svc.staffIn.TotalCost)
	}
	if len(svc.staffIn.Lines) != 1 || svc.staffIn.Lines[0] != (domain.LineItem{Code: "P1", Quantity: 2}) {
		t.Fatalf("unexpected lines %+v", svc.staffIn.Lines)
	}
}

func TestOrderHandler_CreateOwn_ValidatesLines(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})
	body := `{"direccion":"Calle 1","productos_con_cantidades":[{"codigo":"P1","cantidad":0}]}`
	c, _ := newContext(http.MethodPost, "/pedido/registrar-propio", body, clientIdentity("100"))

	var ve *ValidationError
	if err := h.CreateOwn(c); !errors.As(err, &ve) || len(ve.Fields["productos_con_cantidades[0].cantidad"]) == 0 {
		t.Fatalf("expected productos_con_cantidades[0].cantidad error, got %v", err)
	}
}

func TestOrderHandler_CreateOwn_UsesCaller(t *testing.T) {
	svc := &stubOrderService{}
	h := NewOrderHandler(svc)
	body := `{"direccion":"Calle 1","productos_con_cantidades":[{"codigo":"P1","cantidad":2},{"codigo":"BAD","cantidad":1}]}`
	c, rec := newContext(http.MethodPost, "/pedido/registrar-propio", body, clientIdentity("100"))

	if err := h.CreateOwn(c); err != nil {
		t.Fatalf("CreateOwn: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.selfIn.ClientID != "100" || len(svc.selfIn.Lines) != 2 {
		t.Fatalf("unexpected input %+v", svc.selfIn)
	}
	if svc.selfIn.Lines[0] != (domain.LineItem{Code: "P1", Quantity: 2}) {
		t.Fatalf("unexpected first line %+v", svc.selfIn.Lines[0])
	}
	if !svc.selfIn.RegisteredAt.IsZero() {
		t.Fatalf("omitted fechaRegistro must reach the service as zero")
	}
}

func TestOrderHandler_CreateOwn_RegistrationDate(t *testing.T) {
	svc := &stubOrderService{}
	h := NewOrderHandler(svc)
	h.now = func() time.Time { return time.Date(2030, 3, 15, 12, 0, 0, 0, time.UTC) }

	past := `{"direccion":"Calle 1","fechaRegistro":"2030-03-14","productos_con_cantidades":[{"codigo":"P1","cantidad":1}]}`
	c, _ := newContext(http.MethodPost, "/pedido/registrar-propio", past, clientIdentity("100"))
	var ve *ValidationError
	if err := h.CreateOwn(c); !errors.As(err, &ve) || len(ve.Fields["fechaRegistro"]) == 0 {
		t.Fatalf("expected fechaRegistro error for a past date, got %v", err)
	}

	today := `{"direccion":"Calle 1","fechaRegistro":"2030-03-15 08:00:00","productos_con_cantidades":[{"codigo":"P1","cantidad":1}]}`
	c, _ = newContext(http.MethodPost, "/pedido/registrar-propio", today, clientIdentity("100"))
	if err := h.CreateOwn(c); err != nil {
		t.Fatalf("same-day fechaRegistro should pass: %v", err)
	}
	if want := time.Date(2030, 3, 15, 8, 0, 0, 0, time.UTC); !svc.selfIn.RegisteredAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, svc.selfIn.RegisteredAt)
	}
}

func TestOrderHandler_Update_RequiresRegistrationDate(t *testing.T) {
	svc := &stubOrderService{}
	h := NewOrderHandler(svc)
	body := `{"codigo":"PEDIDO-1","idCliente":"100","direccion":"x","estado":"Enviado","costoTotal":1}`
	c, _ := newContext(http.MethodPut, "/pedido/update", body, assistantIdentity("300"))

	var ve *ValidationError
	if err := h.Update(c); !errors.As(err, &ve) || len(ve.Fields["fechaRegistro"]) == 0 {
		t.Fatalf("expected fechaRegistro required, got %v", err)
	}
	if svc.updated != "" {
		t.Fatalf("service must not be called, got update of %q", svc.updated)
	}
}

func TestOrderHandler_Create_NegativeCost(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})
	body := `{"idCliente":"100","direccion":"Calle 1","fechaRegistro":"2030-03-15","estado":"Pendiente","costoTotal":-0.01}`
	c, _ := newContext(http.MethodPost, "/pedido/create", body, assistantIdentity("300"))

	var ve *ValidationError
	if err := h.Create(c); !errors.As(err, &ve) || len(ve.Fields["costoTotal"]) == 0 {
		t.Fatalf("expected costoTotal error, got %v", err)
	}
}

func TestOrderHandler_Get_ClientSeesOnlyOwn(t *testing.T) {
	svc := &stubOrderService{byCode: map[string]*domain.Order{
		"PEDIDO-2": {Code: "PEDIDO-2", ClientID: "101"},
	}}
	h := NewOrderHandler(svc)

	c, _ := newContext(http.MethodPost, "/pedido/get", `{"codigo":"PEDIDO-2"}`, clientIdentity("100"))
	err := h.Get(c)
	var op *OpError
	if !errors.As(err, &op) || op.Message != msgOrderNotFound {
		t.Fatalf("expected order not found, got %v", err)
	}

	c, rec := newContext(http.MethodPost, "/pedido/get", `{"codigo":"PEDIDO-2"}`, assistantIdentity("300"))
	if err := h.Get(c); err != nil {
		t.Fatalf("assistant should see any order: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOrderHandler_Delete_NotFound(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{err: domain.ErrOrderNotFound})
	c, _ := newContext(http.MethodDelete, "/pedido/delete", `{"codigo":"PEDIDO-404"}`, assistantIdentity("300"))
	if err := h.Delete(c); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderHandler_Update_InvalidDate(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})
	body := `{"codigo":"PEDIDO-1","idCliente":"100","direccion":"x","fechaRegistro":"ayer","estado":"Pendiente","costoTotal":1}`
	c, _ := newContext(http.MethodPut, "/pedido/update", body, assistantIdentity("300"))

	var ve *ValidationError
	if err := h.Update(c); !errors.As(err, &ve) || len(ve.Fields["fechaRegistro"]) == 0 {
		t.Fatalf("expected fechaRegistro error, got %v", err)
	}
}
