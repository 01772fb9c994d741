package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

const (
	msgOrderCreateFailed = "Error al crear el pedido y/o asociar productos."
	msgOrderUpdateFailed = "Error al actualizar el pedido y/o asociar productos."
	msgOrderDeleteFailed = "Error al eliminar el pedido."
	msgOrderNotFound     = "Pedido no encontrado"
)

type OrderHandler struct {
	svc ports.OrderService
	now func() time.Time
}

func NewOrderHandler(svc ports.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc, now: time.Now}
}

// Create registers an order for a client. A sales assistant caller is
// recorded as the order's assistant.
//
// @Summary      Create order (staff)
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      staffOrderRequest  true  "Order"
// @Success      201   {object}  dataResponse
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Failure      500   {object}  map[string]string
// @Router       /pedido/create [post]
func (h *OrderHandler) Create(c echo.Context) error {
	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req staffOrderRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}
	if id.Guard == domain.GuardSalesAssistant {
		assistant := id.PrincipalID
		in.SalesAssistantID = &assistant
	}

	start := time.Now()
	o, err := h.svc.CreateStaff(c.Request().Context(), in)
	observeBooking(domain.AggregateOrder, domain.ActionCreated, start, err)
	if err != nil {
		return withMessage(msgOrderCreateFailed, err)
	}
	return c.JSON(http.StatusCreated, dataResponse{Message: "Pedido creado exitosamente", Data: o})
}

// CreateOwn places an order for the calling client.
//
// @Summary      Create own order (client)
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      selfOrderRequest  true  "Address and products"
// @Success      201   {object}  dataResponse
// @Failure      422   {object}  map[string]any
// @Failure      500   {object}  map[string]string
// @Router       /pedido/registrar-propio [post]
func (h *OrderHandler) CreateOwn(c echo.Context) error {
	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req selfOrderRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	in, err := req.toInput(id.PrincipalID, h.now())
	if err != nil {
		return err
	}

	start := time.Now()
	o, err := h.svc.CreateSelf(c.Request().Context(), in)
	observeBooking(domain.AggregateOrder, domain.ActionCreated, start, err)
	if err != nil {
		return withMessage(msgOrderCreateFailed, err)
	}
	return c.JSON(http.StatusCreated, dataResponse{Message: "Pedido creado exitosamente", Data: o})
}

// @Summary      Update order
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      staffOrderRequest  true  "Order with codigo"
// @Success      200   {object}  dataResponse
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /pedido/update [put]
func (h *OrderHandler) Update(c echo.Context) error {
	var req staffOrderRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if req.Codigo == "" {
		return invalidField("codigo", "El campo codigo es obligatorio.")
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	start := time.Now()
	o, err := h.svc.Update(c.Request().Context(), req.Codigo, in)
	observeBooking(domain.AggregateOrder, domain.ActionUpdated, start, err)
	if err != nil {
		return orderErr(msgOrderUpdateFailed, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Pedido actualizado correctamente", Data: o})
}

func (h *OrderHandler) Delete(c echo.Context) error {
	var req codeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	start := time.Now()
	err := h.svc.Delete(c.Request().Context(), req.Codigo)
	observeBooking(domain.AggregateOrder, domain.ActionDeleted, start, err)
	if err != nil {
		return orderErr(msgOrderDeleteFailed, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Pedido eliminado correctamente"})
}

func (h *OrderHandler) List(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Lista de pedidos", Data: list})
}

func (h *OrderHandler) Mine(c echo.Context) error {
	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	list, err := h.svc.ListByClient(c.Request().Context(), id.PrincipalID)
	if err != nil {
		return err
	}
	msg := "Lista de pedidos del cliente"
	if len(list) == 0 {
		msg = "No se encontraron pedidos para este cliente"
	}
	return c.JSON(http.StatusOK, dataResponse{Message: msg, Data: list})
}

// Get looks an order up by codigo; clients only see their own.
//
// @Summary      Get order
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      codeRequest  true  "codigo"
// @Success      200   {object}  dataResponse
// @Failure      404   {object}  map[string]string
// @Router       /pedido/get [post]
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req codeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	o, err := h.svc.Get(c.Request().Context(), req.Codigo)
	if err != nil {
		return orderErr(msgOrderNotFound, err)
	}
	if !id.Can(domain.PermFindOrder) && o.ClientID != id.PrincipalID {
		return withMessage(msgOrderNotFound, domain.ErrOrderNotFound)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Pedido encontrado", Data: o})
}

func orderErr(opMsg string, err error) error {
	if errors.Is(err, domain.ErrOrderNotFound) {
		return withMessage(msgOrderNotFound, err)
	}
	return withMessage(opMsg, err)
}
