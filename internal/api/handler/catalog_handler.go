package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// CatalogHandler exposes the read-only service and product listings.
type CatalogHandler struct {
	catalog ports.CatalogReader
}

func NewCatalogHandler(catalog ports.CatalogReader) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// @Summary      List services
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dataResponse
// @Router       /servicio/all [get]
func (h *CatalogHandler) Services(c echo.Context) error {
	list, err := h.catalog.ListServices(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Lista de servicios", Data: list})
}

// @Summary      Get service
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Param        body  body      codeRequest  true  "codigo"
// @Success      200   {object}  dataResponse
// @Failure      404   {object}  map[string]string
// @Router       /servicio/get [post]
func (h *CatalogHandler) Service(c echo.Context) error {
	var req codeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	s, err := h.catalog.FindService(c.Request().Context(), req.Codigo)
	if errors.Is(err, domain.ErrServiceNotFound) {
		return withMessage("Servicio no encontrado", err)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Servicio encontrado", Data: s})
}

// @Summary      List products
// @Tags         catalogo
// @Produce      json
// @Success      200  {object}  dataResponse
// @Router       /producto/all [get]
func (h *CatalogHandler) Products(c echo.Context) error {
	list, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Lista de productos", Data: list})
}

// @Summary      Get product
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Param        body  body      codeRequest  true  "codigo"
// @Success      200   {object}  dataResponse
// @Failure      404   {object}  map[string]string
// @Router       /producto/get [post]
func (h *CatalogHandler) Product(c echo.Context) error {
	var req codeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p, err := h.catalog.FindProduct(c.Request().Context(), req.Codigo)
	if errors.Is(err, domain.ErrProductNotFound) {
		return withMessage("Producto no encontrado", err)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Producto encontrado", Data: p})
}
