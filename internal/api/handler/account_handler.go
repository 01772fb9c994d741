package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Jhonatan-05/backen-Maria/internal/api/metrics"
	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// AccountHandler serves the authentication, self-service and management
// routes of one guard. The same handler type is mounted once per guard.
type AccountHandler struct {
	auth       ports.AuthService
	principals ports.PrincipalService
	labels     accountLabels
}

func NewAccountHandler(auth ports.AuthService, principals ports.PrincipalService) *AccountHandler {
	return &AccountHandler{
		auth:       auth,
		principals: principals,
		labels:     labelsByGuard[auth.Guard()],
	}
}

// Register creates a principal under this handler's guard.
//
// @Summary      Register a principal
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        guard  path      string           true  "cliente | recepcionista | asistente | especialista"
// @Param        body   body      registerRequest  true  "Registration details"
// @Success      201    {object}  registerResponse
// @Failure      400    {object}  map[string]string
// @Failure      422    {object}  map[string]any
// @Router       /{guard}/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := req.checkGuardFields(h.auth.Guard()); err != nil {
		return err
	}

	p, err := h.auth.Register(c.Request().Context(), req.toInput())
	if err != nil {
		return withMessage("Error al registrar el "+h.labels.singular, err)
	}
	return c.JSON(http.StatusCreated, registerResponse{
		Message: "Registro de " + h.labels.singular + " exitoso",
		User:    p,
	})
}

// Login exchanges credentials for a bearer token.
//
// @Summary      Login
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        guard  path      string        true  "cliente | recepcionista | asistente | especialista"
// @Param        body   body      loginRequest  true  "Credentials"
// @Success      200    {object}  loginResponse
// @Failure      401    {object}  map[string]string
// @Failure      422    {object}  map[string]any
// @Router       /{guard}/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	res, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	metrics.LoginsTotal.WithLabelValues(h.auth.Guard().String(), loginResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{
		Message:     "Inicio de sesión de " + h.labels.singular + " exitoso",
		User:        res.Principal,
		Token:       res.Token,
		Role:        res.Grant.Role,
		Permissions: permissionsOf(res.Grant),
	})
}

// Logout revokes the token used for this request.
//
// @Summary      Logout
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        guard  path      string  true  "cliente | recepcionista | asistente | especialista"
// @Success      200    {object}  messageResponse
// @Failure      401    {object}  map[string]string
// @Router       /{guard}/logout [get]
func (h *AccountHandler) Logout(c echo.Context) error {
	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), id.TokenID); err != nil {
		return withMessage("Error al cerrar la sesión", err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Sesión cerrada correctamente"})
}

// Authenticated returns the caller with its role and permissions.
//
// @Summary      Authenticated principal
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        guard  path      string  true  "cliente | recepcionista | asistente | especialista"
// @Success      200    {object}  authenticatedResponse
// @Failure      401    {object}  map[string]string
// @Router       /{guard}/autenticado [get]
func (h *AccountHandler) Authenticated(c echo.Context) error {
	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	profile, err := h.auth.Profile(c.Request().Context(), id.PrincipalID)
	if err != nil {
		return h.principalErr(err)
	}
	return c.JSON(http.StatusOK, authenticatedResponse{
		Message:     "Datos del " + h.labels.singular,
		Data:        profile.Principal,
		Role:        profile.Grant.Role,
		Permissions: permissionsOf(profile.Grant),
	})
}

func (h *AccountHandler) Profile(c echo.Context) error {
	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	p, err := h.principals.Get(c.Request().Context(), id.PrincipalID)
	if err != nil {
		return h.principalErr(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Perfil del " + h.labels.singular, Data: p})
}

func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req principalUpdateRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p, err := h.principals.Update(c.Request().Context(), id.PrincipalID, req.toInput())
	if err != nil {
		return h.principalErr(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Perfil actualizado correctamente", Data: p})
}

func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	if err := h.principals.Delete(c.Request().Context(), id.PrincipalID); err != nil {
		return h.principalErr(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Cuenta eliminada correctamente"})
}

// List returns every principal of the guard.
//
// @Summary      List principals
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        guard  path      string  true  "cliente | recepcionista | asistente | especialista"
// @Success      200    {object}  dataResponse
// @Router       /{guard}/all [get]
func (h *AccountHandler) List(c echo.Context) error {
	list, err := h.principals.List(c.Request().Context())
	if err != nil {
		return h.principalErr(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Lista de " + h.labels.plural, Data: list})
}

func (h *AccountHandler) SearchByCedula(c echo.Context) error {
	cedula, err := requiredQuery(c, "cedula")
	if err != nil {
		return err
	}
	p, err := h.principals.Get(c.Request().Context(), cedula)
	if err != nil {
		return h.principalErr(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: h.labels.title + " encontrado", Data: p})
}

func (h *AccountHandler) SearchByEmail(c echo.Context) error {
	email, err := requiredQuery(c, "email")
	if err != nil {
		return err
	}
	p, err := h.principals.GetByEmail(c.Request().Context(), email)
	if err != nil {
		return h.principalErr(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: h.labels.title + " encontrado", Data: p})
}

func (h *AccountHandler) SearchByName(c echo.Context) error {
	nombre, err := requiredQuery(c, "nombre")
	if err != nil {
		return err
	}
	list, err := h.principals.SearchByName(c.Request().Context(), nombre)
	if err != nil {
		return h.principalErr(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Lista de " + h.labels.plural, Data: list})
}

// Update changes the principal named by cedula.
//
// @Summary      Update a principal
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        guard  path      string                  true  "cliente | recepcionista | asistente | especialista"
// @Param        body   body      principalUpdateRequest  true  "Fields to change"
// @Success      200    {object}  dataResponse
// @Failure      404    {object}  map[string]string
// @Failure      422    {object}  map[string]any
// @Router       /{guard}/update [put]
func (h *AccountHandler) Update(c echo.Context) error {
	var req principalUpdateRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if req.Cedula == "" {
		return invalidField("cedula", "El campo cedula es obligatorio.")
	}
	p, err := h.principals.Update(c.Request().Context(), req.Cedula, req.toInput())
	if err != nil {
		return h.principalErr(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: h.labels.title + " actualizado correctamente", Data: p})
}

func (h *AccountHandler) Delete(c echo.Context) error {
	var req cedulaRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.principals.Delete(c.Request().Context(), req.Cedula); err != nil {
		return h.principalErr(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: h.labels.title + " eliminado correctamente"})
}

// principalErr names the guard in not-found responses.
func (h *AccountHandler) principalErr(err error) error {
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		return withMessage(h.labels.notFound, err)
	}
	return err
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	}
	return "error"
}

func requiredQuery(c echo.Context, name string) (string, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return "", invalidField(name, "El campo "+name+" es obligatorio.")
	}
	return v, nil
}
