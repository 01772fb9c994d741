package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

type registerRequest struct {
	Cedula   string           `json:"cedula" validate:"required,max=20"`
	Nombre   string           `json:"nombre" validate:"required,max=255"`
	Email    string           `json:"email" validate:"required,email,max=255"`
	Password string           `json:"password" validate:"required,min=5"`
	Edad     *int             `json:"edad" validate:"required,min=0,max=150"`
	Sexo     string           `json:"sexo" validate:"required,max=255"`
	URLImage *string          `json:"urlImage" validate:"omitempty,max=255"`
	Salario  *decimal.Decimal `json:"salario" validate:"omitempty,min=0"`
	Rol      string           `json:"rol" validate:"omitempty,max=255"`
}

func (r *registerRequest) normalize() {
	r.Cedula = strings.TrimSpace(r.Cedula)
	r.Email = strings.TrimSpace(r.Email)
}

// checkGuardFields enforces the fields only some guards carry: staff need a
// salary and specialists a role.
func (r registerRequest) checkGuardFields(guard domain.Guard) error {
	ve := &ValidationError{}
	if guard.IsStaff() && r.Salario == nil {
		ve.Add("salario", "El campo salario es obligatorio.")
	}
	if guard == domain.GuardSpecialist && r.Rol == "" {
		ve.Add("rol", "El campo rol es obligatorio.")
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

func (r registerRequest) toInput() ports.RegisterInput {
	in := ports.RegisterInput{
		ID:       r.Cedula,
		Name:     r.Nombre,
		Email:    r.Email,
		Password: r.Password,
		Sex:      r.Sexo,
		ImageURL: r.URLImage,
		Role:     r.Rol,
	}
	if r.Edad != nil {
		in.Age = *r.Edad
	}
	if r.Salario != nil {
		in.Salary = *r.Salario
	}
	return in
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() { r.Email = strings.TrimSpace(r.Email) }

// principalUpdateRequest is shared by update-perfil, where the caller is the
// target, and the management update, where cedula names the target.
type principalUpdateRequest struct {
	Cedula   string           `json:"cedula" validate:"omitempty,max=20"`
	Nombre   *string          `json:"nombre" validate:"omitempty,max=255"`
	Email    *string          `json:"email" validate:"omitempty,email,max=255"`
	Password *string          `json:"password" validate:"omitempty,min=5"`
	Edad     *int             `json:"edad" validate:"omitempty,min=0,max=150"`
	Sexo     *string          `json:"sexo" validate:"omitempty,max=255"`
	URLImage *string          `json:"urlImage" validate:"omitempty,max=255"`
	Salario  *decimal.Decimal `json:"salario" validate:"omitempty,min=0"`
	Rol      *string          `json:"rol" validate:"omitempty,max=255"`
}

func (r principalUpdateRequest) toInput() ports.UpdatePrincipalInput {
	in := ports.UpdatePrincipalInput{
		Name:     r.Nombre,
		Email:    r.Email,
		Password: r.Password,
		Age:      r.Edad,
		Sex:      r.Sexo,
		ImageURL: r.URLImage,
		Role:     r.Rol,
		Salary:   r.Salario,
	}
	return in
}

type cedulaRequest struct {
	Cedula string `json:"cedula" query:"cedula" validate:"required,max=20"`
}

type registerResponse struct {
	Message string            `json:"message"`
	User    *domain.Principal `json:"user"`
}

type loginResponse struct {
	Message     string            `json:"message"`
	User        *domain.Principal `json:"user"`
	Token       string            `json:"token"`
	Role        string            `json:"role"`
	Permissions []string          `json:"permissions"`
}

type authenticatedResponse struct {
	Message     string            `json:"message"`
	Data        *domain.Principal `json:"data"`
	Role        string            `json:"role"`
	Permissions []string          `json:"permissions"`
}

// accountLabels holds the Spanish nouns used in one guard's messages.
type accountLabels struct {
	singular string
	title    string
	plural   string
	notFound string
}

var labelsByGuard = map[domain.Guard]accountLabels{
	domain.GuardClient: {
		singular: "cliente", title: "Cliente", plural: "clientes",
		notFound: "Cliente no encontrado",
	},
	domain.GuardReceptionist: {
		singular: "recepcionista", title: "Recepcionista", plural: "recepcionistas",
		notFound: "Recepcionista no encontrado",
	},
	domain.GuardSalesAssistant: {
		singular: "asistente de ventas", title: "Asistente de ventas", plural: "asistentes de ventas",
		notFound: "Asistente de ventas no encontrado",
	},
	domain.GuardSpecialist: {
		singular: "especialista", title: "Especialista", plural: "especialistas",
		notFound: "Especialista no encontrado",
	},
}

func permissionsOf(g domain.Grant) []string {
	if g.Permissions == nil {
		return []string{}
	}
	return g.Permissions
}
