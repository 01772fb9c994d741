package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Details holds the variant-specific fields of a Principal. The set of
// implementations is closed: ClientDetails, ReceptionistDetails,
// SalesAssistantDetails and SpecialistDetails.
type Details interface {
	Guard() Guard
	isDetails()
}

type ClientDetails struct{}

type ReceptionistDetails struct {
	Salary decimal.Decimal
}

type SalesAssistantDetails struct {
	Salary decimal.Decimal
}

type SpecialistDetails struct {
	Salary decimal.Decimal
	Role   string
}

func (ClientDetails) Guard() Guard         { return GuardClient }
func (ReceptionistDetails) Guard() Guard   { return GuardReceptionist }
func (SalesAssistantDetails) Guard() Guard { return GuardSalesAssistant }
func (SpecialistDetails) Guard() Guard     { return GuardSpecialist }

func (ClientDetails) isDetails()         {}
func (ReceptionistDetails) isDetails()   {}
func (SalesAssistantDetails) isDetails() {}
func (SpecialistDetails) isDetails()     {}

// Principal is an authenticatable actor. ID is the national identity number
// (cedula) and never changes after registration.
type Principal struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Age          int
	Sex          string
	ImageURL     *string
	Details      Details
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Guard returns the guard the principal belongs to.
func (p *Principal) Guard() Guard {
	if p.Details == nil {
		return GuardClient
	}
	return p.Details.Guard()
}

// Salary returns the staff salary, or false for clients.
func (p *Principal) Salary() (decimal.Decimal, bool) {
	switch d := p.Details.(type) {
	case ReceptionistDetails:
		return d.Salary, true
	case SalesAssistantDetails:
		return d.Salary, true
	case SpecialistDetails:
		return d.Salary, true
	}
	return decimal.Zero, false
}

// NewDetails builds the variant for guard. salary is ignored for clients and
// role is only kept for specialists.
func NewDetails(guard Guard, salary decimal.Decimal, role string) Details {
	switch guard {
	case GuardReceptionist:
		return ReceptionistDetails{Salary: salary}
	case GuardSalesAssistant:
		return SalesAssistantDetails{Salary: salary}
	case GuardSpecialist:
		return SpecialistDetails{Salary: salary, Role: role}
	}
	return ClientDetails{}
}

type principalJSON struct {
	ID        string           `json:"cedula"`
	Name      string           `json:"nombre"`
	Email     string           `json:"email"`
	Age       int              `json:"edad"`
	Sex       string           `json:"sexo"`
	ImageURL  *string          `json:"urlImage"`
	Salary    *decimal.Decimal `json:"salario,omitempty"`
	Role      string           `json:"rol,omitempty"`
	CreatedAt *time.Time       `json:"created_at,omitempty"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
}

// MarshalJSON flattens the variant fields next to the common ones. The
// password hash is never serialized.
func (p Principal) MarshalJSON() ([]byte, error) {
	out := principalJSON{
		ID:       p.ID,
		Name:     p.Name,
		Email:    p.Email,
		Age:      p.Age,
		Sex:      p.Sex,
		ImageURL: p.ImageURL,
	}
	if salary, ok := p.Salary(); ok {
		out.Salary = &salary
	}
	if d, ok := p.Details.(SpecialistDetails); ok {
		out.Role = d.Role
	}
	if !p.CreatedAt.IsZero() {
		out.CreatedAt = &p.CreatedAt
	}
	if !p.UpdatedAt.IsZero() {
		out.UpdatedAt = &p.UpdatedAt
	}
	return json.Marshal(out)
}
