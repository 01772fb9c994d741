package domain

// Guard names an authentication realm. Each guard has its own credential
// store and a token issued under one guard is never accepted by another.
type Guard string

const (
	GuardClient         Guard = "cliente_api"
	GuardReceptionist   Guard = "recepcionista_api"
	GuardSalesAssistant Guard = "asistente_api"
	GuardSpecialist     Guard = "especialista_api"
)

const (
	RoleClient         = "cliente"
	RoleReceptionist   = "recepcionista"
	RoleSalesAssistant = "asistente_ventas"
	RoleSpecialist     = "especialista"
)

// Guards lists every guard in a stable order.
var Guards = []Guard{GuardClient, GuardReceptionist, GuardSalesAssistant, GuardSpecialist}

func (g Guard) Valid() bool {
	switch g {
	case GuardClient, GuardReceptionist, GuardSalesAssistant, GuardSpecialist:
		return true
	}
	return false
}

// DefaultRole is the role assigned to a principal at registration.
func (g Guard) DefaultRole() string {
	switch g {
	case GuardClient:
		return RoleClient
	case GuardReceptionist:
		return RoleReceptionist
	case GuardSalesAssistant:
		return RoleSalesAssistant
	case GuardSpecialist:
		return RoleSpecialist
	}
	return ""
}

// IsStaff reports whether principals of this guard carry a salary.
func (g Guard) IsStaff() bool {
	return g != GuardClient && g.Valid()
}

func (g Guard) String() string { return string(g) }
