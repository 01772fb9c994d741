package domain

import "slices"

// Client permissions.
const (
	PermViewOwnOrders   = "ver_pedidos_propios"
	PermCreateOwnOrder  = "registrar_pedido_propio"
	PermFindOwnOrder    = "buscar_pedido_propio"
	PermUpdateOwnOrder  = "modificar_pedido_propio"
	PermDeleteOwnOrder  = "eliminar_pedido_propio"
	PermViewOwnAppts    = "ver_citas_propias"
	PermCreateOwnAppt   = "registrar_cita_propia"
	PermFindOwnAppt     = "buscar_cita_propia"
	PermUpdateOwnAppt   = "modificar_cita_propia"
	PermDeleteOwnAppt   = "eliminar_cita_propia"
	PermViewCompanyInfo = "ver_info_empresa"
)

// Receptionist permissions.
const (
	PermViewAppointments  = "ver_todas_citas"
	PermCreateAppointment = "registrar_cita"
	PermFindAppointment   = "buscar_cita"
	PermUpdateAppointment = "modificar_cita"
	PermDeleteAppointment = "eliminar_cita"
	PermViewClients       = "ver_todos_clientes"
	PermCreateClient      = "registrar_cliente"
	PermFindClient        = "buscar_cliente"
	PermUpdateClient      = "modificar_cliente"
	PermDeleteClient      = "eliminar_cliente"
	PermViewServices      = "ver_todos_servicios"
	PermCreateService     = "registrar_servicio"
	PermFindService       = "buscar_servicio"
	PermUpdateService     = "modificar_servicio"
	PermDeleteService     = "eliminar_servicio"
)

// Sales assistant permissions.
const (
	PermViewOrders    = "ver_todos_pedidos"
	PermCreateOrder   = "registrar_pedido"
	PermFindOrder     = "buscar_pedido"
	PermUpdateOrder   = "modificar_pedido"
	PermDeleteOrder   = "eliminar_pedido"
	PermViewProducts  = "ver_todos_productos"
	PermCreateProduct = "registrar_producto"
	PermFindProduct   = "buscar_producto"
	PermUpdateProduct = "modificar_producto"
	PermDeleteProduct = "eliminar_producto"
)

// Specialist permissions.
const (
	PermCreateOwnReport = "registrar_informe_propio"
	PermFindOwnReport   = "buscar_informe_propio"
	PermUpdateOwnReport = "modificar_informe_propio"
	PermDeleteOwnReport = "eliminar_informe_propio"
)

// DefaultPermissions is the seed of permissions granted to each guard's
// default role.
var DefaultPermissions = map[Guard][]string{
	GuardClient: {
		PermViewOwnOrders, PermCreateOwnOrder, PermFindOwnOrder, PermUpdateOwnOrder, PermDeleteOwnOrder,
		PermViewOwnAppts, PermCreateOwnAppt, PermFindOwnAppt, PermUpdateOwnAppt, PermDeleteOwnAppt,
		PermViewCompanyInfo,
	},
	GuardReceptionist: {
		PermViewAppointments, PermCreateAppointment, PermFindAppointment, PermUpdateAppointment, PermDeleteAppointment,
		PermViewClients, PermCreateClient, PermFindClient, PermUpdateClient, PermDeleteClient,
		PermViewServices, PermCreateService, PermFindService, PermUpdateService, PermDeleteService,
	},
	GuardSalesAssistant: {
		PermViewOrders, PermCreateOrder, PermFindOrder, PermUpdateOrder, PermDeleteOrder,
		PermViewProducts, PermCreateProduct, PermFindProduct, PermUpdateProduct, PermDeleteProduct,
	},
	GuardSpecialist: {
		PermCreateOwnReport, PermFindOwnReport, PermUpdateOwnReport, PermDeleteOwnReport,
	},
}

// Grant is the resolved role and permission set of one principal.
type Grant struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// Has reports whether the grant includes perm.
func (g Grant) Has(perm string) bool {
	return slices.Contains(g.Permissions, perm)
}

// HasAny reports whether the grant includes at least one of perms.
func (g Grant) HasAny(perms ...string) bool {
	for _, p := range perms {
		if g.Has(p) {
			return true
		}
	}
	return false
}
