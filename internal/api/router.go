package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Jhonatan-05/backen-Maria/internal/api/handler"
	"github.com/Jhonatan-05/backen-Maria/internal/api/middleware"
	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// Dependencies is everything the router needs. Mongo and Redis may be nil.
type Dependencies struct {
	Auth         map[domain.Guard]ports.AuthService
	Principals   map[domain.Guard]ports.PrincipalService
	Appointments ports.AppointmentService
	Orders       ports.OrderService
	Catalog      ports.CatalogReader

	SQL   *sql.DB
	Mongo *mongo.Database
	Redis *redis.Client

	Log zerolog.Logger
}

// guardPrefixes maps each guard to its URL prefix.
var guardPrefixes = map[domain.Guard]string{
	domain.GuardClient:         "/cliente",
	domain.GuardReceptionist:   "/recepcionista",
	domain.GuardSalesAssistant: "/asistente",
	domain.GuardSpecialist:     "/especialista",
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("backen_maria"))

	// --- Ops (no auth required) ---
	health := handler.NewHealthHandler(deps.SQL, deps.Mongo, deps.Redis)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Accounts, one block per guard ---
	for _, guard := range domain.Guards {
		registerAccountRoutes(e, guard, deps)
	}

	registerAppointmentRoutes(e, deps)
	registerOrderRoutes(e, deps)

	// --- Catalog (read-only) ---
	catalog := handler.NewCatalogHandler(deps.Catalog)
	e.GET("/servicio/all", catalog.Services)
	e.POST("/servicio/get", catalog.Service)
	e.GET("/producto/all", catalog.Products)
	e.POST("/producto/get", catalog.Product)

	return e
}

// managerOf names the guard allowed to manage principals of guard.
func managerOf(guard domain.Guard) domain.Guard {
	if guard == domain.GuardSalesAssistant {
		return domain.GuardSalesAssistant
	}
	return domain.GuardReceptionist
}

func registerAccountRoutes(e *echo.Echo, guard domain.Guard, deps Dependencies) {
	auth, ok := deps.Auth[guard]
	if !ok {
		return
	}
	h := handler.NewAccountHandler(auth, deps.Principals[guard])
	g := e.Group(guardPrefixes[guard])

	g.POST("/register", h.Register)
	g.POST("/login", h.Login)

	self := g.Group("", middleware.Auth(auth))
	self.GET("/logout", h.Logout)
	self.GET("/autenticado", h.Authenticated)
	self.GET("/perfil", h.Profile)
	self.POST("/update-perfil", h.UpdateProfile)
	self.DELETE("/eliminar-cuenta", h.DeleteAccount)

	manager, ok := deps.Auth[managerOf(guard)]
	if !ok {
		return
	}
	mgmt := g.Group("", middleware.Auth(manager))
	if guard == domain.GuardClient {
		mgmt.GET("/all", h.List, middleware.RequirePermission(domain.PermViewClients))
		mgmt.GET("/search-cedula", h.SearchByCedula, middleware.RequirePermission(domain.PermFindClient))
		mgmt.GET("/search-email", h.SearchByEmail, middleware.RequirePermission(domain.PermFindClient))
		mgmt.GET("/search-nombre", h.SearchByName, middleware.RequirePermission(domain.PermFindClient))
		mgmt.PUT("/update", h.Update, middleware.RequirePermission(domain.PermUpdateClient))
		mgmt.DELETE("/delete", h.Delete, middleware.RequirePermission(domain.PermDeleteClient))
		return
	}
	mgmt.GET("/all", h.List)
	mgmt.GET("/search-cedula", h.SearchByCedula)
	mgmt.GET("/search-email", h.SearchByEmail)
	mgmt.GET("/search-nombre", h.SearchByName)
	mgmt.PUT("/update", h.Update)
	mgmt.DELETE("/delete", h.Delete)
}

func registerAppointmentRoutes(e *echo.Echo, deps Dependencies) {
	h := handler.NewAppointmentHandler(deps.Appointments)
	g := e.Group("/cita", middleware.Auth(authenticators(deps, domain.GuardClient, domain.GuardReceptionist)...))
	clientOnly := middleware.RequireGuard(domain.GuardClient)

	g.POST("/registrar-propia", h.CreateOwn, clientOnly, middleware.RequirePermission(domain.PermCreateOwnAppt))
	g.GET("/mis-citas", h.Mine, clientOnly, middleware.RequirePermission(domain.PermViewOwnAppts))

	g.POST("/create", h.Create, middleware.RequirePermission(domain.PermCreateAppointment))
	g.PUT("/update", h.Update, middleware.RequirePermission(domain.PermUpdateAppointment))
	g.DELETE("/delete", h.Delete, middleware.RequirePermission(domain.PermDeleteAppointment))
	g.GET("/all", h.List, middleware.RequirePermission(domain.PermViewAppointments))
	g.POST("/get", h.Get, middleware.RequirePermission(domain.PermFindAppointment, domain.PermFindOwnAppt))
}

func registerOrderRoutes(e *echo.Echo, deps Dependencies) {
	h := handler.NewOrderHandler(deps.Orders)
	g := e.Group("/pedido", middleware.Auth(authenticators(deps, domain.GuardClient, domain.GuardSalesAssistant)...))
	clientOnly := middleware.RequireGuard(domain.GuardClient)

	g.POST("/registrar-propio", h.CreateOwn, clientOnly, middleware.RequirePermission(domain.PermCreateOwnOrder))
	g.GET("/mis-pedidos", h.Mine, clientOnly, middleware.RequirePermission(domain.PermViewOwnOrders))

	g.POST("/create", h.Create, middleware.RequirePermission(domain.PermCreateOrder))
	g.PUT("/update", h.Update, middleware.RequirePermission(domain.PermUpdateOrder))
	g.DELETE("/delete", h.Delete, middleware.RequirePermission(domain.PermDeleteOrder))
	g.GET("/all", h.List, middleware.RequirePermission(domain.PermViewOrders))
	g.POST("/get", h.Get, middleware.RequirePermission(domain.PermFindOrder, domain.PermFindOwnOrder))
}

func authenticators(deps Dependencies, guards ...domain.Guard) []middleware.Authenticator {
	out := make([]middleware.Authenticator, 0, len(guards))
	for _, g := range guards {
		if a, ok := deps.Auth[g]; ok {
			out = append(out, a)
		}
	}
	return out
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
