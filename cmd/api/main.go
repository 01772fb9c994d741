// Command api runs the clinic and store backend: per-guard accounts,
// appointments, orders and the booking audit pipeline.
//
//	@title						backen-Maria API
//	@version					1.0
//	@description				Accounts, appointments (citas) and orders (pedidos).
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/Jhonatan-05/backen-Maria/docs"
	"github.com/Jhonatan-05/backen-Maria/internal/api"
	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
	"github.com/Jhonatan-05/backen-Maria/internal/core/service"
	"github.com/Jhonatan-05/backen-Maria/internal/infrastructure/db/mongo"
	"github.com/Jhonatan-05/backen-Maria/internal/infrastructure/db/mysql"
	"github.com/Jhonatan-05/backen-Maria/internal/infrastructure/db/redis"
	"github.com/Jhonatan-05/backen-Maria/internal/infrastructure/queue"
	"github.com/Jhonatan-05/backen-Maria/internal/pkg/config"
	"github.com/Jhonatan-05/backen-Maria/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "backen-maria",
		Env:     cfg.Env,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Money renders as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MySQL (required) ---
	db, err := mysql.Connect(ctx, mysql.Config{
		User:     cfg.MySQL.User,
		Password: cfg.MySQL.Password,
		Host:     cfg.MySQL.Host,
		Port:     cfg.MySQL.Port,
		Database: cfg.MySQL.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connection failed")
	}
	defer db.Close()
	if cfg.MySQL.Migrate {
		if err := mysql.EnsureSchema(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("schema migration failed")
		}
	}
	log.Info().Str("database", cfg.MySQL.Database).Msg("mysql ready")

	// --- Redis (optional) ---
	var rdb *goredis.Client
	var grantCache ports.PermissionCache
	var dedup service.DedupChecker
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, permission cache and audit dedup disabled")
			rdb = nil
		} else {
			defer rdb.Close()
			grantCache = redis.NewPermissionCache(rdb, cfg.Auth.GrantCacheTTL)
			dedup = redis.NewDedupChecker(rdb)
		}
	}

	// --- Booking events ---
	var publisher ports.EventPublisher = queue.NopPublisher{Log: logger.Component("publisher")}
	if cfg.RabbitMQ.URL != "" {
		p := queue.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, logger.Component("publisher"))
		defer p.Close()
		publisher = p
	}

	mclient, mdb := startAudit(ctx, cfg, dedup, log)
	if mclient != nil {
		defer func() { _ = mclient.Disconnect(context.Background()) }()
	}

	// --- Services ---
	tokens := mysql.NewTokenStore(db)
	authority := service.NewPermissionAuthority(mysql.NewPermissionStore(db), grantCache, logger.Component("permissions"))
	authCfg := service.AuthConfig{
		JWTSecret:  cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	}

	deps := api.Dependencies{
		Auth:         make(map[domain.Guard]ports.AuthService, len(domain.Guards)),
		Principals:   make(map[domain.Guard]ports.PrincipalService, len(domain.Guards)),
		Appointments: service.NewAppointmentService(mysql.NewAppointmentStore(db), publisher, logger.Component("appointments")),
		Orders:       service.NewOrderService(mysql.NewOrderStore(db), publisher, logger.Component("orders")),
		Catalog:      mysql.NewCatalogStore(db),
		SQL:          db,
		Mongo:        mdb,
		Redis:        rdb,
		Log:          logger.Component("http"),
	}
	for _, guard := range domain.Guards {
		store := mysql.NewPrincipalStore(db, guard)
		deps.Auth[guard] = service.NewAuthService(store, tokens, authority, authCfg, logger.Component("auth"))
		deps.Principals[guard] = service.NewPrincipalService(store, tokens, cfg.Auth.BcryptCost, logger.Component("principals"))
	}

	e := api.NewRouter(deps)

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		addr := net.JoinHostPort("", cfg.Port)
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("http server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// startAudit connects MongoDB and starts the consumer and dispatcher that
// store booking events. Both results are nil when the audit trail is
// disabled.
func startAudit(ctx context.Context, cfg *config.Config, dedup service.DedupChecker, log zerolog.Logger) (*mongodrv.Client, *mongodrv.Database) {
	if cfg.Mongo.URI == "" {
		log.Info().Msg("MONGO_URI not set, audit trail disabled")
		return nil, nil
	}
	client, mdb, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "backen-maria",
	})
	if err != nil {
		log.Warn().Err(err).Msg("mongodb unavailable, audit trail disabled")
		return nil, nil
	}
	if err := mongo.EnsureIndexes(ctx, mdb); err != nil {
		log.Warn().Err(err).Msg("audit index creation failed")
	}

	if cfg.RabbitMQ.URL == "" {
		log.Info().Msg("RABBITMQ_URL not set, audit consumer disabled")
		return client, mdb
	}

	audit := service.NewAuditService(mongo.NewAuditRepository(mdb), dedup, logger.Component("audit"))
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, audit, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	consumer := queue.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, cfg.RabbitMQ.Prefetch, dispatcher.Enqueue, logger.Component("consumer"))
	go consumer.Run(ctx)

	log.Info().Int("workers", cfg.Audit.Workers).Msg("audit pipeline started")
	return client, mdb
}
