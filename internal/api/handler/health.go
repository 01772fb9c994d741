package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const readinessTimeout = 3 * time.Second

// HealthHandler serves the liveness and readiness checks. MySQL is required;
// Redis and MongoDB are reported as "disabled" when not configured.
type HealthHandler struct {
	sql   *sql.DB
	mongo *mongo.Database
	redis *redis.Client
}

func NewHealthHandler(db *sql.DB, mdb *mongo.Database, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{sql: db, mongo: mdb, redis: rdb}
}

// Liveness returns 200 while the process is up.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness pings every configured dependency.
//
// @Summary      Readiness check
// @Tags         ops
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	check := func(name string, ping func(context.Context) error) {
		if ping == nil {
			deps[name] = dependencyStatus{Status: "disabled"}
			return
		}
		if err := ping(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			return
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	check("mysql", h.pingSQL())
	check("mongodb", h.pingMongo())
	check("redis", h.pingRedis())

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

func (h *HealthHandler) pingSQL() func(context.Context) error {
	if h.sql == nil {
		return nil
	}
	return h.sql.PingContext
}

func (h *HealthHandler) pingMongo() func(context.Context) error {
	if h.mongo == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return h.mongo.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}
}

func (h *HealthHandler) pingRedis() func(context.Context) error {
	if h.redis == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return h.redis.Ping(ctx).Err()
	}
}
