package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const healthCheckTimeout = 3 * time.Second

// HealthHandler reports liveness of the stores this service depends on:
// PostgreSQL for credentials and the catalog, Redis for sessions and the
// mail queue (skipped when nil).
type HealthHandler struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

// NewHealthHandler creates a health handler (redis optional).
func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{pool: pool, redis: redisClient}
}

type healthResponse struct {
	Service    string            `json:"service"`
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	components := make(map[string]string)
	degraded := false

	if err := h.pool.Ping(ctx); err != nil {
		components["postgres"] = "down: " + err.Error()
		degraded = true
	} else {
		components["postgres"] = "up"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			components["redis"] = "down: " + err.Error()
			degraded = true
		} else {
			components["redis"] = "up"
		}
	}

	resp := healthResponse{Service: "backoffice", Status: "ok", Components: components}
	code := http.StatusOK
	if degraded {
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}
