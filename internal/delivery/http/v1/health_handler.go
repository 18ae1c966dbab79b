package v1

import (
	"net/http"
	"time"

	"go-jobscout-backend/internal/delivery/http/response"
	"go-jobscout-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthHandler struct {
	db *pgxpool.Pool
}

func NewHealthHandler(rg *gin.RouterGroup, db *pgxpool.Pool) {
	handler := &HealthHandler{db: db}
	rg.GET("/health", handler.Check)
}

// Check reports per-dependency health. Redis is optional, so a missing Redis
// degrades the report without failing it.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	status := http.StatusOK
	checks := gin.H{"database": "ok", "redis": "ok"}

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}
	if err := redis.HealthCheck(ctx); err != nil {
		checks["redis"] = "unavailable"
	}

	if status == http.StatusOK {
		response.Success(c, status, "System operational", gin.H{
			"checks": checks,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	response.Error(c, status, "Degraded", checks)
}
