package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports API liveness and the state of its two backing stores.
// Returns 503 when either postgres or redis is unreachable.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	startedAt := time.Now()
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		checks := gin.H{"postgres": "up", "redis": "up"}
		healthy := true

		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			checks["postgres"] = "down"
			healthy = false
		}
		if rdb.Ping(ctx).Err() != nil {
			checks["redis"] = "down"
			healthy = false
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"ok":      healthy,
			"service": "lztmeat-api",
			"uptime":  time.Since(startedAt).Round(time.Second).String(),
			"checks":  checks,
		})
	}
}
