package routes

import (
	"net/http"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/cache"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// SetupHealthRoutes registers health check endpoints. Liveness answers
// unconditionally; readiness checks the database and cache behind the API.
func SetupHealthRoutes(router *gin.Engine, db *connection.Database, redisClient *cache.RedisClient) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
		})
	})

	router.GET("/health/ready", func(c *gin.Context) {
		pool, err := db.DB.DB()
		if err == nil {
			err = pool.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"component": "database",
				"error":     err.Error(),
			})
			return
		}

		if redisClient != nil {
			if err := redisClient.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "unhealthy",
					"component": "cache",
					"error":     err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, HealthResponse{
			Status:    "ready",
			Timestamp: time.Now().UTC(),
		})
	})
}
