package routes

import (
	"context"
	"net/http"
	"time"

	"profilematch/internal/metrics"

	"github.com/gin-gonic/gin"
)

// HealthCheck is a named dependency probe. Details, when set, is reported
// alongside a passing check.
type HealthCheck struct {
	Name    string
	Check   func(ctx context.Context) error
	Details func(ctx context.Context) map[string]interface{}
}

func RegisterHealthRoutes(router *gin.Engine, appName string, checks ...HealthCheck) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": appName + " API is running",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		healthy := true
		results := gin.H{}
		for _, check := range checks {
			if err := check.Check(ctx); err != nil {
				healthy = false
				results[check.Name] = gin.H{"healthy": false, "error": err.Error()}
				continue
			}
			result := gin.H{"healthy": true}
			if check.Details != nil {
				result["details"] = check.Details(ctx)
			}
			results[check.Name] = result
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"healthy": healthy,
			"checks":  results,
		})
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
}
