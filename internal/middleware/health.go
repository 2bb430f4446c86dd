package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthStatus struct {
	Status      string    `json:"status"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
}

var (
	healthStatus = HealthStatus{
		Status:  "ok",
		Version: "1.0.0",
	}
	healthMutex sync.RWMutex
	startTime   = time.Now()
)

// HealthCheckMiddleware serves the health endpoint.
func HealthCheckMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		healthMutex.RLock()
		status := healthStatus
		healthMutex.RUnlock()

		status.Uptime = time.Since(startTime).String()
		status.LastChecked = time.Now()

		c.JSON(http.StatusOK, status)
	}
}

// UpdateHealthStatus changes the reported application status.
func UpdateHealthStatus(status string) {
	healthMutex.Lock()
	defer healthMutex.Unlock()

	healthStatus.Status = status
	healthStatus.LastChecked = time.Now()
}

// SetVersion sets the reported application version.
func SetVersion(version string) {
	healthMutex.Lock()
	defer healthMutex.Unlock()

	healthStatus.Version = version
}
