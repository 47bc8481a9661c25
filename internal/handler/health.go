package handler

import (
	"net/http"
	"time"

	"github.com/khmer25/shop-api/internal/constants"
	"github.com/khmer25/shop-api/pkg/health"
	"github.com/gin-gonic/gin"
)

type HealthCheck struct {
	Status  string        `json:"status"`
	Latency time.Duration `json:"latency_ms"`
	Message string        `json:"message,omitempty"`
}

type HealthResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]HealthCheck `json:"checks"`
}

// HealthHandler reports the monitor's latest dependency probes.
type HealthHandler struct {
	monitor *health.Monitor
}

func NewHealthHandler(monitor *health.Monitor) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

func (h *HealthHandler) Check(c *gin.Context) {
	results := h.monitor.GetAllResults()

	checks := make(map[string]HealthCheck, len(results))
	healthy := true
	for name, result := range results {
		check := HealthCheck{
			Status:  "ok",
			Latency: result.Latency / time.Millisecond,
		}
		if result.Status != health.StatusHealthy {
			healthy = false
			check.Status = "error"
			if result.LastError != nil {
				check.Message = result.LastError.Error()
			}
		}
		checks[name] = check
	}

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Version:   constants.AppVersion,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}
