package monitoring

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthCheck struct {
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	LastRun time.Time `json:"last_run"`
}

type HealthCheckFunc func(ctx context.Context) error

type HealthChecker struct {
	checks map[string]HealthCheckFunc
	mu     sync.RWMutex
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{checks: make(map[string]HealthCheckFunc)}
}

func (h *HealthChecker) Register(name string, check HealthCheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

func (h *HealthChecker) Run(ctx context.Context) []HealthCheck {
	h.mu.RLock()
	defer h.mu.RUnlock()

	results := make([]HealthCheck, 0, len(h.checks))
	for name, check := range h.checks {
		result := HealthCheck{Name: name, Status: "ok", LastRun: time.Now()}

		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := check(checkCtx); err != nil {
			result.Status = "failing"
			result.Message = err.Error()
		}
		cancel()

		results = append(results, result)
	}
	return results
}

func (h *HealthChecker) Handler(c *gin.Context) {
	results := h.Run(c.Request.Context())

	status := http.StatusOK
	overall := "healthy"
	for _, r := range results {
		if r.Status != "ok" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
			break
		}
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": results,
	})
}
