package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Checker is anything that can report its own reachability.
type Checker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	checks  map[string]Checker
	timeout time.Duration
}

func NewHandler(checks map[string]Checker) *Handler {
	return &Handler{
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	components := gin.H{}
	ready := true
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			ready = false
			components[name] = gin.H{"status": "DOWN", "reason": err.Error()}
			continue
		}
		components[name] = gin.H{"status": "UP"}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP", "components": components})
}
