package handlers

import (
	"net/http"

	"todo-social/backend/internal/cache"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the operator-only endpoints mounted behind the auth
// middleware.
type AdminHandler struct {
	cache cache.Cache
}

func NewAdminHandler(cacheInstance cache.Cache) *AdminHandler {
	return &AdminHandler{cache: cacheInstance}
}

func (h *AdminHandler) CacheStats(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	status := "up"
	if err := h.cache.Health(); err != nil {
		status = "down"
	}

	c.JSON(http.StatusOK, gin.H{
		"enabled": true,
		"status":  status,
		"stats":   h.cache.Stats(),
	})
}
