package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	strategy string
}

func NewHealthHandler(strategy string) *HealthHandler {
	return &HealthHandler{strategy: strategy}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "OK",
		"message":  "Server is running",
		"strategy": h.strategy,
	})
}
