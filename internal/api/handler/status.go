package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediamirror/dashboard/internal/service"
)

// StatusHandler serves the aggregate dashboard snapshot.
type StatusHandler struct {
	status *service.StatusService
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(status *service.StatusService) *StatusHandler {
	return &StatusHandler{status: status}
}

// GetStatus returns the full snapshot: runner state, PID, stats, ETA, job
// lists, disk capacity, and the config summary.
func (h *StatusHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.status.Snapshot(c.Request.Context()))
}
