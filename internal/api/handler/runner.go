package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediamirror/dashboard/internal/supervisor"
)

// RunnerHandler exposes worker lifecycle operations.
type RunnerHandler struct {
	sup *supervisor.Supervisor
}

// NewRunnerHandler creates a new runner handler.
func NewRunnerHandler(sup *supervisor.Supervisor) *RunnerHandler {
	return &RunnerHandler{sup: sup}
}

// Start launches the worker. An already-running worker is an operator
// conflict, not a transport failure: it reports ok:false with HTTP 200.
func (h *RunnerHandler) Start(c *gin.Context) {
	pid, err := h.sup.Start(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "pid": pid})
}

// Stop terminates the worker and any orphans. Always succeeds.
func (h *RunnerHandler) Stop(c *gin.Context) {
	stopped := h.sup.Stop(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true, "stopped": stopped})
}

// Restart stops the worker, waits for teardown to settle, and starts it again.
func (h *RunnerHandler) Restart(c *gin.Context) {
	pid, err := h.sup.Restart(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "pid": pid})
}
