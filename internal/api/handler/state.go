package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediamirror/dashboard/internal/logger"
	"github.com/mediamirror/dashboard/internal/state"
)

// StateHandler flips the worker's pause flag in the shared state document.
type StateHandler struct {
	store *state.Store
}

// NewStateHandler creates a new state handler.
func NewStateHandler(store *state.Store) *StateHandler {
	return &StateHandler{store: store}
}

// Pause sets runner.paused=true. Idempotent.
func (h *StateHandler) Pause(c *gin.Context) {
	h.setPaused(c, true)
}

// Resume sets runner.paused=false. Idempotent.
func (h *StateHandler) Resume(c *gin.Context) {
	h.setPaused(c, false)
}

func (h *StateHandler) setPaused(c *gin.Context, paused bool) {
	if err := h.store.SetPaused(paused); err != nil {
		logger.CtxError(c.Request.Context(), "state write failed: err=%v", err)
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "paused": paused})
}
