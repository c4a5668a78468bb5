package handler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/mediamirror/dashboard/internal/envfile"
	"github.com/mediamirror/dashboard/internal/service"
)

// ConfigHandler reads and patches the shared configuration file.
type ConfigHandler struct {
	store *envfile.Store
}

// NewConfigHandler creates a new config handler.
func NewConfigHandler(store *envfile.Store) *ConfigHandler {
	return &ConfigHandler{store: store}
}

// GetConfig returns the raw key/value mapping.
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Read())
}

// UpdateConfig applies a partial update. The body maps friendly field names
// (or raw config keys) to values; values are stringified before writing.
func (h *ConfigHandler) UpdateConfig(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	mapped := service.MapConfigUpdates(updates)
	if err := h.store.Write(mapped); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	keys := make([]string, 0, len(mapped))
	for key := range mapped {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	c.JSON(http.StatusOK, gin.H{"ok": true, "updated": keys})
}
