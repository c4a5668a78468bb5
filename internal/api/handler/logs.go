package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediamirror/dashboard/internal/logger"
	"github.com/mediamirror/dashboard/internal/logtail"
)

// LogsHandler serves bounded tails of worker log files.
type LogsHandler struct {
	tailer *logtail.Tailer
}

// NewLogsHandler creates a new logs handler.
func NewLogsHandler(tailer *logtail.Tailer) *LogsHandler {
	return &LogsHandler{tailer: tailer}
}

// TailLog returns the last lines of the named log file as plain text, or 404
// when the file is missing, unreadable, or outside the log directory.
func (h *LogsHandler) TailLog(c *gin.Context) {
	name := c.Param("name")
	out, err := h.tailer.Tail(c.Request.Context(), name)
	if err != nil {
		logger.CtxDebug(c.Request.Context(), "log tail failed: name=%s, err=%v", name, err)
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(out))
}
