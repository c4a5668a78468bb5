package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mediamirror/dashboard/internal/api/handler"
	"github.com/mediamirror/dashboard/internal/api/middleware"
	"github.com/mediamirror/dashboard/internal/envfile"
	"github.com/mediamirror/dashboard/internal/logger"
	"github.com/mediamirror/dashboard/internal/logtail"
	"github.com/mediamirror/dashboard/internal/service"
	"github.com/mediamirror/dashboard/internal/state"
	"github.com/mediamirror/dashboard/internal/supervisor"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	status *service.StatusService,
	states *state.Store,
	configs *envfile.Store,
	sup *supervisor.Supervisor,
	tailer *logtail.Tailer,
	staticDir string,
	mode string,
	log *logger.Logger,
) *gin.Engine {
	// Set Gin mode
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS())

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	statusHandler := handler.NewStatusHandler(status)
	stateHandler := handler.NewStateHandler(states)
	runnerHandler := handler.NewRunnerHandler(sup)
	configHandler := handler.NewConfigHandler(configs)
	logsHandler := handler.NewLogsHandler(tailer)
	dashboardHandler := handler.NewDashboardHandler()

	// Health check
	r.GET("/health", healthHandler.Health)

	// Dashboard page
	r.GET("/", dashboardHandler.Page)

	// Control API
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/status", statusHandler.GetStatus)
		apiGroup.GET("/config", configHandler.GetConfig)
		apiGroup.POST("/config", configHandler.UpdateConfig)
		apiGroup.GET("/pause", stateHandler.Pause)
		apiGroup.GET("/resume", stateHandler.Resume)
		apiGroup.GET("/runner/start", runnerHandler.Start)
		apiGroup.GET("/runner/stop", runnerHandler.Stop)
		apiGroup.GET("/runner/restart", runnerHandler.Restart)
		apiGroup.GET("/log/:name", logsHandler.TailLog)
	}

	// Everything else falls back to static front-end assets.
	r.NoRoute(staticFallback(staticDir))

	return r
}

// staticFallback serves files from the install directory so front-end assets
// living next to the worker keep working. Paths escaping the directory and
// missing files are a plain 404.
func staticFallback(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if dir == "" || c.Request.Method != http.MethodGet {
			c.Status(http.StatusNotFound)
			return
		}
		rel := strings.TrimPrefix(filepath.Clean("/"+c.Request.URL.Path), "/")
		path := filepath.Join(dir, rel)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(path)
	}
}
