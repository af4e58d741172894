package http

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"chameleon/internal/logging"
	"chameleon/internal/observability"
	"chameleon/internal/skin"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
</head>
<body class="chameleon">
{{ .Body }}
</body>
</html>
`

// RouterConfig wires the router to the skin.
type RouterConfig struct {
	Renderer    *skin.Renderer
	LayoutFile  string
	ContextFile string
	Title       string

	Metrics *observability.MetricsCollector
	Tracer  *observability.TracerProvider
	Logger  logging.Logger

	Debug          bool
	EnableCORS     bool
	AllowedOrigins []string
}

// NewRouter creates the HTTP router with all endpoints
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := logging.OrNop(cfg.Logger)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLoggingMiddleware(logger, cfg.Tracer))

	if cfg.EnableCORS {
		corsConfig := cors.DefaultConfig()
		if len(cfg.AllowedOrigins) > 0 {
			corsConfig.AllowOrigins = cfg.AllowedOrigins
		} else {
			corsConfig.AllowAllOrigins = true
		}
		corsConfig.AllowMethods = []string{http.MethodGet, http.MethodOptions}
		corsConfig.MaxAge = 12 * time.Hour
		engine.Use(cors.New(corsConfig))
	}

	engine.SetHTMLTemplate(template.Must(template.New("page").Parse(pageTemplate)))

	handler := NewPageHandler(cfg.Renderer, cfg.LayoutFile, cfg.ContextFile, cfg.Title, logger)
	engine.GET("/", handler.HandlePage)
	engine.GET("/fragments/personal-tools", handler.HandlePersonalTools)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics.Enabled() {
		engine.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	return engine
}
