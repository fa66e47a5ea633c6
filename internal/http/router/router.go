// Package router assembles the gin engine: shared middleware, health and
// informational endpoints, and the routes of every registered module.
package router

import (
	"net/http"

	apphttp "leadscore_backend/internal/http"
	"leadscore_backend/platform/config"
	"leadscore_backend/platform/httpkit"
	"leadscore_backend/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const rootPage = `<html>
    <head>
        <title>Lead Scoring Backend</title>
    </head>
    <body>
        <h1>Lead Scoring Backend is Running!</h1>
        <p>Available API Endpoints:</p>
        <ul>
            <li>POST /offer &rarr; Upload a product/offer</li>
            <li>POST /leads/upload &rarr; Upload leads CSV</li>
            <li>POST /score &rarr; Score uploaded leads</li>
            <li>GET /results &rarr; View scored leads</li>
            <li>GET /results/export &rarr; Download scored leads CSV</li>
        </ul>
        <p>Use Postman or cURL to interact with POST endpoints.</p>
    </body>
</html>`

// New builds the gin engine and mounts all modules.
func New(cfg config.HTTPConfig, log *logger.Logger, modules []apphttp.Module) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(cfg))

	engine.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rootPage))
	})
	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := httpkit.NewIPRateLimiter(rate.Limit(cfg.GetRateLimitRPS()), cfg.GetRateLimitBurst(), log)
	api := engine.Group("/")
	api.Use(limiter.RateLimit())

	routerCtx := &apphttp.RouterContext{
		Engine: engine,
		API:    api,
		Config: cfg,
	}

	for _, module := range modules {
		module.RegisterRoutes(routerCtx)
		log.Info("module routes registered", "module", module.Name())
	}

	return engine
}

func corsMiddleware(cfg config.HTTPConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}
	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	}
	return cors.New(corsCfg)
}
