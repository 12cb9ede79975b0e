package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"listing-slideshow/internal/handlers"
	"listing-slideshow/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupHealthCheck()
	a.setupAPIRoutes()
	a.setupDocs()
	a.setupStaticRoutes()
}

// setupDocs serves the hand-maintained OpenAPI document and the Swagger UI
// pointed at it
func (a *App) setupDocs() {
	a.Router.StaticFile("/swagger.json", a.Config.Server.DocsPath)
	a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger.json"),
		ginSwagger.DocExpansion("list"),
	))
}

// setupHealthCheck configures health check and metrics endpoints
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", handlers.Health(a.Controller))
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		listings := api.Group("/listings")
		listings.Use(middleware.RateLimitMiddleware(a.RateLimiter))
		{
			listings.GET("", a.ListingsProxy.Handle)
			listings.GET("/*path", a.ListingsProxy.Handle)
		}

		api.GET("/slideshow", a.SlideshowHandler.Preview)
		api.POST("/slideshow/build", a.SlideshowHandler.Build)

		api.GET("/playback", a.PlaybackHandler.Status)
		api.POST("/playback/goto/:index", a.PlaybackHandler.Goto)
		api.POST("/playback/:action", a.PlaybackHandler.Action)
	}
}

// setupStaticRoutes serves the kiosk front end for every unmatched GET
func (a *App) setupStaticRoutes() {
	root := a.Config.Server.StaticDir
	files := http.FileServer(http.Dir(root))

	a.Router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"message": "not found", "code": "NOT_FOUND"}})
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"message": "not found", "code": "NOT_FOUND"}})
			return
		}
		// Unknown paths fall back to index.html for client-side routing.
		if _, err := os.Stat(filepath.Join(root, filepath.Clean("/"+c.Request.URL.Path))); err != nil {
			c.File(filepath.Join(root, "index.html"))
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	})
}
