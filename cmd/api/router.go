package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"xpose-backend/internal/shared/middleware"
	"xpose-backend/pkg/container"
)

// maxMultipartMemory bounds the in-memory part of a multipart body; the rest spills to disk.
const maxMultipartMemory = 32 << 20

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	router.GET("/health", healthCheckHandler(c))

	setupUserRoutes(router, c)
	setupArtistRoutes(router, c)
	setupSerieRoutes(router, c)
	setupAssetRoutes(router, c)
	setupAddressRoutes(router, c)
	setupContactRoutes(router, c)
	setupSettingsRoutes(router, c)

	router.GET("/dashboard", c.DashboardHandler.Stats)

	return router
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(r *gin.Engine, c *container.Container) {
	users := r.Group("/users")
	{
		users.GET("", c.UserHandler.List)
		users.GET("/filter", c.UserHandler.Filter)
		users.GET("/:id", c.UserHandler.Get)
		users.POST("", c.UserHandler.Create)
		users.POST("/login", c.UserHandler.Login)
		users.PUT("/:id", c.UserHandler.Update)
		users.DELETE("/:id", c.UserHandler.Delete)
	}
}

// ========================================
// ARTIST ROUTES
// ========================================
func setupArtistRoutes(r *gin.Engine, c *container.Container) {
	artists := r.Group("/artists")
	{
		artists.GET("", c.ArtistHandler.List)
		artists.GET("/filter", c.ArtistHandler.Filter)
		artists.GET("/:id", c.ArtistHandler.Get)
		artists.POST("", c.ArtistHandler.Create)
		artists.PUT("/:id", c.ArtistHandler.Update)
		artists.DELETE("/:id", c.ArtistHandler.Delete)
	}
}

// ========================================
// SERIE ROUTES
// ========================================
func setupSerieRoutes(r *gin.Engine, c *container.Container) {
	series := r.Group("/series")
	{
		series.GET("", c.SerieHandler.List)
		series.GET("/filter", c.SerieHandler.Filter)
		series.GET("/public", c.AssetHandler.PublicCollections)
		series.GET("/:id", c.SerieHandler.Get)
		series.POST("", c.SerieHandler.Create)
		series.PUT("/:id", c.SerieHandler.Update)
		series.DELETE("/:id", c.SerieHandler.Delete)
	}
}

// ========================================
// ASSET ROUTES
// ========================================
func setupAssetRoutes(r *gin.Engine, c *container.Container) {
	assets := r.Group("/assets")
	{
		assets.GET("", c.AssetHandler.List)
		assets.GET("/filter", c.AssetHandler.Filter)
		assets.GET("/export", c.AssetHandler.Export)
		assets.GET("/serie/:id", c.AssetHandler.ListBySerie)
		assets.GET("/artist/:id", c.AssetHandler.ListByArtist)
		assets.GET("/:id", c.AssetHandler.Get)
		assets.POST("", c.AssetHandler.Create)
		assets.PUT("/:id", c.AssetHandler.Update)
		assets.DELETE("/:id", c.AssetHandler.Delete)
	}

	r.POST("/file/upload", c.AssetHandler.Upload)
}

// ========================================
// ADDRESS & CONTACT ROUTES
// ========================================
func setupAddressRoutes(r *gin.Engine, c *container.Container) {
	addresses := r.Group("/address")
	{
		addresses.GET("", c.AddressHandler.List)
		addresses.GET("/:id", c.AddressHandler.Get)
		addresses.POST("", c.AddressHandler.Create)
		addresses.PUT("/:id", c.AddressHandler.Update)
		addresses.DELETE("/:id", c.AddressHandler.Delete)
	}
}

func setupContactRoutes(r *gin.Engine, c *container.Container) {
	contacts := r.Group("/contactInformations")
	{
		contacts.GET("", c.ContactHandler.List)
		contacts.GET("/:id", c.ContactHandler.Get)
		contacts.POST("", c.ContactHandler.Create)
		contacts.PUT("/:id", c.ContactHandler.Update)
		contacts.DELETE("/:id", c.ContactHandler.Delete)
	}
}

// ========================================
// WEBSITE SETTINGS ROUTES
// ========================================
func setupSettingsRoutes(r *gin.Engine, c *container.Container) {
	settings := r.Group("/website-settings")
	{
		settings.GET("", c.SettingsHandler.List)
		settings.GET("/contact", c.SettingsHandler.Current)
		settings.GET("/:id", c.SettingsHandler.Get)
		settings.POST("", c.SettingsHandler.Create)
		settings.PUT("/:id", c.SettingsHandler.Update)
		settings.DELETE("/:id", c.SettingsHandler.Delete)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Redis == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Redis.HealthCheck(c.Request.Context()); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
