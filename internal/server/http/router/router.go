package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/nebulaeats/nebula/internal/server/http/handlers"
	"github.com/nebulaeats/nebula/internal/server/http/middleware"
)

// HealthChecker reports readiness of the backing storage.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.OrderingFacade, health HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	// Event streams must not be buffered by the response compressor.
	engine.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPathsRegexs([]string{`^/api/orders/.+/events$`})))

	authHandler := handlers.NewAuthHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	profileHandler := handlers.NewProfileHandler(facade, facade)

	api := engine.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		if err := health.HealthCheck(c.Request.Context()); err != nil {
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.Status(http.StatusOK)
	})

	auth := api.Group("/auth")
	auth.POST("/otp", authHandler.RequestCode)
	auth.POST("/verify", authHandler.Verify)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	authed.GET("/restaurants", catalogHandler.Restaurants)
	authed.GET("/restaurants/:id/menu", catalogHandler.Menu)

	authed.GET("/cart", cartHandler.Get)
	authed.POST("/cart/items", cartHandler.AddItem)
	authed.PATCH("/cart/items/:itemID", cartHandler.UpdateQuantity)
	authed.DELETE("/cart/items/:itemID", cartHandler.RemoveItem)
	authed.DELETE("/cart", cartHandler.Clear)

	authed.POST("/orders", orderHandler.Place)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Detail)
	authed.GET("/orders/:id/events", orderHandler.Track)
	authed.PATCH("/orders/:id/status", orderHandler.UpdateStatus)

	authed.POST("/reviews", catalogHandler.SubmitReview)

	authed.GET("/profile", profileHandler.Get)
	authed.GET("/profile/rewards", profileHandler.Rewards)

	return engine
}
