package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"hail/internal/handler"
	"hail/internal/middleware"
	"hail/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler *handler.RideHandler
	GeoHandler  *handler.GeoHandler
	AuthHandler *handler.AuthHandler
	WSHandler   *handler.WSHandler
	Verifier    middleware.TokenVerifier
	RedisClient *redis.Client
	NewRelicApp *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	riderAuth := middleware.RequireAuth(deps.Verifier, service.RoleRider)
	captainAuth := middleware.RequireAuth(deps.Verifier, service.RoleCaptain)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Account routes.
		users := v1.Group("/users")
		{
			users.POST("/register", deps.AuthHandler.RegisterUser)
			users.POST("/login", deps.AuthHandler.LoginUser)
		}

		captains := v1.Group("/captains")
		{
			captains.POST("/register", deps.AuthHandler.RegisterCaptain)
			captains.POST("/login", deps.AuthHandler.LoginCaptain)
			captains.GET("/active-ride", captainAuth, deps.RideHandler.GetActiveRide)
			captains.GET("/ride-history", captainAuth, deps.RideHandler.GetRideHistory)
		}

		// Ride routes.
		rides := v1.Group("/rides")
		{
			rides.GET("/fare", riderAuth, deps.RideHandler.GetFare)
			rides.POST("", riderAuth, deps.RideHandler.CreateRide)
			rides.POST("/:id/cancel", riderAuth, deps.RideHandler.CancelRide)
			rides.POST("/confirm", captainAuth, deps.RideHandler.ConfirmRide)
			rides.POST("/start", captainAuth, deps.RideHandler.StartRide)
			rides.POST("/end", captainAuth, deps.RideHandler.EndRide)
		}

		// Geocoding routes.
		geoRoutes := v1.Group("/geo")
		{
			geoRoutes.GET("/coordinates", deps.GeoHandler.GetCoordinates)
			geoRoutes.GET("/distance-time", deps.GeoHandler.GetDistanceTime)
			geoRoutes.GET("/suggestions", deps.GeoHandler.GetSuggestions)
		}

		// Realtime channel.
		v1.GET("/ws", deps.WSHandler.Serve)
	}

	return router
}
