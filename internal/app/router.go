package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"naklos/internal/handler"
	"naklos/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	FleetHandler      *handler.FleetHandler
	DocumentHandler   *handler.DocumentHandler
	AssignmentHandler *handler.AssignmentHandler
	TripHandler       *handler.TripHandler
	InvoiceHandler    *handler.InvoiceHandler
	WarningHandler    *handler.WarningHandler
	RedisClient       *redis.Client
	NewRelicApp       *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.Idempotency(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Fleet master data.
		trucks := v1.Group("/trucks")
		{
			trucks.POST("", deps.FleetHandler.RegisterTruck)
			trucks.GET("", deps.FleetHandler.ListTrucks)
			trucks.GET("/:id", deps.FleetHandler.GetTruck)
		}

		drivers := v1.Group("/drivers")
		{
			drivers.POST("", deps.FleetHandler.RegisterDriver)
			drivers.GET("", deps.FleetHandler.ListDrivers)
			drivers.GET("/:id", deps.FleetHandler.GetDriver)
		}

		clients := v1.Group("/clients")
		{
			clients.POST("", deps.FleetHandler.RegisterClient)
			clients.GET("", deps.FleetHandler.ListClients)
			clients.GET("/:id", deps.FleetHandler.GetClient)
		}

		// Compliance document submissions.
		documents := v1.Group("/documents")
		{
			documents.POST("", deps.DocumentHandler.Submit)
			documents.GET("", deps.DocumentHandler.List)
			documents.GET("/:id", deps.DocumentHandler.Get)
			documents.POST("/:id/approve", deps.DocumentHandler.Approve)
			documents.POST("/:id/reject", deps.DocumentHandler.Reject)
		}

		// Truck assignment requests.
		requests := v1.Group("/truck-requests")
		{
			requests.POST("", deps.AssignmentHandler.Create)
			requests.GET("", deps.AssignmentHandler.List)
			requests.GET("/:id", deps.AssignmentHandler.Get)
			requests.POST("/:id/approve", deps.AssignmentHandler.Approve)
			requests.POST("/:id/reject", deps.AssignmentHandler.Reject)
		}

		// Trip lifecycle.
		trips := v1.Group("/trips")
		{
			trips.POST("", deps.TripHandler.Create)
			trips.GET("", deps.TripHandler.List)
			trips.GET("/:id", deps.TripHandler.Get)
			trips.POST("/:id/take", deps.TripHandler.Take)
			trips.POST("/:id/documents", deps.TripHandler.UploadDocuments)
			trips.POST("/:id/confirm-documents", deps.TripHandler.ConfirmDocuments)
			trips.POST("/:id/approve", deps.TripHandler.Approve)
			trips.POST("/:id/cancel", deps.TripHandler.Cancel)
		}

		// Invoices.
		invoices := v1.Group("/invoices")
		{
			invoices.POST("", deps.InvoiceHandler.Build)
			invoices.GET("", deps.InvoiceHandler.List)
			invoices.GET("/:id", deps.InvoiceHandler.Get)
		}

		// Expiry warning feed.
		v1.GET("/warnings", deps.WarningHandler.List)
	}

	return router
}
