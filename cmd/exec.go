package cmd

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"

	"ticket-marketplace/config"
	"ticket-marketplace/handlers"
	_ "ticket-marketplace/migrations"
	"ticket-marketplace/monitoring"
	"ticket-marketplace/security"
	"ticket-marketplace/services"
	"ticket-marketplace/storage"
	"ticket-marketplace/utils"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// Initialize PubNub
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey

		pn = pubnub.NewPubNub(pnConfig)
	}

	// Initialize storage and services
	store := storage.NewRedisStore(redisClient, cfg.StoreKeyPrefix)
	notifier := services.NewMarketNotifier(pn)

	ledgerService := services.NewLedgerService(store)
	ticketService := services.NewTicketService(store, ledgerService)
	profileService := services.NewProfileService(store)
	resaleService := services.NewResaleService(store, ticketService, ledgerService, profileService, notifier)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(app)
	ticketHandler := handlers.NewTicketHandler(app, ticketService, notifier)
	resaleHandler := handlers.NewResaleHandler(app, resaleService)
	ledgerHandler := handlers.NewLedgerHandler(app, ledgerService)
	profileHandler := handlers.NewProfileHandler(app, profileService)

	rateLimiter := security.NewRateLimiter(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Start metrics collection and the metrics endpoint
	monitoring.NewMonitor()
	if cfg.EnableMetrics {
		go serveMetrics(cfg.MetricsPort)
	}

	// Register routes
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		e.Router.BindFunc(rateLimiter.Middleware())

		// Event catalog
		e.Router.GET("/api/events", eventHandler.List)
		e.Router.GET("/api/events/venues", eventHandler.Venues)

		// Ticket endpoints
		e.Router.POST("/api/tickets/purchase", ticketHandler.Purchase)
		e.Router.GET("/api/tickets", ticketHandler.List)
		e.Router.GET("/api/tickets/{ticketId}", ticketHandler.Get)
		e.Router.POST("/api/tickets/{ticketId}/transfer", ticketHandler.Transfer)
		e.Router.DELETE("/api/tickets/{ticketId}", ticketHandler.Delete)

		// Resale endpoints
		e.Router.POST("/api/resale/offers", resaleHandler.CreateOffer)
		e.Router.GET("/api/resale/offers", resaleHandler.ListOffers)
		e.Router.PATCH("/api/resale/offers/{offerId}/price", resaleHandler.EditPrice)
		e.Router.POST("/api/resale/offers/{offerId}/cancel", resaleHandler.Cancel)
		e.Router.POST("/api/resale/offers/{offerId}/sell", resaleHandler.Sell)

		// Ledger endpoints
		e.Router.GET("/api/transactions", ledgerHandler.List)
		e.Router.PATCH("/api/transactions/{transactionId}/status", ledgerHandler.UpdateStatus)
		e.Router.GET("/api/marketplace/summary", ledgerHandler.Summary)

		// Profile endpoints
		e.Router.GET("/api/profile", profileHandler.Get)
		e.Router.PATCH("/api/profile", profileHandler.Update)
		e.Router.GET("/api/settings", profileHandler.GetSettings)
		e.Router.PUT("/api/settings", profileHandler.UpdateSettings)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			if !store.Healthy() {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  "storage circuit breaker is open",
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

func serveMetrics(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Printf("Metrics listening on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Printf("Metrics server stopped: %v", err)
	}
}
