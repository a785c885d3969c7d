package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milkroute/storefront_api/internal/cache"
	"github.com/milkroute/storefront_api/internal/cart"
	"github.com/milkroute/storefront_api/internal/config"
	"github.com/milkroute/storefront_api/internal/handler"
	"github.com/milkroute/storefront_api/internal/middleware"
	"github.com/milkroute/storefront_api/internal/models"
	"github.com/milkroute/storefront_api/internal/notify"
	"github.com/milkroute/storefront_api/internal/service"
	"github.com/milkroute/storefront_api/internal/session"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

// main is the application entrypoint for the storefront gateway.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting storefront gateway")

	// 3. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3a. Initialize caches and stores
	stateCache := cache.NewStateCache(redisClient, cfg.Session.StateTTL)
	sessionStore := session.NewStore(redisClient, cfg.Session.TTL)
	cartStore := cart.NewStore()
	notices := notify.NewCenter(notify.DefaultDismissAfter)

	// 4. Initialize dairy API client
	dairyClient := dairyapi.NewClient(cfg.DairyAPIBaseURL)
	dairyClient.OnSessionRefresh(func(ctx context.Context, oldSession, newSession string) {
		if err := sessionStore.RotateBackendSession(ctx, oldSession, newSession); err != nil {
			log.Warn().Err(err).Msg("Failed to rotate backend session")
		}
	})

	// 5. Initialize services
	authSvc := service.NewAuthService(dairyClient, sessionStore, cartStore, notices)
	catalogSvc := service.NewCatalogService(dairyClient)
	dashboardSvc := service.NewDashboardService(dairyClient, cartStore, stateCache)
	checkoutSvc := service.NewCheckoutService(dairyClient, cartStore)
	subscriptionSvc := service.NewSubscriptionService(dairyClient, sessionStore)
	historySvc := service.NewHistoryService(dairyClient)
	landingSvc := service.NewLandingService(dairyClient, stateCache)
	clientStateSvc := service.NewClientStateService(stateCache)

	// 6. Initialize handlers
	limiter := middleware.NewInvalidAuthRateLimiter()
	handlers := &Handlers{
		Health:       handler.NewHealthHandler(redisClient),
		Auth:         handler.NewAuthHandler(authSvc, landingSvc, cfg, limiter),
		Catalog:      handler.NewCatalogHandler(catalogSvc),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc, clientStateSvc),
		Cart:         handler.NewCartHandler(checkoutSvc, notices),
		Subscription: handler.NewSubscriptionHandler(subscriptionSvc, notices),
		History:      handler.NewHistoryHandler(historySvc),
		State:        handler.NewStateHandler(clientStateSvc),
		Landing:      handler.NewLandingHandler(landingSvc, cfg),
	}

	// 7. Initialize middleware
	sessionMw := middleware.NewSessionMiddleware(cfg.JWTSecret, cfg.Session.CookieName, sessionStore)

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedHosts))
	router.Use(middleware.LoggingMiddleware())
	router.Use(sessionMw.Handle())
	setupRoutes(router, handlers)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Catalog      *handler.CatalogHandler
	Dashboard    *handler.DashboardHandler
	Cart         *handler.CartHandler
	Subscription *handler.SubscriptionHandler
	History      *handler.HistoryHandler
	State        *handler.StateHandler
	Landing      *handler.LandingHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/health", handlers.Health.GetHealth)

	// Public landing surface
	landing := router.Group("/landing")
	{
		landing.GET("/featured", handlers.Landing.Featured)
		landing.POST("/intent", handlers.Landing.SaveIntent)
	}

	// Auth surface
	auth := router.Group("/auth")
	{
		auth.POST("/signup", handlers.Auth.Signup)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", handlers.Auth.Me)
		auth.POST("/logout", handlers.Auth.Logout)
	}

	// Admin record pages
	admin := router.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/admins", handlers.Catalog.ListAdmins)
		admin.GET("/admins/active", handlers.Catalog.ActiveAdmins)
		admin.POST("/admins", handlers.Catalog.SaveAdmin)
		admin.PUT("/admins/:id", handlers.Catalog.SaveAdmin)
		admin.DELETE("/admins/:id", handlers.Catalog.DeleteAdmin)

		admin.GET("/categories", handlers.Catalog.ListCategories)
		admin.GET("/categories/active", handlers.Catalog.ActiveCategories)
		admin.POST("/categories", handlers.Catalog.SaveCategory)
		admin.PUT("/categories/:id", handlers.Catalog.SaveCategory)
		admin.DELETE("/categories/:id", handlers.Catalog.DeleteCategory)

		admin.GET("/plans", handlers.Catalog.ListPlans)
		admin.GET("/plans/active", handlers.Catalog.ActivePlans)
		admin.POST("/plans", handlers.Catalog.SavePlan)
		admin.PUT("/plans/:id", handlers.Catalog.SavePlan)
		admin.DELETE("/plans/:id", handlers.Catalog.DeletePlan)

		admin.GET("/customers", handlers.Catalog.ListCustomers)
		admin.GET("/customers/active", handlers.Catalog.ActiveCustomers)
		admin.POST("/customers", handlers.Catalog.SaveCustomer)
		admin.PUT("/customers/:id", handlers.Catalog.SaveCustomer)
		admin.DELETE("/customers/:id", handlers.Catalog.DeleteCustomer)

		admin.GET("/products", handlers.Catalog.ListProducts)
		admin.POST("/products", handlers.Catalog.SaveProduct)
		admin.PUT("/products/:id", handlers.Catalog.SaveProduct)
		admin.DELETE("/products/:id", handlers.Catalog.DeleteProduct)
	}

	// Customer pages
	user := router.Group("/user")
	user.Use(middleware.RequireRole(models.RoleUser))
	{
		user.GET("/dashboard", handlers.Dashboard.View)

		user.GET("/cart", handlers.Cart.List)
		user.DELETE("/cart", handlers.Cart.Clear)
		user.POST("/cart/items", handlers.Cart.AddLine)
		user.PUT("/cart/items/:key", handlers.Cart.SetQuantity)
		user.DELETE("/cart/items/:key", handlers.Cart.RemoveLine)
		user.POST("/cart/checkout", handlers.Cart.Checkout)

		user.GET("/notices", handlers.Cart.Notices)
		user.DELETE("/notices/:id", handlers.Cart.DismissNotice)

		user.POST("/subscribe", handlers.Subscription.Subscribe)
		user.POST("/subscription/deactivate", handlers.Subscription.RequestDeactivation)
		user.POST("/subscription/deactivate/confirm", handlers.Subscription.ConfirmDeactivation)
		user.GET("/basket", handlers.Subscription.Basket)
		user.POST("/basket", handlers.Subscription.UpsertBasketItem)
		user.DELETE("/basket/:product_id", handlers.Subscription.DeleteBasketItem)

		user.GET("/payments", handlers.History.Payments)
		user.GET("/orders", handlers.History.Orders)
		user.GET("/deliveries", handlers.History.Deliveries)
		user.GET("/notifications", handlers.History.Notifications)
		user.GET("/reorders", handlers.History.ReorderSuggestions)

		user.POST("/panel", handlers.State.SetActivePanel)
		user.GET("/prefs", handlers.State.Prefs)
		user.POST("/prefs", handlers.State.SavePrefs)
		user.GET("/favorites", handlers.State.Favorites)
		user.POST("/favorites/:product_id", handlers.State.ToggleFavorite)
		user.GET("/support", handlers.State.SupportTickets)
		user.POST("/support", handlers.State.FileSupportTicket)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
