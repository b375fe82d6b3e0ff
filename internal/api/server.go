package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/api/handlers"
	"storefront/internal/api/middleware"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/logger"
	"storefront/internal/services/shopify"
	"storefront/internal/store"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config    *config.Config
	logger    *logger.Logger
	db        *database.Database
	router    *gin.Engine
	server    *http.Server
	loader    *catalog.Loader
	publisher *events.Publisher
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Collaborators and stores
	client := shopify.NewClient(cfg.ShopDomain, cfg.StorefrontToken, logger)
	loader := catalog.NewLoader(client, cfg.PageSize, logger)
	searcher := catalog.NewSearcher(client, logger)
	stores := store.NewManager(db, store.Pricing{
		ShippingFee:      cfg.ShippingFee,
		FreeShippingOver: cfg.FreeShippingOver,
	}, logger)
	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.ActivityTopic, logger)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(loader, client, logger)
	productHandler := handlers.NewProductHandler(client, stores, publisher, logger)
	searchHandler := handlers.NewSearchHandler(searcher, logger)
	cartHandler := handlers.NewCartHandler(stores, publisher, logger)
	wishlistHandler := handlers.NewWishlistHandler(stores, logger)
	recentHandler := handlers.NewRecentHandler(stores, logger)

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Catalog listing
		products := v1.Group("/products")
		{
			products.GET("", catalogHandler.List)
			products.POST("/reload", catalogHandler.Reload)
			products.POST("/reveal", catalogHandler.Reveal)
			products.GET("/facets", catalogHandler.Facets)
			products.GET("/latest", catalogHandler.Latest)
			products.GET("/vendor/:vendor", catalogHandler.ByVendor)
		}

		// Product detail
		product := v1.Group("/product")
		{
			product.GET("/:handle", productHandler.Get)
			product.GET("/:handle/related", productHandler.Related)
		}

		// Search
		v1.GET("/search", searchHandler.Search)

		// Cart
		cart := v1.Group("/cart")
		{
			cart.GET("", cartHandler.Get)
			cart.DELETE("", cartHandler.Clear)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateQuantity)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
			cart.POST("/items/:id/save", cartHandler.SaveForLater)
			cart.POST("/saved/:id/move", cartHandler.MoveToCart)
			cart.DELETE("/saved/:id", cartHandler.RemoveSaved)
			cart.POST("/open", cartHandler.Open)
			cart.POST("/close", cartHandler.Close)
		}

		// Wishlist
		wishlist := v1.Group("/wishlist")
		{
			wishlist.GET("", wishlistHandler.List)
			wishlist.POST("", wishlistHandler.Add)
			wishlist.DELETE("", wishlistHandler.Clear)
			wishlist.DELETE("/:id", wishlistHandler.Remove)
		}

		// Recently viewed
		v1.GET("/recently-viewed", recentHandler.List)
	}

	return &Server{
		config:    cfg,
		logger:    logger,
		db:        db,
		router:    router,
		loader:    loader,
		publisher: publisher,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Warm the catalog buffer; a failure degrades to an empty listing that
	// the reload endpoint can retry.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.loader.LoadInitialPage(ctx)
	}()

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if err := s.publisher.Close(); err != nil {
		s.logger.Error("Failed to close event publisher: %v", err)
	}
	return s.server.Shutdown(ctx)
}

// GetRouter exposes the underlying router for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
