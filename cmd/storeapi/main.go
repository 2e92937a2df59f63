package main

import (
	"context"
	"log"
	"net/http"

	"github.com/fungigrow/storeapi/config"
	"github.com/fungigrow/storeapi/internal/flow"
	handler "github.com/fungigrow/storeapi/internal/handler/http"
	"github.com/fungigrow/storeapi/internal/middleware"
	"github.com/fungigrow/storeapi/internal/models"
	"github.com/fungigrow/storeapi/internal/notify"
	"github.com/fungigrow/storeapi/internal/repository"
	"github.com/fungigrow/storeapi/internal/repository/postgres"
	"github.com/fungigrow/storeapi/internal/service"
	"github.com/fungigrow/storeapi/internal/worker"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const eventBufferSize = 16

// newLogger creates logger with log level
func newLogger(level string) (*zap.Logger, error) {

	loggerLvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Level = loggerLvl

	return loggerCfg.Build()
}

func main() {

	// load .env if present, real environment wins
	_ = godotenv.Load()

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	err = db.Migrate()
	if err != nil {
		logger.Fatal("Error migrating database", zap.Error(err))
	}

	// paid-order event stream
	events := make(chan models.PaidOrderEvent, eventBufferSize)

	// flow client
	flowClient := flow.NewClient(cfg.FlowBaseURL, cfg.FlowAPIKey, cfg.FlowSecretKey)

	// dependency injection
	// discount
	discountRepo := repository.NewDiscountRepository(db)
	discountService := service.NewDiscountService(discountRepo)
	discountHandler := handler.NewDiscountHandler(discountService)

	// payment
	orderRepo := repository.NewOrderRepository(db)
	paymentService := service.NewPaymentService(orderRepo, flowClient, discountService, cfg.PublicBaseURL, events, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	callbackHandler := handler.NewCallbackHandler(paymentService, cfg.StoreURL)

	// catalog
	productRepo := repository.NewProductRepository(db)
	productService := service.NewProductService(productRepo)
	productHandler := handler.NewProductHandler(productService)

	// blog
	blogRepo := repository.NewBlogRepository(db)
	blogService := service.NewBlogService(blogRepo)
	blogHandler := handler.NewBlogHandler(blogService)

	// admin auth
	authService := service.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecret)
	authHandler := handler.NewAuthHandler(authService)

	// notification fan-out
	dispatchers := []notify.Dispatcher{}
	if cfg.EmailHost != "" && cfg.StoreOwnerEmail != "" {
		dispatchers = append(dispatchers, notify.NewEmailNotifier(
			cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword,
			cfg.EmailFrom, cfg.StoreOwnerEmail))
	}
	if cfg.SaleWebhookURL != "" {
		dispatchers = append(dispatchers, notify.NewWebhookNotifier(cfg.SaleWebhookURL))
	}

	processor := worker.NewNotificationProcessor(dispatchers, logger)
	go processor.ProcessEvents(ctx, events)

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger))

	router.Get("/", handler.HealthCheck())

	router.Post("/api/create-payment/", paymentHandler.CreatePayment())
	router.Post("/api/confirm-payment/", paymentHandler.ConfirmPayment())
	router.Get("/api/order-status-by-token/{token}", paymentHandler.OrderStatusByToken())
	router.Get("/api/query-order-status/", paymentHandler.QueryOrderStatus())
	router.Post("/api/validate-discount/", discountHandler.ValidateDiscount())

	router.Get("/payment/flow-callback/", callbackHandler.FlowCallback())
	router.Post("/payment/flow-callback/", callbackHandler.FlowCallback())

	router.Get("/api/products/", productHandler.ListProducts())
	router.Get("/api/products/{slug}/", productHandler.GetProduct())
	router.Get("/api/blog/posts/", blogHandler.ListPosts())
	router.Get("/api/blog/posts/{slug}/", blogHandler.GetPost())

	router.Post("/api/admin/login", authHandler.Login())

	// routes that require admin authentication
	router.Group(func(group chi.Router) {
		group.Use(middleware.Auth(authService))
		group.Post("/api/products/", productHandler.CreateProduct())
		group.Put("/api/products/{slug}/", productHandler.UpdateProduct())
		group.Delete("/api/products/{slug}/", productHandler.DeleteProduct())
		group.Post("/api/blog/posts/", blogHandler.CreatePost())
		group.Put("/api/blog/posts/{slug}/", blogHandler.UpdatePost())
		group.Delete("/api/blog/posts/{slug}/", blogHandler.DeletePost())
	})

	logger.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Fatal("Error starting server", zap.Error(err))
	}
}
