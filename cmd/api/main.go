package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"storefront-api/config"
	"storefront-api/internal/cache"
	"storefront-api/internal/database"
	"storefront-api/internal/handlers"
	"storefront-api/internal/jobs"
	"storefront-api/internal/logging"
	"storefront-api/internal/middleware"
	"storefront-api/internal/repository"
	"storefront-api/internal/services"
	"storefront-api/internal/telemetry"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()
	cfg := config.Load()

	tel, err := telemetry.Init(ctx, cfg.OTelConfig.ServiceName, cfg.OTelConfig.OTLPEndpoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize telemetry: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logging.Error(ctx, "failed to shutdown telemetry", "error", err)
		}
	}()

	logging.Init(cfg.OTelConfig.ServiceName, cfg.Environment)

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Error(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		logging.Error(ctx, "failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Error(ctx, "failed to create pgxpool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.RunRiverMigrations(ctx, pool); err != nil {
		logging.Error(ctx, "failed to run river migrations", "error", err)
		os.Exit(1)
	}

	jobClient, err := jobs.NewClient(ctx, pool)
	if err != nil {
		logging.Error(ctx, "failed to create job client", "error", err)
		os.Exit(1)
	}

	rdb := cache.New(cfg.RedisAddr)
	defer rdb.Close()

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	authService := services.NewAuthService(userRepo,
		cfg.AdminJWTSecret, cfg.AdminJWTExpiry,
		cfg.CustomerJWTSecret, cfg.CustomerJWTExpiry)
	userService := services.NewUserService(userRepo, authService)
	productService := services.NewProductService(productRepo, cache.NewProductCache(rdb))
	orderService := services.NewOrderService(orderRepo, userRepo, jobClient, cfg.TaxRate)

	healthHandler := handlers.NewHealthHandler(db)
	adminHandler := handlers.NewAdminHandler(userService, authService)
	customerHandler := handlers.NewCustomerHandler(userService, authService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Metrics())

	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	admin := api.Group("/admin")
	admin.Post("/register", adminHandler.Register)
	admin.Post("/login", adminHandler.Login)
	admin.Get("/", authMiddleware.RequireAdmin(), adminHandler.List)
	admin.Get("/:id", authMiddleware.RequireAdmin(), adminHandler.Get)
	admin.Put("/:id", authMiddleware.RequireAdmin(), adminHandler.Update)
	admin.Delete("/:id", authMiddleware.RequireAdmin(), adminHandler.Delete)

	customers := api.Group("/customers")
	customers.Post("/register", customerHandler.Register)
	customers.Post("/login", customerHandler.Login)
	customers.Get("/me", authMiddleware.RequireCustomer(), customerHandler.Profile)
	customers.Put("/me", authMiddleware.RequireCustomer(), customerHandler.UpdateProfile)
	customers.Get("/", authMiddleware.RequireAdmin(), customerHandler.List)

	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Post("/", authMiddleware.RequireAdmin(), productHandler.Create)
	products.Put("/:id", authMiddleware.RequireAdmin(), productHandler.Update)
	products.Delete("/:id", authMiddleware.RequireAdmin(), productHandler.Delete)

	orders := api.Group("/orders")
	orders.Post("/", authMiddleware.RequireCustomer(), orderHandler.Create)
	orders.Get("/my", authMiddleware.RequireCustomer(), orderHandler.ListMine)
	orders.Get("/", authMiddleware.RequireAdmin(), orderHandler.List)
	orders.Get("/:id", authMiddleware.RequireAny(), orderHandler.Get)
	orders.Post("/:id/cancel", authMiddleware.RequireCustomer(), orderHandler.Cancel)
	orders.Patch("/:id/status", authMiddleware.RequireAdmin(), orderHandler.UpdateStatus)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logging.Info(ctx, "starting server", "port", cfg.Port)
		if err := app.Listen(addr); err != nil {
			logging.Error(ctx, "server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info(ctx, "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logging.Error(ctx, "failed to shutdown server", "error", err)
	}
}
