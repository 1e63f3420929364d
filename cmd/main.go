package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ecommerce-service/internal/handler"
	mid "ecommerce-service/internal/middleware"
	"ecommerce-service/pkg/config"
	"ecommerce-service/pkg/database"
	"ecommerce-service/pkg/jwtutil"
	"ecommerce-service/pkg/logger"
	"ecommerce-service/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting ecommerce-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Create or alter tables and the top-customers view, then apply the
	// one-time seed set.
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.Seed(db); err != nil {
		log.Fatal("Failed to seed database", zap.Error(err))
	}
	log.Info("Database schema ready")

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Read routes
	e.GET("/api/categories", handler.ListCategories)
	e.GET("/api/categories/:id", handler.GetCategory)
	e.GET("/api/products", handler.ListProducts)
	e.GET("/api/products/:id", handler.GetProduct)
	e.GET("/api/customers", handler.ListCustomers)
	e.GET("/api/customers/top", handler.TopCustomers)
	e.GET("/api/customers/:id", handler.GetCustomer)
	e.GET("/api/orders", handler.ListOrders)
	e.GET("/api/orders/:id", handler.GetOrder)
	e.GET("/api/orders/:id/payment", handler.GetOrderPayment)
	e.GET("/api/payments", handler.ListPayments)

	// Mutating routes require a valid JWT
	api := e.Group("/api", mid.AuthMiddleware)
	api.POST("/categories", handler.CreateCategory)
	api.PUT("/categories/:id", handler.UpdateCategory)
	api.DELETE("/categories/:id", handler.DeleteCategory)
	api.POST("/products", handler.CreateProduct)
	api.PUT("/products/:id", handler.UpdateProduct)
	api.DELETE("/products/:id", handler.DeleteProduct)
	api.POST("/customers", handler.CreateCustomer)
	api.PUT("/customers/:id", handler.UpdateCustomer)
	api.DELETE("/customers/:id", handler.DeleteCustomer)
	api.POST("/orders", handler.CreateOrder)
	api.PUT("/orders/:id/status", handler.UpdateOrderStatus)
	api.DELETE("/orders/:id", handler.DeleteOrder)
	api.POST("/payments", handler.AttachPayment)
	api.DELETE("/payments/:id", handler.DeletePayment)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
