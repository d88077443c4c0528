package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/handlers"
	"github.com/namnm309/evdealer-backend/middlewares"
	"github.com/namnm309/evdealer-backend/models"
	"github.com/namnm309/evdealer-backend/utils"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultPort = "8080"

type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func getRedisClient(redisAddress string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: redisAddress,
	})
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

func registerRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/login", handlers.Login)
		auth.POST("/register", handlers.Register)
		auth.POST("/logout", middlewares.RequireSession(), handlers.Logout)
		auth.GET("/me", middlewares.RequireSession(), handlers.Me)
		auth.POST("/change-password", middlewares.RequireSession(), handlers.ChangePassword)
	}

	vehicles := api.Group("/vehicles", middlewares.RequireSession())
	{
		vehicles.GET("", handlers.ListVehicles)
		vehicles.GET("/:id", handlers.GetVehicle)
		vehicles.POST("", middlewares.RequireManufacturer(), handlers.CreateVehicle)
		vehicles.PUT("/:id", middlewares.RequireManufacturer(), handlers.UpdateVehicle)
		vehicles.DELETE("/:id", middlewares.RequireManufacturer(), handlers.DeleteVehicle)
		vehicles.POST("/:id/toggle-active", middlewares.RequireManufacturer(), handlers.ToggleVehicleActive)
		vehicles.POST("/:id/image", middlewares.RequireManufacturer(), handlers.UploadVehicleImage)
		vehicles.POST("/image/sign", middlewares.RequireManufacturer(), handlers.SignVehicleImageUpload)
	}

	brands := api.Group("/brands", middlewares.RequireSession())
	{
		brands.GET("", handlers.ListBrands)
		brands.GET("/:id", handlers.GetBrand)
		brands.POST("", middlewares.RequireManufacturer(), handlers.CreateBrand)
		brands.PUT("/:id", middlewares.RequireManufacturer(), handlers.UpdateBrand)
		brands.DELETE("/:id", middlewares.RequireManufacturer(), handlers.DeleteBrand)
		brands.POST("/:id/toggle-active", middlewares.RequireManufacturer(), handlers.ToggleBrandActive)
	}

	categories := api.Group("/categories", middlewares.RequireSession())
	{
		categories.GET("", handlers.ListCategories)
		categories.GET("/:id", handlers.GetCategory)
		categories.POST("", middlewares.RequireManufacturer(), handlers.CreateCategory)
		categories.PUT("/:id", middlewares.RequireManufacturer(), handlers.UpdateCategory)
		categories.DELETE("/:id", middlewares.RequireManufacturer(), handlers.DeleteCategory)
		categories.POST("/:id/toggle-active", middlewares.RequireManufacturer(), handlers.ToggleCategoryActive)
	}

	regions := api.Group("/regions", middlewares.RequireSession())
	{
		regions.GET("", handlers.ListRegions)
		regions.GET("/:id", handlers.GetRegion)
		regions.POST("", middlewares.RequireManufacturer(), handlers.CreateRegion)
		regions.PUT("/:id", middlewares.RequireManufacturer(), handlers.UpdateRegion)
		regions.DELETE("/:id", middlewares.RequireManufacturer(), handlers.DeleteRegion)
	}

	customers := api.Group("/customers", middlewares.RequireSession())
	{
		customers.GET("", handlers.ListCustomers)
		customers.GET("/:id", handlers.GetCustomer)
		customers.POST("", handlers.CreateCustomer)
		customers.PUT("/:id", handlers.UpdateCustomer)
		customers.DELETE("/:id", handlers.DeleteCustomer)
	}

	orders := api.Group("/sales-orders", middlewares.RequireSession())
	{
		orders.GET("", handlers.ListSalesOrders)
		orders.GET("/:id", handlers.GetSalesOrder)
		orders.POST("", handlers.CreateSalesOrder)
		orders.POST("/:id/confirm", handlers.ConfirmSalesOrder)
		orders.POST("/:id/payment", handlers.UpdateSalesOrderPayment)
		orders.POST("/:id/deliver", handlers.DeliverSalesOrder)
		orders.POST("/:id/cancel", handlers.CancelSalesOrder)
	}

	purchaseOrders := api.Group("/purchase-orders", middlewares.RequireSession())
	{
		purchaseOrders.GET("", handlers.ListPurchaseOrders)
		purchaseOrders.GET("/:id", handlers.GetPurchaseOrder)
		purchaseOrders.POST("", handlers.CreatePurchaseOrder)
		purchaseOrders.POST("/:id/approve", middlewares.RequireManufacturer(), handlers.ApprovePurchaseOrder)
		purchaseOrders.POST("/:id/reject", middlewares.RequireManufacturer(), handlers.RejectPurchaseOrder)
		purchaseOrders.POST("/:id/status", handlers.UpdatePurchaseOrderStatus)
		purchaseOrders.POST("/:id/cancel", handlers.CancelPurchaseOrder)
	}

	testDrives := api.Group("/test-drives", middlewares.RequireSession())
	{
		testDrives.GET("", handlers.ListTestDrives)
		testDrives.GET("/:id", handlers.GetTestDrive)
		testDrives.POST("", handlers.CreateTestDrive)
		testDrives.POST("/:id/confirm", handlers.ConfirmTestDrive)
		testDrives.POST("/:id/complete", handlers.CompleteTestDrive)
		testDrives.POST("/:id/cancel", handlers.CancelTestDrive)
	}

	inventory := api.Group("/inventory", middlewares.RequireSession())
	{
		inventory.GET("/allocations", handlers.ListInventoryAllocations)
		inventory.GET("/allocations/:id", handlers.GetInventoryAllocation)
		inventory.POST("/allocations", middlewares.RequireDealerManager(), handlers.CreateInventoryAllocation)
		inventory.PUT("/allocations/:id", middlewares.RequireDealerManager(), handlers.UpdateInventoryAllocation)
		inventory.DELETE("/allocations/:id", middlewares.RequireDealerManager(), handlers.DeleteInventoryAllocation)
		inventory.POST("/transfer", middlewares.RequireDealerManager(), handlers.TransferStock)
		inventory.POST("/adjust", middlewares.RequireDealerManager(), handlers.AdjustStock)
		inventory.GET("/transactions", handlers.ListInventoryTransactions)
		inventory.GET("/low-stock", handlers.ListLowStock)
		inventory.GET("/out-of-stock", handlers.ListOutOfStock)
		inventory.GET("/summary", handlers.GetStockSummary)
	}

	dealers := api.Group("/dealers", middlewares.RequireSession())
	{
		dealers.GET("", handlers.ListDealers)
		dealers.GET("/:id", handlers.GetDealer)
		dealers.POST("", middlewares.RequireManufacturer(), handlers.CreateDealer)
		dealers.PUT("/:id", middlewares.RequireManufacturer(), handlers.UpdateDealer)
		dealers.DELETE("/:id", middlewares.RequireManufacturer(), handlers.DeleteDealer)
		dealers.POST("/:id/toggle-active", middlewares.RequireManufacturer(), handlers.ToggleDealerActive)
		dealers.GET("/:id/contracts", middlewares.RequireDealerManager(), handlers.ListDealerContracts)
		dealers.POST("/:id/contracts", middlewares.RequireManufacturer(), handlers.CreateDealerContract)
		dealers.PUT("/contracts/:id/status", middlewares.RequireManufacturer(), handlers.UpdateDealerContractStatus)
	}

	feedbacks := api.Group("/feedbacks", middlewares.RequireSession())
	{
		feedbacks.GET("", handlers.ListFeedbacks)
		feedbacks.GET("/:id", handlers.GetFeedback)
		feedbacks.POST("", handlers.CreateFeedback)
		feedbacks.PUT("/:id/status", handlers.UpdateFeedbackStatus)
	}

	promotions := api.Group("/promotions", middlewares.RequireSession())
	{
		promotions.GET("", handlers.ListPromotions)
		promotions.GET("/:id", handlers.GetPromotion)
		promotions.POST("", middlewares.RequireDealerManager(), handlers.CreatePromotion)
		promotions.PUT("/:id", middlewares.RequireDealerManager(), handlers.UpdatePromotion)
		promotions.DELETE("/:id", middlewares.RequireDealerManager(), handlers.DeletePromotion)
		promotions.POST("/:id/toggle-active", middlewares.RequireDealerManager(), handlers.TogglePromotionActive)
	}

	reports := api.Group("/reports", middlewares.RequireSession())
	{
		reports.GET("/sales", handlers.GetSalesReport)
		reports.GET("/sales/export", handlers.ExportSalesReport)
		reports.GET("/inventory", handlers.GetInventoryReport)
		reports.GET("/dashboard", handlers.GetDashboardReport)
	}

	users := api.Group("/users", middlewares.RequireSession(), middlewares.RequireManufacturer())
	{
		users.GET("", handlers.ListUsers)
		users.GET("/:id", handlers.GetUser)
		users.POST("", handlers.CreateUser)
		users.PUT("/:id", handlers.UpdateUser)
		users.POST("/:id/toggle-active", handlers.ToggleUserActive)
	}

	api.GET("/history", middlewares.RequireSession(), middlewares.RequireManufacturer(), handlers.ListHistory)
	api.GET("/storage/object", middlewares.RequireSession(), handlers.ServeStorageObject)
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP so Cloud Run considers the revision healthy.
	// Until DB/Redis are ready, we return 503 for app endpoints.
	r := gin.New()
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		// Always allow the startup probe.
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil || config.GetRedisDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// In production, require an explicit allowlist via CORS_ALLOWED_ORIGINS.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("token", "Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// Optional rate limiting (recommended for production).
	// Env:
	// - RATE_LIMIT_ENABLED=true
	// - RATE_LIMIT_WINDOW_SECONDS=60
	// - RATE_LIMIT_MAX_REQUESTS=600
	if strings.EqualFold(strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")), "true") {
		client := getRedisClient(os.Getenv("REDIS_ADDRESS"))
		limit := int64(600)
		if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_MAX_REQUESTS")); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				limit = n
			}
		}
		windowSec := int64(60)
		if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_WINDOW_SECONDS")); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				windowSec = n
			}
		}
		rateLimiter := NewRateLimiter(client, limit, time.Duration(windowSec)*time.Second)
		r.Use(rateLimiter.RateLimitMiddleware)
	}

	r.Use(middlewares.AuthMiddleware())
	r.Use(middlewares.SessionMiddleware())
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	registerRoutes(r)
	r.NoRoute(customNotFoundHandler)

	// Start listening immediately (Cloud Run startup probe is TCP based).
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can run DDL that blocks tables; allow running migrations
	// as a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	// Set the session isolation level to READ COMMITTED
	for attempt := 1; ; attempt++ {
		err := db.Exec("SET SESSION TRANSACTION ISOLATION LEVEL READ COMMITTED").Error
		if err == nil {
			break
		}
		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		logger.WithFields(logrus.Fields{
			"field":   "database",
			"attempt": attempt,
		}).Warn("failed to set isolation level; retrying in " + sleep.String() + ": " + err.Error())
		time.Sleep(sleep)
	}

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on http://localhost:", port, "/api/v1")
	log.Println("Server started successfully")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownTimeout := 30 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

// customErrorLogger logs only requests that accumulated gin errors.
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			correlationId, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
			logger.WithFields(logrus.Fields{
				"correlation_id": correlationId,
				"path":           c.Request.URL.Path,
			}).Error(c.Errors.String())
		}
	}
}

func NewRateLimiter(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// RateLimitMiddleware enforces a fixed-window per-IP request budget in redis.
func (rl *RateLimiter) RateLimitMiddleware(c *gin.Context) {
	key := c.ClientIP()

	exists, err := rl.client.Exists(c.Request.Context(), key).Result()
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	if exists == 0 {
		err := rl.client.Set(c.Request.Context(), key, 1, rl.window).Err()
		if err != nil {
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		c.Next()
		return
	}

	count, err := rl.client.Incr(c.Request.Context(), key).Result()
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	if count > rl.limit {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": fmt.Sprintf("Rate limit exceeded. Try again in %d seconds", int(rl.window.Seconds())),
		})
		return
	}

	c.Next()
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
