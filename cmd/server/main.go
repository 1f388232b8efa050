package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgetbook/internal/config"
	"budgetbook/internal/database"
	"budgetbook/internal/handlers"
	"budgetbook/internal/middleware"
	"budgetbook/internal/repositories"
	"budgetbook/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	expenditureRepo := repositories.NewExpenditureRepository(db)
	budgetRepo := repositories.NewBudgetRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	tokenService := services.NewTokenService(&cfg.JWT)
	passwordService := services.NewPasswordService()
	authService := services.NewAuthService(userRepo, refreshTokenRepo, passwordService, tokenService, metrics, logger)
	categoryService := services.NewCategoryService(categoryRepo)
	expenditureService := services.NewExpenditureService(expenditureRepo, categoryService, metrics, logger)
	budgetService := services.NewBudgetService(budgetRepo, expenditureRepo, categoryService, metrics, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenditureHandler := handlers.NewExpenditureHandler(expenditureService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Server.RateLimitRPS, cfg.Server.RateLimitRPS*2))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.POST("/logout", authHandler.Logout)

	// The category directory is public read-only data
	api.GET("/categories", categoryHandler.List)

	authenticated := api.Group("", middleware.RequireAuth(tokenService))

	authenticated.GET("/expenditures", expenditureHandler.Query)
	authenticated.POST("/expenditures", expenditureHandler.Create)
	authenticated.GET("/expenditures/:id", expenditureHandler.GetByID)
	authenticated.PUT("/expenditures/:id", expenditureHandler.Update)
	authenticated.DELETE("/expenditures/:id", expenditureHandler.Delete)

	authenticated.GET("/budgets", budgetHandler.List)
	authenticated.POST("/budgets", budgetHandler.Create)
	authenticated.GET("/budgets/:id", budgetHandler.GetByID)
	authenticated.PUT("/budgets/:id", budgetHandler.Update)
	authenticated.DELETE("/budgets/:id", budgetHandler.Delete)
	authenticated.GET("/budgets/:id/usage", budgetHandler.Usage)

	if cfg.IsDevelopment() {
		generator := services.NewSampleDataGenerator(expenditureRepo, categoryRepo)
		devHandler := handlers.NewDevHandler(generator)
		authenticated.POST("/dev/expenditures/generate", devHandler.GenerateSampleData)
		logger.Info("development endpoints enabled")
	}

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()
	logger.Info("server started", "addr", server.Addr, "environment", cfg.Server.Environment)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
