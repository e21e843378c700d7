package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"papertrade/internal/config"
	"papertrade/internal/database"
	"papertrade/internal/handlers"
	"papertrade/internal/logger"
	"papertrade/internal/middleware"
	"papertrade/internal/quotes"
	"papertrade/internal/services"
	"papertrade/internal/session"
	"papertrade/internal/templates"
	"papertrade/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Session store: Redis when configured, in-memory otherwise.
	var store session.Store
	if appConfig.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		store = session.NewRedisStore(client)
		log.Infof("Using Redis session store at %s", appConfig.RedisAddr)
	} else {
		store = session.NewMemoryStore()
		log.Warn("REDIS_ADDR not set; using in-memory session store (sessions are lost on restart)")
	}
	sessions := session.NewManager(store, appConfig.SessionSecret, appConfig.SessionTTL)

	quoteClient := quotes.NewClient(appConfig.QuoteAPIURL, appConfig.QuoteAPIToken, appConfig.QuoteTimeout)

	// Services and handlers.
	db := dbManager.DB()
	userService := services.NewUserService(db)
	portfolioService := services.NewPortfolioService(db, quoteClient)
	tradingService := services.NewTradingService(db, quoteClient)

	authHandler := handlers.NewAuthHandler(userService, sessions)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	tradingHandler := handlers.NewTradingHandler(tradingService, portfolioService)
	quoteHandler := handlers.NewQuoteHandler(quoteClient)

	validator.Register()

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Errorw("panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		c.HTML(http.StatusInternalServerError, "apology.html", gin.H{
			"Title":   "Sorry",
			"Status":  http.StatusInternalServerError,
			"Message": "An internal error occurred",
		})
	}))
	router.Use(middleware.RequestLogging())
	router.SetHTMLTemplate(templates.Must())

	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "apology.html", gin.H{
			"Title":   "Sorry",
			"Status":  http.StatusNotFound,
			"Message": "Page not found",
		})
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	router.GET("/register", authHandler.ShowRegister)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.Auth(sessions))
	protected.Use(middleware.NoCache())

	protected.GET("", portfolioHandler.Index)
	protected.GET("buy", tradingHandler.ShowBuy)
	protected.POST("buy", tradingHandler.Buy)
	protected.GET("sell", tradingHandler.ShowSell)
	protected.POST("sell", tradingHandler.Sell)
	protected.GET("quote", quoteHandler.ShowQuote)
	protected.POST("quote", quoteHandler.Quote)
	protected.GET("history", portfolioHandler.History)

	log.Infof("Starting papertrade server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
