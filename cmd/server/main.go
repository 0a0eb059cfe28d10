package main

import (
	"context"
	"fmt"
	"lexdraft/internal/auth"
	"lexdraft/internal/config"
	"lexdraft/internal/db"
	"lexdraft/internal/document"
	"lexdraft/internal/export"
	"lexdraft/internal/generation"
	"lexdraft/internal/middleware"
	"lexdraft/internal/pipeline"
	"lexdraft/internal/template"
	"lexdraft/internal/user"
	"lexdraft/internal/worker"
	"lexdraft/redis"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// lock TTL beyond the generation timeout, so a crashed holder frees the key on its own
const lockMargin = 10 * time.Second

func main() {
	// Load configuration
	config.LoadConfig()
	cfg := config.AppConfig
	logger := config.GetLogger()

	auth.SetSecret(cfg.JWTSecret)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	conn, err := db.Connect(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}
	defer db.Close(conn, logger)

	// Migrate database schema
	if err := db.Migrate(conn); err != nil {
		logger.WithError(err).Fatal("database migration failed")
	}

	// Seed database with initial data (for development)
	if cfg.SeedData {
		db.SeedData(context.Background(), conn, logger)
	}

	// Initialize Redis; nil when unreachable
	redisClient := redis.Connect(context.Background(), cfg.RedisAddress, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}
	cache := redis.NewCache(redisClient)

	var guard pipeline.Guard = pipeline.NewLocalGuard()
	if redisClient != nil {
		guard = redis.NewLocker(redisClient, cfg.GenerationTimeout+lockMargin)
	}

	// Generation
	provider, closeProvider, err := newProvider(cfg)
	if err != nil {
		logger.WithError(err).Fatal("generation provider setup failed")
	}
	defer closeProvider()

	pool := worker.NewWorkerPool(cfg.GenerationWorkers, cfg.GenerationWorkers*4, logger)
	defer pool.Shutdown()

	generator := generation.NewClient(provider, logger,
		generation.WithTimeout(cfg.GenerationTimeout),
		generation.WithModel(cfg.AIModel, cfg.AIMaxTokens),
		generation.WithPool(pool),
	)

	// Initialize repository
	userRepo := user.NewRepository(conn)
	templateRepo := template.NewRepository(conn)
	docRepo := document.NewRepository(conn)
	// Initialize service
	userService := user.NewService(userRepo)
	templateService := template.NewService(templateRepo, cache)
	docService := document.NewService(docRepo, export.NewExporter(), cache)
	submissions := pipeline.New(templateRepo, generator, docService, logger, pipeline.WithGuard(guard))
	// Initialize handler
	userHandler := user.NewHandler(userService)
	templateHandler := template.NewHandler(templateService)
	docHandler := document.NewHandler(docService)
	pipelineHandler := pipeline.NewHandler(submissions)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg)))

	authMiddleware := &middleware.Auth{UserService: userService}
	requireUser := authMiddleware.AuthMiddleWare()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// User routes
	router.POST("/auth/register", userHandler.Register)
	router.POST("/auth/login", userHandler.Login)
	router.POST("/auth/refresh", userHandler.RefreshToken)
	router.DELETE("/auth/logout", requireUser, userHandler.Logout)
	router.GET("/profile", requireUser, userHandler.GetProfile)
	router.PUT("/profile", requireUser, userHandler.UpdateProfile)

	// Template routes
	router.GET("/templates", requireUser, templateHandler.List)
	router.POST("/templates", requireUser, templateHandler.Create)
	router.GET("/templates/:id", requireUser, templateHandler.Show)
	router.GET("/templates/:id/fields", requireUser, templateHandler.Fields)
	router.DELETE("/templates/:id", requireUser, templateHandler.Delete)

	// Document routes
	router.POST("/create-document/:templateId", requireUser, pipelineHandler.CreateDocument)
	router.GET("/dashboard", requireUser, docHandler.ShowUserDocuments)
	router.GET("/dashboard/export", requireUser, docHandler.ExportUserDocuments)
	router.GET("/editor/:documentId", requireUser, docHandler.ShowDocument)
	router.PUT("/editor/:documentId", requireUser, docHandler.UpdateDocument)
	router.DELETE("/editor/:documentId", requireUser, docHandler.DeleteDocument)
	router.GET("/editor/:documentId/export", requireUser, docHandler.ExportDocument)

	// Server configuration
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router.Handler(),
		// generation can take up to the configured timeout
		WriteTimeout: cfg.GenerationTimeout + lockMargin,
	}

	// Start server
	go func() {
		logger.WithField("port", cfg.ServerPort).Info("server listening")
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed to start")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server shutdown error")
	}
	logger.Info("server shutdown complete")
}

func newProvider(cfg config.Config) (generation.Provider, func(), error) {
	switch cfg.AIProvider {
	case "gemini":
		gemini, err := generation.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, err
		}
		return gemini, gemini.Close, nil
	case "anthropic", "":
		return generation.NewAnthropicProvider(cfg.AnthropicBaseURL, cfg.AnthropicAPIKey, nil), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown AI_PROVIDER %q", cfg.AIProvider)
	}
}

func corsConfig(cfg config.Config) cors.Config {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}

	if cfg.Environment == "development" || cfg.FrontendAddress == "" {
		// Allow all origins in development
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		// Restrict origins in production
		corsConfig.AllowOrigins = []string{cfg.FrontendAddress}
	}
	return corsConfig
}
