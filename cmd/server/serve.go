package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"rpg-server/internal/config"
	"rpg-server/internal/database"
	"rpg-server/internal/engine"
	"rpg-server/internal/handler"
	"rpg-server/internal/interfaces"
	"rpg-server/internal/llm"
	"rpg-server/internal/messaging"
	"rpg-server/internal/middleware"
	"rpg-server/internal/models"
	"rpg-server/internal/normalize"
	"rpg-server/internal/prompt"
	"rpg-server/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Info("Configuration loaded", zap.String("env", cfg.Env), zap.String("logLevel", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- External connections ---
	if cfg.DBAutoMigrate {
		if err := applyMigrations(cfg, log); err != nil {
			return err
		}
	}

	pool, err := database.ConnectPostgres(ctx, database.PoolConfig{
		DSN:         cfg.GetDSN(),
		MaxConns:    cfg.DBMaxConns,
		IdleTimeout: cfg.DBIdleTimeout,
	}, log.Named("postgres"))
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	log.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))

	var events interfaces.EventPublisher
	if cfg.RabbitMQURL != "" {
		conn, err := messaging.Connect(ctx, cfg.RabbitMQURL, 5, 5*time.Second, log.Named("rabbitmq"))
		if err != nil {
			return err
		}
		defer conn.Close()
		publisher, err := messaging.NewEncounterPublisher(conn, log)
		if err != nil {
			return err
		}
		defer publisher.Close()
		events = publisher
	} else {
		log.Info("RABBITMQ_URL not set, encounter events are not published")
	}

	// --- Dependency injection ---
	userRepo := database.NewPgUserRepository(pool, log.Named("PgUserRepo"))
	characterRepo := database.NewPgCharacterRepository(pool, log.Named("PgCharacterRepo"))
	tokenRepo := database.NewRedisTokenRepository(redisClient, log.Named("RedisTokenRepo"))

	authService := service.NewAuthService(userRepo, tokenRepo, service.AuthConfig{
		JWTSecret:      cfg.JWTSecret,
		PasswordPepper: cfg.PasswordPepper,
		AccessTokenTTL: cfg.AccessTokenTTL,
	}, log.Named("AuthService"))
	characterService := service.NewCharacterService(characterRepo, log.Named("CharacterService"))

	encounterService, err := newEncounterService(ctx, cfg, events, log)
	if err != nil {
		return err
	}

	h := handler.NewHandler(authService, characterService, encounterService, log)
	router := newRouter(cfg, h, middleware.Auth(authService, log.Named("AuthMiddleware")), newLLMRateLimit(cfg, redisClient, log), log)

	// --- HTTP server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	log.Info("Server exited gracefully")
	return nil
}

func applyMigrations(cfg *config.Config, log *zap.Logger) error {
	m, err := database.NewMigrator(cfg.GetDSN(), log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return m.Up()
}

// newEncounterService wires prompt builder, provider chain and normalizer into the resolver.
func newEncounterService(ctx context.Context, cfg *config.Config, events interfaces.EventPublisher, log *zap.Logger) (*engine.Resolver, error) {
	prompts, err := prompt.NewBuilder(cfg.PromptLanguage)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt templates: %w", err)
	}
	norm := normalize.New(cfg.DefaultChoices)

	chain := llm.NewChain(ctx, cfg.Backends, log.Named("llm"))
	gateway := llm.NewGateway(chain, norm.FallbackText(), log,
		llm.WithTemperature(cfg.Temperature),
		llm.WithTokenCounter(llm.NewTiktokenCounter()),
	)
	log.Info("LLM gateway ready", zap.Strings("backends", gateway.Backends()))

	return engine.NewResolver(gateway, prompts, norm, events, engine.Config{
		StartMaxTokens: cfg.StartMaxTokens,
		TurnMaxTokens:  cfg.TurnMaxTokens,
	}, log), nil
}

// newLLMRateLimit limits encounter calls per user per minute, shared across replicas through Redis.
func newLLMRateLimit(cfg *config.Config, redisClient *redis.Client, log *zap.Logger) gin.HandlerFunc {
	if cfg.LLMRateLimit <= 0 {
		return nil
	}
	store := ratelimit.RedisStore(&ratelimit.RedisOptions{
		RedisClient: redisClient,
		Rate:        time.Minute,
		Limit:       uint(cfg.LLMRateLimit),
	})
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			log.Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Code:    models.ErrCodeTooManyRequests,
				Message: "Too many requests. Try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
			})
		},
		KeyFunc: func(c *gin.Context) string {
			if username, ok := middleware.GetUsername(c); ok {
				return "user:" + username
			}
			return "ip:" + c.ClientIP()
		},
	})
}

func newRouter(cfg *config.Config, h *handler.Handler, authMiddleware, llmLimit gin.HandlerFunc, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.GinZapLogger(log.Named("http")))

	corsConfig := cors.DefaultConfig()
	if origins := cfg.GetAllowedOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:4200"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", health)
	router.HEAD("/health", health)

	// Must precede the routes; it also mounts GET /metrics.
	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	h.RegisterRoutes(router, authMiddleware, llmLimit)
	return router
}
