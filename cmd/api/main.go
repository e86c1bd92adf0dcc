// @title AptiLab API
// @version 1.0
// @description Aptitude test service: question delivery without repeats, scoring, results and report mails.
// @contact.name AptiLab Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:3307
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "aptilab/cmd/api/docs"
	"aptilab/internal/adapter"
	"aptilab/internal/adapter/mailer"
	"aptilab/internal/adapter/quizgen"
	"aptilab/internal/cache"
	"aptilab/internal/config"
	"aptilab/internal/database"
	"aptilab/internal/domain"
	"aptilab/internal/handler"
	"aptilab/internal/logger"
	"aptilab/internal/metrics"
	"aptilab/internal/middleware"
	"aptilab/internal/repository"
	"aptilab/internal/seed"
	"aptilab/internal/service"
	"aptilab/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.NewSQLXMySQLDB(cfg.GetDSN(), cfg.DB)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	cacheAdapter := newCache(cfg.Redis)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.NewMetrics(registry)

	generator := newGenerator(ctx, cfg.LLM, appMetrics)

	questionRepo := repository.NewQuestionDatabaseAdapter(db)
	usageRepo := repository.NewUsageDatabaseAdapter(db)
	resultRepo := repository.NewResultDatabaseAdapter(db)
	userRepo := repository.NewSQLXUserRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// generator stays a nil interface when no backend is configured
	var questionGen domain.QuestionGenerator
	var textGen domain.TextGenerator
	if generator != nil {
		questionGen = generator
		textGen = generator
	}

	source, err := service.NewQuestionSource(cfg.Questions, questionRepo, usageRepo, txManager, questionGen, appMetrics)
	if err != nil {
		appLogger.Fatal("Failed to create question source", zap.Error(err))
	}
	appLogger.Info("Question source selected", zap.String("source", source.Name()))

	if _, err := service.ReconcileSourceMode(ctx, cacheAdapter, usageRepo, source.Name(), cfg.Questions.ResetLedgerOnModeSwitch); err != nil {
		appLogger.Fatal("Failed to reconcile question source", zap.Error(err))
	}

	if cfg.Questions.SeedOnStartup && source.Name() == config.SourceStore {
		seedQuestionBank(ctx, questionRepo, txManager)
	}

	var smtpMailer domain.Mailer
	if missing := cfg.SMTP.Missing(); len(missing) == 0 {
		smtpMailer = mailer.NewSMTPMailer(cfg.SMTP)
		appLogger.Info("SMTP mailer initialized", zap.String("host", cfg.SMTP.Host))
	} else {
		appLogger.Warn("SMTP not configured, result mails disabled", zap.Strings("missing", missing))
	}

	var tokens middleware.TokenValidator
	authService, err := service.NewAuthService(cfg.JWT)
	if err != nil {
		appLogger.Warn("JWT disabled, login returns no token", zap.Error(err))
		authService = nil
	} else {
		tokens = authService
	}

	questionService := service.NewQuestionService(source, cfg.Questions)
	resultService := service.NewResultService(resultRepo, cacheAdapter, smtpMailer, cfg.CacheTTLs.UserResults)
	reportService := service.NewReportService(resultRepo, smtpMailer, cfg.SMTP)
	userService := service.NewUserService(userRepo, authService)
	chatService := service.NewChatService(textGen)
	healthService := service.NewHealthService(db, cacheAdapter, textGen, source.Name(), cfg.LLM.HealthCacheTTL)

	v := validation.NewValidator()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		MaxAge:       300,
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(appLogger))
	app.Use(middleware.Metrics(appMetrics))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	handler.SetupRoutes(app, handler.Handlers{
		Questions:  handler.NewQuestionHandler(questionService),
		Results:    handler.NewResultHandler(resultService, reportService, v),
		Users:      handler.NewUserHandler(userService, v),
		System:     handler.NewSystemHandler(chatService, healthService, v),
		Validation: middleware.NewValidationMiddleware(cfg.Questions),
		Auth:       tokens,
	})

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

// newCache connects to Redis, or returns a cache that stores nothing when no
// address is configured.
func newCache(redisCfg config.RedisConfig) domain.Cache {
	appLogger := logger.Get()
	client, err := cache.NewRedisClient(redisCfg)
	if errors.Is(err, cache.ErrRedisDisabled) {
		appLogger.Warn("Redis not configured, caching disabled")
		return adapter.NewNoopCache()
	}
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis", zap.String("address", redisCfg.Address))
	return adapter.NewRedisCacheAdapter(client)
}

// newGenerator returns nil when the provider cannot be built, e.g. without an API key.
func newGenerator(ctx context.Context, llmCfg config.LLMConfig, m *metrics.Metrics) *quizgen.FailoverGenerator {
	appLogger := logger.Get()
	llm, err := quizgen.NewLLM(ctx, llmCfg)
	if err != nil {
		appLogger.Warn("AI generation disabled", zap.String("provider", llmCfg.Provider), zap.Error(err))
		return nil
	}
	gen, err := quizgen.NewFailoverGenerator(llm, quizgen.Options{
		Models:         quizgen.CandidateModels(llmCfg),
		AttemptTimeout: llmCfg.AttemptTimeout,
		HealthTimeout:  llmCfg.HealthTimeout,
		Metrics:        m,
	})
	if err != nil {
		appLogger.Warn("AI generation disabled", zap.Error(err))
		return nil
	}
	appLogger.Info("AI generator initialized", zap.Strings("models", gen.Models()))
	return gen
}

func seedQuestionBank(ctx context.Context, questions domain.QuestionRepository, tx domain.TransactionManager) {
	appLogger := logger.Get()
	bank, err := seed.DefaultBank()
	if err != nil {
		appLogger.Fatal("Failed to load question bank", zap.Error(err))
	}
	inserted, err := service.NewSeedService(bank, questions, tx).EnsureQuestionBank(ctx)
	if err != nil {
		appLogger.Fatal("Failed to seed question bank", zap.Error(err))
	}
	appLogger.Info("Question bank ready", zap.Any("inserted", inserted))
}
