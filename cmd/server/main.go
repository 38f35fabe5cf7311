package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/proposal-board-api/internal/config"
	"github.com/yukikurage/proposal-board-api/internal/constants"
	"github.com/yukikurage/proposal-board-api/internal/database"
	"github.com/yukikurage/proposal-board-api/internal/graphql"
	"github.com/yukikurage/proposal-board-api/internal/handlers"
	"github.com/yukikurage/proposal-board-api/internal/metrics"
	"github.com/yukikurage/proposal-board-api/internal/middleware"
	"github.com/yukikurage/proposal-board-api/internal/repository"
	"github.com/yukikurage/proposal-board-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	isProduction := cfg.GinMode == "release"

	logger := newLogger(isProduction)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Document store gateway
	client := graphql.NewClient(graphql.Config{
		BaseURL:    cfg.BackendURL,
		DriveID:    cfg.DriveID,
		HTTPClient: &http.Client{Timeout: cfg.GatewayTimeout},
		Logger:     logger,
		Metrics:    m,
	})
	orgRepo := repository.NewOrganizationRepository(client)
	proposalRepo := repository.NewProposalRepository(client)
	taskRepo := repository.NewTaskRepository(client)

	// Cascade journal
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	runRepo := repository.NewCascadeRunRepository(db)

	// Services
	orgService := services.NewOrganizationService(orgRepo, proposalRepo, taskRepo, logger)
	proposalService := services.NewProposalService(proposalRepo, logger)
	taskService := services.NewTaskService(taskRepo, logger)
	lifecycleService := services.NewLifecycleService(cfg.CascadeMode, orgRepo, proposalRepo, taskRepo, runRepo, m, logger)
	suggestionService := services.NewSuggestionService(
		services.NewOpenAIClient(cfg.OpenAIAPIKey, ""),
		cfg.OpenAIModel,
		proposalRepo,
	)
	if !suggestionService.Enabled() {
		logger.Info("OPENAI_API_KEY not set, task suggestions disabled")
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(logger))

	store, err := newSessionStore(cfg)
	if err != nil {
		logger.Error("Failed to create session store", "error", err)
		os.Exit(1)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionName, store))
	r.Use(middleware.LoadActor())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"message":     "Proposal Board API is running",
			"cascadeMode": lifecycleService.Mode(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// API routes
	handlers.RegisterRoutes(r.Group("/api"), handlers.Handlers{
		Organization: handlers.NewOrganizationHandler(orgService, lifecycleService, logger),
		Proposal:     handlers.NewProposalHandler(proposalService, lifecycleService, suggestionService, logger),
		Task:         handlers.NewTaskHandler(taskService, logger),
		Session:      handlers.NewSessionHandler(),
		Cascade:      handlers.NewCascadeHandler(lifecycleService, logger),
	})

	// Start server
	addr := ":" + cfg.Port
	logger.Info("Server starting", "addr", addr, "cascade_mode", cfg.CascadeMode, "backend", cfg.BackendURL)
	if err := r.Run(addr); err != nil {
		logger.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

// newLogger writes JSON in production and text otherwise.
func newLogger(production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// newSessionStore uses Redis when REDIS_HOST is set and signed cookies otherwise.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.RedisHost == "" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	return redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
}
