package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/gitpulse-io/gitpulse/docs"
	"github.com/gitpulse-io/gitpulse/internal/config"
	"github.com/gitpulse-io/gitpulse/internal/db"
	"github.com/gitpulse-io/gitpulse/internal/github"
	"github.com/gitpulse-io/gitpulse/internal/handler"
	md "github.com/gitpulse-io/gitpulse/internal/middleware"
	"github.com/gitpulse-io/gitpulse/internal/queue"
	"github.com/gitpulse-io/gitpulse/internal/service"
	"github.com/gitpulse-io/gitpulse/internal/session"
	"github.com/gitpulse-io/gitpulse/internal/worker"
	"github.com/gitpulse-io/gitpulse/pkg/logger"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title GitPulse Dashboard Service
// @version 1.0.0
// @description GitHub repository and commit activity dashboard.
// @host localhost:8081
// @BasePath /v1
func main() {
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.LevelDebug)
	}

	// * Load configuration
	cfg, err := config.LoadConfiguration()
	if err != nil {
		logger.Error("‼️ Failed to load config: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// * Initialize the session store
	store, err := db.NewPostgresStore(cfg.DBURL)
	if err != nil {
		logger.Error("Failed to initialize store: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	// * Run migrations
	if err := store.Migrate(); err != nil {
		logger.Error("Failed to run migrations: %v", err)
		os.Exit(1)
	}
	logger.Info("Successfully ran migrations")

	// * Restore session state and wire the dashboard
	state := session.New(ctx, store, time.Now())
	githubClient := github.NewClient()
	dashboard := service.NewDashboardService(githubClient, state)

	// * Optional background refresh of the selected repository
	if cfg.RefreshInterval > 0 {
		refreshWorker := worker.NewRefreshWorker(dashboard, cfg.RefreshInterval)
		go refreshWorker.Run(ctx)
		logger.Info("Background refresh enabled every %s", cfg.RefreshInterval)
	}

	// * Optional queue-driven refresh requests
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("Failed to initialize RabbitMQ: %v", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()

		err = rabbitMQ.ConsumeRefreshRequests(ctx, func(req queue.RefreshRequest) error {
			_, err := dashboard.SelectRepository(ctx, req.Repo)
			return err
		})
		if err != nil {
			logger.Error("Failed to start refresh consumer: %v", err)
			os.Exit(1)
		}
		logger.Info("Consuming refresh requests from RabbitMQ")
	}

	// * Create API server
	apiHandler := handler.NewDashboardHandler(dashboard)
	router := mux.NewRouter()
	router.Use(md.LoggingMiddleware)
	api := router.PathPrefix("/v1").Subrouter()

	apiHandler.RegisterRoutes(api)
	router.PathPrefix("/v1/swagger/").Handler(httpSwagger.WrapHandler)

	server := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info("Starting API server on %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("API server error: %v", err)
			os.Exit(1)
		}
	}()

	// * Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error: %v", err)
	}
}
