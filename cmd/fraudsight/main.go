package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/fraudsight/fraudsight/internal/pkg/config"
	"github.com/fraudsight/fraudsight/internal/pkg/constants"
	"github.com/fraudsight/fraudsight/internal/pkg/database"
	"github.com/fraudsight/fraudsight/internal/pkg/embedding"
	"github.com/fraudsight/fraudsight/internal/pkg/health"
	"github.com/fraudsight/fraudsight/internal/pkg/logger"
	"github.com/fraudsight/fraudsight/internal/pkg/models"
	natspkg "github.com/fraudsight/fraudsight/internal/pkg/nats"
	fraudgateway "github.com/fraudsight/fraudsight/services/fraud/gateway"
	fraudnats "github.com/fraudsight/fraudsight/services/fraud/handler/nats"
	"github.com/fraudsight/fraudsight/services/fraud/listener"
	"github.com/fraudsight/fraudsight/services/fraud/pipeline"
	fraudrepo "github.com/fraudsight/fraudsight/services/fraud/repository"
	fraudusecase "github.com/fraudsight/fraudsight/services/fraud/usecase"
	gengateway "github.com/fraudsight/fraudsight/services/generator/gateway"
	genrepo "github.com/fraudsight/fraudsight/services/generator/repository"
	genusecase "github.com/fraudsight/fraudsight/services/generator/usecase"
)

func main() {
	configPath := "config/fraudsight.env"
	configs := config.InitConfig(configPath)
	appName := configs.App.Name

	// Observability is optional; the logger works without it
	var nrApp *newrelic.Application
	if configs.NewRelic.Enabled {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(configs.NewRelic.AppName),
			newrelic.ConfigLicense(configs.NewRelic.LicenseKey),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("Failed to initialize New Relic: %v", err)
		} else {
			nrApp = app
		}
	}

	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:    configs.Logger.Level,
		FilePath: configs.Logger.FilePath,
		Service:  appName,
	}, nrApp)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.SetGlobalLogger(zapLogger)
	defer zapLogger.Close()

	// Initialize PostgreSQL and apply schema migrations
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()
	if err := postgresClient.Migrate(configs.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to apply migrations", logger.Err(err))
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize NATS and ensure the transaction stream exists
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	ctx := context.Background()
	if _, err := natsClient.EnsureStream(ctx, constants.StreamTransactions,
		constants.SubjectTransactionEvents, constants.SubjectTransactionScored); err != nil {
		logger.Fatal("Failed to ensure transaction stream", logger.Err(err))
	}

	// Wire the fraud pipeline
	txRepo := fraudrepo.NewTransactionRepository(postgresClient.GetDB())
	changeFeed := fraudrepo.NewChangeFeed(postgresClient, txRepo)
	scorer := fraudusecase.NewScorerUC(configs.Scorer, txRepo)
	fraudGW := fraudgateway.NewFraudGW(natsClient)
	queueConsumer := fraudnats.NewTransactionHandler(natsClient, txRepo, scorer, fraudGW)
	feedListener := listener.New(changeFeed, scorer, txRepo)
	supervisor := pipeline.NewSupervisor(configs.Pipeline, queueConsumer, feedListener)

	if err := supervisor.Start(ctx); err != nil {
		logger.Fatal("Failed to start fraud pipeline", logger.Err(err))
	}

	// Optional synthetic traffic
	genCtx, genCancel := context.WithCancel(ctx)
	defer genCancel()
	if configs.Generator.Enabled {
		customerRepo := genrepo.NewCustomerRepository(postgresClient.GetDB(), redisClient)
		genGW := gengateway.NewTransactionGW(natsClient)
		embedder := embedding.NewFeatureHashEmbedder(models.EmbeddingDimensions)
		generatorUC := genusecase.NewGeneratorUC(
			configs.Generator, customerRepo, customerRepo, txRepo, genGW, embedder)

		if err := generatorUC.Seed(ctx); err != nil {
			logger.Fatal("Failed to seed data", logger.Err(err))
		}
		go func() {
			if err := generatorUC.Run(genCtx); err != nil {
				logger.Error("Transaction generator exited", logger.Err(err))
			}
		}()
	}

	// Health endpoints
	e := echo.New()
	e.HideBanner = true
	health.RegisterHealthEndpoints(e, appName)
	go func() {
		addr := fmt.Sprintf("%s:%d", configs.Server.Host, configs.Server.Port)
		logger.Info("Starting HTTP server", logger.String("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start HTTP server", logger.Err(err))
		}
	}()

	// Block until shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Received shutdown signal", logger.String("signal", sig.String()))

	genCancel()
	if err := supervisor.Stop(configs.Pipeline.ShutdownTimeout); err != nil {
		logger.Warn("Pipeline shutdown incomplete", logger.Err(err))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", logger.Err(err))
	}
	logger.Info("Shutdown complete")
}
