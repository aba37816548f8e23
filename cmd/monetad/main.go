package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moneta-app/moneta/pkg/auth"
	"github.com/moneta-app/moneta/pkg/kafka"
	"github.com/moneta-app/moneta/pkg/observability"
	"github.com/moneta-app/moneta/pkg/postgres"

	"github.com/moneta-app/moneta/internal/application/usecase"
	"github.com/moneta-app/moneta/internal/domain/port"
	"github.com/moneta-app/moneta/internal/domain/service"
	"github.com/moneta-app/moneta/internal/infrastructure/config"
	infraKafka "github.com/moneta-app/moneta/internal/infrastructure/kafka"
	infraPostgres "github.com/moneta-app/moneta/internal/infrastructure/postgres"
	"github.com/moneta-app/moneta/internal/infrastructure/provider"
	grpcPresentation "github.com/moneta-app/moneta/internal/presentation/grpc"
	"github.com/moneta-app/moneta/internal/presentation/rest"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "monetad: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logger.Info("starting monetad",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database pool.
	pool, err := postgres.NewPool(ctx, postgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	})
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()
	logger.Info("database pool created")

	// Run database migrations.
	migDSN := postgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}.DSN()
	if migErr := postgres.RunMigrations(migDSN, "file://"+cfg.DB.MigrationsDir); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Kafka producer.
	kafkaProducer := kafka.NewProducer(kafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	logger.Info("kafka producer created")

	// Repositories and infrastructure.
	stores := infraPostgres.NewStores(pool)
	uow := infraPostgres.NewUnitOfWork(pool)
	publisher := infraKafka.NewEventPublisher(kafkaProducer, logger)

	// Rate provider: an external HTTP source when RATE_PROVIDER_URL is set,
	// otherwise the static development table. Lookups are cached either way.
	var upstream port.RateProvider
	if cfg.Rates.ProviderURL != "" {
		upstream = provider.NewHTTPRateProvider(cfg.Rates.ProviderURL)
		logger.Info("using HTTP rate provider", "url", cfg.Rates.ProviderURL)
	} else {
		upstream = provider.NewStaticRateProvider()
		logger.Info("using static rate provider")
	}
	rates := provider.NewCachedRateProvider(upstream, cfg.Rates.CacheTTL)

	// Domain engines.
	balanceEngine := service.NewBalanceEngine(rates)
	positionEngine := service.NewPositionEngine(rates)

	// Use cases.
	usecases := grpcPresentation.Usecases{
		OpenAccount:        usecase.NewOpenAccount(stores.Accounts, publisher),
		GetAccount:         usecase.NewGetAccount(stores.Accounts),
		ListAccounts:       usecase.NewListAccounts(stores.Accounts),
		CloseAccount:       usecase.NewCloseAccount(uow, publisher),
		RecordTransaction:  usecase.NewRecordTransaction(uow, balanceEngine, publisher),
		UpdateTransaction:  usecase.NewUpdateTransaction(uow, balanceEngine, publisher),
		DeleteTransaction:  usecase.NewDeleteTransaction(uow, balanceEngine, publisher),
		ListTransactions:   usecase.NewListTransactions(stores.Accounts, stores.Transactions),
		CreateInvestment:   usecase.NewCreateInvestment(stores.Investments),
		ListInvestments:    usecase.NewListInvestments(stores.Investments),
		RecordTrade:        usecase.NewRecordTrade(uow, balanceEngine, positionEngine, publisher),
		DeleteTrade:        usecase.NewDeleteTrade(uow, balanceEngine, positionEngine, publisher),
		RecordContribution: usecase.NewRecordContribution(uow, balanceEngine, positionEngine, publisher),
		DeleteContribution: usecase.NewDeleteContribution(uow, balanceEngine, positionEngine, publisher),
		RecordValuation:    usecase.NewRecordValuation(stores.Investments, stores.Valuations, publisher),
		GetPosition:        usecase.NewGetPosition(stores.Investments, stores.Trades, stores.Contributions, stores.Valuations, positionEngine),
	}

	// JWT service for gRPC auth (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{
		Issuer: "moneta",
	}
	if cfg.Auth.PublicKeyPath != "" {
		keyData, loadErr := auth.LoadKeyFromFile(cfg.Auth.PublicKeyPath)
		if loadErr != nil {
			return fmt.Errorf("load JWT public key file: %w", loadErr)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	} else {
		jwtCfg.Secret = cfg.Auth.JWTSecret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return fmt.Errorf("initialize JWT service: %w", err)
	}

	// gRPC server.
	handler := grpcPresentation.NewHandler(usecases, logger)
	grpcServer := grpcPresentation.NewServer(handler, logger, cfg.GRPCPort, jwtSvc)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{})
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}
	defer func() {
		if mpErr := meterProvider.Shutdown(context.Background()); mpErr != nil {
			logger.Error("meter provider shutdown error", "error", mpErr)
		}
	}()

	// HTTP health and metrics server.
	healthHandler := rest.NewHealthHandler(pool, logger)
	mux := http.NewServeMux()
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		errCh <- grpcServer.Start()
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		logger.Error("server error", "error", err)
		return err
	}

	// Shutdown sequence.
	logger.Info("shutting down")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	cancel()
	logger.Info("monetad stopped")
	return nil
}
