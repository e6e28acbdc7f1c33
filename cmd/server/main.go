package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	grpclib "google.golang.org/grpc"

	grpcadapter "github.com/simaogato/finpulse-backend/internal/adapter/grpc"
	"github.com/simaogato/finpulse-backend/internal/adapter/realtime"
	"github.com/simaogato/finpulse-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/finpulse-backend/internal/config"
	"github.com/simaogato/finpulse-backend/internal/pkg/grpcserver"
	"github.com/simaogato/finpulse-backend/internal/pkg/logger"
	"github.com/simaogato/finpulse-backend/internal/usecase/seeder"
	"github.com/simaogato/finpulse-backend/internal/usecase/tracker"
)

func main() {
	configPath := flag.String("config", os.Getenv("FINPULSE_CONFIG"), "path to YAML config file")
	flag.Parse()

	// 1. Load configuration and logger
	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log, err := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		log.Warn().Err(err).Str("level", cfg.Log.Level).Msg("unknown log level, using info")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Setup Database
	connectCtx, connectCancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	db, err := postgres.NewDB(connectCtx, cfg.Database.DSN())
	connectCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := db.Migrate(ctx, cfg.Realtime.Channel); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	// 3. Initialize Repositories (Postgres) and the tracker
	assetRepo := postgres.NewAssetRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)

	trackerService := tracker.NewTrackerService(assetRepo, transactionRepo, budgetRepo, log)
	trackerService.RecentLimit = cfg.Display.RecentLimit
	if err := trackerService.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load initial snapshot")
	}

	// Seed default budgets and run it
	defaultBudgets, err := cfg.Seed.BudgetInputs()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid seed budgets")
	}
	created, err := seeder.NewBudgetSeeder(trackerService, defaultBudgets).Seed(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed default budgets")
	}
	log.Info().Int("created", created).Msg("default budgets seeded")

	// 4. Subscribe to remote changes
	if cfg.Realtime.Enabled {
		listener := realtime.NewListener(realtime.Config{
			ConnString:           cfg.Database.DSN(),
			Channel:              cfg.Realtime.Channel,
			MinReconnectInterval: cfg.Realtime.MinReconnectInterval,
			MaxReconnectInterval: cfg.Realtime.MaxReconnectInterval,
			PingInterval:         cfg.Realtime.PingInterval,
		}, trackerService, log)

		go func() {
			if err := listener.Run(ctx); err != nil {
				log.Error().Err(err).Msg("realtime listener stopped")
			}
		}()
	}

	// 5. Start gRPC Server
	server := grpcserver.New(cfg.Server.Addr,
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(log),
			grpcadapter.AuthInterceptor(cfg.Server.APIToken, grpcadapter.PublicMethodPrefixes...),
		),
	)
	grpcadapter.RegisterPortfolioServiceServer(server.Server, grpcadapter.NewServer(trackerService, cfg.Display.Currency))

	if err := server.Listen(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Server.Addr).Msg("failed to listen")
	}

	go func() {
		log.Info().Str("addr", server.Addr()).Msg("gRPC server listening")
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to serve gRPC server")
		}
	}()

	// Graceful shutdown
	waitForShutdown(server, cancel, log)
}

// waitForShutdown waits for SIGTERM or SIGINT, stops the realtime listener
// and gracefully shuts down the server
func waitForShutdown(server *grpcserver.Server, cancel context.CancelFunc, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

	cancel()

	stopped := make(chan struct{})
	go func() {
		server.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		log.Info().Msg("gRPC server stopped")
	case <-time.After(10 * time.Second):
		server.Server.Stop()
		log.Warn().Msg("gRPC server forced to stop")
	}
}
