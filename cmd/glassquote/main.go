package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"glassquote/internal/config"
	"glassquote/internal/httpapi"
	"glassquote/internal/service"
	"glassquote/internal/storage"
	redisstorage "glassquote/internal/storage/redis"
	"glassquote/pkg/api"
	"glassquote/pkg/logger"
	"glassquote/pkg/redis"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run database migrations and exit")
	rollbackFlag    = flag.Bool("rollback", false, "Roll back the last database migration and exit")
)

// ENTRY POINT

func main() {
	flag.Parse()

	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	// Cancel on SIGINT or SIGTERM
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if *migrateOnlyFlag || *rollbackFlag {
		if err := migrate(ctx, cfg, *rollbackFlag, zapLogger); err != nil {
			zapLogger.Fatal("Migration failed", zap.Error(err))
		}
		return
	}

	store, err := openStore(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init store", zap.Error(err))
	}
	defer store.Close()

	svc := service.New(store, cfg.DefaultTaxRate, zapLogger)

	if cfg.RateCardURL != "" {
		seedRateCard(ctx, api.NewClient(cfg.RateCardURL, cfg.RateCardToken, cfg.HTTPRequestTimeout, zapLogger), svc, zapLogger)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewServer(svc, cfg.HTTPRequestTimeout, zapLogger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("HTTP server listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Error("HTTP server stopped with error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("Service shutdown gracefully")
}

func postgresConfig(cfg *config.Config) storage.PostgresConfig {
	return storage.PostgresConfig{
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		User:            cfg.DBUser,
		Password:        cfg.DBPassword,
		Name:            cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		ConnectTimeout:  cfg.DBConnectTimeout,
	}
}

// migrate applies pending migrations, or rolls back the last one.
func migrate(ctx context.Context, cfg *config.Config, rollback bool, logger *zap.Logger) error {
	if cfg.StoreDriver != config.StorePostgres {
		return fmt.Errorf("migrations need STORE_DRIVER=postgres, got %q", cfg.StoreDriver)
	}

	pg, err := storage.NewPostgresStore(ctx, postgresConfig(cfg), logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	if rollback {
		return storage.RollbackMigration(ctx, pg.DB(), logger)
	}
	return storage.RunMigrations(ctx, pg.DB(), logger)
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreRedis:
		client := redis.New(redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return redisstorage.New(client, cfg.StoreKeyPrefix), nil

	case config.StorePostgres:
		pg, err := storage.NewPostgresStore(ctx, postgresConfig(cfg), logger)
		if err != nil {
			return nil, err
		}
		if err := storage.RunMigrations(ctx, pg.DB(), logger); err != nil {
			pg.Close()
			return nil, err
		}
		if cfg.RedisAddr != "" {
			pg.WithCache(redis.New(redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			}), cfg.RedisCacheTTL)
		}
		return pg, nil

	default:
		logger.Warn("Using in-memory store, data is lost on restart")
		return storage.NewMemoryStore(), nil
	}
}

func seedRateCard(ctx context.Context, client *api.Client, svc *service.Service, logger *zap.Logger) {
	rules, err := client.FetchRules(ctx)
	if err != nil {
		logger.Warn("Rate card unavailable, keeping current rules", zap.Error(err))
		return
	}

	seeded, err := svc.SeedPricingRules(ctx, rules)
	if err != nil {
		logger.Warn("Rate card rejected", zap.Error(err))
		return
	}
	if seeded {
		logger.Info("Rate card stored as pricing override", zap.Int("rules", len(rules)))
	}
}
