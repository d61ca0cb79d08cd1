package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/1dinos/desafio-cronometro/internal/cache"
	"github.com/1dinos/desafio-cronometro/internal/config"
	"github.com/1dinos/desafio-cronometro/internal/countdown"
	"github.com/1dinos/desafio-cronometro/internal/database"
	"github.com/1dinos/desafio-cronometro/internal/logging"
	"github.com/1dinos/desafio-cronometro/internal/redis"
	"github.com/1dinos/desafio-cronometro/internal/server"
	"github.com/1dinos/desafio-cronometro/internal/websocket"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(ctx context.Context, cfg *config.Config) *database.DB {
	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to set up database pool", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		// Non-fatal: reads will fail over to the local cache until the
		// store comes back.
		slog.Warn("Failed to run migrations, store degraded", "error", err)
	}

	return db
}

func setupRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to set up Redis client", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(cancel context.CancelFunc, srv *server.Server, engine *countdown.Engine, hub *websocket.Hub) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		engine.Stop()
		hub.Stop()
		cancel()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Participant starting", "env", cfg.AppEnv, "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := setupDB(ctx, cfg)
	defer db.Close()

	redisClient := setupRedis(ctx, cfg)
	defer func() { _ = redisClient.Close() }()

	repo := database.NewTimerRepo(db)
	channel := redis.NewChannel(redisClient, cfg.SyncChannel, clock, nil)
	fallback := cache.New(cfg.CacheFile)
	hub := websocket.NewHub()

	engine := countdown.New(repo, channel, fallback, clock, hub.Broadcast)
	engine.Bootstrap(ctx)
	engine.Start()

	go func() {
		if err := channel.Subscribe(ctx, engine.ApplyRemote); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Subscription loop ended", "error", err)
		}
	}()
	go channel.MonitorConnection(ctx)

	controller := countdown.NewController(engine)
	srv := server.NewServer(cfg, controller, engine, hub, db, channel)

	done := runGracefulShutdown(cancel, srv, engine, hub)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
