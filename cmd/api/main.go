package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/repository/postgres"
	"github.com/iamasit07/connect-four/internal/repository/redis"
	"github.com/iamasit07/connect-four/internal/service/cleanup"
	"github.com/iamasit07/connect-four/internal/service/game"
	transportHttp "github.com/iamasit07/connect-four/internal/transport/http"
	"github.com/iamasit07/connect-four/internal/transport/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []game.Option
	var history transportHttp.GameHistory

	// 1. Game archive (optional)
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.DatabaseURL, postgres.PoolConfig{
			MaxOpenConns:       cfg.DBMaxOpenConns,
			MaxIdleConns:       cfg.DBMaxIdleConns,
			ConnMaxLifetimeMin: cfg.DBConnMaxLifetimeMin,
		})
		if err != nil {
			log.Fatalf("Database unreachable: %v", err)
		}
		defer db.Close()

		log.Println("Running database migrations...")
		if err := postgres.RunMigrations(ctx, db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Database migration completed successfully")

		gameRepo := postgres.NewGameRepo(db)
		opts = append(opts, game.WithArchive(gameRepo))
		history = gameRepo
	} else {
		log.Println("[DB] DATABASE_URL not set, game history disabled")
	}

	// 2. Event fan-out. Redis is optional; sockets always get events.
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			log.Printf("[REDIS] Warning: %v. Game events will not be published.", err)
		} else {
			defer client.Close()
			opts = append(opts, game.WithPublisher(redis.NewPublisher(client)))
		}
	}

	connManager := websocket.NewConnectionManager()
	opts = append(opts, game.WithPublisher(connManager))

	// 3. Services
	sessionManager := game.NewSessionManager(cfg.BoardRows, cfg.BoardColumns, opts...)

	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.SessionIdleTimeout, cfg.FinishedSessionTTL)
	go cleanupWorker.Start(ctx)

	// 4. Transport
	router := transportHttp.NewRouter(transportHttp.RouterConfig{
		Games:         transportHttp.NewGameHandler(sessionManager),
		History:       transportHttp.NewHistoryHandler(history),
		WebSocket:     websocket.NewHandler(connManager, sessionManager, cfg.IsOriginAllowed),
		OriginAllowed: cfg.IsOriginAllowed,
		StaticDir:     cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s (%dx%d board)", cfg.Port, cfg.BoardRows, cfg.BoardColumns)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connManager.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	sessionManager.Wait()

	log.Println("Server exited gracefully")
}
