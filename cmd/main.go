package main

import (
	"backstube/cmd/config"
	migration "backstube/cmd/database/migrate"
	"backstube/internal/utils"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	utils.LoadConfig()
	log.SetLevel(logLevel(utils.GetConfig("LOG_LEVEL")))

	if err := run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func run() error {
	db, err := config.ConnectDB()
	if err != nil {
		return fmt.Errorf("database connection: %w", err)
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			log.Errorw("closing database pool failed", "error", err)
		}
	}()

	if err := migration.Migrate(db); err != nil {
		return fmt.Errorf("database migration: %w", err)
	}

	opts, err := config.LoadAppOptions()
	if err != nil {
		return fmt.Errorf("loading app options: %w", err)
	}
	defer func() {
		if err := opts.Close(); err != nil {
			log.Errorw("closing access log failed", "error", err)
		}
	}()

	app, err := config.NewApp(db, opts)
	if err != nil {
		return fmt.Errorf("creating app: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	if err := serve(app, ":"+utils.GetConfig("APP_PORT"), quit); err != nil {
		return err
	}
	log.Info("server shut down")
	return nil
}

// serve listens until quit fires or the listener itself fails.
func serve(app *fiber.App, addr string, quit <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func logLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
