package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/blogicum/config"
	_ "github.com/daniilsolovey/blogicum/docs"
	"github.com/daniilsolovey/blogicum/internal/app"
	"github.com/daniilsolovey/blogicum/internal/db"
)

var (
	flConfig  = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug   = flag.Bool("debug", false, "enable debug mode")
	flMigrate = flag.Bool("migrate", false, "apply database migrations on start")
	cfg       config.Config
	lg        *slog.Logger
)

// @title Blogicum API
// @version 1.0
// @description Read API of the Blogicum blog
// @host localhost:8000
// @BasePath /

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	var err error
	cfg, err = config.Load(*flConfig)
	exitOnError(err)

	ctx := context.Background()

	if *flMigrate {
		exitOnError(db.Migrate(ctx, cfg.Database.URL))
		lg.Info("migrations applied")
	}

	opt, err := cfg.Database.Options()
	exitOnError(err)

	dbc := pg.Connect(opt)
	dbc.AddQueryHook(db.NewQueryLogger(lg, cfg.Database.SlowQuery.Duration, cfg.Database.LogQueries))
	if err := dbc.Ping(ctx); err != nil {
		dbc.Close()
		exitOnError(err)
	}

	service := app.New(cfg, dbc, lg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx)
		if err != nil {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}

	if err := service.DB.Close(); err != nil {
		lg.Error("db close failed", "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
