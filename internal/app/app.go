package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/blogicum/config"
	"github.com/daniilsolovey/blogicum/internal/blog"
	"github.com/daniilsolovey/blogicum/internal/db"
	"github.com/daniilsolovey/blogicum/internal/rest"
	"github.com/daniilsolovey/blogicum/internal/rpc"
)

const rpcPath = "/v1/rpc/"

type App struct {
	DB      *db.Repository
	Logger  *slog.Logger
	Echo    *echo.Echo
	Manager *blog.Manager
	Config  config.Config

	rpcServer zenrpc.Server
}

func New(cfg config.Config, dbConnect pg.DBI, logger *slog.Logger) *App {
	repo := db.New(dbConnect)
	manager := blog.NewManager(repo,
		blog.WithLogger(logger),
		blog.WithPageSize(cfg.Blog.PageSize),
		blog.WithSessionTTL(cfg.Blog.SessionTTL.Duration),
		blog.WithPasswordCost(cfg.Blog.PasswordCost),
	)

	a := &App{
		DB:        repo,
		Logger:    logger,
		Echo:      rest.NewHandler(manager, logger, cfg.App.MediaDir).RegisterRoutes(),
		Manager:   manager,
		Config:    cfg,
		rpcServer: rpc.New(logger, manager),
	}
	a.Echo.Any(rpcPath, echo.WrapHandler(&a.rpcServer))

	return a
}

func (a *App) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", a.Config.App.Host, a.Config.App.Port)
	a.Logger.InfoContext(ctx, "http server listening", "addr", addr)

	err := a.Echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
