package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/blogicum/internal/blog"
)

const NSBlog = "blog"

func New(logger *slog.Logger, manager *blog.Manager) zenrpc.Server {
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register(NSBlog, NewBlogService(manager, logger))
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "blogicum", nil))

	return *rpcServer
}
