package rpc

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/blogicum/internal/blog"
)

//go:generate zenrpc

// BlogService exposes read-only blog listings to anonymous clients.
type BlogService struct {
	zenrpc.Service
	manager *blog.Manager
	log     *slog.Logger
}

func NewBlogService(manager *blog.Manager, log *slog.Logger) *BlogService {
	return &BlogService{manager: manager, log: log}
}

// Posts returns a page of posts, newest first. With username set it lists every
// post of that author; with category set only visible posts of the category;
// otherwise every visible post. Username and category are mutually exclusive.
//
//zenrpc:filter listing filter
//zenrpc:return page of posts
//zenrpc:400 username and category are mutually exclusive
//zenrpc:404 category, user or page not found
//zenrpc:500 internal server error
func (s BlogService) Posts(ctx context.Context, filter PostFilter) (*PostPage, error) {
	if filter.Username != nil && filter.Category != nil {
		return nil, zenrpc.NewStringError(400, "username and category are mutually exclusive")
	}

	var page string
	if filter.Page != nil {
		page = strconv.Itoa(*filter.Page)
	}

	var (
		result blog.Page[blog.Post]
		err    error
	)
	switch {
	case filter.Username != nil:
		_, result, err = s.manager.Profile(ctx, *filter.Username, page)
	case filter.Category != nil:
		_, result, err = s.manager.CategoryPosts(ctx, *filter.Category, page)
	default:
		result, err = s.manager.Index(ctx, page)
	}
	if err != nil {
		return nil, s.rpcError(ctx, err)
	}

	posts := NewPostPage(result)
	return &posts, nil
}

// Post returns a visible post with its comments in creation order.
//
//zenrpc:id post ID
//zenrpc:return post with comments
//zenrpc:404 post not found
//zenrpc:500 internal server error
func (s BlogService) Post(ctx context.Context, id int) (*PostDetail, error) {
	post, comments, err := s.manager.PostDetail(ctx, id, nil)
	if err != nil {
		return nil, s.rpcError(ctx, err)
	}

	return &PostDetail{
		Post:     NewPost(*post),
		Comments: blog.Map(comments, NewComment),
	}, nil
}

// Categories returns published categories ordered by title.
//
//zenrpc:return list of categories
//zenrpc:500 internal server error
func (s BlogService) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.manager.Categories(ctx)
	if err != nil {
		return nil, s.rpcError(ctx, err)
	}

	return blog.Map(categories, NewCategory), nil
}

func (s BlogService) rpcError(ctx context.Context, err error) error {
	if errors.Is(err, blog.ErrNotFound) || errors.Is(err, blog.ErrInvalidPage) {
		return zenrpc.NewStringError(404, err.Error())
	}

	s.log.ErrorContext(ctx, "rpc call failed", "error", err)
	return zenrpc.NewStringError(500, "internal server error")
}
