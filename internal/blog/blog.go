package blog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/daniilsolovey/blogicum/internal/db"
)

// Store is the storage the manager works against. *db.Repository implements it.
// Lookups by key return nil, nil when the record does not exist.
type Store interface {
	Posts(ctx context.Context, search db.PostSearch) ([]db.Post, error)
	CountPosts(ctx context.Context, search db.PostSearch) (int, error)
	PostByID(ctx context.Context, postID int) (*db.Post, error)
	CreatePost(ctx context.Context, post *db.Post) error
	UpdatePost(ctx context.Context, post *db.Post) error
	DeletePost(ctx context.Context, postID int) error

	CommentCounts(ctx context.Context, postIDs []int) (map[int]int, error)
	CommentsByPost(ctx context.Context, postID int) ([]db.Comment, error)
	CommentByID(ctx context.Context, commentID int) (*db.Comment, error)
	CreateComment(ctx context.Context, comment *db.Comment) error
	UpdateComment(ctx context.Context, comment *db.Comment) error
	DeleteComment(ctx context.Context, commentID int) error

	Categories(ctx context.Context) ([]db.Category, error)
	CategoryByID(ctx context.Context, categoryID int) (*db.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*db.Category, error)

	UserByID(ctx context.Context, userID int) (*db.User, error)
	UserByUsername(ctx context.Context, username string) (*db.User, error)
	CreateUser(ctx context.Context, user *db.User) error
	UpdateUser(ctx context.Context, user *db.User) error

	CreateSession(ctx context.Context, session *db.Session) error
	SessionByID(ctx context.Context, sessionID string) (*db.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

var _ Store = (*db.Repository)(nil)

const DefaultSessionTTL = 14 * 24 * time.Hour

type Manager struct {
	db           Store
	log          *slog.Logger
	now          func() time.Time
	pageSize     int
	sessionTTL   time.Duration
	passwordCost int
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithPageSize(size int) Option {
	return func(m *Manager) {
		if size > 0 {
			m.pageSize = size
		}
	}
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.sessionTTL = ttl
		}
	}
}

// WithPasswordCost sets the bcrypt cost used for new password hashes.
func WithPasswordCost(cost int) Option {
	return func(m *Manager) {
		if cost > 0 {
			m.passwordCost = cost
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		db:           store,
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:          time.Now,
		pageSize:     DefaultPageSize,
		sessionTTL:   DefaultSessionTTL,
		passwordCost: defaultPasswordCost,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Index returns a page of all posts visible to everyone, newest first.
func (m *Manager) Index(ctx context.Context, page string) (Page[Post], error) {
	return m.visibleListing(ctx, db.PostSearch{}, page)
}

// CategoryPosts returns a page of visible posts of a published category.
func (m *Manager) CategoryPosts(ctx context.Context, slug string, page string) (*Category, Page[Post], error) {
	dbCategory, err := m.db.CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, Page[Post]{}, fmt.Errorf("db get category: %w", err)
	} else if dbCategory == nil || !dbCategory.IsPublished {
		return nil, Page[Post]{}, ErrNotFound
	}

	category := NewCategory(*dbCategory)
	result, err := m.visibleListing(ctx, db.PostSearch{CategoryID: &category.ID}, page)
	if err != nil {
		return nil, Page[Post]{}, err
	}

	return &category, result, nil
}

// Profile returns a page of every post of the user, published or not.
func (m *Manager) Profile(ctx context.Context, username string, page string) (*User, Page[Post], error) {
	dbUser, err := m.db.UserByUsername(ctx, username)
	if err != nil {
		return nil, Page[Post]{}, fmt.Errorf("db get user: %w", err)
	} else if dbUser == nil {
		return nil, Page[Post]{}, ErrNotFound
	}

	result, err := m.listing(ctx, db.PostSearch{AuthorID: &dbUser.ID}, page)
	if err != nil {
		return nil, Page[Post]{}, err
	}

	user := NewUser(*dbUser)
	return &user, result, nil
}

func (m *Manager) visibleListing(ctx context.Context, search db.PostSearch, page string) (Page[Post], error) {
	now := m.now()
	search.VisibleAt = &now

	return m.listing(ctx, search, page)
}

// listing resolves the page number against the match count and loads only
// that page. The engine still filters the window when VisibleAt is set,
// then attaches comment counts and orders it.
func (m *Manager) listing(ctx context.Context, search db.PostSearch, page string) (Page[Post], error) {
	count, err := m.db.CountPosts(ctx, search)
	if err != nil {
		return Page[Post]{}, fmt.Errorf("db count posts: %w", err)
	}

	number, numPages, err := pageNumber(page, count, m.pageSize)
	if err != nil {
		return Page[Post]{}, err
	}

	search.Limit = m.pageSize
	search.Offset = (number - 1) * m.pageSize

	dbPosts, err := m.db.Posts(ctx, search)
	if err != nil {
		return Page[Post]{}, fmt.Errorf("db get posts: %w", err)
	}

	posts := NewPosts(dbPosts)
	if search.VisibleAt != nil {
		posts = FilterVisible(posts, *search.VisibleAt)
	}

	ids := make([]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	counts, err := m.db.CommentCounts(ctx, ids)
	if err != nil {
		return Page[Post]{}, fmt.Errorf("db count comments: %w", err)
	}

	return Page[Post]{
		Items:    OrderByRecency(WithCommentCounts(posts, counts)),
		Number:   number,
		Size:     m.pageSize,
		NumPages: numPages,
		Count:    count,
	}, nil
}

// PostDetail returns a post visible to viewer together with its comments in
// creation order.
func (m *Manager) PostDetail(ctx context.Context, postID int, viewer *User) (*Post, []Comment, error) {
	post, err := m.visiblePost(ctx, postID, viewer)
	if err != nil {
		return nil, nil, err
	}

	dbComments, err := m.db.CommentsByPost(ctx, post.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("db get comments: %w", err)
	}
	post.CommentCount = len(dbComments)

	return post, NewComments(dbComments), nil
}

func (m *Manager) Categories(ctx context.Context) ([]Category, error) {
	list, err := m.db.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get categories: %w", err)
	}

	return NewCategories(list), nil
}

func (m *Manager) visiblePost(ctx context.Context, postID int, viewer *User) (*Post, error) {
	dbPost, err := m.db.PostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("db get post: %w", err)
	} else if dbPost == nil {
		return nil, ErrNotFound
	}

	post, err := VisibleDetail(NewPost(*dbPost), viewer, m.now())
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// ownPost loads a post for mutation by viewer.
func (m *Manager) ownPost(ctx context.Context, viewer *User, postID int) (*db.Post, error) {
	if viewer == nil {
		return nil, ErrUnauthorized
	}

	dbPost, err := m.db.PostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("db get post: %w", err)
	} else if dbPost == nil {
		return nil, ErrNotFound
	} else if dbPost.AuthorID != viewer.ID {
		return nil, ErrPermissionDenied
	}

	return dbPost, nil
}

func (m *Manager) CreatePost(ctx context.Context, viewer *User, form PostForm) (*Post, error) {
	if viewer == nil {
		return nil, ErrUnauthorized
	}

	dbPost := &db.Post{
		AuthorID:  viewer.ID,
		CreatedAt: m.now(),
	}
	if err := m.applyPostForm(ctx, dbPost, form); err != nil {
		return nil, err
	}

	if err := m.db.CreatePost(ctx, dbPost); err != nil {
		return nil, fmt.Errorf("db create post: %w", err)
	}

	m.log.InfoContext(ctx, "post created", "postID", dbPost.ID, "authorID", viewer.ID)

	return m.reloadPost(ctx, dbPost.ID)
}

// PostForEdit returns the post when viewer owns it.
func (m *Manager) PostForEdit(ctx context.Context, viewer *User, postID int) (*Post, error) {
	dbPost, err := m.ownPost(ctx, viewer, postID)
	if err != nil {
		return nil, err
	}

	post := NewPost(*dbPost)
	return &post, nil
}

func (m *Manager) EditPost(ctx context.Context, viewer *User, postID int, form PostForm) (*Post, error) {
	dbPost, err := m.ownPost(ctx, viewer, postID)
	if err != nil {
		return nil, err
	}

	if err := m.applyPostForm(ctx, dbPost, form); err != nil {
		return nil, err
	}

	if err := m.db.UpdatePost(ctx, dbPost); err != nil {
		return nil, fmt.Errorf("db update post: %w", err)
	}

	return m.reloadPost(ctx, postID)
}

func (m *Manager) DeletePost(ctx context.Context, viewer *User, postID int) error {
	if _, err := m.ownPost(ctx, viewer, postID); err != nil {
		return err
	}

	if err := m.db.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("db delete post: %w", err)
	}

	m.log.InfoContext(ctx, "post deleted", "postID", postID, "authorID", viewer.ID)

	return nil
}

// applyPostForm validates form and copies it onto dbPost without saving.
func (m *Manager) applyPostForm(ctx context.Context, dbPost *db.Post, form PostForm) error {
	if err := validateForm(form); err != nil {
		return err
	}

	pubDate, err := form.publishAt(m.now())
	if err != nil {
		return err
	}

	category, err := m.db.CategoryByID(ctx, form.CategoryID)
	if err != nil {
		return fmt.Errorf("db get category: %w", err)
	} else if category == nil {
		return newFieldError("category", "unknown category")
	}

	dbPost.Title = strings.TrimSpace(form.Title)
	dbPost.Text = form.Text
	dbPost.PubDate = pubDate
	dbPost.IsPublished = form.IsPublished
	dbPost.CategoryID = &category.ID
	dbPost.Image = nil
	if image := strings.TrimSpace(form.Image); image != "" {
		dbPost.Image = &image
	}

	return nil
}

func (m *Manager) reloadPost(ctx context.Context, postID int) (*Post, error) {
	dbPost, err := m.db.PostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("db get post: %w", err)
	} else if dbPost == nil {
		return nil, ErrNotFound
	}

	post := NewPost(*dbPost)
	return &post, nil
}

// AddComment adds a comment by viewer to a post the viewer can see.
func (m *Manager) AddComment(ctx context.Context, viewer *User, postID int, form CommentForm) (*Comment, error) {
	if viewer == nil {
		return nil, ErrUnauthorized
	}

	post, err := m.visiblePost(ctx, postID, viewer)
	if err != nil {
		return nil, err
	}

	if err := validateForm(form); err != nil {
		return nil, err
	}

	dbComment := &db.Comment{
		Text:      form.Text,
		PostID:    post.ID,
		AuthorID:  viewer.ID,
		CreatedAt: m.now(),
	}
	if err := m.db.CreateComment(ctx, dbComment); err != nil {
		return nil, fmt.Errorf("db create comment: %w", err)
	}

	comment := NewComment(*dbComment)
	comment.Author = *viewer
	return &comment, nil
}

// ownComment loads a comment of the given post for mutation by viewer.
func (m *Manager) ownComment(ctx context.Context, viewer *User, postID, commentID int) (*db.Comment, error) {
	if viewer == nil {
		return nil, ErrUnauthorized
	}

	dbComment, err := m.db.CommentByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("db get comment: %w", err)
	} else if dbComment == nil || dbComment.PostID != postID {
		return nil, ErrNotFound
	} else if dbComment.AuthorID != viewer.ID {
		return nil, ErrPermissionDenied
	}

	return dbComment, nil
}

func (m *Manager) CommentForEdit(ctx context.Context, viewer *User, postID, commentID int) (*Comment, error) {
	dbComment, err := m.ownComment(ctx, viewer, postID, commentID)
	if err != nil {
		return nil, err
	}

	comment := NewComment(*dbComment)
	return &comment, nil
}

func (m *Manager) EditComment(ctx context.Context, viewer *User, postID, commentID int, form CommentForm) (*Comment, error) {
	dbComment, err := m.ownComment(ctx, viewer, postID, commentID)
	if err != nil {
		return nil, err
	}

	if err := validateForm(form); err != nil {
		return nil, err
	}

	dbComment.Text = form.Text
	if err := m.db.UpdateComment(ctx, dbComment); err != nil {
		return nil, fmt.Errorf("db update comment: %w", err)
	}

	comment := NewComment(*dbComment)
	return &comment, nil
}

func (m *Manager) DeleteComment(ctx context.Context, viewer *User, postID, commentID int) error {
	if _, err := m.ownComment(ctx, viewer, postID, commentID); err != nil {
		return err
	}

	if err := m.db.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("db delete comment: %w", err)
	}

	return nil
}
