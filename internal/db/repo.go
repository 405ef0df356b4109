package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

var ErrAlreadyExists = errors.New("already exists")

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// Posts returns the candidate set for listings with author and category loaded.
// Unpaged rows come back in insertion order.
func (r *Repository) Posts(ctx context.Context, search PostSearch) ([]Post, error) {
	var posts []Post
	query := r.db.ModelContext(ctx, &posts).
		Relation("Author").
		Relation("Category")
	query = applyPostSearch(query, search)

	if search.Limit > 0 {
		query = query.
			OrderExpr(`"t"."pubDate" DESC`).
			OrderExpr(`"t"."postId" ASC`).
			Limit(search.Limit).
			Offset(search.Offset)
	} else {
		query = query.OrderExpr(`"t"."postId" ASC`)
	}

	if err := query.Select(); err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}

	return posts, nil
}

// CountPosts returns the number of posts matching search, ignoring its
// Limit and Offset.
func (r *Repository) CountPosts(ctx context.Context, search PostSearch) (int, error) {
	query := r.db.ModelContext(ctx, (*Post)(nil)).
		Relation("Category")

	count, err := applyPostSearch(query, search).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}

func applyPostSearch(query *orm.Query, search PostSearch) *orm.Query {
	if search.VisibleAt != nil {
		query = query.
			Where(`"t"."isPublished" = ?`, true).
			Where(`"category"."isPublished" = ?`, true).
			Where(`"t"."pubDate" <= ?`, *search.VisibleAt)
	}

	if search.CategoryID != nil {
		query = query.Where(`"t"."categoryId" = ?`, *search.CategoryID)
	}

	if search.AuthorID != nil {
		query = query.Where(`"t"."authorId" = ?`, *search.AuthorID)
	}

	return query
}

func (r *Repository) PostByID(ctx context.Context, postID int) (*Post, error) {
	post := &Post{}
	err := r.db.ModelContext(ctx, post).
		Relation("Author").
		Relation("Category").
		Where(`"t"."postId" = ?`, postID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

func (r *Repository) CreatePost(ctx context.Context, post *Post) error {
	if _, err := r.db.ModelContext(ctx, post).Insert(); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

func (r *Repository) UpdatePost(ctx context.Context, post *Post) error {
	_, err := r.db.ModelContext(ctx, post).
		Column("title", "text", "pubDate", "isPublished", "categoryId", "image").
		WherePK().
		Update()
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

// DeletePost removes the post; comments go with it through the foreign key cascade.
func (r *Repository) DeletePost(ctx context.Context, postID int) error {
	_, err := r.db.ModelContext(ctx, (*Post)(nil)).
		Where(`"postId" = ?`, postID).
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

// CommentCounts returns the number of comments per post. Posts without
// comments are absent from the map.
func (r *Repository) CommentCounts(ctx context.Context, postIDs []int) (map[int]int, error) {
	counts := make(map[int]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID int `pg:"postId"`
		Count  int `pg:"count"`
	}
	_, err := r.db.QueryContext(ctx, &rows, `
		SELECT "postId", count(*) AS "count"
		FROM ?
		WHERE "postId" IN (?)
		GROUP BY "postId"`,
		pg.Ident(Tables.Comment.Name), pg.In(postIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}

	return counts, nil
}

func (r *Repository) CommentsByPost(ctx context.Context, postID int) ([]Comment, error) {
	comments := []Comment{}
	err := r.db.ModelContext(ctx, &comments).
		Relation("Author").
		Where(`"t"."postId" = ?`, postID).
		OrderExpr(`"t"."createdAt" ASC`).
		OrderExpr(`"t"."commentId" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	return comments, nil
}

func (r *Repository) CommentByID(ctx context.Context, commentID int) (*Comment, error) {
	comment := &Comment{}
	err := r.db.ModelContext(ctx, comment).
		Relation("Author").
		Where(`"t"."commentId" = ?`, commentID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	return comment, nil
}

func (r *Repository) CreateComment(ctx context.Context, comment *Comment) error {
	if _, err := r.db.ModelContext(ctx, comment).Insert(); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

func (r *Repository) UpdateComment(ctx context.Context, comment *Comment) error {
	_, err := r.db.ModelContext(ctx, comment).
		Column("text").
		WherePK().
		Update()
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return nil
}

func (r *Repository) DeleteComment(ctx context.Context, commentID int) error {
	_, err := r.db.ModelContext(ctx, (*Comment)(nil)).
		Where(`"commentId" = ?`, commentID).
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

func (r *Repository) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.db.ModelContext(ctx, &categories).
		Where(`"isPublished" = ?`, true).
		OrderExpr(`"title" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	return categories, nil
}

func (r *Repository) CategoryByID(ctx context.Context, categoryID int) (*Category, error) {
	return r.category(ctx, `"categoryId" = ?`, categoryID)
}

func (r *Repository) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	return r.category(ctx, `"slug" = ?`, slug)
}

func (r *Repository) category(ctx context.Context, condition string, param interface{}) (*Category, error) {
	category := &Category{}
	err := r.db.ModelContext(ctx, category).
		Where(condition, param).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

func (r *Repository) UserByID(ctx context.Context, userID int) (*User, error) {
	return r.user(ctx, `"userId" = ?`, userID)
}

func (r *Repository) UserByUsername(ctx context.Context, username string) (*User, error) {
	return r.user(ctx, `"username" = ?`, username)
}

func (r *Repository) user(ctx context.Context, condition string, param interface{}) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(condition, param).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *User) error {
	if _, err := r.db.ModelContext(ctx, user).Insert(); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *User) error {
	_, err := r.db.ModelContext(ctx, user).
		Column("username", "email", "firstName", "lastName").
		WherePK().
		Update()
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func (r *Repository) CreateSession(ctx context.Context, session *Session) error {
	if _, err := r.db.ModelContext(ctx, session).Insert(); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

func (r *Repository) SessionByID(ctx context.Context, sessionID string) (*Session, error) {
	session := &Session{}
	err := r.db.ModelContext(ctx, session).
		Relation("User").
		Where(`"t"."sessionId" = ?`, sessionID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (r *Repository) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := r.db.ModelContext(ctx, (*Session)(nil)).
		Where(`"sessionId" = ?`, sessionID).
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr pg.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}
