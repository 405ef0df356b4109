package db

import (
	"time"
)

var Tables = struct {
	Category struct {
		Name, Alias string
	}
	Comment struct {
		Name, Alias string
	}
	Post struct {
		Name, Alias string
	}
	Session struct {
		Name, Alias string
	}
	User struct {
		Name, Alias string
	}
}{
	Category: struct {
		Name, Alias string
	}{
		Name:  "categories",
		Alias: "t",
	},
	Comment: struct {
		Name, Alias string
	}{
		Name:  "comments",
		Alias: "t",
	},
	Post: struct {
		Name, Alias string
	}{
		Name:  "posts",
		Alias: "t",
	},
	Session: struct {
		Name, Alias string
	}{
		Name:  "sessions",
		Alias: "t",
	},
	User: struct {
		Name, Alias string
	}{
		Name:  "users",
		Alias: "t",
	},
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID           int       `pg:"userId,pk"`
	Username     string    `pg:"username,use_zero"`
	Email        string    `pg:"email,use_zero"`
	FirstName    string    `pg:"firstName,use_zero"`
	LastName     string    `pg:"lastName,use_zero"`
	PasswordHash string    `pg:"passwordHash,use_zero"`
	CreatedAt    time.Time `pg:"createdAt,use_zero"`
}

type Category struct {
	tableName struct{} `pg:"categories,alias:t,discard_unknown_columns"`

	ID          int       `pg:"categoryId,pk"`
	Title       string    `pg:"title,use_zero"`
	Description string    `pg:"description,use_zero"`
	Slug        string    `pg:"slug,use_zero"`
	IsPublished bool      `pg:"isPublished,use_zero"`
	CreatedAt   time.Time `pg:"createdAt,use_zero"`
}

type Post struct {
	tableName struct{} `pg:"posts,alias:t,discard_unknown_columns"`

	ID          int       `pg:"postId,pk"`
	Title       string    `pg:"title,use_zero"`
	Text        string    `pg:"text,use_zero"`
	PubDate     time.Time `pg:"pubDate,use_zero"`
	IsPublished bool      `pg:"isPublished,use_zero"`
	AuthorID    int       `pg:"authorId,use_zero"`
	CategoryID  *int      `pg:"categoryId"`
	Image       *string   `pg:"image"`
	CreatedAt   time.Time `pg:"createdAt,use_zero"`

	Author   *User     `pg:"fk:authorId,rel:has-one"`
	Category *Category `pg:"fk:categoryId,rel:has-one"`
}

type Comment struct {
	tableName struct{} `pg:"comments,alias:t,discard_unknown_columns"`

	ID        int       `pg:"commentId,pk"`
	Text      string    `pg:"text,use_zero"`
	PostID    int       `pg:"postId,use_zero"`
	AuthorID  int       `pg:"authorId,use_zero"`
	CreatedAt time.Time `pg:"createdAt,use_zero"`

	Author *User `pg:"fk:authorId,rel:has-one"`
}

type Session struct {
	tableName struct{} `pg:"sessions,alias:t,discard_unknown_columns"`

	ID        string    `pg:"sessionId,pk"`
	UserID    int       `pg:"userId,use_zero"`
	ExpiresAt time.Time `pg:"expiresAt,use_zero"`
	CreatedAt time.Time `pg:"createdAt,use_zero"`

	User *User `pg:"fk:userId,rel:has-one"`
}

// PostSearch narrows the candidate set returned by Repository.Posts.
type PostSearch struct {
	CategoryID *int
	AuthorID   *int
	// VisibleAt applies the publication predicate in SQL: published post,
	// published category, pubDate not after VisibleAt.
	VisibleAt *time.Time
	// Limit > 0 pages the result: rows come back newest first, ties broken
	// by id, and Offset rows are skipped.
	Limit  int
	Offset int
}
