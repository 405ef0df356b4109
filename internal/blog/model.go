package blog

import (
	"github.com/daniilsolovey/blogicum/internal/db"
)

type User struct {
	db.User
}

// FullName falls back to the username when no name is set.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

type Category struct {
	db.Category
}

type Post struct {
	db.Post
	Author       User
	Category     *Category
	CommentCount int
}

type Comment struct {
	db.Comment
	Author User
}
