package blog

import "github.com/daniilsolovey/blogicum/internal/db"

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewUser(u db.User) User {
	return User{User: u}
}

func NewCategory(c db.Category) Category {
	return Category{Category: c}
}

func NewPost(p db.Post) Post {
	post := Post{Post: p}

	if p.Author != nil {
		post.Author = NewUser(*p.Author)
	}

	if p.Category != nil {
		category := NewCategory(*p.Category)
		post.Category = &category
	}

	post.Post.Author, post.Post.Category = nil, nil

	return post
}

func NewComment(c db.Comment) Comment {
	comment := Comment{Comment: c}

	if c.Author != nil {
		comment.Author = NewUser(*c.Author)
	}
	comment.Comment.Author = nil

	return comment
}

func NewPosts(list []db.Post) []Post {
	return Map(list, NewPost)
}

func NewComments(list []db.Comment) []Comment {
	return Map(list, NewComment)
}

func NewCategories(list []db.Category) []Category {
	return Map(list, NewCategory)
}
