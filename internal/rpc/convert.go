package rpc

import "github.com/daniilsolovey/blogicum/internal/blog"

func NewUser(u blog.User) User {
	return User{
		UserID:   u.ID,
		Username: u.Username,
		FullName: u.FullName(),
	}
}

func NewCategory(c blog.Category) Category {
	return Category{
		CategoryID:  c.ID,
		Title:       c.Title,
		Description: c.Description,
		Slug:        c.Slug,
	}
}

func NewPost(p blog.Post) Post {
	post := Post{
		PostID:       p.ID,
		Title:        p.Title,
		Text:         p.Text,
		PubDate:      p.PubDate,
		Image:        p.Image,
		Author:       NewUser(p.Author),
		CommentCount: p.CommentCount,
	}

	if p.Category != nil {
		category := NewCategory(*p.Category)
		post.Category = &category
	}

	return post
}

func NewComment(c blog.Comment) Comment {
	return Comment{
		CommentID: c.ID,
		Text:      c.Text,
		Author:    NewUser(c.Author),
		CreatedAt: c.CreatedAt,
	}
}

func NewPostPage(p blog.Page[blog.Post]) PostPage {
	return PostPage{
		Items:    blog.Map(p.Items, NewPost),
		Page:     p.Number,
		NumPages: p.NumPages,
		Count:    p.Count,
	}
}
