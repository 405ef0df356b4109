package rpc

import "time"

type PostFilter struct {
	//category optional category slug
	Category *string `json:"category,omitempty"`
	//username optional author; lists every post of the author
	Username *string `json:"username,omitempty"`
	//page=1 page number (1-based)
	Page *int `json:"page,omitempty"`
}

type User struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

type Category struct {
	CategoryID  int    `json:"categoryId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

type Post struct {
	PostID       int       `json:"postId"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	PubDate      time.Time `json:"pubDate"`
	Image        *string   `json:"image,omitempty"`
	Author       User      `json:"author"`
	Category     *Category `json:"category,omitempty"`
	CommentCount int       `json:"commentCount"`
}

type Comment struct {
	CommentID int       `json:"commentId"`
	Text      string    `json:"text"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostPage struct {
	Items    []Post `json:"items"`
	Page     int    `json:"page"`
	NumPages int    `json:"numPages"`
	Count    int    `json:"count"`
}

type PostDetail struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}
