package rest

import "time"

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
	IsPublished  bool      `json:"isPublished"`
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

type PostDetail struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}

// PostPage is one page of a post listing.
type PostPage struct {
	Items       []Post `json:"items"`
	Page        int    `json:"page"`
	NumPages    int    `json:"numPages"`
	Count       int    `json:"count"`
	HasNext     bool   `json:"hasNext"`
	HasPrevious bool   `json:"hasPrevious"`
}

type ListRequest struct {
	Page string `query:"page"`
}
