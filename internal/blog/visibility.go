package blog

import (
	"slices"
	"time"
)

// IsVisible reports whether a post may be shown to someone other than its
// author: the post and its category are published and pubDate has passed.
func IsVisible(p Post, now time.Time) bool {
	return p.IsPublished &&
		p.Category != nil && p.Category.IsPublished &&
		!p.PubDate.After(now)
}

// FilterVisible keeps the posts that pass IsVisible, preserving order.
func FilterVisible(posts []Post, now time.Time) []Post {
	result := make([]Post, 0, len(posts))
	for _, p := range posts {
		if IsVisible(p, now) {
			result = append(result, p)
		}
	}
	return result
}

// WithCommentCounts returns copies of posts with CommentCount taken from counts.
func WithCommentCounts(posts []Post, counts map[int]int) []Post {
	result := make([]Post, len(posts))
	for i, p := range posts {
		p.CommentCount = counts[p.ID]
		result[i] = p
	}
	return result
}

// OrderByRecency sorts a copy of posts by pubDate, newest first. Posts with
// equal pubDate keep their input order.
func OrderByRecency(posts []Post) []Post {
	result := slices.Clone(posts)
	slices.SortStableFunc(result, func(a, b Post) int {
		return b.PubDate.Compare(a.PubDate)
	})
	return result
}

// VisibleDetail returns the post when viewer is its author or the post is
// visible to everyone; otherwise ErrNotFound.
func VisibleDetail(p Post, viewer *User, now time.Time) (Post, error) {
	if viewer != nil && viewer.ID == p.AuthorID {
		return p, nil
	}
	if IsVisible(p, now) {
		return p, nil
	}
	return Post{}, ErrNotFound
}
