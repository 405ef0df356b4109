package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/blogicum/internal/db"
)

var baseTime = time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)

func testPost(id, authorID int, published, categoryPublished bool, pubDate time.Time) Post {
	p := Post{
		Post: db.Post{
			ID:          id,
			Title:       "post",
			PubDate:     pubDate,
			IsPublished: published,
			AuthorID:    authorID,
		},
		Category: &Category{Category: db.Category{ID: 1, IsPublished: categoryPublished}},
	}
	return p
}

func postIDs(posts []Post) []int {
	ids := make([]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	return ids
}

func TestIsVisible(t *testing.T) {
	tests := []struct {
		name string
		post Post
		want bool
	}{
		{"PublishedInPast", testPost(1, 1, true, true, baseTime.Add(-time.Hour)), true},
		{"PublishedExactlyNow", testPost(1, 1, true, true, baseTime), true},
		{"Unpublished", testPost(1, 1, false, true, baseTime.Add(-time.Hour)), false},
		{"CategoryUnpublished", testPost(1, 1, true, false, baseTime.Add(-time.Hour)), false},
		{"ScheduledInFuture", testPost(1, 1, true, true, baseTime.Add(time.Second)), false},
		{"NoCategory", func() Post {
			p := testPost(1, 1, true, true, baseTime.Add(-time.Hour))
			p.Category = nil
			return p
		}(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVisible(tt.post, baseTime))
		})
	}
}

func TestFilterVisible(t *testing.T) {
	posts := []Post{
		testPost(1, 1, true, true, baseTime.Add(-time.Hour)),
		testPost(2, 1, false, true, baseTime.Add(-time.Hour)),
		testPost(3, 1, true, true, baseTime.Add(time.Hour)),
		testPost(4, 1, true, true, baseTime.Add(-2*time.Hour)),
	}

	got := FilterVisible(posts, baseTime)

	assert.Equal(t, []int{1, 4}, postIDs(got))
	assert.Len(t, posts, 4, "input must not be modified")
	assert.Empty(t, FilterVisible(nil, baseTime))
}

func TestWithCommentCounts(t *testing.T) {
	posts := []Post{
		testPost(1, 1, true, true, baseTime),
		testPost(2, 1, true, true, baseTime),
	}

	got := WithCommentCounts(posts, map[int]int{1: 3})

	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].CommentCount)
	assert.Equal(t, 0, got[1].CommentCount)
	assert.Equal(t, 0, posts[0].CommentCount, "input must not be modified")
}

func TestOrderByRecency(t *testing.T) {
	posts := []Post{
		testPost(1, 1, true, true, baseTime.Add(-3*time.Hour)),
		testPost(2, 1, true, true, baseTime.Add(-1*time.Hour)),
		testPost(3, 1, true, true, baseTime.Add(-2*time.Hour)),
		testPost(4, 1, true, true, baseTime.Add(-1*time.Hour)),
		testPost(5, 1, true, true, baseTime.Add(-1*time.Hour)),
	}

	got := OrderByRecency(posts)

	assert.Equal(t, []int{2, 4, 5, 3, 1}, postIDs(got), "ties keep input order")
	assert.Equal(t, []int{1, 2, 3, 4, 5}, postIDs(posts), "input must not be modified")
}

func TestVisibleDetail(t *testing.T) {
	author := &User{User: db.User{ID: 7, Username: "author"}}
	stranger := &User{User: db.User{ID: 8, Username: "stranger"}}

	hidden := []Post{
		testPost(1, 7, false, true, baseTime.Add(-time.Hour)),
		testPost(2, 7, true, false, baseTime.Add(-time.Hour)),
		testPost(3, 7, true, true, baseTime.Add(24*time.Hour)),
	}

	for _, p := range hidden {
		got, err := VisibleDetail(p, author, baseTime)
		require.NoError(t, err, "author sees post %d", p.ID)
		assert.Equal(t, p.ID, got.ID)

		_, err = VisibleDetail(p, stranger, baseTime)
		assert.ErrorIs(t, err, ErrNotFound, "stranger must not see post %d", p.ID)

		_, err = VisibleDetail(p, nil, baseTime)
		assert.ErrorIs(t, err, ErrNotFound, "anonymous must not see post %d", p.ID)
	}

	visible := testPost(4, 7, true, true, baseTime.Add(-time.Hour))
	got, err := VisibleDetail(visible, nil, baseTime)
	require.NoError(t, err)
	assert.Equal(t, 4, got.ID)
}
