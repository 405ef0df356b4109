// Package blogtest provides an in-memory blog.Store for tests.
package blogtest

import (
	"context"
	"sort"
	"sync"

	"github.com/daniilsolovey/blogicum/internal/db"
)

// Store keeps records in maps and mirrors the Repository contract: lookups
// return copies with relations loaded, missing records are nil, nil.
type Store struct {
	mu sync.Mutex

	users      map[int]db.User
	categories map[int]db.Category
	posts      map[int]db.Post
	comments   map[int]db.Comment
	sessions   map[string]db.Session

	lastID int
}

func NewStore() *Store {
	return &Store{
		users:      make(map[int]db.User),
		categories: make(map[int]db.Category),
		posts:      make(map[int]db.Post),
		comments:   make(map[int]db.Comment),
		sessions:   make(map[string]db.Session),
	}
}

func (s *Store) nextID() int {
	s.lastID++
	return s.lastID
}

// AddUser stores u as is and returns it with an assigned id.
func (s *Store) AddUser(u db.User) db.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextID()
	s.users[u.ID] = u
	return u
}

func (s *Store) AddCategory(c db.Category) db.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextID()
	s.categories[c.ID] = c
	return c
}

func (s *Store) AddPost(p db.Post) db.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID()
	p.Author, p.Category = nil, nil
	s.posts[p.ID] = p
	return p
}

func (s *Store) AddComment(c db.Comment) db.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextID()
	c.Author = nil
	s.comments[c.ID] = c
	return c
}

// Post returns the stored post without relations.
func (s *Store) Post(id int) (db.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	return p, ok
}

func (s *Store) Comment(id int) (db.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	return c, ok
}

func (s *Store) Session(id string) (db.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Store) withRelations(p db.Post) db.Post {
	if u, ok := s.users[p.AuthorID]; ok {
		p.Author = &u
	}
	if p.CategoryID != nil {
		if c, ok := s.categories[*p.CategoryID]; ok {
			p.Category = &c
		}
	}
	return p
}

func (s *Store) Posts(_ context.Context, search db.PostSearch) ([]db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.matchPosts(search)
	if search.Limit <= 0 {
		return result, nil
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PubDate.After(result[j].PubDate)
	})

	start := min(search.Offset, len(result))
	end := min(start+search.Limit, len(result))
	return result[start:end], nil
}

func (s *Store) CountPosts(_ context.Context, search db.PostSearch) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.matchPosts(search)), nil
}

// matchPosts returns the posts matching search in id order.
func (s *Store) matchPosts(search db.PostSearch) []db.Post {
	ids := make([]int, 0, len(s.posts))
	for id := range s.posts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := []db.Post{}
	for _, id := range ids {
		p := s.withRelations(s.posts[id])

		if search.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *search.CategoryID) {
			continue
		}
		if search.AuthorID != nil && p.AuthorID != *search.AuthorID {
			continue
		}
		if search.VisibleAt != nil {
			if !p.IsPublished || p.Category == nil || !p.Category.IsPublished || p.PubDate.After(*search.VisibleAt) {
				continue
			}
		}

		result = append(result, p)
	}

	return result
}

func (s *Store) PostByID(_ context.Context, postID int) (*db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, nil
	}

	p = s.withRelations(p)
	return &p, nil
}

func (s *Store) CreatePost(_ context.Context, post *db.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.nextID()
	stored := *post
	stored.Author, stored.Category = nil, nil
	s.posts[post.ID] = stored
	return nil
}

func (s *Store) UpdatePost(_ context.Context, post *db.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[post.ID]; !ok {
		return nil
	}

	stored := *post
	stored.Author, stored.Category = nil, nil
	s.posts[post.ID] = stored
	return nil
}

func (s *Store) DeletePost(_ context.Context, postID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.posts, postID)
	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
	return nil
}

func (s *Store) CommentCounts(_ context.Context, postIDs []int) (map[int]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[int]struct{}, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = struct{}{}
	}

	counts := make(map[int]int, len(postIDs))
	for _, c := range s.comments {
		if _, ok := wanted[c.PostID]; ok {
			counts[c.PostID]++
		}
	}
	return counts, nil
}

func (s *Store) CommentsByPost(_ context.Context, postID int) ([]db.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []db.Comment{}
	for _, c := range s.comments {
		if c.PostID != postID {
			continue
		}
		if u, ok := s.users[c.AuthorID]; ok {
			c.Author = &u
		}
		result = append(result, c)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (s *Store) CommentByID(_ context.Context, commentID int) (*db.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[commentID]
	if !ok {
		return nil, nil
	}
	if u, ok := s.users[c.AuthorID]; ok {
		c.Author = &u
	}
	return &c, nil
}

func (s *Store) CreateComment(_ context.Context, comment *db.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = s.nextID()
	stored := *comment
	stored.Author = nil
	s.comments[comment.ID] = stored
	return nil
}

func (s *Store) UpdateComment(_ context.Context, comment *db.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.comments[comment.ID]
	if !ok {
		return nil
	}
	stored.Text = comment.Text
	s.comments[comment.ID] = stored
	return nil
}

func (s *Store) DeleteComment(_ context.Context, commentID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.comments, commentID)
	return nil
}

func (s *Store) Categories(_ context.Context) ([]db.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []db.Category{}
	for _, c := range s.categories {
		if c.IsPublished {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func (s *Store) CategoryByID(_ context.Context, categoryID int) (*db.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[categoryID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *Store) CategoryBySlug(_ context.Context, slug string) (*db.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) UserByID(_ context.Context, userID int) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) UserByUsername(_ context.Context, username string) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateUser(_ context.Context, user *db.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usernameTaken(user.Username, 0) {
		return db.ErrAlreadyExists
	}

	user.ID = s.nextID()
	s.users[user.ID] = *user
	return nil
}

func (s *Store) UpdateUser(_ context.Context, user *db.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usernameTaken(user.Username, user.ID) {
		return db.ErrAlreadyExists
	}

	stored, ok := s.users[user.ID]
	if !ok {
		return nil
	}
	stored.Username = user.Username
	stored.Email = user.Email
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	s.users[user.ID] = stored
	return nil
}

func (s *Store) usernameTaken(username string, exceptID int) bool {
	for id, u := range s.users {
		if id != exceptID && u.Username == username {
			return true
		}
	}
	return false
}

func (s *Store) CreateSession(_ context.Context, session *db.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *session
	stored.User = nil
	s.sessions[session.ID] = stored
	return nil
}

func (s *Store) SessionByID(_ context.Context, sessionID string) (*db.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	if u, ok := s.users[sess.UserID]; ok {
		sess.User = &u
	}
	return &sess, nil
}

func (s *Store) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
