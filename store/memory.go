package store

import (
	"context"
	"sync"

	"github.com/KuzenkovAG/yatube-final/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory keeps everything in insertion-order slices guarded by one
// mutex. Listings reverse the slice instead of sorting by timestamp so
// posts created within the same second still come back newest first.
type Memory struct {
	mu       sync.RWMutex
	users    []models.User
	groups   []models.Group
	posts    []models.Post
	comments []models.Comment
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users = append(m.users, *user)
	return nil
}

func (m *Memory) UserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.ID == id })
}

func (m *Memory) UserByUsername(_ context.Context, username string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Username == username })
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Email == email })
}

func (m *Memory) findUser(match func(models.User) bool) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateGroup(_ context.Context, group *models.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, g := range m.groups {
		if g.Slug == group.Slug {
			return ErrDuplicate
		}
	}
	if group.ID.IsZero() {
		group.ID = primitive.NewObjectID()
	}
	m.groups = append(m.groups, *group)
	return nil
}

func (m *Memory) GroupByID(_ context.Context, id primitive.ObjectID) (*models.Group, error) {
	return m.findGroup(func(g models.Group) bool { return g.ID == id })
}

func (m *Memory) GroupBySlug(_ context.Context, slug string) (*models.Group, error) {
	return m.findGroup(func(g models.Group) bool { return g.Slug == slug })
}

func (m *Memory) findGroup(match func(models.Group) bool) (*models.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, g := range m.groups {
		if match(g) {
			found := g
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	m.posts = append(m.posts, *post)
	return nil
}

func (m *Memory) UpdatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.posts {
		if p.ID == post.ID {
			m.posts[i].Text = post.Text
			m.posts[i].GroupID = post.GroupID
			m.posts[i].Image = post.Image
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeletePost(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) PostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.posts {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) Posts(_ context.Context) ([]models.Post, error) {
	return m.findPosts(func(models.Post) bool { return true }), nil
}

func (m *Memory) PostsByGroup(_ context.Context, groupID primitive.ObjectID) ([]models.Post, error) {
	return m.findPosts(func(p models.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	}), nil
}

func (m *Memory) PostsByAuthor(_ context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	return m.findPosts(func(p models.Post) bool { return p.AuthorID == authorID }), nil
}

func (m *Memory) findPosts(match func(models.Post) bool) []models.Post {
	m.mu.RLock()
	defer m.mu.RUnlock()

	posts := []models.Post{}
	for i := len(m.posts) - 1; i >= 0; i-- {
		if match(m.posts[i]) {
			posts = append(posts, m.posts[i])
		}
	}
	return posts
}

func (m *Memory) CountPostsByAuthor(_ context.Context, authorID primitive.ObjectID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (m *Memory) CreateComment(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *Memory) CommentsByPost(_ context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	comments := []models.Comment{}
	for _, c := range m.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}
