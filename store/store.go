// Package store is the persistence boundary. Handlers only see the
// Store interface; Mongo is the production implementation and Memory
// backs the tests.
package store

import (
	"context"
	"errors"

	"github.com/KuzenkovAG/yatube-final/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateGroup(ctx context.Context, group *models.Group) error
	GroupByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error)
	GroupBySlug(ctx context.Context, slug string) (*models.Group, error)

	CreatePost(ctx context.Context, post *models.Post) error
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	PostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)

	// Listing methods return posts newest first.
	Posts(ctx context.Context) ([]models.Post, error)
	PostsByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Post, error)
	PostsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error)
	CountPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	// CommentsByPost returns comments oldest first.
	CommentsByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error)
}

var (
	_ Store = (*Mongo)(nil)
	_ Store = (*Memory)(nil)
)
