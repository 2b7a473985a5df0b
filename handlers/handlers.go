// Package handlers holds the HTTP handlers. They speak JSON, redirect
// where the flows call for it, and reach persistence only through
// store.Store.
package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/KuzenkovAG/yatube-final/config"
	"github.com/KuzenkovAG/yatube-final/models"
	"github.com/KuzenkovAG/yatube-final/pagination"
	"github.com/KuzenkovAG/yatube-final/store"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	store store.Store
	cfg   config.Config
}

func New(s store.Store, cfg config.Config) *Handler {
	return &Handler{store: s, cfg: cfg}
}

// currentUser resolves the user id set by the auth middleware.
func (h *Handler) currentUser(c *gin.Context) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		return nil, err
	}
	return h.store.UserByID(c.Request.Context(), id)
}

func pageNumber(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// listPosts paginates and decorates a post listing. Listings stay
// cheap enough that the author/group lookups are memoized per request
// instead of joined in the store.
func (h *Handler) listPosts(c *gin.Context, posts []models.Post) (gin.H, bool) {
	page, err := pagination.Paginate(posts, h.cfg.PostsPerPage, pageNumber(c))
	if err != nil {
		log.Printf("listPosts paginate error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build listing"})
		return nil, false
	}

	items := make([]models.Post, len(page.Items))
	copy(items, page.Items)
	h.populatePosts(c.Request.Context(), items)

	return gin.H{
		"posts":      items,
		"page":       page.Number,
		"totalItems": page.TotalItems,
		"totalPages": page.TotalPages,
		"hasNext":    page.HasNext(),
		"hasPrev":    page.HasPrev(),
	}, true
}

func (h *Handler) populatePosts(ctx context.Context, posts []models.Post) {
	users := map[primitive.ObjectID]*models.User{}
	groups := map[primitive.ObjectID]*models.Group{}

	for i := range posts {
		posts[i].Author = h.lookupUser(ctx, users, posts[i].AuthorID)
		if posts[i].GroupID != nil {
			posts[i].Group = h.lookupGroup(ctx, groups, *posts[i].GroupID)
		}
	}
}

func (h *Handler) lookupUser(ctx context.Context, memo map[primitive.ObjectID]*models.User, id primitive.ObjectID) *models.User {
	if u, ok := memo[id]; ok {
		return u
	}
	u, err := h.store.UserByID(ctx, id)
	if err != nil {
		u = nil
	}
	memo[id] = u
	return u
}

func (h *Handler) lookupGroup(ctx context.Context, memo map[primitive.ObjectID]*models.Group, id primitive.ObjectID) *models.Group {
	if g, ok := memo[id]; ok {
		return g
	}
	g, err := h.store.GroupByID(ctx, id)
	if err != nil {
		g = nil
	}
	memo[id] = g
	return g
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
