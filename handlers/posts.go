package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/KuzenkovAG/yatube-final/models"
	"github.com/KuzenkovAG/yatube-final/store"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	createTitle = "New post"
	editTitle   = "Edit post"
)

// PostRequest is the create/edit submission. Group is a slug, Image a
// URL or storage path; file upload itself lives outside this service.
type PostRequest struct {
	Text  string `json:"text"`
	Group string `json:"group,omitempty"`
	Image string `json:"image,omitempty"`
}

// Index is the global feed. The route wraps it in CachePage, so
// within the TTL window this handler does not even run.
func (h *Handler) Index(c *gin.Context) {
	posts, err := h.store.Posts(c.Request.Context())
	if err != nil {
		log.Printf("Index error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	resp, ok := h.listPosts(c, posts)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GroupPosts(c *gin.Context) {
	ctx := c.Request.Context()

	group, err := h.store.GroupBySlug(ctx, c.Param("slug"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	if err != nil {
		log.Printf("GroupPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}

	posts, err := h.store.PostsByGroup(ctx, group.ID)
	if err != nil {
		log.Printf("GroupPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	resp, ok := h.listPosts(c, posts)
	if !ok {
		return
	}
	resp["group"] = group
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Profile(c *gin.Context) {
	ctx := c.Request.Context()

	author, err := h.store.UserByUsername(ctx, c.Param("username"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("Profile error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	posts, err := h.store.PostsByAuthor(ctx, author.ID)
	if err != nil {
		log.Printf("Profile error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	count, err := h.store.CountPostsByAuthor(ctx, author.ID)
	if err != nil {
		log.Printf("Profile error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count posts"})
		return
	}

	resp, ok := h.listPosts(c, posts)
	if !ok {
		return
	}
	resp["author"] = author
	resp["postCount"] = count
	c.JSON(http.StatusOK, resp)
}

// PostDetail is never cached, so a fresh comment shows up on the very
// next request.
func (h *Handler) PostDetail(c *gin.Context) {
	ctx := c.Request.Context()

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	post, err := h.store.PostByID(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		log.Printf("PostDetail error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	posts := []models.Post{*post}
	h.populatePosts(ctx, posts)

	count, err := h.store.CountPostsByAuthor(ctx, post.AuthorID)
	if err != nil {
		log.Printf("PostDetail error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count posts"})
		return
	}

	comments, err := h.store.CommentsByPost(ctx, postID)
	if err != nil {
		log.Printf("PostDetail error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	users := map[primitive.ObjectID]*models.User{}
	for i := range comments {
		comments[i].Author = h.lookupUser(ctx, users, comments[i].AuthorID)
	}

	c.JSON(http.StatusOK, gin.H{
		"post":      posts[0],
		"postCount": count,
		"comments":  comments,
		"form":      gin.H{"text": ""},
	})
}

func (h *Handler) PostCreateForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":  createTitle,
		"isEdit": false,
	})
}

func (h *Handler) PostCreate(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	groupID, formErrs := h.validatePostForm(c, req)
	if len(formErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"title":  createTitle,
			"isEdit": false,
			"errors": formErrs,
		})
		return
	}

	user, err := h.currentUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch current user"})
		return
	}

	post := models.Post{
		AuthorID:  user.ID,
		GroupID:   groupID,
		Text:      req.Text,
		Image:     req.Image,
		CreatedAt: time.Now().Unix(),
	}

	if err := h.store.CreatePost(ctx, &post); err != nil {
		log.Printf("PostCreate error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

func (h *Handler) PostEditForm(c *gin.Context) {
	// The ownership guard already resolved the id to an existing post
	// owned by the requester.
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	post, err := h.store.PostByID(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":  editTitle,
		"isEdit": true,
		"post":   post,
	})
}

// PostEdit applies the validated submission to the stored post before
// persisting. The edit flow deliberately writes the submitted fields
// rather than re-saving the record as loaded.
func (h *Handler) PostEdit(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	groupID, formErrs := h.validatePostForm(c, req)
	if len(formErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"title":  editTitle,
			"isEdit": true,
			"errors": formErrs,
		})
		return
	}

	post, err := h.store.PostByID(ctx, postID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	post.Text = req.Text
	post.GroupID = groupID
	post.Image = req.Image

	if err := h.store.UpdatePost(ctx, post); err != nil {
		log.Printf("PostEdit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.Redirect(http.StatusFound, "/posts/"+postID.Hex()+"/")
}

// validatePostForm checks the one custom rule (non-blank text) and
// resolves the optional group slug.
func (h *Handler) validatePostForm(c *gin.Context, req PostRequest) (*primitive.ObjectID, map[string]string) {
	formErrs := map[string]string{}

	if blank(req.Text) {
		formErrs["text"] = "Text is required"
	}

	var groupID *primitive.ObjectID
	if req.Group != "" {
		group, err := h.store.GroupBySlug(c.Request.Context(), req.Group)
		if err != nil {
			formErrs["group"] = "Unknown group"
		} else {
			groupID = &group.ID
		}
	}

	return groupID, formErrs
}
