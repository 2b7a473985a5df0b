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

type CommentRequest struct {
	Text string `json:"text"`
}

// AddComment attaches a comment to post :id and sends the client back
// to the detail view. A blank submission also redirects there, with
// nothing stored and no error surfaced; the detail view simply shows
// the post without the comment.
func (h *Handler) AddComment(c *gin.Context) {
	postIDHex := c.Param("id")
	detail := "/posts/" + postIDHex + "/"

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || blank(req.Text) {
		c.Redirect(http.StatusFound, detail)
		return
	}

	ctx := c.Request.Context()

	postID, err := primitive.ObjectIDFromHex(postIDHex)
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
		log.Printf("AddComment error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	user, err := h.currentUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch current user"})
		return
	}

	comment := models.Comment{
		PostID:    post.ID,
		AuthorID:  user.ID,
		Text:      req.Text,
		CreatedAt: time.Now().Unix(),
	}

	if err := h.store.CreateComment(ctx, &comment); err != nil {
		log.Printf("AddComment error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.Redirect(http.StatusFound, detail)
}
