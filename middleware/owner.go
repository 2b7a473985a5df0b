package middleware

import (
	"context"
	"net/http"

	"github.com/KuzenkovAG/yatube-final/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostGetter interface {
	PostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
}

// PostOwnerOnly guards the edit flow: only the author of post :id gets
// through. Everyone else, including requests for posts that do not
// exist, is silently redirected to the read-only detail view. Never a
// 403 so a non-owner cannot even tell the edit page exists.
func PostOwnerOnly(posts PostGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Param("id")
		detail := "/posts/" + idParam + "/"

		postID, err := primitive.ObjectIDFromHex(idParam)
		if err != nil {
			redirectToDetail(c, detail)
			return
		}

		userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
		if err != nil {
			redirectToDetail(c, detail)
			return
		}

		post, err := posts.PostByID(c.Request.Context(), postID)
		if err != nil || post.AuthorID != userID {
			redirectToDetail(c, detail)
			return
		}

		c.Next()
	}
}

func redirectToDetail(c *gin.Context, detail string) {
	c.Redirect(http.StatusFound, detail)
	c.Abort()
}
