package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// LoginPath is where unauthenticated requests get sent, with the
// originally requested path in the next parameter.
const LoginPath = "/auth/login/"

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// RequireLogin validates the bearer token and puts the user id into
// the context under "userId". Missing or invalid credentials never
// produce a 401 here: the request is redirected to the login page so
// the client can come back via next.
func RequireLogin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip middleware for OPTIONS requests (CORS preflight)
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		// Try the Authorization header first, then the query parameter
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			token := c.Query("token")
			if token == "" {
				redirectToLogin(c)
				return
			}
			authHeader = "Bearer " + token
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			redirectToLogin(c)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			redirectToLogin(c)
			return
		}

		c.Set("userId", claims.UserID)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	next := url.QueryEscape(c.Request.URL.Path)
	c.Redirect(http.StatusFound, LoginPath+"?next="+next)
	c.Abort()
}
