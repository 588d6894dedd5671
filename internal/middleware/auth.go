package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// SessionUserID is the session key holding the authenticated user's ID
	SessionUserID = "user_id"
	// SessionUsername is the session key holding the display name
	SessionUsername = "username"
)

// RequireAuth is a middleware that requires the user to be logged in
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(SessionUserID)

		if userID == nil {
			c.Redirect(http.StatusFound, "/signin")
			c.Abort()
			return
		}

		c.Set(SessionUserID, userID)
		c.Next()
	}
}
