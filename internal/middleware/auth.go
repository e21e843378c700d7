package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"papertrade/internal/session"
)

// Auth resolves the session cookie to a user identity and stores the user
// ID in the Gin context. Requests without a valid session are redirected
// to the login form.
func Auth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		userID, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			// Stale or revoked session; drop the cookie and start over.
			c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
