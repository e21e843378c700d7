package middleware

import "github.com/gin-gonic/gin"

// NoCache disables response caching on authenticated pages so balances and
// holdings are never served stale by the browser.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Writer.Header().Set("Pragma", "no-cache")
		c.Writer.Header().Set("Expires", "0")
		c.Next()
	}
}
