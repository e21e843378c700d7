package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/logger"
)

// currentUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func currentUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	return userID.(uint), nil
}

// page builds the template data common to every page: the title and
// whether a user is logged in (controls the nav), merged with any
// page-specific data.
func page(c *gin.Context, title string, data gin.H) gin.H {
	_, loggedIn := c.Get("userID")
	merged := gin.H{"Title": title, "LoggedIn": loggedIn}
	for key, value := range data {
		merged[key] = value
	}
	return merged
}

// renderApology renders the generic error page with the given status code
// and message. Every user-facing failure goes through here.
func renderApology(c *gin.Context, status int, message string) {
	c.HTML(status, "apology.html", page(c, "Sorry", gin.H{
		"Status":  status,
		"Message": message,
	}))
}

// respondWithError renders a consistent apology page. If the error is an
// *AppError it uses the error's status code and message. Otherwise it logs
// the unexpected error and renders a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		renderApology(c, appErr.StatusCode, appErr.Message)
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	renderApology(c, apperrors.ErrInternalServer.StatusCode, apperrors.ErrInternalServer.Message)
}
