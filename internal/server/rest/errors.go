package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/passgate/internal/common"
	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

var errorStatuses = []struct {
	err    error
	status int
}{
	{common.ErrorBadFormat, http.StatusBadRequest},
	{common.ErrorMissingFields, http.StatusBadRequest},
	{common.ErrorForbidden, http.StatusForbidden},
	{common.ErrorUnauthorized, http.StatusUnauthorized},
	{common.ErrorNotFound, http.StatusNotFound},
	{common.ErrorAlreadyExists, http.StatusConflict},
}

var defaultMessages = map[error]string{
	common.ErrorBadFormat:     "Invalid request body",
	common.ErrorMissingFields: "Missing required fields",
	common.ErrorForbidden:     "Token is required",
	common.ErrorUnauthorized:  "Invalid token",
	common.ErrorNotFound:      "Not found",
	common.ErrorAlreadyExists: "Already exists",
}

// messages overrides the response text per sentinel for one route.
type messages map[error]string

// writeError maps err onto a status and {"error": ...} body. Anything that is
// not a known sentinel is logged and reported as a 500.
func (s *Server) writeError(c *gin.Context, err error, msgs messages) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Payload too large"})
		return
	}

	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			msg, ok := msgs[e.err]
			if !ok {
				msg = defaultMessages[e.err]
			}
			c.AbortWithStatusJSON(e.status, gin.H{"error": msg})
			return
		}
	}

	s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
}
