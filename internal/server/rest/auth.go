package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/passgate/internal/common"
	"github.com/dmitrijs2005/passgate/internal/server/metrics"
	"github.com/gin-gonic/gin"
)

const subjectKey = "session_subject"

type authRequest struct {
	Key *string `json:"key"`
}

var authMessages = messages{
	common.ErrorBadFormat:    "Invalid key format",
	common.ErrorUnauthorized: "User not found",
}

var sessionMessages = messages{
	common.ErrorForbidden:    "Token is required",
	common.ErrorUnauthorized: "Invalid token",
}

// authenticate handles POST /authenticate/auth. On success the token goes
// into the session cookie and the body carries only the display name.
func (s *Server) authenticate(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == nil || *req.Key == "" {
		metrics.RecordAuthAttempt(metrics.AuthBadRequest)
		if err == nil {
			err = common.ErrorBadFormat
		}
		s.writeError(c, badFormat(err), authMessages)
		return
	}

	session, err := s.auth.Authenticate(c.Request.Context(), *req.Key)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			metrics.RecordAuthAttempt(metrics.AuthUnknownKey)
		case errors.Is(err, common.ErrorBadFormat):
			metrics.RecordAuthAttempt(metrics.AuthBadRequest)
		default:
			metrics.RecordAuthAttempt(metrics.AuthError)
		}
		s.writeError(c, err, authMessages)
		return
	}

	metrics.RecordAuthAttempt(metrics.AuthSuccess)
	s.setSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, gin.H{"name": session.Name})
}

// autoLogin handles GET /authenticate/autoLogin; requireSession has already
// accepted the token.
func (s *Server) autoLogin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Token is valid"})
}

// requireSession verifies the bearer token before any protected handler runs.
func (s *Server) requireSession(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := s.verifyRequest(c)
		if err != nil {
			result := "unauthorized"
			if errors.Is(err, common.ErrorForbidden) {
				result = "forbidden"
			}
			metrics.RecordSessionCheck("http", result)
			s.logger.Debug(c.Request.Context(), "session rejected", "scope", scope, "error", err)
			s.writeError(c, err, sessionMessages)
			return
		}

		metrics.RecordSessionCheck("http", "valid")
		c.Set(subjectKey, subject)
		c.Next()
	}
}

func (s *Server) verifyRequest(c *gin.Context) (string, error) {
	header := c.GetHeader(common.AuthorizationHeaderName)
	if header == "" && s.opts.AcceptCookieToken {
		if token, err := c.Cookie(common.SessionCookieName); err == nil && token != "" {
			return s.auth.VerifyToken(token)
		}
	}
	return s.auth.VerifyBearer(header)
}

func (s *Server) setSessionCookie(c *gin.Context, token string) {
	secure := !s.opts.CookieInsecure
	maxAge := s.opts.CookieMaxAge
	if maxAge <= 0 {
		maxAge = common.SessionTTL
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, token, int(maxAge.Seconds()), "/", "", secure, secure)
}

// badFormat keeps oversize bodies distinguishable and folds every other
// decode failure into common.ErrorBadFormat.
func badFormat(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || errors.Is(err, common.ErrorBadFormat) {
		return err
	}
	return common.ErrorBadFormat
}
