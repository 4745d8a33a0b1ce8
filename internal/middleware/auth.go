package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/guard"
	"github.com/hfappmaker/worktime/internal/models"
)

// authTimingFloor is the minimum response time for auth failures to prevent
// timing oracle attacks that could distinguish valid from invalid session tokens.
const authTimingFloor = 50 * time.Millisecond

// PrincipalKey is the gin context key for the authenticated principal.
const PrincipalKey = "principal"

// SessionLookup is the interface for resolving a session token to its user.
type SessionLookup interface {
	GetUserBySessionToken(ctx context.Context, token string) (*models.User, error)
}

// truncateToken returns at most the first 4 characters of token followed by "...".
func truncateToken(token string) string {
	if len(token) > 4 {
		return token[:4] + "..."
	}
	return token
}

// enforceTimingFloor sleeps if needed so the response takes at least authTimingFloor.
func enforceTimingFloor(start time.Time) {
	if elapsed := time.Since(start); elapsed < authTimingFloor {
		time.Sleep(authTimingFloor - elapsed)
	}
}

// AuthMiddleware returns Gin middleware that authenticates requests via Bearer
// session token. On success the principal is stored both in the gin context and
// in the request context, where the guard layer's resolver picks it up.
func AuthMiddleware(lookup SessionLookup, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if c.Writer.Status() == http.StatusUnauthorized {
				enforceTimingFloor(start)
			}
		}()

		token := ExtractBearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization header")
			return
		}

		user, err := lookup.GetUserBySessionToken(c.Request.Context(), token)
		if err != nil {
			logAuthFailure(log, c, token)
			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid or expired session")
			return
		}

		p := &guard.Principal{ID: user.ID, Name: user.Name, Email: user.Email}
		c.Set(PrincipalKey, p)
		c.Request = c.Request.WithContext(guard.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// ExtractBearerToken extracts the session token from the Authorization header.
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// logAuthFailure logs a failed authentication attempt.
func logAuthFailure(log *logrus.Logger, c *gin.Context, token string) {
	log.WithFields(logrus.Fields{
		"client_ip":    c.ClientIP(),
		"method":       c.Request.Method,
		"path":         c.Request.URL.Path,
		"user_agent":   c.Request.UserAgent(),
		"request_id":   c.GetString("request_id"),
		"token_prefix": truncateToken(token),
	}).Warn("authentication failed: invalid session token")
}
