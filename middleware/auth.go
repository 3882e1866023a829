package middleware

import (
	"net/http"

	"ridebook/services/user"

	"github.com/gin-gonic/gin"
)

// Header carrying the local session key issued at OTP verification.
const SessionKeyHeader = "x-app-session"

// Header carrying the client-generated draft id. The draft outlives login,
// mirroring a browser-local booking draft, so it is scoped separately from
// the auth session.
const DraftIDHeader = "x-draft-id"

// Context keys set by the middlewares below.
const (
	CtxSession    = "session"
	CtxSessionKey = "sessionKey"
	CtxDraftID    = "draftID"
)

// UserAuthMiddleware resolves the local session key into the stored session
// pair. Session errors answer 401 with a redirect hint; the client's remedy
// is always force-logout plus navigation to the public landing route.
func UserAuthMiddleware(sessions user.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(SessionKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session", "redirect": "/"})
			return
		}
		session, err := sessions.Session(key)
		if err != nil || !session.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired", "redirect": "/"})
			return
		}
		c.Set(CtxSession, session)
		c.Set(CtxSessionKey, key)
		c.Next()
	}
}

// DraftMiddleware requires the draft id that scopes the booking store.
func DraftMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		draftID := c.GetHeader(DraftIDHeader)
		if draftID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing draft id"})
			return
		}
		c.Set(CtxDraftID, draftID)
		c.Next()
	}
}
