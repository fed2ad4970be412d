package middleware

import (
	"github.com/gin-gonic/gin"

	"quickmart.dev/app/internal/http/session"
)

const CtxKeySession = "session"

// SessionMiddleware decodes the signed session cookies into the request
// context. An invalid or tampered pair is cleared and the request proceeds
// unauthenticated; the backend remains the only judge of token validity.
func SessionMiddleware(codec *session.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := codec.Get(c)
		if !ok {
			codec.Clear(c)
			c.Next()
			return
		}
		c.Set(CtxKeySession, s)
		c.Next()
	}
}

// CurrentSession retrieves the decoded session from the gin context.
func CurrentSession(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(CtxKeySession)
	if !ok {
		return session.Session{}, false
	}
	s, ok := v.(session.Session)
	if !ok || s.ID == "" {
		return session.Session{}, false
	}
	return s, true
}
