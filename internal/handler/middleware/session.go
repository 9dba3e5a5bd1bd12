package middleware

import (
	"log/slog"
	"net/http"

	"coupon-wallet/internal/pkg/config"
	"coupon-wallet/internal/pkg/cookie"
	"coupon-wallet/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

const ctxSessionKey = "session"

// SessionMiddleware authenticates requests from the session cookie. Expiry is
// enforced on read: an invalid or lapsed token clears the cookie and yields
// 401, the same as no cookie at all.
type SessionMiddleware struct {
	sessions  *session.Service
	cookieCfg config.CookieConfig
}

func NewSessionMiddleware(sessions *session.Service, cfg config.Config) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:  sessions,
		cookieCfg: cfg.Cookie,
	}
}

func (m *SessionMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetSessionToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "認証されていません",
			})
			c.Abort()
			return
		}

		sess, err := m.sessions.Verify(token)
		if err != nil {
			slog.Warn("Session verification failed", "error", err.Error())
			cookie.ClearSessionCookie(c, m.cookieCfg)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "認証されていません",
			})
			c.Abort()
			return
		}

		SetSession(c, sess)
		c.Next()
	}
}

func SetSession(c *gin.Context, sess session.Session) {
	c.Set(ctxSessionKey, sess)
}

func GetSession(c *gin.Context) (session.Session, bool) {
	value, exists := c.Get(ctxSessionKey)
	if !exists {
		return session.Session{}, false
	}

	sess, ok := value.(session.Session)
	return sess, ok
}
