package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/milkroute/storefront_api/internal/models"
	"github.com/milkroute/storefront_api/internal/session"
	"github.com/milkroute/storefront_api/internal/utils"
)

const sessionRecordKey = "session_record"

// SessionMiddleware resolves the signed session cookie into the server-side
// session record. Requests without a valid session pass through anonymous;
// the role guard decides what anonymity means per route.
type SessionMiddleware struct {
	secret     string
	cookieName string
	sessions   *session.Store
}

func NewSessionMiddleware(secret, cookieName string, sessions *session.Store) *SessionMiddleware {
	return &SessionMiddleware{secret: secret, cookieName: cookieName, sessions: sessions}
}

func (m *SessionMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := utils.ValidateSessionToken(m.secret, token)
		if err != nil {
			c.Next()
			return
		}

		rec, err := m.sessions.Get(c.Request.Context(), claims.SID)
		if err != nil {
			if err != utils.ErrSessionNotFound {
				log.Error().Err(err).Msg("Session lookup failed")
			}
			c.Next()
			return
		}

		c.Set(sessionRecordKey, rec)
		c.Set("role", rec.User.Role)
		c.Next()
	}
}

// CurrentSession returns the resolved session record, nil when anonymous.
func CurrentSession(c *gin.Context) *session.Record {
	if v, ok := c.Get(sessionRecordKey); ok {
		if rec, ok := v.(*session.Record); ok {
			return rec
		}
	}
	return nil
}

// roleHome maps a role to its landing route.
func roleHome(role string) string {
	if role == models.RoleAdmin {
		return "/admin/dashboard"
	}
	return "/user/dashboard"
}

// RequireRole redirects rather than erroring: anonymous requests go to the
// public landing route, a mismatched role goes to its own home.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec := CurrentSession(c)
		if rec == nil {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		if rec.User.Role != role {
			c.Redirect(http.StatusSeeOther, roleHome(rec.User.Role))
			c.Abort()
			return
		}
		c.Next()
	}
}
