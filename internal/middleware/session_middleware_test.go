package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/milkroute/storefront_api/internal/models"
	"github.com/milkroute/storefront_api/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func adminRouter(authed *session.Record) *gin.Engine {
	r := gin.New()
	if authed != nil {
		r.Use(func(c *gin.Context) {
			c.Set(sessionRecordKey, authed)
			c.Next()
		})
	}
	guarded := r.Group("/admin")
	guarded.Use(RequireRole(models.RoleAdmin))
	guarded.GET("/admins", func(c *gin.Context) { c.Status(200) })
	return r
}

func TestRequireRoleAnonymousRedirectsToLanding(t *testing.T) {
	r := adminRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/admins", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequireRoleMismatchRedirectsToOwnHome(t *testing.T) {
	rec := &session.Record{SID: "s1", User: models.SessionUser{ID: 1, Role: models.RoleUser}}
	r := adminRouter(rec)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/admins", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/user/dashboard", w.Header().Get("Location"))
}

func TestRequireRoleMatchingRolePasses(t *testing.T) {
	rec := &session.Record{SID: "s1", User: models.SessionUser{ID: 1, Role: models.RoleAdmin}}
	r := adminRouter(rec)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/admins", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOriginHostStripsDefaultPorts(t *testing.T) {
	assert.Equal(t, "shop.milkroute.in", originHost("https://shop.milkroute.in:443/"))
	assert.Equal(t, "localhost:3000", originHost("http://localhost:3000"))
	assert.Equal(t, "", originHost("not a url"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"localhost:3000"}))
	r.GET("/health", func(c *gin.Context) { c.Status(200) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSUnknownOriginGetsNoAllowHeader(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"localhost:3000"}))
	r.GET("/health", func(c *gin.Context) { c.Status(200) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
