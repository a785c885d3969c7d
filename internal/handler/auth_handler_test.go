package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/milkroute/storefront_api/internal/config"
	"github.com/milkroute/storefront_api/internal/middleware"
	"github.com/milkroute/storefront_api/internal/service"
	"github.com/milkroute/storefront_api/pkg/dairyapi"
)

func newLoginRouter(backendURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	authSvc := service.NewAuthService(dairyapi.NewClient(backendURL), nil, nil, nil)
	cfg := &config.Config{
		JWTSecret: "test-secret",
		Session:   config.SessionConfig{CookieName: "mm_session", TTL: time.Hour},
	}
	h := NewAuthHandler(authSvc, nil, cfg, middleware.NewInvalidAuthRateLimiter())

	router := gin.New()
	router.POST("/auth/login", h.Login)
	return router
}

func postLogin(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"identifier":"asha@milkroute.in","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":51000"
	router.ServeHTTP(w, req)
	return w
}

func TestLoginRateLimitCountsFailuresOnly(t *testing.T) {
	var backendHits atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendHits.Add(1)
		w.WriteHeader(401)
		_, _ = w.Write([]byte(`{"detail":"invalid credentials"}`))
	}))
	defer backend.Close()

	router := newLoginRouter(backend.URL)

	for i := 0; i < 5; i++ {
		assert.Equal(t, 401, postLogin(router, "10.1.2.3").Code)
	}
	assert.Equal(t, 429, postLogin(router, "10.1.2.3").Code)

	// Every attempt reaches the backend first; the limiter never gates the
	// call itself, it only caps how many rejections one IP may accumulate.
	assert.Equal(t, int32(6), backendHits.Load())

	// Another IP is unaffected.
	assert.Equal(t, 401, postLogin(router, "10.9.9.9").Code)
}
