package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/abosaleg/enrollment-service/internal/auth"
	"github.com/abosaleg/enrollment-service/internal/models"
)

func newGuardRouter(t *testing.T) (*gin.Engine, *auth.RedisSessionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	sessions := auth.NewRedisSessionStore(client, time.Hour)
	guard := auth.NewGuard(sessions)

	router := gin.New()
	router.Use(SessionTokenMiddleware())
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/me", RequireLogin(guard), ok)
	router.GET("/admin/dashboard", RequireAdmin(guard), ok)
	router.GET("/student/courses", RequireStudent(guard), ok)
	return router, sessions
}

func doGet(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGuardMiddlewareRedirects(t *testing.T) {
	router, sessions := newGuardRouter(t)
	ctx := context.Background()

	adminToken, err := sessions.Create(ctx, &auth.Session{UserID: 1, Role: models.RoleAdmin, Name: "Root"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	studentToken, err := sessions.Create(ctx, &auth.Session{UserID: 2, Role: models.RoleStudent, Name: "Jane"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		token    string
		status   int
		location string
	}{
		{name: "anonymous me", path: "/me", status: http.StatusSeeOther, location: "/login?reason=login+required"},
		{name: "student me", path: "/me", token: studentToken, status: http.StatusOK},

		{name: "anonymous admin", path: "/admin/dashboard", status: http.StatusSeeOther, location: "/login?reason=login+required"},
		{name: "student on admin", path: "/admin/dashboard", token: studentToken, status: http.StatusSeeOther, location: "/login?reason=admin+access+required"},
		{name: "admin dashboard", path: "/admin/dashboard", token: adminToken, status: http.StatusOK},

		{name: "admin on student", path: "/student/courses", token: adminToken, status: http.StatusSeeOther, location: "/login?reason=student+access+required"},
		{name: "student catalog", path: "/student/courses", token: studentToken, status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(router, tt.path, tt.token)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if got := w.Header().Get("Location"); got != tt.location {
				t.Errorf("Location = %q, want %q", got, tt.location)
			}
		})
	}
}

func TestGuardMiddlewareForgedToken(t *testing.T) {
	router, _ := newGuardRouter(t)

	w := doGet(router, "/admin/dashboard", "deadbeefdeadbeefdeadbeefdeadbeef")
	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want redirect for a token that was never issued", w.Code)
	}
}

func TestSecurityMiddlewareHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupMiddleware(router)
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doGet(router, "/health", "")
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestRequestIDMiddlewarePreservesCallerID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "caller-supplied" {
		t.Errorf("X-Request-ID = %q, want caller-supplied", got)
	}
}
