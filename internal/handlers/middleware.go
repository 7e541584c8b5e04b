package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abosaleg/enrollment-service/internal/auth"
)

const (
	sessionCookieName = "session_token"
	sessionTokenKey   = "session_token"
	loginPath         = "/login"
)

// SetupMiddleware sets up the common middleware for the Gin router.
func SetupMiddleware(router *gin.Engine) {
	router.Use(RequestIDMiddleware())
	router.Use(gin.Recovery())
	router.Use(SecurityMiddleware())
}

// SessionTokenMiddleware extracts the session cookie and stashes the raw
// token for the guard middlewares and handlers downstream.
func SessionTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(sessionCookieName); err == nil {
			c.Set(sessionTokenKey, token)
		}
		c.Next()
	}
}

// sessionToken returns the caller's token, empty when anonymous.
func sessionToken(c *gin.Context) string {
	return c.GetString(sessionTokenKey)
}

// applyDecision turns a guard decision into the transport action: a redirect
// to the login page when denied.
func applyDecision(c *gin.Context, decision auth.Decision) bool {
	if decision.Allowed {
		return true
	}
	c.Redirect(http.StatusSeeOther, loginPath+"?reason="+url.QueryEscape(decision.RedirectReason))
	c.Abort()
	return false
}

// RequireLogin redirects anonymous callers to the login page.
func RequireLogin(guard *auth.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if applyDecision(c, guard.RequireLogin(c.Request.Context(), sessionToken(c))) {
			c.Next()
		}
	}
}

// RequireAdmin guards the admin route group.
func RequireAdmin(guard *auth.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if applyDecision(c, guard.RequireAdmin(c.Request.Context(), sessionToken(c))) {
			c.Next()
		}
	}
}

// RequireStudent guards the student route group.
func RequireStudent(guard *auth.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if applyDecision(c, guard.RequireStudent(c.Request.Context(), sessionToken(c))) {
			c.Next()
		}
	}
}

// RequestIDMiddleware tags every request with a unique id for log
// correlation.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// SecurityMiddleware adds security headers.
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
