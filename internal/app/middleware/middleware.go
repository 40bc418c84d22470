package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wayfarer-ai/wayfarer/internal/app/session"
)

// Typed context key for the request's session.
type contextKey string

const SessionContextKey contextKey = "session"

// CORSMiddleware handles CORS headers
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With, HX-Request, HX-Target, HX-Current-URL")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecurityMiddleware adds security headers
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Content Security Policy for HTMX and the Tailwind CDN
		csp := "default-src 'self'; " +
			"script-src 'self' 'unsafe-inline' 'unsafe-eval' https://unpkg.com https://cdn.tailwindcss.com; " +
			"style-src 'self' 'unsafe-inline'; " +
			"img-src 'self' data:; " +
			"connect-src 'self'"
		c.Writer.Header().Set("Content-Security-Policy", csp)

		c.Next()
	}
}

// SessionMiddleware resolves the browser's session from its cookie, minting a
// fresh session (and cookie) when none exists or it has expired.
func SessionMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(session.CookieName)
		sess, created := store.GetOrCreate(id)
		if created {
			c.SetCookie(session.CookieName, sess.ID, 0, "/", "", false, true)
		}
		c.Set(string(SessionContextKey), sess)
		c.Next()
	}
}

// GetSessionFromContext returns the request's session. The session middleware
// guarantees one is present on every route it wraps.
func GetSessionFromContext(c *gin.Context) *session.Session {
	if v, ok := c.Get(string(SessionContextKey)); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
