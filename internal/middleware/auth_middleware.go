package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/service"
)

// Session keys
const (
	SessionUserID = "user_id"
	SessionCSRF   = "csrf_token"
)

// Gin context keys shared with handlers
const (
	ContextUserID      = "user_id"
	ContextUser        = "user"
	ContextRoute       = "route"
	ContextIsWaliKelas = "isWaliKelas"
	ContextDepartement = "departement"
	contextViaToken    = "via_token"
)

// CSRFHeader carries the session CSRF token on state-changing requests
const CSRFHeader = "X-CSRF-Token"

// SessionLoader resolves bearer tokens and loads the logged-in user
type SessionLoader interface {
	ParseToken(token string) (uint, error)
	LoadSessionUser(userID uint) (*service.SessionUser, error)
}

// AuthMiddleware authenticates requests by cookie session or bearer token
type AuthMiddleware struct {
	loader SessionLoader
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(loader SessionLoader) *AuthMiddleware {
	return &AuthMiddleware{loader: loader}
}

// WantsJSON reports whether the client expects JSON rather than a redirect
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	if strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func sessionUserID(c *gin.Context) (uint, bool) {
	v := sessions.Default(c).Get(SessionUserID)
	switch id := v.(type) {
	case uint:
		return id, id != 0
	case int:
		return uint(id), id > 0
	case int64:
		return uint(id), id > 0
	case float64:
		return uint(id), id > 0
	}
	return 0, false
}

// RequireAuth loads the user into the context. Unauthenticated page requests
// are redirected to /login, API requests get 401.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID uint
		viaToken := false

		if token, ok := bearerToken(c); ok {
			id, err := m.loader.ParseToken(token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token tidak valid atau kedaluwarsa", "error_type": "token_invalid"})
				return
			}
			userID = id
			viaToken = true
		} else if id, ok := sessionUserID(c); ok {
			userID = id
		} else {
			unauthenticated(c)
			return
		}

		su, err := m.loader.LoadSessionUser(userID)
		if err != nil {
			log.Printf("[AuthMiddleware] Failed to load user ID=%d: %v", userID, err)
			if !viaToken {
				session := sessions.Default(c)
				session.Delete(SessionUserID)
				_ = session.Save()
			}
			unauthenticated(c)
			return
		}

		c.Set(ContextUserID, su.User.ID)
		c.Set(ContextUser, su.User)
		c.Set(ContextRoute, c.FullPath())
		c.Set(ContextIsWaliKelas, su.IsWaliKelas)
		c.Set(ContextDepartement, su.Departemen)
		c.Set(contextViaToken, viaToken)
		c.Next()
	}
}

func unauthenticated(c *gin.Context) {
	if WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Silakan login terlebih dahulu", "error_type": "unauthenticated"})
		return
	}
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// RequireRole lets only the given roles through. Other users are sent to
// their own dashboard. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			unauthenticated(c)
			return
		}
		if _, ok := allowed[user.Role]; ok {
			c.Next()
			return
		}
		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Akses ditolak", "error_type": "forbidden"})
			return
		}
		c.Redirect(http.StatusFound, user.HomePath())
		c.Abort()
	}
}

// RequireCSRF checks the session CSRF token on state-changing requests made
// with a cookie session. Requests authenticated by RequireAuth with a bearer
// token are exempt.
func (m *AuthMiddleware) RequireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions || method == http.MethodTrace {
			c.Next()
			return
		}
		if c.GetBool(contextViaToken) {
			c.Next()
			return
		}

		expected, _ := sessions.Default(c).Get(SessionCSRF).(string)
		got := c.GetHeader(CSRFHeader)
		if got == "" {
			got = c.PostForm("_token")
		}
		if expected == "" || got != expected {
			log.Printf("[CSRF Middleware] CSRF token mismatch for path %s", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token CSRF tidak valid", "error_type": "csrf_token_invalid"})
			return
		}
		c.Next()
	}
}

// EnsureCSRFToken returns the session CSRF token, creating one if needed.
// The caller saves the session.
func EnsureCSRFToken(session sessions.Session) string {
	if token, ok := session.Get(SessionCSRF).(string); ok && token != "" {
		return token
	}
	token := uuid.NewString()
	session.Set(SessionCSRF, token)
	return token
}

// CurrentUser returns the user loaded by RequireAuth
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok && user != nil
}
