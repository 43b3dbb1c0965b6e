package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/handler/dto"
	"github.com/yourusername/sekolah-api/internal/middleware"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
	"github.com/yourusername/sekolah-api/internal/service"
)

// AuthHandler handles login, logout, first-user registration and API tokens
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginPage returns the state of the login page
// GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	canRegister, err := h.authService.CanRegister()
	if err != nil {
		handleError(c, "AuthHandler", err)
		return
	}
	session := sessions.Default(c)
	token := middleware.EnsureCSRFToken(session)
	if err := session.Save(); err != nil {
		log.Printf("[AuthHandler] Failed to save session: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{
		"canRegister": canRegister,
		"csrf_token":  token,
		"flash":       popFlash(c),
	})
}

// Login checks the credentials and starts a session
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err, "/login")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			failWithFlash(c, "AuthHandler", err, "Email atau password salah", "/login")
			return
		}
		failWithFlash(c, "AuthHandler", err, "Login gagal", "/login")
		return
	}

	h.startSession(c, user)
	log.Printf("[AuthHandler] User ID=%d logged in", user.ID)
	h.redirectHome(c, user, "Login berhasil")
}

// Register creates the first account as SuperAdmin and logs it in
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err, "/login")
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		failWithFlash(c, "AuthHandler", err, "Registrasi tidak tersedia", "/login")
		return
	}

	h.startSession(c, user)
	h.redirectHome(c, user, "Registrasi berhasil")
}

// Logout ends the session
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		log.Printf("[AuthHandler] Failed to clear session: %v", err)
	}
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"status": flashSuccess, "message": "Logout berhasil"})
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// Token issues a bearer token for API clients
// POST /api/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}
	resp, err := h.authService.IssueToken(req.Email, req.Password)
	if err != nil {
		handleError(c, "AuthHandler", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the shared page data: user, route, isWaliKelas, departement,
// CSRF token and the pending flash message
// GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	session := sessions.Default(c)
	token := middleware.EnsureCSRFToken(session)
	if err := session.Save(); err != nil {
		log.Printf("[AuthHandler] Failed to save session: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"route":       c.GetString(middleware.ContextRoute),
		"isWaliKelas": c.GetBool(middleware.ContextIsWaliKelas),
		"departement": c.GetString(middleware.ContextDepartement),
		"csrf_token":  token,
		"flash":       popFlash(c),
	})
}

func (h *AuthHandler) startSession(c *gin.Context, user *entity.User) {
	session := sessions.Default(c)
	session.Clear()
	session.Set(middleware.SessionUserID, user.ID)
	middleware.EnsureCSRFToken(session)
	if err := session.Save(); err != nil {
		log.Printf("[AuthHandler] Failed to save session for user ID=%d: %v", user.ID, err)
	}
}

func (h *AuthHandler) redirectHome(c *gin.Context, user *entity.User, message string) {
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"status":   flashSuccess,
			"message":  message,
			"user":     user,
			"redirect": user.HomePath(),
		})
		return
	}
	setFlash(c, flashSuccess, message)
	c.Redirect(http.StatusFound, user.HomePath())
}
