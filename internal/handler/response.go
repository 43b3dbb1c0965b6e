package handler

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/sekolah-api/internal/middleware"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
)

// Flash statuses
const (
	flashSuccess = "success"
	flashError   = "error"

	sessionFlashStatus  = "flash_status"
	sessionFlashMessage = "flash_message"
)

// Flash is a one-shot status message shown after a redirect
type Flash struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// setFlash stores a flash message in the session
func setFlash(c *gin.Context, status, message string) {
	session := sessions.Default(c)
	session.Set(sessionFlashStatus, status)
	session.Set(sessionFlashMessage, message)
	if err := session.Save(); err != nil {
		log.Printf("[Flash] Failed to save session: %v", err)
	}
}

// popFlash returns and clears the session flash message
func popFlash(c *gin.Context) *Flash {
	session := sessions.Default(c)
	status, _ := session.Get(sessionFlashStatus).(string)
	message, _ := session.Get(sessionFlashMessage).(string)
	if status == "" && message == "" {
		return nil
	}
	session.Delete(sessionFlashStatus)
	session.Delete(sessionFlashMessage)
	if err := session.Save(); err != nil {
		log.Printf("[Flash] Failed to save session: %v", err)
	}
	return &Flash{Status: status, Message: message}
}

// backURL returns the same-host Referer path, or fallback
func backURL(c *gin.Context, fallback string) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) || !isLocalPath(u.Path) {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

// respond answers a state-changing request. API clients get JSON with
// status code code; browser forms get a flash message and a redirect to
// the previous page (or fallback).
func respond(c *gin.Context, code int, status, message string, data interface{}, fallback string) {
	if middleware.WantsJSON(c) {
		body := gin.H{"status": status, "message": message}
		if data != nil {
			body["data"] = data
		}
		c.JSON(code, body)
		return
	}
	setFlash(c, status, message)
	c.Redirect(http.StatusFound, backURL(c, fallback))
}

// statusFor maps application errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrFileMissing):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicateAttempt):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes err as JSON with the mapped status code
func handleError(c *gin.Context, component string, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("ERROR: Internal server error in %s: %v", component, err)
		c.JSON(code, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// failWithFlash reports err on a form submission: API clients get the JSON
// error, browser forms get message as an error flash.
func failWithFlash(c *gin.Context, component string, err error, message, fallback string) {
	if middleware.WantsJSON(c) {
		handleError(c, component, err)
		return
	}
	if statusFor(err) == http.StatusInternalServerError {
		log.Printf("ERROR: Internal server error in %s: %v", component, err)
	}
	setFlash(c, flashError, message)
	c.Redirect(http.StatusFound, backURL(c, fallback))
}

// isLocalPath rejects paths a browser would resolve against another host
func isLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return false
	}
	return !strings.Contains(p, "\\")
}

// bindError answers a request whose body failed validation
func bindError(c *gin.Context, err error, fallback string) {
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}
	setFlash(c, flashError, "Data yang dikirim tidak valid")
	c.Redirect(http.StatusFound, backURL(c, fallback))
}
