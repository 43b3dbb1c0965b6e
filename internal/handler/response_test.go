package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
)

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-session-secret"))))
	return r
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: jawaban/1-2-3.opz", apperrors.ErrFileMissing), http.StatusNotFound},
		{apperrors.ErrConflict, http.StatusConflict},
		{apperrors.ErrDuplicateAttempt, http.StatusConflict},
		{fmt.Errorf("%w: nip kosong", apperrors.ErrValidation), http.StatusUnprocessableEntity},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), "error %v", tt.err)
	}
}

func TestHandleError_HidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handleError(c, "TestHandler", errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestRespond_JSONClient(t *testing.T) {
	r := newSessionRouter()
	r.POST("/api/thing", func(c *gin.Context) {
		respond(c, http.StatusCreated, flashSuccess, "Data berhasil disimpan", gin.H{"id": 7}, "/fallback")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/thing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"status":"success","message":"Data berhasil disimpan","data":{"id":7}}`, w.Body.String())
}

func TestRespond_FormRedirectsWithFlash(t *testing.T) {
	r := newSessionRouter()
	r.POST("/SuperAdmin/data-guru", func(c *gin.Context) {
		respond(c, http.StatusCreated, flashSuccess, "Data guru berhasil ditambahkan", nil, "/SuperAdmin/data-guru")
	})
	r.GET("/flash", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"flash": popFlash(c)})
	})

	// Act: submit the form from another page of the same host
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/SuperAdmin/data-guru", nil)
	req.Header.Set("Referer", "http://example.com/SuperAdmin/data-guru?page=2")
	r.ServeHTTP(w, req)

	// Assert: redirect back to the referer and the flash survives one read
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/SuperAdmin/data-guru?page=2", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/flash", nil)
	for _, ck := range cookies {
		req2.AddCookie(ck)
	}
	r.ServeHTTP(w2, req2)
	assert.JSONEq(t, `{"flash":{"status":"success","message":"Data guru berhasil ditambahkan"}}`, w2.Body.String())

	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/flash", nil)
	for _, ck := range w2.Result().Cookies() {
		req3.AddCookie(ck)
	}
	r.ServeHTTP(w3, req3)
	assert.JSONEq(t, `{"flash":null}`, w3.Body.String())
}

func TestBackURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"no referer", "", "/siswa/ujian"},
		{"same host", "http://example.com/siswa/ujian?search=ipa", "/siswa/ujian?search=ipa"},
		{"relative", "/guru/nilai", "/guru/nilai"},
		{"foreign host", "https://evil.test/phish", "/siswa/ujian"},
		{"backslash host", "/\\evil.test/phish", "/siswa/ujian"},
		{"protocol relative path", "http://example.com//evil.test/phish", "/siswa/ujian"},
		{"embedded backslash", "/siswa/\\evil.test", "/siswa/ujian"},
		{"no leading slash", "siswa/ujian/3", "/siswa/ujian"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/siswa/ujian/start", nil)
			if tt.referer != "" {
				c.Request.Header.Set("Referer", tt.referer)
			}
			assert.Equal(t, tt.want, backURL(c, "/siswa/ujian"))
		})
	}
}
