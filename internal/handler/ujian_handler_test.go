package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/domain/repository"
	"github.com/yourusername/sekolah-api/internal/middleware"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
	"github.com/yourusername/sekolah-api/internal/service/ujian"
	"github.com/yourusername/sekolah-api/internal/storage"
	"github.com/yourusername/sekolah-api/pkg/crypto"
)

// stubKehadiranRepo serves fixed rows; methods the handler never reaches panic.
type stubKehadiranRepo struct {
	repository.KehadiranRepository
	rows       []entity.ManajemenKehadiran
	attempt    *entity.ManajemenKehadiran
	lastFilter repository.KehadiranFilter
}

func (s *stubKehadiranRepo) FindByUserAndUjian(_ context.Context, userID, ujianID uint) (*entity.ManajemenKehadiran, error) {
	if s.attempt != nil && s.attempt.UserID == userID && s.attempt.UjianID == ujianID {
		return s.attempt, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *stubKehadiranRepo) ListAll(_ context.Context, filter repository.KehadiranFilter) ([]entity.ManajemenKehadiran, error) {
	s.lastFilter = filter
	return s.rows, nil
}

func (s *stubKehadiranRepo) GetByID(_ context.Context, id uint) (*entity.ManajemenKehadiran, error) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			return &s.rows[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func newTestUjianHandler(t *testing.T, repo *stubKehadiranRepo) (*UjianHandler, *storage.SecureStore) {
	t.Helper()
	blobs, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	enc, err := crypto.NewAESGCM("handler-test-app-key")
	require.NoError(t, err)
	files := storage.NewSecureStore(blobs, enc)

	deps := &ujian.Dependencies{KehadiranRepo: repo, Files: files, Grader: ujian.PlaceholderGrader{}}
	h := NewUjianHandler(ujian.NewSessionService(deps), nil, ujian.NewRaporExporter(deps))
	h.now = func() time.Time { return time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC) }
	return h, files
}

func raporFixture() []entity.ManajemenKehadiran {
	mapel := &entity.MataPelajaran{NamaMataPelajaran: "Matematika"}
	return []entity.ManajemenKehadiran{
		{
			ID:    1,
			Skor:  87.9,
			User:  &entity.User{FullName: "Siti Aminah", DataSiswa: &entity.DataSiswa{NISN: "0051234567"}},
			Ujian: &entity.BankSoal{NamaUjian: "UTS", Mapel: mapel},
		},
		{
			ID:    2,
			Skor:  42,
			User:  &entity.User{FullName: "=HYPERLINK(\"x\")"},
			Ujian: &entity.BankSoal{NamaUjian: "UTS", Mapel: mapel},
		},
	}
}

func TestUjianHandler_Export_XLSX(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	repo := &stubKehadiranRepo{rows: raporFixture()}
	h, _ := newTestUjianHandler(t, repo)
	r := gin.New()
	r.GET("/SuperAdmin/nilai/export", h.Export)

	// Act
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/SuperAdmin/nilai/export?mapel=%20mate%20", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="rapor_20260504_0930.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "mate", repo.lastFilter.NamaMapel)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(ujian.RaporSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Nama Siswa", "NISN", "Mata Pelajaran", "Nilai", "Predikat"}, rows[0])
	assert.Equal(t, []string{"Siti Aminah", "0051234567", "Matematika", "87", "B"}, rows[1])
	assert.Equal(t, "'=HYPERLINK(\"x\")", rows[2][0])
	assert.Equal(t, "-", rows[2][1])
}

func TestUjianHandler_Export_CSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newTestUjianHandler(t, &stubKehadiranRepo{rows: raporFixture()[:1]})
	r := gin.New()
	r.GET("/SuperAdmin/nilai/export", h.Export)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/SuperAdmin/nilai/export?format=CSV", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="rapor_20260504_0930.csv"`, w.Header().Get("Content-Disposition"))

	body := bytes.TrimPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF})
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Nama Siswa", "NISN", "Mata Pelajaran", "Nilai", "Predikat"},
		{"Siti Aminah", "0051234567", "Matematika", "87", "B"},
	}, records)
}

func TestUjianHandler_Export_UnsupportedFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newTestUjianHandler(t, &stubKehadiranRepo{})
	r := gin.New()
	r.GET("/SuperAdmin/nilai/export", h.Export)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/SuperAdmin/nilai/export?format=pdf", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUjianHandler_FileContent(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	repo := &stubKehadiranRepo{rows: []entity.ManajemenKehadiran{
		{ID: 5, JawabanFile: "7-3-1700000000000.opz"},
		{ID: 6},
	}}
	h, files := newTestUjianHandler(t, repo)
	require.NoError(t, files.Seal(storage.BucketJawaban, "7-3-1700000000000.opz", []byte(`[{"id":1,"soal":"2+2?","jawaban":"4"}]`)))

	r := gin.New()
	r.GET("/api/kehadiran/:id/file", middleware.ExtractUintParam("id", "id"), h.FileContent)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{"decrypted payload", "/api/kehadiran/5/file", http.StatusOK, `{"success":true,"data":[{"id":1,"soal":"2+2?","jawaban":"4"}]}`},
		{"row without answer file", "/api/kehadiran/6/file", http.StatusNotFound, `{"success":false,"message":"File soal tidak ditemukan"}`},
		{"unknown row", "/api/kehadiran/99/file", http.StatusNotFound, `{"success":false,"message":"File soal tidak ditemukan"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			// Assert
			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

// newStudentRouter serves h with a session store and student #7 logged in.
func newStudentRouter(h *UjianHandler) *gin.Engine {
	r := newSessionRouter()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUser, &entity.User{ID: 7, Role: entity.RoleSiswa})
		c.Next()
	})
	r.POST("/siswa/ujian/start", h.Start)
	r.POST("/siswa/ujian/:id/jawaban", middleware.ExtractUintParam("id", "id"), h.Submit)
	r.GET("/flash", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"flash": popFlash(c)})
	})
	return r
}

func readFlash(t *testing.T, r *gin.Engine, w *httptest.ResponseRecorder) string {
	t.Helper()
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	req := httptest.NewRequest(http.MethodGet, "/flash", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	fw := httptest.NewRecorder()
	r.ServeHTTP(fw, req)
	return fw.Body.String()
}

func TestUjianHandler_Start_DuplicateAttempt(t *testing.T) {
	repo := &stubKehadiranRepo{attempt: &entity.ManajemenKehadiran{ID: 11, UserID: 7, UjianID: 3}}
	form := url.Values{"ujianId": {"3"}}.Encode()

	t.Run("form post gets flash and redirect", func(t *testing.T) {
		// Arrange
		h, _ := newTestUjianHandler(t, repo)
		r := newStudentRouter(h)
		req := httptest.NewRequest(http.MethodPost, "/siswa/ujian/start", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Referer", "http://example.com/siswa/ujian?search=ipa")

		// Act
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		// Assert
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/siswa/ujian?search=ipa", w.Header().Get("Location"))
		assert.JSONEq(t, `{"flash":{"status":"error","message":"Anda sudah mengikuti ujian ini."}}`, readFlash(t, r, w))
	})

	t.Run("json client gets conflict", func(t *testing.T) {
		h, _ := newTestUjianHandler(t, repo)
		r := newStudentRouter(h)
		req := httptest.NewRequest(http.MethodPost, "/siswa/ujian/start", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already attempted")
	})
}

func TestUjianHandler_Submit_WithoutAttempt(t *testing.T) {
	body := `{"jawaban":[{"id":"1","jawaban":"B"}]}`

	t.Run("form client gets flash and fallback redirect", func(t *testing.T) {
		// Arrange
		h, _ := newTestUjianHandler(t, &stubKehadiranRepo{})
		r := newStudentRouter(h)
		req := httptest.NewRequest(http.MethodPost, "/siswa/ujian/3/jawaban", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		// Act
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		// Assert
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/siswa/ujian", w.Header().Get("Location"))
		assert.JSONEq(t, `{"flash":{"status":"error","message":"Gagal menyimpan jawaban"}}`, readFlash(t, r, w))
	})

	t.Run("json client gets not found", func(t *testing.T) {
		h, _ := newTestUjianHandler(t, &stubKehadiranRepo{})
		r := newStudentRouter(h)
		req := httptest.NewRequest(http.MethodPost, "/siswa/ujian/3/jawaban", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
