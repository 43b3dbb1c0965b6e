package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/sekolah-api/internal/handler/dto"
	"github.com/yourusername/sekolah-api/internal/handler/helper"
	"github.com/yourusername/sekolah-api/internal/middleware"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
	"github.com/yourusername/sekolah-api/internal/service/ujian"
)

// Attendance listing views
const (
	ViewManajemenKehadiran = "manajemen-kehadiran"
	ViewNilai              = "nilai"
	ViewUjian              = "ujian"
)

// UjianHandler handles exam attempts, attendance listings and report export
type UjianHandler struct {
	sessionService   *ujian.SessionService
	kehadiranService *ujian.KehadiranService
	exporter         *ujian.RaporExporter
	now              func() time.Time
}

// NewUjianHandler creates a new UjianHandler
func NewUjianHandler(
	sessionService *ujian.SessionService,
	kehadiranService *ujian.KehadiranService,
	exporter *ujian.RaporExporter,
) *UjianHandler {
	return &UjianHandler{
		sessionService:   sessionService,
		kehadiranService: kehadiranService,
		exporter:         exporter,
		now:              time.Now,
	}
}

// Index returns the attendance listing for view, scoped to the viewer's role
// GET /SuperAdmin/manajemen-kehadiran, /SuperAdmin/nilai, /guru/nilai
func (h *UjianHandler) Index(view string) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := viewerFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		in, err := listInput(c)
		if err != nil {
			handleError(c, "UjianHandler", err)
			return
		}

		page, err := h.kehadiranService.List(c.Request.Context(), viewer, in)
		if err != nil {
			handleError(c, "UjianHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"view":       view,
			"data":       page.Data,
			"meta":       page.Meta,
			"list_ujian": page.ListUjian,
			"filters":    gin.H{"search": in.Search, "ujian_id": in.UjianID},
		})
	}
}

// SiswaIndex returns every exam plus the student's own attempts
// GET /siswa/ujian
func (h *UjianHandler) SiswaIndex(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	in, err := listInput(c)
	if err != nil {
		handleError(c, "UjianHandler", err)
		return
	}

	listUjian, err := h.sessionService.ListUjian(c.Request.Context())
	if err != nil {
		handleError(c, "UjianHandler", err)
		return
	}
	page, err := h.kehadiranService.List(c.Request.Context(), viewer, in)
	if err != nil {
		handleError(c, "UjianHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"view":       ViewUjian,
		"data":       page.Data,
		"meta":       page.Meta,
		"list_ujian": listUjian,
		"filters":    gin.H{"search": in.Search},
	})
}

func listInput(c *gin.Context) (ujian.ListKehadiranInput, error) {
	page, _ := helper.QueryPage(c)
	ujianID, err := helper.OptionalUint(c.Query("ujian_id"))
	if err != nil {
		return ujian.ListKehadiranInput{}, err
	}
	return ujian.ListKehadiranInput{
		Page:    page,
		Search:  strings.TrimSpace(c.Query("search")),
		UjianID: ujianID,
	}, nil
}

// Start opens an attempt for the logged-in student
// POST /siswa/ujian/start
func (h *UjianHandler) Start(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req dto.StartUjianRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err, "/siswa/ujian")
		return
	}

	kehadiran, err := h.sessionService.Start(c.Request.Context(), viewer.UserID, req.UjianID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateAttempt) {
			failWithFlash(c, "UjianHandler", err, "Anda sudah mengikuti ujian ini.", "/siswa/ujian")
			return
		}
		log.Printf("[UjianHandler] Start failed for user #%d exam #%d: %v", viewer.UserID, req.UjianID, err)
		failWithFlash(c, "UjianHandler", err, "Gagal memulai ujian", "/siswa/ujian")
		return
	}

	target := fmt.Sprintf("/siswa/ujian/%d", req.UjianID)
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusCreated, gin.H{"status": flashSuccess, "message": "Ujian berhasil dimulai!", "data": kehadiran, "redirect": target})
		return
	}
	setFlash(c, flashSuccess, "Ujian berhasil dimulai!")
	c.Redirect(http.StatusFound, target)
}

// Blank returns the empty answer sheet of an exam
// GET /siswa/ujian/:id
func (h *UjianHandler) Blank(c *gin.Context) {
	items, err := h.sessionService.BlankAnswers(c.Request.Context(), middleware.UintParam(c, "id"))
	if err != nil {
		handleError(c, "UjianHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ujian_id": middleware.UintParam(c, "id"), "jawaban": items})
}

// Submit stores the answers of the logged-in student's attempt
// POST /siswa/ujian/:id/jawaban
func (h *UjianHandler) Submit(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req dto.SubmitJawabanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "/siswa/ujian")
		return
	}

	ujianID := middleware.UintParam(c, "id")
	kehadiran, err := h.sessionService.Submit(c.Request.Context(), viewer.UserID, ujianID, req.Jawaban)
	if err != nil {
		log.Printf("[UjianHandler] Submit failed for user #%d exam #%d: %v", viewer.UserID, ujianID, err)
		failWithFlash(c, "UjianHandler", err, "Gagal menyimpan jawaban", "/siswa/ujian")
		return
	}
	respond(c, http.StatusOK, flashSuccess, "Jawaban berhasil disimpan!", kehadiran, "/siswa/ujian")
}

// Preview returns the student's answers to the selected questions
// GET /siswa/kehadiran/:id/preview
func (h *UjianHandler) Preview(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	result, err := h.sessionService.Preview(c.Request.Context(), viewer.UserID, middleware.UintParam(c, "id"))
	if err != nil {
		handleError(c, "UjianHandler", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FileContent returns the decrypted answer payload of an attempt
// GET /api/kehadiran/:id/file
func (h *UjianHandler) FileContent(c *gin.Context) {
	raw, err := h.sessionService.FileContent(c.Request.Context(), middleware.UintParam(c, "id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrFileMissing) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "File soal tidak ditemukan"})
			return
		}
		log.Printf("[UjianHandler] Failed to read answer file of kehadiran #%d: %v", middleware.UintParam(c, "id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Gagal membaca file soal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": raw})
}

// Export downloads the grade report
// GET /SuperAdmin/nilai/export?mapel=&format=xlsx|csv
func (h *UjianHandler) Export(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	if format != "xlsx" && format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format. Use 'csv' or 'xlsx'"})
		return
	}

	rows, err := h.exporter.Rows(c.Request.Context(), strings.TrimSpace(c.Query("mapel")))
	if err != nil {
		handleError(c, "UjianHandler", err)
		return
	}

	// Render fully before writing headers so a failure can still return 500.
	var buf bytes.Buffer
	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if format == "csv" {
		contentType = "text/csv; charset=utf-8"
		err = ujian.WriteCSV(&buf, rows)
	} else {
		err = ujian.WriteXLSX(&buf, rows)
	}
	if err != nil {
		log.Printf("[UjianHandler] Failed to render rapor (%s): %v", format, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	filename := fmt.Sprintf("rapor_%s.%s", h.now().Format("20060102_1504"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
