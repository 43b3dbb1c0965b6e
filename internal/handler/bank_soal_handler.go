package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/sekolah-api/internal/handler/dto"
	"github.com/yourusername/sekolah-api/internal/handler/helper"
	"github.com/yourusername/sekolah-api/internal/middleware"
	"github.com/yourusername/sekolah-api/internal/service/ujian"
)

// BankSoalHandler handles exam definitions and their question files
type BankSoalHandler struct {
	bankSoalService *ujian.BankSoalService
}

// NewBankSoalHandler creates a new BankSoalHandler
func NewBankSoalHandler(bankSoalService *ujian.BankSoalService) *BankSoalHandler {
	return &BankSoalHandler{bankSoalService: bankSoalService}
}

// viewerFrom returns the logged-in user as an exam-service viewer
func viewerFrom(c *gin.Context) (ujian.Viewer, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return ujian.Viewer{}, false
	}
	return ujian.Viewer{UserID: user.ID, Role: user.Role}, true
}

// sectionPath is path under the logged-in user's dashboard
func sectionPath(c *gin.Context, path string) string {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return "/login"
	}
	return user.HomePath() + path
}

// List returns one page of exams
// GET /SuperAdmin/bank-soal, /guru/bank-soal
func (h *BankSoalHandler) List(c *gin.Context) {
	page, perPage := helper.QueryPage(c)
	items, meta, err := h.bankSoalService.List(c.Request.Context(), c.Query("search"), page, perPage)
	if err != nil {
		handleError(c, "BankSoalHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "meta": meta})
}

// Get returns an exam with its questions
// GET .../bank-soal/:id
func (h *BankSoalHandler) Get(c *gin.Context) {
	detail, err := h.bankSoalService.Get(c.Request.Context(), middleware.UintParam(c, "id"))
	if err != nil {
		handleError(c, "BankSoalHandler", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Create adds an exam
// POST .../bank-soal
func (h *BankSoalHandler) Create(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req dto.BankSoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, sectionPath(c, "/bank-soal"))
		return
	}
	bank, err := h.bankSoalService.Create(c.Request.Context(), viewer, req.ToInput())
	if err != nil {
		failWithFlash(c, "BankSoalHandler", err, "Gagal menyimpan bank soal", sectionPath(c, "/bank-soal"))
		return
	}
	respond(c, http.StatusCreated, flashSuccess, "Bank soal berhasil disimpan", bank, sectionPath(c, "/bank-soal"))
}

// Update changes an exam
// PUT .../bank-soal/:id
func (h *BankSoalHandler) Update(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req dto.BankSoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, sectionPath(c, "/bank-soal"))
		return
	}
	bank, err := h.bankSoalService.Update(c.Request.Context(), viewer, middleware.UintParam(c, "id"), req.ToInput())
	if err != nil {
		failWithFlash(c, "BankSoalHandler", err, "Gagal memperbarui bank soal", sectionPath(c, "/bank-soal"))
		return
	}
	respond(c, http.StatusOK, flashSuccess, "Bank soal berhasil diperbarui", bank, sectionPath(c, "/bank-soal"))
}

// Delete removes an exam
// DELETE .../bank-soal/:id
func (h *BankSoalHandler) Delete(c *gin.Context) {
	viewer, ok := viewerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.bankSoalService.Delete(c.Request.Context(), viewer, middleware.UintParam(c, "id")); err != nil {
		failWithFlash(c, "BankSoalHandler", err, "Gagal menghapus bank soal", sectionPath(c, "/bank-soal"))
		return
	}
	respond(c, http.StatusOK, flashSuccess, "Bank soal berhasil dihapus", nil, sectionPath(c, "/bank-soal"))
}
