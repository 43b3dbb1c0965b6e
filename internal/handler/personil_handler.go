package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/sekolah-api/internal/handler/dto"
	"github.com/yourusername/sekolah-api/internal/handler/helper"
	"github.com/yourusername/sekolah-api/internal/middleware"
	"github.com/yourusername/sekolah-api/internal/service"
)

// GuruHandler handles teachers CRUD
type GuruHandler struct {
	guruService *service.GuruService
}

// NewGuruHandler creates a new GuruHandler
func NewGuruHandler(guruService *service.GuruService) *GuruHandler {
	return &GuruHandler{guruService: guruService}
}

// List returns one page of teachers
// GET /SuperAdmin/data-guru?search=&page=
func (h *GuruHandler) List(c *gin.Context) {
	page, perPage := helper.QueryPage(c)
	resp, err := h.guruService.List(c.Query("search"), page, perPage)
	if err != nil {
		handleError(c, "GuruHandler", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one teacher
// GET /SuperAdmin/data-guru/:id
func (h *GuruHandler) Get(c *gin.Context) {
	item, err := h.guruService.Get(middleware.UintParam(c, "id"))
	if err != nil {
		handleError(c, "GuruHandler", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create adds a teacher
// POST /SuperAdmin/data-guru
func (h *GuruHandler) Create(c *gin.Context) {
	var req dto.GuruRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "/SuperAdmin/data-guru")
		return
	}
	item, err := h.guruService.Create(&req)
	if err != nil {
		failWithFlash(c, "GuruHandler", err, "Gagal menambahkan data guru", "/SuperAdmin/data-guru")
		return
	}
	respond(c, http.StatusCreated, flashSuccess, "Data guru berhasil ditambahkan", item, "/SuperAdmin/data-guru")
}

// Update changes a teacher
// PUT /SuperAdmin/data-guru/:id
func (h *GuruHandler) Update(c *gin.Context) {
	var req dto.GuruRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "/SuperAdmin/data-guru")
		return
	}
	item, err := h.guruService.Update(middleware.UintParam(c, "id"), &req)
	if err != nil {
		failWithFlash(c, "GuruHandler", err, "Gagal memperbarui data guru", "/SuperAdmin/data-guru")
		return
	}
	respond(c, http.StatusOK, flashSuccess, "Data guru berhasil diperbarui", item, "/SuperAdmin/data-guru")
}

// Delete removes a teacher
// DELETE /SuperAdmin/data-guru/:id
func (h *GuruHandler) Delete(c *gin.Context) {
	if err := h.guruService.Delete(middleware.UintParam(c, "id")); err != nil {
		failWithFlash(c, "GuruHandler", err, "Gagal menghapus data guru", "/SuperAdmin/data-guru")
		return
	}
	respond(c, http.StatusOK, flashSuccess, "Data guru berhasil dihapus", nil, "/SuperAdmin/data-guru")
}

// StafHandler handles staff CRUD
type StafHandler struct {
	stafService *service.StafService
}

// NewStafHandler creates a new StafHandler
func NewStafHandler(stafService *service.StafService) *StafHandler {
	return &StafHandler{stafService: stafService}
}

// List returns one page of staff
// GET /SuperAdmin/data-staf?search=&page=
func (h *StafHandler) List(c *gin.Context) {
	page, perPage := helper.QueryPage(c)
	resp, err := h.stafService.List(c.Query("search"), page, perPage)
	if err != nil {
		handleError(c, "StafHandler", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one staff member
// GET /SuperAdmin/data-staf/:id
func (h *StafHandler) Get(c *gin.Context) {
	item, err := h.stafService.Get(middleware.UintParam(c, "id"))
	if err != nil {
		handleError(c, "StafHandler", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create adds a staff member
// POST /SuperAdmin/data-staf
func (h *StafHandler) Create(c *gin.Context) {
	var req dto.StafRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "/SuperAdmin/data-staf")
		return
	}
	item, err := h.stafService.Create(&req)
	if err != nil {
		failWithFlash(c, "StafHandler", err, "Gagal menambahkan data staf", "/SuperAdmin/data-staf")
		return
	}
	respond(c, http.StatusCreated, flashSuccess, "Data staf berhasil ditambahkan", item, "/SuperAdmin/data-staf")
}

// Update changes a staff member
// PUT /SuperAdmin/data-staf/:id
func (h *StafHandler) Update(c *gin.Context) {
	var req dto.StafRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "/SuperAdmin/data-staf")
		return
	}
	item, err := h.stafService.Update(middleware.UintParam(c, "id"), &req)
	if err != nil {
		failWithFlash(c, "StafHandler", err, "Gagal memperbarui data staf", "/SuperAdmin/data-staf")
		return
	}
	respond(c, http.StatusOK, flashSuccess, "Data staf berhasil diperbarui", item, "/SuperAdmin/data-staf")
}

// Delete removes a staff member
// DELETE /SuperAdmin/data-staf/:id
func (h *StafHandler) Delete(c *gin.Context) {
	if err := h.stafService.Delete(middleware.UintParam(c, "id")); err != nil {
		failWithFlash(c, "StafHandler", err, "Gagal menghapus data staf", "/SuperAdmin/data-staf")
		return
	}
	respond(c, http.StatusOK, flashSuccess, "Data staf berhasil dihapus", nil, "/SuperAdmin/data-staf")
}

// SiswaHandler handles students CRUD
type SiswaHandler struct {
	siswaService *service.SiswaService
}

// NewSiswaHandler creates a new SiswaHandler
func NewSiswaHandler(siswaService *service.SiswaService) *SiswaHandler {
	return &SiswaHandler{siswaService: siswaService}
}

// List returns one page of students
// GET /SuperAdmin/data-siswa?search=&page=
func (h *SiswaHandler) List(c *gin.Context) {
	page, perPage := helper.QueryPage(c)
	resp, err := h.siswaService.List(c.Query("search"), page, perPage)
	if err != nil {
		handleError(c, "SiswaHandler", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one student
// GET /SuperAdmin/data-siswa/:id
func (h *SiswaHandler) Get(c *gin.Context) {
	item, err := h.siswaService.Get(middleware.UintParam(c, "id"))
	if err != nil {
		handleError(c, "SiswaHandler", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create adds a student
// POST /SuperAdmin/data-siswa
func (h *SiswaHandler) Create(c *gin.Context) {
	var req dto.SiswaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "/SuperAdmin/data-siswa")
		return
	}
	item, err := h.siswaService.Create(&req)
	if err != nil {
		failWithFlash(c, "SiswaHandler", err, "Gagal menambahkan data siswa", "/SuperAdmin/data-siswa")
		return
	}
	respond(c, http.StatusCreated, flashSuccess, "Data siswa berhasil ditambahkan", item, "/SuperAdmin/data-siswa")
}

// Update changes a student
// PUT /SuperAdmin/data-siswa/:id
func (h *SiswaHandler) Update(c *gin.Context) {
	var req dto.SiswaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "/SuperAdmin/data-siswa")
		return
	}
	item, err := h.siswaService.Update(middleware.UintParam(c, "id"), &req)
	if err != nil {
		failWithFlash(c, "SiswaHandler", err, "Gagal memperbarui data siswa", "/SuperAdmin/data-siswa")
		return
	}
	respond(c, http.StatusOK, flashSuccess, "Data siswa berhasil diperbarui", item, "/SuperAdmin/data-siswa")
}

// Delete removes a student
// DELETE /SuperAdmin/data-siswa/:id
func (h *SiswaHandler) Delete(c *gin.Context) {
	if err := h.siswaService.Delete(middleware.UintParam(c, "id")); err != nil {
		failWithFlash(c, "SiswaHandler", err, "Gagal menghapus data siswa", "/SuperAdmin/data-siswa")
		return
	}
	respond(c, http.StatusOK, flashSuccess, "Data siswa berhasil dihapus", nil, "/SuperAdmin/data-siswa")
}
