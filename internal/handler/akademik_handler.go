package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/sekolah-api/internal/handler/dto"
	"github.com/yourusername/sekolah-api/internal/handler/helper"
	"github.com/yourusername/sekolah-api/internal/middleware"
	"github.com/yourusername/sekolah-api/internal/service"
)

// KelasHandler handles classes CRUD
type KelasHandler struct {
	kelasService *service.KelasService
}

// NewKelasHandler creates a new KelasHandler
func NewKelasHandler(kelasService *service.KelasService) *KelasHandler {
	return &KelasHandler{kelasService: kelasService}
}

// List returns one page of classes
// GET /SuperAdmin/data-kelas?search=&page=
func (h *KelasHandler) List(c *gin.Context) {
	page, perPage := helper.QueryPage(c)
	resp, err := h.kelasService.List(c.Query("search"), page, perPage)
	if err != nil {
		handleError(c, "KelasHandler", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one class
// GET /SuperAdmin/data-kelas/:id
func (h *KelasHandler) Get(c *gin.Context) {
	item, err := h.kelasService.Get(middleware.UintParam(c, "id"))
	if err != nil {
		handleError(c, "KelasHandler", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create adds a class
// POST /SuperAdmin/data-kelas
func (h *KelasHandler) Create(c *gin.Context) {
	var req dto.KelasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "/SuperAdmin/data-kelas")
		return
	}
	item, err := h.kelasService.Create(&req)
	if err != nil {
		failWithFlash(c, "KelasHandler", err, "Gagal menambahkan data kelas", "/SuperAdmin/data-kelas")
		return
	}
	respond(c, http.StatusCreated, flashSuccess, "Data kelas berhasil ditambahkan", item, "/SuperAdmin/data-kelas")
}

// Update changes a class
// PUT /SuperAdmin/data-kelas/:id
func (h *KelasHandler) Update(c *gin.Context) {
	var req dto.KelasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "/SuperAdmin/data-kelas")
		return
	}
	item, err := h.kelasService.Update(middleware.UintParam(c, "id"), &req)
	if err != nil {
		failWithFlash(c, "KelasHandler", err, "Gagal memperbarui data kelas", "/SuperAdmin/data-kelas")
		return
	}
	respond(c, http.StatusOK, flashSuccess, "Data kelas berhasil diperbarui", item, "/SuperAdmin/data-kelas")
}

// Delete removes a class
// DELETE /SuperAdmin/data-kelas/:id
func (h *KelasHandler) Delete(c *gin.Context) {
	if err := h.kelasService.Delete(middleware.UintParam(c, "id")); err != nil {
		failWithFlash(c, "KelasHandler", err, "Gagal menghapus data kelas", "/SuperAdmin/data-kelas")
		return
	}
	respond(c, http.StatusOK, flashSuccess, "Data kelas berhasil dihapus", nil, "/SuperAdmin/data-kelas")
}

// MapelHandler handles subjects CRUD
type MapelHandler struct {
	mapelService *service.MapelService
}

// NewMapelHandler creates a new MapelHandler
func NewMapelHandler(mapelService *service.MapelService) *MapelHandler {
	return &MapelHandler{mapelService: mapelService}
}

// List returns one page of subjects
// GET /SuperAdmin/mata-pelajaran?search=&page=
func (h *MapelHandler) List(c *gin.Context) {
	page, perPage := helper.QueryPage(c)
	resp, err := h.mapelService.List(c.Query("search"), page, perPage)
	if err != nil {
		handleError(c, "MapelHandler", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one subject
// GET /SuperAdmin/mata-pelajaran/:id
func (h *MapelHandler) Get(c *gin.Context) {
	item, err := h.mapelService.Get(middleware.UintParam(c, "id"))
	if err != nil {
		handleError(c, "MapelHandler", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create adds a subject
// POST /SuperAdmin/mata-pelajaran
func (h *MapelHandler) Create(c *gin.Context) {
	var req dto.MapelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "/SuperAdmin/mata-pelajaran")
		return
	}
	item, err := h.mapelService.Create(&req)
	if err != nil {
		failWithFlash(c, "MapelHandler", err, "Gagal menambahkan mata pelajaran", "/SuperAdmin/mata-pelajaran")
		return
	}
	respond(c, http.StatusCreated, flashSuccess, "Mata pelajaran berhasil ditambahkan", item, "/SuperAdmin/mata-pelajaran")
}

// Update changes a subject
// PUT /SuperAdmin/mata-pelajaran/:id
func (h *MapelHandler) Update(c *gin.Context) {
	var req dto.MapelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "/SuperAdmin/mata-pelajaran")
		return
	}
	item, err := h.mapelService.Update(middleware.UintParam(c, "id"), &req)
	if err != nil {
		failWithFlash(c, "MapelHandler", err, "Gagal memperbarui mata pelajaran", "/SuperAdmin/mata-pelajaran")
		return
	}
	respond(c, http.StatusOK, flashSuccess, "Mata pelajaran berhasil diperbarui", item, "/SuperAdmin/mata-pelajaran")
}

// Delete removes a subject
// DELETE /SuperAdmin/mata-pelajaran/:id
func (h *MapelHandler) Delete(c *gin.Context) {
	if err := h.mapelService.Delete(middleware.UintParam(c, "id")); err != nil {
		failWithFlash(c, "MapelHandler", err, "Gagal menghapus mata pelajaran", "/SuperAdmin/mata-pelajaran")
		return
	}
	respond(c, http.StatusOK, flashSuccess, "Mata pelajaran berhasil dihapus", nil, "/SuperAdmin/mata-pelajaran")
}
