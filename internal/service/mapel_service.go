package service

import (
	"log"
	"strings"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/domain/repository"
	"github.com/yourusername/sekolah-api/internal/handler/dto"
)

// MapelService manages subjects
type MapelService struct {
	mapelRepo repository.MapelRepository
}

// NewMapelService creates a new MapelService
func NewMapelService(mapelRepo repository.MapelRepository) *MapelService {
	return &MapelService{mapelRepo: mapelRepo}
}

// List returns one page of subjects matching search
func (s *MapelService) List(search string, page, pageSize int) (*dto.PaginatedResponse, error) {
	page, pageSize, offset := normalizePage(page, pageSize)
	items, total, err := s.mapelRepo.List(strings.TrimSpace(search), pageSize, offset)
	if err != nil {
		log.Printf("[MapelService] Error listing subjects: %v", err)
		return nil, err
	}
	return dto.NewPaginatedResponse(items, total, page, pageSize), nil
}

// Get returns a subject
func (s *MapelService) Get(id uint) (*entity.MataPelajaran, error) {
	return s.mapelRepo.GetByID(id)
}

// Create adds a subject
func (s *MapelService) Create(req *dto.MapelRequest) (*entity.MataPelajaran, error) {
	mapel := &entity.MataPelajaran{
		NamaMataPelajaran: strings.TrimSpace(req.NamaMataPelajaran),
		Jenjang:           req.Jenjang,
		Deskripsi:         req.Deskripsi,
	}
	if err := s.mapelRepo.Create(mapel); err != nil {
		log.Printf("[MapelService] Error creating subject %s: %v", mapel.NamaMataPelajaran, err)
		return nil, err
	}
	return mapel, nil
}

// Update changes a subject
func (s *MapelService) Update(id uint, req *dto.MapelRequest) (*entity.MataPelajaran, error) {
	mapel, err := s.mapelRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	mapel.NamaMataPelajaran = strings.TrimSpace(req.NamaMataPelajaran)
	mapel.Jenjang = req.Jenjang
	mapel.Deskripsi = req.Deskripsi
	if err := s.mapelRepo.Update(mapel); err != nil {
		return nil, err
	}
	return mapel, nil
}

// Delete removes a subject
func (s *MapelService) Delete(id uint) error {
	return s.mapelRepo.Delete(id)
}
