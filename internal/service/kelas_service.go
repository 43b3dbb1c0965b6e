package service

import (
	"log"
	"strings"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/domain/repository"
	"github.com/yourusername/sekolah-api/internal/handler/dto"
)

// KelasService manages classes
type KelasService struct {
	kelasRepo repository.KelasRepository
}

// NewKelasService creates a new KelasService
func NewKelasService(kelasRepo repository.KelasRepository) *KelasService {
	return &KelasService{kelasRepo: kelasRepo}
}

// List returns one page of classes matching search
func (s *KelasService) List(search string, page, pageSize int) (*dto.PaginatedResponse, error) {
	page, pageSize, offset := normalizePage(page, pageSize)
	items, total, err := s.kelasRepo.List(strings.TrimSpace(search), pageSize, offset)
	if err != nil {
		log.Printf("[KelasService] Error listing classes: %v", err)
		return nil, err
	}
	return dto.NewPaginatedResponse(items, total, page, pageSize), nil
}

// Get returns a class
func (s *KelasService) Get(id uint) (*entity.DataKelas, error) {
	return s.kelasRepo.GetByID(id)
}

// Create adds a class
func (s *KelasService) Create(req *dto.KelasRequest) (*entity.DataKelas, error) {
	kelas := &entity.DataKelas{}
	fillKelas(kelas, req)
	if err := s.kelasRepo.Create(kelas); err != nil {
		log.Printf("[KelasService] Error creating class %s: %v", kelas.NamaKelas, err)
		return nil, err
	}
	return kelas, nil
}

// Update changes a class
func (s *KelasService) Update(id uint, req *dto.KelasRequest) (*entity.DataKelas, error) {
	kelas, err := s.kelasRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	fillKelas(kelas, req)
	if err := s.kelasRepo.Update(kelas); err != nil {
		log.Printf("[KelasService] Error updating class #%d: %v", id, err)
		return nil, err
	}
	return kelas, nil
}

// Delete removes a class
func (s *KelasService) Delete(id uint) error {
	return s.kelasRepo.Delete(id)
}

func fillKelas(k *entity.DataKelas, req *dto.KelasRequest) {
	k.NamaKelas = strings.TrimSpace(req.NamaKelas)
	k.Jenjang = req.Jenjang
	k.WaliKelas = strings.TrimSpace(req.WaliKelas)
	k.SetGuruPengampu(uniqueTrimmed(req.GuruPengampu))
	k.SetSiswa(uniqueTrimmed(req.Siswa))
}

// uniqueTrimmed trims values and drops blanks and repeats, keeping order
func uniqueTrimmed(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
