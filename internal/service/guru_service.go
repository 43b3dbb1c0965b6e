package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/domain/repository"
	"github.com/yourusername/sekolah-api/internal/handler/dto"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
)

// GuruService manages teachers and their accounts
type GuruService struct {
	guruRepo repository.GuruRepository
}

// NewGuruService creates a new GuruService
func NewGuruService(guruRepo repository.GuruRepository) *GuruService {
	return &GuruService{guruRepo: guruRepo}
}

// List returns one page of teachers matching search
func (s *GuruService) List(search string, page, pageSize int) (*dto.PaginatedResponse, error) {
	page, pageSize, offset := normalizePage(page, pageSize)
	items, total, err := s.guruRepo.List(strings.TrimSpace(search), pageSize, offset)
	if err != nil {
		log.Printf("[GuruService] Error listing teachers: %v", err)
		return nil, err
	}
	return dto.NewPaginatedResponse(items, total, page, pageSize), nil
}

// Get returns a teacher with its account
func (s *GuruService) Get(id uint) (*entity.DataGuru, error) {
	return s.guruRepo.GetByID(id)
}

// Create adds a teacher and its Guru account
func (s *GuruService) Create(req *dto.GuruRequest) (*entity.DataGuru, error) {
	user, err := newUser(req.User, entity.RoleGuru)
	if err != nil {
		return nil, err
	}
	guru := &entity.DataGuru{}
	if err := fillGuru(guru, req.Guru); err != nil {
		return nil, err
	}
	if err := s.guruRepo.CreateWithUser(user, guru); err != nil {
		log.Printf("[GuruService] Error creating teacher nip=%s: %v", guru.NIP, err)
		return nil, err
	}
	guru.User = user
	return guru, nil
}

// Update changes a teacher and its account
func (s *GuruService) Update(id uint, req *dto.GuruRequest) (*entity.DataGuru, error) {
	guru, err := s.guruRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if guru.User == nil {
		return nil, fmt.Errorf("%w: teacher #%d has no account", apperrors.ErrNotFound, id)
	}
	if err := fillGuru(guru, req.Guru); err != nil {
		return nil, err
	}
	applyUser(guru.User, req.User)
	guru.User.Role = entity.RoleGuru

	if err := s.guruRepo.UpdateWithUser(guru.User, guru); err != nil {
		log.Printf("[GuruService] Error updating teacher #%d: %v", id, err)
		return nil, err
	}
	return guru, nil
}

// Delete removes a teacher and its account
func (s *GuruService) Delete(id uint) error {
	return s.guruRepo.Delete(id)
}

func fillGuru(g *entity.DataGuru, in dto.ProfilInput) error {
	tgl, err := parseTanggal(in.TanggalLahir)
	if err != nil {
		return err
	}
	g.NIP = strings.TrimSpace(in.NIP)
	g.Alamat = in.Alamat
	g.NoTelepon = in.NoTelepon
	g.GelarDepan = in.GelarDepan
	g.GelarBelakang = in.GelarBelakang
	g.JenisKelamin = in.JenisKelamin
	g.TempatLahir = in.TempatLahir
	g.TanggalLahir = tgl
	g.Agama = in.Agama
	return nil
}
