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

// StafService manages staff members and their accounts
type StafService struct {
	stafRepo repository.StafRepository
}

// NewStafService creates a new StafService
func NewStafService(stafRepo repository.StafRepository) *StafService {
	return &StafService{stafRepo: stafRepo}
}

// List returns one page of staff matching search
func (s *StafService) List(search string, page, pageSize int) (*dto.PaginatedResponse, error) {
	page, pageSize, offset := normalizePage(page, pageSize)
	items, total, err := s.stafRepo.List(strings.TrimSpace(search), pageSize, offset)
	if err != nil {
		log.Printf("[StafService] Error listing staff: %v", err)
		return nil, err
	}
	return dto.NewPaginatedResponse(items, total, page, pageSize), nil
}

// Get returns a staff member with its account
func (s *StafService) Get(id uint) (*entity.DataStaf, error) {
	return s.stafRepo.GetByID(id)
}

// Create adds a staff member and its Staf account
func (s *StafService) Create(req *dto.StafRequest) (*entity.DataStaf, error) {
	user, err := newUser(req.User, entity.RoleStaf)
	if err != nil {
		return nil, err
	}
	staf := &entity.DataStaf{}
	if err := fillStaf(staf, req.Staf); err != nil {
		return nil, err
	}
	if err := s.stafRepo.CreateWithUser(user, staf); err != nil {
		log.Printf("[StafService] Error creating staff nip=%s: %v", staf.NIP, err)
		return nil, err
	}
	staf.User = user
	return staf, nil
}

// Update changes a staff member and its account
func (s *StafService) Update(id uint, req *dto.StafRequest) (*entity.DataStaf, error) {
	staf, err := s.stafRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if staf.User == nil {
		return nil, fmt.Errorf("%w: staff #%d has no account", apperrors.ErrNotFound, id)
	}
	if err := fillStaf(staf, req.Staf); err != nil {
		return nil, err
	}
	applyUser(staf.User, req.User)
	staf.User.Role = entity.RoleStaf

	if err := s.stafRepo.UpdateWithUser(staf.User, staf); err != nil {
		log.Printf("[StafService] Error updating staff #%d: %v", id, err)
		return nil, err
	}
	return staf, nil
}

// Delete removes a staff member and its account
func (s *StafService) Delete(id uint) error {
	return s.stafRepo.Delete(id)
}

func fillStaf(st *entity.DataStaf, in dto.StafInput) error {
	tgl, err := parseTanggal(in.TanggalLahir)
	if err != nil {
		return err
	}
	st.NIP = strings.TrimSpace(in.NIP)
	st.Departemen = in.Departemen
	st.Jabatan = in.Jabatan
	st.Alamat = in.Alamat
	st.NoTelepon = in.NoTelepon
	st.GelarDepan = in.GelarDepan
	st.GelarBelakang = in.GelarBelakang
	st.JenisKelamin = in.JenisKelamin
	st.TempatLahir = in.TempatLahir
	st.TanggalLahir = tgl
	st.Agama = in.Agama
	return nil
}
