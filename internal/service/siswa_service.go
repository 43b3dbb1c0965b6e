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

// SiswaService manages students and their accounts
type SiswaService struct {
	siswaRepo repository.SiswaRepository
}

// NewSiswaService creates a new SiswaService
func NewSiswaService(siswaRepo repository.SiswaRepository) *SiswaService {
	return &SiswaService{siswaRepo: siswaRepo}
}

// List returns one page of students matching search
func (s *SiswaService) List(search string, page, pageSize int) (*dto.PaginatedResponse, error) {
	page, pageSize, offset := normalizePage(page, pageSize)
	items, total, err := s.siswaRepo.List(strings.TrimSpace(search), pageSize, offset)
	if err != nil {
		log.Printf("[SiswaService] Error listing students: %v", err)
		return nil, err
	}
	return dto.NewPaginatedResponse(items, total, page, pageSize), nil
}

// Get returns a student with its account
func (s *SiswaService) Get(id uint) (*entity.DataSiswa, error) {
	return s.siswaRepo.GetByID(id)
}

// Create adds a student and its Siswa account
func (s *SiswaService) Create(req *dto.SiswaRequest) (*entity.DataSiswa, error) {
	user, err := newUser(req.User, entity.RoleSiswa)
	if err != nil {
		return nil, err
	}
	siswa := &entity.DataSiswa{}
	if err := fillSiswa(siswa, req.Siswa); err != nil {
		return nil, err
	}
	if err := s.siswaRepo.CreateWithUser(user, siswa); err != nil {
		log.Printf("[SiswaService] Error creating student nisn=%s: %v", siswa.NISN, err)
		return nil, err
	}
	siswa.User = user
	return siswa, nil
}

// Update changes a student and its account
func (s *SiswaService) Update(id uint, req *dto.SiswaRequest) (*entity.DataSiswa, error) {
	siswa, err := s.siswaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if siswa.User == nil {
		return nil, fmt.Errorf("%w: student #%d has no account", apperrors.ErrNotFound, id)
	}
	if err := fillSiswa(siswa, req.Siswa); err != nil {
		return nil, err
	}
	applyUser(siswa.User, req.User)
	siswa.User.Role = entity.RoleSiswa

	if err := s.siswaRepo.UpdateWithUser(siswa.User, siswa); err != nil {
		log.Printf("[SiswaService] Error updating student #%d: %v", id, err)
		return nil, err
	}
	return siswa, nil
}

// Delete removes a student and its account
func (s *SiswaService) Delete(id uint) error {
	return s.siswaRepo.Delete(id)
}

func fillSiswa(st *entity.DataSiswa, in dto.SiswaInput) error {
	tgl, err := parseTanggal(in.TanggalLahir)
	if err != nil {
		return err
	}
	st.NISN = strings.TrimSpace(in.NISN)
	st.NIS = strings.TrimSpace(in.NIS)
	st.Alamat = in.Alamat
	st.NoTelepon = in.NoTelepon
	st.JenisKelamin = in.JenisKelamin
	st.TempatLahir = in.TempatLahir
	st.TanggalLahir = tgl
	st.Agama = in.Agama
	st.NamaWali = in.NamaWali
	return nil
}
