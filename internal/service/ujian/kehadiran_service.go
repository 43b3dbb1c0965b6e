package ujian

import (
	"context"
	"errors"
	"log"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/domain/repository"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
)

// Viewer is the logged-in user a listing is scoped to
type Viewer struct {
	UserID uint
	Role   string
}

// ListKehadiranInput holds the query parameters of an attendance listing
type ListKehadiranInput struct {
	Page   int
	Search string
	// UjianID narrows to one exam (the nama_ujian select)
	UjianID *uint
}

// PageMeta describes a page of results
type PageMeta struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
}

// KehadiranPage is one page of attendance rows with stats
type KehadiranPage struct {
	Data      []KehadiranView   `json:"data"`
	Meta      PageMeta          `json:"meta"`
	ListUjian []entity.BankSoal `json:"list_ujian"`
}

// KehadiranService lists attendance rows scoped to the viewer's role
type KehadiranService struct {
	deps       *Dependencies
	aggregator *Aggregator
}

// NewKehadiranService creates a new KehadiranService
func NewKehadiranService(deps *Dependencies, aggregator *Aggregator) *KehadiranService {
	if deps.Config == nil {
		deps.Config = DefaultConfig()
	}
	deps.Config.normalize()
	return &KehadiranService{deps: deps, aggregator: aggregator}
}

// List returns a page of attendance rows with stats.
// Admins see every row. A Guru sees the students of the classes they teach
// and the exams they wrote. A Siswa sees their own attempts and searches by
// exam name instead of student name.
// With a search term the whole result fits on one page.
func (s *KehadiranService) List(ctx context.Context, viewer Viewer, in ListKehadiranInput) (*KehadiranPage, error) {
	scope, listUjian, err := s.scope(ctx, viewer)
	if err != nil {
		return nil, err
	}

	filter := scope
	filter.UjianID = in.UjianID
	if in.Search != "" {
		if viewer.Role == entity.RoleSiswa {
			filter.NamaUjian = in.Search
		} else {
			filter.NamaSiswa = in.Search
		}
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	perPage := s.deps.Config.PerPage
	if in.Search != "" {
		total, err := s.deps.KehadiranRepo.Count(ctx, scope)
		if err != nil {
			return nil, err
		}
		perPage = max(int(total), 1)
	}

	rows, total, err := s.deps.KehadiranRepo.List(ctx, filter, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return &KehadiranPage{
		Data: s.aggregator.Views(ctx, rows),
		Meta: PageMeta{
			Total:       total,
			PerPage:     perPage,
			CurrentPage: page,
			LastPage:    lastPage,
		},
		ListUjian: listUjian,
	}, nil
}

func (s *KehadiranService) scope(ctx context.Context, viewer Viewer) (repository.KehadiranFilter, []entity.BankSoal, error) {
	switch viewer.Role {
	case entity.RoleSuperAdmin, entity.RoleStaf:
		list, err := s.deps.BankSoalRepo.ListAll(ctx)
		return repository.KehadiranFilter{}, list, err

	case entity.RoleGuru:
		nisn, err := s.nisnDiampu(viewer.UserID)
		if err != nil {
			return repository.KehadiranFilter{}, nil, err
		}
		list, err := s.deps.BankSoalRepo.ListByPenulis(ctx, viewer.UserID)
		return repository.KehadiranFilter{ScopeNISN: true, NISN: nisn}, list, err

	case entity.RoleSiswa:
		userID := viewer.UserID
		return repository.KehadiranFilter{UserID: &userID}, nil, nil
	}
	return repository.KehadiranFilter{}, nil, apperrors.ErrForbidden
}

// nisnDiampu collects the NISNs of every class the teacher is assigned to.
// A class with a broken siswa list is skipped.
func (s *KehadiranService) nisnDiampu(userID uint) ([]string, error) {
	guru, err := s.deps.GuruRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	kelas, err := s.deps.KelasRepo.FindByGuruPengampu(guru.NIP)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	nisn := make([]string, 0)
	for i := range kelas {
		list, err := kelas[i].SiswaList()
		if err != nil {
			log.Printf("[KehadiranService] Error parsing siswa data for kelas #%d: %v", kelas[i].ID, err)
			continue
		}
		for _, n := range list {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			nisn = append(nisn, n)
		}
	}
	return nisn, nil
}
