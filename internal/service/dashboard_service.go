package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/domain/repository"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
)

const defaultDashboardTTL = time.Minute

// DashboardRepos are the repositories the dashboards count from
type DashboardRepos struct {
	User      repository.UserRepository
	Guru      repository.GuruRepository
	Siswa     repository.SiswaRepository
	Staf      repository.StafRepository
	Kelas     repository.KelasRepository
	Mapel     repository.MapelRepository
	BankSoal  repository.BankSoalRepository
	Kehadiran repository.KehadiranRepository
}

// DashboardSummary holds the counters of one role's dashboard
type DashboardSummary struct {
	Role     string           `json:"role"`
	Counts   map[string]int64 `json:"counts"`
	CachedAt time.Time        `json:"cached_at"`
}

// DashboardService builds per-role dashboard counters, cached for a short TTL
type DashboardService struct {
	repos     DashboardRepos
	cacheRepo repository.CacheRepository
	ttl       time.Duration
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService. cacheRepo may be nil.
func NewDashboardService(repos DashboardRepos, cacheRepo repository.CacheRepository, ttl time.Duration) *DashboardService {
	if ttl <= 0 {
		ttl = defaultDashboardTTL
	}
	return &DashboardService{repos: repos, cacheRepo: cacheRepo, ttl: ttl, now: time.Now}
}

func dashboardKey(role string, userID uint) string {
	if role == entity.RoleSuperAdmin || role == entity.RoleStaf {
		return fmt.Sprintf("dashboard:%s", role)
	}
	return fmt.Sprintf("dashboard:%s:%d", role, userID)
}

// Summary returns the dashboard counters of user
func (s *DashboardService) Summary(ctx context.Context, user *entity.User) (*DashboardSummary, error) {
	key := dashboardKey(user.Role, user.ID)
	if s.cacheRepo != nil {
		var cached DashboardSummary
		err := s.cacheRepo.GetJSON(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[DashboardService] Cache read failed for %s: %v", key, err)
		}
	}

	counts, err := s.count(ctx, user)
	if err != nil {
		return nil, err
	}
	summary := &DashboardSummary{Role: user.Role, Counts: counts, CachedAt: s.now()}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(ctx, key, summary, s.ttl); err != nil {
			log.Printf("[DashboardService] Cache write failed for %s: %v", key, err)
		}
	}
	return summary, nil
}

type counter func() (int64, error)

func (s *DashboardService) count(ctx context.Context, user *entity.User) (map[string]int64, error) {
	counters := map[string]counter{}

	switch user.Role {
	case entity.RoleSuperAdmin:
		counters["users"] = s.repos.User.Count
		counters["guru"] = s.repos.Guru.Count
		counters["siswa"] = s.repos.Siswa.Count
		counters["staf"] = s.repos.Staf.Count
		counters["kelas"] = s.repos.Kelas.Count
		counters["mata_pelajaran"] = s.repos.Mapel.Count
		counters["ujian"] = func() (int64, error) { return s.repos.BankSoal.Count(ctx) }
		counters["kehadiran"] = func() (int64, error) {
			return s.repos.Kehadiran.Count(ctx, repository.KehadiranFilter{})
		}
	case entity.RoleStaf:
		counters["guru"] = s.repos.Guru.Count
		counters["siswa"] = s.repos.Siswa.Count
		counters["kelas"] = s.repos.Kelas.Count
		counters["ujian"] = func() (int64, error) { return s.repos.BankSoal.Count(ctx) }
	case entity.RoleGuru:
		counters["ujian_ditulis"] = func() (int64, error) {
			banks, err := s.repos.BankSoal.ListByPenulis(ctx, user.ID)
			return int64(len(banks)), err
		}
		counters["kelas_diampu"] = func() (int64, error) {
			guru, err := s.repos.Guru.GetByUserID(user.ID)
			if errors.Is(err, apperrors.ErrNotFound) {
				return 0, nil
			}
			if err != nil {
				return 0, err
			}
			kelas, err := s.repos.Kelas.FindByGuruPengampu(guru.NIP)
			return int64(len(kelas)), err
		}
	case entity.RoleSiswa:
		uid := user.ID
		counters["ujian"] = func() (int64, error) { return s.repos.BankSoal.Count(ctx) }
		counters["ujian_diikuti"] = func() (int64, error) {
			return s.repos.Kehadiran.Count(ctx, repository.KehadiranFilter{UserID: &uid})
		}
	default:
		return nil, fmt.Errorf("%w: role %q has no dashboard", apperrors.ErrForbidden, user.Role)
	}

	results := make(map[string]int64, len(counters))
	values := make([]int64, len(counters))
	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}

	g, _ := errgroup.WithContext(ctx)
	for i, name := range names {
		fn := counters[name]
		g.Go(func() error {
			n, err := fn()
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			values[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("[DashboardService] Error building %s dashboard: %v", user.Role, err)
		return nil, err
	}
	for i, name := range names {
		results[name] = values[i]
	}
	return results, nil
}
