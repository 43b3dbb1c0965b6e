package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/domain/repository"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
)

// KehadiranRepo implements repository.KehadiranRepository
type KehadiranRepo struct {
	db *gorm.DB
}

// NewKehadiranRepo creates a new KehadiranRepo
func NewKehadiranRepo(db *gorm.DB) *KehadiranRepo {
	return &KehadiranRepo{db: db}
}

// Create inserts an attendance row. The unique index on (user_id, ujian_id)
// turns a concurrent second start into ErrDuplicateAttempt.
func (r *KehadiranRepo) Create(ctx context.Context, k *entity.ManajemenKehadiran) error {
	err := r.db.WithContext(ctx).Omit("User", "Ujian").Create(k).Error
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user #%d exam #%d", apperrors.ErrDuplicateAttempt, k.UserID, k.UjianID)
		}
		return err
	}
	return nil
}

// GetByID returns a row with relations
func (r *KehadiranRepo) GetByID(ctx context.Context, id uint) (*entity.ManajemenKehadiran, error) {
	var k entity.ManajemenKehadiran
	if err := r.preload(r.db.WithContext(ctx)).First(&k, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &k, nil
}

// GetByIDForUser returns a row owned by userID
func (r *KehadiranRepo) GetByIDForUser(ctx context.Context, id, userID uint) (*entity.ManajemenKehadiran, error) {
	var k entity.ManajemenKehadiran
	err := r.preload(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&k).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &k, nil
}

// FindByUserAndUjian returns the attempt of a user for an exam
func (r *KehadiranRepo) FindByUserAndUjian(ctx context.Context, userID, ujianID uint) (*entity.ManajemenKehadiran, error) {
	var k entity.ManajemenKehadiran
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ujian_id = ?", userID, ujianID).
		First(&k).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &k, nil
}

// UpdateHasil stores the answer reference and score fields
func (r *KehadiranRepo) UpdateHasil(ctx context.Context, id uint, jawabanFile string, benar, salah int, skor float64) error {
	res := r.db.WithContext(ctx).Model(&entity.ManajemenKehadiran{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"jawaban_file": jawabanFile,
			"benar":        benar,
			"salah":        salah,
			"skor":         skor,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List returns a page of rows, newest first, plus the filtered total
func (r *KehadiranRepo) List(ctx context.Context, filter repository.KehadiranFilter, limit, offset int) ([]entity.ManajemenKehadiran, int64, error) {
	var items []entity.ManajemenKehadiran

	total, err := r.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	err = r.preload(r.applyFilter(r.db.WithContext(ctx), filter)).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, total, err
}

// Count returns the number of rows matching filter
func (r *KehadiranRepo) Count(ctx context.Context, filter repository.KehadiranFilter) (int64, error) {
	var n int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&entity.ManajemenKehadiran{}), filter).Count(&n).Error
	return n, err
}

// ListAll returns every row matching filter
func (r *KehadiranRepo) ListAll(ctx context.Context, filter repository.KehadiranFilter) ([]entity.ManajemenKehadiran, error) {
	var items []entity.ManajemenKehadiran
	err := r.preload(r.applyFilter(r.db.WithContext(ctx), filter)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error
	return items, err
}

func (r *KehadiranRepo) preload(q *gorm.DB) *gorm.DB {
	return q.Preload("User.DataSiswa").Preload("Ujian.Mapel")
}

func (r *KehadiranRepo) applyFilter(q *gorm.DB, f repository.KehadiranFilter) *gorm.DB {
	if f.UserID != nil {
		q = q.Where("manajemen_kehadirans.user_id = ?", *f.UserID)
	}
	if f.UjianID != nil {
		q = q.Where("manajemen_kehadirans.ujian_id = ?", *f.UjianID)
	}
	if f.ScopeNISN {
		if len(f.NISN) == 0 {
			return q.Where("1 = 0")
		}
		q = q.Where("manajemen_kehadirans.user_id IN (?)",
			r.db.Model(&entity.DataSiswa{}).Select("user_id").Where("nisn IN ?", f.NISN))
	}
	if f.NamaSiswa != "" {
		q = q.Where("manajemen_kehadirans.user_id IN (?)",
			r.db.Model(&entity.User{}).Select("id").Where("full_name ILIKE ? ESCAPE '\\'", likePattern(f.NamaSiswa)))
	}
	if f.NamaUjian != "" {
		q = q.Where("manajemen_kehadirans.ujian_id IN (?)",
			r.db.Model(&entity.BankSoal{}).Select("id").Where("nama_ujian ILIKE ? ESCAPE '\\'", likePattern(f.NamaUjian)))
	}
	if f.NamaMapel != "" {
		q = q.Where("manajemen_kehadirans.ujian_id IN (?)",
			r.db.Table("bank_soals").
				Select("bank_soals.id").
				Joins("JOIN mata_pelajarans ON mata_pelajarans.id = bank_soals.mapel_id").
				Where("mata_pelajarans.nama_mata_pelajaran ILIKE ? ESCAPE '\\'", likePattern(f.NamaMapel)))
	}
	return q
}
