package postgres

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
)

// BankSoalRepo implements repository.BankSoalRepository
type BankSoalRepo struct {
	db *gorm.DB
}

// NewBankSoalRepo creates a new BankSoalRepo
func NewBankSoalRepo(db *gorm.DB) *BankSoalRepo {
	return &BankSoalRepo{db: db}
}

// Create creates an exam definition
func (r *BankSoalRepo) Create(ctx context.Context, bank *entity.BankSoal) error {
	return translateError(r.db.WithContext(ctx).Omit("Mapel").Create(bank).Error)
}

// Update saves an exam definition
func (r *BankSoalRepo) Update(ctx context.Context, bank *entity.BankSoal) error {
	return translateError(r.db.WithContext(ctx).Omit("Mapel").Save(bank).Error)
}

// Delete removes an exam definition. Attendance rows cascade.
func (r *BankSoalRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.BankSoal{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// GetByID returns an exam definition with its subject
func (r *BankSoalRepo) GetByID(ctx context.Context, id uint) (*entity.BankSoal, error) {
	var bank entity.BankSoal
	if err := r.db.WithContext(ctx).Preload("Mapel").First(&bank, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &bank, nil
}

// List returns exams matching search on name, newest first
func (r *BankSoalRepo) List(ctx context.Context, search string, limit, offset int) ([]entity.BankSoal, int64, error) {
	var items []entity.BankSoal
	var total int64

	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&entity.BankSoal{})
		if search != "" {
			q = q.Where("nama_ujian ILIKE ? ESCAPE '\\'", likePattern(search))
		}
		return q
	}

	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query().Preload("Mapel").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, total, err
}

// ListAll returns every exam, newest first
func (r *BankSoalRepo) ListAll(ctx context.Context) ([]entity.BankSoal, error) {
	var items []entity.BankSoal
	err := r.db.WithContext(ctx).Preload("Mapel").Order("created_at DESC").Find(&items).Error
	return items, err
}

// ListByPenulis returns exams authored by userID
func (r *BankSoalRepo) ListByPenulis(ctx context.Context, userID uint) ([]entity.BankSoal, error) {
	var items []entity.BankSoal
	err := r.db.WithContext(ctx).
		Preload("Mapel").
		Where("penulis @> ?::jsonb", entity.JSONContains(strconv.FormatUint(uint64(userID), 10))).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// Count returns the number of exams
func (r *BankSoalRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.BankSoal{}).Count(&n).Error
	return n, err
}
