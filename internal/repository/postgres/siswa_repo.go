package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
)

// SiswaRepo implements repository.SiswaRepository
type SiswaRepo struct {
	db *gorm.DB
}

// NewSiswaRepo creates a new SiswaRepo
func NewSiswaRepo(db *gorm.DB) *SiswaRepo {
	return &SiswaRepo{db: db}
}

// CreateWithUser inserts the user and its profile in one transaction
func (r *SiswaRepo) CreateWithUser(user *entity.User, p *entity.DataSiswa) error {
	return translateError(r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		p.UserID = user.ID
		return tx.Omit("User").Create(p).Error
	}))
}

// UpdateWithUser saves the user and its profile in one transaction
func (r *SiswaRepo) UpdateWithUser(user *entity.User, p *entity.DataSiswa) error {
	return translateError(r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("DataGuru", "DataSiswa", "DataStaf").Save(user).Error; err != nil {
			return err
		}
		p.UserID = user.ID
		return tx.Omit("User").Save(p).Error
	}))
}

// Delete removes the profile and its user
func (r *SiswaRepo) Delete(id uint) error {
	return translateError(r.db.Transaction(func(tx *gorm.DB) error {
		var p entity.DataSiswa
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&p).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.User{}, p.UserID).Error
	}))
}

// GetByID returns the profile with its user
func (r *SiswaRepo) GetByID(id uint) (*entity.DataSiswa, error) {
	var p entity.DataSiswa
	if err := r.db.Preload("User").First(&p, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// GetByUserID returns the profile of a user
func (r *SiswaRepo) GetByUserID(userID uint) (*entity.DataSiswa, error) {
	var p entity.DataSiswa
	if err := r.db.Preload("User").Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// List returns profiles matching search on name or nisn, newest first
func (r *SiswaRepo) List(search string, limit, offset int) ([]entity.DataSiswa, int64, error) {
	var items []entity.DataSiswa
	var total int64

	query := func() *gorm.DB {
		q := r.db.Model(&entity.DataSiswa{}).Joins("JOIN users ON users.id = data_siswas.user_id")
		if search != "" {
			q = q.Where("users.full_name ILIKE ? ESCAPE '\\' OR data_siswas.nisn ILIKE ? ESCAPE '\\'", likePattern(search), likePattern(search))
		}
		return q
	}

	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query().Preload("User").
		Order("data_siswas.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, total, err
}

// Count returns the number of profiles
func (r *SiswaRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entity.DataSiswa{}).Count(&n).Error
	return n, err
}
