package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
)

// StafRepo implements repository.StafRepository
type StafRepo struct {
	db *gorm.DB
}

// NewStafRepo creates a new StafRepo
func NewStafRepo(db *gorm.DB) *StafRepo {
	return &StafRepo{db: db}
}

// CreateWithUser inserts the user and its profile in one transaction
func (r *StafRepo) CreateWithUser(user *entity.User, p *entity.DataStaf) error {
	return translateError(r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		p.UserID = user.ID
		return tx.Omit("User").Create(p).Error
	}))
}

// UpdateWithUser saves the user and its profile in one transaction
func (r *StafRepo) UpdateWithUser(user *entity.User, p *entity.DataStaf) error {
	return translateError(r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("DataGuru", "DataSiswa", "DataStaf").Save(user).Error; err != nil {
			return err
		}
		p.UserID = user.ID
		return tx.Omit("User").Save(p).Error
	}))
}

// Delete removes the profile and its user
func (r *StafRepo) Delete(id uint) error {
	return translateError(r.db.Transaction(func(tx *gorm.DB) error {
		var p entity.DataStaf
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
func (r *StafRepo) GetByID(id uint) (*entity.DataStaf, error) {
	var p entity.DataStaf
	if err := r.db.Preload("User").First(&p, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// GetByUserID returns the profile of a user
func (r *StafRepo) GetByUserID(userID uint) (*entity.DataStaf, error) {
	var p entity.DataStaf
	if err := r.db.Preload("User").Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// List returns profiles matching search on name or nip, newest first
func (r *StafRepo) List(search string, limit, offset int) ([]entity.DataStaf, int64, error) {
	var items []entity.DataStaf
	var total int64

	query := func() *gorm.DB {
		q := r.db.Model(&entity.DataStaf{}).Joins("JOIN users ON users.id = data_stafs.user_id")
		if search != "" {
			q = q.Where("users.full_name ILIKE ? ESCAPE '\\' OR data_stafs.nip ILIKE ? ESCAPE '\\'", likePattern(search), likePattern(search))
		}
		return q
	}

	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query().Preload("User").
		Order("data_stafs.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, total, err
}

// Count returns the number of profiles
func (r *StafRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entity.DataStaf{}).Count(&n).Error
	return n, err
}
