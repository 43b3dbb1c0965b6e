package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
)

// MapelRepo implements repository.MapelRepository
type MapelRepo struct {
	db *gorm.DB
}

// NewMapelRepo creates a new MapelRepo
func NewMapelRepo(db *gorm.DB) *MapelRepo {
	return &MapelRepo{db: db}
}

// Create creates a subject
func (r *MapelRepo) Create(mapel *entity.MataPelajaran) error {
	return translateError(r.db.Create(mapel).Error)
}

// Update saves a subject
func (r *MapelRepo) Update(mapel *entity.MataPelajaran) error {
	return translateError(r.db.Save(mapel).Error)
}

// Delete removes a subject
func (r *MapelRepo) Delete(id uint) error {
	res := r.db.Delete(&entity.MataPelajaran{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// GetByID returns a subject by ID
func (r *MapelRepo) GetByID(id uint) (*entity.MataPelajaran, error) {
	var mapel entity.MataPelajaran
	if err := r.db.First(&mapel, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &mapel, nil
}

// List returns subjects matching search, ordered by name
func (r *MapelRepo) List(search string, limit, offset int) ([]entity.MataPelajaran, int64, error) {
	var items []entity.MataPelajaran
	var total int64

	query := func() *gorm.DB {
		q := r.db.Model(&entity.MataPelajaran{})
		if search != "" {
			q = q.Where("nama_mata_pelajaran ILIKE ? ESCAPE '\\'", likePattern(search))
		}
		return q
	}

	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query().Order("nama_mata_pelajaran ASC").Limit(limit).Offset(offset).Find(&items).Error
	return items, total, err
}

// Count returns the number of subjects
func (r *MapelRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entity.MataPelajaran{}).Count(&n).Error
	return n, err
}
