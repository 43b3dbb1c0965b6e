package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
)

// KelasRepo implements repository.KelasRepository
type KelasRepo struct {
	db *gorm.DB
}

// NewKelasRepo creates a new KelasRepo
func NewKelasRepo(db *gorm.DB) *KelasRepo {
	return &KelasRepo{db: db}
}

// Create creates a class
func (r *KelasRepo) Create(kelas *entity.DataKelas) error {
	return translateError(r.db.Create(kelas).Error)
}

// Update saves a class
func (r *KelasRepo) Update(kelas *entity.DataKelas) error {
	return translateError(r.db.Save(kelas).Error)
}

// Delete removes a class
func (r *KelasRepo) Delete(id uint) error {
	res := r.db.Delete(&entity.DataKelas{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// GetByID returns a class by ID
func (r *KelasRepo) GetByID(id uint) (*entity.DataKelas, error) {
	var kelas entity.DataKelas
	if err := r.db.First(&kelas, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &kelas, nil
}

// List returns classes matching search on name, ordered by name
func (r *KelasRepo) List(search string, limit, offset int) ([]entity.DataKelas, int64, error) {
	var items []entity.DataKelas
	var total int64

	query := func() *gorm.DB {
		q := r.db.Model(&entity.DataKelas{})
		if search != "" {
			q = q.Where("nama_kelas ILIKE ? ESCAPE '\\'", likePattern(search))
		}
		return q
	}

	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query().Order("nama_kelas ASC").Limit(limit).Offset(offset).Find(&items).Error
	return items, total, err
}

// FindByGuruPengampu returns classes taught by nip
func (r *KelasRepo) FindByGuruPengampu(nip string) ([]entity.DataKelas, error) {
	var items []entity.DataKelas
	err := r.db.Where("guru_pengampu @> ?::jsonb", entity.JSONContains(nip)).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// ExistsWaliKelas reports whether nip is homeroom teacher of a class
func (r *KelasRepo) ExistsWaliKelas(nip string) (bool, error) {
	if nip == "" {
		return false, nil
	}
	var n int64
	err := r.db.Model(&entity.DataKelas{}).Where("wali_kelas = ?", nip).Limit(1).Count(&n).Error
	return n > 0, err
}

// Count returns the number of classes
func (r *KelasRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entity.DataKelas{}).Count(&n).Error
	return n, err
}
