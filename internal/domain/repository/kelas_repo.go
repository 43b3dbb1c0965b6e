package repository

import (
	"github.com/yourusername/sekolah-api/internal/domain/entity"
)

// KelasRepository defines access to classes
type KelasRepository interface {
	Create(kelas *entity.DataKelas) error
	Update(kelas *entity.DataKelas) error
	Delete(id uint) error
	GetByID(id uint) (*entity.DataKelas, error)
	List(search string, limit, offset int) ([]entity.DataKelas, int64, error)
	// FindByGuruPengampu returns classes whose guru_pengampu contains nip
	FindByGuruPengampu(nip string) ([]entity.DataKelas, error)
	// ExistsWaliKelas reports whether nip is homeroom teacher of any class
	ExistsWaliKelas(nip string) (bool, error)
	Count() (int64, error)
}

// MapelRepository defines access to subjects
type MapelRepository interface {
	Create(mapel *entity.MataPelajaran) error
	Update(mapel *entity.MataPelajaran) error
	Delete(id uint) error
	GetByID(id uint) (*entity.MataPelajaran, error)
	List(search string, limit, offset int) ([]entity.MataPelajaran, int64, error)
	Count() (int64, error)
}
