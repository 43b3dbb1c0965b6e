package repository

import (
	"github.com/yourusername/sekolah-api/internal/domain/entity"
)

// GuruRepository defines access to teacher profiles. Writes touch the linked
// user in the same transaction.
type GuruRepository interface {
	CreateWithUser(user *entity.User, guru *entity.DataGuru) error
	UpdateWithUser(user *entity.User, guru *entity.DataGuru) error
	// Delete removes the profile and its user
	Delete(id uint) error
	GetByID(id uint) (*entity.DataGuru, error)
	GetByUserID(userID uint) (*entity.DataGuru, error)
	List(search string, limit, offset int) ([]entity.DataGuru, int64, error)
	Count() (int64, error)
}

// StafRepository defines access to staff profiles
type StafRepository interface {
	CreateWithUser(user *entity.User, staf *entity.DataStaf) error
	UpdateWithUser(user *entity.User, staf *entity.DataStaf) error
	Delete(id uint) error
	GetByID(id uint) (*entity.DataStaf, error)
	GetByUserID(userID uint) (*entity.DataStaf, error)
	List(search string, limit, offset int) ([]entity.DataStaf, int64, error)
	Count() (int64, error)
}

// SiswaRepository defines access to student profiles
type SiswaRepository interface {
	CreateWithUser(user *entity.User, siswa *entity.DataSiswa) error
	UpdateWithUser(user *entity.User, siswa *entity.DataSiswa) error
	Delete(id uint) error
	GetByID(id uint) (*entity.DataSiswa, error)
	GetByUserID(userID uint) (*entity.DataSiswa, error)
	List(search string, limit, offset int) ([]entity.DataSiswa, int64, error)
	Count() (int64, error)
}
