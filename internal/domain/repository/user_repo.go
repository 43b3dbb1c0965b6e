package repository

import (
	"github.com/yourusername/sekolah-api/internal/domain/entity"
)

// UserRepository defines access to user accounts
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	// GetByIDWithProfile preloads the Guru/Siswa/Staf profile
	GetByIDWithProfile(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	Count() (int64, error)
	CountByRole(role string) (int64, error)
}
