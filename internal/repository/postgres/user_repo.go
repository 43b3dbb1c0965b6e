package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a new UserRepo
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create creates a new user
func (r *UserRepo) Create(user *entity.User) error {
	return translateError(r.db.Create(user).Error)
}

// GetByID returns the user by ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetByIDWithProfile returns the user with the profile of its role
func (r *UserRepo) GetByIDWithProfile(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.
		Preload("DataGuru").
		Preload("DataSiswa").
		Preload("DataStaf").
		First(&user, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetByEmail returns the user by email
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// Update saves the user
func (r *UserRepo) Update(user *entity.User) error {
	return translateError(r.db.Save(user).Error)
}

// Count returns the number of users
func (r *UserRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entity.User{}).Count(&n).Error
	return n, err
}

// CountByRole returns the number of users with role
func (r *UserRepo) CountByRole(role string) (int64, error) {
	var n int64
	err := r.db.Model(&entity.User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}
