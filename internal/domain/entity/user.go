package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User roles
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleGuru       = "Guru"
	RoleSiswa      = "Siswa"
	RoleStaf       = "Staf"
)

// User is an account that can log in. Guru, Siswa and Staf records hang off it.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:150;not null" json:"full_name"`
	Email    string `gorm:"size:150;not null;uniqueIndex" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
	Role     string `gorm:"size:20;not null;index" json:"role"`

	DataGuru  *DataGuru  `gorm:"foreignKey:UserID" json:"data_guru,omitempty"`
	DataSiswa *DataSiswa `gorm:"foreignKey:UserID" json:"data_siswa,omitempty"`
	DataStaf  *DataStaf  `gorm:"foreignKey:UserID" json:"data_staf,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// HomePath returns the dashboard path for the user's role.
func (u *User) HomePath() string {
	return HomePathForRole(u.Role)
}

// HomePathForRole maps a role to its dashboard path.
func HomePathForRole(role string) string {
	switch role {
	case RoleSuperAdmin:
		return "/SuperAdmin"
	case RoleGuru:
		return "/guru"
	case RoleSiswa:
		return "/siswa"
	case RoleStaf:
		return "/staf"
	default:
		return "/login"
	}
}

// BeforeSave hashes the password unless it already is a bcrypt hash
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.Password) > 0 && !isBcryptHash(u.Password) {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Error hashing password for email=%s: %v", u.Email, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword reports whether password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
