package entity

import "time"

// Allowed values for profile enums
var (
	JenisKelaminValues = []string{"Laki-laki", "Perempuan"}
	AgamaValues        = []string{"Islam", "Kristen", "Katolik", "Hindu", "Buddha", "Konghucu"}
)

// DataGuru is the teacher profile linked to a Guru user.
type DataGuru struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	NIP           string    `gorm:"column:nip;size:30;not null;uniqueIndex" json:"nip"`
	Alamat        string    `gorm:"size:255;not null" json:"alamat"`
	NoTelepon     string    `gorm:"size:30;not null" json:"no_telepon"`
	GelarDepan    string    `gorm:"size:30;not null;default:''" json:"gelar_depan"`
	GelarBelakang string    `gorm:"size:30;not null;default:''" json:"gelar_belakang"`
	JenisKelamin  string    `gorm:"size:20;not null" json:"jenis_kelamin"`
	TempatLahir   string    `gorm:"size:100;not null" json:"tempat_lahir"`
	TanggalLahir  time.Time `gorm:"type:date;not null" json:"tanggal_lahir"`
	Agama         string    `gorm:"size:20;not null" json:"agama"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM
func (DataGuru) TableName() string {
	return "data_gurus"
}

// DataStaf is the staff profile linked to a Staf user.
type DataStaf struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	NIP           string    `gorm:"column:nip;size:30;not null;uniqueIndex" json:"nip"`
	Departemen    string    `gorm:"size:100;not null" json:"departemen"`
	Jabatan       string    `gorm:"size:100;not null" json:"jabatan"`
	Alamat        string    `gorm:"size:255;not null" json:"alamat"`
	NoTelepon     string    `gorm:"size:30;not null" json:"no_telepon"`
	GelarDepan    string    `gorm:"size:30;not null;default:''" json:"gelar_depan"`
	GelarBelakang string    `gorm:"size:30;not null;default:''" json:"gelar_belakang"`
	JenisKelamin  string    `gorm:"size:20;not null" json:"jenis_kelamin"`
	TempatLahir   string    `gorm:"size:100;not null" json:"tempat_lahir"`
	TanggalLahir  time.Time `gorm:"type:date;not null" json:"tanggal_lahir"`
	Agama         string    `gorm:"size:20;not null" json:"agama"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM
func (DataStaf) TableName() string {
	return "data_stafs"
}

// DataSiswa is the student profile linked to a Siswa user.
type DataSiswa struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	NISN         string    `gorm:"column:nisn;size:20;not null;uniqueIndex" json:"nisn"`
	NIS          string    `gorm:"column:nis;size:20;not null;default:''" json:"nis"`
	Alamat       string    `gorm:"size:255;not null" json:"alamat"`
	NoTelepon    string    `gorm:"size:30;not null;default:''" json:"no_telepon"`
	JenisKelamin string    `gorm:"size:20;not null" json:"jenis_kelamin"`
	TempatLahir  string    `gorm:"size:100;not null" json:"tempat_lahir"`
	TanggalLahir time.Time `gorm:"type:date;not null" json:"tanggal_lahir"`
	Agama        string    `gorm:"size:20;not null" json:"agama"`
	NamaWali     string    `gorm:"size:150;not null;default:''" json:"nama_wali"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM
func (DataSiswa) TableName() string {
	return "data_siswas"
}
