package entity

import "time"

// ManajemenKehadiran is one exam attempt of one user. The pair (UserID, UjianID)
// is unique.
type ManajemenKehadiran struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `gorm:"not null;uniqueIndex:uq_kehadiran_user_ujian" json:"user_id"`
	UjianID     uint    `gorm:"not null;uniqueIndex:uq_kehadiran_user_ujian;index" json:"ujian_id"`
	JawabanFile string  `gorm:"type:text;not null;default:''" json:"jawaban_file"`
	Benar       int     `gorm:"not null;default:0" json:"benar"`
	Salah       int     `gorm:"not null;default:0" json:"salah"`
	Skor        float64 `gorm:"type:numeric(5,2);not null;default:0" json:"skor"`

	User  *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Ujian *BankSoal `gorm:"foreignKey:UjianID;constraint:OnDelete:CASCADE" json:"ujian,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM
func (ManajemenKehadiran) TableName() string {
	return "manajemen_kehadirans"
}

// NamaSiswa returns the student's name or "-".
func (m *ManajemenKehadiran) NamaSiswa() string {
	if m.User == nil || m.User.FullName == "" {
		return "-"
	}
	return m.User.FullName
}

// NISN returns the student's NISN or "-".
func (m *ManajemenKehadiran) NISN() string {
	if m.User == nil || m.User.DataSiswa == nil || m.User.DataSiswa.NISN == "" {
		return "-"
	}
	return m.User.DataSiswa.NISN
}

// NamaMapel returns the subject name of the exam or "-".
func (m *ManajemenKehadiran) NamaMapel() string {
	if m.Ujian == nil || m.Ujian.Mapel == nil || m.Ujian.Mapel.NamaMataPelajaran == "" {
		return "-"
	}
	return m.Ujian.Mapel.NamaMataPelajaran
}
