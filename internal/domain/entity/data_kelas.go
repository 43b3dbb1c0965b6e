package entity

import (
	"time"

	"gorm.io/datatypes"
)

// DataKelas is a class: homeroom teacher, subject teachers and enrolled students.
// GuruPengampu holds teacher NIPs, Siswa holds student NISNs.
type DataKelas struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	NamaKelas    string         `gorm:"size:100;not null;uniqueIndex" json:"nama_kelas"`
	Jenjang      string         `gorm:"size:20;not null;default:''" json:"jenjang"`
	WaliKelas    string         `gorm:"size:30;not null;default:'';index" json:"wali_kelas"`
	GuruPengampu datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"guru_pengampu"`
	Siswa        datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"siswa"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM
func (DataKelas) TableName() string {
	return "data_kelas"
}

// GuruPengampuList decodes the teacher NIP list.
func (k *DataKelas) GuruPengampuList() ([]string, error) {
	return decodeStringList(k.GuruPengampu)
}

// SiswaList decodes the student NISN list.
func (k *DataKelas) SiswaList() ([]string, error) {
	return decodeStringList(k.Siswa)
}

// SetGuruPengampu replaces the teacher NIP list.
func (k *DataKelas) SetGuruPengampu(nips []string) {
	k.GuruPengampu = encodeStringList(nips)
}

// SetSiswa replaces the student NISN list.
func (k *DataKelas) SetSiswa(nisns []string) {
	k.Siswa = encodeStringList(nisns)
}
