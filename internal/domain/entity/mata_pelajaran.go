package entity

import "time"

// MataPelajaran is a school subject.
type MataPelajaran struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	NamaMataPelajaran string `gorm:"size:150;not null;uniqueIndex" json:"nama_mata_pelajaran"`
	Jenjang           string `gorm:"size:20;not null;default:''" json:"jenjang"`
	Deskripsi         string `gorm:"type:text;not null;default:''" json:"deskripsi"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM
func (MataPelajaran) TableName() string {
	return "mata_pelajarans"
}
