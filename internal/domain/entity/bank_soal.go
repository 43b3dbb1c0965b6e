package entity

import (
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// BankSoal is an exam definition. Its questions live in an encrypted file
// under soal_files/, referenced by SoalFile.
type BankSoal struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	NamaUjian string         `gorm:"size:200;not null" json:"nama_ujian"`
	MapelID   uint           `gorm:"not null;index" json:"mapel_id"`
	Jenjang   string         `gorm:"size:20;not null;default:''" json:"jenjang"`
	Waktu     int            `gorm:"not null;default:0" json:"waktu"` // minutes
	SoalFile  string         `gorm:"size:255;not null;default:''" json:"soal_file"`
	Penulis   datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"penulis"`

	Mapel *MataPelajaran `gorm:"foreignKey:MapelID" json:"mapel,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM
func (BankSoal) TableName() string {
	return "bank_soals"
}

// PenulisList decodes the author user ids.
func (b *BankSoal) PenulisList() ([]string, error) {
	return decodeStringList(b.Penulis)
}

// SetPenulis stores the author user ids.
func (b *BankSoal) SetPenulis(userIDs ...uint) {
	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, strconv.FormatUint(uint64(id), 10))
	}
	b.Penulis = encodeStringList(ids)
}

// IsAuthor reports whether userID is listed in Penulis.
func (b *BankSoal) IsAuthor(userID uint) bool {
	ids, err := b.PenulisList()
	if err != nil {
		return false
	}
	want := strconv.FormatUint(uint64(userID), 10)
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}
