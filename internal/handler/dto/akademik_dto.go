package dto

import "github.com/yourusername/sekolah-api/internal/service/ujian"

// KelasRequest creates or updates a class
type KelasRequest struct {
	NamaKelas    string   `json:"nama_kelas" binding:"required"`
	Jenjang      string   `json:"jenjang"`
	WaliKelas    string   `json:"wali_kelas"`
	GuruPengampu []string `json:"guru_pengampu" binding:"omitempty,dive,required"`
	Siswa        []string `json:"siswa" binding:"omitempty,dive,required"`
}

// MapelRequest creates or updates a subject
type MapelRequest struct {
	NamaMataPelajaran string `json:"nama_mata_pelajaran" binding:"required"`
	Jenjang           string `json:"jenjang"`
	Deskripsi         string `json:"deskripsi"`
}

// BankSoalRequest creates or updates an exam. A nil Soal on update keeps
// the stored question file.
type BankSoalRequest struct {
	NamaUjian string            `json:"nama_ujian" binding:"required"`
	MapelID   uint              `json:"mapel_id" binding:"required"`
	Jenjang   string            `json:"jenjang"`
	Waktu     int               `json:"waktu" binding:"min=0"`
	Soal      []ujian.SoalInput `json:"soal"`
}

// ToInput converts the request for the exam service
func (r *BankSoalRequest) ToInput() ujian.BankSoalInput {
	return ujian.BankSoalInput{
		NamaUjian: r.NamaUjian,
		MapelID:   r.MapelID,
		Jenjang:   r.Jenjang,
		Waktu:     r.Waktu,
		Soal:      r.Soal,
	}
}

// StartUjianRequest starts an exam attempt
type StartUjianRequest struct {
	UjianID uint `form:"ujianId" json:"ujian_id" binding:"required"`
}

// SubmitJawabanRequest submits the answers of an attempt
type SubmitJawabanRequest struct {
	Jawaban []ujian.JawabanInput `json:"jawaban" binding:"dive"`
}
