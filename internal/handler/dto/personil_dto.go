package dto

// ProfilInput holds the fields shared by teacher and staff profiles
type ProfilInput struct {
	NIP           string `json:"nip" binding:"required"`
	Alamat        string `json:"alamat" binding:"required"`
	NoTelepon     string `json:"no_telepon" binding:"required"`
	GelarDepan    string `json:"gelar_depan"`
	GelarBelakang string `json:"gelar_belakang"`
	JenisKelamin  string `json:"jenis_kelamin" binding:"required,jenis_kelamin"`
	TempatLahir   string `json:"tempat_lahir" binding:"required"`
	TanggalLahir  string `json:"tanggal_lahir" binding:"required,datetime=2006-01-02"`
	Agama         string `json:"agama" binding:"required,agama"`
}

// GuruRequest creates or updates a teacher
type GuruRequest struct {
	User UserInput   `json:"user" binding:"required"`
	Guru ProfilInput `json:"guru" binding:"required"`
}

// StafInput is a staff profile
type StafInput struct {
	ProfilInput
	Departemen string `json:"departemen" binding:"required"`
	Jabatan    string `json:"jabatan" binding:"required"`
}

// StafRequest creates or updates a staff member
type StafRequest struct {
	User UserInput `json:"user" binding:"required"`
	Staf StafInput `json:"staf" binding:"required"`
}

// SiswaInput is a student profile
type SiswaInput struct {
	NISN         string `json:"nisn" binding:"required,numeric"`
	NIS          string `json:"nis"`
	Alamat       string `json:"alamat" binding:"required"`
	NoTelepon    string `json:"no_telepon"`
	JenisKelamin string `json:"jenis_kelamin" binding:"required,jenis_kelamin"`
	TempatLahir  string `json:"tempat_lahir" binding:"required"`
	TanggalLahir string `json:"tanggal_lahir" binding:"required,datetime=2006-01-02"`
	Agama        string `json:"agama" binding:"required,agama"`
	NamaWali     string `json:"nama_wali"`
}

// SiswaRequest creates or updates a student
type SiswaRequest struct {
	User  UserInput  `json:"user" binding:"required"`
	Siswa SiswaInput `json:"siswa" binding:"required"`
}
