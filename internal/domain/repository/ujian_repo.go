package repository

import (
	"context"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
)

// BankSoalRepository defines access to exam definitions
type BankSoalRepository interface {
	Create(ctx context.Context, bank *entity.BankSoal) error
	Update(ctx context.Context, bank *entity.BankSoal) error
	Delete(ctx context.Context, id uint) error
	// GetByID preloads the subject
	GetByID(ctx context.Context, id uint) (*entity.BankSoal, error)
	List(ctx context.Context, search string, limit, offset int) ([]entity.BankSoal, int64, error)
	// ListAll returns every exam, newest first, with its subject
	ListAll(ctx context.Context) ([]entity.BankSoal, error)
	// ListByPenulis returns exams whose penulis list contains userID
	ListByPenulis(ctx context.Context, userID uint) ([]entity.BankSoal, error)
	Count(ctx context.Context) (int64, error)
}

// KehadiranFilter narrows attendance listings. Zero values mean no filter.
type KehadiranFilter struct {
	UserID *uint
	// UjianID filters on one exam
	UjianID *uint
	// NamaSiswa matches the student's full name (ILIKE)
	NamaSiswa string
	// NamaUjian matches the exam name (ILIKE)
	NamaUjian string
	// ScopeNISN restricts rows to students whose NISN is in NISN.
	// An empty NISN list then yields no rows.
	ScopeNISN bool
	NISN      []string
	// NamaMapel matches the subject name (ILIKE)
	NamaMapel string
}

// KehadiranRepository defines access to exam attendance rows
type KehadiranRepository interface {
	// Create inserts a row; a (user, exam) duplicate yields apperrors.ErrDuplicateAttempt
	Create(ctx context.Context, k *entity.ManajemenKehadiran) error
	GetByID(ctx context.Context, id uint) (*entity.ManajemenKehadiran, error)
	// GetByIDForUser returns the row only if it belongs to userID
	GetByIDForUser(ctx context.Context, id, userID uint) (*entity.ManajemenKehadiran, error)
	FindByUserAndUjian(ctx context.Context, userID, ujianID uint) (*entity.ManajemenKehadiran, error)
	UpdateHasil(ctx context.Context, id uint, jawabanFile string, benar, salah int, skor float64) error
	// List returns rows newest first with user.dataSiswa and ujian.mapel preloaded
	List(ctx context.Context, filter KehadiranFilter, limit, offset int) ([]entity.ManajemenKehadiran, int64, error)
	Count(ctx context.Context, filter KehadiranFilter) (int64, error)
	// ListAll returns every matching row with relations preloaded
	ListAll(ctx context.Context, filter KehadiranFilter) ([]entity.ManajemenKehadiran, error)
}
