package ujian

import (
	"time"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/domain/repository"
)

// Defaults
const (
	DefaultConcurrency      = 8
	DefaultPerPage          = 15
	DefaultSelectedCountTTL = 10 * time.Minute
	DefaultSoalType         = "pilihan_ganda"
)

// Config holds tunables of the exam subsystem
type Config struct {
	// Concurrency bounds parallel row aggregation
	Concurrency int
	// PerPage is the attendance page size without a search term
	PerPage int
	// SelectedCountTTL is how long the selected-question count of a question file stays cached
	SelectedCountTTL time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Concurrency:      DefaultConcurrency,
		PerPage:          DefaultPerPage,
		SelectedCountTTL: DefaultSelectedCountTTL,
	}
}

func (c *Config) normalize() {
	if c.Concurrency < 1 {
		c.Concurrency = DefaultConcurrency
	}
	if c.PerPage < 1 {
		c.PerPage = DefaultPerPage
	}
	if c.SelectedCountTTL <= 0 {
		c.SelectedCountTTL = DefaultSelectedCountTTL
	}
}

// FileStore is the encrypted blob storage used by the exam services.
// storage.SecureStore implements it.
type FileStore interface {
	Seal(bucket, name string, plaintext []byte) error
	Open(bucket, name string) ([]byte, error)
	OpenInline(ciphertext string) ([]byte, error)
	Remove(bucket, name string) error
}

// Dependencies of the exam services. CacheRepo may be nil.
type Dependencies struct {
	BankSoalRepo  repository.BankSoalRepository
	KehadiranRepo repository.KehadiranRepository
	KelasRepo     repository.KelasRepository
	GuruRepo      repository.GuruRepository
	CacheRepo     repository.CacheRepository
	Files         FileStore
	Grader        Grader
	Config        *Config
	Now           func() time.Time
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Status of an attempt as shown in attendance listings
type Status string

const (
	StatusNotStarted Status = "not started"
	StatusInProgress Status = "in progress"
	StatusFinished   Status = "finished"
	StatusError      Status = "error"
)

// KehadiranStats are the derived numbers of one attendance row
type KehadiranStats struct {
	TotalSoal     int    `json:"total_soal"`
	Terjawab      int    `json:"terjawab"`
	TidakTerjawab int    `json:"tidak_terjawab"`
	Perbandingan  string `json:"perbandingan"`
	Status        Status `json:"status"`
	Progress      int    `json:"progress"`
}

// KehadiranView is an attendance row with its stats
type KehadiranView struct {
	entity.ManajemenKehadiran
	KehadiranStats
}

// JawabanInput is one submitted answer
type JawabanInput struct {
	ID      entity.SoalID `json:"id" binding:"required"`
	Jawaban string        `json:"jawaban"`
}

// PreviewItem is one selected question with the student's answer
type PreviewItem struct {
	ID       entity.SoalID `json:"id"`
	Soal     string        `json:"soal"`
	Jawaban  string        `json:"jawaban"`
	Selected bool          `json:"selected"`
	Type     string        `json:"type"`
	Options  []string      `json:"options"`
}

// PreviewResult is the answer review of one attempt
type PreviewResult struct {
	Kehadiran *entity.ManajemenKehadiran `json:"kehadiran"`
	Jawaban   []PreviewItem              `json:"jawaban_data"`
}
