package ujian

import (
	"github.com/yourusername/sekolah-api/internal/domain/entity"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
)

// Grade is the scoring outcome of a submission
type Grade struct {
	Benar int
	Salah int
	Skor  float64
}

// Grader scores a merged answer sheet against its question set
type Grader interface {
	Grade(soal []entity.Soal, jawaban []entity.JawabanItem) (Grade, error)
}

// PlaceholderGrader keeps every score at zero. Question files carry no answer
// key yet, so it always reports ErrGradingNotImplemented.
type PlaceholderGrader struct{}

// Grade implements Grader
func (PlaceholderGrader) Grade(_ []entity.Soal, _ []entity.JawabanItem) (Grade, error) {
	return Grade{}, apperrors.ErrGradingNotImplemented
}
