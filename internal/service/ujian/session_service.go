package ujian

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
	"github.com/yourusername/sekolah-api/internal/storage"
)

// SessionService runs the exam attempt lifecycle: start, submit, review.
type SessionService struct {
	deps *Dependencies
}

// NewSessionService creates a new SessionService
func NewSessionService(deps *Dependencies) *SessionService {
	if deps.Config == nil {
		deps.Config = DefaultConfig()
	}
	deps.Config.normalize()
	if deps.Grader == nil {
		deps.Grader = PlaceholderGrader{}
	}
	return &SessionService{deps: deps}
}

// ListUjian returns every exam, newest first
func (s *SessionService) ListUjian(ctx context.Context) ([]entity.BankSoal, error) {
	return s.deps.BankSoalRepo.ListAll(ctx)
}

// Start opens an attempt: it writes an empty answer sheet for every question
// and inserts the attendance row.
func (s *SessionService) Start(ctx context.Context, userID, ujianID uint) (*entity.ManajemenKehadiran, error) {
	// The unique index is authoritative, this only spares the file write.
	existing, err := s.deps.KehadiranRepo.FindByUserAndUjian(ctx, userID, ujianID)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("%w: user #%d exam #%d", apperrors.ErrDuplicateAttempt, userID, ujianID)
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	bank, err := s.deps.BankSoalRepo.GetByID(ctx, ujianID)
	if err != nil {
		return nil, err
	}

	soal, err := loadSoal(s.deps.Files, bank)
	if err != nil {
		return nil, err
	}

	payload, err := marshalJawaban(entity.BlankJawaban(soal))
	if err != nil {
		return nil, err
	}

	fileName := answerFileName(userID, bank.ID, s.deps.now().UnixMilli())
	if err := s.deps.Files.Seal(storage.BucketJawaban, fileName, payload); err != nil {
		return nil, err
	}

	kehadiran := &entity.ManajemenKehadiran{
		UserID:      userID,
		UjianID:     bank.ID,
		JawabanFile: fileName,
	}
	if err := s.deps.KehadiranRepo.Create(ctx, kehadiran); err != nil {
		if rmErr := s.deps.Files.Remove(storage.BucketJawaban, fileName); rmErr != nil {
			log.Printf("[SessionService] Failed to remove orphan answer file %s: %v", fileName, rmErr)
		}
		return nil, err
	}

	log.Printf("[SessionService] User #%d started exam #%d (kehadiran #%d)", userID, bank.ID, kehadiran.ID)
	return kehadiran, nil
}

// Submit merges answers into the question set and overwrites the answer sheet.
// Concurrent submits for one attempt are last-write-wins.
func (s *SessionService) Submit(ctx context.Context, userID, ujianID uint, answers []JawabanInput) (*entity.ManajemenKehadiran, error) {
	kehadiran, err := s.deps.KehadiranRepo.FindByUserAndUjian(ctx, userID, ujianID)
	if err != nil {
		return nil, err
	}

	bank, err := s.deps.BankSoalRepo.GetByID(ctx, ujianID)
	if err != nil {
		return nil, err
	}

	soal, err := loadSoal(s.deps.Files, bank)
	if err != nil {
		return nil, err
	}

	byID := make(map[entity.SoalID]string, len(answers))
	for _, a := range answers {
		byID[a.ID] = a.Jawaban
	}
	merged := entity.MergeJawaban(soal, byID)

	payload, err := marshalJawaban(merged)
	if err != nil {
		return nil, err
	}

	fileName := kehadiran.JawabanFile
	if !isFileRef(fileName) {
		// legacy rows kept the ciphertext inline; move them to a file
		fileName = answerFileName(userID, ujianID, s.deps.now().UnixMilli())
	}
	if err := s.deps.Files.Seal(storage.BucketJawaban, fileName, payload); err != nil {
		return nil, err
	}

	grade, err := s.deps.Grader.Grade(soal, merged)
	if err != nil {
		if !errors.Is(err, apperrors.ErrGradingNotImplemented) {
			return nil, err
		}
		log.Printf("[SessionService] Grading skipped for kehadiran #%d: %v", kehadiran.ID, err)
	}

	if err := s.deps.KehadiranRepo.UpdateHasil(ctx, kehadiran.ID, fileName, grade.Benar, grade.Salah, grade.Skor); err != nil {
		return nil, err
	}

	kehadiran.JawabanFile = fileName
	kehadiran.Benar = grade.Benar
	kehadiran.Salah = grade.Salah
	kehadiran.Skor = grade.Skor
	return kehadiran, nil
}

// Preview returns the selected questions of an attempt with the owner's answers.
func (s *SessionService) Preview(ctx context.Context, userID, kehadiranID uint) (*PreviewResult, error) {
	kehadiran, err := s.deps.KehadiranRepo.GetByIDForUser(ctx, kehadiranID, userID)
	if err != nil {
		return nil, err
	}
	if kehadiran.JawabanFile == "" {
		return nil, fmt.Errorf("%w: kehadiran #%d has no answer file", apperrors.ErrFileMissing, kehadiran.ID)
	}

	payload, err := loadJawaban(s.deps.Files, kehadiran.JawabanFile)
	if err != nil {
		return nil, err
	}

	bank := kehadiran.Ujian
	if bank == nil {
		if bank, err = s.deps.BankSoalRepo.GetByID(ctx, kehadiran.UjianID); err != nil {
			return nil, err
		}
	}

	var soal []entity.Soal
	if bank.SoalFile != "" {
		if soal, err = loadSoal(s.deps.Files, bank); err != nil {
			return nil, err
		}
	}

	items := make([]PreviewItem, 0, len(soal))
	for _, q := range soal {
		if !q.Selected {
			continue
		}
		jawaban, _ := payload.Lookup(q.ID)
		prompt := q.Prompt()
		if prompt == "" {
			prompt = "Soal " + string(q.ID)
		}
		typ := q.Type
		if typ == "" {
			typ = DefaultSoalType
		}
		items = append(items, PreviewItem{
			ID:       q.ID,
			Soal:     prompt,
			Jawaban:  jawaban,
			Selected: true,
			Type:     typ,
			Options:  q.Options(),
		})
	}

	return &PreviewResult{Kehadiran: kehadiran, Jawaban: items}, nil
}

// BlankAnswers returns the empty answer sheet of an exam without storing it.
func (s *SessionService) BlankAnswers(ctx context.Context, ujianID uint) ([]entity.JawabanItem, error) {
	bank, err := s.deps.BankSoalRepo.GetByID(ctx, ujianID)
	if err != nil {
		return nil, err
	}
	soal, err := loadSoal(s.deps.Files, bank)
	if err != nil {
		return nil, err
	}
	return entity.BlankJawaban(soal), nil
}

// FileContent returns the decrypted answer payload of an attempt as stored.
func (s *SessionService) FileContent(ctx context.Context, kehadiranID uint) (json.RawMessage, error) {
	kehadiran, err := s.deps.KehadiranRepo.GetByID(ctx, kehadiranID)
	if err != nil {
		return nil, err
	}
	if kehadiran.JawabanFile == "" {
		return nil, fmt.Errorf("%w: kehadiran #%d has no answer file", apperrors.ErrFileMissing, kehadiran.ID)
	}

	raw, err := loadJawabanRaw(s.deps.Files, kehadiran.JawabanFile)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: answer payload of kehadiran #%d is not JSON", apperrors.ErrDecryptOrParse, kehadiran.ID)
	}
	return json.RawMessage(raw), nil
}
