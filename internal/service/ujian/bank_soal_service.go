package ujian

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
	"github.com/yourusername/sekolah-api/internal/storage"
)

// SoalInput is one question of a question bank
type SoalInput struct {
	ID         string `json:"id" validate:"required"`
	Soal       string `json:"soal" validate:"required_without=Pertanyaan"`
	Pertanyaan string `json:"pertanyaan"`
	A          string `json:"A"`
	B          string `json:"B"`
	C          string `json:"C"`
	D          string `json:"D"`
	E          string `json:"E"`
	Type       string `json:"type"`
	Selected   bool   `json:"selected"`
}

// BankSoalInput creates or updates an exam. A nil Soal on update keeps the
// stored question file.
type BankSoalInput struct {
	NamaUjian string `validate:"required"`
	MapelID   uint   `validate:"required"`
	Jenjang   string
	Waktu     int         `validate:"min=0"`
	Soal      []SoalInput `validate:"omitempty,dive"`
}

// BankSoalDetail is an exam with its decrypted questions
type BankSoalDetail struct {
	*entity.BankSoal
	Soal []entity.Soal `json:"soal"`
}

// BankSoalService manages exam definitions and their encrypted question files.
type BankSoalService struct {
	deps     *Dependencies
	validate *validator.Validate
}

// NewBankSoalService creates a new BankSoalService
func NewBankSoalService(deps *Dependencies) *BankSoalService {
	if deps.Config == nil {
		deps.Config = DefaultConfig()
	}
	deps.Config.normalize()
	return &BankSoalService{deps: deps, validate: validator.New()}
}

// List returns one page of exams
func (s *BankSoalService) List(ctx context.Context, search string, page, pageSize int) ([]entity.BankSoal, PageMeta, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.deps.Config.PerPage
	} else if pageSize > 100 {
		pageSize = 100
	}
	items, total, err := s.deps.BankSoalRepo.List(ctx, strings.TrimSpace(search), pageSize, (page-1)*pageSize)
	if err != nil {
		log.Printf("[BankSoalService] Error listing exams: %v", err)
		return nil, PageMeta{}, err
	}
	lastPage := int((total + int64(pageSize) - 1) / int64(pageSize))
	return items, PageMeta{Total: total, PerPage: pageSize, CurrentPage: page, LastPage: max(lastPage, 1)}, nil
}

// Get returns an exam with its questions. A missing question file yields an
// empty list.
func (s *BankSoalService) Get(ctx context.Context, id uint) (*BankSoalDetail, error) {
	bank, err := s.deps.BankSoalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &BankSoalDetail{BankSoal: bank, Soal: []entity.Soal{}}
	if bank.SoalFile == "" {
		return detail, nil
	}
	soal, err := loadSoal(s.deps.Files, bank)
	if err != nil {
		if storage.IsMissing(err) {
			return detail, nil
		}
		return nil, err
	}
	detail.Soal = soal
	return detail, nil
}

// Create stores the question file and the exam row. The author becomes the
// first penulis.
func (s *BankSoalService) Create(ctx context.Context, author Viewer, in BankSoalInput) (*entity.BankSoal, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	fileName, err := s.writeSoal(in.Soal)
	if err != nil {
		return nil, err
	}

	bank := &entity.BankSoal{
		NamaUjian: strings.TrimSpace(in.NamaUjian),
		MapelID:   in.MapelID,
		Jenjang:   in.Jenjang,
		Waktu:     in.Waktu,
		SoalFile:  fileName,
	}
	bank.SetPenulis(author.UserID)

	if err := s.deps.BankSoalRepo.Create(ctx, bank); err != nil {
		s.removeSoal(ctx, fileName)
		return nil, err
	}
	log.Printf("[BankSoalService] Exam #%d created by user #%d with %d questions", bank.ID, author.UserID, len(in.Soal))
	return bank, nil
}

// Update changes an exam. Guru may only edit exams they authored.
func (s *BankSoalService) Update(ctx context.Context, editor Viewer, id uint, in BankSoalInput) (*entity.BankSoal, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	bank, err := s.deps.BankSoalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := canEdit(editor, bank); err != nil {
		return nil, err
	}

	oldFile := bank.SoalFile
	bank.NamaUjian = strings.TrimSpace(in.NamaUjian)
	bank.MapelID = in.MapelID
	bank.Jenjang = in.Jenjang
	bank.Waktu = in.Waktu
	bank.Mapel = nil

	if in.Soal != nil {
		fileName, err := s.writeSoal(in.Soal)
		if err != nil {
			return nil, err
		}
		bank.SoalFile = fileName
	}

	if err := s.deps.BankSoalRepo.Update(ctx, bank); err != nil {
		if bank.SoalFile != oldFile {
			s.removeSoal(ctx, bank.SoalFile)
		}
		return nil, err
	}

	if bank.SoalFile != oldFile && oldFile != "" {
		s.removeSoal(ctx, oldFile)
	}
	return bank, nil
}

// Delete removes an exam and its question file. Attendance rows go with it.
func (s *BankSoalService) Delete(ctx context.Context, editor Viewer, id uint) error {
	bank, err := s.deps.BankSoalRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := canEdit(editor, bank); err != nil {
		return err
	}
	if err := s.deps.BankSoalRepo.Delete(ctx, id); err != nil {
		return err
	}
	if bank.SoalFile != "" {
		s.removeSoal(ctx, bank.SoalFile)
	}
	log.Printf("[BankSoalService] Exam #%d deleted by user #%d", id, editor.UserID)
	return nil
}

func canEdit(editor Viewer, bank *entity.BankSoal) error {
	switch editor.Role {
	case entity.RoleSuperAdmin:
		return nil
	case entity.RoleGuru:
		if bank.IsAuthor(editor.UserID) {
			return nil
		}
	}
	return fmt.Errorf("%w: user #%d cannot edit exam #%d", apperrors.ErrForbidden, editor.UserID, bank.ID)
}

func (s *BankSoalService) validateInput(in BankSoalInput) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	seen := make(map[string]struct{}, len(in.Soal))
	for _, q := range in.Soal {
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %q", apperrors.ErrValidation, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}

// writeSoal seals a new question file and returns its name
func (s *BankSoalService) writeSoal(in []SoalInput) (string, error) {
	soal := make([]entity.Soal, 0, len(in))
	for _, q := range in {
		typ := q.Type
		if typ == "" {
			typ = DefaultSoalType
		}
		soal = append(soal, entity.Soal{
			ID:         entity.SoalID(q.ID),
			Soal:       q.Soal,
			Pertanyaan: q.Pertanyaan,
			A:          q.A,
			B:          q.B,
			C:          q.C,
			D:          q.D,
			E:          q.E,
			Type:       typ,
			Selected:   entity.Flag(q.Selected),
		})
	}
	payload, err := json.Marshal(soal)
	if err != nil {
		return "", err
	}

	fileName := uuid.New().String() + answerFileExt
	if err := s.deps.Files.Seal(storage.BucketSoal, fileName, payload); err != nil {
		log.Printf("[BankSoalService] Failed to write question file %s: %v", fileName, err)
		return "", err
	}
	return fileName, nil
}

// removeSoal deletes a question file and its cached selected count
func (s *BankSoalService) removeSoal(ctx context.Context, fileName string) {
	if err := s.deps.Files.Remove(storage.BucketSoal, fileName); err != nil && !storage.IsMissing(err) {
		log.Printf("[BankSoalService] Failed to remove question file %s: %v", fileName, err)
	}
	if s.deps.CacheRepo != nil {
		if err := s.deps.CacheRepo.Delete(ctx, selectedCountKey(fileName)); err != nil {
			log.Printf("[BankSoalService] Failed to invalidate cache for %s: %v", fileName, err)
		}
	}
}
