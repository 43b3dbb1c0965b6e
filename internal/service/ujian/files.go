package ujian

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
	"github.com/yourusername/sekolah-api/internal/storage"
)

const answerFileExt = ".opz"

// selectedCountKey is the cache key of the selected-question count of a question file
func selectedCountKey(soalFile string) string {
	return "soal:selected:" + soalFile
}

// isFileRef tells a file name apart from a legacy inline ciphertext.
func isFileRef(ref string) bool {
	return strings.HasSuffix(ref, answerFileExt) && !strings.ContainsAny(ref, `/\`)
}

// answerFileName builds {userId}-{examId}-{unixMillis}.opz
func answerFileName(userID, ujianID uint, millis int64) string {
	return fmt.Sprintf("%d-%d-%d%s", userID, ujianID, millis, answerFileExt)
}

// loadSoal reads and decodes the question file of an exam.
func loadSoal(files FileStore, bank *entity.BankSoal) ([]entity.Soal, error) {
	if bank.SoalFile == "" {
		return nil, fmt.Errorf("%w: exam #%d has no question file", apperrors.ErrFileMissing, bank.ID)
	}
	raw, err := files.Open(storage.BucketSoal, bank.SoalFile)
	if err != nil {
		return nil, err
	}
	soal, err := entity.DecodeSoalFile(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDecryptOrParse, err)
	}
	return soal, nil
}

// loadJawabanRaw returns the decrypted answer payload behind a reference.
func loadJawabanRaw(files FileStore, ref string) ([]byte, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: empty answer reference", apperrors.ErrFileMissing)
	}
	if isFileRef(ref) {
		return files.Open(storage.BucketJawaban, ref)
	}
	return files.OpenInline(ref)
}

// loadJawaban reads and decodes an answer payload.
func loadJawaban(files FileStore, ref string) (*entity.JawabanPayload, error) {
	raw, err := loadJawabanRaw(files, ref)
	if err != nil {
		return nil, err
	}
	payload, err := entity.DecodeJawaban(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDecryptOrParse, err)
	}
	return payload, nil
}

// selectedCount returns the number of selected questions of an exam, using the
// cache when one is configured. Cache failures only cost a file read.
func (d *Dependencies) selectedCount(ctx context.Context, bank *entity.BankSoal) (int, error) {
	key := selectedCountKey(bank.SoalFile)
	if d.CacheRepo != nil {
		n, err := d.CacheRepo.GetInt(ctx, key)
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[Ujian] Cache read failed for %s: %v", key, err)
		}
	}

	soal, err := loadSoal(d.Files, bank)
	if err != nil {
		return 0, err
	}
	n := entity.CountSelected(soal)

	if d.CacheRepo != nil {
		if err := d.CacheRepo.Set(ctx, key, n, d.Config.SelectedCountTTL); err != nil {
			log.Printf("[Ujian] Cache write failed for %s: %v", key, err)
		}
	}
	return n, nil
}

func marshalJawaban(items []entity.JawabanItem) ([]byte, error) {
	return json.Marshal(items)
}
