package ujian

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
	"github.com/yourusername/sekolah-api/internal/storage"
)

func TestAggregator_MappingExample(t *testing.T) {
	// Arrange: 3 selected + 2 unselected questions, mapping answers
	env := newTestEnv(t)
	bank := &entity.BankSoal{ID: 1, SoalFile: env.writeSoal(t, "soal-1.opz", fiveSoal)}
	ref := env.writeJawaban(t, "5-1-1.opz", `{"q1":"A","q2":"","q3":"C"}`)
	row := entity.ManajemenKehadiran{ID: 10, UserID: 5, UjianID: 1, JawabanFile: ref, Ujian: bank}
	agg := NewAggregator(env.deps)

	// Act
	stats := agg.Compute(context.Background(), &row)

	// Assert
	assert.Equal(t, KehadiranStats{
		TotalSoal:     3,
		Terjawab:      2,
		TidakTerjawab: 1,
		Perbandingan:  "2/3",
		Status:        StatusInProgress,
		Progress:      67,
	}, stats)
}

func TestAggregator_ListAndMapShapesAgree(t *testing.T) {
	env := newTestEnv(t)
	bank := &entity.BankSoal{ID: 1, SoalFile: env.writeSoal(t, "soal-1.opz", fiveSoal)}
	listRef := env.writeJawaban(t, "list.opz", `[{"id":"q1","soal":"Satu","jawaban":"A"},{"id":"q2","soal":"Dua","jawaban":" "},{"id":"q3","soal":"Tiga","jawaban":"C"}]`)
	mapRef := env.writeJawaban(t, "map.opz", `{"q3":"C","q1":"A","q2":" "}`)
	agg := NewAggregator(env.deps)

	list := agg.Compute(context.Background(), &entity.ManajemenKehadiran{ID: 1, JawabanFile: listRef, Ujian: bank})
	mapping := agg.Compute(context.Background(), &entity.ManajemenKehadiran{ID: 2, JawabanFile: mapRef, Ujian: bank})

	assert.Equal(t, list, mapping)
	assert.Equal(t, 2, list.Terjawab)
}

func TestAggregator_FinishedAndNotStarted(t *testing.T) {
	env := newTestEnv(t)
	bank := &entity.BankSoal{ID: 1, SoalFile: env.writeSoal(t, "soal-1.opz", fiveSoal)}
	done := env.writeJawaban(t, "done.opz", `{"q1":"A","q2":"B","q3":"C"}`)
	blank := env.writeJawaban(t, "blank.opz", `[{"id":"q1","soal":"Satu","jawaban":""}]`)
	agg := NewAggregator(env.deps)

	finished := agg.Compute(context.Background(), &entity.ManajemenKehadiran{JawabanFile: done, Ujian: bank})
	notStarted := agg.Compute(context.Background(), &entity.ManajemenKehadiran{JawabanFile: blank, Ujian: bank})
	noAnswerRef := agg.Compute(context.Background(), &entity.ManajemenKehadiran{Ujian: bank})

	assert.Equal(t, StatusFinished, finished.Status)
	assert.Equal(t, 100, finished.Progress)
	assert.Equal(t, StatusNotStarted, notStarted.Status)
	assert.Equal(t, 0, notStarted.Progress)
	assert.Equal(t, NewStats(3, 0), noAnswerRef)
}

func TestAggregator_MissingExamGivesZeroTotals(t *testing.T) {
	env := newTestEnv(t)
	env.bankRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, apperrors.ErrNotFound)
	agg := NewAggregator(env.deps)

	missingBank := agg.Compute(context.Background(), &entity.ManajemenKehadiran{UjianID: 99, JawabanFile: "x.opz"})
	noSoalFile := agg.Compute(context.Background(), &entity.ManajemenKehadiran{Ujian: &entity.BankSoal{ID: 3}})

	assert.Equal(t, NewStats(0, 0), missingBank)
	assert.Equal(t, StatusNotStarted, missingBank.Status)
	assert.Equal(t, "0/0", noSoalFile.Perbandingan)
	env.bankRepo.AssertExpectations(t)
}

func TestAggregator_BatchIsolatesFailures(t *testing.T) {
	// Arrange: the middle row has a corrupted answer file, the last one a missing file
	env := newTestEnv(t)
	bank := &entity.BankSoal{ID: 1, SoalFile: env.writeSoal(t, "soal-1.opz", fiveSoal)}
	good := env.writeJawaban(t, "good.opz", `{"q1":"A"}`)
	require.NoError(t, os.WriteFile(filepath.Join(env.baseDir, storage.BucketJawaban, "bad.opz"), []byte("garbage"), 0o644))
	rows := []entity.ManajemenKehadiran{
		{ID: 1, JawabanFile: good, Ujian: bank},
		{ID: 2, JawabanFile: "bad.opz", Ujian: bank},
		{ID: 3, JawabanFile: "gone.opz", Ujian: bank},
		{ID: 4, JawabanFile: "not-a-file-and-not-hex", Ujian: bank},
	}
	agg := NewAggregator(env.deps)

	// Act
	stats := agg.Aggregate(context.Background(), rows)

	// Assert
	require.Len(t, stats, 4)
	assert.Equal(t, 1, stats[0].Terjawab)
	for _, s := range stats[1:] {
		assert.Equal(t, ErrorStats(), s)
		assert.Equal(t, 0, s.TotalSoal)
		assert.Equal(t, StatusError, s.Status)
	}
}

func TestAggregator_CorruptedQuestionFileIsError(t *testing.T) {
	env := newTestEnv(t)
	bank := &entity.BankSoal{ID: 1, SoalFile: env.writeSoal(t, "obj.opz", `{"not":"a list"}`)}
	agg := NewAggregator(env.deps)

	stats := agg.Compute(context.Background(), &entity.ManajemenKehadiran{Ujian: bank})

	assert.Equal(t, StatusError, stats.Status)
}

func TestAggregator_PreservesOrderUnderConcurrency(t *testing.T) {
	env := newTestEnv(t)
	env.deps.Config.Concurrency = 3
	bank := &entity.BankSoal{ID: 1, SoalFile: env.writeSoal(t, "soal-1.opz", fiveSoal)}

	answers := []string{`{}`, `{"q1":"A"}`, `{"q1":"A","q2":"B"}`, `{"q1":"A","q2":"B","q3":"C"}`}
	rows := make([]entity.ManajemenKehadiran, 0, 20)
	for i := 0; i < 20; i++ {
		ref := env.writeJawaban(t, fmt.Sprintf("r%d.opz", i), answers[i%len(answers)])
		rows = append(rows, entity.ManajemenKehadiran{ID: uint(i + 1), JawabanFile: ref, Ujian: bank})
	}
	agg := NewAggregator(env.deps)

	views := agg.Views(context.Background(), rows)

	require.Len(t, views, 20)
	for i, v := range views {
		assert.Equal(t, uint(i+1), v.ID)
		assert.Equal(t, i%len(answers), v.Terjawab, "row %d", i)
	}
}

func TestAggregator_UsesSelectedCountCache(t *testing.T) {
	// Arrange: the question file does not exist, so the count must come from the cache
	env := newTestEnv(t)
	cache := new(MockCacheRepo)
	cache.On("GetInt", "soal:selected:cached.opz").Return(4, nil)
	env.deps.CacheRepo = cache
	agg := NewAggregator(env.deps)

	stats := agg.Compute(context.Background(), &entity.ManajemenKehadiran{Ujian: &entity.BankSoal{ID: 1, SoalFile: "cached.opz"}})

	assert.Equal(t, 4, stats.TotalSoal)
	cache.AssertExpectations(t)
}

func TestAggregator_FillsCacheOnMiss(t *testing.T) {
	env := newTestEnv(t)
	cache := new(MockCacheRepo)
	cache.On("GetInt", "soal:selected:soal-1.opz").Return(0, apperrors.ErrNotFound)
	cache.On("Set", "soal:selected:soal-1.opz", 3, DefaultSelectedCountTTL).Return(nil)
	env.deps.CacheRepo = cache
	bank := &entity.BankSoal{ID: 1, SoalFile: env.writeSoal(t, "soal-1.opz", fiveSoal)}
	agg := NewAggregator(env.deps)

	stats := agg.Compute(context.Background(), &entity.ManajemenKehadiran{Ujian: bank})

	assert.Equal(t, 3, stats.TotalSoal)
	cache.AssertExpectations(t)
}

func TestNewStats_Properties(t *testing.T) {
	for total := 0; total <= 12; total++ {
		for answered := 0; answered <= 14; answered++ {
			s := NewStats(total, answered)

			assert.GreaterOrEqual(t, s.Progress, 0)
			assert.LessOrEqual(t, s.Progress, 100)
			if total == 0 {
				assert.Equal(t, 0, s.Progress)
			} else if answered <= total {
				want := int(math.Round(float64(answered) / float64(total) * 100))
				assert.Equal(t, want, s.Progress)
			}

			finished := answered == total && total > 0
			assert.Equal(t, finished, s.Status == StatusFinished, "total=%d answered=%d", total, answered)
			if answered == 0 {
				assert.Equal(t, StatusNotStarted, s.Status)
			}
			assert.Equal(t, fmt.Sprintf("%d/%d", answered, total), s.Perbandingan)
			assert.GreaterOrEqual(t, s.TidakTerjawab, 0)
		}
	}
}
