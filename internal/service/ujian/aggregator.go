package ujian

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
)

// Aggregator computes progress stats for attendance rows
type Aggregator struct {
	deps *Dependencies
}

// NewAggregator creates a new Aggregator
func NewAggregator(deps *Dependencies) *Aggregator {
	if deps.Config == nil {
		deps.Config = DefaultConfig()
	}
	deps.Config.normalize()
	return &Aggregator{deps: deps}
}

// Aggregate computes stats for every row in parallel. The result has the same
// order as rows. A failing row degrades to ErrorStats and never fails the batch.
func (a *Aggregator) Aggregate(ctx context.Context, rows []entity.ManajemenKehadiran) []KehadiranStats {
	out := make([]KehadiranStats, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.deps.Config.Concurrency)
	for i := range rows {
		g.Go(func() error {
			out[i] = a.Compute(gctx, &rows[i])
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// Views pairs rows with their stats.
func (a *Aggregator) Views(ctx context.Context, rows []entity.ManajemenKehadiran) []KehadiranView {
	stats := a.Aggregate(ctx, rows)
	views := make([]KehadiranView, len(rows))
	for i := range rows {
		views[i] = KehadiranView{ManajemenKehadiran: rows[i], KehadiranStats: stats[i]}
	}
	return views
}

// Compute returns the stats of one row.
func (a *Aggregator) Compute(ctx context.Context, k *entity.ManajemenKehadiran) KehadiranStats {
	stats, err := a.compute(ctx, k)
	if err != nil {
		log.Printf("[Aggregator] Error processing kehadiran #%d: %v", k.ID, err)
		return ErrorStats()
	}
	return stats
}

func (a *Aggregator) compute(ctx context.Context, k *entity.ManajemenKehadiran) (KehadiranStats, error) {
	if err := ctx.Err(); err != nil {
		return KehadiranStats{}, err
	}

	bank := k.Ujian
	if bank == nil {
		var err error
		bank, err = a.deps.BankSoalRepo.GetByID(ctx, k.UjianID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return NewStats(0, 0), nil
			}
			return KehadiranStats{}, err
		}
	}
	if bank.SoalFile == "" {
		return NewStats(0, 0), nil
	}

	total, err := a.deps.selectedCount(ctx, bank)
	if err != nil {
		return KehadiranStats{}, err
	}

	terjawab := 0
	if k.JawabanFile != "" {
		payload, err := loadJawaban(a.deps.Files, k.JawabanFile)
		if err != nil {
			return KehadiranStats{}, err
		}
		terjawab = payload.AnsweredCount()
	}

	return NewStats(total, terjawab), nil
}
