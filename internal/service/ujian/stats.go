package ujian

import (
	"fmt"
	"math"
)

// NewStats derives the listing stats from the two counts.
func NewStats(totalSoal, terjawab int) KehadiranStats {
	status := StatusInProgress
	switch {
	case terjawab == 0:
		status = StatusNotStarted
	case terjawab == totalSoal && totalSoal > 0:
		status = StatusFinished
	}

	progress := 0
	if totalSoal > 0 {
		progress = int(math.Round(float64(terjawab) / float64(totalSoal) * 100))
		progress = max(0, min(progress, 100))
	}

	return KehadiranStats{
		TotalSoal:     totalSoal,
		Terjawab:      terjawab,
		TidakTerjawab: max(totalSoal-terjawab, 0),
		Perbandingan:  fmt.Sprintf("%d/%d", terjawab, totalSoal),
		Status:        status,
		Progress:      progress,
	}
}

// ErrorStats is what a row degrades to when its files cannot be read.
func ErrorStats() KehadiranStats {
	return KehadiranStats{Perbandingan: "0/0", Status: StatusError}
}
