package ujian

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/domain/repository"
)

// RaporSheetName is the worksheet name of the exported workbook
const RaporSheetName = "Rapor Nilai"

var raporHeaders = []string{"Nama Siswa", "NISN", "Mata Pelajaran", "Nilai", "Predikat"}

// RaporRow is one line of the grade report
type RaporRow struct {
	NamaSiswa string `json:"nama_siswa"`
	NISN      string `json:"nisn"`
	Mapel     string `json:"mapel"`
	Nilai     int    `json:"nilai"`
	Predikat  string `json:"predikat"`
}

// Predikat maps a score to its letter grade.
func Predikat(nilai int) string {
	switch {
	case nilai >= 90:
		return "A"
	case nilai >= 80:
		return "B"
	case nilai >= 70:
		return "C"
	case nilai >= 60:
		return "D"
	default:
		return "E"
	}
}

// NewRaporRow builds the report line of an attendance row.
func NewRaporRow(k *entity.ManajemenKehadiran) RaporRow {
	nilai := 0
	if !math.IsNaN(k.Skor) && !math.IsInf(k.Skor, 0) {
		nilai = int(math.Trunc(k.Skor))
	}
	return RaporRow{
		NamaSiswa: k.NamaSiswa(),
		NISN:      k.NISN(),
		Mapel:     k.NamaMapel(),
		Nilai:     nilai,
		Predikat:  Predikat(nilai),
	}
}

// RaporExporter builds the grade report of all attempts
type RaporExporter struct {
	deps *Dependencies
}

// NewRaporExporter creates a new RaporExporter
func NewRaporExporter(deps *Dependencies) *RaporExporter {
	return &RaporExporter{deps: deps}
}

// Rows returns the report lines, optionally limited to subjects matching mapel.
func (e *RaporExporter) Rows(ctx context.Context, mapel string) ([]RaporRow, error) {
	items, err := e.deps.KehadiranRepo.ListAll(ctx, repository.KehadiranFilter{NamaMapel: mapel})
	if err != nil {
		return nil, err
	}
	rows := make([]RaporRow, 0, len(items))
	for i := range items {
		rows = append(rows, NewRaporRow(&items[i]))
	}
	return rows, nil
}

// WriteXLSX streams rows into a workbook with a bold, centered header.
func WriteXLSX(w io.Writer, rows []RaporRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RaporSheetName); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(RaporSheetName)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	for col, width := range []float64{30, 15, 25, 10, 10} {
		if err := sw.SetColWidth(col+1, col+1, width); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}

	header := make([]interface{}, 0, len(raporHeaders))
	for _, h := range raporHeaders {
		header = append(header, excelize.Cell{StyleID: headerStyle, Value: h})
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			sanitizeForExcel(r.NamaSiswa),
			sanitizeForExcel(r.NISN),
			sanitizeForExcel(r.Mapel),
			r.Nilai,
			r.Predikat,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

// WriteCSV writes rows as UTF-8 CSV with a BOM so Excel picks the encoding.
func WriteCSV(w io.Writer, rows []RaporRow) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(raporHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			sanitizeForExcel(r.NamaSiswa),
			sanitizeForExcel(r.NISN),
			sanitizeForExcel(r.Mapel),
			strconv.Itoa(r.Nilai),
			r.Predikat,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// sanitizeForExcel guards against formula injection in Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 || s == "-" {
		return s
	}
	// characters that start a formula in Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
