package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SoalID is a question id normalized to a string. The JSON files may carry ids
// as strings or numbers.
type SoalID string

// UnmarshalJSON accepts a JSON string or number.
func (id *SoalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = SoalID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("question id must be a string or number: %w", err)
	}
	*id = SoalID(n.String())
	return nil
}

// Flag is a lenient boolean. Only true, 1 and "1" count as set.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch strings.TrimSpace(string(data)) {
	case "true", "1", `"1"`:
		*f = true
	default:
		*f = false
	}
	return nil
}

// Soal is one question record of a decrypted question file.
type Soal struct {
	ID         SoalID `json:"id"`
	Soal       string `json:"soal,omitempty"`
	Pertanyaan string `json:"pertanyaan,omitempty"`
	A          string `json:"A,omitempty"`
	B          string `json:"B,omitempty"`
	C          string `json:"C,omitempty"`
	D          string `json:"D,omitempty"`
	E          string `json:"E,omitempty"`
	Type       string `json:"type,omitempty"`
	Selected   Flag   `json:"selected"`
}

// Prompt returns the question text, falling back to Pertanyaan.
func (s Soal) Prompt() string {
	if s.Soal != "" {
		return s.Soal
	}
	return s.Pertanyaan
}

// Options returns the A..E answer options in order.
func (s Soal) Options() []string {
	return []string{s.A, s.B, s.C, s.D, s.E}
}

// DecodeSoalFile decodes a decrypted question file.
func DecodeSoalFile(data []byte) ([]Soal, error) {
	var soal []Soal
	if err := json.Unmarshal(data, &soal); err != nil {
		return nil, fmt.Errorf("decode question file: %w", err)
	}
	return soal, nil
}

// CountSelected counts the questions marked selected.
func CountSelected(soal []Soal) int {
	n := 0
	for _, s := range soal {
		if s.Selected {
			n++
		}
	}
	return n
}

// BlankJawaban builds the empty answer skeleton for every question,
// selected or not.
func BlankJawaban(soal []Soal) []JawabanItem {
	items := make([]JawabanItem, 0, len(soal))
	for _, s := range soal {
		items = append(items, JawabanItem{ID: s.ID, Soal: s.Prompt(), Jawaban: ""})
	}
	return items
}

// lessSoalID orders ids numerically when both parse as numbers, otherwise lexicographically.
func lessSoalID(a, b SoalID) bool {
	na, errA := strconv.ParseFloat(string(a), 64)
	nb, errB := strconv.ParseFloat(string(b), 64)
	if errA == nil && errB == nil {
		if na != nb {
			return na < nb
		}
		return a < b
	}
	if errA == nil {
		return true
	}
	if errB == nil {
		return false
	}
	return a < b
}
