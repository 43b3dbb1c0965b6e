package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// JawabanShape tells which encoding an answer payload was stored in.
type JawabanShape int

const (
	// JawabanShapeList is [{"id":..,"soal":..,"jawaban":..}, ...]
	JawabanShapeList JawabanShape = iota
	// JawabanShapeMap is {"<questionId>": "<answer>", ...}
	JawabanShapeMap
)

// ErrInvalidJawaban is returned when a payload matches neither shape.
var ErrInvalidJawaban = errors.New("answer payload is neither a list nor a map")

// JawabanItem is one canonical answer entry.
type JawabanItem struct {
	ID      SoalID `json:"id"`
	Soal    string `json:"soal"`
	Jawaban string `json:"jawaban"`
}

// Answered reports whether the trimmed answer is non-empty.
func (j JawabanItem) Answered() bool {
	return strings.TrimSpace(j.Jawaban) != ""
}

// JawabanPayload is a decoded answer file in canonical order.
type JawabanPayload struct {
	Shape JawabanShape
	Items []JawabanItem
}

type jawabanListEntry struct {
	ID      SoalID  `json:"id"`
	Soal    string  `json:"soal"`
	Jawaban *string `json:"jawaban"`
}

// DecodeJawaban decodes either answer shape into one canonical list.
// Map keys are sorted (numeric ids numerically) so the result is deterministic.
func DecodeJawaban(data []byte) (*JawabanPayload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrInvalidJawaban
	}

	switch trimmed[0] {
	case '[':
		var entries []jawabanListEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("decode answer list: %w", err)
		}
		items := make([]JawabanItem, 0, len(entries))
		for _, e := range entries {
			item := JawabanItem{ID: e.ID, Soal: e.Soal}
			if e.Jawaban != nil {
				item.Jawaban = *e.Jawaban
			}
			items = append(items, item)
		}
		return &JawabanPayload{Shape: JawabanShapeList, Items: items}, nil

	case '{':
		var m map[string]*string
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, fmt.Errorf("decode answer map: %w", err)
		}
		ids := make([]SoalID, 0, len(m))
		for k := range m {
			ids = append(ids, SoalID(k))
		}
		sort.Slice(ids, func(i, j int) bool { return lessSoalID(ids[i], ids[j]) })
		items := make([]JawabanItem, 0, len(ids))
		for _, id := range ids {
			item := JawabanItem{ID: id}
			if v := m[string(id)]; v != nil {
				item.Jawaban = *v
			}
			items = append(items, item)
		}
		return &JawabanPayload{Shape: JawabanShapeMap, Items: items}, nil
	}

	return nil, ErrInvalidJawaban
}

// AnsweredCount counts entries with a non-blank answer.
func (p *JawabanPayload) AnsweredCount() int {
	n := 0
	for _, it := range p.Items {
		if it.Answered() {
			n++
		}
	}
	return n
}

// Lookup returns the answer for a question id.
func (p *JawabanPayload) Lookup(id SoalID) (string, bool) {
	for _, it := range p.Items {
		if it.ID == id {
			return it.Jawaban, true
		}
	}
	return "", false
}

// MergeJawaban builds the stored answer list for a question set: every question
// gets the submitted answer with the same id, or an empty answer.
func MergeJawaban(soal []Soal, answers map[SoalID]string) []JawabanItem {
	items := make([]JawabanItem, 0, len(soal))
	for _, s := range soal {
		items = append(items, JawabanItem{ID: s.ID, Soal: s.Prompt(), Jawaban: answers[s.ID]})
	}
	return items
}
