package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJawaban_ListShape(t *testing.T) {
	// Arrange
	data := []byte(`[{"id":1,"soal":"a","jawaban":"A"},{"id":2,"soal":"b","jawaban":"  "},{"id":"3","soal":"c","jawaban":null}]`)

	// Act
	p, err := DecodeJawaban(data)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, JawabanShapeList, p.Shape)
	require.Len(t, p.Items, 3)
	assert.Equal(t, SoalID("1"), p.Items[0].ID)
	assert.Equal(t, 1, p.AnsweredCount())
}

func TestDecodeJawaban_MapShapeIsOrdered(t *testing.T) {
	data := []byte(`{"10":"B","2":"A","1":"","x":"C"}`)

	p, err := DecodeJawaban(data)

	require.NoError(t, err)
	assert.Equal(t, JawabanShapeMap, p.Shape)
	ids := make([]SoalID, 0, len(p.Items))
	for _, it := range p.Items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []SoalID{"1", "2", "10", "x"}, ids)
	assert.Equal(t, 3, p.AnsweredCount())

	ans, ok := p.Lookup("10")
	assert.True(t, ok)
	assert.Equal(t, "B", ans)
}

func TestDecodeJawaban_BothShapesAgree(t *testing.T) {
	list, err := DecodeJawaban([]byte(`[{"id":1,"soal":"","jawaban":"A"},{"id":2,"soal":"","jawaban":""}]`))
	require.NoError(t, err)
	mapping, err := DecodeJawaban([]byte(`{"2":"","1":"A"}`))
	require.NoError(t, err)

	assert.Equal(t, list.Items, mapping.Items)
	assert.Equal(t, list.AnsweredCount(), mapping.AnsweredCount())
}

func TestDecodeJawaban_Invalid(t *testing.T) {
	for _, raw := range []string{"", "null", "42", `"text"`, `[1,2`, `{"1": 5}`} {
		_, err := DecodeJawaban([]byte(raw))
		assert.Error(t, err, "payload %q", raw)
	}
}

func TestMergeJawaban_UnmatchedBecomeEmpty(t *testing.T) {
	soal := []Soal{{ID: "1", Soal: "a"}, {ID: "2", Pertanyaan: "b"}, {ID: "3", Soal: "c"}}
	answers := map[SoalID]string{"1": "A", "3": "C", "99": "Z"}

	merged := MergeJawaban(soal, answers)

	assert.Equal(t, []JawabanItem{
		{ID: "1", Soal: "a", Jawaban: "A"},
		{ID: "2", Soal: "b", Jawaban: ""},
		{ID: "3", Soal: "c", Jawaban: "C"},
	}, merged)
}
