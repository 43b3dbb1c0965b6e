package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDataKelas_Lists(t *testing.T) {
	k := DataKelas{}
	k.SetGuruPengampu([]string{"1987001", "1987002"})
	k.SetSiswa(nil)

	gurus, err := k.GuruPengampuList()
	require.NoError(t, err)
	assert.Equal(t, []string{"1987001", "1987002"}, gurus)

	siswa, err := k.SiswaList()
	require.NoError(t, err)
	assert.Empty(t, siswa)
	assert.Equal(t, "[]", string(k.Siswa))
}

func TestDataKelas_ListsAcceptNumbers(t *testing.T) {
	k := DataKelas{Siswa: datatypes.JSON(`["0051", 12345]`)}

	siswa, err := k.SiswaList()

	require.NoError(t, err)
	assert.Equal(t, []string{"0051", "12345"}, siswa)
}

func TestBankSoal_Penulis(t *testing.T) {
	b := BankSoal{}
	b.SetPenulis(7, 9)

	assert.True(t, b.IsAuthor(7))
	assert.False(t, b.IsAuthor(8))
	assert.Equal(t, `["7"]`, JSONContains("7"))
}
