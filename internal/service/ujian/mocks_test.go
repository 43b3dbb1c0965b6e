package ujian

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/domain/repository"
	"github.com/yourusername/sekolah-api/internal/storage"
	"github.com/yourusername/sekolah-api/pkg/crypto"
)

// ============================================================================
// Mock repositories
// ============================================================================

type MockBankSoalRepo struct {
	mock.Mock
}

func (m *MockBankSoalRepo) Create(ctx context.Context, bank *entity.BankSoal) error {
	return m.Called(ctx, bank).Error(0)
}

func (m *MockBankSoalRepo) Update(ctx context.Context, bank *entity.BankSoal) error {
	return m.Called(ctx, bank).Error(0)
}

func (m *MockBankSoalRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBankSoalRepo) GetByID(ctx context.Context, id uint) (*entity.BankSoal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BankSoal), args.Error(1)
}

func (m *MockBankSoalRepo) List(ctx context.Context, search string, limit, offset int) ([]entity.BankSoal, int64, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]entity.BankSoal), args.Get(1).(int64), args.Error(2)
}

func (m *MockBankSoalRepo) ListAll(ctx context.Context) ([]entity.BankSoal, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.BankSoal), args.Error(1)
}

func (m *MockBankSoalRepo) ListByPenulis(ctx context.Context, userID uint) ([]entity.BankSoal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entity.BankSoal), args.Error(1)
}

func (m *MockBankSoalRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockKehadiranRepo struct {
	mock.Mock
}

func (m *MockKehadiranRepo) Create(ctx context.Context, k *entity.ManajemenKehadiran) error {
	return m.Called(ctx, k).Error(0)
}

func (m *MockKehadiranRepo) GetByID(ctx context.Context, id uint) (*entity.ManajemenKehadiran, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManajemenKehadiran), args.Error(1)
}

func (m *MockKehadiranRepo) GetByIDForUser(ctx context.Context, id, userID uint) (*entity.ManajemenKehadiran, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManajemenKehadiran), args.Error(1)
}

func (m *MockKehadiranRepo) FindByUserAndUjian(ctx context.Context, userID, ujianID uint) (*entity.ManajemenKehadiran, error) {
	args := m.Called(ctx, userID, ujianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManajemenKehadiran), args.Error(1)
}

func (m *MockKehadiranRepo) UpdateHasil(ctx context.Context, id uint, jawabanFile string, benar, salah int, skor float64) error {
	return m.Called(ctx, id, jawabanFile, benar, salah, skor).Error(0)
}

func (m *MockKehadiranRepo) List(ctx context.Context, filter repository.KehadiranFilter, limit, offset int) ([]entity.ManajemenKehadiran, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	return args.Get(0).([]entity.ManajemenKehadiran), args.Get(1).(int64), args.Error(2)
}

func (m *MockKehadiranRepo) Count(ctx context.Context, filter repository.KehadiranFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockKehadiranRepo) ListAll(ctx context.Context, filter repository.KehadiranFilter) ([]entity.ManajemenKehadiran, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]entity.ManajemenKehadiran), args.Error(1)
}

type MockKelasRepo struct {
	mock.Mock
}

func (m *MockKelasRepo) Create(kelas *entity.DataKelas) error { return m.Called(kelas).Error(0) }
func (m *MockKelasRepo) Update(kelas *entity.DataKelas) error { return m.Called(kelas).Error(0) }
func (m *MockKelasRepo) Delete(id uint) error                 { return m.Called(id).Error(0) }

func (m *MockKelasRepo) GetByID(id uint) (*entity.DataKelas, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DataKelas), args.Error(1)
}

func (m *MockKelasRepo) List(search string, limit, offset int) ([]entity.DataKelas, int64, error) {
	args := m.Called(search, limit, offset)
	return args.Get(0).([]entity.DataKelas), args.Get(1).(int64), args.Error(2)
}

func (m *MockKelasRepo) FindByGuruPengampu(nip string) ([]entity.DataKelas, error) {
	args := m.Called(nip)
	return args.Get(0).([]entity.DataKelas), args.Error(1)
}

func (m *MockKelasRepo) ExistsWaliKelas(nip string) (bool, error) {
	args := m.Called(nip)
	return args.Bool(0), args.Error(1)
}

func (m *MockKelasRepo) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type MockGuruRepo struct {
	mock.Mock
}

func (m *MockGuruRepo) CreateWithUser(user *entity.User, guru *entity.DataGuru) error {
	return m.Called(user, guru).Error(0)
}

func (m *MockGuruRepo) UpdateWithUser(user *entity.User, guru *entity.DataGuru) error {
	return m.Called(user, guru).Error(0)
}

func (m *MockGuruRepo) Delete(id uint) error { return m.Called(id).Error(0) }

func (m *MockGuruRepo) GetByID(id uint) (*entity.DataGuru, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DataGuru), args.Error(1)
}

func (m *MockGuruRepo) GetByUserID(userID uint) (*entity.DataGuru, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DataGuru), args.Error(1)
}

func (m *MockGuruRepo) List(search string, limit, offset int) ([]entity.DataGuru, int64, error) {
	args := m.Called(search, limit, offset)
	return args.Get(0).([]entity.DataGuru), args.Get(1).(int64), args.Error(2)
}

func (m *MockGuruRepo) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(key, value, ttl).Error(0)
}

func (m *MockCacheRepo) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepo) GetInt(ctx context.Context, key string) (int, error) {
	args := m.Called(key)
	return args.Int(0), args.Error(1)
}

func (m *MockCacheRepo) Delete(ctx context.Context, keys ...string) error {
	return m.Called(keys).Error(0)
}

func (m *MockCacheRepo) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(key, value, ttl).Error(0)
}

func (m *MockCacheRepo) GetJSON(ctx context.Context, key string, dest interface{}) error {
	return m.Called(key, dest).Error(0)
}

// ============================================================================
// Helpers
// ============================================================================

type testEnv struct {
	deps      *Dependencies
	bankRepo  *MockBankSoalRepo
	hadirRepo *MockKehadiranRepo
	kelasRepo *MockKelasRepo
	guruRepo  *MockGuruRepo
	files     *storage.SecureStore
	baseDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	base := t.TempDir()
	fs, err := storage.NewFSStore(base)
	require.NoError(t, err)
	enc, err := crypto.NewAESGCM("unit-test-key")
	require.NoError(t, err)
	files := storage.NewSecureStore(fs, enc)

	env := &testEnv{
		bankRepo:  new(MockBankSoalRepo),
		hadirRepo: new(MockKehadiranRepo),
		kelasRepo: new(MockKelasRepo),
		guruRepo:  new(MockGuruRepo),
		files:     files,
		baseDir:   base,
	}
	env.deps = &Dependencies{
		BankSoalRepo:  env.bankRepo,
		KehadiranRepo: env.hadirRepo,
		KelasRepo:     env.kelasRepo,
		GuruRepo:      env.guruRepo,
		Files:         files,
		Config:        DefaultConfig(),
		Now:           func() time.Time { return time.UnixMilli(1700000000000) },
	}
	return env
}

// writeSoal seals a question file and returns its name
func (e *testEnv) writeSoal(t *testing.T, name string, soal string) string {
	t.Helper()
	require.True(t, json.Valid([]byte(soal)), "fixture must be JSON")
	require.NoError(t, e.files.Seal(storage.BucketSoal, name, []byte(soal)))
	return name
}

// writeJawaban seals an answer file and returns its name
func (e *testEnv) writeJawaban(t *testing.T, name string, jawaban string) string {
	t.Helper()
	require.NoError(t, e.files.Seal(storage.BucketJawaban, name, []byte(jawaban)))
	return name
}

func (e *testEnv) readJawaban(t *testing.T, name string) []entity.JawabanItem {
	t.Helper()
	raw, err := e.files.Open(storage.BucketJawaban, name)
	require.NoError(t, err)
	var items []entity.JawabanItem
	require.NoError(t, json.Unmarshal(raw, &items))
	return items
}

const fiveSoal = `[
	{"id":"q1","soal":"Satu","A":"a1","B":"b1","C":"c1","D":"d1","E":"e1","type":"pilihan_ganda","selected":true},
	{"id":"q2","soal":"Dua","selected":true},
	{"id":"q3","pertanyaan":"Tiga","selected":true},
	{"id":"q4","soal":"Empat","selected":false},
	{"id":"q5","soal":"Lima"}
]`
