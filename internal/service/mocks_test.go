package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/domain/repository"
)

// ============================================================================
// Repository mocks
// ============================================================================

// MockUserRepository implements repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDWithProfile(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountByRole(role string) (int64, error) {
	args := m.Called(role)
	return args.Get(0).(int64), args.Error(1)
}

// MockGuruRepository implements repository.GuruRepository
type MockGuruRepository struct {
	mock.Mock
}

func (m *MockGuruRepository) CreateWithUser(user *entity.User, guru *entity.DataGuru) error {
	return m.Called(user, guru).Error(0)
}

func (m *MockGuruRepository) UpdateWithUser(user *entity.User, guru *entity.DataGuru) error {
	return m.Called(user, guru).Error(0)
}

func (m *MockGuruRepository) Delete(id uint) error { return m.Called(id).Error(0) }

func (m *MockGuruRepository) GetByID(id uint) (*entity.DataGuru, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DataGuru), args.Error(1)
}

func (m *MockGuruRepository) GetByUserID(userID uint) (*entity.DataGuru, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DataGuru), args.Error(1)
}

func (m *MockGuruRepository) List(search string, limit, offset int) ([]entity.DataGuru, int64, error) {
	args := m.Called(search, limit, offset)
	return args.Get(0).([]entity.DataGuru), args.Get(1).(int64), args.Error(2)
}

func (m *MockGuruRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockKelasRepository implements repository.KelasRepository
type MockKelasRepository struct {
	mock.Mock
}

func (m *MockKelasRepository) Create(kelas *entity.DataKelas) error { return m.Called(kelas).Error(0) }
func (m *MockKelasRepository) Update(kelas *entity.DataKelas) error { return m.Called(kelas).Error(0) }
func (m *MockKelasRepository) Delete(id uint) error                 { return m.Called(id).Error(0) }

func (m *MockKelasRepository) GetByID(id uint) (*entity.DataKelas, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DataKelas), args.Error(1)
}

func (m *MockKelasRepository) List(search string, limit, offset int) ([]entity.DataKelas, int64, error) {
	args := m.Called(search, limit, offset)
	return args.Get(0).([]entity.DataKelas), args.Get(1).(int64), args.Error(2)
}

func (m *MockKelasRepository) FindByGuruPengampu(nip string) ([]entity.DataKelas, error) {
	args := m.Called(nip)
	return args.Get(0).([]entity.DataKelas), args.Error(1)
}

func (m *MockKelasRepository) ExistsWaliKelas(nip string) (bool, error) {
	args := m.Called(nip)
	return args.Bool(0), args.Error(1)
}

func (m *MockKelasRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockBankSoalRepository implements repository.BankSoalRepository
type MockBankSoalRepository struct {
	mock.Mock
}

func (m *MockBankSoalRepository) Create(ctx context.Context, bank *entity.BankSoal) error {
	return m.Called(ctx, bank).Error(0)
}

func (m *MockBankSoalRepository) Update(ctx context.Context, bank *entity.BankSoal) error {
	return m.Called(ctx, bank).Error(0)
}

func (m *MockBankSoalRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBankSoalRepository) GetByID(ctx context.Context, id uint) (*entity.BankSoal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BankSoal), args.Error(1)
}

func (m *MockBankSoalRepository) List(ctx context.Context, search string, limit, offset int) ([]entity.BankSoal, int64, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]entity.BankSoal), args.Get(1).(int64), args.Error(2)
}

func (m *MockBankSoalRepository) ListAll(ctx context.Context) ([]entity.BankSoal, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.BankSoal), args.Error(1)
}

func (m *MockBankSoalRepository) ListByPenulis(ctx context.Context, userID uint) ([]entity.BankSoal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entity.BankSoal), args.Error(1)
}

func (m *MockBankSoalRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockKehadiranRepository implements repository.KehadiranRepository
type MockKehadiranRepository struct {
	mock.Mock
}

func (m *MockKehadiranRepository) Create(ctx context.Context, k *entity.ManajemenKehadiran) error {
	return m.Called(ctx, k).Error(0)
}

func (m *MockKehadiranRepository) GetByID(ctx context.Context, id uint) (*entity.ManajemenKehadiran, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManajemenKehadiran), args.Error(1)
}

func (m *MockKehadiranRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*entity.ManajemenKehadiran, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManajemenKehadiran), args.Error(1)
}

func (m *MockKehadiranRepository) FindByUserAndUjian(ctx context.Context, userID, ujianID uint) (*entity.ManajemenKehadiran, error) {
	args := m.Called(ctx, userID, ujianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ManajemenKehadiran), args.Error(1)
}

func (m *MockKehadiranRepository) UpdateHasil(ctx context.Context, id uint, jawabanFile string, benar, salah int, skor float64) error {
	return m.Called(ctx, id, jawabanFile, benar, salah, skor).Error(0)
}

func (m *MockKehadiranRepository) List(ctx context.Context, filter repository.KehadiranFilter, limit, offset int) ([]entity.ManajemenKehadiran, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	return args.Get(0).([]entity.ManajemenKehadiran), args.Get(1).(int64), args.Error(2)
}

func (m *MockKehadiranRepository) Count(ctx context.Context, filter repository.KehadiranFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockKehadiranRepository) ListAll(ctx context.Context, filter repository.KehadiranFilter) ([]entity.ManajemenKehadiran, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]entity.ManajemenKehadiran), args.Error(1)
}
