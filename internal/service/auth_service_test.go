package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/handler/dto"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
	"github.com/yourusername/sekolah-api/pkg/auth"
)

func newTestAuthService(t *testing.T) (*AuthService, *MockUserRepository, *MockKelasRepository) {
	t.Helper()
	userRepo := new(MockUserRepository)
	kelasRepo := new(MockKelasRepository)
	jwtService, err := auth.NewJWTService("test-secret-0123456789", 1)
	require.NoError(t, err)
	svc, err := NewAuthService(userRepo, kelasRepo, jwtService)
	require.NoError(t, err)
	return svc, userRepo, kelasRepo
}

func hashedUser(t *testing.T, id uint, role, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: id, Email: "user@sekolah.test", Password: string(hash), Role: role}
}

func TestNewAuthService_RequiresDeps(t *testing.T) {
	_, err := NewAuthService(nil, nil, nil)
	assert.Error(t, err)
}

func TestAuthService_Register_FirstUserBecomesSuperAdmin(t *testing.T) {
	// Arrange
	svc, userRepo, _ := newTestAuthService(t)
	userRepo.On("Count").Return(int64(0), nil)
	userRepo.On("Create", mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleSuperAdmin && u.Email == "admin@sekolah.test"
	})).Return(nil)

	// Act
	user, err := svc.Register(&dto.RegisterRequest{
		FullName: " Admin ",
		Email:    "Admin@Sekolah.test",
		Password: "rahasia123",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Admin", user.FullName)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_ClosedAfterFirstUser(t *testing.T) {
	svc, userRepo, _ := newTestAuthService(t)
	userRepo.On("Count").Return(int64(1), nil)

	_, err := svc.Register(&dto.RegisterRequest{FullName: "Budi", Email: "b@sekolah.test", Password: "rahasia123"})

	assert.ErrorIs(t, err, ErrRegistrationClosed)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	svc, userRepo, _ := newTestAuthService(t)
	user := hashedUser(t, 3, entity.RoleGuru, "benar1234")
	userRepo.On("GetByEmail", "user@sekolah.test").Return(user, nil)
	userRepo.On("GetByEmail", "nobody@sekolah.test").Return(nil, apperrors.ErrNotFound)

	got, err := svc.Login("user@sekolah.test", "benar1234")
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.ID)

	_, err = svc.Login("user@sekolah.test", "salah1234")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Login("nobody@sekolah.test", "benar1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_IssueAndParseToken(t *testing.T) {
	svc, userRepo, _ := newTestAuthService(t)
	userRepo.On("GetByEmail", "user@sekolah.test").Return(hashedUser(t, 9, entity.RoleSiswa, "benar1234"), nil)

	resp, err := svc.IssueToken("user@sekolah.test", "benar1234")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, entity.RoleSiswa, resp.Role)

	userID, err := svc.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(9), userID)

	_, err = svc.ParseToken("garbage")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_LoadSessionUser(t *testing.T) {
	svc, userRepo, kelasRepo := newTestAuthService(t)
	guru := &entity.User{ID: 2, Role: entity.RoleGuru, DataGuru: &entity.DataGuru{NIP: "1987"}}
	staf := &entity.User{ID: 4, Role: entity.RoleStaf, DataStaf: &entity.DataStaf{Departemen: "Tata Usaha"}}
	userRepo.On("GetByIDWithProfile", uint(2)).Return(guru, nil)
	userRepo.On("GetByIDWithProfile", uint(4)).Return(staf, nil)
	kelasRepo.On("ExistsWaliKelas", "1987").Return(true, nil)

	su, err := svc.LoadSessionUser(2)
	require.NoError(t, err)
	assert.True(t, su.IsWaliKelas)
	assert.Empty(t, su.Departemen)

	su, err = svc.LoadSessionUser(4)
	require.NoError(t, err)
	assert.False(t, su.IsWaliKelas)
	assert.Equal(t, "Tata Usaha", su.Departemen)
}
