package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/domain/repository"
	"github.com/yourusername/sekolah-api/internal/handler/dto"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
	"github.com/yourusername/sekolah-api/pkg/auth"
)

// AuthService handles login, first-user registration and API tokens
type AuthService struct {
	userRepo   repository.UserRepository
	kelasRepo  repository.KelasRepository
	jwtService *auth.JWTService
}

// SessionUser is the logged-in user with the role data the pages need
type SessionUser struct {
	User        *entity.User `json:"user"`
	IsWaliKelas bool         `json:"isWaliKelas"`
	Departemen  string       `json:"departement,omitempty"`
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	kelasRepo repository.KelasRepository,
	jwtService *auth.JWTService,
) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{
		userRepo:   userRepo,
		kelasRepo:  kelasRepo,
		jwtService: jwtService,
	}, nil
}

// CanRegister reports whether self-registration is open. Only the first
// account may register itself.
func (s *AuthService) CanRegister() (bool, error) {
	n, err := s.userRepo.Count()
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Register creates the first account as SuperAdmin
func (s *AuthService) Register(req *dto.RegisterRequest) (*entity.User, error) {
	open, err := s.CanRegister()
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrRegistrationClosed
	}

	user := &entity.User{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
		Role:     entity.RoleSuperAdmin,
	}
	if err := s.userRepo.Create(user); err != nil {
		log.Printf("[AuthService] Error creating first user %s: %v", user.Email, err)
		return nil, err
	}
	log.Printf("[AuthService] First user registered: ID=%d email=%s", user.ID, user.Email)
	return user, nil
}

// Login checks the credentials and returns the user
func (s *AuthService) Login(email, password string) (*entity.User, error) {
	user, err := s.userRepo.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		log.Printf("[AuthService] Failed login for user ID=%d", user.ID)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken logs in and returns a bearer token for API clients
func (s *AuthService) IssueToken(email, password string) (*dto.TokenResponse, error) {
	user, err := s.Login(email, password)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.Unix(),
		UserID:      user.ID,
		Role:        user.Role,
	}, nil
}

// ParseToken validates a bearer token and returns the user id it was issued to
func (s *AuthService) ParseToken(token string) (uint, error) {
	claims, err := s.jwtService.ParseToken(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	return claims.UserID, nil
}

// LoadSessionUser loads the user with its profile. Guru users get
// IsWaliKelas, Staf users get their department.
func (s *AuthService) LoadSessionUser(userID uint) (*SessionUser, error) {
	user, err := s.userRepo.GetByIDWithProfile(userID)
	if err != nil {
		return nil, err
	}
	su := &SessionUser{User: user}

	switch user.Role {
	case entity.RoleGuru:
		if user.DataGuru != nil && s.kelasRepo != nil {
			wali, err := s.kelasRepo.ExistsWaliKelas(user.DataGuru.NIP)
			if err != nil {
				log.Printf("[AuthService] Error checking wali kelas for user ID=%d: %v", user.ID, err)
				return nil, err
			}
			su.IsWaliKelas = wali
		}
	case entity.RoleStaf:
		if user.DataStaf != nil {
			su.Departemen = user.DataStaf.Departemen
		}
	}
	return su, nil
}
