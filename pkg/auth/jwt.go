package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
)

const tokenIssuer = "sekolah-api"

// Token errors
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenInvalid   = errors.New("token is invalid")
)

// JWTCustomClaims are the claims of an API access token
type JWTCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 access tokens for API clients
type JWTService struct {
	secret        []byte
	expirationHrs int
	now           func() time.Time
}

// NewJWTService creates a JWT service
func NewJWTService(secret string, expirationHrs int) (*JWTService, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("JWT secret must be at least 16 characters")
	}
	if expirationHrs <= 0 {
		expirationHrs = 24
	}
	return &JWTService{secret: []byte(secret), expirationHrs: expirationHrs, now: time.Now}, nil
}

// GenerateToken signs a token for user and returns its expiry
func (s *JWTService) GenerateToken(user *entity.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(time.Hour * time.Duration(s.expirationHrs))

	claims := &JWTCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		log.Printf("[JWT] Error generating token for user ID=%d: %v", user.ID, err)
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken verifies a token and returns its claims
func (s *JWTService) ParseToken(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, ErrTokenMalformed
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				log.Printf("[JWT] Token expired for user ID=%d", claims.UserID)
				return nil, ErrTokenExpired
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims.Issuer != tokenIssuer || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
