package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
	"github.com/yourusername/sekolah-api/internal/handler/dto"
	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
)

const dateLayout = "2006-01-02"

func parseTanggal(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: tanggal_lahir must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	return t, nil
}

// newUser builds the account of a new profile. A password is mandatory.
func newUser(in dto.UserInput, role string) (*entity.User, error) {
	if in.Password == "" {
		return nil, ErrPasswordRequired
	}
	return &entity.User{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: in.Password,
		Role:     role,
	}, nil
}

// applyUser copies the account fields onto an existing user. An empty
// password keeps the current one.
func applyUser(user *entity.User, in dto.UserInput) {
	user.FullName = strings.TrimSpace(in.FullName)
	user.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Password != "" {
		user.Password = in.Password
	}
}
