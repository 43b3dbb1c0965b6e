package service

import (
	"fmt"

	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
)

// Service errors. Each wraps an apperrors sentinel so handlers can map it.
var (
	ErrRegistrationClosed = fmt.Errorf("%w: registration is closed", apperrors.ErrForbidden)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	ErrPasswordRequired   = fmt.Errorf("%w: password is required", apperrors.ErrValidation)
)
