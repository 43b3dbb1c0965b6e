package handler

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/sekolah-api/internal/domain/entity"
)

// RegisterValidators adds the jenis_kelamin and agama tags to v
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("jenis_kelamin", oneOf(entity.JenisKelaminValues)); err != nil {
		return fmt.Errorf("register jenis_kelamin: %w", err)
	}
	if err := v.RegisterValidation("agama", oneOf(entity.AgamaValues)); err != nil {
		return fmt.Errorf("register agama: %w", err)
	}
	return nil
}

func oneOf(values []string) validator.Func {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	}
}
