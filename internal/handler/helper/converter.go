package helper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
)

// QueryPage reads ?page and ?per_page. Invalid values fall back to 1 and 0;
// services clamp them.
func QueryPage(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "0"))
	if err != nil {
		perPage = 0
	}
	return page, perPage
}

// OptionalUint parses an optional numeric value. A blank value gives nil.
func OptionalUint(s string) (*uint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return nil, fmt.Errorf("%w: %q is not a valid id", apperrors.ErrValidation, s)
	}
	id := uint(n)
	return &id, nil
}
