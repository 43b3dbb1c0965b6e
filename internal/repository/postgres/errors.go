package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
)

// Postgres SQLSTATE codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// sqlState returns the SQLSTATE of a pgconn or lib/pq error
func sqlState(err error) string {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// isUniqueViolation checks for a Postgres unique violation
func isUniqueViolation(err error) bool {
	return sqlState(err) == codeUniqueViolation
}

// translateError maps driver errors to application errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	switch sqlState(err) {
	case codeUniqueViolation, codeForeignKeyViolation:
		return fmt.Errorf("%w: %v", apperrors.ErrConflict, err)
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps s for a contains-style ILIKE ... ESCAPE '\'.
// Wildcards typed by the user match literally.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
