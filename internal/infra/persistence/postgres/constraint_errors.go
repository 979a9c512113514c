package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for constraint error checking.
// GORM only translates driver errors when the dialector supports it, so the
// PostgreSQL SQLSTATE codes and SQLite messages are matched as a fallback.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "23505") || // PostgreSQL unique_violation
		strings.Contains(errMsg, "unique constraint failed") // SQLite
}

func isForeignKeyConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "23503") || // PostgreSQL foreign_key_violation
		strings.Contains(errMsg, "foreign key constraint failed") // SQLite
}

func isCheckConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "23514") || // PostgreSQL check_violation
		strings.Contains(errMsg, "check constraint failed") // SQLite
}
