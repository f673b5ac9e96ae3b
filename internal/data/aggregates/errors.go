package aggregates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	pkgerrors "github.com/yungbote/waltz-backend/internal/pkg/errors"
)

// IsUniqueViolation reports whether err is a uniqueness failure from any of
// the supported drivers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint failed")
}

// MapError maps infrastructure failures onto the service sentinels.
func MapError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, pkgerrors.ErrNotFound)
	case IsUniqueViolation(err):
		return fmt.Errorf("%s: %w: %v", op, pkgerrors.ErrAlreadyExists, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
