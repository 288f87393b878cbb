package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirasaad/networth/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM and context errors to domain errors,
// keeping the original error in the chain for logging.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", domain.ErrAlreadyExists, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", domain.ErrInUse, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	case sqlState(err) == numericOverflow:
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return err
}

// numericOverflow is the SQLSTATE postgres raises when a value does not fit
// its NUMERIC column.
const numericOverflow = "22003"

func sqlState(err error) string {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState()
	}
	return ""
}

// WrapError runs a GORM operation and maps its error.
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(user).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
