package helpers

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// IsUniqueViolation - gorm is opened with TranslateError, so unique index violations come back as ErrDuplicatedKey
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "SQLSTATE 23505")
}
