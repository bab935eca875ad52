package persistence

import (
	"errors"

	"github.com/lib/pq"
	"github.com/orgadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Postgres error codes for constraint violations
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translateDBError maps driver-level errors to domain errors so callers
// never depend on gorm or pq types.
func translateDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return shared.ErrAlreadyExists
		case pgForeignKeyViolation:
			return shared.ErrInvalidRelation
		case pgCheckViolation:
			return shared.ErrIntegrity
		}
	}

	// GORM wraps duplicate key errors across dialects
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return shared.ErrInvalidRelation
	}

	return err
}
