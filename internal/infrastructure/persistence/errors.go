package persistence

import (
	"errors"

	"github.com/medstock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM errors to domain errors. Connections are opened
// with TranslateError so dialect constraint errors arrive as gorm sentinels.
func translateError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewConflictError(resource + " already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewValidationError("", resource+" references a record that does not exist")
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	return shared.NewInternalError("database error", err)
}

// notFoundIfNoRows turns a zero-row write into a not-found error
func notFoundIfNoRows(result *gorm.DB, resource string) error {
	if result.Error != nil {
		return translateError(result.Error, resource)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(resource)
	}
	return nil
}
