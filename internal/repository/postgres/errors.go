package postgres

import (
	"ecommerceBackend/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// translate maps gorm errors onto the domain error kinds. Anything unknown is
// wrapped with op and surfaces as an internal failure.
func translate(err error, op, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFoundError(notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ConflictError(conflictMsg)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.InvalidReferenceError("referenced record does not exist")
	default:
		return errors.Wrap(err, op)
	}
}

func exists(db *gorm.DB, model any, where string, args ...any) (bool, error) {
	var count int64
	if err := db.Model(model).Where(where, args...).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check existence")
	}

	return count > 0, nil
}
