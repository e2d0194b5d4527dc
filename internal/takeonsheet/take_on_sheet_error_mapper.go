package takeonsheet

import (
	"errors"

	takeonsheeterrors "go-hradmin/internal/takeonsheet/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return takeonsheeterrors.ErrSheetNotFound
	}

	return err
}
