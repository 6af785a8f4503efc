package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
)

// notFound turns gorm's missing-row error into the business code the use cases match on.
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.Wrap(code, httperr.ErrNotFound)
	}
	return err
}
