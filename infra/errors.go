package infra

import (
	"errors"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors, so database
// concerns never leak past the infrastructure layer. The error chain is
// traversed because GORM wraps driver errors.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
		currentErr = errors.Unwrap(currentErr)
	}

	return err
}
