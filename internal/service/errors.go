package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"campdirectory/internal/apperror"
	"campdirectory/internal/models"
	"campdirectory/internal/repository"
)

// storeError translates repository sentinels into client-facing errors.
// notFound is the message used when the record is missing.
func storeError(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperror.New(apperror.NotFound, notFound, err)
	case errors.Is(err, repository.ErrDuplicate):
		return apperror.NewConflict("Duplicate field value entered", err)
	default:
		return err
	}
}

func validateEntity(v *validator.Validate, entity any) error {
	err := v.Struct(entity)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperror.NewValidation(models.ValidationMessage(verrs))
	}
	return fmt.Errorf("failed to validate: %w", err)
}

// checkOwner allows the owner of a resource and admins.
func checkOwner(user *models.User, ownerID, action string) error {
	if user == nil {
		return apperror.NewUnauthenticated("Not authorized to access this route")
	}
	if user.IsAdmin() || user.ID == ownerID {
		return nil
	}
	return apperror.NewForbidden(fmt.Sprintf("User %s is not authorized to %s", user.ID, action))
}
