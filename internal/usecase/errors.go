package usecase

import (
	"errors"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"
)

// mapRepoError translates repository sentinels into client-facing errors.
// Anything unrecognised is a storage failure and keeps its cause for logging only.
func mapRepoError(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFoundMsg)
	case errors.Is(err, domain.ErrInvalidSkillName):
		return apperror.BadRequest("Skill name must not be blank")
	case errors.Is(err, domain.ErrDuplicateApplication):
		return apperror.DuplicateApplication("You have already applied to this job")
	case errors.Is(err, domain.ErrJobNotApplicable):
		return apperror.NotApplicable("This job is closed or no longer accepting applications")
	default:
		return apperror.Internal(err)
	}
}

func validationError(err error) error {
	return apperror.Validation(strings.Join(validation.FormatValidationErrors(err), "; "), err)
}
