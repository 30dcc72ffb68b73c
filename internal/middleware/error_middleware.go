package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"studyplanner/internal/app/models/dto"
	"studyplanner/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. All controllers
// funnel their service errors through here so codes stay consistent.
func HandleAPIError(c *gin.Context, err error) {
	detail := detailFor(err)

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Details != nil {
		detail = detail.WithDetails(custom.Details)
	}

	c.JSON(statusFor(err), dto.NewErrorResponse(detail))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrCourseNotFound):
		return 404
	case errors.Is(err, apperrors.ErrDuplicateSelection):
		return 409
	case errors.Is(err, apperrors.ErrCapacityExceeded),
		errors.Is(err, apperrors.ErrInvalidCreditAmount),
		errors.Is(err, apperrors.ErrVariableCreditRequired),
		errors.Is(err, apperrors.ErrNotVariableCredit),
		errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidBackup),
		errors.Is(err, apperrors.ErrUnknownExportFormat),
		errors.Is(err, apperrors.ErrBadRequest):
		return 400
	case errors.Is(err, apperrors.ErrCatalogUnavailable):
		return 503
	default:
		return 500
	}
}

func detailFor(err error) *dto.ErrorDetail {
	switch {
	case errors.Is(err, apperrors.ErrCourseNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeCourseNotFound, err.Error())
	case errors.Is(err, apperrors.ErrDuplicateSelection):
		return dto.NewErrorDetail(dto.ErrorCodeDuplicatePlan, err.Error())
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		return dto.NewErrorDetail(dto.ErrorCodeCapacityExceeded, err.Error()).WithField("ects")
	case errors.Is(err, apperrors.ErrInvalidCreditAmount):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidCredit, err.Error()).WithField("ects")
	case errors.Is(err, apperrors.ErrVariableCreditRequired),
		errors.Is(err, apperrors.ErrNotVariableCredit):
		return dto.NewErrorDetail(dto.ErrorCodeWrongCreditScheme, err.Error()).WithField("courseId")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrInvalidBackup):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidBackup, err.Error())
	case errors.Is(err, apperrors.ErrUnknownExportFormat):
		return dto.NewErrorDetail(dto.ErrorCodeUnknownFormat, err.Error()).WithField("format")
	case errors.Is(err, apperrors.ErrStorageWrite):
		return dto.NewErrorDetail(dto.ErrorCodeStorageWrite,
			"your plan changed but could not be saved; the previously saved plan is untouched").
			WithSeverity(dto.ErrorSeverityWarning)
	case errors.Is(err, apperrors.ErrStorageRead):
		return dto.NewErrorDetail(dto.ErrorCodeStorageRead, err.Error())
	case errors.Is(err, apperrors.ErrCatalogUnavailable):
		return dto.NewErrorDetail(dto.ErrorCodeCatalogUnavailable, err.Error())
	default:
		return dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
