package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/courseportal/internal/app/models/dto"
	"github.com/yigit/courseportal/internal/pkg/apperrors"
	"github.com/yigit/courseportal/internal/pkg/dberrors"
	"github.com/yigit/courseportal/internal/pkg/logger"
)

// --- Central Error Handling Middleware/Function ---

// HandleAPIError maps service errors to the standard error response
func HandleAPIError(c *gin.Context, err error) {
	var detail *dto.ErrorDetail
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status = http.StatusNotFound
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOf(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		status = http.StatusConflict
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, messageOf(err, "Resource already exists"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		status = http.StatusBadRequest
		detail = dto.HandleValidationError(err)
	case errors.Is(err, apperrors.ErrBadRequest):
		status = http.StatusBadRequest
		detail = dto.NewErrorDetail(dto.ErrorCodeBadRequest, messageOf(err, "Bad request"))
	case dberrors.IsDatabaseError(err):
		detail = dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "A database error occurred").
			WithSeverity(dto.ErrorSeverityCritical)
	default:
		detail = dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An unexpected error occurred")
	}

	if status < http.StatusInternalServerError {
		detail.WithSeverity(dto.ErrorSeverityWarning)
		logger.Warn().Str("path", c.FullPath()).Msg(err.Error())
	} else {
		logger.Error().Err(err).Str("path", c.FullPath()).Str("code", string(detail.Code)).Msg("Unexpected error occurred")
		if gin.Mode() != gin.ReleaseMode {
			detail.WithDebugInfo("%v", err)
		}
	}

	if ce, ok := apperrors.AsCustomError(err); ok && ce.Details != nil && detail.Details == nil {
		detail.WithDetails(ce.Details)
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}

// messageOf prefers the message of an application error over a generic fallback
func messageOf(err error, fallback string) string {
	if ce, ok := apperrors.AsCustomError(err); ok && ce.Message != "" {
		return ce.Message
	}
	if err != nil {
		return err.Error()
	}
	return fallback
}
