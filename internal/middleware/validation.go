package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/courseportal/internal/app/models/dto"
	"github.com/yigit/courseportal/internal/pkg/apperrors"
)

// BindJSON binds and validates the request body into obj. On failure it writes
// the 400 response and returns false: field rule failures as VAL_001, bodies
// that do not decode as BAD_REQUEST.
func BindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err).WithSeverity(dto.ErrorSeverityWarning)))
		return false
	}

	HandleAPIError(c, apperrors.NewBadRequestError("Malformed request body: "+err.Error()))
	return false
}
