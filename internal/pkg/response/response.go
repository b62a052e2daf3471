package response

import (
	"errors"
	"net/http"

	"guesthouse/internal/domain"
	"guesthouse/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError renders a service error. Taxonomy errors keep their message;
// anything else is reported as an internal error and attached to the gin
// context for the request logger.
func FromError(c *gin.Context, err error) {
	status, code := Classify(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		Error(c, status, code, "Internal server error")
		return
	}
	Error(c, status, code, err.Error())
}

// Classify maps an error onto an HTTP status and an error code.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrAlreadyInitialized):
		return http.StatusConflict, "ALREADY_INITIALIZED"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// BindError renders a request binding failure, listing field errors when
// the validator produced them.
func BindError(c *gin.Context, err error) {
	if details := validator.Details(err); details != nil {
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", details)
		return
	}
	Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
}
