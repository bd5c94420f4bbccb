package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var messages = map[Kind]string{
	KindValidation: "Invalid request.",
	KindNotFound:   "Resource not found.",
	KindConflict:   "The resource changed, refresh and retry.",
	KindForbidden:  "Operation not allowed.",
}

// Respond maps a use case error onto the HTTP taxonomy.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		status := http.StatusBadRequest
		switch be.Kind {
		case KindNotFound:
			status = http.StatusNotFound
		case KindConflict:
			status = http.StatusConflict
		case KindForbidden:
			status = http.StatusForbidden
		}
		Write(c, status, be.Code, messages[be.Kind])
		return
	}

	var de DependencyError
	if errors.As(err, &de) {
		log.Error("dependency failure", zap.String("op", de.Op), zap.Error(de.Err))
		Write(c, http.StatusServiceUnavailable, string(KindDependency), "A backing service is unavailable.")
		return
	}

	log.Error("unhandled error", zap.Error(err))
	Internal(c, "internal_error", "Unexpected error.")
}
