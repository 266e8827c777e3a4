package web

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
)

// StatusError is an application error tagged with the HTTP status it maps to.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// NewStatusError creates an error that AbortErr maps to code.
func NewStatusError(code int, message string) *StatusError {
	return &StatusError{Code: code, Message: message}
}

// BadRequest tags message with 400.
func BadRequest(message string) *StatusError {
	return NewStatusError(http.StatusBadRequest, message)
}

// Forbidden tags message with 403.
func Forbidden(message string) *StatusError {
	return NewStatusError(http.StatusForbidden, message)
}

// NotFound tags message with 404.
func NotFound(message string) *StatusError {
	return NewStatusError(http.StatusNotFound, message)
}

// Unauthorized tags message with 401.
func Unauthorized(message string) *StatusError {
	return NewStatusError(http.StatusUnauthorized, message)
}

// AbortErr is the single place handler errors turn into responses.
// StatusError keeps its code and message; anything else becomes a 500
// with the details kept in the log only.
func AbortErr(ctx *gin.Context, err error) {
	se := new(StatusError)
	if errors.As(err, &se) {
		ctx.AbortWithStatusJSON(se.Code, Response{
			Success: false,
			Message: se.Message,
		})
		return
	}

	gmw.GetLogger(ctx).Error("handle request", zap.Error(err))
	ctx.AbortWithStatusJSON(http.StatusInternalServerError, Response{
		Success: false,
		Message: "internal server error",
	})
}
