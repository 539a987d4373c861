package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string       `json:"error_code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Validation(c *gin.Context, ve *ValidationError) {
	c.JSON(http.StatusBadRequest, HTTPError{
		Code:    "validation_failed",
		Message: MessageFor("validation_failed"),
		Details: ve.Fields,
	})
}

// Respond writes err using the business taxonomy. Anything that is not a
// business or validation error is logged and answered with a generic 500.
func Respond(c *gin.Context, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		Validation(c, ve)
		return
	}

	code := CodeOf(err)
	if code == "" {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.FullPath()).
			Msg("unhandled error")
		Internal(c, "internal_error", MessageFor("internal_error"))
		return
	}

	Write(c, StatusOf(err), code, MessageFor(code))
}

// Abort is Respond for middleware.
func Abort(c *gin.Context, err error) {
	Respond(c, err)
	c.Abort()
}
