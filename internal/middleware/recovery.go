package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Interface("error", err).
					Msg("panic recovered")

				httperr.Write(c, http.StatusInternalServerError, "internal_error", httperr.MessageFor("internal_error"))
				c.Abort()
			}
		}()

		c.Next()
	}
}
