package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const RefreshedTokenHeader = "X-Refreshed-Token"

const defaultSessionLifetime = time.Hour

// SessionRefresh re-signs tokens that are about to expire and hands the new
// one back in X-Refreshed-Token. Must run after AuthMiddleware.
func SessionRefresh(secret string, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(ContextClaims)
		if !ok {
			c.Next()
			return
		}
		claims := v.(jwt.MapClaims)

		exp, err := claims.GetExpirationTime()
		if err != nil || exp == nil {
			c.Next()
			return
		}

		now := time.Now()
		if exp.Time.Sub(now) > window {
			c.Next()
			return
		}

		lifetime := defaultSessionLifetime
		if iat, err := claims.GetIssuedAt(); err == nil && iat != nil && exp.Time.After(iat.Time) {
			lifetime = exp.Time.Sub(iat.Time)
		}

		fresh := jwt.MapClaims{}
		for k, v := range claims {
			fresh[k] = v
		}
		fresh["iat"] = now.Unix()
		fresh["exp"] = now.Add(lifetime).Unix()

		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, fresh).SignedString([]byte(secret))
		if err != nil {
			log.Error().Err(err).Msg("session refresh failed")
			c.Next()
			return
		}

		c.Header(RefreshedTokenHeader, signed)
		c.Next()
	}
}
