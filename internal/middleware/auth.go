package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
)

const (
	ContextUserID    = "userID"
	ContextSessionID = "sessionID"
	ContextClaims    = "claims"
	ContextPrincipal = "principal"
)

// AuthMiddleware accepts HS256 bearer tokens issued by the identity provider.
// The subject must be the profile id.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, httperr.ErrBusiness("unauthenticated"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, httperr.ErrBusiness("unauthenticated"))
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Abort(c, httperr.ErrBusiness("invalid_token"))
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			httperr.Abort(c, httperr.ErrBusiness("invalid_token"))
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextSessionID, sessionID(claims))
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// sessionID prefers the provider's session claim so that a refreshed token
// keeps the same anti-forgery token.
func sessionID(claims jwt.MapClaims) string {
	for _, k := range []string{"sid", "jti", "sub"} {
		if v, ok := claims[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func MustUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextUserID).(uuid.UUID)
}
