package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/hkdf"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
)

const CSRFHeader = "X-CSRF-Token"

// CSRF issues and checks stateless anti-forgery tokens bound to the session.
type CSRF struct {
	key []byte
}

func NewCSRF(secret string) *CSRF {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("tattoo-scheduler csrf v1"))
	if _, err := io.ReadFull(r, key); err != nil {
		panic(err)
	}
	return &CSRF{key: key}
}

func (x *CSRF) Token(sessionID string) string {
	mac := hmac.New(sha256.New, x.key)
	mac.Write([]byte(sessionID))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (x *CSRF) Valid(sessionID, token string) bool {
	if sessionID == "" || token == "" {
		return false
	}
	return hmac.Equal([]byte(x.Token(sessionID)), []byte(token))
}

// Middleware rejects state-changing requests without a matching token.
// Must run after AuthMiddleware.
func (x *CSRF) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if !x.Valid(c.GetString(ContextSessionID), c.GetHeader(CSRFHeader)) {
			httperr.Abort(c, httperr.ErrBusiness("invalid_csrf_token"))
			return
		}

		c.Next()
	}
}
