package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/role"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
)

// RequireRole resolves the caller once and stores the principal for the
// handlers below it.
func RequireRole(lookup role.Lookup, roles ...role.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			httperr.Abort(c, httperr.ErrBusiness("unauthenticated"))
			return
		}

		p, err := role.Resolve(c.Request.Context(), lookup, userID)
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		if len(roles) > 0 {
			if err := p.Require(roles...); err != nil {
				httperr.Abort(c, err)
				return
			}
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

func Principal(c *gin.Context) *role.Principal {
	return c.MustGet(ContextPrincipal).(*role.Principal)
}
