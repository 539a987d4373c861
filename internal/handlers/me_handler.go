package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe returns the profile and whichever role entity it resolved to.
func (h *MeHandler) GetMe(c *gin.Context) {
	p := middleware.Principal(c)

	body := gin.H{
		"user": gin.H{
			"id":    p.User.ID,
			"name":  p.User.Name,
			"email": p.User.Email,
			"role":  p.Role,
		},
	}

	if p.Client != nil {
		body["client"] = p.Client
	}
	if p.Artist != nil {
		body["artist"] = p.Artist
	}
	if len(p.Studios) > 0 {
		body["studios"] = p.Studios
	}

	httpresp.OK(c, body)
}
