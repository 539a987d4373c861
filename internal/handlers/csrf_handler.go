package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/middleware"
)

type CSRFHandler struct {
	csrf *middleware.CSRF
}

func NewCSRFHandler(csrf *middleware.CSRF) *CSRFHandler {
	return &CSRFHandler{csrf: csrf}
}

func (h *CSRFHandler) Token(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	httpresp.OK(c, gin.H{
		"csrfToken": h.csrf.Token(c.GetString(middleware.ContextSessionID)),
	})
}
