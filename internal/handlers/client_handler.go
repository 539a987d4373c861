package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/role"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/middleware"
)

type ClientHandler struct {
	dir directory.Repository
}

func NewClientHandler(dir directory.Repository) *ClientHandler {
	return &ClientHandler{dir: dir}
}

// ======================================================
// LIST CLIENTS (artist / studio / admin)
// ======================================================

// List returns clients that booked with the caller, or every client for
// admins. Visibility follows the caller's appointment scope.
func (h *ClientHandler) List(c *gin.Context) {
	p := middleware.Principal(c)
	if p.Role == role.Client {
		httperr.Respond(c, httperr.ErrBusiness("forbidden"))
		return
	}

	page, limit := pageParams(c)

	clients, total, err := h.dir.ListClients(c.Request.Context(), directory.ClientFilter{
		Scope:  p.AppointmentScope(),
		Query:  c.Query("query"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, clients, total, page, limit)
}
