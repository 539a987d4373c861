package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	dir directory.Repository
}

func NewAuditLogsHandler(dir directory.Repository) *AuditLogsHandler {
	return &AuditLogsHandler{dir: dir}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	f := directory.AuditLogFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	// --------------------------------------------------
	// Optional day filters (UTC, "to" inclusive)
	// --------------------------------------------------

	if s := c.Query("from"); s != "" {
		from, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.Respond(c, httperr.ErrBusiness("invalid_request"))
			return
		}
		f.From = &from
	}

	if s := c.Query("to"); s != "" {
		to, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.Respond(c, httperr.ErrBusiness("invalid_request"))
			return
		}
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	logs, total, err := h.dir.ListAuditLogs(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, logs, total, page, limit)
}
