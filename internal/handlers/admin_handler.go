package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/dto"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httpresp"
)

// AdminHandler holds moderation endpoints. Routes are guarded by
// RequireRole(ADMIN).
type AdminHandler struct {
	dir   directory.Repository
	audit *audit.Dispatcher
}

func NewAdminHandler(dir directory.Repository, audit *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{dir: dir, audit: audit}
}

func notFoundAs(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

func (h *AdminHandler) SetArtistActive(c *gin.Context) {
	id, ok := idParam(c, "id", "artist_not_found")
	if !ok {
		return
	}

	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.ErrBusiness("invalid_request"))
		return
	}

	artist, err := h.dir.GetArtist(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFoundAs(err, "artist_not_found"))
		return
	}

	if err := h.dir.SetArtistActive(c.Request.Context(), artist.ID, *req.IsActive); err != nil {
		httperr.Respond(c, notFoundAs(err, "artist_not_found"))
		return
	}
	artist.IsActive = *req.IsActive

	writeAudit(c, h.audit, "artist_moderated", "artist", artist.ID, gin.H{"is_active": *req.IsActive})

	httpresp.OK(c, artist)
}

// SetStudioActive toggles a studio. While a studio is inactive none of its
// artists are listed or bookable; their own flags are left untouched.
func (h *AdminHandler) SetStudioActive(c *gin.Context) {
	id, ok := idParam(c, "id", "studio_not_found")
	if !ok {
		return
	}

	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.ErrBusiness("invalid_request"))
		return
	}

	studio, err := h.dir.GetStudio(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, notFoundAs(err, "studio_not_found"))
		return
	}

	if err := h.dir.SetStudioActive(c.Request.Context(), studio.ID, *req.IsActive); err != nil {
		httperr.Respond(c, notFoundAs(err, "studio_not_found"))
		return
	}
	studio.IsActive = *req.IsActive

	writeAudit(c, h.audit, "studio_moderated", "studio", studio.ID, gin.H{"is_active": *req.IsActive})

	httpresp.OK(c, studio)
}
