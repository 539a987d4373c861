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
	"github.com/BruksfildServices01/tattoo-scheduler/internal/middleware"
)

// StudioHandler lets studio owners manage their roster. Routes are guarded
// by RequireRole(STUDIO).
type StudioHandler struct {
	dir   directory.Repository
	audit *audit.Dispatcher
}

func NewStudioHandler(dir directory.Repository, audit *audit.Dispatcher) *StudioHandler {
	return &StudioHandler{dir: dir, audit: audit}
}

func (h *StudioHandler) ListArtists(c *gin.Context) {
	p := middleware.Principal(c)

	artists, err := h.dir.ListStudioArtists(c.Request.Context(), p.StudioIDs())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, artists, int64(len(artists)), 1, len(artists))
}

func (h *StudioHandler) SetArtistActive(c *gin.Context) {
	p := middleware.Principal(c)

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
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = httperr.ErrBusiness("artist_not_found")
		}
		httperr.Respond(c, err)
		return
	}

	// Artists of other studios are invisible here.
	if !p.OwnsStudio(artist.StudioID) {
		httperr.Respond(c, httperr.ErrBusiness("artist_not_found"))
		return
	}

	if err := h.dir.SetArtistActive(c.Request.Context(), artist.ID, *req.IsActive); err != nil {
		httperr.Respond(c, err)
		return
	}
	artist.IsActive = *req.IsActive

	writeAudit(c, h.audit, "artist_active_changed", "artist", artist.ID, gin.H{"is_active": *req.IsActive})

	httpresp.OK(c, artist)
}
