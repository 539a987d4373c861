package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/dto"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
)

type BusyIntervalLister interface {
	Execute(ctx context.Context, artistID uuid.UUID, from time.Time, to time.Time) ([]domain.Interval, error)
}

// ArtistHandler serves the public artist directory.
type ArtistHandler struct {
	dir  directory.Repository
	busy BusyIntervalLister
}

func NewArtistHandler(dir directory.Repository, busy BusyIntervalLister) *ArtistHandler {
	return &ArtistHandler{dir: dir, busy: busy}
}

func (h *ArtistHandler) List(c *gin.Context) {
	style := strings.TrimSpace(c.Query("style"))
	query := strings.TrimSpace(c.Query("query"))
	studio := strings.TrimSpace(c.Query("studio"))
	page, limit := pageParams(c)

	artists, total, err := h.dir.ListBookableArtists(c.Request.Context(), directory.ArtistFilter{
		Style:      style,
		Query:      query,
		StudioSlug: studio,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, artists, total, page, limit)
}

func (h *ArtistHandler) Get(c *gin.Context) {
	artist, ok := h.loadActive(c)
	if !ok {
		return
	}
	httpresp.OK(c, artist)
}

// Busy lists blocking intervals so a client can pick a free slot. Either
// from/to or a single date (read in the studio's timezone) is required.
func (h *ArtistHandler) Busy(c *gin.Context) {
	artist, ok := h.loadActive(c)
	if !ok {
		return
	}

	tz := timezone.Default()
	if artist.Studio != nil {
		tz = artist.Studio.Timezone
	}

	var from, to time.Time
	if date := c.Query("date"); date != "" {
		start, end, err := timezone.DayBounds(date, tz)
		if err != nil {
			httperr.Respond(c, httperr.ErrBusiness("invalid_request"))
			return
		}
		from, to = start, end
	} else {
		f, ok1 := optionalTime(c, "from", tz)
		t, ok2 := optionalTime(c, "to", tz)
		if !ok1 || !ok2 || f == nil || t == nil {
			httperr.Respond(c, httperr.ErrBusiness("invalid_request"))
			return
		}
		from, to = *f, *t
	}

	intervals, err := h.busy.Execute(c.Request.Context(), artist.ID, from, to)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	busy := make([]dto.BusyInterval, 0, len(intervals))
	for _, iv := range intervals {
		busy = append(busy, dto.BusyInterval{Start: iv.Start, End: iv.End})
	}

	httpresp.OK(c, dto.BusyResponse{
		ArtistID: artist.ID.String(),
		From:     from,
		To:       to,
		Busy:     busy,
	})
}

func (h *ArtistHandler) loadActive(c *gin.Context) (*models.Artist, bool) {
	id, ok := idParam(c, "id", "artist_not_found")
	if !ok {
		return nil, false
	}

	artist, err := h.dir.GetArtist(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = httperr.ErrBusiness("artist_not_found")
		}
		httperr.Respond(c, err)
		return nil, false
	}

	if !artist.AcceptsBookings() {
		httperr.Respond(c, httperr.ErrBusiness("artist_inactive"))
		return nil, false
	}

	return artist, true
}
