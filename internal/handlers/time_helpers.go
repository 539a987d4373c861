package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
)

// parseTimeParam accepts RFC 3339 or a plain YYYY-MM-DD, the latter read as
// midnight in tz.
func parseTimeParam(s string, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, timezone.Location(tz))
}

// optionalTime reads an optional query parameter. ok is false when the
// value is present but malformed.
func optionalTime(c *gin.Context, key string, tz string) (*time.Time, bool) {
	s := c.Query(key)
	if s == "" {
		return nil, true
	}
	t, err := parseTimeParam(s, tz)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// pageParams reads page and limit, falling back to page 1 and 50 per page
// for missing or out-of-range values.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return page, limit
}

func idParam(c *gin.Context, name string, notFoundCode string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.Respond(c, httperr.ErrBusiness(notFoundCode))
		return uuid.Nil, false
	}
	return id, true
}
