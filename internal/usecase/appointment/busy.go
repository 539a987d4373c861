package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
)

// MaxBusyRange bounds a single busy-interval query.
const MaxBusyRange = 62 * 24 * time.Hour

type ListBusyIntervals struct {
	repo domain.Repository
}

func NewListBusyIntervals(repo domain.Repository) *ListBusyIntervals {
	return &ListBusyIntervals{repo: repo}
}

func (uc *ListBusyIntervals) Execute(
	ctx context.Context,
	artistID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]domain.Interval, error) {

	if !from.Before(to) || to.Sub(from) > MaxBusyRange {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	artist, err := uc.repo.GetArtist(ctx, artistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("artist_not_found")
		}
		return nil, err
	}
	if !artist.AcceptsBookings() {
		return nil, httperr.ErrBusiness("artist_inactive")
	}

	return uc.repo.ListBusyIntervals(ctx, artistID, from.UTC(), to.UTC())
}
