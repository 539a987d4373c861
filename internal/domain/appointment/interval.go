package appointment

import (
	"time"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

const (
	MinDurationMinutes = 30
	MaxDurationMinutes = 480
)

// Interval is the half-open range [Start, End) an appointment occupies.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

func IntervalOf(ap *models.Appointment) Interval {
	return NewInterval(ap.StartTime, ap.DurationMinutes)
}

// Overlaps is the standard half-open test. Intervals that only touch at an
// endpoint do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// FindConflict returns the first appointment in existing that holds a
// blocking status and overlaps candidate.
func FindConflict(candidate Interval, existing []models.Appointment) (*models.Appointment, bool) {
	for i := range existing {
		ap := &existing[i]
		if !Status(ap.Status).IsBlocking() {
			continue
		}
		if candidate.Overlaps(IntervalOf(ap)) {
			return ap, true
		}
	}
	return nil, false
}
