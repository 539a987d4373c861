package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

var base = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func existing(start time.Time, minutes int, status Status) models.Appointment {
	return models.Appointment{
		StartTime:       start,
		DurationMinutes: minutes,
		EndTime:         start.Add(time.Duration(minutes) * time.Minute),
		Status:          string(status),
	}
}

func TestOverlaps_MatchesHalfOpenPredicate(t *testing.T) {
	// exhaustive grid over 15 minute steps
	for s := -600; s <= 600; s += 15 {
		for _, d := range []int{30, 45, 60, 120, 480} {
			for _, ed := range []int{30, 60, 90, 240} {
				cand := NewInterval(base.Add(time.Duration(s)*time.Minute), d)
				ex := NewInterval(base, ed)

				want := cand.Start.Before(ex.End) && ex.Start.Before(cand.End)
				assert.Equal(t, want, cand.Overlaps(ex), "s=%d d=%d ed=%d", s, d, ed)
				assert.Equal(t, cand.Overlaps(ex), ex.Overlaps(cand), "overlap must be symmetric")
			}
		}
	}
}

func TestOverlaps_TouchingEndpointsDoNotConflict(t *testing.T) {
	ex := NewInterval(base, 60)

	after := NewInterval(base.Add(60*time.Minute), 60)
	before := NewInterval(base.Add(-60*time.Minute), 60)

	assert.False(t, after.Overlaps(ex))
	assert.False(t, before.Overlaps(ex))
	assert.True(t, NewInterval(base.Add(59*time.Minute), 30).Overlaps(ex))
}

func TestOverlaps_UsesExistingDuration(t *testing.T) {
	// a long existing session must block a short candidate that starts
	// well after the candidate's own duration
	ex := NewInterval(base, 240)
	cand := NewInterval(base.Add(180*time.Minute), 30)

	assert.True(t, cand.Overlaps(ex))
}

func TestFindConflict_OnlyBlockingStatusesCount(t *testing.T) {
	cand := NewInterval(base, 60)

	for _, st := range []Status{StatusCancelled, StatusCompleted, StatusNoShow} {
		_, found := FindConflict(cand, []models.Appointment{existing(base, 60, st)})
		assert.False(t, found, "status %s must not block", st)
	}

	for _, st := range BlockingStatuses {
		ap, found := FindConflict(cand, []models.Appointment{
			existing(base.Add(-3*time.Hour), 60, StatusConfirmed),
			existing(base.Add(30*time.Minute), 60, st),
		})
		require.True(t, found, "status %s must block", st)
		assert.Equal(t, string(st), ap.Status)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]Status{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusNoShow},
		{StatusInProgress, StatusCompleted},
	}
	for _, tr := range allowed {
		assert.NoError(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]Status{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusInProgress},
		{StatusCancelled, StatusConfirmed},
		{StatusCompleted, StatusCancelled},
		{StatusNoShow, StatusConfirmed},
		{StatusInProgress, StatusCancelled},
	}
	for _, tr := range denied {
		assert.Error(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestTransition_StampsTimes(t *testing.T) {
	ap := existing(base, 60, StatusPending)
	now := base.Add(-time.Hour)

	require.NoError(t, Cancel(&ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.True(t, ap.CancelledAt.Equal(now))

	ap = existing(base, 60, StatusInProgress)
	require.NoError(t, Complete(&ap, now))
	require.NotNil(t, ap.CompletedAt)

	assert.Error(t, Complete(&ap, now))
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("NO_SHOW")
	require.NoError(t, err)
	assert.True(t, st.IsTerminal())
	assert.False(t, st.IsBlocking())

	_, err = ParseStatus("scheduled")
	assert.Error(t, err)
}
