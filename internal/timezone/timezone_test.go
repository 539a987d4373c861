package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, "UTC", Location("Not/AZone").String())
	assert.Equal(t, "America/Sao_Paulo", Location("America/Sao_Paulo").String())
}

func TestSetDefault_IgnoresInvalid(t *testing.T) {
	t.Cleanup(func() { SetDefault("UTC") })

	SetDefault("Europe/Lisbon")
	assert.Equal(t, "Europe/Lisbon", Default())

	SetDefault("nowhere")
	assert.Equal(t, "Europe/Lisbon", Default())
}

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds("2025-03-10", "America/Sao_Paulo")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, 24*time.Hour, end.Sub(start))

	_, _, err = DayBounds("10/03/2025", "UTC")
	assert.Error(t, err)
}
