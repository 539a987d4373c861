package timezone

import (
	"sync"
	"time"
)

var (
	mu              sync.RWMutex
	defaultTimezone = "UTC"
)

// SetDefault changes the fallback zone used for studios without a valid one.
// Invalid names are ignored.
func SetDefault(tz string) {
	if !IsValid(tz) {
		return
	}
	mu.Lock()
	defaultTimezone = tz
	mu.Unlock()
}

func Default() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultTimezone
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(Default())
	if err != nil {
		return time.UTC
	}
	return loc
}

// DayBounds returns [00:00, next 00:00) of the given YYYY-MM-DD in tz.
func DayBounds(date string, tz string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, Location(tz))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day, day.AddDate(0, 0, 1), nil
}
