package ocean

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Static errors for maintenance window validation.
var (
	ErrMaintenanceSubMinute  = errors.New("maintenance window start must fall on a whole minute")
	ErrInvalidMaintenanceDay = errors.New("maintenance day must be a weekday name or \"any\"")
)

// AnyDay marks a maintenance window without a fixed day. Some resource
// kinds accept it; others require a concrete weekday.
const AnyDay = "any"

var weekdays = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {},
}

// MaintenanceWindow pairs an optional day of week with a wall-clock start
// time. On the wire the start is always UTC "HH:MM"; the constructors
// convert from a caller-supplied offset-aware time.
type MaintenanceWindow struct {
	// Day is a lowercase weekday name or AnyDay.
	Day string `json:"day" yaml:"day"`
	// Hour is the UTC start rendered as "HH:MM".
	Hour string `json:"hour" yaml:"hour"`
}

// NewMaintenanceWindow builds a window from a day and an offset-aware
// start time. The time's seconds and sub-second components must be zero;
// the wall-clock is normalized to UTC.
func NewMaintenanceWindow(day string, start time.Time) (MaintenanceWindow, error) {
	day = strings.ToLower(strings.TrimSpace(day))
	if day != AnyDay {
		if _, ok := weekdays[day]; !ok {
			return MaintenanceWindow{}, fmt.Errorf("%q: %w", day, ErrInvalidMaintenanceDay)
		}
	}

	if start.Second() != 0 || start.Nanosecond() != 0 {
		return MaintenanceWindow{}, fmt.Errorf("%s: %w", start.Format(time.RFC3339Nano), ErrMaintenanceSubMinute)
	}

	utc := start.UTC()

	return MaintenanceWindow{
		Day:  day,
		Hour: fmt.Sprintf("%02d:%02d", utc.Hour(), utc.Minute()),
	}, nil
}

// Start returns the window's wall-clock start converted into loc,
// anchored to the reference date ref.
func (w MaintenanceWindow) Start(ref time.Time, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse("15:04", w.Hour)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing maintenance hour %q: %w", w.Hour, err)
	}

	utc := time.Date(ref.Year(), ref.Month(), ref.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)

	return utc.In(loc), nil
}

// Equal compares two windows field by field.
func (w MaintenanceWindow) Equal(other MaintenanceWindow) bool {
	return w.Day == other.Day && w.Hour == other.Hour
}

// IsZero reports whether the window is unset.
func (w MaintenanceWindow) IsZero() bool {
	return w.Day == "" && w.Hour == ""
}
