package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrMissingDate = errors.New("date is required")
	ErrInvalidDate = errors.New("date must use YYYY-MM-DD")
	ErrInvalidTime = errors.New("time must use HH:MM")
	ErrInvalidZone = errors.New("unknown timezone")
)

var defaultLocation = time.UTC

// Window is the voting interval resolved to absolute instants.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns End minus Start.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Valid reports whether End is strictly after Start.
func (w Window) Valid() bool {
	return w.End.After(w.Start)
}

// Location resolves the draft timezone, UTC when empty.
func (d Draft) Location() (*time.Location, error) {
	name := strings.TrimSpace(d.Timezone)
	if name == "" {
		return defaultLocation, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidZone, name)
	}
	return loc, nil
}

// StartInstant combines startDate and startTime in the draft timezone.
// An empty time means midnight.
func (d Draft) StartInstant() (time.Time, error) {
	return d.instant(d.StartDate, d.StartTime)
}

// EndInstant combines endDate and endTime in the draft timezone.
func (d Draft) EndInstant() (time.Time, error) {
	return d.instant(d.EndDate, d.EndTime)
}

// Window resolves both ends of the schedule.
func (d Draft) Window() (Window, error) {
	start, err := d.StartInstant()
	if err != nil {
		return Window{}, fmt.Errorf("start: %w", err)
	}
	end, err := d.EndInstant()
	if err != nil {
		return Window{}, fmt.Errorf("end: %w", err)
	}
	return Window{Start: start, End: end}, nil
}

func (d Draft) instant(date, clock string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, ErrMissingDate
	}
	loc, err := d.Location()
	if err != nil {
		return time.Time{}, err
	}
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	offset, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(offset), nil
}

// ParseClock parses HH:MM into an offset from midnight. Empty is midnight.
func ParseClock(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	t, err := time.Parse(TimeLayout, value)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
