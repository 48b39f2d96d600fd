package sidereal

import (
	"fmt"
	"strings"
	"time"
	// Embedded zone database for hosts without /usr/share/zoneinfo.
	_ "time/tzdata"

	apperrors "github.com/yanqian/kundli/pkg/errors"
)

const dateLayout = "2006-01-02"

var clockLayouts = []string{"15:04:05", "15:04"}

// Clock resolves civil birth data (date, optional time, optional zone) into
// instants, filling the gaps from its defaults.
type Clock struct {
	DefaultTime string
	Location    *time.Location
}

// NewClock validates the defaults and loads the IANA zone.
func NewClock(defaultTime, zone string) (Clock, error) {
	if _, err := parseClock(defaultTime); err != nil {
		return Clock{}, fmt.Errorf("default time %q: %w", defaultTime, err)
	}
	loc, err := time.LoadLocation(strings.TrimSpace(zone))
	if err != nil {
		return Clock{}, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return Clock{DefaultTime: defaultTime, Location: loc}, nil
}

// Resolve builds the instant for a birth date. date is YYYY-MM-DD or a full
// RFC 3339 timestamp, in which case clock and zone are ignored.
func (c Clock) Resolve(date, clock, zone string) (Instant, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return Instant{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date is required", nil)
	}
	if ts, err := time.Parse(time.RFC3339, date); err == nil {
		return NewInstant(ts), nil
	}

	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	if zone = strings.TrimSpace(zone); zone != "" {
		l, err := time.LoadLocation(zone)
		if err != nil {
			return Instant{}, apperrors.Wrap(apperrors.CodeInvalidInput, "timezone must be a valid IANA zone name", err)
		}
		loc = l
	}

	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return Instant{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
	}

	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = c.DefaultTime
	}
	tod, err := parseClock(clock)
	if err != nil {
		return Instant{}, apperrors.Wrap(apperrors.CodeInvalidInput, "time must be formatted as HH:MM or HH:MM:SS", err)
	}

	return NewInstant(time.Date(day.Year(), day.Month(), day.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, loc)), nil
}

func parseClock(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var err error
	for _, layout := range clockLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
