package humanize

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// TimeOfDay is a wall clock time in UTC with minute resolution.
type TimeOfDay struct {
	Hours   uint8
	Minutes uint8
}

// SecondsAfterMidnight returns the number of seconds since 00:00 UTC.
func (t TimeOfDay) SecondsAfterMidnight() uint64 {
	return uint64(t.Hours)*SecondsPerHour + uint64(t.Minutes)*SecondsPerMinute
}

// ParseTimeOfDay parses a time of day of the form "hh:mm UTC".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 || fields[1] != "UTC" {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: must be of the form hh:mm UTC", s)
	}

	hhmm := strings.Split(fields[0], ":")
	if len(hhmm) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: must be of the form hh:mm UTC", s)
	}

	hours, err := parseTwoDigits(hhmm[0], 24)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid hours in %q: %w", s, err)
	}
	minutes, err := parseTwoDigits(hhmm[1], 60)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}

	return TimeOfDay{Hours: hours, Minutes: minutes}, nil
}

func parseTwoDigits(s string, limit uint64) (uint8, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("must be exactly two digits: %s", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a number: %s", s)
		}
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	if n >= limit {
		return 0, fmt.Errorf("must be less than %d: %s", limit, s)
	}
	return uint8(n), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d UTC", t.Hours, t.Minutes)
}

// MarshalText encodes the time of day into its human readable form.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a human readable time of day.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML encodes the time of day into its human readable form.
func (t TimeOfDay) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML decodes a human readable time of day.
func (t *TimeOfDay) UnmarshalYAML(value *yaml.Node) error {
	return decodeScalar(value, func(s string) error {
		return t.UnmarshalText([]byte(s))
	})
}
