package humanize

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Seconds per calendar unit, as understood by the duration grammar.
const (
	SecondsPerMinute uint64 = 60
	SecondsPerHour          = 60 * SecondsPerMinute
	SecondsPerDay           = 24 * SecondsPerHour
	SecondsPerWeek          = 7 * SecondsPerDay
	SecondsPerMonth  uint64 = 2_630_016
	SecondsPerYear   uint64 = 31_557_600
)

var (
	// ErrEmptyDuration is the error returned when parsing an empty duration.
	ErrEmptyDuration = errors.New("value was empty")
	// ErrDurationOverflow is the error returned when a duration does not
	// fit in 64 bits.
	ErrDurationOverflow = errors.New("number is too large")
)

type durationUnit struct {
	names   []string
	seconds uint64
	nanos   uint64
}

var durationUnits = []durationUnit{
	{names: []string{"nanos", "nsec", "ns"}, nanos: 1},
	{names: []string{"usec", "us", "µs"}, nanos: 1_000},
	{names: []string{"millis", "msec", "ms"}, nanos: 1_000_000},
	{names: []string{"seconds", "second", "secs", "sec", "s"}, seconds: 1},
	{names: []string{"minutes", "minute", "min", "mins", "m"}, seconds: SecondsPerMinute},
	{names: []string{"hours", "hour", "hr", "hrs", "h"}, seconds: SecondsPerHour},
	{names: []string{"days", "day", "d"}, seconds: SecondsPerDay},
	{names: []string{"weeks", "week", "w"}, seconds: SecondsPerWeek},
	{names: []string{"months", "month", "M"}, seconds: SecondsPerMonth},
	{names: []string{"years", "year", "y"}, seconds: SecondsPerYear},
}

func lookupDurationUnit(name string) (durationUnit, bool) {
	for _, u := range durationUnits {
		for _, n := range u.names {
			if n == name {
				return u, true
			}
		}
	}
	return durationUnit{}, false
}

// Duration is a span of time with a resolution of one second.
type Duration uint64

// Seconds returns the duration in seconds.
func (d Duration) Seconds() uint64 {
	return uint64(d)
}

// ParseDuration parses a duration such as "4 days 3h" or "1year 6months".
//
// Every number must be followed by a unit. Sub-second units are accepted
// and the total is truncated to whole seconds.
func ParseDuration(s string) (Duration, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return 0, ErrEmptyDuration
	}

	var seconds, nanos uint64
	for rest != "" {
		numEnd := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
		if numEnd == 0 {
			return 0, fmt.Errorf("expected number at %d", len(s)-len(rest))
		}
		if numEnd < 0 {
			return 0, fmt.Errorf("time unit needed, for example %s sec or %s ms", rest, rest)
		}
		n, err := strconv.ParseUint(rest[:numEnd], 10, 64)
		if err != nil {
			return 0, ErrDurationOverflow
		}

		rest = strings.TrimLeftFunc(rest[numEnd:], unicode.IsSpace)
		unitEnd := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsLetter(r) })
		if unitEnd < 0 {
			unitEnd = len(rest)
		}
		name := rest[:unitEnd]
		if name == "" {
			return 0, fmt.Errorf("time unit needed, for example %d sec or %d ms", n, n)
		}
		unit, ok := lookupDurationUnit(name)
		if !ok {
			return 0, fmt.Errorf("unknown time unit %q, supported units: ns, us, ms, sec, min, hours, days, weeks, months, years (and few variations)", name)
		}

		if unit.nanos != 0 {
			hi, lo := bits.Mul64(n, unit.nanos)
			if hi != 0 {
				return 0, ErrDurationOverflow
			}
			var carry uint64
			if nanos, carry = bits.Add64(nanos, lo, 0); carry != 0 {
				return 0, ErrDurationOverflow
			}
		} else {
			hi, lo := bits.Mul64(n, unit.seconds)
			if hi != 0 {
				return 0, ErrDurationOverflow
			}
			var carry uint64
			if seconds, carry = bits.Add64(seconds, lo, 0); carry != 0 {
				return 0, ErrDurationOverflow
			}
		}

		rest = strings.TrimLeftFunc(rest[unitEnd:], unicode.IsSpace)
	}

	total, carry := bits.Add64(seconds, nanos/1_000_000_000, 0)
	if carry != 0 {
		return 0, ErrDurationOverflow
	}
	return Duration(total), nil
}

// String renders the duration with the largest units first, for example
// "1year 2months 4days 3h 5m 6s". Zero is rendered as "0s".
func (d Duration) String() string {
	secs := uint64(d)
	if secs == 0 {
		return "0s"
	}

	var parts []string
	plural := func(n uint64, singular string) {
		switch {
		case n == 0:
		case n == 1:
			parts = append(parts, fmt.Sprintf("%d%s", n, singular))
		default:
			parts = append(parts, fmt.Sprintf("%d%ss", n, singular))
		}
	}
	short := func(n uint64, suffix string) {
		if n != 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, suffix))
		}
	}

	years := secs / SecondsPerYear
	secs %= SecondsPerYear
	months := secs / SecondsPerMonth
	secs %= SecondsPerMonth
	days := secs / SecondsPerDay
	secs %= SecondsPerDay

	plural(years, "year")
	plural(months, "month")
	plural(days, "day")
	short(secs/SecondsPerHour, "h")
	short(secs%SecondsPerHour/SecondsPerMinute, "m")
	short(secs%SecondsPerMinute, "s")

	return strings.Join(parts, " ")
}

// MarshalText encodes the duration into its human readable form.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a human readable duration.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes the duration into its human readable form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML decodes a human readable duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return decodeScalar(value, func(s string) error {
		return d.UnmarshalText([]byte(s))
	})
}
