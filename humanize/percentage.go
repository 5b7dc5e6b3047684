package humanize

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const percentageDecimals = 2

// Percentage is a percentage in basis points (1% = 100).
type Percentage uint64

// BasisPoints returns the percentage in basis points.
func (p Percentage) BasisPoints() uint64 {
	return uint64(p)
}

// ParsePercentage parses a percentage such as "2.5%" with at most two
// decimal places.
func ParsePercentage(s string) (Percentage, error) {
	number, ok := trimSuffix(s, "%")
	if !ok {
		return 0, fmt.Errorf("input does not end with a percent sign (%%): %s", s)
	}
	bp, err := parseFixedPoint(number, percentageDecimals)
	if err != nil {
		return 0, err
	}
	return Percentage(bp), nil
}

func trimSuffix(s, suffix string) (string, bool) {
	if !strings.HasSuffix(s, suffix) {
		return s, false
	}
	return strings.TrimSuffix(s, suffix), true
}

func (p Percentage) String() string {
	return formatFixedPoint(uint64(p), percentageDecimals) + "%"
}

// MarshalText encodes the percentage into its human readable form.
func (p Percentage) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a human readable percentage.
func (p *Percentage) UnmarshalText(text []byte) error {
	parsed, err := ParsePercentage(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML encodes the percentage into its human readable form.
func (p Percentage) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML decodes a human readable percentage.
func (p *Percentage) UnmarshalYAML(value *yaml.Node) error {
	return decodeScalar(value, func(s string) error {
		return p.UnmarshalText([]byte(s))
	})
}
