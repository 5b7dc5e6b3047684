// Package humanize implements conversion between the human friendly unit
// strings used in launch documents ("100 tokens", "4 days 3 hours", "25%",
// "10:30 UTC") and their canonical integer representations.
//
// Every value round-trips: parsing the output of String() yields the
// original value. All arithmetic is integer arithmetic and overflow is
// reported as an error.
package humanize

import (
	"fmt"
	"math/big"
	"math/bits"
	"regexp"
	"strconv"
	"strings"

	goHumanize "github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

var fixedPointRegexp = regexp.MustCompile(`^(?P<whole>[0-9_]+)(?:[.](?P<fractional>[0-9_]+))?$`)

// parseFixedPoint parses a decimal number with at most decimalPlaces
// fractional digits and returns it scaled by 10^decimalPlaces. Underscores
// may be used to group digits.
func parseFixedPoint(s string, decimalPlaces int) (uint64, error) {
	found := fixedPointRegexp.FindStringSubmatch(s)
	if found == nil {
		return 0, fmt.Errorf("not a number: %s", s)
	}

	whole, err := parseGroupedUint(found[1])
	if err != nil {
		return 0, err
	}

	fractional := strings.ReplaceAll(found[2], "_", "")
	if len(fractional) > decimalPlaces {
		return 0, fmt.Errorf("too many digits after the decimal place: %s", s)
	}
	fractional += strings.Repeat("0", decimalPlaces-len(fractional))
	fractionalValue, err := strconv.ParseUint(fractional, 10, 64)
	if err != nil {
		return 0, err
	}

	shifted, err := shiftDecimalRight(whole, decimalPlaces)
	if err != nil {
		return 0, err
	}

	sum, carry := bits.Add64(shifted, fractionalValue, 0)
	if carry != 0 {
		return 0, fmt.Errorf("too large of a number: %s", s)
	}
	return sum, nil
}

func shiftDecimalRight(n uint64, count int) (uint64, error) {
	boost := uint64(1)
	for i := 0; i < count; i++ {
		hi, lo := bits.Mul64(boost, 10)
		if hi != 0 {
			return 0, fmt.Errorf("too large of an exponent: %d", count)
		}
		boost = lo
	}

	hi, lo := bits.Mul64(n, boost)
	if hi != 0 {
		return 0, fmt.Errorf("too large of a decimal shift: %d >> %d", n, count)
	}
	return lo, nil
}

func parseGroupedUint(s string) (uint64, error) {
	return strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 10, 64)
}

// formatFixedPoint renders n / 10^decimalPlaces with grouped whole digits
// and without trailing fractional zeros.
func formatFixedPoint(n uint64, decimalPlaces int) string {
	scale := uint64(1)
	for i := 0; i < decimalPlaces; i++ {
		scale *= 10
	}

	whole, fractional := n/scale, n%scale
	if fractional == 0 {
		return groupDigits(whole)
	}

	digits := fmt.Sprintf("%0*d", decimalPlaces, fractional)
	return groupDigits(whole) + "." + strings.TrimRight(digits, "0")
}

// groupDigits renders n with thousands separated by underscores, which is
// the only grouping the parsers accept.
func groupDigits(n uint64) string {
	return strings.ReplaceAll(goHumanize.BigComma(new(big.Int).SetUint64(n)), ",", "_")
}

func decodeScalar(value *yaml.Node, parse func(string) error) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a string, got a %s", value.Line, nodeKind(value.Kind))
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if err := parse(s); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	return nil
}

func nodeKind(kind yaml.Kind) string {
	switch kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
