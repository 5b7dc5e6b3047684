package humanize

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// E8 is the number of e8s in one token.
	E8 uint64 = 100_000_000

	tokenDecimals = 8

	// Amounts strictly between zero and this bound are rendered in e8s.
	smallAmountE8s = 1_000_000
)

// Tokens is an amount of tokens in e8s.
type Tokens uint64

// TokensFromWhole returns the amount of whole tokens n in e8s.
func TokensFromWhole(n uint64) Tokens {
	return Tokens(n * E8)
}

// E8s returns the amount in e8s.
func (t Tokens) E8s() uint64 {
	return uint64(t)
}

// ParseTokens parses an amount such as "1_000.5 tokens", "1 token" or
// "10_000 e8s".
func ParseTokens(s string) (Tokens, error) {
	var (
		e8s uint64
		err error
	)
	switch {
	case strings.HasSuffix(s, "tokens"):
		e8s, err = parseFixedPoint(strings.TrimSpace(strings.TrimSuffix(s, "tokens")), tokenDecimals)
	case strings.HasSuffix(s, "token"):
		e8s, err = parseFixedPoint(strings.TrimSpace(strings.TrimSuffix(s, "token")), tokenDecimals)
	case strings.HasSuffix(s, "e8s"):
		e8s, err = parseGroupedUint(strings.TrimSpace(strings.TrimSuffix(s, "e8s")))
	default:
		return 0, fmt.Errorf("invalid tokens input string: %s", s)
	}
	if err != nil {
		return 0, err
	}
	return Tokens(e8s), nil
}

// String renders the amount, using e8s for dust amounts and (fractional)
// tokens otherwise.
func (t Tokens) String() string {
	e8s := uint64(t)
	if 0 < e8s && e8s < smallAmountE8s {
		return groupDigits(e8s) + " e8s"
	}

	units := "tokens"
	if e8s == E8 {
		units = "token"
	}
	return formatFixedPoint(e8s, tokenDecimals) + " " + units
}

// MarshalText encodes the amount into its human readable form.
func (t Tokens) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a human readable amount.
func (t *Tokens) UnmarshalText(text []byte) error {
	parsed, err := ParseTokens(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML encodes the amount into its human readable form.
func (t Tokens) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML decodes a human readable amount.
func (t *Tokens) UnmarshalYAML(value *yaml.Node) error {
	return decodeScalar(value, func(s string) error {
		return t.UnmarshalText([]byte(s))
	})
}
