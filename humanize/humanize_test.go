package humanize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseTokens(t *testing.T) {
	require := require.New(t)

	for _, tc := range []struct {
		input    string
		expected uint64
	}{
		{"1 token", E8},
		{"1token", E8},
		{"0 tokens", 0},
		{"1_000 tokens", 1_000 * E8},
		{"1.5 tokens", 150_000_000},
		{"0.00000001 tokens", 1},
		{"10_000 e8s", 10_000},
		{"  2 tokens", 2 * E8},
	} {
		tokens, err := ParseTokens(tc.input)
		require.NoError(err, "ParseTokens(%q)", tc.input)
		require.EqualValues(tc.expected, tokens, "ParseTokens(%q)", tc.input)
	}

	for _, input := range []string{
		"",
		"1",
		"1 icp",
		"tokens",
		"1.000000001 tokens",
		"-1 tokens",
		"184467440738 tokens",
	} {
		_, err := ParseTokens(input)
		require.Error(err, "ParseTokens(%q)", input)
	}

	_, err := ParseTokens("12 ICP")
	require.EqualError(err, "invalid tokens input string: 12 ICP")
}

func TestFormatTokens(t *testing.T) {
	require := require.New(t)

	for _, tc := range []struct {
		e8s      uint64
		expected string
	}{
		{0, "0 tokens"},
		{1, "1 e8s"},
		{999_999, "999_999 e8s"},
		{1_000_000, "0.01 tokens"},
		{E8, "1 token"},
		{E8 + 1, "1.00000001 tokens"},
		{1_234_567 * E8, "1_234_567 tokens"},
		{150_000_000, "1.5 tokens"},
	} {
		require.Equal(tc.expected, Tokens(tc.e8s).String(), "Tokens(%d).String()", tc.e8s)
	}
}

func TestTokensRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, e8s := range []uint64{0, 1, 42, 999_999, 1_000_000, E8, 3 * E8, 123_456_789_012, math.MaxUint64} {
		parsed, err := ParseTokens(Tokens(e8s).String())
		require.NoError(err, "ParseTokens(Tokens(%d).String())", e8s)
		require.EqualValues(e8s, parsed)
	}
}

func TestParseDuration(t *testing.T) {
	require := require.New(t)

	for _, tc := range []struct {
		input    string
		expected uint64
	}{
		{"0s", 0},
		{"1s", 1},
		{"4 days", 4 * SecondsPerDay},
		{"4days 3h", 4*SecondsPerDay + 3*SecondsPerHour},
		{"1h30m", SecondsPerHour + 30*SecondsPerMinute},
		{"2 weeks", 2 * SecondsPerWeek},
		{"6 months", 6 * SecondsPerMonth},
		{"1M", SecondsPerMonth},
		{"8 years", 8 * SecondsPerYear},
		{"1500ms", 1},
		{"999ms", 0},
		{"10 minutes 5 sec", 605},
	} {
		d, err := ParseDuration(tc.input)
		require.NoError(err, "ParseDuration(%q)", tc.input)
		require.EqualValues(tc.expected, d, "ParseDuration(%q)", tc.input)
	}

	_, err := ParseDuration("")
	require.Equal(ErrEmptyDuration, err)

	_, err = ParseDuration("   ")
	require.Equal(ErrEmptyDuration, err)

	_, err = ParseDuration("10")
	require.Error(err, "unit is required")
	require.Contains(err.Error(), "time unit needed")

	_, err = ParseDuration("10 fortnights")
	require.Error(err)
	require.Contains(err.Error(), "unknown time unit")

	_, err = ParseDuration("days")
	require.Error(err)

	_, err = ParseDuration("999999999999999999999 s")
	require.Equal(ErrDurationOverflow, err)

	_, err = ParseDuration("18446744073709551615 years")
	require.Equal(ErrDurationOverflow, err)
}

func TestFormatDuration(t *testing.T) {
	require := require.New(t)

	for _, tc := range []struct {
		secs     uint64
		expected string
	}{
		{0, "0s"},
		{59, "59s"},
		{SecondsPerDay, "1day"},
		{4*SecondsPerDay + 3*SecondsPerHour, "4days 3h"},
		{SecondsPerYear, "1year"},
		{8 * SecondsPerYear, "8years"},
		{SecondsPerYear + 2*SecondsPerMonth + SecondsPerMinute + 1, "1year 2months 1m 1s"},
	} {
		require.Equal(tc.expected, Duration(tc.secs).String(), "Duration(%d).String()", tc.secs)
	}
}

func TestDurationRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, secs := range []uint64{0, 1, 61, 3_601, SecondsPerDay + 1, SecondsPerMonth - 1, 15_778_800, 252_460_800, math.MaxUint64} {
		parsed, err := ParseDuration(Duration(secs).String())
		require.NoError(err, "ParseDuration(Duration(%d).String())", secs)
		require.EqualValues(secs, parsed)
	}
}

func TestPercentage(t *testing.T) {
	require := require.New(t)

	for _, tc := range []struct {
		input    string
		expected uint64
		text     string
	}{
		{"0%", 0, "0%"},
		{"2.5%", 250, "2.5%"},
		{"2.50%", 250, "2.5%"},
		{"100%", 10_000, "100%"},
		{"0.01%", 1, "0.01%"},
		{"1_000%", 100_000, "1_000%"},
	} {
		p, err := ParsePercentage(tc.input)
		require.NoError(err, "ParsePercentage(%q)", tc.input)
		require.EqualValues(tc.expected, p)
		require.Equal(tc.text, p.String())
	}

	for _, input := range []string{"", "5", "%", "1.001%", "abc%", "-1%", " 25%", "25 %", "25\t%", "25% "} {
		_, err := ParsePercentage(input)
		require.Error(err, "ParsePercentage(%q)", input)
	}
}

func TestTimeOfDay(t *testing.T) {
	require := require.New(t)

	tod, err := ParseTimeOfDay("10:30 UTC")
	require.NoError(err)
	require.Equal(TimeOfDay{Hours: 10, Minutes: 30}, tod)
	require.EqualValues(37_800, tod.SecondsAfterMidnight())
	require.Equal("10:30 UTC", tod.String())

	tod, err = ParseTimeOfDay("23:59 UTC")
	require.NoError(err, "last minute of the day")
	require.Equal("23:59 UTC", tod.String())

	for _, input := range []string{
		"",
		"10:30",
		"10:30 CET",
		"1:30 UTC",
		"10:3 UTC",
		"24:00 UTC",
		"12:60 UTC",
		"ab:cd UTC",
		"10:30:00 UTC",
		"10:30 UTC extra",
	} {
		_, err = ParseTimeOfDay(input)
		require.Error(err, "ParseTimeOfDay(%q)", input)
	}
}

func TestYAML(t *testing.T) {
	require := require.New(t)

	type doc struct {
		Fee     Tokens     `yaml:"fee"`
		Delay   Duration   `yaml:"delay"`
		Rate    Percentage `yaml:"rate"`
		StartAt *TimeOfDay `yaml:"start_at"`
	}

	var d doc
	err := yaml.Unmarshal([]byte(`
fee: 0.0001 tokens
delay: 4 days
rate: 2.5%
start_at: 10:30 UTC
`), &d)
	require.NoError(err, "yaml.Unmarshal")
	require.EqualValues(10_000, d.Fee)
	require.EqualValues(4*SecondsPerDay, d.Delay)
	require.EqualValues(250, d.Rate)
	require.Equal(&TimeOfDay{Hours: 10, Minutes: 30}, d.StartAt)

	out, err := yaml.Marshal(&d)
	require.NoError(err, "yaml.Marshal")

	var decoded doc
	require.NoError(yaml.Unmarshal(out, &decoded), "yaml round trip")
	require.Equal(d, decoded)

	err = yaml.Unmarshal([]byte("fee: [1, 2]\n"), &d)
	require.Error(err)
	require.Contains(err.Error(), "expected a string, got a sequence")

	err = yaml.Unmarshal([]byte("fee: 12\n"), &d)
	require.Error(err)
	require.Contains(err.Error(), "line 1")
}
