package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseToolchain(t *testing.T) {
	require := require.New(t)

	for _, tc := range []struct {
		toolchain string
		expected  Version
	}{
		{"go1.18", Version{Major: 1, Minor: 18}},
		{"go1.18.3", Version{Major: 1, Minor: 18, Patch: 3}},
		{"go1.21.0", Version{Major: 1, Minor: 21}},
		{"devel +a1b2c3", Version{}},
		{"go1", Version{}},
		{"go1.2.3.4", Version{}},
	} {
		require.Equal(tc.expected, parseToolchain(tc.toolchain), "parseToolchain(%q)", tc.toolchain)
	}
}

func TestVersion(t *testing.T) {
	require := require.New(t)

	v := Version{Major: 1, Minor: 2, Patch: 3}
	require.Equal("1.2.3", v.String())
	require.Equal(Version{Major: 1, Minor: 2}, v.MajorMinor())
	require.Equal(PayloadFormat, Versions.PayloadFormat)
}
