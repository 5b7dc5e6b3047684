// Package version implements sns-launch versioning.
package version

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Version is a software or payload format version.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// String returns the version as a string.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MajorMinor extracts major and minor segments of the Version only.
func (v Version) MajorMinor() Version {
	return Version{
		Major: v.Major,
		Minor: v.Minor,
		Patch: 0,
	}
}

var (
	// SoftwareVersion represents the sns-launch software version. It is
	// set at build time through the linker.
	SoftwareVersion = "0.0-unset"

	// GitBranch is the name of the git branch the software was built from.
	GitBranch = ""

	// PayloadFormat versions the encoding of the proposal and the
	// initialization payloads, which the fingerprints depend on.
	PayloadFormat = Version{Major: 1, Minor: 0, Patch: 0}

	// Toolchain is the version of the Go toolchain used to build the
	// software.
	Toolchain = parseToolchain(runtime.Version())
)

// Versions contains all known versions.
var Versions = struct {
	PayloadFormat Version
	Toolchain     Version
}{
	PayloadFormat,
	Toolchain,
}

// parseToolchain parses a "go1.x[.y]" toolchain version. Development
// toolchains yield the zero version.
func parseToolchain(s string) Version {
	v, err := parseSemVerStr(strings.TrimPrefix(s, "go"))
	if err != nil {
		return Version{}
	}
	return v
}

func parseSemVerStr(s string) (Version, error) {
	split := strings.Split(s, ".")
	if len(split) < 2 || len(split) > 3 {
		return Version{}, fmt.Errorf("version: malformed version '%s'", s)
	}

	var semVers [3]uint16
	for i, v := range split {
		n, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return Version{}, fmt.Errorf("version: failed to parse '%s': %w", s, err)
		}
		semVers[i] = uint16(n)
	}

	return Version{Major: semVers[0], Minor: semVers[1], Patch: semVers[2]}, nil
}
