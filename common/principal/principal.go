// Package principal implements the canonical identity values (principals)
// referenced by launch documents: controllers, fallback controllers and
// dapp canisters.
//
// The textual form is the CRC-32 checksum of the raw bytes followed by the
// raw bytes, base32 encoded (lower case, no padding) and split into groups
// of five characters separated by dashes.
package principal

import (
	"encoding"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"
)

// MaxLength is the maximum length of a principal in bytes.
const MaxLength = 29

var (
	// ErrTooLong is the error returned when the raw principal is longer
	// than MaxLength bytes.
	ErrTooLong = fmt.Errorf("principal: bytes is longer than %d bytes", MaxLength)
	// ErrInvalidBase32 is the error returned when the text is not valid
	// base32.
	ErrInvalidBase32 = errors.New("principal: text must be in valid base32 encoding")
	// ErrTooShort is the error returned when the text cannot contain a
	// checksum.
	ErrTooShort = errors.New("principal: text is too short")
	// ErrChecksumMismatch is the error returned when the embedded CRC-32
	// does not match the principal bytes.
	ErrChecksumMismatch = errors.New("principal: CRC32 check sequence doesn't match with calculated from principal bytes")

	encoding32 = base32.StdEncoding.WithPadding(base32.NoPadding)

	_ encoding.TextMarshaler     = Principal{}
	_ encoding.TextUnmarshaler   = (*Principal)(nil)
	_ encoding.BinaryMarshaler   = Principal{}
	_ encoding.BinaryUnmarshaler = (*Principal)(nil)
)

// Anonymous is the anonymous principal ("2vxsx-fae").
var Anonymous = Principal{raw: "\x04"}

// Principal is a canonical identity. The zero value is the management
// canister ("aaaaa-aa").
type Principal struct {
	raw string
}

// FromBytes creates a principal from its raw bytes.
func FromBytes(b []byte) (Principal, error) {
	if len(b) > MaxLength {
		return Principal{}, ErrTooLong
	}
	return Principal{raw: string(b)}, nil
}

// Parse parses the canonical textual form of a principal.
func Parse(text string) (Principal, error) {
	ungrouped := strings.ReplaceAll(text, "-", "")
	b, err := encoding32.DecodeString(strings.ToUpper(ungrouped))
	if err != nil {
		return Principal{}, ErrInvalidBase32
	}
	if len(b) < crc32.Size {
		return Principal{}, ErrTooShort
	}

	p, err := FromBytes(b[crc32.Size:])
	if err != nil {
		return Principal{}, err
	}
	if binary.BigEndian.Uint32(b[:crc32.Size]) != crc32.ChecksumIEEE(b[crc32.Size:]) {
		return Principal{}, ErrChecksumMismatch
	}
	if expected := p.String(); text != expected {
		return Principal{}, fmt.Errorf("principal: text should be in canonical form %q", expected)
	}

	return p, nil
}

// Bytes returns a copy of the raw principal bytes.
func (p Principal) Bytes() []byte {
	return []byte(p.raw)
}

// IsAnonymous returns true iff the principal is the anonymous principal.
func (p Principal) IsAnonymous() bool {
	return p == Anonymous
}

// Less orders principals by their raw bytes.
func (p Principal) Less(other Principal) bool {
	return p.raw < other.raw
}

// String returns the canonical textual form of the principal.
func (p Principal) String() string {
	buf := make([]byte, crc32.Size, crc32.Size+len(p.raw))
	binary.BigEndian.PutUint32(buf, crc32.ChecksumIEEE([]byte(p.raw)))
	buf = append(buf, p.raw...)

	encoded := strings.ToLower(encoding32.EncodeToString(buf))

	var sb strings.Builder
	for i := 0; i < len(encoded); i += 5 {
		if i > 0 {
			sb.WriteByte('-')
		}
		end := i + 5
		if end > len(encoded) {
			end = len(encoded)
		}
		sb.WriteString(encoded[i:end])
	}
	return sb.String()
}

// MarshalText encodes a principal into its canonical textual form.
func (p Principal) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a principal from its canonical textual form.
func (p *Principal) UnmarshalText(text []byte) error {
	decoded, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// MarshalBinary encodes a principal into its raw bytes.
func (p Principal) MarshalBinary() ([]byte, error) {
	return p.Bytes(), nil
}

// UnmarshalBinary decodes a principal from its raw bytes.
func (p *Principal) UnmarshalBinary(data []byte) error {
	decoded, err := FromBytes(data)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}
