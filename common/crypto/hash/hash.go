// Package hash implements a SHA-512/256 digest used to fingerprint payloads.
package hash

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"github.com/oasisprotocol/sns-launch/common/cbor"
)

// Size is the size of the digest in bytes.
const Size = 32

// ErrMalformed is the error returned when a hash is malformed.
var ErrMalformed = errors.New("hash: malformed hash")

// Hash is a SHA-512/256 digest over arbitrary binary data.
type Hash [Size]byte

// MarshalText encodes a Hash into hexadecimal text form.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h[:])), nil
}

// UnmarshalText decodes a hexadecimal text marshaled Hash.
func (h *Hash) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(b) != Size {
		return ErrMalformed
	}

	copy(h[:], b)

	return nil
}

// From sets the hash to that of the canonical CBOR encoding of v.
func (h *Hash) From(v interface{}) {
	h.FromBytes(cbor.Marshal(v))
}

// FromBytes sets the hash to that of an arbitrary byte string.
func (h *Hash) FromBytes(data ...[]byte) {
	hasher := sha512.New512_256()
	for _, d := range data {
		_, _ = hasher.Write(d)
	}
	copy(h[:], hasher.Sum(nil))
}

// Equal compares vs another hash for equality.
func (h *Hash) Equal(cmp *Hash) bool {
	if cmp == nil {
		return false
	}
	return subtle.ConstantTimeCompare(h[:], cmp[:]) == 1
}

// String returns the string representation of a hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// NewFrom creates a new hash by hashing the CBOR representation of the given type.
func NewFrom(v interface{}) (h Hash) {
	h.From(v)
	return
}
