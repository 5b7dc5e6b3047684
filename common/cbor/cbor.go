// Package cbor provides helpers for encoding and decoding canonical CBOR.
//
// Using this package will produce canonical encodings which can be used
// to fingerprint payloads as the same value is guaranteed to always have
// the same serialization.
package cbor

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

// Marshal serializes a given type into a canonical CBOR byte vector.
func Marshal(src interface{}) []byte {
	b, err := encMode.Marshal(src)
	if err != nil {
		panic("common/cbor: failed to marshal: " + err.Error())
	}
	return b
}

// Unmarshal deserializes a CBOR byte vector into a given type.
func Unmarshal(data []byte, dst interface{}) error {
	if data == nil {
		return nil
	}

	return decMode.Unmarshal(data, dst)
}

// UnmarshalStrict deserializes a CBOR byte vector into a given type and
// fails unless the input is the canonical encoding of the result.
func UnmarshalStrict(data []byte, dst interface{}) error {
	if err := Unmarshal(data, dst); err != nil {
		return err
	}

	reencoded := Marshal(dst)
	if !bytes.Equal(data, reencoded) {
		return fmt.Errorf(
			"common/cbor: encoded %T does not round-trip (expected: %s, actual: %s)",
			dst,
			hex.EncodeToString(data),
			hex.EncodeToString(reencoded),
		)
	}
	return nil
}

func init() {
	var err error
	if encMode, err = cbor.CanonicalEncOptions().EncMode(); err != nil {
		panic("common/cbor: failed to create encoder: " + err.Error())
	}
	decOpts := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}
	if decMode, err = decOpts.DecMode(); err != nil {
		panic("common/cbor: failed to create decoder: " + err.Error())
	}
}
