package common

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/oasisprotocol/sns-launch/common/cbor"
	"github.com/oasisprotocol/sns-launch/sns-launch/cmd/common/flags"
)

// PrettyJSONMarshal returns pretty-printed JSON encoding of v.
func PrettyJSONMarshal(v interface{}) ([]byte, error) {
	formatted, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to pretty JSON: %w", err)
	}
	return formatted, nil
}

// Encode encodes a payload in the given format.
func Encode(v interface{}, format string) ([]byte, error) {
	switch format {
	case flags.FormatJSON:
		return PrettyJSONMarshal(v)
	case flags.FormatCBOR:
		return cbor.Marshal(v), nil
	default:
		return nil, fmt.Errorf("unsupported payload format: '%s'", format)
	}
}

// Decode decodes a payload in the given format. CBOR payloads must be
// canonically encoded.
func Decode(data []byte, format string, dst interface{}) error {
	switch format {
	case flags.FormatJSON:
		return json.Unmarshal(data, dst)
	case flags.FormatCBOR:
		return cbor.UnmarshalStrict(data, dst)
	default:
		return fmt.Errorf("unsupported payload format: '%s'", format)
	}
}

// WriteOutput encodes v and writes it to path, or to w when path is empty.
// CBOR written to w is hex encoded.
func WriteOutput(w io.Writer, path string, v interface{}, format string) error {
	data, err := Encode(v, format)
	if err != nil {
		return err
	}

	if path != "" {
		if err = os.WriteFile(normalizePath(path), data, 0o600); err != nil {
			return fmt.Errorf("failed to write '%s': %w", path, err)
		}
		return nil
	}

	if format == flags.FormatCBOR {
		data = []byte(hex.EncodeToString(data))
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
