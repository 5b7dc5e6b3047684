package principal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrincipalString(t *testing.T) {
	require := require.New(t)

	for _, tc := range []struct {
		raw  []byte
		text string
	}{
		{[]byte{}, "aaaaa-aa"},
		{[]byte{0x04}, "2vxsx-fae"},
		{[]byte{1, 2, 3}, "kw6ia-hibai-bq"},
		{[]byte{0, 0, 0, 0, 0, 0, 0, 1, 1, 1}, "rrkah-fqaaa-aaaaa-aaaaq-cai"},
		{[]byte{0, 0, 0, 0, 0, 0, 0, 2, 1, 1}, "ryjl3-tyaaa-aaaaa-aaaba-cai"},
	} {
		p, err := FromBytes(tc.raw)
		require.NoError(err, "FromBytes(%x)", tc.raw)
		require.Equal(tc.text, p.String(), "String(%x)", tc.raw)

		parsed, err := Parse(tc.text)
		require.NoError(err, "Parse(%s)", tc.text)
		require.Equal(p, parsed, "Parse(%s) round trips", tc.text)
	}

	require.True(Anonymous.IsAnonymous())
	require.Equal("2vxsx-fae", Anonymous.String())
}

func TestPrincipalParseErrors(t *testing.T) {
	require := require.New(t)

	_, err := Parse("not a principal")
	require.Equal(ErrInvalidBase32, err)

	_, err = Parse("aaaa")
	require.Equal(ErrTooShort, err)

	// Valid base32, but the checksum belongs to a different principal.
	_, err = Parse("ryjl3-tyaaa-aaaaa-aaaaq-cai")
	require.Equal(ErrChecksumMismatch, err)

	// Canonical bytes, wrong grouping.
	_, err = Parse("ryjl3tyaaaaaaaaaaabacai")
	require.Error(err)
	require.Contains(err.Error(), "canonical form")

	_, err = Parse("RYJL3-TYAAA-AAAAA-AAABA-CAI")
	require.Error(err, "upper case is not canonical")

	_, err = FromBytes(make([]byte, MaxLength+1))
	require.Equal(ErrTooLong, err)
}

func TestPrincipalSerialization(t *testing.T) {
	require := require.New(t)

	p, err := Parse("ryjl3-tyaaa-aaaaa-aaaba-cai")
	require.NoError(err)

	b, err := json.Marshal(p)
	require.NoError(err, "json.Marshal")
	require.Equal(`"ryjl3-tyaaa-aaaaa-aaaba-cai"`, string(b))

	var decoded Principal
	require.NoError(json.Unmarshal(b, &decoded), "json.Unmarshal")
	require.Equal(p, decoded)

	raw, err := p.MarshalBinary()
	require.NoError(err)
	var fromRaw Principal
	require.NoError(fromRaw.UnmarshalBinary(raw))
	require.Equal(p, fromRaw)

	require.True(Principal{}.Less(p))
	require.False(p.Less(p))
}
