package validation

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/sns-launch/common/fuzz"
	"github.com/oasisprotocol/sns-launch/sns/api"
)

// Arbitrary payloads must be either accepted or rejected with a validation
// error, never crash the validator.
func TestValidateArbitraryPayloads(t *testing.T) {
	require := require.New(t)

	rng := rand.New(rand.NewSource(42)) // nolint: gosec
	for i := 0; i < 500; i++ {
		blob := make([]byte, 64+rng.Intn(4096))
		_, _ = rng.Read(blob)

		var payload api.InitPayload
		fuzz.NewFiller(blob, 0.3, 4).Fill(&payload)

		for _, mode := range []Mode{PreExecution, PostExecution} {
			var (
				validated *api.InitPayload
				err       error
			)
			require.NotPanics(func() { validated, err = Validate(&payload, mode) }, "Validate (%s) iteration %d", mode, i)
			if err != nil {
				require.True(errors.Is(err, ErrValidation), "defects should be validation errors")
				require.NotEmpty(err.Error())
				require.Nil(validated)
				continue
			}
			require.Equal(payload.Fingerprint(), validated.Fingerprint(), "accepted payloads should be returned unchanged")
		}
	}
}

func TestFillerDeterministic(t *testing.T) {
	require := require.New(t)

	blob := make([]byte, 2048)
	for i := range blob {
		blob[i] = byte(i * 7)
	}

	var a, b api.InitPayload
	fuzz.NewFiller(blob, 0.5, 3).Fill(&a)
	fuzz.NewFiller(blob, 0.5, 3).Fill(&b)
	require.Equal(a.Fingerprint(), b.Fingerprint(), "the same blob should produce the same payload")
}
