package payload

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	cmdCommon "github.com/oasisprotocol/sns-launch/sns-launch/cmd/common"
	"github.com/oasisprotocol/sns-launch/sns-launch/cmd/common/flags"
	"github.com/oasisprotocol/sns-launch/sns/api"
	"github.com/oasisprotocol/sns-launch/sns/config"
	"github.com/oasisprotocol/sns-launch/sns/convert"
	"github.com/oasisprotocol/sns-launch/sns/validation"
)

func setFlags(t *testing.T, format string, mode validation.Mode) {
	viper.Set(flags.CfgFormat, format)
	viper.Set(flags.CfgMode, mode.String())
	t.Cleanup(func() {
		viper.Set(flags.CfgFormat, flags.FormatJSON)
		viper.Set(flags.CfgMode, validation.PreExecution.String())
	})
}

func writePayload(t *testing.T, payload *api.InitPayload, format string) string {
	data, err := cmdCommon.Encode(payload, format)
	require.NoError(t, err, "Encode")
	path := filepath.Join(t.TempDir(), "payload."+format)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestValidatePayload(t *testing.T) {
	require := require.New(t)

	doc, err := config.LoadDocument("../../../sns/config/testdata/sns_init.yaml")
	require.NoError(err, "config.LoadDocument")
	proposal, err := convert.ToProposal(doc)
	require.NoError(err, "ToProposal")
	pre, err := convert.ToInitPayload(proposal)
	require.NoError(err, "ToInitPayload")
	post, err := convert.ToExecutedInitPayload(doc, time.Unix(1_700_000_000, 0))
	require.NoError(err, "ToExecutedInitPayload")

	for _, format := range []string{flags.FormatJSON, flags.FormatCBOR} {
		prePath := writePayload(t, pre, format)
		postPath := writePayload(t, post, format)

		var buf bytes.Buffer
		setFlags(t, format, validation.PreExecution)
		require.NoError(validatePayload(&buf, prePath, false), "pre-execution payload (%s)", format)
		require.Equal("OK (pre-execution): "+pre.Fingerprint().String()+"\n", buf.String())

		buf.Reset()
		setFlags(t, format, validation.PostExecution)
		require.NoError(validatePayload(&buf, postPath, true), "post-execution payload (%s)", format)
		require.Contains(buf.String(), "OK (post-execution): "+post.Fingerprint().String())

		err = validatePayload(&buf, prePath, false)
		require.ErrorIs(err, validation.ErrValidation, "unexecuted payload in post-execution mode (%s)", format)

		setFlags(t, format, validation.PreExecution)
		err = validatePayload(&buf, postPath, false)
		require.ErrorIs(err, validation.ErrValidation, "executed payload in pre-execution mode (%s)", format)
	}
}

func TestValidatePayloadErrors(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	setFlags(t, flags.FormatJSON, validation.PreExecution)
	require.Error(validatePayload(&buf, "", false), "missing payload path")
	require.Error(validatePayload(&buf, filepath.Join(t.TempDir(), "missing.json"), false), "missing payload file")

	path := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(os.WriteFile(path, []byte("{not json"), 0o600))
	require.Error(validatePayload(&buf, path, false), "malformed payload")

	viper.Set(flags.CfgMode, "sideways")
	require.Error(validatePayload(&buf, path, false), "unknown validation mode")
	require.Zero(buf.Len())
}
