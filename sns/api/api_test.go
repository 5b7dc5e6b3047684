package api

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/sns-launch/common/prettyprint"
	"github.com/oasisprotocol/sns-launch/common/principal"
)

func testInitPayload(t *testing.T) *InitPayload {
	controller, err := principal.Parse("ryjl3-tyaaa-aaaaa-aaaba-cai")
	require.NoError(t, err, "principal.Parse")

	fee, symbol, name := uint64(10_000), "SNS", "Sns Token"
	return &InitPayload{
		TransactionFeeE8s:              &fee,
		TokenSymbol:                    &symbol,
		TokenName:                      &name,
		FallbackControllerPrincipalIDs: []string{controller.String()},
		InitialTokenDistribution: &FractionalDeveloperVotingPower{
			DeveloperDistribution: &FractionalDeveloperDistribution{
				DeveloperNeurons: []InitNeuronDistribution{
					{Controller: &controller, StakeE8s: 15 * E8, Memo: 0, DissolveDelaySeconds: 15_780_000},
				},
			},
			TreasuryDistribution: &FractionalTreasuryDistribution{TotalE8s: 50 * E8},
			SwapDistribution:     &FractionalSwapDistribution{TotalE8s: 60 * E8, InitialSwapAmountE8s: 60 * E8},
			AirdropDistribution:  &AirdropDistribution{AirdropNeurons: []InitNeuronDistribution{}},
		},
	}
}

func TestInitPayloadClone(t *testing.T) {
	require := require.New(t)

	p := testInitPayload(t)
	cp := p.Clone()
	require.Equal(p, cp, "clone should be equal")
	require.Equal(p.Fingerprint(), cp.Fingerprint(), "clone should have the same fingerprint")

	*cp.TransactionFeeE8s = 20_000
	cp.InitialTokenDistribution.DeveloperDistribution.DeveloperNeurons[0].StakeE8s = 1
	require.EqualValues(10_000, *p.TransactionFeeE8s, "clone should not alias the original")
	require.EqualValues(15*E8, p.InitialTokenDistribution.DeveloperDistribution.DeveloperNeurons[0].StakeE8s)
	require.NotEqual(p.Fingerprint(), cp.Fingerprint(), "different payloads should have different fingerprints")
}

func TestInitPayloadSwapDistribution(t *testing.T) {
	require := require.New(t)

	p := testInitPayload(t)
	require.EqualValues(60*E8, p.SwapDistribution().InitialSwapAmountE8s)

	p.InitialTokenDistribution = nil
	require.Nil(p.SwapDistribution())
}

func TestInitPayloadJSON(t *testing.T) {
	require := require.New(t)

	p := testInitPayload(t)
	raw, err := json.Marshal(p)
	require.NoError(err, "json.Marshal")
	require.Contains(string(raw), `"controller":"ryjl3-tyaaa-aaaaa-aaaba-cai"`)
	require.NotContains(string(raw), "nns_proposal_id", "unset fields should be omitted")

	var decoded InitPayload
	require.NoError(json.Unmarshal(raw, &decoded), "json.Unmarshal")
	require.Equal(p, &decoded)
}

func TestPrettyPrint(t *testing.T) {
	require := require.New(t)

	p := testInitPayload(t)

	var buf bytes.Buffer
	p.PrettyPrint(context.Background(), "", &buf)
	require.Contains(buf.String(), "Sns Token (SNS)")
	require.Contains(buf.String(), "Transaction fee:     10_000 e8s")
	require.Contains(buf.String(), "NNS proposal:        (unset)")
	require.Contains(buf.String(), "Swap:              60 tokens (initially 60 tokens)")

	buf.Reset()
	ctx := context.WithValue(context.Background(), prettyprint.ContextKeyTokenSymbol, "XYZ")
	p.PrettyPrint(ctx, "  ", &buf)
	require.Contains(buf.String(), "  Token:               Sns Token (XYZ)")

	require.Equal("1 token", Tokens{E8s: E8}.String())
	require.Equal("4days", Duration{Seconds: 4 * 86_400}.String())
	require.Equal("2.5%", Percentage{BasisPoints: 250}.String())
}
