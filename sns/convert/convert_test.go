package convert

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/sns-launch/humanize"
	"github.com/oasisprotocol/sns-launch/sns/api"
	"github.com/oasisprotocol/sns-launch/sns/config"
	"github.com/oasisprotocol/sns-launch/sns/validation"
)

const (
	testCreator  = "yvlkr-usbct-hle46-xbfmr-w4r4h-uaahu-bsdco-3blze-imj7k-5oeb3-mae"
	testBackup   = "gzlng-jqzta-5kubz-4nyam-5so2e-tsoio-ijv2s-47dsw-7ksd7-pe3eb-zqe"
	testCanister = "ryjl3-tyaaa-aaaaa-aaaba-cai"
)

func loadTestDocument(t *testing.T) *config.Document {
	doc, err := config.LoadDocument("../config/testdata/sns_init.yaml")
	require.NoError(t, err, "config.LoadDocument")
	return doc
}

func TestToProposal(t *testing.T) {
	require := require.New(t)

	doc := loadTestDocument(t)
	proposal, err := ToProposal(doc)
	require.NoError(err, "ToProposal")

	require.Equal("Creator DAO", *proposal.Name)
	require.Equal("https://yral.com", *proposal.URL)
	require.Equal(doc.LogoB64, proposal.Logo.Base64Encoding)

	require.Len(proposal.FallbackControllerPrincipalIDs, 2)
	require.Equal(testCreator, proposal.FallbackControllerPrincipalIDs[0].String(), "aliases should resolve by name")
	require.Equal(testBackup, proposal.FallbackControllerPrincipalIDs[1].String(), "aliases should resolve by email")
	require.Len(proposal.DappCanisters, 1)
	require.Equal(testCanister, proposal.DappCanisters[0].ID.String())

	dist := proposal.InitialTokenDistribution
	require.Len(dist.DeveloperDistribution.DeveloperNeurons, 1)
	neuron := dist.DeveloperDistribution.DeveloperNeurons[0]
	require.Equal(testCreator, neuron.Controller.String())
	require.EqualValues(1_000*api.E8, neuron.Stake.E8s)
	require.EqualValues(2*humanize.SecondsPerYear, neuron.DissolveDelay.Seconds)
	require.EqualValues(2_000_000*api.E8, dist.TreasuryDistribution.Total.E8s)
	require.EqualValues(500_000*api.E8, dist.SwapDistribution.Total.E8s)

	swap := proposal.SwapParameters
	require.EqualValues(57, *swap.MinimumParticipants)
	require.EqualValues(100_000*api.E8, swap.MinimumDirectParticipationICP.E8s)
	require.EqualValues(1_000_000*api.E8, swap.MaximumDirectParticipationICP.E8s)
	require.EqualValues(2, *swap.NeuronBasketConstructionParameters.Count)
	require.EqualValues(humanize.SecondsPerMonth, swap.NeuronBasketConstructionParameters.DissolveDelayInterval.Seconds)
	require.Equal([]string{"US"}, swap.RestrictedCountries.ISOCodes)
	require.EqualValues(10*humanize.SecondsPerHour+30*humanize.SecondsPerMinute, swap.StartTime.SecondsAfterUTCMidnight)
	require.Nil(swap.MinimumICP)
	require.False(*swap.NeuronsFundParticipation)

	require.Equal("CDAO", *proposal.LedgerParameters.TokenSymbol)
	require.EqualValues(10_000, proposal.LedgerParameters.TransactionFee.E8s)

	gov := proposal.GovernanceParameters
	require.EqualValues(api.E8, gov.ProposalRejectionFee.E8s)
	require.EqualValues(10_000, gov.NeuronMaximumDissolveDelayBonus.BasisPoints)
	require.EqualValues(2_500, gov.NeuronMaximumAgeBonus.BasisPoints)
	require.EqualValues(1_000, gov.VotingRewardParameters.InitialRewardRate.BasisPoints)

	// Conversion is deterministic.
	again, err := ToProposal(loadTestDocument(t))
	require.NoError(err, "ToProposal")
	require.Equal(proposal.Fingerprint(), again.Fingerprint())
}

func TestToInitPayload(t *testing.T) {
	require := require.New(t)

	proposal, err := ToProposal(loadTestDocument(t))
	require.NoError(err, "ToProposal")

	p, err := ToInitPayload(proposal)
	require.NoError(err, "ToInitPayload")

	require.Equal([]string{testCreator, testBackup}, p.FallbackControllerPrincipalIDs)
	require.Len(p.DappCanisters.Canisters, 1)
	require.EqualValues(10_000, *p.TransactionFeeE8s)
	require.Equal("data:image/png;base64,iVBORw0KGgo=", *p.TokenLogo)
	require.EqualValues(100, *p.MaxDissolveDelayBonusPercentage, "bonuses are whole percents")
	require.EqualValues(25, *p.MaxAgeBonusPercentage)
	require.EqualValues(1_000, *p.InitialRewardRateBasisPoints, "reward rates stay in basis points")
	require.EqualValues(225, *p.FinalRewardRateBasisPoints)
	require.EqualValues(humanize.SecondsPerDay, *p.WaitForQuietDeadlineIncreaseSeconds)
	require.EqualValues(humanize.SecondsPerMonth, p.NeuronBasketConstructionParameters.DissolveDelayIntervalSeconds)

	swap := p.SwapDistribution()
	require.NotNil(swap)
	require.Equal(swap.TotalE8s, swap.InitialSwapAmountE8s)
	require.NotNil(p.InitialTokenDistribution.AirdropDistribution.AirdropNeurons)
	require.Empty(p.InitialTokenDistribution.AirdropDistribution.AirdropNeurons)

	require.Nil(p.MinICPE8s, "legacy bounds are not carried over")
	require.Nil(p.MaxICPE8s)
	require.Nil(p.NNSProposalID)
	require.Nil(p.NeuronsFundParticipationConstraints)

	_, err = ToInitPayload(&api.CreateServiceNervousSystem{})
	require.Error(err, "an empty proposal should fail validation")
	require.True(errors.Is(err, validation.ErrValidation))

	_, err = ToInitPayload(nil)
	require.Error(err, "ToInitPayload(nil)")
}

func TestToExecutedInitPayload(t *testing.T) {
	require := require.New(t)

	now := time.Unix(1_700_000_000, 0)
	p, err := ToExecutedInitPayload(loadTestDocument(t), now)
	require.NoError(err, "ToExecutedInitPayload")
	require.EqualValues(1, *p.NNSProposalID)
	require.EqualValues(1_700_000_000-1000, *p.SwapStartTimestampSeconds)
	require.EqualValues(1_700_000_000+300, *p.SwapDueTimestampSeconds)

	_, err = validation.ValidatePostExecution(p)
	require.NoError(err, "the executed payload should pass post-execution validation")
	_, err = validation.ValidatePreExecution(p)
	require.Error(err, "the executed payload should fail pre-execution validation")
}

func TestConservation(t *testing.T) {
	require := require.New(t)

	doc := loadTestDocument(t)
	doc.Distribution.Total = humanize.TokensFromWhole(2_501_001)

	_, err := ToProposal(doc)
	require.EqualError(err, "Unable to convert configuration file to proposal for the following reason(s):\n"+
		"  -The total amount of SNS tokens was expected to be 2_501_001 tokens, but was instead 2_501_000 tokens.")
	require.True(errors.Is(err, ErrConversion))

	// Sums do not wrap around.
	doc = loadTestDocument(t)
	doc.Distribution.InitialBalances.Governance = humanize.Tokens(^uint64(0))
	_, err = ToProposal(doc)
	require.Error(err, "ToProposal")
	require.Contains(err.Error(), "but was instead 18446794173709551615 e8s.")
}

func TestAggregation(t *testing.T) {
	require := require.New(t)

	doc := loadTestDocument(t)
	doc.FallbackControllerPrincipals = append(doc.FallbackControllerPrincipals, "nobody")
	doc.DappCanisters = []string{"not-a-canister"}
	doc.Distribution.Total = humanize.TokensFromWhole(1)

	_, err := ToProposal(doc)
	require.Error(err, "ToProposal")
	require.True(errors.Is(err, ErrConversion))

	var cerr *Error
	require.True(errors.As(err, &cerr), "error should be a conversion error")
	defects := cerr.Defects()
	require.Len(defects, 3, "every defect should be reported")
	require.True(strings.HasPrefix(defects[0], `Unable to parse PrincipalId ("nobody") in fallback_controller_principals.`))
	require.True(strings.HasPrefix(defects[1], `Unable to parse PrincipalId ("not-a-canister") in dapp_canisters.`))
	require.True(strings.HasPrefix(defects[2], "The total amount of SNS tokens was expected to be 1 token"))

	lines := strings.Split(err.Error(), "\n")
	require.Len(lines, 4)
	require.Equal(defectsHeader, lines[0])
	for _, line := range lines[1:] {
		require.True(strings.HasPrefix(line, "  -"), "defect line %q", line)
	}

	doc = loadTestDocument(t)
	doc.Distribution.Neurons[0].Principal = "stranger"
	_, err = ToProposal(doc)
	require.Error(err, "ToProposal")
	require.Contains(err.Error(), `Unable to parse PrincipalId in distribution.neurons ("stranger"). err: `)
}

func TestCrossCheck(t *testing.T) {
	require := require.New(t)

	doc := loadTestDocument(t)
	doc.Token.Symbol = "AB"

	_, err := ToProposal(doc)
	require.EqualError(err, "Unable to convert configuration file to proposal: "+
		"Error: token-symbol must be greater than 3 characters, given character count: 2")
	require.True(errors.Is(err, ErrConversion))
	require.True(errors.Is(err, validation.ErrValidation), "the validation error should be wrapped")

	var cerr *Error
	require.True(errors.As(err, &cerr))
	require.Empty(cerr.Defects())
}

func TestDirectParticipation(t *testing.T) {
	require := require.New(t)

	tokens := func(whole uint64) *humanize.Tokens {
		v := humanize.TokensFromWhole(whole)
		return &v
	}

	require.EqualValues(10*api.E8, directParticipation(tokens(10), tokens(100), tokens(50)).E8s, "explicit bounds win")
	require.EqualValues(50*api.E8, directParticipation(nil, tokens(100), tokens(50)).E8s)
	require.EqualValues(100*api.E8, directParticipation(nil, tokens(100), nil).E8s)
	require.Nil(directParticipation(nil, tokens(10), tokens(50)), "underflow leaves the bound unset")
	require.Nil(directParticipation(nil, nil, tokens(50)))

	doc := loadTestDocument(t)
	doc.Swap.MinimumDirectParticipationICP = nil
	doc.Swap.MinimumICP = tokens(150_000)
	doc.Swap.NeuronsFundInvestmentICP = tokens(50_000)
	proposal, err := ToProposal(doc)
	require.NoError(err, "ToProposal")
	require.EqualValues(100_000*api.E8, proposal.SwapParameters.MinimumDirectParticipationICP.E8s)
	require.EqualValues(150_000*api.E8, proposal.SwapParameters.MinimumICP.E8s)

	p, err := ToInitPayload(proposal)
	require.NoError(err, "ToInitPayload")
	require.Nil(p.MinICPE8s)
}
