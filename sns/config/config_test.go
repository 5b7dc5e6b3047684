package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/sns-launch/humanize"
)

const testDocumentPath = "testdata/sns_init.yaml"

func readTestDocument(t *testing.T) string {
	raw, err := os.ReadFile(testDocumentPath)
	require.NoError(t, err, "os.ReadFile")
	return string(raw)
}

func TestLoadDocument(t *testing.T) {
	require := require.New(t)

	doc, err := LoadDocument(testDocumentPath)
	require.NoError(err, "LoadDocument")

	require.Equal("Creator DAO", doc.Name)
	require.Len(doc.Principals, 2)
	require.Equal([]string{"creator", "backup@example.com"}, doc.FallbackControllerPrincipals)
	require.Equal(humanize.Tokens(10_000), doc.Token.TransactionFee)
	require.Equal(humanize.TokensFromWhole(1), doc.Proposals.RejectionFee)
	require.EqualValues(4*humanize.SecondsPerDay, doc.Proposals.InitialVotingPeriod.Seconds())
	require.EqualValues(10_000, doc.Voting.MaximumVotingPowerBonuses.DissolveDelay.Bonus.BasisPoints())
	require.EqualValues(225, doc.Voting.RewardRate.Final.BasisPoints())
	require.Len(doc.Distribution.Neurons, 1)
	require.Equal(humanize.TokensFromWhole(2_501_000), doc.Distribution.Total)
	require.EqualValues(57, doc.Swap.MinimumParticipants)
	require.Nil(doc.Swap.MinimumICP, "legacy bounds are optional")
	require.NotNil(doc.Swap.StartTime)
	require.EqualValues(10*humanize.SecondsPerHour+30*humanize.SecondsPerMinute, doc.Swap.StartTime.SecondsAfterMidnight())
	require.NotNil(doc.Swap.NeuronsFundParticipation)
	require.False(*doc.Swap.NeuronsFundParticipation)

	_, err = LoadDocument(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(err, "LoadDocument should fail on a missing file")
	require.True(errors.Is(err, ErrInvalidDocument))
}

func TestLoadDocumentEnvironment(t *testing.T) {
	require := require.New(t)

	t.Setenv("SNS_TEST_URL", "https://example.com/dao")

	raw := strings.Replace(readTestDocument(t), "url: https://yral.com\n\nPrincipals", "url: ${SNS_TEST_URL}\n\nPrincipals", 1)
	path := filepath.Join(t.TempDir(), "sns_init.yaml")
	require.NoError(os.WriteFile(path, []byte(raw), 0o600), "os.WriteFile")

	doc, err := LoadDocument(path)
	require.NoError(err, "LoadDocument")
	require.Equal("https://example.com/dao", doc.URL)
}

func TestParseDocumentStrict(t *testing.T) {
	for _, tc := range []struct {
		name    string
		mutate  func(raw string) string
		errText string
	}{
		{
			"UnknownTopLevelField",
			func(raw string) string { return raw + "unexpected: true\n" },
			"field unexpected not found",
		},
		{
			"UnknownNestedField",
			func(raw string) string {
				return strings.Replace(raw, "  symbol: CDAO\n", "  symbol: CDAO\n  decimals: 8\n", 1)
			},
			"field decimals not found",
		},
		{
			"MissingTopLevelField",
			func(raw string) string { return strings.Replace(raw, "url: https://yral.com\n\n", "", 1) },
			"missing field `url`",
		},
		{
			"MissingNestedField",
			func(raw string) string { return strings.Replace(raw, "  symbol: CDAO\n", "", 1) },
			"missing field `Token.symbol`",
		},
		{
			"MissingNeuronField",
			func(raw string) string { return strings.Replace(raw, "      vesting_period: 4 years\n", "", 1) },
			"missing field `Distribution.Neurons[0].vesting_period`",
		},
		{
			"InvalidTokens",
			func(raw string) string { return strings.Replace(raw, "10_000 e8s", "10_000 icp", 1) },
			"invalid tokens input string: 10_000 icp",
		},
		{
			"InvalidTimeOfDay",
			func(raw string) string { return strings.Replace(raw, "10:30 UTC", "24:00 UTC", 1) },
			"invalid hours",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require := require.New(t)

			_, err := ParseDocument([]byte(tc.mutate(readTestDocument(t))))
			require.Error(err, "ParseDocument")
			require.Contains(err.Error(), tc.errText)
		})
	}

	_, err := ParseDocument(nil)
	require.EqualError(t, err, "empty document")
}

func TestParseDocumentMissingFields(t *testing.T) {
	require := require.New(t)

	raw := readTestDocument(t)
	raw = strings.Replace(raw, "  symbol: CDAO\n", "", 1)
	raw = strings.Replace(raw, "  duration: 7 days\n", "", 1)

	_, err := ParseDocument([]byte(raw))
	require.Error(err, "ParseDocument")

	// Every missing field is reported, not only the first one.
	require.Contains(err.Error(), "missing field `Token.symbol`")
	require.Contains(err.Error(), "missing field `Swap.duration`")
	require.Len(strings.Split(err.Error(), "\n"), 2)
}

func TestAliasResolver(t *testing.T) {
	require := require.New(t)

	const (
		creator = "yvlkr-usbct-hle46-xbfmr-w4r4h-uaahu-bsdco-3blze-imj7k-5oeb3-mae"
		backup  = "gzlng-jqzta-5kubz-4nyam-5so2e-tsoio-ijv2s-47dsw-7ksd7-pe3eb-zqe"
	)
	name := func(s string) *string { return &s }

	resolver, defects := NewAliasResolver([]PrincipalAlias{
		{ID: creator, Name: name("creator"), Email: name("creator@yral.com")},
		{ID: backup, Name: name("backup")},
		{ID: "not-a-principal", Name: name("broken")},
		{ID: backup, Name: name("creator")},
	})
	require.Len(defects, 2)
	require.True(strings.HasPrefix(defects[0], `Unable to parse PrincipalId ("not-a-principal") in Principals. Reason: `))
	require.Equal(`Duplicate principal alias name "creator" in Principals.`, defects[1])

	ids, defects := resolver.Unalias("fallback_controller_principals", []string{
		"creator",
		"creator@yral.com",
		backup,
		"broken",
		"backup",
	})
	require.Len(defects, 1, "each reference should be resolved independently")
	require.True(strings.HasPrefix(defects[0], `Unable to parse PrincipalId ("broken") in fallback_controller_principals. Reason: `))
	require.Len(ids, 4)
	require.Equal(creator, ids[0].String(), "aliases are resolved by name")
	require.Equal(creator, ids[1].String(), "aliases are resolved by email")
	require.Equal(backup, ids[2].String(), "principals are parsed")
	require.Equal(backup, ids[3].String())
}
