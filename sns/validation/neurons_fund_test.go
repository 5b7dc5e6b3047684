package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/sns-launch/sns/api"
)

func testConstraints() *api.NeuronsFundParticipationConstraints {
	return &api.NeuronsFundParticipationConstraints{
		MinDirectParticipationThresholdICPE8s: u64(150_000 * api.E8),
		MaxNeuronsFundParticipationICPE8s:     u64(500_000 * api.E8),
		CoefficientIntervals: []api.LinearScalingCoefficient{
			api.NewLinearScalingCoefficient(0, 200_000*api.E8, 1, 2, 0),
			api.NewLinearScalingCoefficient(200_000*api.E8, 800_000*api.E8, 3, 4, 0),
			api.NewLinearScalingCoefficient(800_000*api.E8, ^uint64(0), 1, 1, 0),
		},
		IdealMatchedParticipationFunction: &api.IdealMatchedParticipationFunction{
			SerializedRepresentation: str(`{"t_1":33.0,"t_2":100.0,"t_3":166.0,"t_4":520.0,"cap":260.0}`),
		},
	}
}

func TestValidateNeuronsFundParticipationConstraints(t *testing.T) {
	require := require.New(t)

	validated, err := ValidateNeuronsFundParticipationConstraints(testConstraints())
	require.NoError(err, "ValidateNeuronsFundParticipationConstraints")
	require.Len(validated.CoefficientIntervals, 3)
	require.EqualValues(150_000*api.E8, validated.MinDirectParticipationThresholdICPE8s)

	// The intervals partition [0, inf): every amount falls into exactly one.
	for _, amount := range []uint64{0, 1, 200_000*api.E8 - 1, 200_000 * api.E8, 799_999 * api.E8, 800_000 * api.E8, ^uint64(0) - 1} {
		var covering int
		for _, c := range validated.CoefficientIntervals {
			if c.From <= amount && amount < c.To {
				covering++
			}
		}
		require.Equal(1, covering, "amount %d should be covered by exactly one interval", amount)

		interval, ok := validated.IntervalFor(amount)
		require.True(ok, "IntervalFor(%d)", amount)
		require.True(interval.From <= amount && amount < interval.To, "IntervalFor(%d) = %s", amount, interval)

		// Slopes never exceed one.
		require.LessOrEqual(interval.SlopeNumerator, interval.SlopeDenominator)
	}
	_, ok := validated.IntervalFor(^uint64(0))
	require.False(ok, "the last interval is half-open")
}

func TestValidateNeuronsFundParticipationConstraintsDefects(t *testing.T) {
	const (
		prefix    = "NeuronsFundParticipationConstraintsValidationError: "
		vecPrefix = prefix + "LinearScalingCoefficientVecValidationError: "
	)

	for _, tc := range []struct {
		name   string
		mutate func(c *api.NeuronsFundParticipationConstraints)
		defect string
	}{
		{
			"MissingThreshold",
			func(c *api.NeuronsFundParticipationConstraints) { c.MinDirectParticipationThresholdICPE8s = nil },
			prefix + "min_direct_participation_threshold_icp_e8s must be specified.",
		},
		{
			"NoIntervals",
			func(c *api.NeuronsFundParticipationConstraints) { c.CoefficientIntervals = nil },
			vecPrefix + "coefficient_intervals (len=0) must contain at least 1 and at most 100000 elements.",
		},
		{
			"MissingIntercept",
			func(c *api.NeuronsFundParticipationConstraints) { c.CoefficientIntervals[1].InterceptICPE8s = nil },
			vecPrefix + "LinearScalingCoefficientValidationError: Field `intercept_icp_e8s` must be specified.",
		},
		{
			"EmptyInterval",
			func(c *api.NeuronsFundParticipationConstraints) {
				c.CoefficientIntervals[0] = api.NewLinearScalingCoefficient(5, 5, 1, 1, 0)
			},
			vecPrefix + "LinearScalingCoefficientValidationError: from_direct_participation_icp_e8s (5) must be strictly less that to_direct_participation_icp_e8s (5)).",
		},
		{
			"ZeroDenominator",
			func(c *api.NeuronsFundParticipationConstraints) { *c.CoefficientIntervals[2].SlopeDenominator = 0 },
			vecPrefix + "LinearScalingCoefficientValidationError: slope_denominator must not equal zero.",
		},
		{
			"SlopeAboveOne",
			func(c *api.NeuronsFundParticipationConstraints) { *c.CoefficientIntervals[2].SlopeNumerator = 2 },
			vecPrefix + "LinearScalingCoefficientValidationError: slope_numerator (2) must be less than or equal slope_denominator (1)",
		},
		{
			"Gap",
			func(c *api.NeuronsFundParticipationConstraints) {
				c.CoefficientIntervals[1] = api.NewLinearScalingCoefficient(200_001*api.E8, 800_000*api.E8, 3, 4, 0)
			},
			vecPrefix + "The intervals ValidatedLinearScalingCoefficient { from_direct_participation_icp_e8s: 0, " +
				"to_direct_participation_icp_e8s: 20000000000000, slope_numerator: 1, slope_denominator: 2, intercept_icp_e8s: 0 } " +
				"and ValidatedLinearScalingCoefficient { from_direct_participation_icp_e8s: 20000100000000, " +
				"to_direct_participation_icp_e8s: 80000000000000, slope_numerator: 3, slope_denominator: 4, intercept_icp_e8s: 0 } " +
				"are ordered incorrectly.",
		},
		{
			"NotFromZero",
			func(c *api.NeuronsFundParticipationConstraints) {
				c.CoefficientIntervals = c.CoefficientIntervals[1:]
			},
			vecPrefix + "The first interval ValidatedLinearScalingCoefficient { from_direct_participation_icp_e8s: 20000000000000, " +
				"to_direct_participation_icp_e8s: 80000000000000, slope_numerator: 3, slope_denominator: 4, intercept_icp_e8s: 0 } " +
				"does not start from 0.",
		},
		{
			"MissingIdealFunction",
			func(c *api.NeuronsFundParticipationConstraints) {
				c.IdealMatchedParticipationFunction.SerializedRepresentation = nil
			},
			prefix + "ideal_matched_participation_function.serialized_representation must be specified.",
		},
		{
			"IdealFunctionTooLarge",
			func(c *api.NeuronsFundParticipationConstraints) {
				c.IdealMatchedParticipationFunction.SerializedRepresentation = str(strings.Repeat("x", MaxIdealFunctionBytes+1))
			},
			prefix + "IdealMatchedParticipationFunctionValidationError:  serialized representation has 1001 bytes; the maximum is 1000 bytes.",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require := require.New(t)

			c := testConstraints()
			tc.mutate(c)

			_, err := ValidateNeuronsFundParticipationConstraints(c)
			require.EqualError(err, tc.defect)

			var cerr *ConstraintsError
			require.True(errors.As(err, &cerr), "error should be a ConstraintsError")
		})
	}
}

func TestNeuronsFundConstraintsRule(t *testing.T) {
	const prefix = "NeuronsFundParticipationConstraintsValidationError: "

	participating := func(t *testing.T) *api.InitPayload {
		p := execute(testPayload(t))
		participation := true
		p.NeuronsFundParticipation = &participation
		p.NeuronsFundParticipationConstraints = testConstraints()
		return p
	}

	t.Run("Valid", func(t *testing.T) {
		require := require.New(t)

		_, err := ValidatePostExecution(participating(t))
		require.NoError(err, "ValidatePostExecution")
	})

	t.Run("SetBeforeExecution", func(t *testing.T) {
		require := require.New(t)

		p := testPayload(t)
		p.NeuronsFundParticipationConstraints = testConstraints()
		err := neuronsFundConstraintsRule(PreExecution)(p)
		require.EqualError(err, prefix+"neurons_fund_participation_constraints must not be set before the CreateServiceNervousSystem proposal is executed.")
	})

	t.Run("RequiredWhenParticipating", func(t *testing.T) {
		require := require.New(t)

		p := participating(t)
		p.NeuronsFundParticipationConstraints = nil
		err := neuronsFundConstraintsRule(PostExecution)(p)
		require.EqualError(err, prefix+"neurons_fund_participation requires neurons_fund_participation_constraints must be specified.")

		require.NoError(neuronsFundConstraintsRule(PreExecution)(p), "constraints are only required after execution")
	})

	for _, tc := range []struct {
		name   string
		mutate func(p *api.InitPayload)
		defect string
	}{
		{
			"ThresholdBelowMinDirect",
			func(p *api.InitPayload) { *p.NeuronsFundParticipationConstraints.MinDirectParticipationThresholdICPE8s = 1 },
			prefix + "MinDirectParticipationThresholdValidationError: min_direct_participation_threshold_icp_e8s (1) " +
				"should be greater than or equal min_direct_participation_icp_e8s (10000000000000).",
		},
		{
			"ThresholdAboveMaxDirect",
			func(p *api.InitPayload) {
				*p.NeuronsFundParticipationConstraints.MinDirectParticipationThresholdICPE8s = 2_000_000 * api.E8
			},
			prefix + "MinDirectParticipationThresholdValidationError: min_direct_participation_threshold_icp_e8s (200000000000000) " +
				"should be less than or equal max_direct_participation_icp_e8s (100000000000000).",
		},
		{
			"CapBelowMinParticipant",
			func(p *api.InitPayload) { *p.NeuronsFundParticipationConstraints.MaxNeuronsFundParticipationICPE8s = 1 },
			prefix + "MaxNeuronsFundParticipationValidationError: max_neurons_fund_participation_icp_e8s (1 > 0) " +
				"should be greater than or equal min_participant_icp_e8s (10000000000).",
		},
		{
			"CapAboveMaxDirect",
			func(p *api.InitPayload) {
				*p.NeuronsFundParticipationConstraints.MaxNeuronsFundParticipationICPE8s = 2_000_000 * api.E8
			},
			prefix + "MaxNeuronsFundParticipationValidationError: max_neurons_fund_participation_icp_e8s (200000000000000) " +
				"should be less than or equal max_direct_participation_icp_e8s (100000000000000).",
		},
		{
			"LocalDefect",
			func(p *api.InitPayload) { *p.NeuronsFundParticipationConstraints.CoefficientIntervals[0].SlopeDenominator = 0 },
			prefix + prefix + "LinearScalingCoefficientVecValidationError: LinearScalingCoefficientValidationError: " +
				"slope_denominator must not equal zero.",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require := require.New(t)

			p := participating(t)
			tc.mutate(p)

			err := neuronsFundConstraintsRule(PostExecution)(p)
			require.EqualError(err, tc.defect)
		})
	}

	t.Run("ZeroCap", func(t *testing.T) {
		require := require.New(t)

		p := participating(t)
		*p.NeuronsFundParticipationConstraints.MaxNeuronsFundParticipationICPE8s = 0
		require.NoError(neuronsFundConstraintsRule(PostExecution)(p), "a zero cap disables the Neurons' Fund")
	})
}
