package api

// NeuronsFundParticipationConstraints determine how much the Neurons' Fund
// contributes to the swap as a function of the amount contributed directly.
type NeuronsFundParticipationConstraints struct {
	// MinDirectParticipationThresholdICPE8s is the amount of direct
	// participation below which the Neurons' Fund does not participate.
	MinDirectParticipationThresholdICPE8s *uint64 `json:"min_direct_participation_threshold_icp_e8s,omitempty"`
	// MaxNeuronsFundParticipationICPE8s caps the Neurons' Fund participation.
	MaxNeuronsFundParticipationICPE8s *uint64 `json:"max_neurons_fund_participation_icp_e8s,omitempty"`
	// CoefficientIntervals scale the ideal participation down to the
	// effective participation. The intervals must partition [0, inf).
	CoefficientIntervals []LinearScalingCoefficient `json:"coefficient_intervals"`
	// IdealMatchedParticipationFunction is the ideal matching function.
	IdealMatchedParticipationFunction *IdealMatchedParticipationFunction `json:"ideal_matched_participation_function,omitempty"`
}

// IdealMatchedParticipationFunction is an opaque, serialized ideal matching
// function.
type IdealMatchedParticipationFunction struct {
	SerializedRepresentation *string `json:"serialized_representation,omitempty"`
}

// LinearScalingCoefficient is the scaling applied to the ideal Neurons' Fund
// participation for direct participation in [From, To).
type LinearScalingCoefficient struct {
	FromDirectParticipationICPE8s *uint64 `json:"from_direct_participation_icp_e8s,omitempty"`
	ToDirectParticipationICPE8s   *uint64 `json:"to_direct_participation_icp_e8s,omitempty"`
	SlopeNumerator                *uint64 `json:"slope_numerator,omitempty"`
	SlopeDenominator              *uint64 `json:"slope_denominator,omitempty"`
	InterceptICPE8s               *uint64 `json:"intercept_icp_e8s,omitempty"`
}

// NewLinearScalingCoefficient returns a coefficient with every field set.
func NewLinearScalingCoefficient(from, to, numerator, denominator, intercept uint64) LinearScalingCoefficient {
	return LinearScalingCoefficient{
		FromDirectParticipationICPE8s: &from,
		ToDirectParticipationICPE8s:   &to,
		SlopeNumerator:                &numerator,
		SlopeDenominator:              &denominator,
		InterceptICPE8s:               &intercept,
	}
}
