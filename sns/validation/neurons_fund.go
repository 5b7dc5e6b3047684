package validation

import (
	"fmt"
	"sort"

	"github.com/oasisprotocol/sns-launch/sns/api"
)

const (
	// MaxLinearScalingCoefficients is the maximum number of coefficient
	// intervals of the Neurons' Fund participation constraints.
	MaxLinearScalingCoefficients = 100_000
	// MaxIdealFunctionBytes is the maximum size of the serialized ideal
	// matched participation function.
	MaxIdealFunctionBytes = 1_000

	constraintsErrorPrefix   = "NeuronsFundParticipationConstraintsValidationError: "
	coefficientsErrorPrefix  = "LinearScalingCoefficientVecValidationError: "
	coefficientErrorPrefix   = "LinearScalingCoefficientValidationError: "
	idealFunctionErrorPrefix = "IdealMatchedParticipationFunctionValidationError: "
	thresholdErrorPrefix     = "MinDirectParticipationThresholdValidationError: "
	capErrorPrefix           = "MaxNeuronsFundParticipationValidationError: "
)

// ValidatedLinearScalingCoefficient is a coefficient interval with every
// field present, covering direct participation in [From, To).
type ValidatedLinearScalingCoefficient struct {
	From             uint64
	To               uint64
	SlopeNumerator   uint64
	SlopeDenominator uint64
	Intercept        uint64
}

func (c ValidatedLinearScalingCoefficient) String() string {
	return fmt.Sprintf("ValidatedLinearScalingCoefficient { from_direct_participation_icp_e8s: %d, "+
		"to_direct_participation_icp_e8s: %d, slope_numerator: %d, slope_denominator: %d, intercept_icp_e8s: %d }",
		c.From, c.To, c.SlopeNumerator, c.SlopeDenominator, c.Intercept,
	)
}

// ValidatedNeuronsFundParticipationConstraints are the Neurons' Fund
// participation constraints with every field present and the coefficient
// intervals partitioning [0, inf).
type ValidatedNeuronsFundParticipationConstraints struct {
	MinDirectParticipationThresholdICPE8s uint64
	MaxNeuronsFundParticipationICPE8s     uint64
	CoefficientIntervals                  []ValidatedLinearScalingCoefficient
	IdealMatchedParticipationFunction     string
}

// IntervalFor returns the coefficient interval covering the given amount of
// direct participation.
func (v *ValidatedNeuronsFundParticipationConstraints) IntervalFor(directICPE8s uint64) (ValidatedLinearScalingCoefficient, bool) {
	intervals := v.CoefficientIntervals
	i := sort.Search(len(intervals), func(i int) bool {
		return directICPE8s < intervals[i].To
	})
	if i == len(intervals) {
		return ValidatedLinearScalingCoefficient{}, false
	}
	return intervals[i], true
}

// CoefficientReason is the reason a single coefficient interval is rejected.
type CoefficientReason uint8

const (
	// CoefficientUnspecifiedField means a field of the interval is unset.
	CoefficientUnspecifiedField CoefficientReason = iota
	// CoefficientEmptyInterval means the interval does not end after it
	// starts.
	CoefficientEmptyInterval
	// CoefficientZeroDenominator means the slope denominator is zero.
	CoefficientZeroDenominator
	// CoefficientSlopeAboveOne means the slope numerator exceeds the
	// denominator.
	CoefficientSlopeAboveOne
)

// CoefficientError is the error returned when a coefficient interval is
// invalid.
type CoefficientError struct {
	Reason CoefficientReason
	// Field is the unset field, for CoefficientUnspecifiedField.
	Field string

	From        uint64
	To          uint64
	Numerator   uint64
	Denominator uint64
}

func (e *CoefficientError) Error() string {
	var msg string
	switch e.Reason {
	case CoefficientUnspecifiedField:
		msg = fmt.Sprintf("Field `%s` must be specified.", e.Field)
	case CoefficientEmptyInterval:
		msg = fmt.Sprintf("from_direct_participation_icp_e8s (%d) must be strictly less that "+
			"to_direct_participation_icp_e8s (%d)).", e.From, e.To)
	case CoefficientZeroDenominator:
		msg = "slope_denominator must not equal zero."
	case CoefficientSlopeAboveOne:
		msg = fmt.Sprintf("slope_numerator (%d) must be less than or equal slope_denominator (%d)", e.Numerator, e.Denominator)
	default:
		msg = "invalid coefficient"
	}
	return coefficientErrorPrefix + msg
}

// CoefficientsReason is the reason the coefficient intervals are rejected
// as a whole.
type CoefficientsReason uint8

const (
	// CoefficientsOutOfRange means there are no intervals or too many.
	CoefficientsOutOfRange CoefficientsReason = iota
	// CoefficientsUnordered means two consecutive intervals are not
	// contiguous.
	CoefficientsUnordered
	// CoefficientsIrregular means the first interval does not start at 0.
	CoefficientsIrregular
	// CoefficientsInvalidInterval means a single interval is invalid.
	CoefficientsInvalidInterval
)

// CoefficientsError is the error returned when the coefficient intervals do
// not partition [0, inf).
type CoefficientsError struct {
	Reason CoefficientsReason
	// Len is the number of intervals, for CoefficientsOutOfRange.
	Len int
	// Left and Right are the offending intervals. Irregular intervals only
	// set Left.
	Left  ValidatedLinearScalingCoefficient
	Right ValidatedLinearScalingCoefficient
	// Interval is the interval error, for CoefficientsInvalidInterval.
	Interval *CoefficientError
}

func (e *CoefficientsError) Error() string {
	var msg string
	switch e.Reason {
	case CoefficientsOutOfRange:
		msg = fmt.Sprintf("coefficient_intervals (len=%d) must contain at least 1 and at most %d elements.", e.Len, MaxLinearScalingCoefficients)
	case CoefficientsUnordered:
		msg = fmt.Sprintf("The intervals %s and %s are ordered incorrectly.", e.Left, e.Right)
	case CoefficientsIrregular:
		msg = fmt.Sprintf("The first interval %s does not start from 0.", e.Left)
	case CoefficientsInvalidInterval:
		msg = e.Interval.Error()
	default:
		msg = "invalid coefficient intervals"
	}
	return coefficientsErrorPrefix + msg
}

func (e *CoefficientsError) Unwrap() error {
	if e.Interval == nil {
		return nil
	}
	return e.Interval
}

// IdealFunctionError is the error returned when the serialized ideal matched
// participation function is too large.
type IdealFunctionError struct {
	Bytes int
}

func (e *IdealFunctionError) Error() string {
	return fmt.Sprintf("%s serialized representation has %d bytes; the maximum is %d bytes.",
		idealFunctionErrorPrefix, e.Bytes, MaxIdealFunctionBytes)
}

// ConstraintsError is the error returned when the Neurons' Fund
// participation constraints are invalid. Either Field names an unset field,
// or Err holds the underlying defect.
type ConstraintsError struct {
	Field string
	Err   error
}

func (e *ConstraintsError) Error() string {
	if e.Err == nil {
		return constraintsErrorPrefix + e.Field + " must be specified."
	}
	return constraintsErrorPrefix + e.Err.Error()
}

func (e *ConstraintsError) Unwrap() error {
	return e.Err
}

// ThresholdError is the error returned when the minimum direct participation
// threshold is inconsistent with the swap parameters.
type ThresholdError struct {
	Threshold uint64
	// Bound is the violated swap parameter, if any.
	Bound uint64

	format string
}

func (e *ThresholdError) Error() string {
	return thresholdErrorPrefix + render(e.format, e.Threshold, e.Bound)
}

// CapError is the error returned when the maximum Neurons' Fund
// participation is inconsistent with the swap parameters.
type CapError struct {
	Cap uint64
	// Bound is the violated swap parameter, if any.
	Bound uint64

	format string
}

func (e *CapError) Error() string {
	return capErrorPrefix + render(e.format, e.Cap, e.Bound)
}

type constraintsSetEarlyError struct{}

func (constraintsSetEarlyError) Error() string {
	return "neurons_fund_participation_constraints must not be set before the CreateServiceNervousSystem proposal is executed."
}

func validateCoefficient(c *api.LinearScalingCoefficient) (ValidatedLinearScalingCoefficient, *CoefficientError) {
	for _, f := range []struct {
		name  string
		value *uint64
	}{
		{"from_direct_participation_icp_e8s", c.FromDirectParticipationICPE8s},
		{"to_direct_participation_icp_e8s", c.ToDirectParticipationICPE8s},
		{"slope_numerator", c.SlopeNumerator},
		{"slope_denominator", c.SlopeDenominator},
		{"intercept_icp_e8s", c.InterceptICPE8s},
	} {
		if f.value == nil {
			return ValidatedLinearScalingCoefficient{}, &CoefficientError{Reason: CoefficientUnspecifiedField, Field: f.name}
		}
	}

	v := ValidatedLinearScalingCoefficient{
		From:             *c.FromDirectParticipationICPE8s,
		To:               *c.ToDirectParticipationICPE8s,
		SlopeNumerator:   *c.SlopeNumerator,
		SlopeDenominator: *c.SlopeDenominator,
		Intercept:        *c.InterceptICPE8s,
	}
	switch {
	case v.To <= v.From:
		return v, &CoefficientError{Reason: CoefficientEmptyInterval, From: v.From, To: v.To}
	case v.SlopeDenominator == 0:
		return v, &CoefficientError{Reason: CoefficientZeroDenominator}
	case v.SlopeNumerator > v.SlopeDenominator:
		return v, &CoefficientError{Reason: CoefficientSlopeAboveOne, Numerator: v.SlopeNumerator, Denominator: v.SlopeDenominator}
	}
	return v, nil
}

// ValidateNeuronsFundParticipationConstraints validates the Neurons' Fund
// participation constraints on their own, without regard to the swap
// parameters of the payload carrying them.
func ValidateNeuronsFundParticipationConstraints(c *api.NeuronsFundParticipationConstraints) (*ValidatedNeuronsFundParticipationConstraints, error) {
	if c.MinDirectParticipationThresholdICPE8s == nil {
		return nil, &ConstraintsError{Field: "min_direct_participation_threshold_icp_e8s"}
	}
	if c.MaxNeuronsFundParticipationICPE8s == nil {
		return nil, &ConstraintsError{Field: "max_neurons_fund_participation_icp_e8s"}
	}

	if n := len(c.CoefficientIntervals); n < 1 || n > MaxLinearScalingCoefficients {
		return nil, &ConstraintsError{Err: &CoefficientsError{Reason: CoefficientsOutOfRange, Len: n}}
	}

	intervals := make([]ValidatedLinearScalingCoefficient, 0, len(c.CoefficientIntervals))
	for i := range c.CoefficientIntervals {
		v, err := validateCoefficient(&c.CoefficientIntervals[i])
		if err != nil {
			return nil, &ConstraintsError{Err: &CoefficientsError{Reason: CoefficientsInvalidInterval, Interval: err}}
		}
		intervals = append(intervals, v)
	}

	for i := 1; i < len(intervals); i++ {
		if prev, this := intervals[i-1], intervals[i]; prev.To != this.From {
			return nil, &ConstraintsError{Err: &CoefficientsError{Reason: CoefficientsUnordered, Left: prev, Right: this}}
		}
	}
	if first := intervals[0]; first.From != 0 {
		return nil, &ConstraintsError{Err: &CoefficientsError{Reason: CoefficientsIrregular, Left: first}}
	}

	fn := c.IdealMatchedParticipationFunction
	if fn == nil {
		return nil, &ConstraintsError{Field: "ideal_matched_participation_function"}
	}
	if fn.SerializedRepresentation == nil {
		return nil, &ConstraintsError{Field: "ideal_matched_participation_function.serialized_representation"}
	}
	if n := len(*fn.SerializedRepresentation); n > MaxIdealFunctionBytes {
		return nil, &ConstraintsError{Err: &IdealFunctionError{Bytes: n}}
	}

	return &ValidatedNeuronsFundParticipationConstraints{
		MinDirectParticipationThresholdICPE8s: *c.MinDirectParticipationThresholdICPE8s,
		MaxNeuronsFundParticipationICPE8s:     *c.MaxNeuronsFundParticipationICPE8s,
		CoefficientIntervals:                  intervals,
		IdealMatchedParticipationFunction:     *fn.SerializedRepresentation,
	}, nil
}

// neuronsFundConstraintsRule returns the rule checking the Neurons' Fund
// participation constraints against the swap parameters of the payload.
func neuronsFundConstraintsRule(mode Mode) Rule {
	return func(p *api.InitPayload) error {
		c := p.NeuronsFundParticipationConstraints
		if mode == PreExecution && c != nil {
			return &ConstraintsError{Err: constraintsSetEarlyError{}}
		}
		if c == nil {
			if mode == PostExecution && p.NeuronsFundParticipation != nil && *p.NeuronsFundParticipation {
				return &ConstraintsError{Field: "neurons_fund_participation requires neurons_fund_participation_constraints"}
			}
			return nil
		}

		if c.MinDirectParticipationThresholdICPE8s == nil {
			return &ConstraintsError{Err: &ThresholdError{format: "min_direct_participation_threshold_icp_e8s must be specified."}}
		}
		threshold := *c.MinDirectParticipationThresholdICPE8s

		if p.MinDirectParticipationICPE8s == nil {
			return &ConstraintsError{Field: "min_direct_participation_icp_e8s"}
		}
		if minDirect := *p.MinDirectParticipationICPE8s; threshold < minDirect {
			return &ConstraintsError{Err: &ThresholdError{
				Threshold: threshold,
				Bound:     minDirect,
				format: "min_direct_participation_threshold_icp_e8s (%[1]d) should be greater than or equal " +
					"min_direct_participation_icp_e8s (%[2]d).",
			}}
		}
		if p.MaxDirectParticipationICPE8s == nil {
			return &ConstraintsError{Field: "max_direct_participation_icp_e8s"}
		}
		maxDirect := *p.MaxDirectParticipationICPE8s
		if threshold > maxDirect {
			return &ConstraintsError{Err: &ThresholdError{
				Threshold: threshold,
				Bound:     maxDirect,
				format: "min_direct_participation_threshold_icp_e8s (%[1]d) should be less than or equal " +
					"max_direct_participation_icp_e8s (%[2]d).",
			}}
		}

		if c.MaxNeuronsFundParticipationICPE8s == nil {
			return &ConstraintsError{Err: &CapError{format: "max_neurons_fund_participation_icp_e8s must be specified."}}
		}
		limit := *c.MaxNeuronsFundParticipationICPE8s

		if p.MinParticipantICPE8s == nil {
			return &ConstraintsError{Field: "min_participant_icp_e8s"}
		}
		if minParticipant := *p.MinParticipantICPE8s; limit > 0 && limit < minParticipant {
			return &ConstraintsError{Err: &CapError{
				Cap:   limit,
				Bound: minParticipant,
				format: "max_neurons_fund_participation_icp_e8s (%[1]d > 0) should be greater than or equal " +
					"min_participant_icp_e8s (%[2]d).",
			}}
		}
		// The Neurons' Fund never contributes more than direct participants can.
		if limit > maxDirect {
			return &ConstraintsError{Err: &CapError{
				Cap:   limit,
				Bound: maxDirect,
				format: "max_neurons_fund_participation_icp_e8s (%[1]d) should be less than or equal " +
					"max_direct_participation_icp_e8s (%[2]d).",
			}}
		}

		if _, err := ValidateNeuronsFundParticipationConstraints(c); err != nil {
			return &ConstraintsError{Err: err}
		}
		return nil
	}
}
