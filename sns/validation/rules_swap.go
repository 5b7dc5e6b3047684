package validation

import (
	"fmt"
	"math/bits"
	"unicode/utf8"

	"github.com/oasisprotocol/sns-launch/sns/api"
)

const (
	// MinNeuronsPerBasket is the minimum number of neurons in a swap
	// participant's basket.
	MinNeuronsPerBasket uint64 = 2
	// MaxNeuronsPerBasket is the maximum number of neurons in a swap
	// participant's basket.
	MaxNeuronsPerBasket uint64 = 10

	MaxConfirmationTextLength = 1_000
	MaxConfirmationTextBytes  = 8 * MaxConfirmationTextLength
	MinConfirmationTextLength = 1
)

func validateNeuronBasketConstructionParameters(p *api.InitPayload) error {
	basket := p.NeuronBasketConstructionParameters
	if basket == nil {
		return errMissing("neuron_basket_construction_parameters")
	}
	if p.MaxDissolveDelaySeconds == nil {
		return errMissing("max_dissolve_delay_seconds")
	}
	maxDissolveDelay := *p.MaxDissolveDelaySeconds

	// The last neuron of a basket dissolves after (count - 1) intervals.
	var steps uint64
	if basket.Count > 0 {
		steps = basket.Count - 1
	}
	hi, basketDissolveDelay := bits.Mul64(steps, basket.DissolveDelayIntervalSeconds)
	switch {
	case hi != 0:
		return &BasketError{Reason: BasketExceedsUint64}
	case basketDissolveDelay > maxDissolveDelay:
		return &BasketError{Reason: BasketExceedsMaxDissolveDelay, MaxDissolveDelaySeconds: maxDissolveDelay}
	case basket.Count < MinNeuronsPerBasket:
		return &BasketError{Reason: BasketTooSmall}
	case basket.Count > MaxNeuronsPerBasket:
		return &BasketError{Reason: BasketTooBig}
	case basket.DissolveDelayIntervalSeconds < 1:
		return &BasketError{Reason: BasketInadequateDissolveDelay}
	}
	return nil
}

func validateConfirmationText(p *api.InitPayload) error {
	if p.ConfirmationText == nil {
		return nil
	}
	const field = "NervousSystemParameters.confirmation_text"
	text := *p.ConfirmationText

	if len(text) > MaxConfirmationTextBytes {
		return &LengthError{
			Field:  field,
			Length: len(text),
			Limit:  MaxConfirmationTextBytes,
			format: "%[1]s must be fewer than %[3]d bytes, given bytes: %[2]d",
		}
	}
	switch n := utf8.RuneCountInString(text); {
	case n < MinConfirmationTextLength:
		return &LengthError{
			Field:  field,
			Length: n,
			Limit:  MinConfirmationTextLength,
			format: "%[1]s must be greater than %[3]d characters, given character count: %[2]d",
		}
	case n > MaxConfirmationTextLength:
		return &LengthError{
			Field:  field,
			Length: n,
			Limit:  MaxConfirmationTextLength,
			format: "%[1]s must be fewer than %[3]d characters, given character count: %[2]d",
		}
	}
	return nil
}

// validateRestrictedCountries deliberately accepts every value. Country codes
// are not checked against ISO 3166 and are passed on to the swap as given.
func validateRestrictedCountries(p *api.InitPayload) error {
	return nil
}

func validateMinICP(p *api.InitPayload) error {
	return validateObsolete("min_icp_e8s", p.MinICPE8s)
}

func validateMaxICP(p *api.InitPayload) error {
	return validateObsolete("max_icp_e8s", p.MaxICPE8s)
}

func validateObsolete(field string, value *uint64) error {
	if value == nil {
		return nil
	}
	return &FormatError{
		Field:  field,
		Value:  fmt.Sprint(*value),
		format: "Error: %[1]s cannot be specified now that Matched Funding is enabled",
	}
}

func validateNeuronsFundParticipation(p *api.InitPayload) error {
	if p.NeuronsFundParticipation == nil {
		return &MissingFieldError{
			Field:  "SnsInitPayload.neurons_fund_participation",
			format: "%s must be specified",
		}
	}
	return nil
}

// Accessors of the fields only known once the proposal is executed.
func nnsProposalID(p *api.InitPayload) *uint64 { return p.NNSProposalID }
func swapStart(p *api.InitPayload) *uint64     { return p.SwapStartTimestampSeconds }
func swapDue(p *api.InitPayload) *uint64       { return p.SwapDueTimestampSeconds }

// executionField returns a rule requiring the field to be unset before the
// proposal is executed and set afterwards.
func executionField(field string, mode Mode, get func(*api.InitPayload) *uint64) Rule {
	return func(p *api.InitPayload) error {
		v := get(p)
		switch {
		case mode == PreExecution && v != nil:
			return &ExecutionFieldError{Field: field, Mode: mode, Value: v}
		case mode == PostExecution && v == nil:
			return &ExecutionFieldError{Field: field, Mode: mode}
		}
		return nil
	}
}

func validateAllExecutionFieldsSet(p *api.InitPayload) error {
	var unset []string
	for _, f := range []struct {
		name  string
		value *uint64
	}{
		{"nns_proposal_id", p.NNSProposalID},
		{"swap_start_timestamp_seconds", p.SwapStartTimestampSeconds},
		{"swap_due_timestamp_seconds", p.SwapDueTimestampSeconds},
		{"min_direct_participation_icp_e8s", p.MinDirectParticipationICPE8s},
		{"max_direct_participation_icp_e8s", p.MaxDirectParticipationICPE8s},
	} {
		if f.value == nil {
			unset = append(unset, f.name)
		}
	}
	if len(unset) > 0 {
		return &UnsetExecutionFieldsError{Fields: unset}
	}
	return nil
}

func validateSwapDue(p *api.InitPayload) error {
	if p.SwapStartTimestampSeconds == nil {
		return errMissing("swap_start_timestamp_seconds")
	}
	if p.SwapDueTimestampSeconds == nil {
		return errMissing("swap_due_timestamp_seconds")
	}
	if start, due := *p.SwapStartTimestampSeconds, *p.SwapDueTimestampSeconds; due < start {
		return &BoundError{
			Field:  "swap_due_timestamp_seconds",
			Value:  due,
			Bound:  start,
			format: "Error: %[1]s(%[2]d) must be after swap_start_timestamp_seconds(%[3]d)",
		}
	}
	return nil
}
