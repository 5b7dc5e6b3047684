package validation

import (
	"fmt"
	"math"
	"strings"
)

// MissingFieldError is the error returned when a field the payload depends
// on is not set.
type MissingFieldError struct {
	// Field is the name of the unset field.
	Field string

	format string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf(e.format, e.Field)
}

func errMissing(field string) error {
	return &MissingFieldError{Field: field, format: "Error: %s must be specified"}
}

func errMissingDot(field string) error {
	return &MissingFieldError{Field: field, format: "Error: %s must be specified."}
}

// BoundError is the error returned when a numeric field lies outside of the
// range allowed by a protocol constant or by another field.
type BoundError struct {
	// Field is the name of the offending field.
	Field string
	// Value is the offending value.
	Value uint64
	// Bound is the violated bound.
	Bound uint64

	// format receives Field, Value and Bound in that order.
	format string
}

func (e *BoundError) Error() string {
	return render(e.format, e.Field, e.Value, e.Bound)
}

// LengthError is the error returned when a string field is too long or too
// short.
type LengthError struct {
	// Field is the name of the offending field.
	Field string
	// Length is the measured length, in bytes or characters depending on
	// the rule.
	Length int
	// Limit is the violated limit.
	Limit int
	// Value is the offending value, only set by rules that echo it.
	Value string

	// format receives Field, Length, Limit and Value in that order.
	format string
}

func (e *LengthError) Error() string {
	return render(e.format, e.Field, e.Length, e.Limit, e.Value)
}

// FormatError is the error returned when a string field is malformed or
// uses a reserved value.
type FormatError struct {
	// Field is the name of the offending field.
	Field string
	// Value is the offending value.
	Value string

	// format receives Field and Value in that order.
	format string
}

func (e *FormatError) Error() string {
	return render(e.format, e.Field, e.Value)
}

// UniquenessError is the error returned when a collection contains
// duplicate, invalid or conflicting entries.
type UniquenessError struct {
	// Field is the name of the offending collection.
	Field string
	// Count is the size of the collection.
	Count int
	// Limit is the maximum size of the collection, if relevant.
	Limit int
	// Entries are the offending entries, if any.
	Entries []string

	// format receives Field, Count, Limit and the rendered Entries in that
	// order.
	format string
}

func (e *UniquenessError) Error() string {
	return render(e.format, e.Field, e.Count, e.Limit, renderList(e.Entries))
}

// DistributionError is the error returned when the initial token
// distribution is inconsistent.
type DistributionError struct {
	// Distribution is the affected distribution ("developer" or "airdrop"),
	// if the defect concerns a single one.
	Distribution string
	// Count is the number of offending neurons.
	Count int
	// Limit is the violated limit.
	Limit uint64
	// Entries are the offending neurons.
	Entries []string
	// Controller is the controller of the offending neuron, if the defect
	// concerns a single one.
	Controller string

	// format receives Distribution, Count, Limit, the rendered Entries and
	// Controller in that order.
	format string
}

func (e *DistributionError) Error() string {
	return render(e.format, e.Distribution, e.Count, e.Limit, renderList(e.Entries), e.Controller)
}

// ExecutionFieldError is the error returned when a field that is only known
// once the proposal is executed is set too early, or missing afterwards.
type ExecutionFieldError struct {
	// Field is the name of the offending field.
	Field string
	// Mode is the validation mode the defect was found in.
	Mode Mode
	// Value is the value the field was set to before execution.
	Value *uint64
}

func (e *ExecutionFieldError) Error() string {
	if e.Mode == PreExecution && e.Value != nil {
		return fmt.Sprintf("Error: %s cannot be specified pre_execution, but was %d", e.Field, *e.Value)
	}
	return fmt.Sprintf("Error: %s must be specified", e.Field)
}

// UnsetExecutionFieldsError is the error returned after execution when any of
// the fields set by the proposal execution are missing.
type UnsetExecutionFieldsError struct {
	// Fields are the unset fields.
	Fields []string
}

func (e *UnsetExecutionFieldsError) Error() string {
	return "Error in validate_all_post_execution_swap_parameters_are_set: The one-proposal " +
		"SNS initialization requires some SnsInitPayload parameters to be Some. But the " +
		"following fields were set to None: " + strings.Join(e.Fields, ", ")
}

// BasketReason is the reason neuron basket construction parameters are
// rejected.
type BasketReason uint8

const (
	// BasketExceedsMaxDissolveDelay means the last neuron of the basket would
	// dissolve later than the maximum dissolve delay allows.
	BasketExceedsMaxDissolveDelay BasketReason = iota
	// BasketExceedsUint64 means the basket dissolve delay overflows.
	BasketExceedsUint64
	// BasketTooSmall means the basket has fewer than MinNeuronsPerBasket
	// neurons.
	BasketTooSmall
	// BasketTooBig means the basket has more than MaxNeuronsPerBasket
	// neurons.
	BasketTooBig
	// BasketInadequateDissolveDelay means the dissolve delay interval is
	// zero.
	BasketInadequateDissolveDelay
)

// BasketError is the error returned when the neuron basket construction
// parameters are invalid.
type BasketError struct {
	Reason BasketReason
	// MaxDissolveDelaySeconds is the maximum dissolve delay the basket was
	// checked against.
	MaxDissolveDelaySeconds uint64
}

func (e *BasketError) Error() string {
	var msg string
	switch e.Reason {
	case BasketExceedsMaxDissolveDelay:
		msg = fmt.Sprintf("must satisfy (count - 1) * dissolve_delay_interval_seconds < SnsInitPayload.max_dissolve_delay_seconds = %d", e.MaxDissolveDelaySeconds)
	case BasketExceedsUint64:
		msg = fmt.Sprintf("must satisfy (count - 1) * dissolve_delay_interval_seconds < MaxUint64 = %d", uint64(math.MaxUint64))
	case BasketTooSmall:
		msg = fmt.Sprintf("basket count must be at least %d", MinNeuronsPerBasket)
	case BasketTooBig:
		msg = fmt.Sprintf("basket count must be at most %d", MaxNeuronsPerBasket)
	case BasketInadequateDissolveDelay:
		msg = "dissolve_delay_interval_seconds must be at least 1"
	default:
		msg = "is invalid"
	}
	return "SnsInitPayload.neuron_basket_construction_parameters " + msg
}

// ParticipationError is the error returned when the swap participation
// parameters violate one of the swap invariants.
type ParticipationError struct {
	// Invariant is the number of the violated invariant (1 to 8).
	Invariant int
	// Values are the offending values, in the order they are rendered.
	Values []uint64

	format string
}

func (e *ParticipationError) Error() string {
	args := make([]interface{}, 0, len(e.Values))
	for _, v := range e.Values {
		args = append(args, v)
	}
	return fmt.Sprintf(e.format, args...)
}

// render formats the message of a rule error. Formats refer to their
// arguments by explicit index and may ignore some of them.
func render(format string, args ...interface{}) string {
	if !strings.Contains(format, "%") {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func renderList(entries []string) string {
	return "[" + strings.Join(entries, ", ") + "]"
}

func renderQuotedList(entries []string) []string {
	quoted := make([]string, 0, len(entries))
	for _, e := range entries {
		quoted = append(quoted, fmt.Sprintf("%q", e))
	}
	return quoted
}
