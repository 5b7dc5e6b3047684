// Package validation implements the SNS initialization payload validator.
//
// A payload is checked by a fixed, ordered list of rules. Every rule runs
// regardless of earlier failures, and the distinct defects are reported
// together.
package validation

import (
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/oasisprotocol/sns-launch/common/errors"
	"github.com/oasisprotocol/sns-launch/common/logging"
	"github.com/oasisprotocol/sns-launch/sns/api"
)

// ModuleName is a unique module name for the validation module.
const ModuleName = "sns/validation"

// ErrValidation is the error returned when a payload fails validation. The
// returned error also wraps every individual defect.
var ErrValidation = errors.New(ModuleName, 1, "validation: invalid SNS initialization payload")

var logger = logging.GetLogger(ModuleName)

// Mode is the validation mode.
type Mode uint8

const (
	// PreExecution validates a payload before the proposal creating the SNS
	// is executed. Fields only known at execution must be absent.
	PreExecution Mode = iota
	// PostExecution validates a payload after the proposal creating the SNS
	// is executed. Fields only known at execution must be present.
	PostExecution
)

// String returns a string representation of the validation mode.
func (m Mode) String() string {
	switch m {
	case PreExecution:
		return "pre"
	case PostExecution:
		return "post"
	default:
		return "[unknown mode]"
	}
}

// Rule is a single payload validation rule.
type Rule func(p *api.InitPayload) error

// sharedRules are the rules that hold in both modes.
var sharedRules = []Rule{
	validateTokenSymbol,
	validateTokenName,
	validateTokenLogo,
	validateTokenDistribution,
	validateParticipationConstraints,
	validateNeuronMinimumStake,
	validateMinimumDissolveDelayToVote,
	validateNeuronBasketConstructionParameters,
	validateProposalRejectCost,
	validateTransactionFee,
	validateFallbackControllers,
	validateURL,
	validateLogo,
	validateDescription,
	validateName,
	validateInitialRewardRate,
	validateFinalRewardRate,
	validateRewardRateTransitionDuration,
	validateMaxDissolveDelay,
	validateMaxNeuronAgeForAgeBonus,
	validateMaxDissolveDelayBonus,
	validateMaxAgeBonus,
	validateInitialVotingPeriod,
	validateWaitForQuietDeadlineIncrease,
	validateDappCanisters,
	validateConfirmationText,
	validateRestrictedCountries,
}

func rulesFor(mode Mode) []Rule {
	rules := make([]Rule, 0, len(sharedRules)+8)
	rules = append(rules, sharedRules...)

	switch mode {
	case PreExecution:
		rules = append(rules,
			executionField("nns_proposal_id", PreExecution, nnsProposalID),
			executionField("swap_start_timestamp_seconds", PreExecution, swapStart),
			executionField("swap_due_timestamp_seconds", PreExecution, swapDue),
			neuronsFundConstraintsRule(PreExecution),
		)
	case PostExecution:
		rules = append(rules,
			validateAllExecutionFieldsSet,
			executionField("nns_proposal_id", PostExecution, nnsProposalID),
			executionField("swap_start_timestamp_seconds", PostExecution, swapStart),
			validateSwapDue,
			neuronsFundConstraintsRule(PostExecution),
		)
	}

	return append(rules,
		validateNeuronsFundParticipation,
		validateMinICP,
		validateMaxICP,
	)
}

// Validate validates the payload in the given mode. It returns a copy of
// the payload when there are no defects.
func Validate(p *api.InitPayload, mode Mode) (*api.InitPayload, error) {
	if p == nil {
		return nil, newValidationError([]error{errMissing("SnsInitPayload")})
	}

	start := time.Now()
	rules := rulesFor(mode)

	defects := runRules(p, rules)
	observe(mode, len(defects), time.Since(start))

	logger.Debug("validated SNS initialization payload",
		"mode", mode,
		"rules", len(rules),
		"defects", len(defects),
	)

	if len(defects) > 0 {
		return nil, newValidationError(defects)
	}
	return p.Clone(), nil
}

// ValidatePreExecution validates a payload before the proposal creating the
// SNS is executed.
func ValidatePreExecution(p *api.InitPayload) (*api.InitPayload, error) {
	return Validate(p, PreExecution)
}

// ValidatePostExecution validates a payload after the proposal creating the
// SNS is executed.
func ValidatePostExecution(p *api.InitPayload) (*api.InitPayload, error) {
	return Validate(p, PostExecution)
}

// runRules runs every rule and returns the defects in rule order, without
// duplicate messages.
func runRules(p *api.InitPayload, rules []Rule) []error {
	var defects []error
	seen := make(map[string]struct{})
	for _, rule := range rules {
		err := rule(p)
		if err == nil {
			continue
		}
		msg := err.Error()
		if _, dup := seen[msg]; dup {
			continue
		}
		seen[msg] = struct{}{}
		defects = append(defects, err)
	}
	return defects
}

// Error is the aggregated validation error. It matches ErrValidation and
// wraps every defect, so that errors.As finds the individual rule errors.
type Error struct {
	defects *multierror.Error
}

func newValidationError(defects []error) *Error {
	merr := &multierror.Error{
		Errors:      defects,
		ErrorFormat: joinLines,
	}
	return &Error{defects: merr}
}

// Error returns the newline separated defect messages.
func (e *Error) Error() string {
	return e.defects.Error()
}

// Is returns true when target is ErrValidation.
func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

// Unwrap returns the defects.
func (e *Error) Unwrap() error {
	return e.defects.Unwrap()
}

// Defects returns the individual defects, in rule order.
func (e *Error) Defects() []error {
	return append([]error{}, e.defects.Errors...)
}

func joinLines(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}
