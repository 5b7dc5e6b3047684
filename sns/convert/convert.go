// Package convert turns a launch document into the CreateServiceNervousSystem
// proposal payload, and the proposal payload into the SNS initialization
// payload.
//
// Conversion never stops at the first problem: every sub-converter reports
// its defects to a shared accumulator and the caller gets all of them at
// once.
package convert

import (
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/oasisprotocol/sns-launch/common/errors"
	"github.com/oasisprotocol/sns-launch/common/logging"
	"github.com/oasisprotocol/sns-launch/sns/api"
	"github.com/oasisprotocol/sns-launch/sns/config"
	"github.com/oasisprotocol/sns-launch/sns/validation"
)

// ModuleName is a unique module name for the converter.
const ModuleName = "sns/convert"

const (
	defectsHeader     = "Unable to convert configuration file to proposal for the following reason(s):"
	crossCheckHeader  = "Unable to convert configuration file to proposal: "
	defectListPrefix  = "\n  -"
	placeholderID     = 1
	placeholderBefore = 1000
	placeholderAfter  = 300
)

// ErrConversion is the error returned when a launch document cannot be
// converted.
var ErrConversion = errors.New(ModuleName, 1, "convert: unable to convert launch document")

var logger = logging.GetLogger(ModuleName)

// Error is a conversion failure. It either carries the conversion defects,
// or the validation error of a payload that converted cleanly but fails its
// own validation.
type Error struct {
	defects *multierror.Error
	cause   error
}

// Error renders the failure as a summary line followed by one line per
// defect.
func (e *Error) Error() string {
	if e.cause != nil {
		return crossCheckHeader + e.cause.Error()
	}
	return e.defects.Error()
}

// Is returns true when target is ErrConversion.
func (e *Error) Is(target error) bool {
	return target == ErrConversion
}

// Unwrap returns the validation error, or the conversion defects.
func (e *Error) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return e.defects.Unwrap()
}

// Defects returns the conversion defect messages.
func (e *Error) Defects() []string {
	if e.defects == nil {
		return nil
	}
	msgs := make([]string, 0, len(e.defects.Errors))
	for _, err := range e.defects.Errors {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

// defects accumulates the defects of a single conversion.
type defects struct {
	result *multierror.Error
}

func (d *defects) add(msgs ...string) {
	for _, msg := range msgs {
		d.result = multierror.Append(d.result, &defect{msg})
	}
}

func (d *defects) len() int {
	if d.result == nil {
		return 0
	}
	return len(d.result.Errors)
}

func (d *defects) err() error {
	if d.result == nil {
		return nil
	}
	d.result.ErrorFormat = reportFormat
	return &Error{defects: d.result}
}

type defect struct {
	msg string
}

func (d *defect) Error() string {
	return d.msg
}

func reportFormat(errs []error) string {
	var b strings.Builder
	b.WriteString(defectsHeader)
	for _, err := range errs {
		b.WriteString(defectListPrefix)
		b.WriteString(err.Error())
	}
	return b.String()
}

// ToProposal converts a launch document into a proposal payload.
//
// A payload is only returned when the initialization payload derived from
// it passes pre-execution validation.
func ToProposal(doc *config.Document) (*api.CreateServiceNervousSystem, error) {
	if doc == nil {
		var d defects
		d.add("The configuration file is empty.")
		return nil, d.err()
	}

	var d defects
	resolver, aliasDefects := config.NewAliasResolver(doc.Principals)
	d.add(aliasDefects...)

	fallbackControllers, unaliasDefects := resolver.Unalias("fallback_controller_principals", doc.FallbackControllerPrincipals)
	d.add(unaliasDefects...)

	dappCanisterIDs, unaliasDefects := resolver.Unalias("dapp_canisters", doc.DappCanisters)
	d.add(unaliasDefects...)
	dappCanisters := make([]api.Canister, 0, len(dappCanisterIDs))
	for i := range dappCanisterIDs {
		dappCanisters = append(dappCanisters, api.Canister{ID: &dappCanisterIDs[i]})
	}

	proposal := &api.CreateServiceNervousSystem{
		Name:        stringPtr(doc.Name),
		Description: stringPtr(doc.Description),
		URL:         stringPtr(doc.URL),
		Logo:        &api.Image{Base64Encoding: doc.LogoB64},

		FallbackControllerPrincipalIDs: fallbackControllers,
		DappCanisters:                  dappCanisters,

		InitialTokenDistribution: convertDistribution(&doc.Distribution, resolver, &d),
		SwapParameters:           convertSwap(&doc.Swap),
		LedgerParameters:         convertToken(&doc.Token),
		GovernanceParameters:     convertGovernance(&doc.Proposals, &doc.Neurons, &doc.Voting),
	}

	logger.Debug("converted launch document",
		"name", doc.Name,
		"defects", d.len(),
	)

	if err := d.err(); err != nil {
		return nil, err
	}
	if _, err := ToInitPayload(proposal); err != nil {
		return nil, &Error{cause: err}
	}
	return proposal, nil
}

// ToExecutedInitPayload converts a launch document into an initialization
// payload as it would look right after the proposal is executed at now, and
// validates it as such.
func ToExecutedInitPayload(doc *config.Document, now time.Time) (*api.InitPayload, error) {
	proposal, err := ToProposal(doc)
	if err != nil {
		return nil, err
	}
	payload, err := ToInitPayload(proposal)
	if err != nil {
		return nil, err
	}

	nowSeconds := uint64(now.Unix())
	payload.NNSProposalID = uint64Ptr(placeholderID)
	payload.SwapStartTimestampSeconds = uint64Ptr(nowSeconds - placeholderBefore)
	payload.SwapDueTimestampSeconds = uint64Ptr(nowSeconds + placeholderAfter)

	return validation.ValidatePostExecution(payload)
}

func stringPtr(s string) *string {
	return &s
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}
