// Package api defines the payloads produced by the SNS launch pipeline: the
// CreateServiceNervousSystem proposal payload and the SNS initialization
// payload derived from it.
package api

import (
	"context"
	"fmt"
	"io"

	"github.com/oasisprotocol/sns-launch/common/prettyprint"
	"github.com/oasisprotocol/sns-launch/common/principal"
	"github.com/oasisprotocol/sns-launch/humanize"
)

// ModuleName is a unique module name for the SNS payload types.
const ModuleName = "sns/api"

// E8 is the number of e8s in one token.
const E8 = humanize.E8

var (
	_ prettyprint.PrettyPrinter = (*Tokens)(nil)
	_ prettyprint.PrettyPrinter = (*Duration)(nil)
	_ prettyprint.PrettyPrinter = (*Percentage)(nil)
)

// Tokens is an amount of tokens.
type Tokens struct {
	E8s uint64 `json:"e8s"`
}

// NewTokens returns an amount of tokens in e8s.
func NewTokens(e8s uint64) *Tokens {
	return &Tokens{E8s: e8s}
}

func (t Tokens) String() string {
	return humanize.Tokens(t.E8s).String()
}

// PrettyPrint writes a pretty-printed representation of Tokens to the given
// writer.
func (t Tokens) PrettyPrint(ctx context.Context, prefix string, w io.Writer) {
	fmt.Fprintf(w, "%s%s\n", prefix, t)
}

// Duration is a span of time in seconds.
type Duration struct {
	Seconds uint64 `json:"seconds"`
}

// NewDuration returns a duration in seconds.
func NewDuration(seconds uint64) *Duration {
	return &Duration{Seconds: seconds}
}

func (d Duration) String() string {
	return humanize.Duration(d.Seconds).String()
}

// PrettyPrint writes a pretty-printed representation of Duration to the given
// writer.
func (d Duration) PrettyPrint(ctx context.Context, prefix string, w io.Writer) {
	fmt.Fprintf(w, "%s%s\n", prefix, d)
}

// Percentage is a percentage in basis points.
type Percentage struct {
	BasisPoints uint64 `json:"basis_points"`
}

// NewPercentage returns a percentage in basis points.
func NewPercentage(basisPoints uint64) *Percentage {
	return &Percentage{BasisPoints: basisPoints}
}

func (p Percentage) String() string {
	return humanize.Percentage(p.BasisPoints).String()
}

// PrettyPrint writes a pretty-printed representation of Percentage to the
// given writer.
func (p Percentage) PrettyPrint(ctx context.Context, prefix string, w io.Writer) {
	fmt.Fprintf(w, "%s%s\n", prefix, p)
}

// GlobalTimeOfDay is a time of day in UTC.
type GlobalTimeOfDay struct {
	SecondsAfterUTCMidnight uint64 `json:"seconds_after_utc_midnight"`
}

// Image is an image encoded as a data URI, e.g.
// "data:image/png;base64,iVBORw0KGgo...".
type Image struct {
	Base64Encoding string `json:"base64_encoding"`
}

// Countries is a set of ISO 3166-1 alpha-2 country codes.
type Countries struct {
	ISOCodes []string `json:"iso_codes"`
}

// Canister is a canister that will be transferred to an SNS.
type Canister struct {
	ID *principal.Principal `json:"id,omitempty"`
}
