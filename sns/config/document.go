// Package config implements the SNS launch document: the operator facing
// description of a token launch, written in YAML with human friendly units.
package config

import (
	"github.com/oasisprotocol/sns-launch/common/errors"
	"github.com/oasisprotocol/sns-launch/humanize"
)

// ModuleName is a unique module name for the launch document.
const ModuleName = "sns/config"

// ErrInvalidDocument is the error returned when a launch document cannot be
// loaded.
var ErrInvalidDocument = errors.New(ModuleName, 1, "config: invalid launch document")

// Document is an SNS launch document.
//
// Every field without `omitempty` is required, and unknown fields are
// rejected at every nesting level.
type Document struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	LogoB64     string `yaml:"logo_b64"`
	URL         string `yaml:"url"`

	// Principals is the alias table used to resolve the principal fields.
	Principals []PrincipalAlias `yaml:"Principals,omitempty"`

	FallbackControllerPrincipals []string `yaml:"fallback_controller_principals"`
	DappCanisters                []string `yaml:"dapp_canisters"`

	Token        Token        `yaml:"Token"`
	Proposals    Proposals    `yaml:"Proposals"`
	Neurons      Neurons      `yaml:"Neurons"`
	Voting       Voting       `yaml:"Voting"`
	Distribution Distribution `yaml:"Distribution"`
	Swap         Swap         `yaml:"Swap"`
	NnsProposal  NnsProposal  `yaml:"NnsProposal"`
}

// PrincipalAlias gives a principal a human friendly name and/or email that
// can be used in place of its textual form elsewhere in the document.
type PrincipalAlias struct {
	ID    string  `yaml:"id"`
	Name  *string `yaml:"name,omitempty"`
	Email *string `yaml:"email,omitempty"`
}

// Token are the ledger parameters.
type Token struct {
	Name           string          `yaml:"name"`
	Symbol         string          `yaml:"symbol"`
	TransactionFee humanize.Tokens `yaml:"transaction_fee"`
	LogoB64        string          `yaml:"logo_b64"`
}

// Proposals are the proposal related governance parameters.
type Proposals struct {
	RejectionFee                         humanize.Tokens   `yaml:"rejection_fee"`
	InitialVotingPeriod                  humanize.Duration `yaml:"initial_voting_period"`
	MaximumWaitForQuietDeadlineExtension humanize.Duration `yaml:"maximum_wait_for_quiet_deadline_extension"`
}

// Neurons are the neuron related governance parameters.
type Neurons struct {
	MinimumCreationStake humanize.Tokens `yaml:"minimum_creation_stake"`
}

// Voting are the voting related governance parameters.
type Voting struct {
	MinimumDissolveDelay      humanize.Duration         `yaml:"minimum_dissolve_delay"`
	MaximumVotingPowerBonuses MaximumVotingPowerBonuses `yaml:"MaximumVotingPowerBonuses"`
	RewardRate                RewardRate                `yaml:"RewardRate"`
}

// MaximumVotingPowerBonuses are the voting power bonuses and the durations
// at which they saturate.
type MaximumVotingPowerBonuses struct {
	DissolveDelay Bonus `yaml:"DissolveDelay"`
	Age           Bonus `yaml:"Age"`
}

// Bonus is a voting power bonus reached after Duration.
type Bonus struct {
	Duration humanize.Duration   `yaml:"duration"`
	Bonus    humanize.Percentage `yaml:"bonus"`
}

// RewardRate is the voting reward rate schedule.
type RewardRate struct {
	Initial            humanize.Percentage `yaml:"initial"`
	Final              humanize.Percentage `yaml:"final"`
	TransitionDuration humanize.Duration   `yaml:"transition_duration"`
}

// Swap are the decentralization swap parameters.
type Swap struct {
	MinimumParticipants uint64 `yaml:"minimum_participants"`

	// MinimumICP and MaximumICP are legacy bounds. When the direct
	// participation bounds are omitted they are derived from these.
	MinimumICP *humanize.Tokens `yaml:"minimum_icp,omitempty"`
	MaximumICP *humanize.Tokens `yaml:"maximum_icp,omitempty"`

	MinimumDirectParticipationICP *humanize.Tokens `yaml:"minimum_direct_participation_icp,omitempty"`
	MaximumDirectParticipationICP *humanize.Tokens `yaml:"maximum_direct_participation_icp,omitempty"`

	MinimumParticipantICP humanize.Tokens `yaml:"minimum_participant_icp"`
	MaximumParticipantICP humanize.Tokens `yaml:"maximum_participant_icp"`

	ConfirmationText    *string  `yaml:"confirmation_text,omitempty"`
	RestrictedCountries []string `yaml:"restricted_countries,omitempty"`

	VestingSchedule VestingSchedule `yaml:"VestingSchedule"`

	StartTime *humanize.TimeOfDay `yaml:"start_time,omitempty"`
	Duration  humanize.Duration   `yaml:"duration"`

	NeuronsFundInvestmentICP *humanize.Tokens `yaml:"neurons_fund_investment_icp,omitempty"`
	NeuronsFundParticipation *bool            `yaml:"neurons_fund_participation,omitempty"`
}

// VestingSchedule is the schedule of the neuron basket every swap
// participant receives.
type VestingSchedule struct {
	Events   uint64            `yaml:"events"`
	Interval humanize.Duration `yaml:"interval"`
}

// Distribution is the initial token distribution.
type Distribution struct {
	Neurons         []Neuron        `yaml:"Neurons"`
	InitialBalances InitialBalances `yaml:"InitialBalances"`
	Total           humanize.Tokens `yaml:"total"`
}

// Neuron is a developer neuron created at genesis.
type Neuron struct {
	Principal     string            `yaml:"principal"`
	Stake         humanize.Tokens   `yaml:"stake"`
	Memo          uint64            `yaml:"memo,omitempty"`
	DissolveDelay humanize.Duration `yaml:"dissolve_delay"`
	VestingPeriod humanize.Duration `yaml:"vesting_period"`
}

// InitialBalances are the initial treasury and swap balances.
type InitialBalances struct {
	Governance humanize.Tokens `yaml:"governance"`
	Swap       humanize.Tokens `yaml:"swap"`
}

// NnsProposal is the metadata of the governance proposal. It is not part of
// the proposal payload.
type NnsProposal struct {
	Title   string  `yaml:"title"`
	Summary string  `yaml:"summary"`
	URL     *string `yaml:"url,omitempty"`
}
