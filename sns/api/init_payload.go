package api

import (
	"context"
	"fmt"
	"io"

	"github.com/oasisprotocol/sns-launch/common/crypto/hash"
	"github.com/oasisprotocol/sns-launch/common/prettyprint"
	"github.com/oasisprotocol/sns-launch/common/principal"
)

var _ prettyprint.PrettyPrinter = (*InitPayload)(nil)

// InitPayload is the flattened payload used to initialize a new SNS.
//
// It carries every field of CreateServiceNervousSystem plus the fields that
// only become known once the proposal has been executed: NNSProposalID,
// SwapStartTimestampSeconds, SwapDueTimestampSeconds and
// NeuronsFundParticipationConstraints.
type InitPayload struct {
	// TransactionFeeE8s is the fee of a ledger transaction.
	TransactionFeeE8s *uint64 `json:"transaction_fee_e8s,omitempty"`
	// TokenName is the name of the token issued by the SNS ledger.
	TokenName *string `json:"token_name,omitempty"`
	// TokenSymbol is the ticker symbol of the token issued by the SNS ledger.
	TokenSymbol *string `json:"token_symbol,omitempty"`
	// TokenLogo is the token logo, a base64 encoded PNG data URI.
	TokenLogo *string `json:"token_logo,omitempty"`
	// ProposalRejectCostE8s is the cost of making a proposal that is rejected.
	ProposalRejectCostE8s *uint64 `json:"proposal_reject_cost_e8s,omitempty"`
	// NeuronMinimumStakeE8s is the minimum stake of a neuron.
	NeuronMinimumStakeE8s *uint64 `json:"neuron_minimum_stake_e8s,omitempty"`

	// FallbackControllerPrincipalIDs are the principals that regain control
	// of the dapp canisters if the swap fails.
	FallbackControllerPrincipalIDs []string `json:"fallback_controller_principal_ids"`

	Logo        *string `json:"logo,omitempty"`
	URL         *string `json:"url,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`

	NeuronMinimumDissolveDelayToVoteSeconds *uint64 `json:"neuron_minimum_dissolve_delay_to_vote_seconds,omitempty"`
	InitialRewardRateBasisPoints            *uint64 `json:"initial_reward_rate_basis_points,omitempty"`
	FinalRewardRateBasisPoints              *uint64 `json:"final_reward_rate_basis_points,omitempty"`
	RewardRateTransitionDurationSeconds     *uint64 `json:"reward_rate_transition_duration_seconds,omitempty"`
	MaxDissolveDelaySeconds                 *uint64 `json:"max_dissolve_delay_seconds,omitempty"`
	MaxNeuronAgeSecondsForAgeBonus          *uint64 `json:"max_neuron_age_seconds_for_age_bonus,omitempty"`
	MaxDissolveDelayBonusPercentage         *uint64 `json:"max_dissolve_delay_bonus_percentage,omitempty"`
	MaxAgeBonusPercentage                   *uint64 `json:"max_age_bonus_percentage,omitempty"`
	InitialVotingPeriodSeconds              *uint64 `json:"initial_voting_period_seconds,omitempty"`
	WaitForQuietDeadlineIncreaseSeconds     *uint64 `json:"wait_for_quiet_deadline_increase_seconds,omitempty"`

	// ConfirmationText is an optional text swap participants must confirm.
	ConfirmationText *string `json:"confirmation_text,omitempty"`
	// RestrictedCountries is an optional set of countries that may not
	// participate in the swap.
	RestrictedCountries *Countries `json:"restricted_countries,omitempty"`
	// DappCanisters are the canisters transferred to the SNS.
	DappCanisters *DappCanisters `json:"dapp_canisters,omitempty"`

	MinParticipants              *uint64 `json:"min_participants,omitempty"`
	MinICPE8s                    *uint64 `json:"min_icp_e8s,omitempty"`
	MaxICPE8s                    *uint64 `json:"max_icp_e8s,omitempty"`
	MinDirectParticipationICPE8s *uint64 `json:"min_direct_participation_icp_e8s,omitempty"`
	MaxDirectParticipationICPE8s *uint64 `json:"max_direct_participation_icp_e8s,omitempty"`
	MinParticipantICPE8s         *uint64 `json:"min_participant_icp_e8s,omitempty"`
	MaxParticipantICPE8s         *uint64 `json:"max_participant_icp_e8s,omitempty"`

	SwapStartTimestampSeconds *uint64 `json:"swap_start_timestamp_seconds,omitempty"`
	SwapDueTimestampSeconds   *uint64 `json:"swap_due_timestamp_seconds,omitempty"`

	NeuronBasketConstructionParameters *NeuronBasketConstructionParameters `json:"neuron_basket_construction_parameters,omitempty"`

	// NNSProposalID is the identifier of the proposal that created the SNS.
	NNSProposalID *uint64 `json:"nns_proposal_id,omitempty"`
	// NeuronsFundParticipation is whether the Neurons' Fund participates in
	// the swap.
	NeuronsFundParticipation *bool `json:"neurons_fund_participation,omitempty"`
	// NeuronsFundParticipationConstraints determine the Neurons' Fund
	// participation as a function of direct participation.
	NeuronsFundParticipationConstraints *NeuronsFundParticipationConstraints `json:"neurons_fund_participation_constraints,omitempty"`

	InitialTokenDistribution *FractionalDeveloperVotingPower `json:"initial_token_distribution,omitempty"`
}

// Clone returns a deep copy of the payload.
func (p *InitPayload) Clone() *InitPayload {
	var cp InitPayload
	if err := cloneVia(p, &cp); err != nil {
		panic(fmt.Errorf("api: failed to clone init payload: %w", err))
	}
	return &cp
}

// SwapDistribution returns the swap distribution, if any.
func (p *InitPayload) SwapDistribution() *FractionalSwapDistribution {
	if p.InitialTokenDistribution == nil {
		return nil
	}
	return p.InitialTokenDistribution.SwapDistribution
}

// Fingerprint returns a digest of the canonical encoding of the payload.
func (p *InitPayload) Fingerprint() hash.Hash {
	return hash.NewFrom(p)
}

// PrettyPrint writes a pretty-printed representation of the payload to the
// given writer.
func (p InitPayload) PrettyPrint(ctx context.Context, prefix string, w io.Writer) {
	symbol := prettyprint.TokenSymbol(ctx, stringOrUnset(p.TokenSymbol))

	fmt.Fprintf(w, "%sName:                %s\n", prefix, stringOrUnset(p.Name))
	fmt.Fprintf(w, "%sToken:               %s (%s)\n", prefix, stringOrUnset(p.TokenName), symbol)
	fmt.Fprintf(w, "%sTransaction fee:     %s\n", prefix, e8sOrUnset(p.TransactionFeeE8s))
	fmt.Fprintf(w, "%sNeuron minimum stake: %s\n", prefix, e8sOrUnset(p.NeuronMinimumStakeE8s))
	fmt.Fprintf(w, "%sNNS proposal:        %s\n", prefix, uint64OrUnset(p.NNSProposalID))
	fmt.Fprintf(w, "%sSwap start:          %s\n", prefix, uint64OrUnset(p.SwapStartTimestampSeconds))
	fmt.Fprintf(w, "%sSwap due:            %s\n", prefix, uint64OrUnset(p.SwapDueTimestampSeconds))
	if d := p.InitialTokenDistribution; d != nil {
		fmt.Fprintf(w, "%sInitial token distribution:\n", prefix)
		d.PrettyPrint(ctx, prefix+"  ", w)
	}
}

// DappCanisters are the canisters transferred to an SNS.
type DappCanisters struct {
	Canisters []Canister `json:"canisters"`
}

// FractionalDeveloperVotingPower is the initial token distribution strategy
// in which developers receive a fraction of the voting power at genesis.
type FractionalDeveloperVotingPower struct {
	DeveloperDistribution *FractionalDeveloperDistribution `json:"developer_distribution,omitempty"`
	TreasuryDistribution  *FractionalTreasuryDistribution  `json:"treasury_distribution,omitempty"`
	SwapDistribution      *FractionalSwapDistribution      `json:"swap_distribution,omitempty"`
	AirdropDistribution   *AirdropDistribution             `json:"airdrop_distribution,omitempty"`
}

// PrettyPrint writes a pretty-printed representation of the distribution to
// the given writer.
func (f FractionalDeveloperVotingPower) PrettyPrint(ctx context.Context, prefix string, w io.Writer) {
	if f.DeveloperDistribution != nil {
		fmt.Fprintf(w, "%sDeveloper neurons: %d\n", prefix, len(f.DeveloperDistribution.DeveloperNeurons))
	}
	if f.AirdropDistribution != nil {
		fmt.Fprintf(w, "%sAirdrop neurons:   %d\n", prefix, len(f.AirdropDistribution.AirdropNeurons))
	}
	if f.TreasuryDistribution != nil {
		fmt.Fprintf(w, "%sTreasury:          %s\n", prefix, tokensFromE8s(f.TreasuryDistribution.TotalE8s))
	}
	if f.SwapDistribution != nil {
		fmt.Fprintf(w, "%sSwap:              %s (initially %s)\n", prefix,
			tokensFromE8s(f.SwapDistribution.TotalE8s),
			tokensFromE8s(f.SwapDistribution.InitialSwapAmountE8s),
		)
	}
}

// FractionalDeveloperDistribution are the developer neurons.
type FractionalDeveloperDistribution struct {
	DeveloperNeurons []InitNeuronDistribution `json:"developer_neurons"`
}

// FractionalTreasuryDistribution is the treasury allocation.
type FractionalTreasuryDistribution struct {
	TotalE8s uint64 `json:"total_e8s"`
}

// FractionalSwapDistribution is the swap allocation.
type FractionalSwapDistribution struct {
	TotalE8s             uint64 `json:"total_e8s"`
	InitialSwapAmountE8s uint64 `json:"initial_swap_amount_e8s"`
}

// AirdropDistribution are the airdrop neurons.
type AirdropDistribution struct {
	AirdropNeurons []InitNeuronDistribution `json:"airdrop_neurons"`
}

// InitNeuronDistribution is a neuron created at genesis.
type InitNeuronDistribution struct {
	Controller           *principal.Principal `json:"controller,omitempty"`
	StakeE8s             uint64               `json:"stake_e8s"`
	Memo                 uint64               `json:"memo"`
	DissolveDelaySeconds uint64               `json:"dissolve_delay_seconds"`
	VestingPeriodSeconds *uint64              `json:"vesting_period_seconds,omitempty"`
}

// NeuronBasketConstructionParameters describes the basket of neurons every
// swap participant receives: Count neurons whose dissolve delays are spaced
// DissolveDelayIntervalSeconds apart.
type NeuronBasketConstructionParameters struct {
	Count                        uint64 `json:"count"`
	DissolveDelayIntervalSeconds uint64 `json:"dissolve_delay_interval_seconds"`
}
