package api

import (
	"context"
	"fmt"
	"io"

	"github.com/oasisprotocol/sns-launch/common/crypto/hash"
	"github.com/oasisprotocol/sns-launch/common/prettyprint"
	"github.com/oasisprotocol/sns-launch/common/principal"
)

var _ prettyprint.PrettyPrinter = (*CreateServiceNervousSystem)(nil)

// CreateServiceNervousSystem is the canonical payload of a governance proposal
// that creates a new SNS.
//
// All fields are optional to mirror the wire format, but a payload produced
// by a successful conversion has every field populated.
type CreateServiceNervousSystem struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	URL         *string `json:"url,omitempty"`
	Logo        *Image  `json:"logo,omitempty"`

	FallbackControllerPrincipalIDs []principal.Principal `json:"fallback_controller_principal_ids"`
	DappCanisters                  []Canister            `json:"dapp_canisters"`

	InitialTokenDistribution *InitialTokenDistribution `json:"initial_token_distribution,omitempty"`
	SwapParameters           *SwapParameters           `json:"swap_parameters,omitempty"`
	LedgerParameters         *LedgerParameters         `json:"ledger_parameters,omitempty"`
	GovernanceParameters     *GovernanceParameters     `json:"governance_parameters,omitempty"`
}

// Fingerprint returns a digest of the canonical encoding of the payload.
func (p *CreateServiceNervousSystem) Fingerprint() hash.Hash {
	return hash.NewFrom(p)
}

// PrettyPrint writes a pretty-printed representation of the proposal payload
// to the given writer.
func (p CreateServiceNervousSystem) PrettyPrint(ctx context.Context, prefix string, w io.Writer) {
	fmt.Fprintf(w, "%sName:        %s\n", prefix, stringOrUnset(p.Name))
	fmt.Fprintf(w, "%sDescription: %s\n", prefix, stringOrUnset(p.Description))
	fmt.Fprintf(w, "%sURL:         %s\n", prefix, stringOrUnset(p.URL))

	fmt.Fprintf(w, "%sFallback controllers:\n", prefix)
	for _, id := range p.FallbackControllerPrincipalIDs {
		fmt.Fprintf(w, "%s  - %s\n", prefix, id)
	}
	fmt.Fprintf(w, "%sDapp canisters:\n", prefix)
	for _, c := range p.DappCanisters {
		if c.ID == nil {
			fmt.Fprintf(w, "%s  - %s\n", prefix, unsetText)
			continue
		}
		fmt.Fprintf(w, "%s  - %s\n", prefix, c.ID)
	}

	if p.LedgerParameters != nil {
		fmt.Fprintf(w, "%sLedger:\n", prefix)
		p.LedgerParameters.PrettyPrint(ctx, prefix+"  ", w)
	}
	if p.InitialTokenDistribution != nil {
		fmt.Fprintf(w, "%sInitial token distribution:\n", prefix)
		p.InitialTokenDistribution.PrettyPrint(ctx, prefix+"  ", w)
	}
	if p.SwapParameters != nil {
		fmt.Fprintf(w, "%sSwap:\n", prefix)
		p.SwapParameters.PrettyPrint(ctx, prefix+"  ", w)
	}
	if p.GovernanceParameters != nil {
		fmt.Fprintf(w, "%sGovernance:\n", prefix)
		p.GovernanceParameters.PrettyPrint(ctx, prefix+"  ", w)
	}
}

// InitialTokenDistribution describes how the initial token supply is
// distributed.
type InitialTokenDistribution struct {
	DeveloperDistribution *DeveloperDistribution `json:"developer_distribution,omitempty"`
	TreasuryDistribution  *TreasuryDistribution  `json:"treasury_distribution,omitempty"`
	SwapDistribution      *SwapDistribution      `json:"swap_distribution,omitempty"`
}

// DeveloperDistribution is the set of neurons created for developers.
type DeveloperDistribution struct {
	DeveloperNeurons []NeuronDistribution `json:"developer_neurons"`
}

// TotalStake returns the sum of all developer neuron stakes. Unset stakes
// count as zero.
func (d *DeveloperDistribution) TotalStake() uint64 {
	var total uint64
	for _, n := range d.DeveloperNeurons {
		if n.Stake != nil {
			total += n.Stake.E8s
		}
	}
	return total
}

// NeuronDistribution is a neuron created at genesis.
type NeuronDistribution struct {
	Controller    *principal.Principal `json:"controller,omitempty"`
	DissolveDelay *Duration            `json:"dissolve_delay,omitempty"`
	Memo          *uint64              `json:"memo,omitempty"`
	Stake         *Tokens              `json:"stake,omitempty"`
	VestingPeriod *Duration            `json:"vesting_period,omitempty"`
}

// TreasuryDistribution is the amount of tokens held by the SNS governance
// treasury.
type TreasuryDistribution struct {
	Total *Tokens `json:"total,omitempty"`
}

// SwapDistribution is the amount of tokens allocated to the decentralization
// swap.
type SwapDistribution struct {
	Total *Tokens `json:"total,omitempty"`
}

// PrettyPrint writes a pretty-printed representation of the distribution to
// the given writer.
func (d InitialTokenDistribution) PrettyPrint(ctx context.Context, prefix string, w io.Writer) {
	if d.DeveloperDistribution != nil {
		fmt.Fprintf(w, "%sDeveloper neurons:\n", prefix)
		for _, n := range d.DeveloperDistribution.DeveloperNeurons {
			controller := unsetText
			if n.Controller != nil {
				controller = n.Controller.String()
			}
			fmt.Fprintf(w, "%s  - %s: %s (dissolve delay %s)\n", prefix, controller, tokensOrUnset(n.Stake), durationOrUnset(n.DissolveDelay))
		}
	}
	if d.TreasuryDistribution != nil {
		fmt.Fprintf(w, "%sTreasury: %s\n", prefix, tokensOrUnset(d.TreasuryDistribution.Total))
	}
	if d.SwapDistribution != nil {
		fmt.Fprintf(w, "%sSwap:     %s\n", prefix, tokensOrUnset(d.SwapDistribution.Total))
	}
}

// SwapParameters are the parameters of the decentralization swap.
type SwapParameters struct {
	MinimumParticipants *uint64 `json:"minimum_participants,omitempty"`

	// MinimumICP and MaximumICP are legacy fields, superseded by the direct
	// participation bounds.
	MinimumICP *Tokens `json:"minimum_icp,omitempty"`
	MaximumICP *Tokens `json:"maximum_icp,omitempty"`

	MinimumDirectParticipationICP *Tokens `json:"minimum_direct_participation_icp,omitempty"`
	MaximumDirectParticipationICP *Tokens `json:"maximum_direct_participation_icp,omitempty"`

	MinimumParticipantICP *Tokens `json:"minimum_participant_icp,omitempty"`
	MaximumParticipantICP *Tokens `json:"maximum_participant_icp,omitempty"`

	NeuronBasketConstructionParameters *ProposalNeuronBasketConstructionParameters `json:"neuron_basket_construction_parameters,omitempty"`

	ConfirmationText    *string    `json:"confirmation_text,omitempty"`
	RestrictedCountries *Countries `json:"restricted_countries,omitempty"`

	StartTime *GlobalTimeOfDay `json:"start_time,omitempty"`
	Duration  *Duration        `json:"duration,omitempty"`

	NeuronsFundInvestmentICP *Tokens `json:"neurons_fund_investment_icp,omitempty"`
	NeuronsFundParticipation *bool   `json:"neurons_fund_participation,omitempty"`
}

// ProposalNeuronBasketConstructionParameters describes the basket of neurons
// every swap participant receives.
type ProposalNeuronBasketConstructionParameters struct {
	Count                 *uint64   `json:"count,omitempty"`
	DissolveDelayInterval *Duration `json:"dissolve_delay_interval,omitempty"`
}

// PrettyPrint writes a pretty-printed representation of the swap parameters
// to the given writer.
func (s SwapParameters) PrettyPrint(ctx context.Context, prefix string, w io.Writer) {
	fmt.Fprintf(w, "%sMinimum participants:              %s\n", prefix, uint64OrUnset(s.MinimumParticipants))
	fmt.Fprintf(w, "%sMinimum direct participation:      %s\n", prefix, tokensOrUnset(s.MinimumDirectParticipationICP))
	fmt.Fprintf(w, "%sMaximum direct participation:      %s\n", prefix, tokensOrUnset(s.MaximumDirectParticipationICP))
	fmt.Fprintf(w, "%sMinimum participant contribution:  %s\n", prefix, tokensOrUnset(s.MinimumParticipantICP))
	fmt.Fprintf(w, "%sMaximum participant contribution:  %s\n", prefix, tokensOrUnset(s.MaximumParticipantICP))
	if b := s.NeuronBasketConstructionParameters; b != nil {
		fmt.Fprintf(w, "%sNeuron basket:                     %s neurons every %s\n", prefix, uint64OrUnset(b.Count), durationOrUnset(b.DissolveDelayInterval))
	}
	fmt.Fprintf(w, "%sDuration:                          %s\n", prefix, durationOrUnset(s.Duration))
	if s.NeuronsFundParticipation != nil {
		fmt.Fprintf(w, "%sNeurons' Fund participation:       %t\n", prefix, *s.NeuronsFundParticipation)
	}
}

// LedgerParameters are the parameters of the SNS ledger.
type LedgerParameters struct {
	TransactionFee *Tokens `json:"transaction_fee,omitempty"`
	TokenName      *string `json:"token_name,omitempty"`
	TokenSymbol    *string `json:"token_symbol,omitempty"`
	TokenLogo      *Image  `json:"token_logo,omitempty"`
}

// PrettyPrint writes a pretty-printed representation of the ledger parameters
// to the given writer.
func (l LedgerParameters) PrettyPrint(ctx context.Context, prefix string, w io.Writer) {
	fmt.Fprintf(w, "%sToken name:      %s\n", prefix, stringOrUnset(l.TokenName))
	fmt.Fprintf(w, "%sToken symbol:    %s\n", prefix, stringOrUnset(l.TokenSymbol))
	fmt.Fprintf(w, "%sTransaction fee: %s\n", prefix, tokensOrUnset(l.TransactionFee))
}

// GovernanceParameters are the parameters of SNS governance.
type GovernanceParameters struct {
	ProposalRejectionFee                 *Tokens                 `json:"proposal_rejection_fee,omitempty"`
	ProposalInitialVotingPeriod          *Duration               `json:"proposal_initial_voting_period,omitempty"`
	ProposalWaitForQuietDeadlineIncrease *Duration               `json:"proposal_wait_for_quiet_deadline_increase,omitempty"`
	NeuronMinimumStake                   *Tokens                 `json:"neuron_minimum_stake,omitempty"`
	NeuronMinimumDissolveDelayToVote     *Duration               `json:"neuron_minimum_dissolve_delay_to_vote,omitempty"`
	NeuronMaximumDissolveDelay           *Duration               `json:"neuron_maximum_dissolve_delay,omitempty"`
	NeuronMaximumDissolveDelayBonus      *Percentage             `json:"neuron_maximum_dissolve_delay_bonus,omitempty"`
	NeuronMaximumAgeForAgeBonus          *Duration               `json:"neuron_maximum_age_for_age_bonus,omitempty"`
	NeuronMaximumAgeBonus                *Percentage             `json:"neuron_maximum_age_bonus,omitempty"`
	VotingRewardParameters               *VotingRewardParameters `json:"voting_reward_parameters,omitempty"`
}

// VotingRewardParameters are the voting reward parameters of SNS governance.
type VotingRewardParameters struct {
	InitialRewardRate            *Percentage `json:"initial_reward_rate,omitempty"`
	FinalRewardRate              *Percentage `json:"final_reward_rate,omitempty"`
	RewardRateTransitionDuration *Duration   `json:"reward_rate_transition_duration,omitempty"`
}

// PrettyPrint writes a pretty-printed representation of the governance
// parameters to the given writer.
func (g GovernanceParameters) PrettyPrint(ctx context.Context, prefix string, w io.Writer) {
	fmt.Fprintf(w, "%sProposal rejection fee:        %s\n", prefix, tokensOrUnset(g.ProposalRejectionFee))
	fmt.Fprintf(w, "%sInitial voting period:         %s\n", prefix, durationOrUnset(g.ProposalInitialVotingPeriod))
	fmt.Fprintf(w, "%sWait for quiet increase:       %s\n", prefix, durationOrUnset(g.ProposalWaitForQuietDeadlineIncrease))
	fmt.Fprintf(w, "%sNeuron minimum stake:          %s\n", prefix, tokensOrUnset(g.NeuronMinimumStake))
	fmt.Fprintf(w, "%sMinimum dissolve delay (vote): %s\n", prefix, durationOrUnset(g.NeuronMinimumDissolveDelayToVote))
	fmt.Fprintf(w, "%sMaximum dissolve delay:        %s (bonus %s)\n", prefix, durationOrUnset(g.NeuronMaximumDissolveDelay), percentageOrUnset(g.NeuronMaximumDissolveDelayBonus))
	fmt.Fprintf(w, "%sMaximum age for age bonus:     %s (bonus %s)\n", prefix, durationOrUnset(g.NeuronMaximumAgeForAgeBonus), percentageOrUnset(g.NeuronMaximumAgeBonus))
	if r := g.VotingRewardParameters; r != nil {
		fmt.Fprintf(w, "%sReward rate:                   %s to %s over %s\n", prefix, percentageOrUnset(r.InitialRewardRate), percentageOrUnset(r.FinalRewardRate), durationOrUnset(r.RewardRateTransitionDuration))
	}
}
