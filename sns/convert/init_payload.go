package convert

import (
	"github.com/oasisprotocol/sns-launch/sns/api"
	"github.com/oasisprotocol/sns-launch/sns/validation"
)

const basisPointsPerPercent = 100

// ToInitPayload converts a proposal payload into an initialization payload
// and validates it before execution.
//
// Unset proposal fields are left unset, so that validation reports them.
// The legacy ICP bounds of the swap are not carried over.
func ToInitPayload(proposal *api.CreateServiceNervousSystem) (*api.InitPayload, error) {
	if proposal == nil {
		return validation.ValidatePreExecution(nil)
	}

	p := &api.InitPayload{
		Name:        copyString(proposal.Name),
		Description: copyString(proposal.Description),
		URL:         copyString(proposal.URL),
		Logo:        imageString(proposal.Logo),

		FallbackControllerPrincipalIDs: make([]string, 0, len(proposal.FallbackControllerPrincipalIDs)),
		DappCanisters: &api.DappCanisters{
			Canisters: append([]api.Canister{}, proposal.DappCanisters...),
		},
	}
	for _, id := range proposal.FallbackControllerPrincipalIDs {
		p.FallbackControllerPrincipalIDs = append(p.FallbackControllerPrincipalIDs, id.String())
	}

	if l := proposal.LedgerParameters; l != nil {
		p.TransactionFeeE8s = e8s(l.TransactionFee)
		p.TokenName = copyString(l.TokenName)
		p.TokenSymbol = copyString(l.TokenSymbol)
		p.TokenLogo = imageString(l.TokenLogo)
	}

	if g := proposal.GovernanceParameters; g != nil {
		p.ProposalRejectCostE8s = e8s(g.ProposalRejectionFee)
		p.NeuronMinimumStakeE8s = e8s(g.NeuronMinimumStake)
		p.InitialVotingPeriodSeconds = seconds(g.ProposalInitialVotingPeriod)
		p.WaitForQuietDeadlineIncreaseSeconds = seconds(g.ProposalWaitForQuietDeadlineIncrease)
		p.NeuronMinimumDissolveDelayToVoteSeconds = seconds(g.NeuronMinimumDissolveDelayToVote)
		p.MaxDissolveDelaySeconds = seconds(g.NeuronMaximumDissolveDelay)
		p.MaxDissolveDelayBonusPercentage = percent(g.NeuronMaximumDissolveDelayBonus)
		p.MaxNeuronAgeSecondsForAgeBonus = seconds(g.NeuronMaximumAgeForAgeBonus)
		p.MaxAgeBonusPercentage = percent(g.NeuronMaximumAgeBonus)
		if r := g.VotingRewardParameters; r != nil {
			p.InitialRewardRateBasisPoints = basisPoints(r.InitialRewardRate)
			p.FinalRewardRateBasisPoints = basisPoints(r.FinalRewardRate)
			p.RewardRateTransitionDurationSeconds = seconds(r.RewardRateTransitionDuration)
		}
	}

	if s := proposal.SwapParameters; s != nil {
		p.MinParticipants = copyUint64(s.MinimumParticipants)
		p.MinDirectParticipationICPE8s = e8s(s.MinimumDirectParticipationICP)
		p.MaxDirectParticipationICPE8s = e8s(s.MaximumDirectParticipationICP)
		p.MinParticipantICPE8s = e8s(s.MinimumParticipantICP)
		p.MaxParticipantICPE8s = e8s(s.MaximumParticipantICP)
		p.ConfirmationText = copyString(s.ConfirmationText)
		if s.RestrictedCountries != nil {
			p.RestrictedCountries = &api.Countries{ISOCodes: append([]string{}, s.RestrictedCountries.ISOCodes...)}
		}
		if b := s.NeuronBasketConstructionParameters; b != nil && b.Count != nil && b.DissolveDelayInterval != nil {
			p.NeuronBasketConstructionParameters = &api.NeuronBasketConstructionParameters{
				Count:                        *b.Count,
				DissolveDelayIntervalSeconds: b.DissolveDelayInterval.Seconds,
			}
		}
		p.NeuronsFundParticipation = copyBool(s.NeuronsFundParticipation)
	}

	if d := proposal.InitialTokenDistribution; d != nil {
		p.InitialTokenDistribution = convertFractionalDistribution(d)
	}

	return validation.ValidatePreExecution(p)
}

func convertFractionalDistribution(d *api.InitialTokenDistribution) *api.FractionalDeveloperVotingPower {
	f := &api.FractionalDeveloperVotingPower{
		AirdropDistribution: &api.AirdropDistribution{
			AirdropNeurons: []api.InitNeuronDistribution{},
		},
	}

	if dev := d.DeveloperDistribution; dev != nil {
		neurons := make([]api.InitNeuronDistribution, 0, len(dev.DeveloperNeurons))
		for _, n := range dev.DeveloperNeurons {
			neuron := api.InitNeuronDistribution{
				Controller:           n.Controller,
				VestingPeriodSeconds: seconds(n.VestingPeriod),
			}
			if n.Stake != nil {
				neuron.StakeE8s = n.Stake.E8s
			}
			if n.Memo != nil {
				neuron.Memo = *n.Memo
			}
			if n.DissolveDelay != nil {
				neuron.DissolveDelaySeconds = n.DissolveDelay.Seconds
			}
			neurons = append(neurons, neuron)
		}
		f.DeveloperDistribution = &api.FractionalDeveloperDistribution{DeveloperNeurons: neurons}
	}
	if t := d.TreasuryDistribution; t != nil && t.Total != nil {
		f.TreasuryDistribution = &api.FractionalTreasuryDistribution{TotalE8s: t.Total.E8s}
	}
	if s := d.SwapDistribution; s != nil && s.Total != nil {
		f.SwapDistribution = &api.FractionalSwapDistribution{
			TotalE8s:             s.Total.E8s,
			InitialSwapAmountE8s: s.Total.E8s,
		}
	}
	return f
}

func copyUint64(v *uint64) *uint64 {
	if v == nil {
		return nil
	}
	return uint64Ptr(*v)
}

func e8s(t *api.Tokens) *uint64 {
	if t == nil {
		return nil
	}
	return uint64Ptr(t.E8s)
}

func seconds(d *api.Duration) *uint64 {
	if d == nil {
		return nil
	}
	return uint64Ptr(d.Seconds)
}

func basisPoints(p *api.Percentage) *uint64 {
	if p == nil {
		return nil
	}
	return uint64Ptr(p.BasisPoints)
}

// percent truncates a percentage to whole percents.
func percent(p *api.Percentage) *uint64 {
	if p == nil {
		return nil
	}
	return uint64Ptr(p.BasisPoints / basisPointsPerPercent)
}

func imageString(img *api.Image) *string {
	if img == nil {
		return nil
	}
	return stringPtr(img.Base64Encoding)
}
