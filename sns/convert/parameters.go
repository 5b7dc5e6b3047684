package convert

import (
	"github.com/oasisprotocol/sns-launch/common/quantity"
	"github.com/oasisprotocol/sns-launch/humanize"
	"github.com/oasisprotocol/sns-launch/sns/api"
	"github.com/oasisprotocol/sns-launch/sns/config"
)

func tokensPtr(t *humanize.Tokens) *api.Tokens {
	if t == nil {
		return nil
	}
	return api.NewTokens(t.E8s())
}

// directParticipation returns the explicit direct participation bound, or
// derives it from the legacy bound by taking away the Neurons' Fund
// investment. The derived bound is left unset when the investment exceeds
// the legacy bound.
func directParticipation(explicit, legacy, investment *humanize.Tokens) *api.Tokens {
	if explicit != nil {
		return api.NewTokens(explicit.E8s())
	}
	if legacy == nil {
		return nil
	}

	direct := quantity.NewFromUint64(legacy.E8s())
	if investment != nil {
		if err := direct.Sub(quantity.NewFromUint64(investment.E8s())); err != nil {
			return nil
		}
	}
	e8s, err := direct.ToUint64()
	if err != nil {
		return nil
	}
	return api.NewTokens(e8s)
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	return stringPtr(*s)
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func convertSwap(swap *config.Swap) *api.SwapParameters {
	params := &api.SwapParameters{
		MinimumParticipants: uint64Ptr(swap.MinimumParticipants),

		MinimumICP: tokensPtr(swap.MinimumICP),
		MaximumICP: tokensPtr(swap.MaximumICP),

		MinimumDirectParticipationICP: directParticipation(swap.MinimumDirectParticipationICP, swap.MinimumICP, swap.NeuronsFundInvestmentICP),
		MaximumDirectParticipationICP: directParticipation(swap.MaximumDirectParticipationICP, swap.MaximumICP, swap.NeuronsFundInvestmentICP),

		MinimumParticipantICP: api.NewTokens(swap.MinimumParticipantICP.E8s()),
		MaximumParticipantICP: api.NewTokens(swap.MaximumParticipantICP.E8s()),

		NeuronBasketConstructionParameters: &api.ProposalNeuronBasketConstructionParameters{
			Count:                 uint64Ptr(swap.VestingSchedule.Events),
			DissolveDelayInterval: api.NewDuration(swap.VestingSchedule.Interval.Seconds()),
		},

		ConfirmationText: copyString(swap.ConfirmationText),

		Duration: api.NewDuration(swap.Duration.Seconds()),

		NeuronsFundInvestmentICP: tokensPtr(swap.NeuronsFundInvestmentICP),
		NeuronsFundParticipation: copyBool(swap.NeuronsFundParticipation),
	}
	if swap.RestrictedCountries != nil {
		params.RestrictedCountries = &api.Countries{ISOCodes: append([]string{}, swap.RestrictedCountries...)}
	}
	if swap.StartTime != nil {
		params.StartTime = &api.GlobalTimeOfDay{SecondsAfterUTCMidnight: swap.StartTime.SecondsAfterMidnight()}
	}
	return params
}

func convertToken(token *config.Token) *api.LedgerParameters {
	return &api.LedgerParameters{
		TransactionFee: api.NewTokens(token.TransactionFee.E8s()),
		TokenName:      stringPtr(token.Name),
		TokenSymbol:    stringPtr(token.Symbol),
		TokenLogo:      &api.Image{Base64Encoding: token.LogoB64},
	}
}

func convertGovernance(proposals *config.Proposals, neurons *config.Neurons, voting *config.Voting) *api.GovernanceParameters {
	bonuses := voting.MaximumVotingPowerBonuses
	return &api.GovernanceParameters{
		ProposalRejectionFee:                 api.NewTokens(proposals.RejectionFee.E8s()),
		ProposalInitialVotingPeriod:          api.NewDuration(proposals.InitialVotingPeriod.Seconds()),
		ProposalWaitForQuietDeadlineIncrease: api.NewDuration(proposals.MaximumWaitForQuietDeadlineExtension.Seconds()),

		NeuronMinimumStake: api.NewTokens(neurons.MinimumCreationStake.E8s()),

		NeuronMinimumDissolveDelayToVote: api.NewDuration(voting.MinimumDissolveDelay.Seconds()),
		NeuronMaximumDissolveDelay:       api.NewDuration(bonuses.DissolveDelay.Duration.Seconds()),
		NeuronMaximumDissolveDelayBonus:  api.NewPercentage(bonuses.DissolveDelay.Bonus.BasisPoints()),
		NeuronMaximumAgeForAgeBonus:      api.NewDuration(bonuses.Age.Duration.Seconds()),
		NeuronMaximumAgeBonus:            api.NewPercentage(bonuses.Age.Bonus.BasisPoints()),

		VotingRewardParameters: &api.VotingRewardParameters{
			InitialRewardRate:            api.NewPercentage(voting.RewardRate.Initial.BasisPoints()),
			FinalRewardRate:              api.NewPercentage(voting.RewardRate.Final.BasisPoints()),
			RewardRateTransitionDuration: api.NewDuration(voting.RewardRate.TransitionDuration.Seconds()),
		},
	}
}
