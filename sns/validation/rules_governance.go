package validation

import (
	"github.com/oasisprotocol/sns-launch/sns/api"
)

func validateTransactionFee(p *api.InitPayload) error {
	if p.TransactionFeeE8s == nil {
		return errMissingDot("transaction_fee_e8s")
	}
	return nil
}

func validateProposalRejectCost(p *api.InitPayload) error {
	if p.ProposalRejectCostE8s == nil {
		return errMissingDot("proposal_reject_cost_e8s")
	}
	return nil
}

func validateMinimumDissolveDelayToVote(p *api.InitPayload) error {
	if p.NeuronMinimumDissolveDelayToVoteSeconds == nil {
		return errMissing("neuron-minimum-dissolve-delay-to-vote-seconds")
	}

	// The maximum dissolve delay is not configurable here, the default
	// applies.
	maxDissolveDelay := DefaultNervousSystemParameters().MaxDissolveDelaySeconds
	if maxDissolveDelay == nil {
		return errMissing("default max_dissolve_delay_seconds")
	}
	if v := *p.NeuronMinimumDissolveDelayToVoteSeconds; v > *maxDissolveDelay {
		return &BoundError{
			Field:  "neuron_minimum_dissolve_delay_to_vote_seconds",
			Value:  v,
			Bound:  *maxDissolveDelay,
			format: "The minimum dissolve delay to vote (%[2]d) cannot be greater than the max dissolve delay (%[3]d)",
		}
	}
	return nil
}

func validateInitialRewardRate(p *api.InitPayload) error {
	if p.InitialRewardRateBasisPoints == nil {
		return errMissing("initial_reward_rate_basis_points")
	}
	if v := *p.InitialRewardRateBasisPoints; v > InitialRewardRateBasisPointsCeiling {
		return &BoundError{
			Field:  "initial_reward_rate_basis_points",
			Value:  v,
			Bound:  InitialRewardRateBasisPointsCeiling,
			format: "Error: %[1]s must be less than or equal to %[3]d",
		}
	}
	return nil
}

func validateFinalRewardRate(p *api.InitPayload) error {
	if p.InitialRewardRateBasisPoints == nil {
		return errMissing("initial_reward_rate_basis_points")
	}
	if p.FinalRewardRateBasisPoints == nil {
		return errMissing("final_reward_rate_basis_points")
	}
	if final, initial := *p.FinalRewardRateBasisPoints, *p.InitialRewardRateBasisPoints; final > initial {
		return &BoundError{
			Field:  "final_reward_rate_basis_points",
			Value:  final,
			Bound:  initial,
			format: "Error: %[1]s (%[2]d) must be less than or equal to initial_reward_rate_basis_points (%[3]d)",
		}
	}
	return nil
}

func validateRewardRateTransitionDuration(p *api.InitPayload) error {
	if p.RewardRateTransitionDurationSeconds == nil {
		return errMissing("reward_rate_transition_duration_seconds")
	}
	return nil
}

func validateMaxDissolveDelay(p *api.InitPayload) error {
	if p.MaxDissolveDelaySeconds == nil {
		return errMissing("max_dissolve_delay_seconds")
	}
	return nil
}

func validateMaxNeuronAgeForAgeBonus(p *api.InitPayload) error {
	if p.MaxNeuronAgeSecondsForAgeBonus == nil {
		return errMissing("max_neuron_age_seconds_for_age_bonus")
	}
	return nil
}

func validateMaxDissolveDelayBonus(p *api.InitPayload) error {
	return validateCeiling("max_dissolve_delay_bonus_percentage", p.MaxDissolveDelayBonusPercentage, MaxDissolveDelayBonusPercentageCeiling)
}

func validateMaxAgeBonus(p *api.InitPayload) error {
	return validateCeiling("max_age_bonus_percentage", p.MaxAgeBonusPercentage, MaxAgeBonusPercentageCeiling)
}

func validateCeiling(field string, value *uint64, ceiling uint64) error {
	if value == nil {
		return errMissing(field)
	}
	if *value > ceiling {
		return &BoundError{Field: field, Value: *value, Bound: ceiling, format: "%[1]s must be less than %[3]d"}
	}
	return nil
}

func validateInitialVotingPeriod(p *api.InitPayload) error {
	if p.InitialVotingPeriodSeconds == nil {
		return errMissing("initial_voting_period_seconds")
	}

	const field = "NervousSystemParameters.initial_voting_period_seconds"
	switch v := *p.InitialVotingPeriodSeconds; {
	case v < InitialVotingPeriodSecondsFloor:
		return &BoundError{Field: field, Value: v, Bound: InitialVotingPeriodSecondsFloor, format: "%[1]s must be greater than %[3]d"}
	case v > InitialVotingPeriodSecondsCeiling:
		return &BoundError{Field: field, Value: v, Bound: InitialVotingPeriodSecondsCeiling, format: "%[1]s must be less than %[3]d"}
	}
	return nil
}

// validateWaitForQuietDeadlineIncrease also rejects extensions longer than
// half of the initial voting period. Past that point any vote flip,
// including the first yes vote, always extends the deadline.
func validateWaitForQuietDeadlineIncrease(p *api.InitPayload) error {
	if p.WaitForQuietDeadlineIncreaseSeconds == nil {
		return errMissing("wait_for_quiet_deadline_increase_seconds")
	}
	if p.InitialVotingPeriodSeconds == nil {
		return errMissing("initial_voting_period_seconds")
	}

	const field = "NervousSystemParameters.wait_for_quiet_deadline_increase_seconds"
	v, votingPeriod := *p.WaitForQuietDeadlineIncreaseSeconds, *p.InitialVotingPeriodSeconds
	switch {
	case v < WaitForQuietDeadlineIncreaseSecondsFloor:
		return &BoundError{Field: field, Value: v, Bound: WaitForQuietDeadlineIncreaseSecondsFloor, format: "%[1]s must be greater than or equal to %[3]d"}
	case v > WaitForQuietDeadlineIncreaseSecondsCeiling:
		return &BoundError{Field: field, Value: v, Bound: WaitForQuietDeadlineIncreaseSecondsCeiling, format: "%[1]s must be less than or equal to %[3]d"}
	case v > votingPeriod/2:
		return &BoundError{
			Field:  field,
			Value:  v,
			Bound:  votingPeriod / 2,
			format: "%[1]s is %[2]d, but must be less than or equal to half the initial voting period, %[3]d",
		}
	}
	return nil
}
