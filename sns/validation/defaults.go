package validation

import (
	"fmt"
	"sync"

	"github.com/oasisprotocol/sns-launch/common/errors"
	"github.com/oasisprotocol/sns-launch/humanize"
	"github.com/oasisprotocol/sns-launch/sns/api"
)

const (
	oneDaySeconds   = humanize.SecondsPerDay
	oneYearSeconds  = humanize.SecondsPerYear
	oneMonthSeconds = oneYearSeconds / 12
)

// Protocol bounds of the nervous system parameters.
const (
	InitialRewardRateBasisPointsCeiling        uint64 = 10_000
	InitialVotingPeriodSecondsFloor            uint64 = oneDaySeconds
	InitialVotingPeriodSecondsCeiling          uint64 = 30 * oneDaySeconds
	WaitForQuietDeadlineIncreaseSecondsFloor   uint64 = 1
	WaitForQuietDeadlineIncreaseSecondsCeiling uint64 = 30 * oneDaySeconds
	MaxDissolveDelayBonusPercentageCeiling     uint64 = 900
	MaxAgeBonusPercentageCeiling               uint64 = 400
)

// ErrInvalidDefaults is the error returned when the default nervous system
// parameters are incomplete or inconsistent.
var ErrInvalidDefaults = errors.New(ModuleName, 2, "validation: invalid default nervous system parameters")

// NervousSystemParameters are the governance parameters of a new SNS that
// the launch payload either sets or inherits from the defaults.
type NervousSystemParameters struct {
	RejectCostE8s                           *uint64
	NeuronMinimumStakeE8s                   *uint64
	TransactionFeeE8s                       *uint64
	InitialVotingPeriodSeconds              *uint64
	WaitForQuietDeadlineIncreaseSeconds     *uint64
	NeuronMinimumDissolveDelayToVoteSeconds *uint64
	MaxDissolveDelaySeconds                 *uint64
	MaxNeuronAgeForAgeBonus                 *uint64
	MaxDissolveDelayBonusPercentage         *uint64
	MaxAgeBonusPercentage                   *uint64

	VotingRewardsParameters *VotingRewardsParameters
}

// VotingRewardsParameters are the voting reward parameters of a new SNS.
type VotingRewardsParameters struct {
	RoundDurationSeconds                *uint64
	RewardRateTransitionDurationSeconds *uint64
	InitialRewardRateBasisPoints        *uint64
	FinalRewardRateBasisPoints          *uint64
}

func u64(v uint64) *uint64 {
	return &v
}

// DefaultNervousSystemParameters returns the default nervous system
// parameters.
func DefaultNervousSystemParameters() NervousSystemParameters {
	return NervousSystemParameters{
		RejectCostE8s:                           u64(api.E8),
		NeuronMinimumStakeE8s:                   u64(api.E8),
		TransactionFeeE8s:                       u64(10_000),
		InitialVotingPeriodSeconds:              u64(4 * oneDaySeconds),
		WaitForQuietDeadlineIncreaseSeconds:     u64(oneDaySeconds),
		NeuronMinimumDissolveDelayToVoteSeconds: u64(6 * oneMonthSeconds),
		MaxDissolveDelaySeconds:                 u64(8 * oneYearSeconds),
		MaxNeuronAgeForAgeBonus:                 u64(4 * oneYearSeconds),
		MaxDissolveDelayBonusPercentage:         u64(100),
		MaxAgeBonusPercentage:                   u64(25),
		VotingRewardsParameters: &VotingRewardsParameters{
			RoundDurationSeconds:                u64(oneDaySeconds),
			RewardRateTransitionDurationSeconds: u64(0),
			InitialRewardRateBasisPoints:        u64(0),
			FinalRewardRateBasisPoints:          u64(0),
		},
	}
}

// SanityCheck performs a sanity check on the nervous system parameters.
func (p *NervousSystemParameters) SanityCheck() error {
	for _, f := range []struct {
		name  string
		value *uint64
	}{
		{"reject_cost_e8s", p.RejectCostE8s},
		{"neuron_minimum_stake_e8s", p.NeuronMinimumStakeE8s},
		{"transaction_fee_e8s", p.TransactionFeeE8s},
		{"initial_voting_period_seconds", p.InitialVotingPeriodSeconds},
		{"wait_for_quiet_deadline_increase_seconds", p.WaitForQuietDeadlineIncreaseSeconds},
		{"neuron_minimum_dissolve_delay_to_vote_seconds", p.NeuronMinimumDissolveDelayToVoteSeconds},
		{"max_dissolve_delay_seconds", p.MaxDissolveDelaySeconds},
		{"max_neuron_age_for_age_bonus", p.MaxNeuronAgeForAgeBonus},
		{"max_dissolve_delay_bonus_percentage", p.MaxDissolveDelayBonusPercentage},
		{"max_age_bonus_percentage", p.MaxAgeBonusPercentage},
	} {
		if f.value == nil {
			return fmt.Errorf("%s is not set", f.name)
		}
	}
	if p.VotingRewardsParameters == nil {
		return fmt.Errorf("voting_rewards_parameters is not set")
	}

	if *p.NeuronMinimumDissolveDelayToVoteSeconds > *p.MaxDissolveDelaySeconds {
		return fmt.Errorf("neuron_minimum_dissolve_delay_to_vote_seconds (%d) exceeds max_dissolve_delay_seconds (%d)",
			*p.NeuronMinimumDissolveDelayToVoteSeconds,
			*p.MaxDissolveDelaySeconds,
		)
	}
	if *p.NeuronMinimumStakeE8s <= *p.TransactionFeeE8s {
		return fmt.Errorf("neuron_minimum_stake_e8s (%d) must exceed transaction_fee_e8s (%d)",
			*p.NeuronMinimumStakeE8s,
			*p.TransactionFeeE8s,
		)
	}
	if v := *p.InitialVotingPeriodSeconds; v < InitialVotingPeriodSecondsFloor || v > InitialVotingPeriodSecondsCeiling {
		return fmt.Errorf("initial_voting_period_seconds (%d) is out of bounds", v)
	}
	if *p.MaxDissolveDelayBonusPercentage > MaxDissolveDelayBonusPercentageCeiling {
		return fmt.Errorf("max_dissolve_delay_bonus_percentage (%d) is out of bounds", *p.MaxDissolveDelayBonusPercentage)
	}
	if *p.MaxAgeBonusPercentage > MaxAgeBonusPercentageCeiling {
		return fmt.Errorf("max_age_bonus_percentage (%d) is out of bounds", *p.MaxAgeBonusPercentage)
	}
	return nil
}

var (
	defaultsOnce sync.Once
	defaultsErr  error
)

// SanityCheckDefaults checks the default nervous system parameters once and
// returns ErrInvalidDefaults if they are unusable.
//
// Commands must call this before validating any payload, so that a broken
// default is reported as such instead of as a payload defect.
func SanityCheckDefaults() error {
	defaultsOnce.Do(func() {
		defaults := DefaultNervousSystemParameters()
		if err := defaults.SanityCheck(); err != nil {
			defaultsErr = errors.WithContext(ErrInvalidDefaults, err.Error())
		}
	})
	return defaultsErr
}

// mergedParameters returns the nervous system parameters of the SNS that
// the payload would create. Fields unset in the payload are inherited from
// the defaults.
func mergedParameters(p *api.InitPayload) NervousSystemParameters {
	params := DefaultNervousSystemParameters()

	override := func(dst **uint64, src *uint64) {
		if src != nil {
			*dst = u64(*src)
		}
	}
	override(&params.TransactionFeeE8s, p.TransactionFeeE8s)
	override(&params.RejectCostE8s, p.ProposalRejectCostE8s)
	override(&params.NeuronMinimumStakeE8s, p.NeuronMinimumStakeE8s)
	override(&params.NeuronMinimumDissolveDelayToVoteSeconds, p.NeuronMinimumDissolveDelayToVoteSeconds)
	override(&params.MaxDissolveDelaySeconds, p.MaxDissolveDelaySeconds)
	override(&params.MaxNeuronAgeForAgeBonus, p.MaxNeuronAgeSecondsForAgeBonus)
	override(&params.MaxDissolveDelayBonusPercentage, p.MaxDissolveDelayBonusPercentage)
	override(&params.MaxAgeBonusPercentage, p.MaxAgeBonusPercentage)
	override(&params.InitialVotingPeriodSeconds, p.InitialVotingPeriodSeconds)
	override(&params.WaitForQuietDeadlineIncreaseSeconds, p.WaitForQuietDeadlineIncreaseSeconds)

	if params.VotingRewardsParameters != nil {
		rewards := *params.VotingRewardsParameters
		override(&rewards.RewardRateTransitionDurationSeconds, p.RewardRateTransitionDurationSeconds)
		override(&rewards.InitialRewardRateBasisPoints, p.InitialRewardRateBasisPoints)
		override(&rewards.FinalRewardRateBasisPoints, p.FinalRewardRateBasisPoints)
		params.VotingRewardsParameters = &rewards
	}

	return params
}
