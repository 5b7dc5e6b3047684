package validation

import (
	"math"
	"math/bits"

	"github.com/oasisprotocol/sns-launch/common/quantity"
	"github.com/oasisprotocol/sns-launch/sns/api"
)

// MaxDirectICPContributionToSwap is the largest amount that can be
// contributed directly to a swap.
const MaxDirectICPContributionToSwap uint64 = 1_000_000_000 * api.E8

// validateParticipationConstraints checks that the swap participation
// parameters can be satisfied:
//
//  1. every participation parameter is set,
//  2. the minimums are positive and min_participants fits a uint32,
//  3. each minimum is at most its maximum,
//  4. a single participant cannot exceed the total direct participation,
//  5. the total direct participation is capped,
//  6. min_participants participants contributing the minimum fit the cap,
//  7. a neuron is worth more than the fee to create it,
//  8. the smallest participation buys a full neuron basket.
func validateParticipationConstraints(p *api.InitPayload) error {
	// (1)
	switch {
	case p.MinDirectParticipationICPE8s == nil:
		return errMissing("min_direct_participation_icp_e8s")
	case p.MaxDirectParticipationICPE8s == nil:
		return errMissing("max_direct_participation_icp_e8s")
	case p.MinParticipantICPE8s == nil:
		return errMissing("min_participant_icp_e8s")
	case p.MaxParticipantICPE8s == nil:
		return errMissing("max_participant_icp_e8s")
	case p.MinParticipants == nil:
		return errMissing("min_participants")
	case p.SwapDistribution() == nil:
		return errMissing("the SwapDistribution")
	case p.NeuronBasketConstructionParameters == nil:
		return errMissing("neuron_basket_construction_parameters")
	case p.NeuronMinimumStakeE8s == nil:
		return errMissing("neuron_minimum_stake_e8s")
	case p.TransactionFeeE8s == nil:
		return errMissing("transaction_fee_e8s")
	}

	var (
		minDirect         = *p.MinDirectParticipationICPE8s
		maxDirect         = *p.MaxDirectParticipationICPE8s
		minParticipant    = *p.MinParticipantICPE8s
		maxParticipant    = *p.MaxParticipantICPE8s
		minParticipants   = *p.MinParticipants
		initialSwapAmount = p.SwapDistribution().InitialSwapAmountE8s
		basketCount       = p.NeuronBasketConstructionParameters.Count
		minStake          = *p.NeuronMinimumStakeE8s
		fee               = *p.TransactionFeeE8s
	)

	// (2)
	switch {
	case minDirect == 0:
		return &ParticipationError{Invariant: 2, format: "Error: min_direct_participation_icp_e8s must be > 0"}
	case minParticipant == 0:
		return &ParticipationError{Invariant: 2, format: "Error: min_participant_icp_e8s must be > 0"}
	case minParticipants == 0:
		return &ParticipationError{Invariant: 2, format: "Error: min_participants must be > 0"}
	case minParticipants > math.MaxUint32:
		return &ParticipationError{
			Invariant: 2,
			Values:    []uint64{math.MaxUint32},
			format:    "Error: min_participants cannot be greater than %d",
		}
	}

	// (3)
	if maxDirect < minDirect {
		return &ParticipationError{
			Invariant: 3,
			Values:    []uint64{maxDirect, minDirect},
			format:    "Error: max_direct_participation_icp_e8s (%d) must be >= min_direct_participation_icp_e8s (%d)",
		}
	}
	if maxParticipant < minParticipant {
		return &ParticipationError{
			Invariant: 3,
			Values:    []uint64{maxParticipant, minParticipant},
			format:    "Error: max_participant_icp_e8s (%d) must be >= min_participant_icp_e8s (%d)",
		}
	}

	// (4)
	if maxParticipant > maxDirect {
		return &ParticipationError{
			Invariant: 4,
			Values:    []uint64{maxParticipant, maxDirect},
			format:    "Error: max_participant_icp_e8s (%d) must be <= max_direct_participation_icp_e8s (%d)",
		}
	}

	// (5)
	if maxDirect > MaxDirectICPContributionToSwap {
		return &ParticipationError{
			Invariant: 5,
			Values:    []uint64{maxDirect, MaxDirectICPContributionToSwap},
			format:    "Error: max_direct_participation_icp_e8s (%d) can be at most %d ICP E8s",
		}
	}

	// (6)
	if maxDirect < saturatingMul(minParticipants, minParticipant) {
		return &ParticipationError{
			Invariant: 6,
			Values:    []uint64{maxDirect, minParticipants, minParticipant},
			format:    "Error: max_direct_participation_icp_e8s (%d) must be >= min_participants (%d) * min_participant_icp_e8s (%d)",
		}
	}

	// (7)
	if minStake <= fee {
		return &ParticipationError{
			Invariant: 7,
			Values:    []uint64{minStake, fee},
			format:    "Error: neuron_minimum_stake_e8s=%d is too small. It needs to be greater than the transaction fee (%d e8s)",
		}
	}

	// (8)
	if !basketAffordable(minParticipant, initialSwapAmount, maxDirect, basketCount, minStake, fee) {
		return &ParticipationError{
			Invariant: 8,
			Values:    []uint64{minParticipant, basketCount, minStake, fee},
			format: "Error: min_participant_icp_e8s=%d is too small. It needs to be large enough to ensure " +
				"that participants will end up with enough SNS tokens to form %d SNS neurons, each of " +
				"which require at least %d SNS e8s, plus %d e8s in transaction fees. More precisely, " +
				"the following inequality must hold: min_participant_icp_e8s >= neuron_basket_count " +
				"* (neuron_minimum_stake_e8s + transaction_fee_e8s) * max_direct_participation_icp_e8s " +
				"/ initial_swap_amount_e8s",
		}
	}
	return nil
}

func saturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// basketAffordable reports whether the tokens bought by the smallest
// participation cover a basket of count neurons of the minimum stake plus
// the fee of creating each one. The caller guarantees maxDirect > 0.
func basketAffordable(minParticipant, initialSwapAmount, maxDirect, count, minStake, fee uint64) bool {
	bought := quantity.NewFromUint64(minParticipant)
	if err := bought.Mul(quantity.NewFromUint64(initialSwapAmount)); err != nil {
		return false
	}
	if err := bought.Quo(quantity.NewFromUint64(maxDirect)); err != nil {
		return false
	}

	required := quantity.Sum(minStake, fee)
	if err := required.Mul(quantity.NewFromUint64(count)); err != nil {
		return false
	}
	return bought.Cmp(required) >= 0
}
