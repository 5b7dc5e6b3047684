package convert

import (
	"fmt"

	"github.com/oasisprotocol/sns-launch/common/quantity"
	"github.com/oasisprotocol/sns-launch/humanize"
	"github.com/oasisprotocol/sns-launch/sns/api"
	"github.com/oasisprotocol/sns-launch/sns/config"
)

// convertDistribution converts the initial token distribution and checks
// that the developer stakes and the initial balances add up to the declared
// total.
func convertDistribution(dist *config.Distribution, resolver *config.AliasResolver, d *defects) *api.InitialTokenDistribution {
	neurons := make([]api.NeuronDistribution, 0, len(dist.Neurons))
	for _, n := range dist.Neurons {
		controller, err := resolver.Resolve(n.Principal)
		if err != nil {
			d.add(fmt.Sprintf("Unable to parse PrincipalId in distribution.neurons (%q). err: %v", n.Principal, err))
			continue
		}
		neurons = append(neurons, api.NeuronDistribution{
			Controller:    &controller,
			DissolveDelay: api.NewDuration(n.DissolveDelay.Seconds()),
			Memo:          uint64Ptr(n.Memo),
			Stake:         api.NewTokens(n.Stake.E8s()),
			VestingPeriod: api.NewDuration(n.VestingPeriod.Seconds()),
		})
	}

	// Every stake counts, including the ones of neurons that failed to
	// convert.
	amounts := []uint64{
		dist.InitialBalances.Governance.E8s(),
		dist.InitialBalances.Swap.E8s(),
	}
	for _, n := range dist.Neurons {
		amounts = append(amounts, n.Stake.E8s())
	}
	observed := quantity.Sum(amounts...)

	if observed.Cmp(quantity.NewFromUint64(dist.Total.E8s())) != 0 {
		d.add(fmt.Sprintf("The total amount of SNS tokens was expected to be %s, but was instead %s.",
			dist.Total,
			formatTokens(observed),
		))
	}

	return &api.InitialTokenDistribution{
		DeveloperDistribution: &api.DeveloperDistribution{DeveloperNeurons: neurons},
		TreasuryDistribution:  &api.TreasuryDistribution{Total: api.NewTokens(dist.InitialBalances.Governance.E8s())},
		SwapDistribution:      &api.SwapDistribution{Total: api.NewTokens(dist.InitialBalances.Swap.E8s())},
	}
}

// formatTokens renders an amount that may not fit in 64 bits.
func formatTokens(q *quantity.Quantity) string {
	e8s, err := q.ToUint64()
	if err != nil {
		return q.String() + " e8s"
	}
	return humanize.Tokens(e8s).String()
}
