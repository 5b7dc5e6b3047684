package validation

import (
	"fmt"
	"sort"

	"github.com/oasisprotocol/sns-launch/common/principal"
	"github.com/oasisprotocol/sns-launch/common/quantity"
	"github.com/oasisprotocol/sns-launch/sns/api"
)

const (
	// MaxDeveloperNeurons is the maximum number of developer neurons.
	MaxDeveloperNeurons = 100
	// MaxAirdropNeurons is the maximum number of airdrop neurons.
	MaxAirdropNeurons = 1000

	// NeuronBasketMemoRangeStart and SaleNeuronMemoRangeEnd delimit the memos
	// reserved for the neurons created by the swap. Distributed neurons must
	// not use them.
	NeuronBasketMemoRangeStart uint64 = 1_000_000
	SaleNeuronMemoRangeEnd     uint64 = 10_000_000

	// MaxFallbackControllers is the maximum number of fallback controllers.
	MaxFallbackControllers = 15
	// MaxDappCanisters is the maximum number of dapp canisters.
	MaxDappCanisters = 25
)

type neuronKey struct {
	controller principal.Principal
	memo       uint64
}

func (k neuronKey) less(other neuronKey) bool {
	if k.controller != other.controller {
		return k.controller.Less(other.controller)
	}
	return k.memo < other.memo
}

// neuronKeys projects neurons to their sorted, deduplicated (controller,
// memo) keys. Neurons without a controller must have been rejected already.
func neuronKeys(neurons []api.InitNeuronDistribution) []neuronKey {
	set := make(map[neuronKey]struct{}, len(neurons))
	for _, n := range neurons {
		set[neuronKey{controller: *n.Controller, memo: n.Memo}] = struct{}{}
	}

	keys := make([]neuronKey, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return keys
}

func controllerString(c *principal.Principal) string {
	if c == nil {
		return "(unset)"
	}
	return c.String()
}

type neuronList struct {
	// name is the neuron list name ("developer" or "airdrop").
	name string
	// title is the capitalized list name.
	title string
	// duplicateVerb is how duplicates are reported for this list.
	duplicateVerb string
	limit         int
	neurons       []api.InitNeuronDistribution
}

func (l *neuronList) validate() ([]neuronKey, error) {
	if len(l.neurons) > l.limit {
		return nil, &DistributionError{
			Distribution: l.name,
			Count:        len(l.neurons),
			Limit:        uint64(l.limit),
			format:       "Error: The number of %[1]s neurons must be less than %[3]d. Current count is %[2]d",
		}
	}

	var missing int
	for _, n := range l.neurons {
		if n.Controller == nil {
			missing++
		}
	}
	if missing != 0 {
		return nil, &DistributionError{
			Distribution: l.name,
			Count:        missing,
			format:       "Error: %[2]d %[1]s_neurons are missing controllers",
		}
	}

	keys := neuronKeys(l.neurons)
	if len(keys) != len(l.neurons) {
		return nil, &UniquenessError{
			Field:  l.name + "_neurons",
			Count:  len(l.neurons),
			format: "Error: Neurons with the same controller and memo " + l.duplicateVerb + " in %[1]s",
		}
	}

	for _, k := range keys {
		if NeuronBasketMemoRangeStart <= k.memo && k.memo <= SaleNeuronMemoRangeEnd {
			return nil, &DistributionError{
				Distribution: l.title,
				Controller:   k.controller.String(),
				format: fmt.Sprintf("Error: %%[1]s neuron with controller %%[5]s cannot have a memo in the range %d to %d",
					NeuronBasketMemoRangeStart,
					SaleNeuronMemoRangeEnd,
				),
			}
		}
	}
	return keys, nil
}

// validateNeurons validates the developer and airdrop neurons against each
// other and against the nervous system parameters.
func validateNeurons(developer *api.FractionalDeveloperDistribution, airdrop *api.AirdropDistribution, params *NervousSystemParameters) error {
	if params.NeuronMinimumDissolveDelayToVoteSeconds == nil {
		return errMissing("neuron_minimum_dissolve_delay_to_vote_seconds")
	}
	if params.MaxDissolveDelaySeconds == nil {
		return errMissing("max_dissolve_delay_seconds")
	}
	minDissolveDelayToVote := *params.NeuronMinimumDissolveDelayToVoteSeconds
	maxDissolveDelay := *params.MaxDissolveDelaySeconds

	developerKeys, err := (&neuronList{
		name:          "developer",
		title:         "Developer",
		duplicateVerb: "found",
		limit:         MaxDeveloperNeurons,
		neurons:       developer.DeveloperNeurons,
	}).validate()
	if err != nil {
		return err
	}
	airdropKeys, err := (&neuronList{
		name:          "airdrop",
		title:         "Airdrop",
		duplicateVerb: "detected",
		limit:         MaxAirdropNeurons,
		neurons:       airdrop.AirdropNeurons,
	}).validate()
	if err != nil {
		return err
	}

	airdropSet := make(map[neuronKey]struct{}, len(airdropKeys))
	for _, k := range airdropKeys {
		airdropSet[k] = struct{}{}
	}
	var overlapping []string
	for _, k := range developerKeys {
		if _, ok := airdropSet[k]; ok {
			overlapping = append(overlapping, k.controller.String())
		}
	}
	if len(overlapping) > 0 {
		return &UniquenessError{
			Field:   "controllers",
			Count:   len(overlapping),
			Entries: overlapping,
			format:  "Error: The following %[1]s are present in AirdropDistribution and DeveloperDistribution: %[4]s",
		}
	}

	all := make([]api.InitNeuronDistribution, 0, len(developer.DeveloperNeurons)+len(airdrop.AirdropNeurons))
	all = append(all, developer.DeveloperNeurons...)
	all = append(all, airdrop.AirdropNeurons...)

	var canVote bool
	for _, n := range all {
		if n.DissolveDelaySeconds >= minDissolveDelayToVote {
			canVote = true
			break
		}
	}
	if !canVote {
		return &DistributionError{
			Limit: minDissolveDelayToVote,
			format: "Error: There needs to be at least one voting-eligible neuron configured. To be " +
				"eligible to vote, a neuron must have dissolve_delay_seconds of at least %[3]d",
		}
	}

	var misconfigured []string
	for _, n := range all {
		if n.DissolveDelaySeconds > maxDissolveDelay {
			misconfigured = append(misconfigured, controllerString(n.Controller))
		}
	}
	if len(misconfigured) > 0 {
		return &DistributionError{
			Count:   len(misconfigured),
			Limit:   maxDissolveDelay,
			Entries: misconfigured,
			format: "Error: The following PrincipalIds have a dissolve_delay_seconds configured greater than " +
				"the allowed max_dissolve_delay_seconds (%[3]d): %[4]s",
		}
	}
	return nil
}

func totalStake(neurons []api.InitNeuronDistribution) (uint64, error) {
	stakes := make([]uint64, 0, len(neurons))
	for _, n := range neurons {
		stakes = append(stakes, n.StakeE8s)
	}
	return quantity.Sum(stakes...).ToUint64()
}

func validateTokenDistribution(p *api.InitPayload) error {
	dist := p.InitialTokenDistribution
	if dist == nil {
		return errMissing("initial-token-distribution")
	}

	switch {
	case dist.DeveloperDistribution == nil:
		return errMissing("developer_distribution")
	case dist.TreasuryDistribution == nil:
		return errMissing("treasury_distribution")
	case dist.SwapDistribution == nil:
		return errMissing("swap_distribution")
	case dist.AirdropDistribution == nil:
		return errMissing("airdrop_distribution")
	}

	params := mergedParameters(p)
	if err := validateNeurons(dist.DeveloperDistribution, dist.AirdropDistribution, &params); err != nil {
		return err
	}

	if _, err := totalStake(dist.AirdropDistribution.AirdropNeurons); err != nil {
		return &DistributionError{
			Distribution: "airdrop",
			format:       "Error: The sum of all %[1]s allocated tokens overflowed and is an invalid distribution",
		}
	}

	swap := dist.SwapDistribution
	if swap.InitialSwapAmountE8s == 0 {
		return &BoundError{
			Field:  "swap_distribution.initial_swap_amount_e8s",
			format: "Error: %[1]s must be greater than 0",
		}
	}
	if swap.TotalE8s < swap.InitialSwapAmountE8s {
		return &BoundError{
			Field:  "swap_distribution.total_e8",
			Value:  swap.TotalE8s,
			Bound:  swap.InitialSwapAmountE8s,
			format: "Error: %[1]s must be greater than or equal to swap_distribution.initial_swap_amount_e8s",
		}
	}

	developerTotal, err := totalStake(dist.DeveloperDistribution.DeveloperNeurons)
	if err != nil {
		return &DistributionError{
			Distribution: "developer",
			format:       "Error: The sum of all %[1]s allocated tokens overflowed and is an invalid distribution",
		}
	}
	if developerTotal > swap.TotalE8s {
		return &DistributionError{
			Distribution: "developer",
			Limit:        swap.TotalE8s,
			format:       "Error: The sum of all %[1]s allocated tokens must be less than or equal to swap_distribution.total_e8s",
		}
	}
	return nil
}

func belowMinimumStake(neurons []api.InitNeuronDistribution, minimum uint64) []string {
	var entries []string
	for _, n := range neurons {
		if n.StakeE8s < minimum {
			entries = append(entries, fmt.Sprintf("(%s, %d)", controllerString(n.Controller), n.StakeE8s))
		}
	}
	return entries
}

func validateNeuronMinimumStake(p *api.InitPayload) error {
	if p.NeuronMinimumStakeE8s == nil {
		return errMissingDot("neuron_minimum_stake_e8s")
	}
	minimum := *p.NeuronMinimumStakeE8s

	dist := p.InitialTokenDistribution
	switch {
	case dist == nil:
		return errMissing("initial-token-distribution")
	case dist.DeveloperDistribution == nil:
		return errMissing("developer_distribution")
	case dist.AirdropDistribution == nil:
		return errMissing("airdrop_distribution")
	}

	for _, list := range []struct {
		name    string
		neurons []api.InitNeuronDistribution
	}{
		{"developer", dist.DeveloperDistribution.DeveloperNeurons},
		{"airdrop", dist.AirdropDistribution.AirdropNeurons},
	} {
		if entries := belowMinimumStake(list.neurons, minimum); len(entries) > 0 {
			return &DistributionError{
				Distribution: list.name,
				Count:        len(entries),
				Limit:        minimum,
				Entries:      entries,
				format:       "Error: %[2]d %[1]s neurons have a stake below the minimum stake (%[3]d e8s):  \n %[4]s",
			}
		}
	}
	return nil
}

func validateFallbackControllers(p *api.InitPayload) error {
	ids := p.FallbackControllerPrincipalIDs
	const field = "fallback_controller_principal_ids"

	switch {
	case len(ids) == 0:
		return &UniquenessError{
			Field:  field,
			format: "Error: At least one principal ID must be supplied as a fallback controller in case the initial token swap fails.",
		}
	case len(ids) > MaxFallbackControllers:
		return &UniquenessError{
			Field:  field,
			Count:  len(ids),
			Limit:  MaxFallbackControllers,
			format: "Error: The number of %[1]s must be less than %[3]d. Current count is %[2]d",
		}
	}

	var (
		invalid []string
		unique  = make(map[principal.Principal]struct{}, len(ids))
	)
	for _, raw := range ids {
		id, err := principal.Parse(raw)
		if err != nil {
			invalid = append(invalid, raw)
			continue
		}
		unique[id] = struct{}{}
	}
	if len(invalid) > 0 {
		return &UniquenessError{
			Field:   field,
			Count:   len(ids),
			Entries: renderQuotedList(invalid),
			format:  "Error: One or more %[1]s is not a valid principal id. The follow principals are invalid: %[4]s",
		}
	}
	if len(unique) != len(ids) {
		return &UniquenessError{
			Field:  field,
			Count:  len(ids),
			format: "Error: Duplicate PrincipalIds found in %[1]s",
		}
	}
	return nil
}

func validateDappCanisters(p *api.InitPayload) error {
	if p.DappCanisters == nil {
		return nil
	}
	canisters := p.DappCanisters.Canisters

	if len(canisters) > MaxDappCanisters {
		return &UniquenessError{
			Field: "dapp_canisters",
			Count: len(canisters),
			Limit: MaxDappCanisters,
			format: "Error: The number of %[1]s exceeded the maximum allowed canisters at " +
				"initialization. Count is %[2]d. Maximum allowed is %[3]d.",
		}
	}

	unique := make(map[principal.Principal]struct{}, len(canisters))
	for i, c := range canisters {
		if c.ID == nil {
			return &MissingFieldError{
				Field:  fmt.Sprintf("dapp_canisters[%d]", i),
				format: "Error: %s id field is None",
			}
		}
		unique[*c.ID] = struct{}{}
	}
	if len(unique) != len(canisters) {
		return &UniquenessError{Field: "dapp_canisters", Count: len(canisters), format: "Error: Duplicate ids found in %[1]s"}
	}
	return nil
}
