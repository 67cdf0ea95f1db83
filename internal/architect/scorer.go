package architect

import (
	"sort"

	"github.com/everstacklabs/costpilot/internal/catalog"
)

// Candidate is a catalog offering annotated with its fit for one request.
type Candidate struct {
	Offering    catalog.Offering
	Score       int
	Reasons     []string
	MonthlyCost float64
}

// Score bonuses, applied in a fixed order so the reasons list is
// deterministic.
const (
	visionBonus       = 100
	functionBonus     = 50
	largeContextBonus = 75
	affordableBonus   = 100
	premiumBonus      = 50

	largeContextThreshold = 32000
)

// ScoreAndRank filters the catalog against hard requirements, scores every
// surviving offering, and returns candidates ranked best-first.
//
// Ordering: score descending, then monthly cost ascending, then provider,
// then model name, so identical inputs always rank identically.
func ScoreAndRank(req Requirements, offerings []catalog.Offering, inputTokens, outputTokens int64) []Candidate {
	// Hard filters: a missing required capability excludes the offering
	// entirely, it is never scored.
	var survivors []catalog.Offering
	for _, o := range offerings {
		if req.NeedsVision && !o.SupportsVision {
			continue
		}
		if req.NeedsFunctionCalling && !o.SupportsFunctionCalling {
			continue
		}
		survivors = append(survivors, o)
	}
	if len(survivors) == 0 {
		return nil
	}

	affordable := cheapestQuartile(survivors)
	medianInput := medianInputCost(survivors)

	candidates := make([]Candidate, 0, len(survivors))
	for _, o := range survivors {
		c := Candidate{
			Offering:    o,
			MonthlyCost: MonthlyCost(o, inputTokens, outputTokens),
		}

		if req.NeedsVision && o.SupportsVision {
			c.Score += visionBonus
			c.Reasons = append(c.Reasons, "Supports vision")
		}
		if req.NeedsFunctionCalling && o.SupportsFunctionCalling {
			c.Score += functionBonus
			c.Reasons = append(c.Reasons, "Supports function calling")
		}
		if req.NeedsLargeContext && o.ContextWindow > largeContextThreshold {
			c.Score += largeContextBonus
			c.Reasons = append(c.Reasons, "Large context window")
		}
		if req.BudgetPriority == LevelHigh && affordable[o.Key()] {
			c.Score += affordableBonus
			c.Reasons = append(c.Reasons, "Very affordable")
		}
		if req.QualityRequirement == LevelHigh && o.InputCostPer1M > medianInput {
			c.Score += premiumBonus
			c.Reasons = append(c.Reasons, "Premium quality tier")
		}

		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.MonthlyCost != b.MonthlyCost {
			return a.MonthlyCost < b.MonthlyCost
		}
		if a.Offering.Provider != b.Offering.Provider {
			return a.Offering.Provider < b.Offering.Provider
		}
		return a.Offering.Name < b.Offering.Name
	})

	return candidates
}

// cheapestQuartile returns the keys of the cheapest ceil(n/4) survivors by
// combined per-1M cost. A catalog of one to three survivors still awards the
// single cheapest offering.
func cheapestQuartile(survivors []catalog.Offering) map[string]bool {
	byCost := make([]catalog.Offering, len(survivors))
	copy(byCost, survivors)
	sort.Slice(byCost, func(i, j int) bool {
		a, b := byCost[i], byCost[j]
		if a.CombinedCostPer1M() != b.CombinedCostPer1M() {
			return a.CombinedCostPer1M() < b.CombinedCostPer1M()
		}
		if a.Provider != b.Provider {
			return a.Provider < b.Provider
		}
		return a.Name < b.Name
	})

	size := (len(byCost) + 3) / 4
	members := make(map[string]bool, size)
	for _, o := range byCost[:size] {
		members[o.Key()] = true
	}
	return members
}

// medianInputCost computes the median input cost per 1M tokens across the
// survivors. Even-sized sets use the mean of the two middle values.
func medianInputCost(survivors []catalog.Offering) float64 {
	costs := make([]float64, len(survivors))
	for i, o := range survivors {
		costs[i] = o.InputCostPer1M
	}
	sort.Float64s(costs)

	n := len(costs)
	if n%2 == 1 {
		return costs[n/2]
	}
	return (costs[n/2-1] + costs[n/2]) / 2
}
