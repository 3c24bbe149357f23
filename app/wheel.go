package app

import (
	"math"
	"sort"

	"iv-tracker/database/types"
)

// WheelCriteria selects short-option candidates for one side of the wheel
type WheelCriteria struct {
	Type        string  // "P" or "C"
	MinDelta    float64 // Inclusive
	MaxDelta    float64 // Inclusive
	TargetDelta float64 // Candidates are ranked by distance from this delta
	MinMid      float64 // Exclusive
}

// CashSecuredPut targets ~30 delta puts
var CashSecuredPut = WheelCriteria{
	Type:        "P",
	MinDelta:    -0.40,
	MaxDelta:    -0.15,
	TargetDelta: -0.30,
	MinMid:      0.05,
}

// CoveredCall targets ~30 delta calls
var CoveredCall = WheelCriteria{
	Type:        "C",
	MinDelta:    0.15,
	MaxDelta:    0.40,
	TargetDelta: 0.30,
	MinMid:      0.05,
}

// Matches reports whether a leg qualifies under the criteria
func (c WheelCriteria) Matches(leg types.NearTermLeg) bool {
	if leg.Type != c.Type || leg.Delta == nil || leg.Mid == nil {
		return false
	}
	d := *leg.Delta
	return d >= c.MinDelta && d <= c.MaxDelta && *leg.Mid > c.MinMid
}

// SelectCandidates returns up to limit qualifying legs, closest to the target
// delta first. Equal distances keep chain order (strike, then type).
func SelectCandidates(legs []types.NearTermLeg, c WheelCriteria, limit int) []types.NearTermLeg {
	candidates := make([]types.NearTermLeg, 0)
	for _, leg := range legs {
		if c.Matches(leg) {
			candidates = append(candidates, leg)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return math.Abs(*candidates[i].Delta-c.TargetDelta) < math.Abs(*candidates[j].Delta-c.TargetDelta)
	})

	if limit >= 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
