package app

// Opportunity score tiers. Within a category the first threshold
// exceeded (checked highest first) wins.
var (
	ratioTiers = []scoreTier{
		{above: 1.5, points: 40},
		{above: 1.2, points: 30},
		{above: 1.0, points: 15},
	}
	ivTiers = []scoreTier{
		{above: 0.6, points: 30},
		{above: 0.4, points: 20},
		{above: 0.25, points: 10},
	}
	percentileTiers = []scoreTier{
		{above: 80, points: 25},
		{above: 60, points: 15},
		{above: 40, points: 5},
	}
)

// MaxScore caps the opportunity score
const MaxScore = 100

type scoreTier struct {
	above  float64
	points int
}

func tierPoints(tiers []scoreTier, v float64) int {
	for _, t := range tiers {
		if v > t.above {
			return t.points
		}
	}
	return 0
}

// Score rates how rich option premium is for a symbol, 0-100.
//
//   - IV/HV20 ratio (max 40): > 1.5 = 40, > 1.2 = 30, > 1.0 = 15
//   - ATM IV level (max 30):  > 0.60 = 30, > 0.40 = 20, > 0.25 = 10
//   - IV percentile (max 25): > 80 = 25, > 60 = 15, > 40 = 5
//
// A nil ratio or percentile contributes nothing.
func Score(iv float64, ratio, percentile *float64) int {
	total := tierPoints(ivTiers, iv)
	if ratio != nil {
		total += tierPoints(ratioTiers, *ratio)
	}
	if percentile != nil {
		total += tierPoints(percentileTiers, *percentile)
	}

	if total > MaxScore {
		return MaxScore
	}
	return total
}
