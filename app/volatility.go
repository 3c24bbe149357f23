package app

import (
	"math"
	"sort"
	"strings"

	"iv-tracker/database/types"
	"iv-tracker/helpers"
)

// MarketPrefix is stripped from collector symbols to get the display ticker
const MarketPrefix = "US."

// Ticker turns a collector symbol such as US.AAPL into AAPL
func Ticker(symbol string) string {
	return strings.ReplaceAll(symbol, MarketPrefix, "")
}

// IVHVRatio is IV / HV20 rounded to 2 decimals, nil unless both are known and HV20 > 0
func IVHVRatio(iv, hv20 *float64) *float64 {
	if iv == nil || hv20 == nil || *hv20 <= 0 {
		return nil
	}
	ratio := *iv / *hv20
	return helpers.SafeRound(&ratio, 2)
}

// IVPercentile is the share of HV20 samples strictly below iv, as a percentage
// rounded to 1 decimal. nil without samples or without an IV.
func IVPercentile(iv *float64, hv20Samples []float64) *float64 {
	if iv == nil || len(hv20Samples) == 0 {
		return nil
	}

	below := 0
	for _, v := range hv20Samples {
		if v < *iv {
			below++
		}
	}

	pct := float64(below) / float64(len(hv20Samples)) * 100
	return helpers.SafeRound(&pct, 1)
}

// MidPrice is (bid+ask)/2 rounded to 2 decimals, nil if either quote is missing
func MidPrice(bid, ask *float64) *float64 {
	if bid == nil || ask == nil {
		return nil
	}
	mid := (*bid + *ask) / 2
	return helpers.SafeRound(&mid, 2)
}

// ATMIV estimates at-the-money IV for one expiry as the mean IV of the two
// legs struck closest to the stock price. Legs without an IV are dropped
// after picking the two closest.
func ATMIV(legs []types.NearTermLeg, stockPrice *float64) *float64 {
	if len(legs) == 0 || stockPrice == nil || *stockPrice == 0 {
		return nil
	}

	px := *stockPrice
	distance := func(leg types.NearTermLeg) float64 {
		if leg.Strike == nil {
			return math.Inf(1)
		}
		return math.Abs(*leg.Strike - px)
	}

	closest := make([]types.NearTermLeg, len(legs))
	copy(closest, legs)
	sort.SliceStable(closest, func(i, j int) bool {
		return distance(closest[i]) < distance(closest[j])
	})
	if len(closest) > 2 {
		closest = closest[:2]
	}

	var sum float64
	var n int
	for _, leg := range closest {
		if leg.IV == nil || *leg.IV == 0 {
			continue
		}
		sum += *leg.IV
		n++
	}
	if n == 0 {
		return nil
	}

	mean := sum / float64(n)
	return helpers.SafeRound(&mean, 4)
}
