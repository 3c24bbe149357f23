package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iv-tracker/database/types"
)

func wheelLeg(tp string, strike, delta, mid float64) types.NearTermLeg {
	return types.NearTermLeg{
		OptionLeg: types.OptionLeg{Type: tp, Strike: floatPtr(strike), Delta: floatPtr(delta)},
		Mid:       floatPtr(mid),
	}
}

func strikes(legs []types.NearTermLeg) []float64 {
	out := make([]float64, 0, len(legs))
	for _, l := range legs {
		out = append(out, *l.Strike)
	}
	return out
}

func TestSelectCandidates_CashSecuredPut(t *testing.T) {
	legs := []types.NearTermLeg{
		wheelLeg("P", 80, -0.10, 0.30), // delta too small
		wheelLeg("P", 85, -0.15, 0.30), // lower bound inclusive
		wheelLeg("P", 90, -0.30, 0.20),
		wheelLeg("C", 90, 0.70, 9.00),   // wrong type
		wheelLeg("P", 92, -0.25, 0.05),  // mid not above 0.05
		wheelLeg("P", 95, -0.40, 1.10),  // upper bound inclusive
		wheelLeg("P", 100, -0.50, 2.50), // too deep
		wheelLeg("P", 93, -0.33, 0.60),
	}

	got := SelectCandidates(legs, CashSecuredPut, 5)
	assert.Equal(t, []float64{90, 93, 95, 85}, strikes(got))
}

func TestSelectCandidates_ExcludesMissingData(t *testing.T) {
	noDelta := wheelLeg("P", 90, -0.30, 0.20)
	noDelta.Delta = nil
	noMid := wheelLeg("P", 91, -0.30, 0.20)
	noMid.Mid = nil

	got := SelectCandidates([]types.NearTermLeg{noDelta, noMid}, CashSecuredPut, 5)
	require.NotNil(t, got, "empty result must encode as []")
	assert.Empty(t, got)
}

func TestSelectCandidates_CoveredCallTopFiveStable(t *testing.T) {
	legs := []types.NearTermLeg{
		wheelLeg("C", 100, 0.35, 1.0),
		wheelLeg("C", 101, 0.25, 1.0), // ties with 100, keeps chain order
		wheelLeg("C", 102, 0.30, 1.0),
		wheelLeg("C", 103, 0.20, 1.0),
		wheelLeg("C", 104, 0.40, 1.0),
		wheelLeg("C", 105, 0.15, 1.0),
		wheelLeg("C", 106, 0.31, 1.0),
		wheelLeg("P", 100, -0.30, 1.0),
	}

	got := SelectCandidates(legs, CoveredCall, 5)
	assert.Equal(t, []float64{102, 106, 100, 101, 103}, strikes(got))
}

func TestWheelCriteriaMatches(t *testing.T) {
	assert.False(t, CashSecuredPut.Matches(wheelLeg("P", 100, -0.50, 1.0)))
	assert.True(t, CashSecuredPut.Matches(wheelLeg("P", 100, -0.30, 0.20)))
	assert.False(t, CoveredCall.Matches(wheelLeg("C", 100, 0.41, 1.0)))
	assert.True(t, CoveredCall.Matches(wheelLeg("C", 100, 0.15, 0.06)))
}
