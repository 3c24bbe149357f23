package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iv-tracker/database/types"
)

func TestTicker(t *testing.T) {
	assert.Equal(t, "AAPL", Ticker("US.AAPL"))
	assert.Equal(t, "BRK.B", Ticker("US.BRK.B"))
	assert.Equal(t, "SPY", Ticker("SPY"))
}

func TestIVHVRatio(t *testing.T) {
	r := IVHVRatio(floatPtr(0.45), floatPtr(0.30))
	require.NotNil(t, r)
	assert.InDelta(t, 1.5, *r, 1e-9)

	r = IVHVRatio(floatPtr(0.5), floatPtr(0.3))
	require.NotNil(t, r)
	assert.InDelta(t, 1.67, *r, 1e-9)

	assert.Nil(t, IVHVRatio(floatPtr(0.5), nil))
	assert.Nil(t, IVHVRatio(floatPtr(0.5), floatPtr(0)))
	assert.Nil(t, IVHVRatio(floatPtr(0.5), floatPtr(-0.1)))
	assert.Nil(t, IVHVRatio(nil, floatPtr(0.3)))
}

func TestIVPercentile(t *testing.T) {
	samples := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}

	p := IVPercentile(floatPtr(0.35), samples)
	require.NotNil(t, p)
	assert.InDelta(t, 50.0, *p, 1e-9)

	// Strictly below: equal samples do not count
	p = IVPercentile(floatPtr(0.3), samples)
	require.NotNil(t, p)
	assert.InDelta(t, 33.3, *p, 1e-9)

	p = IVPercentile(floatPtr(1), samples)
	require.NotNil(t, p)
	assert.InDelta(t, 100.0, *p, 1e-9)

	assert.Nil(t, IVPercentile(floatPtr(0.3), nil))
	assert.Nil(t, IVPercentile(nil, samples))
}

func TestMidPrice(t *testing.T) {
	m := MidPrice(floatPtr(1.00), floatPtr(1.10))
	require.NotNil(t, m)
	assert.InDelta(t, 1.05, *m, 1e-9)

	m = MidPrice(floatPtr(2.00), floatPtr(2.50))
	require.NotNil(t, m)
	assert.InDelta(t, 2.25, *m, 1e-9)

	// Quarter-cent mid ties to the even cent
	m = MidPrice(floatPtr(1.10), floatPtr(1.15))
	require.NotNil(t, m)
	assert.Equal(t, 1.12, *m)

	assert.Nil(t, MidPrice(nil, floatPtr(1.10)))
	assert.Nil(t, MidPrice(floatPtr(1.00), nil))
}

func nearLeg(tp string, strike float64, iv *float64) types.NearTermLeg {
	return types.NearTermLeg{OptionLeg: types.OptionLeg{Type: tp, Strike: floatPtr(strike), IV: iv}}
}

func TestATMIV(t *testing.T) {
	legs := []types.NearTermLeg{
		nearLeg("C", 90, floatPtr(0.9)),
		nearLeg("P", 90, floatPtr(0.9)),
		nearLeg("C", 100, floatPtr(0.40)),
		nearLeg("P", 100, floatPtr(0.45)),
		nearLeg("C", 110, floatPtr(0.9)),
	}

	iv := ATMIV(legs, floatPtr(101))
	require.NotNil(t, iv)
	assert.InDelta(t, 0.425, *iv, 1e-9)

	t.Run("null iv among the two closest is skipped", func(t *testing.T) {
		legs := []types.NearTermLeg{
			nearLeg("C", 100, nil),
			nearLeg("P", 100, floatPtr(0.5)),
			nearLeg("C", 105, floatPtr(0.9)),
		}
		iv := ATMIV(legs, floatPtr(100))
		require.NotNil(t, iv)
		assert.InDelta(t, 0.5, *iv, 1e-9)
	})

	t.Run("no usable iv", func(t *testing.T) {
		legs := []types.NearTermLeg{nearLeg("C", 100, nil), nearLeg("P", 100, nil)}
		assert.Nil(t, ATMIV(legs, floatPtr(100)))
	})

	t.Run("no stock price", func(t *testing.T) {
		assert.Nil(t, ATMIV(legs, nil))
		assert.Nil(t, ATMIV(legs, floatPtr(0)))
	})

	t.Run("no legs", func(t *testing.T) {
		assert.Nil(t, ATMIV(nil, floatPtr(100)))
	})

	t.Run("input order untouched", func(t *testing.T) {
		ATMIV(legs, floatPtr(101))
		assert.Equal(t, 90.0, *legs[0].Strike)
	})
}
