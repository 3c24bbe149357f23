package types

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberScan(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		valid bool
		want  float64
	}{
		{"null", nil, false, 0},
		{"float", 0.4321, true, 0.4321},
		{"integer", int64(42), true, 42},
		{"numeric text", []byte(" 1.25 "), true, 1.25},
		{"string", "17", true, 17},
		{"garbage text", "N/A", false, 0},
		{"empty bytes", []byte(""), false, 0},
		{"nan", math.NaN(), false, 0},
		{"nan text", "NaN", false, 0},
		{"infinity", math.Inf(1), false, 0},
		{"bool", true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Number{Float64: 99, Valid: true}
			require.NoError(t, n.Scan(tt.input))
			assert.Equal(t, tt.valid, n.Valid)
			if tt.valid {
				assert.InDelta(t, tt.want, n.Float64, 1e-12)
				require.NotNil(t, n.Ptr())
			} else {
				assert.Nil(t, n.Ptr())
				assert.Nil(t, n.IntPtr())
				assert.Equal(t, int64(0), n.IntOrZero())
			}
		})
	}
}

func TestNumberInt(t *testing.T) {
	n := NewNumber(12.9)
	assert.Equal(t, int64(12), n.IntOrZero())
	require.NotNil(t, n.IntPtr())
	assert.Equal(t, int64(12), *n.IntPtr())
}

func TestDateScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan("2025-01-17"))
	assert.Equal(t, Date("2025-01-17"), d)

	require.NoError(t, d.Scan(time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-02-03", d.String())

	require.NoError(t, d.Scan([]byte("2025-03-21")))
	assert.Equal(t, "2025-03-21", d.String())

	require.NoError(t, d.Scan(nil))
	assert.Nil(t, d.Ptr())

	assert.Error(t, d.Scan(3.14))
}

func TestNearTermLegFlattensOptionLeg(t *testing.T) {
	strike := 100.0
	leg := NearTermLeg{OptionLeg: OptionLeg{Type: "P", Strike: &strike}}

	raw, err := json.Marshal(leg)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"t":"P","s":100,"iv":null,"d":null,"th":null,"v":null,"b":null,"a":null,"vol":0,"oi":0,"m":null}`,
		string(raw))
}
