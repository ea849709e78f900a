package estimate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTo(t *testing.T) {
	cases := []struct {
		v      float64
		places int32
		want   float64
	}{
		{215.73, 0, 216},
		{2.5, 0, 3},
		{-2.5, 0, -2},
		{-0.25, 1, -0.2},
		{-0.35, 1, -0.3},
		{1.005, 2, 1},
		{6.0833333, 2, 6.08},
		{0.2105, 3, 0.211},
		{-9.45, 2, -9.45},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, roundTo(tc.v, tc.places), "roundTo(%v, %d)", tc.v, tc.places)
	}
	assert.True(t, math.IsNaN(roundTo(math.NaN(), 2)))
	assert.True(t, math.IsInf(roundTo(math.Inf(1), 2), 1))
	assert.Equal(t, -3, roundInt(-3.5))
}
