package handicap_test

import (
	"testing"

	"github.com/lanetalk/tenpin/internal/handicap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := map[int]int{
		190: 31,
		180: 40,
		200: 22,
		100: 112,
		225: 0,
		230: 0,
		300: 0,
	}
	for avg, want := range tests {
		a := avg
		got := handicap.Calculate(&a)
		require.NotNil(t, got, "average %d", avg)
		assert.Equalf(t, want, *got, "average %d", avg)
	}
}

func TestCalculate_NilAverage(t *testing.T) {
	assert.Nil(t, handicap.Calculate(nil))
}

func TestCalculate_FloorAfterMultiplication(t *testing.T) {
	// 225-191 = 34, 34*0.9 = 30.6 -> 30. Flooring the gap first would
	// also give 30 here, so use 193: 32*0.9 = 28.8 -> 28.
	avg := 193
	got := handicap.Calculate(&avg)
	require.NotNil(t, got)
	assert.Equal(t, 28, *got)
}
