// Package handicap computes the per-game handicap awarded from a bowler's
// entering book average.
package handicap

import "math"

const (
	// baseAverage is the scratch baseline the house handicaps against.
	baseAverage = 225
	// percentage of the gap to the baseline awarded per game.
	factor = 0.9
)

// Calculate returns the per-game handicap for the given book average.
// A nil book average yields a nil handicap (the bowler has not been rated).
// The floor is applied after the multiplication, and averages at or above
// the baseline clamp to zero rather than going negative.
func Calculate(bookAverage *int) *int {
	if bookAverage == nil {
		return nil
	}
	raw := int(math.Floor(float64(baseAverage-*bookAverage) * factor))
	if raw < 0 {
		raw = 0
	}
	return &raw
}
