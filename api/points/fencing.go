/* fencing.go
 * Contains the points calculators for the fencing ranking round and the fencing direct elimination
 */

package points

import (
	"fmt"
	"math"
)

// RankingBoutValue is one row of the ranking round table: victories needed for 250 points and the worth of
// every victory above or below that
type RankingBoutValue struct {
	Threshold  int
	PerVictory float64
}

// rankingRoundTable is keyed by the number of bouts each fencer fights (competitors - 1)
var rankingRoundTable = map[int]RankingBoutValue{
	19: {Threshold: 13, PerVictory: 12},
	20: {Threshold: 14, PerVictory: 12},
	21: {Threshold: 15, PerVictory: 11},
	22: {Threshold: 15, PerVictory: 11},
	23: {Threshold: 16, PerVictory: 10},
	24: {Threshold: 17, PerVictory: 10},
	25: {Threshold: 18, PerVictory: 10},
	26: {Threshold: 18, PerVictory: 9},
	27: {Threshold: 19, PerVictory: 9},
	28: {Threshold: 20, PerVictory: 9},
	29: {Threshold: 20, PerVictory: 9},
	30: {Threshold: 21, PerVictory: 8},
	31: {Threshold: 22, PerVictory: 8},
	32: {Threshold: 22, PerVictory: 8},
	33: {Threshold: 23, PerVictory: 8},
	34: {Threshold: 24, PerVictory: 7},
	35: {Threshold: 25, PerVictory: 7},
	36: {Threshold: 25, PerVictory: 7},
	37: {Threshold: 26, PerVictory: 7},
	38: {Threshold: 27, PerVictory: 7},
	39: {Threshold: 27, PerVictory: 7},
	40: {Threshold: 28, PerVictory: 6},
	41: {Threshold: 29, PerVictory: 6},
	42: {Threshold: 29, PerVictory: 6},
	43: {Threshold: 30, PerVictory: 6},
	44: {Threshold: 31, PerVictory: 6},
	45: {Threshold: 31, PerVictory: 6},
	46: {Threshold: 32, PerVictory: 6},
	47: {Threshold: 33, PerVictory: 6},
	48: {Threshold: 34, PerVictory: 5},
	49: {Threshold: 34, PerVictory: 5},
	50: {Threshold: 35, PerVictory: 5},
	51: {Threshold: 36, PerVictory: 5},
	52: {Threshold: 36, PerVictory: 5},
	53: {Threshold: 37, PerVictory: 5},
	54: {Threshold: 38, PerVictory: 5},
	55: {Threshold: 39, PerVictory: 5},
	56: {Threshold: 39, PerVictory: 5},
	57: {Threshold: 40, PerVictory: 5},
	58: {Threshold: 41, PerVictory: 4},
	59: {Threshold: 41, PerVictory: 4},
	60: {Threshold: 42, PerVictory: 4},
}

const (
	MinRankingBouts = 19
	MaxRankingBouts = 60
)

// deTable maps a direct elimination placement to points. Anything past the last entry scores 0
var deTable = []int{
	250, 244, 238, 236, 230, 228, 226, 224, 218,
	216, 214, 212, 206, 204, 202, 200, 198, 196,
}

// FencingRankingInput is an athlete's ranking round record
type FencingRankingInput struct {
	Victories   int
	Competitors int
}

// FencingDEInput is an athlete's final place in the direct elimination
type FencingDEInput struct {
	Placement int
}

// RankingRoundValue returns the table row for a bout count
func RankingRoundValue(totalBouts int) (RankingBoutValue, error) {
	v, ok := rankingRoundTable[totalBouts]
	if !ok {
		return RankingBoutValue{}, fmt.Errorf("%w: %d bouts (table covers %d-%d)", ErrBoutCountOutOfTable, totalBouts, MinRankingBouts, MaxRankingBouts)
	}
	return v, nil
}

// CalculateFencingRankingRound scores the ranking round.
// Preconditions: Receives the athlete's victories and the number of fencers in the round. Competitors - 1 must be a
// bout count in the table (19-60), picking the nearest defined entry is the caller's job
// Postconditions: Returns round((victories - threshold) * perVictory) + 250, floored at 0, or an error
func CalculateFencingRankingRound(input FencingRankingInput) (int, error) {
	if input.Victories < 0 {
		return 0, invalid("victories", "must not be negative, got %d", input.Victories)
	}
	totalBouts := input.Competitors - 1
	if input.Victories > totalBouts {
		return 0, invalid("victories", "%d exceeds the %d bouts fought", input.Victories, totalBouts)
	}

	v, err := RankingRoundValue(totalBouts)
	if err != nil {
		return 0, err
	}

	points := int(math.Round(float64(input.Victories-v.Threshold)*v.PerVictory)) + 250
	return max(0, points), nil
}

// CalculateFencingDE scores a direct elimination placement. Placements past the table, including losing the
// initial bout, score 0
func CalculateFencingDE(input FencingDEInput) (int, error) {
	if input.Placement <= 0 {
		return 0, invalid("placement", "must be positive, got %d", input.Placement)
	}
	if input.Placement > len(deTable) {
		return 0, nil
	}
	return deTable[input.Placement-1], nil
}
