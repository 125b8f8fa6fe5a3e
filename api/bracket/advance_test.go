/* advance_test.go
 * Contains unit tests for advance.go
 */

package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFind(t *testing.T, b Bracket, matchID string) Match {
	t.Helper()
	m, ok := FindMatch(b, matchID)
	require.True(t, ok, "match %s not found", matchID)
	return m
}

// region AdvanceWinner tests

func TestAdvanceWinner_MovesWinnerForward(t *testing.T) {
	b, err := GenerateBracket("event", makeSeeds(8))
	require.NoError(t, err)

	b, err = AdvanceWinner(b, MatchResult{MatchID: "R1M1", WinnerID: "a8", Score1: 12, Score2: 15})
	require.NoError(t, err)

	r1m1 := mustFind(t, b, "R1M1")
	assert.Equal(t, "a8", r1m1.WinnerID)
	assert.Equal(t, 8, r1m1.WinnerSeed)
	assert.Equal(t, 12, r1m1.Score1)
	assert.Equal(t, 15, r1m1.Score2)

	r2m1 := mustFind(t, b, "R2M1")
	require.NotNil(t, r2m1.Slot1)
	assert.Equal(t, "a8", r2m1.Slot1.AthleteID)
	assert.Equal(t, 8, r2m1.Slot1.Seed)
	assert.Nil(t, r2m1.Slot2)

	// Winner of an even position feeds slot 2
	b, err = AdvanceWinner(b, MatchResult{MatchID: "R1M2", WinnerID: "a5", Score1: 13, Score2: 15})
	require.NoError(t, err)
	r2m1 = mustFind(t, b, "R2M1")
	require.NotNil(t, r2m1.Slot2)
	assert.Equal(t, "a5", r2m1.Slot2.AthleteID)
}

func TestAdvanceWinner_DoesNotMutateInput(t *testing.T) {
	b, err := GenerateBracket("event", makeSeeds(4))
	require.NoError(t, err)
	before, err := SerializeBracket(b)
	require.NoError(t, err)

	_, err = AdvanceWinner(b, MatchResult{MatchID: "R1M1", WinnerID: "a1", Score1: 15, Score2: 3})
	require.NoError(t, err)

	after, err := SerializeBracket(b)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAdvanceWinner_Idempotent(t *testing.T) {
	b, err := GenerateBracket("event", makeSeeds(8))
	require.NoError(t, err)
	result := MatchResult{MatchID: "R1M3", WinnerID: "a7", Score1: 14, Score2: 15}

	once, err := AdvanceWinner(b, result)
	require.NoError(t, err)
	twice, err := AdvanceWinner(once, result)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestAdvanceWinner_FullTableauPlacements(t *testing.T) {
	b, err := GenerateBracket("event", makeSeeds(8))
	require.NoError(t, err)

	b = resolveBySeed(t, b)

	require.True(t, IsBracketComplete(b))
	assert.Equal(t, map[string]int{
		"a1": 1,
		"a2": 2,
		"a3": 3,
		"a4": 4,
		"a5": 5,
		"a6": 6,
		"a7": 7,
		"a8": 8,
	}, b.Placements)
}

func TestAdvanceWinner_UpsetPlacementsOrderedBySeed(t *testing.T) {
	b, err := GenerateBracket("event", makeSeeds(8))
	require.NoError(t, err)

	results := []MatchResult{
		{MatchID: "R1M1", WinnerID: "a8", Score1: 10, Score2: 15},
		{MatchID: "R1M2", WinnerID: "a4", Score1: 15, Score2: 11},
		{MatchID: "R1M3", WinnerID: "a2", Score1: 15, Score2: 7},
		{MatchID: "R1M4", WinnerID: "a6", Score1: 9, Score2: 15},
		{MatchID: "R2M1", WinnerID: "a8", Score1: 15, Score2: 14},
		{MatchID: "R2M2", WinnerID: "a2", Score1: 15, Score2: 12},
		{MatchID: "R3M1", WinnerID: "a8", Score1: 15, Score2: 13},
	}
	for _, r := range results {
		b, err = AdvanceWinner(b, r)
		require.NoError(t, err, r.MatchID)
	}

	require.True(t, IsBracketComplete(b))
	assert.Equal(t, map[string]int{
		"a8": 1,
		"a2": 2,
		"a4": 3,
		"a6": 4,
		"a1": 5,
		"a3": 6,
		"a5": 7,
		"a7": 8,
	}, b.Placements)
}

func TestAdvanceWinner_ByeTableauCompletes(t *testing.T) {
	b, err := GenerateBracket("event", makeSeeds(3))
	require.NoError(t, err)

	// Seed 1 has a bye into the final
	final := mustFind(t, b, "R2M1")
	require.NotNil(t, final.Slot1)
	assert.Equal(t, "a1", final.Slot1.AthleteID)
	assert.Nil(t, final.Slot2)

	b, err = AdvanceWinner(b, MatchResult{MatchID: "R1M2", WinnerID: "a3", Score1: 11, Score2: 15})
	require.NoError(t, err)
	b, err = AdvanceWinner(b, MatchResult{MatchID: "R2M1", WinnerID: "a1", Score1: 15, Score2: 6})
	require.NoError(t, err)

	require.True(t, IsBracketComplete(b))
	assert.Equal(t, map[string]int{"a1": 1, "a3": 2, "a2": 3}, b.Placements)
}

func TestAdvanceWinner_CorrectionClearsDownstream(t *testing.T) {
	b, err := GenerateBracket("event", makeSeeds(8))
	require.NoError(t, err)
	b = resolveBySeed(t, b)
	require.True(t, IsBracketComplete(b))

	corrected, err := AdvanceWinner(b, MatchResult{MatchID: "R1M1", WinnerID: "a8", Score1: 14, Score2: 15})
	require.NoError(t, err)

	// The quarterfinal now carries the new winner and its old outcome is gone
	r2m1 := mustFind(t, corrected, "R2M1")
	require.NotNil(t, r2m1.Slot1)
	assert.Equal(t, "a8", r2m1.Slot1.AthleteID)
	require.NotNil(t, r2m1.Slot2)
	assert.Equal(t, "a4", r2m1.Slot2.AthleteID)
	assert.False(t, r2m1.HasWinner())
	assert.Equal(t, 0, r2m1.Score1)

	// The final lost its upper half
	final := mustFind(t, corrected, "R3M1")
	assert.Nil(t, final.Slot1)
	require.NotNil(t, final.Slot2)
	assert.Equal(t, "a2", final.Slot2.AthleteID)
	assert.False(t, final.HasWinner())

	// The untouched half is intact
	for _, id := range []string{"R1M2", "R1M3", "R1M4", "R2M2"} {
		assert.Equal(t, mustFind(t, b, id), mustFind(t, corrected, id), id)
	}

	assert.False(t, IsBracketComplete(corrected))
	assert.Nil(t, corrected.Placements)

	// The original bracket is unchanged
	assert.Equal(t, "a1", mustFind(t, b, "R1M1").WinnerID)
	assert.NotNil(t, b.Placements)
}

func TestAdvanceWinner_CorrectionThenReplay(t *testing.T) {
	b, err := GenerateBracket("event", makeSeeds(8))
	require.NoError(t, err)
	b = resolveBySeed(t, b)

	b, err = AdvanceWinner(b, MatchResult{MatchID: "R1M1", WinnerID: "a8", Score1: 14, Score2: 15})
	require.NoError(t, err)
	assert.Len(t, PendingMatches(b), 1)

	b = resolveBySeed(t, b)
	require.True(t, IsBracketComplete(b))
	assert.Equal(t, map[string]int{
		"a2": 1,
		"a4": 2,
		"a3": 3,
		"a8": 4,
		"a1": 5,
		"a5": 6,
		"a6": 7,
		"a7": 8,
	}, b.Placements)
}

func TestAdvanceWinner_SameWinnerKeepsDownstream(t *testing.T) {
	b, err := GenerateBracket("event", makeSeeds(8))
	require.NoError(t, err)
	b = resolveBySeed(t, b)

	rescored, err := AdvanceWinner(b, MatchResult{MatchID: "R1M1", WinnerID: "a1", Score1: 15, Score2: 14})
	require.NoError(t, err)

	assert.Equal(t, 14, mustFind(t, rescored, "R1M1").Score2)
	assert.Equal(t, "a1", mustFind(t, rescored, "R3M1").WinnerID)
	assert.Equal(t, b.Placements, rescored.Placements)
}

func TestAdvanceWinner_Errors(t *testing.T) {
	b, err := GenerateBracket("event", makeSeeds(8))
	require.NoError(t, err)

	tests := []struct {
		name   string
		result MatchResult
		err    error
	}{
		{"unknown match", MatchResult{MatchID: "R9M1", WinnerID: "a1"}, ErrMatchNotFound},
		{"malformed id", MatchResult{MatchID: "final", WinnerID: "a1"}, ErrMatchNotFound},
		{"zero padded id", MatchResult{MatchID: "R01M1", WinnerID: "a1"}, ErrMatchNotFound},
		{"winner not in match", MatchResult{MatchID: "R1M1", WinnerID: "a2"}, ErrWinnerNotInMatch},
		{"empty winner", MatchResult{MatchID: "R1M1", WinnerID: ""}, ErrWinnerNotInMatch},
		{"negative score", MatchResult{MatchID: "R1M1", WinnerID: "a1", Score1: -1}, ErrInvalidScore},
		{"no opponents yet", MatchResult{MatchID: "R2M1", WinnerID: "a1"}, ErrWinnerNotInMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := AdvanceWinner(b, tt.result)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, b, out)
		})
	}
}

func TestAdvanceWinner_MatchNotReady(t *testing.T) {
	b, err := GenerateBracket("event", makeSeeds(8))
	require.NoError(t, err)
	b, err = AdvanceWinner(b, MatchResult{MatchID: "R1M1", WinnerID: "a1", Score1: 15, Score2: 2})
	require.NoError(t, err)

	out, err := AdvanceWinner(b, MatchResult{MatchID: "R2M1", WinnerID: "a1", Score1: 15, Score2: 0})
	assert.ErrorIs(t, err, ErrMatchNotReady)
	assert.Equal(t, b, out)
}

func TestAdvanceWinner_ByeCanBeRerecorded(t *testing.T) {
	b, err := GenerateBracket("event", makeSeeds(3))
	require.NoError(t, err)

	out, err := AdvanceWinner(b, MatchResult{MatchID: "R1M1", WinnerID: "a1"})
	require.NoError(t, err)
	r1m1 := mustFind(t, out, "R1M1")
	assert.True(t, r1m1.IsBye)
	assert.Equal(t, "a1", r1m1.WinnerID)
	assert.Equal(t, "a1", mustFind(t, out, "R2M1").Slot1.AthleteID)
}

// endregion
