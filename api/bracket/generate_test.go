/* generate_test.go
 * Contains unit tests for generate.go
 */

package bracket

import (
	"fmt"
	"math/bits"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeSeeds returns n athletes seeded 1..n with ids a1..an
func makeSeeds(n int) []Seed {
	seeds := make([]Seed, n)
	for i := range seeds {
		seeds[i] = Seed{
			AthleteID:   fmt.Sprintf("a%d", i+1),
			Seed:        i + 1,
			DisplayName: fmt.Sprintf("Athlete %d", i+1),
		}
	}
	return seeds
}

// resolveBySeed records every remaining match in favour of the better seed until nothing is pending
func resolveBySeed(t *testing.T, b Bracket) Bracket {
	t.Helper()
	for {
		pending := PendingMatches(b)
		if len(pending) == 0 {
			return b
		}
		for _, m := range pending {
			winner := m.Slot1
			if m.Slot2.Seed < winner.Seed {
				winner = m.Slot2
			}
			var err error
			b, err = AdvanceWinner(b, MatchResult{MatchID: m.ID, WinnerID: winner.AthleteID, Score1: 15, Score2: 9})
			require.NoError(t, err)
		}
	}
}

// region TableauSize tests

func TestTableauSize(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 2},
		{1, 2},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{8, 8},
		{9, 16},
		{36, 64},
		{64, 64},
		{65, 128},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, TableauSize(tt.n))
		})
	}
}

func TestTableauSize_PowerOfTwoBounds(t *testing.T) {
	for n := 2; n <= 300; n++ {
		size := TableauSize(n)
		assert.Equal(t, 1, bits.OnesCount(uint(size)), "size %d for n=%d is not a power of two", size, n)
		assert.True(t, size/2 < n && n <= size, "n=%d does not fit tightly in %d", n, size)
	}
}

// endregion

// region GenerateSeedPositions tests

func TestGenerateSeedPositions_KnownOrders(t *testing.T) {
	assert.Equal(t, []int{1, 2}, GenerateSeedPositions(2))
	assert.Equal(t, []int{1, 4, 2, 3}, GenerateSeedPositions(4))
	assert.Equal(t, []int{1, 8, 4, 5, 2, 7, 3, 6}, GenerateSeedPositions(8))
}

func TestGenerateSeedPositions_IsPermutation(t *testing.T) {
	for size := 2; size <= 256; size *= 2 {
		positions := GenerateSeedPositions(size)
		require.Len(t, positions, size)

		sorted := append([]int(nil), positions...)
		sort.Ints(sorted)
		for i, seed := range sorted {
			assert.Equal(t, i+1, seed, "size %d", size)
		}
	}
}

func TestGenerateSeedPositions_TopSeedsSeparated(t *testing.T) {
	for size := 4; size <= 256; size *= 2 {
		positions := GenerateSeedPositions(size)
		for i := 0; i < size; i += 2 {
			pair := []int{positions[i], positions[i+1]}
			assert.False(t, pair[0] <= 2 && pair[1] <= 2, "seeds 1 and 2 meet in round 1 for size %d", size)
			assert.Equal(t, size+1, pair[0]+pair[1], "first round pairs should sum to %d", size+1)
		}

		// Seeds 1 and 2 sit in opposite halves so they can only meet in the final
		half := size / 2
		idx1 := indexOf(positions, 1)
		idx2 := indexOf(positions, 2)
		assert.NotEqual(t, idx1 < half, idx2 < half, "size %d", size)
	}
}

func indexOf(values []int, target int) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}

// endregion

// region GenerateBracket tests

func TestGenerateBracket_FullTableauHasNoByes(t *testing.T) {
	b, err := GenerateBracket("event-1", makeSeeds(8))
	require.NoError(t, err)

	assert.Equal(t, "event-1", b.CompetitionEventID)
	assert.Equal(t, 8, b.TableauSize)
	assert.Equal(t, 8, b.ParticipantCount)
	require.Len(t, b.Rounds, 3)
	assert.Len(t, b.Rounds[0].Matches, 4)
	assert.Len(t, b.Rounds[1].Matches, 2)
	assert.Len(t, b.Rounds[2].Matches, 1)
	assert.False(t, b.GeneratedAt.IsZero())
	assert.Nil(t, b.Placements)

	for _, m := range b.Rounds[0].Matches {
		assert.False(t, m.IsBye, m.ID)
		assert.False(t, m.HasWinner(), m.ID)
		assert.Equal(t, 2, m.OccupiedSlots(), m.ID)
		assert.Equal(t, [2]string{}, m.FeederMatchIDs)
	}

	assert.Equal(t, [2]string{"R1M1", "R1M2"}, b.Rounds[1].Matches[0].FeederMatchIDs)
	assert.Equal(t, [2]string{"R1M3", "R1M4"}, b.Rounds[1].Matches[1].FeederMatchIDs)
	assert.Equal(t, [2]string{"R2M1", "R2M2"}, b.Rounds[2].Matches[0].FeederMatchIDs)
	assert.False(t, IsBracketComplete(b))
}

func TestGenerateBracket_FirstRoundPairings(t *testing.T) {
	b, err := GenerateBracket("event-1", makeSeeds(8))
	require.NoError(t, err)

	want := [][2]int{{1, 8}, {4, 5}, {2, 7}, {3, 6}}
	for i, m := range b.Rounds[0].Matches {
		assert.Equal(t, MatchID(1, i+1), m.ID)
		assert.Equal(t, want[i][0], m.Slot1.Seed)
		assert.Equal(t, want[i][1], m.Slot2.Seed)
	}
}

func TestGenerateBracket_ByesResolveAndPropagate(t *testing.T) {
	b, err := GenerateBracket("event-1", makeSeeds(5))
	require.NoError(t, err)
	require.Equal(t, 8, b.TableauSize)

	first := b.Rounds[0].Matches
	assert.True(t, first[0].IsBye)
	assert.Equal(t, "a1", first[0].WinnerID)
	assert.Equal(t, 1, first[0].WinnerSeed)
	assert.Equal(t, 0, first[0].Score1)
	assert.Equal(t, 0, first[0].Score2)

	assert.False(t, first[1].IsBye)
	assert.False(t, first[1].HasWinner())

	assert.True(t, first[2].IsBye)
	assert.Equal(t, "a2", first[2].WinnerID)
	assert.True(t, first[3].IsBye)
	assert.Equal(t, "a3", first[3].WinnerID)

	// Bye winners already sit in round 2
	second := b.Rounds[1].Matches
	require.NotNil(t, second[0].Slot1)
	assert.Equal(t, "a1", second[0].Slot1.AthleteID)
	assert.Nil(t, second[0].Slot2)
	assert.False(t, second[0].IsBye, "opponent is still to come from R1M2")
	assert.False(t, second[0].HasWinner())

	require.NotNil(t, second[1].Slot1)
	require.NotNil(t, second[1].Slot2)
	assert.Equal(t, "a2", second[1].Slot1.AthleteID)
	assert.Equal(t, "a3", second[1].Slot2.AthleteID)

	assert.False(t, IsBracketComplete(b))
	assert.Nil(t, b.Placements)
}

func TestGenerateBracket_EveryByeHasWinner(t *testing.T) {
	for n := 2; n <= 40; n++ {
		b, err := GenerateBracket("event", makeSeeds(n))
		require.NoError(t, err)

		byes := 0
		for _, round := range b.Rounds {
			for _, m := range round.Matches {
				if m.IsBye {
					byes++
					assert.True(t, m.HasWinner(), "bye %s without winner for n=%d", m.ID, n)
				}
			}
		}
		assert.Equal(t, b.TableauSize-n, byes, "n=%d", n)
		assert.False(t, IsBracketComplete(b), "n=%d", n)
	}
}

func TestGenerateBracket_SingleAthleteIsComplete(t *testing.T) {
	b, err := GenerateBracket("solo", makeSeeds(1))
	require.NoError(t, err)

	assert.Equal(t, 2, b.TableauSize)
	require.Len(t, b.Rounds, 1)
	final := b.Rounds[0].Matches[0]
	assert.True(t, final.IsBye)
	assert.Equal(t, "a1", final.WinnerID)
	assert.True(t, IsBracketComplete(b))
	assert.Equal(t, map[string]int{"a1": 1}, b.Placements)
}

func TestGenerateBracket_TwoAthletes(t *testing.T) {
	b, err := GenerateBracket("duel", makeSeeds(2))
	require.NoError(t, err)

	require.Len(t, b.Rounds, 1)
	final := b.Rounds[0].Matches[0]
	assert.False(t, final.IsBye)
	assert.Equal(t, "a1", final.Slot1.AthleteID)
	assert.Equal(t, "a2", final.Slot2.AthleteID)
}

func TestGenerateBracket_SeedOrderIndependent(t *testing.T) {
	seeds := makeSeeds(6)
	reversed := make([]Seed, len(seeds))
	for i := range seeds {
		reversed[len(seeds)-1-i] = seeds[i]
	}

	a, err := GenerateBracket("event", seeds)
	require.NoError(t, err)
	b, err := GenerateBracket("event", reversed)
	require.NoError(t, err)

	b.GeneratedAt = a.GeneratedAt
	assert.Equal(t, a, b)
}

func TestGenerateBracket_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		seeds []Seed
		err   error
	}{
		{"empty", nil, ErrNoSeeds},
		{"duplicate athlete", []Seed{{AthleteID: "a", Seed: 1}, {AthleteID: "a", Seed: 2}}, ErrDuplicateAthlete},
		{"zero seed", []Seed{{AthleteID: "a", Seed: 0}, {AthleteID: "b", Seed: 1}}, ErrInvalidSeed},
		{"negative seed", []Seed{{AthleteID: "a", Seed: -1}}, ErrInvalidSeed},
		{"duplicate seed", []Seed{{AthleteID: "a", Seed: 1}, {AthleteID: "b", Seed: 1}}, ErrInvalidSeed},
		{"seed beyond field", []Seed{{AthleteID: "a", Seed: 1}, {AthleteID: "b", Seed: 5}}, ErrInvalidSeed},
		{"missing athlete id", []Seed{{AthleteID: "", Seed: 1}}, ErrInvalidSeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateBracket("event", tt.seeds)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

// endregion
