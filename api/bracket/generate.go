/* generate.go
 * Contains the logic for sizing a tableau, placing seeds and building the initial bracket
 */

package bracket

import (
	"fmt"
	"math/bits"
	"time"
)

// nowFunc stamps generated brackets. Replaced in tests
var nowFunc = func() time.Time {
	return time.Now().UTC()
}

// TableauSize returns the smallest power of two that can hold n participants, with a minimum of 2
func TableauSize(n int) int {
	size := 2
	for size < n {
		size *= 2
	}
	return size
}

// GenerateSeedPositions returns the seed number occupying each slot of a tableau, in slot order.
// Preconditions: tableauSize is a power of two (anything below 2 is treated as 2)
// Postconditions: Returns a permutation of 1..tableauSize where consecutive pairs are the round 1 matches. Seeds 1 and 2
// can only meet in the final, seeds 1-4 in the semifinals and so on
func GenerateSeedPositions(tableauSize int) []int {
	if tableauSize <= 2 {
		return []int{1, 2}
	}

	half := GenerateSeedPositions(tableauSize / 2)
	positions := make([]int, 0, tableauSize)
	for _, seed := range half {
		positions = append(positions, seed, tableauSize+1-seed)
	}
	return positions
}

// GenerateBracket builds the complete tableau for an event from its seed list.
// Preconditions: Receives the competition event id and the seeded athletes. Seeds must be unique, positive and no greater
// than the number of athletes, and athlete ids must be unique
// Postconditions: Returns a bracket with every round allocated, byes resolved and propagated, or an error naming the
// offending seed
func GenerateBracket(eventID string, seeds []Seed) (Bracket, error) {
	if err := validateSeeds(seeds); err != nil {
		return Bracket{}, err
	}

	n := len(seeds)
	size := TableauSize(n)
	totalRounds := bits.TrailingZeros(uint(size))

	bySeed := make(map[int]Seed, n)
	for _, s := range seeds {
		bySeed[s.Seed] = s
	}

	b := Bracket{
		CompetitionEventID: eventID,
		TableauSize:        size,
		ParticipantCount:   n,
		Rounds:             make([]Round, totalRounds),
		GeneratedAt:        nowFunc(),
	}

	// Round 1 pairs consecutive seed positions
	positions := GenerateSeedPositions(size)
	first := make([]Match, size/2)
	for i := range first {
		m := Match{
			ID:       MatchID(1, i+1),
			Round:    1,
			Position: i + 1,
			Slot1:    slotForSeed(bySeed, positions[2*i]),
			Slot2:    slotForSeed(bySeed, positions[2*i+1]),
		}
		if m.OccupiedSlots() == 1 {
			resolveBye(&m)
		}
		first[i] = m
	}
	b.Rounds[0] = Round{Number: 1, Matches: first}

	// Later rounds start empty, each match fed by two matches of the previous round
	for r := 2; r <= totalRounds; r++ {
		matches := make([]Match, size>>r)
		for i := range matches {
			matches[i] = Match{
				ID:             MatchID(r, i+1),
				Round:          r,
				Position:       i + 1,
				FeederMatchIDs: [2]string{MatchID(r-1, 2*i+1), MatchID(r-1, 2*i+2)},
			}
		}
		b.Rounds[r-1] = Round{Number: r, Matches: matches}
	}

	propagate(&b)
	b.Placements = placementsIfComplete(b)
	return b, nil
}

// validateSeeds checks the seed list before any bracket is built
func validateSeeds(seeds []Seed) error {
	if len(seeds) == 0 {
		return ErrNoSeeds
	}

	athletes := make(map[string]bool, len(seeds))
	numbers := make(map[int]bool, len(seeds))
	for _, s := range seeds {
		if s.AthleteID == "" {
			return fmt.Errorf("%w: seed %d has no athlete id", ErrInvalidSeed, s.Seed)
		}
		if athletes[s.AthleteID] {
			return fmt.Errorf("%w: %s", ErrDuplicateAthlete, s.AthleteID)
		}
		athletes[s.AthleteID] = true

		if s.Seed <= 0 {
			return fmt.Errorf("%w: %d for athlete %s is not positive", ErrInvalidSeed, s.Seed, s.AthleteID)
		}
		if numbers[s.Seed] {
			return fmt.Errorf("%w: %d is assigned more than once", ErrInvalidSeed, s.Seed)
		}
		if s.Seed > len(seeds) {
			return fmt.Errorf("%w: %d exceeds participant count %d", ErrInvalidSeed, s.Seed, len(seeds))
		}
		numbers[s.Seed] = true
	}
	return nil
}

// slotForSeed returns the occupant for a seed position, or nil when no athlete holds that seed
func slotForSeed(bySeed map[int]Seed, seed int) *Slot {
	s, ok := bySeed[seed]
	if !ok {
		return nil
	}
	return &Slot{AthleteID: s.AthleteID, Seed: s.Seed, DisplayName: s.DisplayName}
}

// resolveBye awards a match with a single occupant to that occupant, 0-0
func resolveBye(m *Match) {
	occupant := m.Slot1
	if occupant == nil {
		occupant = m.Slot2
	}
	m.IsBye = true
	m.WinnerID = occupant.AthleteID
	m.WinnerSeed = occupant.Seed
	m.Score1 = 0
	m.Score2 = 0
}
