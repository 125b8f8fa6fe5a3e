/* placements.go
 * Contains the logic for checking bracket completion and deriving final placements
 */

package bracket

import "sort"

// IsBracketComplete reports whether every contested match and the final have a recorded winner.
// Matches with no occupants at all are ignored
func IsBracketComplete(b Bracket) bool {
	final, ok := b.FinalMatch()
	if !ok || !final.HasWinner() {
		return false
	}

	for _, round := range b.Rounds {
		for _, m := range round.Matches {
			if m.OccupiedSlots() == 2 && !m.HasWinner() {
				return false
			}
		}
	}
	return true
}

// CalculateFinalPlacements derives the final rank of every athlete in a completed bracket.
// Preconditions: The bracket is complete. On an incomplete bracket the result is partial
// Postconditions: Returns athlete id -> rank. The final's winner is 1st and its loser 2nd, losers of each earlier round
// share the next block of ranks (semifinal losers 3-4, quarterfinal losers 5-8, ...) ordered by original seed
func CalculateFinalPlacements(b Bracket) map[string]int {
	placements := make(map[string]int)

	final, ok := b.FinalMatch()
	if !ok {
		return placements
	}
	if winner := final.Winner(); winner != nil {
		placements[winner.AthleteID] = 1
	}
	if loser := final.Loser(); loser != nil {
		placements[loser.AthleteID] = 2
	}

	totalRounds := len(b.Rounds)
	for r := totalRounds - 1; r >= 1; r-- {
		var losers []Slot
		for _, m := range b.Rounds[r-1].Matches {
			if loser := m.Loser(); loser != nil {
				losers = append(losers, *loser)
			}
		}

		sort.SliceStable(losers, func(i, j int) bool {
			return losers[i].Seed < losers[j].Seed
		})

		first := 1<<(totalRounds-r) + 1
		for i, loser := range losers {
			placements[loser.AthleteID] = first + i
		}
	}
	return placements
}

// PendingMatches returns the matches that have both opponents and still need a result, in round then position order
func PendingMatches(b Bracket) []Match {
	var pending []Match
	for _, round := range b.Rounds {
		for _, m := range round.Matches {
			if m.OccupiedSlots() == 2 && !m.HasWinner() {
				pending = append(pending, m)
			}
		}
	}
	return pending
}

// placementsIfComplete keeps placements absent until the bracket is fully resolved
func placementsIfComplete(b Bracket) map[string]int {
	if !IsBracketComplete(b) {
		return nil
	}
	return CalculateFinalPlacements(b)
}
