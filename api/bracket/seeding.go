/* seeding.go
 * Contains the logic for turning ranking round results into a seed list
 */

package bracket

import "sort"

// RankingEntry is one athlete's record from the fencing ranking round
type RankingEntry struct {
	AthleteID       string
	DisplayName     string
	Victories       int
	TouchesScored   int
	TouchesReceived int
}

// Indicator returns touches scored minus touches received
func (r RankingEntry) Indicator() int {
	return r.TouchesScored - r.TouchesReceived
}

// SeedsFromRankingRound orders ranking round results into seeds.
// Preconditions: Receives the ranking round entries in registration order
// Postconditions: Returns seeds 1..n ordered by victories, then indicator, then registration order. The input slice
// is left untouched
func SeedsFromRankingRound(entries []RankingEntry) []Seed {
	ordered := make([]RankingEntry, len(entries))
	copy(ordered, entries)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Victories != ordered[j].Victories {
			return ordered[i].Victories > ordered[j].Victories
		}
		return ordered[i].Indicator() > ordered[j].Indicator()
	})

	seeds := make([]Seed, len(ordered))
	for i, entry := range ordered {
		seeds[i] = Seed{
			AthleteID:   entry.AthleteID,
			Seed:        i + 1,
			DisplayName: entry.DisplayName,
		}
	}
	return seeds
}
