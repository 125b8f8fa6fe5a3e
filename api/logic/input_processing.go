/* input_processing.go
 * Contains the logic for matching operator typed athlete names against the athletes of an event
 */

package logic

import (
	"sort"
	"strings"

	"pentathlon-scorer/api/bracket"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// CheckAthleteNames matches athlete names from operator input against the known names.
// Preconditions: receives two string slices; one containing the names typed by the operator and another that is a list of valid athlete names
// Postconditions: returns two string slices, a slice of correctly formatted athlete names and a slice containing the names that matched nobody
func CheckAthleteNames(inputNames []string, validNames []string) ([]string, []string) {
	var formattedNames []string
	var invalidNames []string

	// Lowercase everything for better matching, keeping the original spelling for the result
	lookup := make(map[string]string)
	var validLower []string
	for _, name := range validNames {
		lower := strings.ToLower(name)
		lookup[lower] = name
		validLower = append(validLower, lower)
	}

	for _, name := range inputNames {
		lowerName := strings.ToLower(strings.TrimSpace(name))
		fuzzyResults := fuzzy.RankFind(lowerName, validLower)
		if len(fuzzyResults) == 0 {
			invalidNames = append(invalidNames, name)
			continue
		}

		// An exact match wins, otherwise take the closest ranked match
		best := ""
		for _, r := range fuzzyResults {
			if r.Target == lowerName {
				best = r.Target
			}
		}
		if best == "" {
			sort.Sort(fuzzyResults)
			best = fuzzyResults[0].Target
		}
		formattedNames = append(formattedNames, lookup[best])
	}
	return formattedNames, invalidNames
}

// Participants returns every athlete in a bracket in seed order. All athletes appear in round 1
func Participants(b bracket.Bracket) []bracket.Slot {
	var athletes []bracket.Slot
	if len(b.Rounds) == 0 {
		return athletes
	}
	for _, m := range b.Rounds[0].Matches {
		for _, s := range []*bracket.Slot{m.Slot1, m.Slot2} {
			if s != nil {
				athletes = append(athletes, *s)
			}
		}
	}
	sort.Slice(athletes, func(i, j int) bool {
		return athletes[i].Seed < athletes[j].Seed
	})
	return athletes
}
