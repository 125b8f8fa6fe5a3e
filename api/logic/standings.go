/* standings.go
 * Contains the logic for totalling discipline scores into competition standings
 */

package logic

import (
	"sort"

	"pentathlon-scorer/api/handicap"
	"pentathlon-scorer/api/points"
	"pentathlon-scorer/api/store"
)

// Standing is an athlete's running total across disciplines
type Standing struct {
	AthleteID    string
	DisplayName  string
	Total        int
	ByDiscipline map[points.Discipline]int
}

// BuildStandings totals the scores of an event per athlete.
// Preconditions: Receives every score stored for one event
// Postconditions: Returns one Standing per athlete ordered by total descending, ties by display name
func BuildStandings(scores []store.ScoreRecord) []Standing {
	index := make(map[string]int)
	var standings []Standing

	for _, score := range scores {
		i, ok := index[score.AthleteID]
		if !ok {
			i = len(standings)
			index[score.AthleteID] = i
			standings = append(standings, Standing{
				AthleteID:    score.AthleteID,
				DisplayName:  score.DisplayName,
				ByDiscipline: make(map[points.Discipline]int),
			})
		}
		standings[i].ByDiscipline[score.Discipline] = score.Points
	}

	for i := range standings {
		for _, p := range standings[i].ByDiscipline {
			standings[i].Total += p
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Total != standings[j].Total {
			return standings[i].Total > standings[j].Total
		}
		return standings[i].DisplayName < standings[j].DisplayName
	})
	return standings
}

// HandicapInputs converts standings into start list input. Laser run points are left out since the handicap is
// decided before that discipline is run
func HandicapInputs(standings []Standing) []handicap.Input {
	inputs := make([]handicap.Input, len(standings))
	for i, s := range standings {
		inputs[i] = handicap.Input{
			AthleteID:        s.AthleteID,
			DisplayName:      s.DisplayName,
			CumulativePoints: s.Total - s.ByDiscipline[points.LaserRun],
		}
	}
	return inputs
}
