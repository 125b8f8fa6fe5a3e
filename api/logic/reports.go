/* reports.go
 * Contains the functions that render brackets, standings and start lists as chat friendly text
 */

package logic

import (
	"fmt"
	"sort"
	"strings"

	"pentathlon-scorer/api/bracket"
	"pentathlon-scorer/api/handicap"
	"pentathlon-scorer/api/points"
)

// RoundTitle names a round by how many athletes it can hold
func RoundTitle(matches int) string {
	switch matches {
	case 1:
		return "Final"
	case 2:
		return "Semifinals"
	case 4:
		return "Quarterfinals"
	}
	return fmt.Sprintf("Tableau of %d", matches*2)
}

func slotLabel(s *bracket.Slot) string {
	if s == nil {
		return "TBD"
	}
	return fmt.Sprintf("[%d] %s", s.Seed, s.DisplayName)
}

// FormatBracket renders every round of a bracket with its recorded outcomes
func FormatBracket(b bracket.Bracket) string {
	var response strings.Builder
	response.WriteString(fmt.Sprintf("Bracket %s: %d athletes, tableau of %d\n", b.CompetitionEventID, b.ParticipantCount, b.TableauSize))

	for _, round := range b.Rounds {
		response.WriteString(fmt.Sprintf("%s\n", RoundTitle(len(round.Matches))))
		for _, m := range round.Matches {
			if m.OccupiedSlots() == 0 {
				continue
			}
			response.WriteString(formatMatch(m))
		}
	}

	if b.Placements != nil {
		response.WriteString("Complete\n")
	}
	return response.String()
}

func formatMatch(m bracket.Match) string {
	if m.IsBye {
		return fmt.Sprintf("- %s: %s (bye)\n", m.ID, slotLabel(m.Winner()))
	}
	line := fmt.Sprintf("- %s: %s vs %s", m.ID, slotLabel(m.Slot1), slotLabel(m.Slot2))
	if winner := m.Winner(); winner != nil {
		line += fmt.Sprintf(" -> %s %d-%d", winner.DisplayName, m.Score1, m.Score2)
	}
	return line + "\n"
}

// FormatPending lists the matches waiting for a result
func FormatPending(matches []bracket.Match) string {
	if len(matches) == 0 {
		return "No matches are waiting for a result"
	}
	var response strings.Builder
	response.WriteString("Waiting for a result:\n")
	for _, m := range matches {
		response.WriteString(fmt.Sprintf("- %s: %s vs %s\n", m.ID, slotLabel(m.Slot1), slotLabel(m.Slot2)))
	}
	return response.String()
}

// FormatPlacements lists final ranks in order. names maps athlete id to display name
func FormatPlacements(placements map[string]int, names map[string]string) string {
	type entry struct {
		id   string
		rank int
	}
	entries := make([]entry, 0, len(placements))
	for id, rank := range placements {
		entries = append(entries, entry{id: id, rank: rank})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].rank < entries[j].rank
	})

	var response strings.Builder
	response.WriteString("Final placements:\n")
	for _, e := range entries {
		name := names[e.id]
		if name == "" {
			name = e.id
		}
		response.WriteString(fmt.Sprintf("%d. %s\n", e.rank, name))
	}
	return response.String()
}

// FormatStandings lists athletes by total with a per discipline breakdown
func FormatStandings(standings []Standing) string {
	if len(standings) == 0 {
		return "No scores have been recorded yet"
	}
	var response strings.Builder
	response.WriteString("Standings:\n")
	for i, s := range standings {
		var parts []string
		for _, d := range points.Disciplines {
			if p, ok := s.ByDiscipline[d]; ok {
				parts = append(parts, fmt.Sprintf("%s %d", d.Title(), p))
			}
		}
		response.WriteString(fmt.Sprintf("%d. %s: %d (%s)\n", i+1, s.DisplayName, s.Total, strings.Join(parts, ", ")))
	}
	return response.String()
}

// FormatStartList renders handicap assignments in start order
func FormatStartList(assignments []handicap.Assignment) string {
	if len(assignments) == 0 {
		return "No athletes to start"
	}
	var response strings.Builder
	response.WriteString("Laser run start list:\n")
	for _, a := range assignments {
		line := fmt.Sprintf("%d. %s %s gate %s", a.StationNumber, a.DisplayName, a.FormattedStartTime, a.GateLabel)
		if a.IsPackStart {
			line += fmt.Sprintf(" (pack, %ds behind)", a.RawDelaySeconds)
		}
		response.WriteString(line + "\n")
	}
	return response.String()
}
