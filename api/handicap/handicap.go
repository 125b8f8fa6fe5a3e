/* handicap.go
 * Contains the logic for turning cumulative points into a staggered laser run start list
 */

package handicap

import (
	"fmt"
	"sort"
)

const (
	// MaxDelaySeconds caps the handicap. Anyone further behind starts with the pack
	MaxDelaySeconds = 90

	// PackGate is the gate given to pack starters, who share a single start
	PackGate = "PACK"
)

var gates = []string{"A", "B"}

// Input is an athlete's standing before the laser run
type Input struct {
	AthleteID        string `json:"athlete_id"`
	DisplayName      string `json:"display_name"`
	CumulativePoints int    `json:"cumulative_points"`
}

// Assignment is an athlete's slot in the start list
type Assignment struct {
	AthleteID          string `json:"athlete_id"`
	DisplayName        string `json:"display_name"`
	RawDelaySeconds    int    `json:"raw_delay_seconds"`
	CappedDelaySeconds int    `json:"capped_delay_seconds"`
	IsPackStart        bool   `json:"is_pack_start"`
	StationNumber      int    `json:"station_number"`
	GateLabel          string `json:"gate_label"`
	FormattedStartTime string `json:"formatted_start_time"`
}

// CalculateHandicapStarts builds the start list for a handicap start.
// Preconditions: Receives every athlete's cumulative points, in the order ties should keep
// Postconditions: Returns one assignment per athlete sorted by start delay. The leader starts at 0:00, one point
// behind is one second later, anyone more than 90 seconds behind is a pack starter at 1:30 placed after everyone
// else (ordered among themselves by raw delay). Stations are numbered from 1 in start order and non pack starters
// alternate between gates A and B
func CalculateHandicapStarts(inputs []Input) []Assignment {
	if len(inputs) == 0 {
		return []Assignment{}
	}

	leader := inputs[0].CumulativePoints
	for _, in := range inputs[1:] {
		leader = max(leader, in.CumulativePoints)
	}

	assignments := make([]Assignment, len(inputs))
	for i, in := range inputs {
		raw := leader - in.CumulativePoints
		a := Assignment{
			AthleteID:          in.AthleteID,
			DisplayName:        in.DisplayName,
			RawDelaySeconds:    raw,
			CappedDelaySeconds: raw,
		}
		if raw > MaxDelaySeconds {
			a.CappedDelaySeconds = MaxDelaySeconds
			a.IsPackStart = true
		}
		assignments[i] = a
	}

	sort.SliceStable(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if a.IsPackStart != b.IsPackStart {
			return !a.IsPackStart
		}
		if a.IsPackStart {
			return a.RawDelaySeconds < b.RawDelaySeconds
		}
		return a.CappedDelaySeconds < b.CappedDelaySeconds
	})

	gate := 0
	for i := range assignments {
		a := &assignments[i]
		a.StationNumber = i + 1
		a.FormattedStartTime = FormatDelay(a.CappedDelaySeconds)
		if a.IsPackStart {
			a.GateLabel = PackGate
			continue
		}
		a.GateLabel = gates[gate%len(gates)]
		gate++
	}
	return assignments
}

// FormatDelay renders a delay in seconds as M:SS
func FormatDelay(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
