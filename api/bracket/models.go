/* models.go
 * Contains the structs used by the bracket package to describe a direct-elimination tableau
 */

package bracket

import (
	"fmt"
	"time"
)

// Seed is an athlete's entry into the tableau, produced by the ranking round
type Seed struct {
	AthleteID   string `json:"athlete_id" bson:"athleteid"`
	Seed        int    `json:"seed" bson:"seed"`
	DisplayName string `json:"display_name" bson:"displayname"`
}

// Slot is one side of a match. A nil *Slot means the side is empty
type Slot struct {
	AthleteID   string `json:"athlete_id"`
	Seed        int    `json:"seed"`
	DisplayName string `json:"display_name"`
}

// Match is a single bout of the tableau, addressed by round and position (both 1-based)
type Match struct {
	ID       string `json:"id"`
	Round    int    `json:"round"`
	Position int    `json:"position"`

	Slot1 *Slot `json:"slot1,omitempty"`
	Slot2 *Slot `json:"slot2,omitempty"`

	// Recorded outcome. WinnerID is empty until a result is recorded
	WinnerID   string `json:"winner_id,omitempty"`
	WinnerSeed int    `json:"winner_seed,omitempty"`
	Score1     int    `json:"score1"`
	Score2     int    `json:"score2"`

	IsBye bool `json:"is_bye"`

	// Matches of the previous round that fill Slot1 and Slot2. Empty for round 1
	FeederMatchIDs [2]string `json:"feeder_match_ids"`
}

// Round groups the matches of one round in position order
type Round struct {
	Number  int     `json:"number"`
	Matches []Match `json:"matches"`
}

// Bracket is the full state of a direct-elimination event
type Bracket struct {
	CompetitionEventID string         `json:"competition_event_id"`
	TableauSize        int            `json:"tableau_size"`
	ParticipantCount   int            `json:"participant_count"`
	Rounds             []Round        `json:"rounds"`
	Placements         map[string]int `json:"placements,omitempty"`
	GeneratedAt        time.Time      `json:"generated_at"`
}

// MatchResult is the outcome of a match as entered by an administrator
type MatchResult struct {
	MatchID  string `json:"match_id"`
	WinnerID string `json:"winner_id"`
	Score1   int    `json:"score1"`
	Score2   int    `json:"score2"`
}

// MatchID builds the identifier of the match at the given round and position
func MatchID(round int, position int) string {
	return fmt.Sprintf("R%dM%d", round, position)
}

// HasWinner reports whether an outcome has been recorded for the match
func (m Match) HasWinner() bool {
	return m.WinnerID != ""
}

// OccupiedSlots returns the number of populated slots
func (m Match) OccupiedSlots() int {
	count := 0
	if m.Slot1 != nil {
		count++
	}
	if m.Slot2 != nil {
		count++
	}
	return count
}

// SlotOf returns the slot held by athleteID, or nil if the athlete is not in this match
func (m Match) SlotOf(athleteID string) *Slot {
	if m.Slot1 != nil && m.Slot1.AthleteID == athleteID {
		return m.Slot1
	}
	if m.Slot2 != nil && m.Slot2.AthleteID == athleteID {
		return m.Slot2
	}
	return nil
}

// Loser returns the slot that did not win the match. It is nil for byes and undecided matches
func (m Match) Loser() *Slot {
	if !m.HasWinner() || m.IsBye {
		return nil
	}
	if m.Slot1 != nil && m.Slot1.AthleteID != m.WinnerID {
		return m.Slot1
	}
	if m.Slot2 != nil && m.Slot2.AthleteID != m.WinnerID {
		return m.Slot2
	}
	return nil
}

// Winner returns the slot that won the match, or nil if no outcome is recorded
func (m Match) Winner() *Slot {
	if !m.HasWinner() {
		return nil
	}
	return m.SlotOf(m.WinnerID)
}

// TotalRounds returns the depth of the tableau
func (b Bracket) TotalRounds() int {
	return len(b.Rounds)
}

// FinalMatch returns the single match of the last round
func (b Bracket) FinalMatch() (Match, bool) {
	if len(b.Rounds) == 0 || len(b.Rounds[len(b.Rounds)-1].Matches) == 0 {
		return Match{}, false
	}
	return b.Rounds[len(b.Rounds)-1].Matches[0], true
}

// FindMatch looks a match up by its identifier
func FindMatch(b Bracket, matchID string) (Match, bool) {
	round, position, ok := locate(b, matchID)
	if !ok {
		return Match{}, false
	}
	return b.Rounds[round].Matches[position], true
}

// locate resolves a match identifier to zero-based round and position indices
func locate(b Bracket, matchID string) (int, int, bool) {
	var round, position int
	if _, err := fmt.Sscanf(matchID, "R%dM%d", &round, &position); err != nil {
		return 0, 0, false
	}
	if MatchID(round, position) != matchID {
		return 0, 0, false
	}
	if round < 1 || round > len(b.Rounds) {
		return 0, 0, false
	}
	if position < 1 || position > len(b.Rounds[round-1].Matches) {
		return 0, 0, false
	}
	return round - 1, position - 1, true
}

// clone returns a deep copy so callers never observe mutation of a bracket they hold
func (b Bracket) clone() Bracket {
	out := b
	out.Rounds = make([]Round, len(b.Rounds))
	for i, round := range b.Rounds {
		matches := make([]Match, len(round.Matches))
		for j, m := range round.Matches {
			matches[j] = m
			matches[j].Slot1 = copySlot(m.Slot1)
			matches[j].Slot2 = copySlot(m.Slot2)
		}
		out.Rounds[i] = Round{Number: round.Number, Matches: matches}
	}
	if b.Placements != nil {
		out.Placements = make(map[string]int, len(b.Placements))
		for athleteID, rank := range b.Placements {
			out.Placements[athleteID] = rank
		}
	}
	return out
}

func copySlot(s *Slot) *Slot {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
