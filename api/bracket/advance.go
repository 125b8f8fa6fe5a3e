/* advance.go
 * Contains the logic for recording match outcomes, correcting them, and propagating winners through the tableau
 */

package bracket

import "fmt"

// AdvanceWinner records the outcome of a match and moves the winner forward.
// Preconditions: Receives the current bracket and a result whose match exists and whose winner occupies that match.
// Both opponents must be known unless the match is a bye
// Postconditions: Returns a new bracket with the outcome applied. If the match previously had a different winner,
// everything downstream that was built on the old winner is cleared before the tableau is re-derived. The input
// bracket is never modified; on error it is returned as is
func AdvanceWinner(b Bracket, result MatchResult) (Bracket, error) {
	ri, pi, ok := locate(b, result.MatchID)
	if !ok {
		return b, fmt.Errorf("%w: %s", ErrMatchNotFound, result.MatchID)
	}
	if result.Score1 < 0 || result.Score2 < 0 {
		return b, fmt.Errorf("%w: scores must not be negative (%d-%d)", ErrInvalidScore, result.Score1, result.Score2)
	}

	current := b.Rounds[ri].Matches[pi]
	slot := current.SlotOf(result.WinnerID)
	if result.WinnerID == "" || slot == nil {
		return b, fmt.Errorf("%w: %q in %s", ErrWinnerNotInMatch, result.WinnerID, result.MatchID)
	}
	if current.OccupiedSlots() < 2 && !current.IsBye {
		return b, fmt.Errorf("%w: %s", ErrMatchNotReady, result.MatchID)
	}

	out := b.clone()
	m := &out.Rounds[ri].Matches[pi]

	// A different winner is a correction, undo what the old winner built downstream
	if m.HasWinner() && m.WinnerID != result.WinnerID {
		clearDownstream(&out, ri, pi, m.WinnerID)
	}

	m.WinnerID = result.WinnerID
	m.WinnerSeed = slot.Seed
	m.Score1 = result.Score1
	m.Score2 = result.Score2

	propagate(&out)
	out.Placements = placementsIfComplete(out)
	return out, nil
}

// clearDownstream removes athleteID from the match fed by (ri, pi) and, when that invalidates the next match's
// outcome, continues with whoever had won it.
// Preconditions: ri and pi are zero-based indices of an existing match
// Postconditions: Every slot and outcome that depended on athleteID advancing from (ri, pi) is cleared
func clearDownstream(b *Bracket, ri int, pi int, athleteID string) {
	next := ri + 1
	if next >= len(b.Rounds) {
		return
	}

	np := pi / 2
	m := &b.Rounds[next].Matches[np]
	slot := &m.Slot1
	if pi%2 == 1 {
		slot = &m.Slot2
	}
	if *slot == nil || (*slot).AthleteID != athleteID {
		return
	}
	*slot = nil

	// The opponent changed, so any outcome here is no longer valid
	if m.HasWinner() {
		winner := m.WinnerID
		clearOutcome(m)
		m.IsBye = false
		clearDownstream(b, next, np, winner)
	}
}

// propagate re-derives every slot of rounds 2 and up from the current winners of their feeders. It is a full
// forward pass so it stays correct after corrections.
// Postconditions: Slots reflect feeder winners, stale outcomes are dropped, and matches whose missing opponent can
// never arrive are resolved as byes
func propagate(b *Bracket) {
	if len(b.Rounds) == 0 {
		return
	}

	// dead marks matches that can never produce an athlete for the next round
	dead := make([]bool, len(b.Rounds[0].Matches))
	for i, m := range b.Rounds[0].Matches {
		dead[i] = m.OccupiedSlots() == 0
	}

	for ri := 1; ri < len(b.Rounds); ri++ {
		prev := b.Rounds[ri-1].Matches
		nextDead := make([]bool, len(b.Rounds[ri].Matches))

		for pi := range b.Rounds[ri].Matches {
			m := &b.Rounds[ri].Matches[pi]
			feeder1, feeder2 := prev[2*pi], prev[2*pi+1]

			m.Slot1 = advancingSlot(feeder1)
			m.Slot2 = advancingSlot(feeder2)
			settle(m, dead[2*pi], dead[2*pi+1])

			nextDead[pi] = dead[2*pi] && dead[2*pi+1]
		}
		dead = nextDead
	}
}

// settle reconciles a match's outcome with its freshly derived slots
func settle(m *Match, deadFeeder1 bool, deadFeeder2 bool) {
	if m.HasWinner() && m.SlotOf(m.WinnerID) == nil {
		clearOutcome(m)
	}

	switch m.OccupiedSlots() {
	case 2:
		if m.IsBye {
			clearOutcome(m)
			m.IsBye = false
		}
	case 1:
		opponentDead := deadFeeder2
		if m.Slot1 == nil {
			opponentDead = deadFeeder1
		}
		if opponentDead {
			resolveBye(m)
			return
		}
		// Opponent still to come, nothing can be recorded yet
		clearOutcome(m)
		m.IsBye = false
	default:
		clearOutcome(m)
		m.IsBye = false
	}
}

// advancingSlot returns the occupant that a feeder match sends forward, or nil if it has no winner yet
func advancingSlot(feeder Match) *Slot {
	winner := feeder.Winner()
	if winner == nil {
		return nil
	}
	return &Slot{AthleteID: winner.AthleteID, Seed: winner.Seed, DisplayName: winner.DisplayName}
}

func clearOutcome(m *Match) {
	m.WinnerID = ""
	m.WinnerSeed = 0
	m.Score1 = 0
	m.Score2 = 0
}
