/* models.go
 * This file contains the structs and errors used by api consumers
 */

package api

import (
	"errors"
	"fmt"

	"pentathlon-scorer/api/points"
)

var (
	// ErrBracketIncomplete is returned when placements are requested before the final is decided
	ErrBracketIncomplete = errors.New("bracket is not complete")

	// ErrUnknownAthlete is returned when a name matches no athlete of the event
	ErrUnknownAthlete = errors.New("unknown athlete")

	// ErrDuplicateName is returned when two athletes of one bracket share a display name
	ErrDuplicateName = errors.New("athlete name used more than once")

	// ErrAmbiguousAthlete is returned when a name belongs to more than one athlete of the event
	ErrAmbiguousAthlete = errors.New("name matches more than one athlete")
)

// ScoreEntry is one raw performance. Only the input matching Discipline is read, the rest are ignored
type ScoreEntry struct {
	AthleteID   string
	DisplayName string
	Discipline  points.Discipline

	FencingRanking points.FencingRankingInput
	FencingDE      points.FencingDEInput
	Obstacle       points.ObstacleInput
	Swimming       points.SwimmingInput
	LaserRun       points.LaserRunInput
	Riding         points.RidingInput
}

// CalculatePoints dispatches an entry to the calculator of its discipline
func CalculatePoints(entry ScoreEntry) (int, error) {
	switch entry.Discipline {
	case points.FencingRanking:
		return points.CalculateFencingRankingRound(entry.FencingRanking)
	case points.FencingDE:
		return points.CalculateFencingDE(entry.FencingDE)
	case points.Obstacle:
		return points.CalculateObstacle(entry.Obstacle)
	case points.Swimming:
		return points.CalculateSwimming(entry.Swimming)
	case points.LaserRun:
		return points.CalculateLaserRun(entry.LaserRun)
	case points.Riding:
		return points.CalculateRiding(entry.Riding)
	}
	return 0, fmt.Errorf("unknown discipline: %q", entry.Discipline)
}
