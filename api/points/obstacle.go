/* obstacle.go
 * Contains the obstacle discipline points calculator
 */

package points

import "math"

const (
	obstacleBasePoints     = 400
	obstacleSecondsPerPt   = 0.33
	obstacleIndividualBase = 15.00
	obstacleRelayBase      = 35.00
)

// ObstacleInput is an obstacle course run. Relay selects the relay base time
type ObstacleInput struct {
	TimeSeconds   float64
	PenaltyPoints int
	Relay         bool
}

// CalculateObstacle scores an obstacle run.
// Preconditions: TimeSeconds is positive, PenaltyPoints is not negative (0 when absent)
// Postconditions: Returns 400 at the base time, one point per 0.33s either side, minus penalties, floored at 0
func CalculateObstacle(input ObstacleInput) (int, error) {
	if math.IsNaN(input.TimeSeconds) || math.IsInf(input.TimeSeconds, 0) || input.TimeSeconds <= 0 {
		return 0, invalid("time", "must be a positive number of seconds, got %v", input.TimeSeconds)
	}
	if input.PenaltyPoints < 0 {
		return 0, invalid("penalty points", "must not be negative, got %d", input.PenaltyPoints)
	}

	base := obstacleIndividualBase
	if input.Relay {
		base = obstacleRelayBase
	}

	// half steps round away from the base time, matching swimming and laser run
	points := obstacleBasePoints - int(math.Round((input.TimeSeconds-base)/obstacleSecondsPerPt)) - input.PenaltyPoints
	return max(0, points), nil
}
