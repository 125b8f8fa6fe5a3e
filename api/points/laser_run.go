/* laser_run.go
 * Contains the laser run points calculator
 */

package points

import "math"

const laserRunBasePoints = 500

// Target times in seconds
var laserRunTargets = map[AgeCategory]float64{
	Senior:  800, // 13:20
	Junior:  800,
	U17:     690, // 11:30
	U15:     570, // 9:30
	Masters: 720, // 12:00
}

const laserRunRelayTarget = 700 // 11:40

// LaserRunInput is a laser run finish. StartDelaySeconds is the handicap delay the athlete started with
type LaserRunInput struct {
	FinishTimeSeconds float64
	StartDelaySeconds float64
	PenaltySeconds    int
	AgeCategory       AgeCategory
	Relay             bool
}

// LaserRunTarget returns the target time for a category
func LaserRunTarget(category AgeCategory, relay bool) (float64, error) {
	if relay {
		return laserRunRelayTarget, nil
	}
	target, ok := laserRunTargets[category]
	if !ok {
		return 0, invalid("age category", "unknown age category %q", category)
	}
	return target, nil
}

// CalculateLaserRun scores a laser run.
// Preconditions: FinishTimeSeconds is positive and later than StartDelaySeconds, penalties are not negative
// Postconditions: Returns 500 + (target - (finish - startDelay)) - penalties, one point per second, floored at 0
func CalculateLaserRun(input LaserRunInput) (int, error) {
	if math.IsNaN(input.FinishTimeSeconds) || math.IsInf(input.FinishTimeSeconds, 0) || input.FinishTimeSeconds <= 0 {
		return 0, invalid("finish time", "must be a positive number of seconds, got %v", input.FinishTimeSeconds)
	}
	if math.IsNaN(input.StartDelaySeconds) || input.StartDelaySeconds < 0 {
		return 0, invalid("start delay", "must not be negative, got %v", input.StartDelaySeconds)
	}
	if input.StartDelaySeconds >= input.FinishTimeSeconds {
		return 0, invalid("start delay", "%v is not before the finish time %v", input.StartDelaySeconds, input.FinishTimeSeconds)
	}
	if input.PenaltySeconds < 0 {
		return 0, invalid("penalty seconds", "must not be negative, got %d", input.PenaltySeconds)
	}

	target, err := LaserRunTarget(input.AgeCategory, input.Relay)
	if err != nil {
		return 0, err
	}

	effective := input.FinishTimeSeconds - input.StartDelaySeconds
	// half seconds round away from the target in both directions
	points := laserRunBasePoints + int(math.Round(target-effective)) - input.PenaltySeconds
	return max(0, points), nil
}
