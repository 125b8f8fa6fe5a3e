/* swimming.go
 * Contains the swimming points calculator and its per category configurations
 */

package points

import "math"

// SwimmingConfig describes one swimming rule set. Times are in hundredths of a second
type SwimmingConfig struct {
	Distance   int
	BaseTime   int
	BasePoints int
	Increment  int
}

var (
	seniorSwim       = SwimmingConfig{Distance: 200, BaseTime: 15000, BasePoints: 250, Increment: 50}
	u17Swim          = SwimmingConfig{Distance: 100, BaseTime: 7000, BasePoints: 250, Increment: 25}
	u15Swim          = SwimmingConfig{Distance: 50, BaseTime: 3500, BasePoints: 250, Increment: 20}
	mastersMenSwim   = SwimmingConfig{Distance: 200, BaseTime: 17000, BasePoints: 250, Increment: 50}
	mastersWomenSwim = SwimmingConfig{Distance: 200, BaseTime: 18000, BasePoints: 250, Increment: 50}
)

// SwimmingInput is a swim result. Gender is only consulted for Masters
type SwimmingInput struct {
	TimeHundredths int
	PenaltyPoints  int
	AgeCategory    AgeCategory
	Gender         Gender
}

// SwimmingConfigFor picks the rule set for a category
func SwimmingConfigFor(category AgeCategory, gender Gender) (SwimmingConfig, error) {
	switch category {
	case Senior, Junior:
		return seniorSwim, nil
	case U17:
		return u17Swim, nil
	case U15:
		return u15Swim, nil
	case Masters:
		switch gender {
		case Male:
			return mastersMenSwim, nil
		case Female:
			return mastersWomenSwim, nil
		}
		return SwimmingConfig{}, invalid("gender", "masters swimming needs Male or Female, got %q", gender)
	}
	return SwimmingConfig{}, invalid("age category", "unknown age category %q", category)
}

// CalculateSwimming scores a swim.
// Preconditions: TimeHundredths is positive, PenaltyPoints is not negative, AgeCategory is known (and Gender for Masters)
// Postconditions: Returns basePoints - round((time - baseTime) / increment) - penalties, floored at 0
func CalculateSwimming(input SwimmingInput) (int, error) {
	if input.TimeHundredths <= 0 {
		return 0, invalid("time", "must be positive hundredths of a second, got %d", input.TimeHundredths)
	}
	if input.PenaltyPoints < 0 {
		return 0, invalid("penalty points", "must not be negative, got %d", input.PenaltyPoints)
	}

	cfg, err := SwimmingConfigFor(input.AgeCategory, input.Gender)
	if err != nil {
		return 0, err
	}

	delta := float64(input.TimeHundredths-cfg.BaseTime) / float64(cfg.Increment)
	// math.Round takes half steps away from zero: half an increment faster gains a point, half slower loses one
	points := cfg.BasePoints - int(math.Round(delta)) - input.PenaltyPoints
	return max(0, points), nil
}
