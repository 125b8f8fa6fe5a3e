/* riding.go
 * Contains the riding points calculator
 */

package points

const (
	ridingBasePoints       = 300
	knockdownPenalty       = 7
	disobediencePenalty    = 10
	timeOverPenaltyPerSec  = 1
	otherPenaltyMultiplier = 10
)

// RidingInput is a riding round. Zero values mean no penalty
type RidingInput struct {
	Knockdowns      int
	Disobediences   int
	TimeOverSeconds int
	OtherPenalties  int
	Eliminated      bool
}

// CalculateRiding scores a riding round: 300 minus 7 per knockdown, 10 per disobedience, 1 per second over the time
// allowed and 10 per other penalty. An eliminated rider scores 0
func CalculateRiding(input RidingInput) (int, error) {
	fields := []struct {
		name  string
		value int
	}{
		{"knockdowns", input.Knockdowns},
		{"disobediences", input.Disobediences},
		{"time over", input.TimeOverSeconds},
		{"other penalties", input.OtherPenalties},
	}
	for _, f := range fields {
		if f.value < 0 {
			return 0, invalid(f.name, "must not be negative, got %d", f.value)
		}
	}
	if input.Eliminated {
		return 0, nil
	}

	deductions := knockdownPenalty*input.Knockdowns +
		disobediencePenalty*input.Disobediences +
		timeOverPenaltyPerSec*input.TimeOverSeconds +
		otherPenaltyMultiplier*input.OtherPenalties
	return max(0, ridingBasePoints-deductions), nil
}
