/* arguments.go
 * Contains the parsers that turn command arguments into api inputs
 */

package bot

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"pentathlon-scorer/api/api"
	"pentathlon-scorer/api/bracket"
	"pentathlon-scorer/api/points"
)

// errUsage marks arguments that do not fit the command
var errUsage = errors.New("invalid arguments")

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// optionKeys lists the key=value options each discipline reads
var optionKeys = map[points.Discipline][]string{
	points.FencingRanking: {"victories", "competitors"},
	points.FencingDE:      {"placement"},
	points.Obstacle:       {"time", "penalty", "relay"},
	points.Swimming:       {"time", "penalty", "category", "gender"},
	points.LaserRun:       {"finish", "delay", "penalty", "category", "relay"},
	points.Riding:         {"knockdowns", "disobediences", "over", "other", "eliminated"},
}

// parseOptions reads key=value arguments for a discipline. Keys are case insensitive, unknown or repeated keys are
// rejected
func parseOptions(discipline points.Discipline, args []string) (map[string]string, error) {
	allowed := make(map[string]bool)
	for _, k := range optionKeys[discipline] {
		allowed[k] = true
	}

	opts := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if !ok || key == "" || strings.TrimSpace(value) == "" {
			return nil, usage("expected key=value, got %q", arg)
		}
		if !allowed[key] {
			return nil, usage("%s does not take %q, options are %s", discipline.Title(), key, strings.Join(optionKeys[discipline], ", "))
		}
		if _, dup := opts[key]; dup {
			return nil, usage("%q given twice", key)
		}
		opts[key] = strings.TrimSpace(value)
	}
	return opts, nil
}

func intOption(opts map[string]string, key string) (int, error) {
	v, ok := opts[key]
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, usage("%s must be a whole number, got %q", key, v)
	}
	return n, nil
}

func boolOption(opts map[string]string, key string) (bool, error) {
	v, ok := opts[key]
	if !ok {
		return false, nil
	}
	switch strings.ToLower(v) {
	case "yes", "y", "true", "1":
		return true, nil
	case "no", "n", "false", "0":
		return false, nil
	}
	return false, usage("%s must be yes or no, got %q", key, v)
}

func requireOption(opts map[string]string, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if _, ok := opts[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return usage("missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// parseSeconds reads a time given as seconds ("72.5") or minutes and seconds ("1:12.5")
func parseSeconds(value string) (float64, error) {
	minutes, seconds, hasMinutes := strings.Cut(value, ":")
	if !hasMinutes {
		s, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(s) || math.IsInf(s, 0) {
			return 0, usage("invalid time %q", value)
		}
		return s, nil
	}

	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 {
		return 0, usage("invalid time %q", value)
	}
	s, err := strconv.ParseFloat(seconds, 64)
	if err != nil || s < 0 || s >= 60 {
		return 0, usage("invalid time %q", value)
	}
	return float64(m)*60 + s, nil
}

func ageCategoryOption(opts map[string]string) (points.AgeCategory, error) {
	v, ok := opts["category"]
	if !ok {
		return points.Senior, nil
	}
	return points.ParseAgeCategory(v)
}

// buildScoreEntry turns the options of a $points or $score command into a score entry
// Preconditions: Receives the discipline and its key=value arguments
// Postconditions: Returns the entry with the discipline's input filled in, or a usage error. Category defaults to
// Senior and gender to Male
func buildScoreEntry(discipline points.Discipline, args []string) (api.ScoreEntry, error) {
	entry := api.ScoreEntry{Discipline: discipline}

	opts, err := parseOptions(discipline, args)
	if err != nil {
		return entry, err
	}

	switch discipline {
	case points.FencingRanking:
		if err := requireOption(opts, "victories", "competitors"); err != nil {
			return entry, err
		}
		if entry.FencingRanking.Victories, err = intOption(opts, "victories"); err != nil {
			return entry, err
		}
		if entry.FencingRanking.Competitors, err = intOption(opts, "competitors"); err != nil {
			return entry, err
		}

	case points.FencingDE:
		if err := requireOption(opts, "placement"); err != nil {
			return entry, err
		}
		if entry.FencingDE.Placement, err = intOption(opts, "placement"); err != nil {
			return entry, err
		}

	case points.Obstacle:
		if err := requireOption(opts, "time"); err != nil {
			return entry, err
		}
		if entry.Obstacle.TimeSeconds, err = parseSeconds(opts["time"]); err != nil {
			return entry, err
		}
		if entry.Obstacle.PenaltyPoints, err = intOption(opts, "penalty"); err != nil {
			return entry, err
		}
		if entry.Obstacle.Relay, err = boolOption(opts, "relay"); err != nil {
			return entry, err
		}

	case points.Swimming:
		if err := requireOption(opts, "time"); err != nil {
			return entry, err
		}
		seconds, err := parseSeconds(opts["time"])
		if err != nil {
			return entry, err
		}
		entry.Swimming.TimeHundredths = int(math.Round(seconds * 100))
		if entry.Swimming.PenaltyPoints, err = intOption(opts, "penalty"); err != nil {
			return entry, err
		}
		if entry.Swimming.AgeCategory, err = ageCategoryOption(opts); err != nil {
			return entry, err
		}
		entry.Swimming.Gender = points.Male
		if g, ok := opts["gender"]; ok {
			if entry.Swimming.Gender, err = points.ParseGender(g); err != nil {
				return entry, err
			}
		}

	case points.LaserRun:
		if err := requireOption(opts, "finish"); err != nil {
			return entry, err
		}
		if entry.LaserRun.FinishTimeSeconds, err = parseSeconds(opts["finish"]); err != nil {
			return entry, err
		}
		if d, ok := opts["delay"]; ok {
			if entry.LaserRun.StartDelaySeconds, err = parseSeconds(d); err != nil {
				return entry, err
			}
		}
		if entry.LaserRun.PenaltySeconds, err = intOption(opts, "penalty"); err != nil {
			return entry, err
		}
		if entry.LaserRun.AgeCategory, err = ageCategoryOption(opts); err != nil {
			return entry, err
		}
		if entry.LaserRun.Relay, err = boolOption(opts, "relay"); err != nil {
			return entry, err
		}

	case points.Riding:
		if entry.Riding.Knockdowns, err = intOption(opts, "knockdowns"); err != nil {
			return entry, err
		}
		if entry.Riding.Disobediences, err = intOption(opts, "disobediences"); err != nil {
			return entry, err
		}
		if entry.Riding.TimeOverSeconds, err = intOption(opts, "over"); err != nil {
			return entry, err
		}
		if entry.Riding.OtherPenalties, err = intOption(opts, "other"); err != nil {
			return entry, err
		}
		if entry.Riding.Eliminated, err = boolOption(opts, "eliminated"); err != nil {
			return entry, err
		}
	}
	return entry, nil
}

// parseBoutScore reads "15-12" as the touches of slot one and slot two
func parseBoutScore(value string) (int, int, error) {
	left, right, ok := strings.Cut(value, "-")
	if !ok {
		return 0, 0, usage("score must look like 15-12, got %q", value)
	}
	s1, err1 := strconv.Atoi(strings.TrimSpace(left))
	s2, err2 := strconv.Atoi(strings.TrimSpace(right))
	if err1 != nil || err2 != nil {
		return 0, 0, usage("score must look like 15-12, got %q", value)
	}
	return s1, s2, nil
}

// isRankingToken reports whether an argument of $seed carries ranking round results
func isRankingToken(arg string) bool {
	return strings.Count(arg, ":") == 3
}

// parseRankingToken reads "Name:victories:scored:received"
func parseRankingToken(arg string) (bracket.RankingEntry, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 4 || strings.TrimSpace(parts[0]) == "" {
		return bracket.RankingEntry{}, usage("expected Name:victories:scored:received, got %q", arg)
	}

	values := make([]int, 3)
	for i, p := range parts[1:] {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return bracket.RankingEntry{}, usage("expected Name:victories:scored:received, got %q", arg)
		}
		values[i] = n
	}

	return bracket.RankingEntry{
		DisplayName:     strings.TrimSpace(parts[0]),
		Victories:       values[0],
		TouchesScored:   values[1],
		TouchesReceived: values[2],
	}, nil
}
