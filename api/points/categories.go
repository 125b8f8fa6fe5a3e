/* categories.go
 * Contains the disciplines, age categories and genders the calculators are keyed on, and parsers for operator input
 */

package points

import (
	"fmt"
	"strings"
)

// Discipline identifies one of the scored events of a competition
type Discipline string

const (
	FencingRanking Discipline = "fencing_ranking"
	FencingDE      Discipline = "fencing_de"
	Obstacle       Discipline = "obstacle"
	Swimming       Discipline = "swimming"
	LaserRun       Discipline = "laser_run"
	Riding         Discipline = "riding"
)

// Disciplines lists every discipline in competition order
var Disciplines = []Discipline{FencingRanking, FencingDE, Obstacle, Swimming, Riding, LaserRun}

// AgeCategory selects the rule set for time based disciplines
type AgeCategory string

const (
	Senior  AgeCategory = "Senior"
	Junior  AgeCategory = "Junior"
	U17     AgeCategory = "U17"
	U15     AgeCategory = "U15"
	Masters AgeCategory = "Masters"
)

// Gender only matters for Masters swimming
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

var disciplineAliases = map[string]Discipline{
	"fencing_ranking": FencingRanking,
	"fencing-ranking": FencingRanking,
	"ranking":         FencingRanking,
	"fencing_de":      FencingDE,
	"fencing-de":      FencingDE,
	"de":              FencingDE,
	"obstacle":        Obstacle,
	"swimming":        Swimming,
	"swim":            Swimming,
	"laser_run":       LaserRun,
	"laser-run":       LaserRun,
	"laserrun":        LaserRun,
	"riding":          Riding,
}

// ParseDiscipline converts operator input into a Discipline. Matching is case insensitive and accepts short aliases
func ParseDiscipline(input string) (Discipline, error) {
	d, ok := disciplineAliases[strings.ToLower(strings.TrimSpace(input))]
	if !ok {
		return "", invalid("discipline", "unknown discipline %q", input)
	}
	return d, nil
}

// ParseAgeCategory converts operator input into an AgeCategory, case insensitive
func ParseAgeCategory(input string) (AgeCategory, error) {
	for _, c := range []AgeCategory{Senior, Junior, U17, U15, Masters} {
		if strings.EqualFold(strings.TrimSpace(input), string(c)) {
			return c, nil
		}
	}
	return "", invalid("age category", "unknown age category %q", input)
}

// ParseGender accepts "male"/"m" and "female"/"f" in any case
func ParseGender(input string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	}
	return "", invalid("gender", "unknown gender %q", input)
}

func (d Discipline) String() string {
	return string(d)
}

// Title is the human readable name used in console output
func (d Discipline) Title() string {
	switch d {
	case FencingRanking:
		return "Fencing ranking round"
	case FencingDE:
		return "Fencing direct elimination"
	case Obstacle:
		return "Obstacle"
	case Swimming:
		return "Swimming"
	case LaserRun:
		return "Laser run"
	case Riding:
		return "Riding"
	}
	return fmt.Sprintf("Discipline(%s)", string(d))
}
