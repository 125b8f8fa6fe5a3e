/* input_processing_test.go
 * Contains unit tests for input_processing.go functions
 */

package logic

import (
	"fmt"
	"testing"

	"pentathlon-scorer/api/bracket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckAthleteNames_ExactMatches tests exact name matching
func TestCheckAthleteNames_ExactMatches(t *testing.T) {
	valid := []string{"Anna Berg", "Ben Carter", "Cleo Duval"}

	formatted, invalid := CheckAthleteNames([]string{"Anna Berg", "Cleo Duval"}, valid)

	assert.Equal(t, []string{"Anna Berg", "Cleo Duval"}, formatted)
	assert.Empty(t, invalid)
}

// TestCheckAthleteNames_CaseInsensitive tests case-insensitive matching
func TestCheckAthleteNames_CaseInsensitive(t *testing.T) {
	valid := []string{"Anna Berg", "Ben Carter"}

	formatted, invalid := CheckAthleteNames([]string{"ANNA BERG", "ben carter"}, valid)

	assert.Equal(t, []string{"Anna Berg", "Ben Carter"}, formatted)
	assert.Empty(t, invalid)
}

// TestCheckAthleteNames_Partial tests that a partial name resolves
func TestCheckAthleteNames_Partial(t *testing.T) {
	valid := []string{"Anna Berg", "Ben Carter", "Cleo Duval"}

	formatted, invalid := CheckAthleteNames([]string{"carter"}, valid)

	assert.Equal(t, []string{"Ben Carter"}, formatted)
	assert.Empty(t, invalid)
}

// TestCheckAthleteNames_PrefersExact tests that an exact match beats a longer fuzzy match
func TestCheckAthleteNames_PrefersExact(t *testing.T) {
	valid := []string{"Li Na Zhou", "Li Na"}

	formatted, _ := CheckAthleteNames([]string{"li na"}, valid)

	assert.Equal(t, []string{"Li Na"}, formatted)
}

// TestCheckAthleteNames_Invalid tests handling of unknown names
func TestCheckAthleteNames_Invalid(t *testing.T) {
	valid := []string{"Anna Berg", "Ben Carter"}

	formatted, invalid := CheckAthleteNames([]string{"Anna", "Zed"}, valid)

	assert.Equal(t, []string{"Anna Berg"}, formatted)
	assert.Equal(t, []string{"Zed"}, invalid)
}

func TestParticipants_SeedOrder(t *testing.T) {
	seeds := make([]bracket.Seed, 5)
	for i := range seeds {
		seeds[i] = bracket.Seed{AthleteID: fmt.Sprintf("a%d", i+1), Seed: i + 1, DisplayName: fmt.Sprintf("Athlete %d", i+1)}
	}
	b, err := bracket.GenerateBracket("event", seeds)
	require.NoError(t, err)

	athletes := Participants(b)
	require.Len(t, athletes, 5)
	for i, a := range athletes {
		assert.Equal(t, i+1, a.Seed)
	}

	assert.Empty(t, Participants(bracket.Bracket{}))
}
