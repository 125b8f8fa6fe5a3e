/* codec.go
 * Contains the string encoding used to persist brackets
 */

package bracket

import (
	"encoding/json"
	"fmt"
	"math/bits"
)

// SerializeBracket encodes a bracket as a JSON string. DeserializeBracket(SerializeBracket(b)) is structurally equal to b
func SerializeBracket(b Bracket) (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("failed to encode bracket %s: %w", b.CompetitionEventID, err)
	}
	return string(data), nil
}

// DeserializeBracket decodes a string produced by SerializeBracket.
// Preconditions: Receives the encoded bracket
// Postconditions: Returns the bracket, or an error if the text is not valid JSON or does not describe a well formed tableau
func DeserializeBracket(encoded string) (Bracket, error) {
	var b Bracket
	if err := json.Unmarshal([]byte(encoded), &b); err != nil {
		return Bracket{}, fmt.Errorf("failed to decode bracket: %w", err)
	}
	if err := validateShape(b); err != nil {
		return Bracket{}, err
	}
	return b, nil
}

// validateShape checks that the rounds match the tableau size and that every match sits where its id says
func validateShape(b Bracket) error {
	size := b.TableauSize
	if size < 2 || bits.OnesCount(uint(size)) != 1 {
		return fmt.Errorf("%w: tableau size %d is not a power of two", ErrMalformedBracket, size)
	}
	if b.ParticipantCount < 1 || b.ParticipantCount > size {
		return fmt.Errorf("%w: %d participants in a tableau of %d", ErrMalformedBracket, b.ParticipantCount, size)
	}

	totalRounds := bits.TrailingZeros(uint(size))
	if len(b.Rounds) != totalRounds {
		return fmt.Errorf("%w: expected %d rounds, found %d", ErrMalformedBracket, totalRounds, len(b.Rounds))
	}

	for ri, round := range b.Rounds {
		expected := size >> (ri + 1)
		if round.Number != ri+1 || len(round.Matches) != expected {
			return fmt.Errorf("%w: round %d should hold %d matches", ErrMalformedBracket, ri+1, expected)
		}
		for pi, m := range round.Matches {
			if m.ID != MatchID(ri+1, pi+1) || m.Round != ri+1 || m.Position != pi+1 {
				return fmt.Errorf("%w: match %q out of place at round %d position %d", ErrMalformedBracket, m.ID, ri+1, pi+1)
			}
		}
	}
	return nil
}
