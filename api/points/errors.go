/* errors.go
 * Contains the errors returned by the points calculators
 */

package points

import (
	"errors"
	"fmt"
)

// ErrBoutCountOutOfTable is returned when a ranking round has a bout count the points table does not cover
var ErrBoutCountOutOfTable = errors.New("bout count outside the ranking round table")

// InputError rejects a calculator input and names the offending field
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field string, format string, args ...any) error {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
