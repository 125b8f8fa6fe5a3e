/* models.go
 * This file contains the structs that are shared between sub packages
 */

package shared

// User is the operator issuing a command. Recorded against scores and results for auditing
type User struct {
	UserID   string
	Username string
}

// String returns the name used in audit fields
func (u User) String() string {
	if u.Username == "" {
		return u.UserID
	}
	return u.Username
}
