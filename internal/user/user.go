// Package user holds account records for signed-in users. Users without an
// account run in session-only mode and never appear here.
package user

import "time"

// User is a registered account bound to a verified Google identity.
type User struct {
	ID        int64
	Email     string
	GoogleID  string
	Name      string
	CreatedAt time.Time
}
