package holiday

import "time"

// Holiday is a declared non-working day. At most one per date.
type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}
