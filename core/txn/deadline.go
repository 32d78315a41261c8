package txn

import (
	"time"

	"go.dedis.ch/catapult/core/numeric"
)

// Epoch is the origin of the network time.
var Epoch = time.Date(2016, time.April, 1, 0, 0, 0, 0, time.UTC)

// DefaultDeadline is the validity of a transaction when none is given.
const DefaultDeadline = 2 * time.Hour

// Deadline is the number of milliseconds since the network epoch after which a
// transaction is rejected.
type Deadline numeric.UInt64

// NewDeadline returns the deadline that expires after the duration from now.
func NewDeadline(d time.Duration) Deadline {
	return DeadlineAt(time.Now().Add(d))
}

// DeadlineAt returns the deadline of the point in time.
func DeadlineAt(t time.Time) Deadline {
	ms := t.Sub(Epoch).Milliseconds()
	if ms < 0 {
		return 0
	}

	return Deadline(ms)
}

// Time returns the point in time of the deadline.
func (d Deadline) Time() time.Time {
	return Epoch.Add(time.Duration(d) * time.Millisecond).UTC()
}

// IsZero returns true when no deadline is set.
func (d Deadline) IsZero() bool {
	return d == 0
}

// String implements fmt.Stringer. It returns the decimal value.
func (d Deadline) String() string {
	return numeric.UInt64(d).String()
}
