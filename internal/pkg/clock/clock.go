// Package clock defines "today" for date-granular business rules.
package clock

import (
	"time"

	"bookit/internal/domain"
)

type Clock interface {
	// Today is the current calendar date as midnight UTC.
	Today() time.Time
}

type zoned struct {
	loc *time.Location
	now func() time.Time
}

// New returns a clock whose calendar date follows loc.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return zoned{loc: loc, now: time.Now}
}

func (z zoned) Today() time.Time {
	return domain.DateOf(z.now().In(z.loc))
}

// Fixed always reports the date of t.
type Fixed time.Time

func (f Fixed) Today() time.Time {
	return domain.DateOf(time.Time(f))
}
