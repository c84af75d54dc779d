package booking

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid"
)

const referencePrefix = "BK"

// NewReference returns "BK" followed by a ULID: a 48-bit millisecond timestamp and
// 80 random bits in Crockford base32. References sort by creation time and are safe to
// read aloud. The bookings table still enforces uniqueness.
func NewReference() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader)
	return referencePrefix + id.String()
}
