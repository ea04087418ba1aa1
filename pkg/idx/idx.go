// Package idx mints the ids every gym record is keyed by: members, payments,
// attendance records and QR tokens. Ids are ULIDs, so keyset pagination over
// the id column walks records in creation order.
package idx

import (
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a ULID in canonical form: 26 upper case Crockford base32 characters.
type ID string

var ErrInvalid = errors.New("idx: invalid id")

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewAt returns an id stamped with t. Services pass their injected clock so
// record ids sort with the times stored next to them, and ids minted in the
// same millisecond still sort in call order.
func NewAt(t time.Time) ID {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ID(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}

// New returns an id stamped with the wall clock.
func New() ID { return NewAt(time.Now()) }

// Parse checks s and returns it in canonical form. Lower case input is
// accepted and upper cased, since that is how ids are stored.
func Parse(s string) (ID, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return "", ErrInvalid
	}
	return ID(u.String()), nil
}

func (id ID) String() string { return string(id) }

// Time is the creation time embedded in id, or the zero time if id is not
// a valid ULID.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
