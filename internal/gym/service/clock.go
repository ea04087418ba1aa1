package service

import (
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
)

// Clock is the time source every service reads from. Location is the gym's
// timezone and decides which calendar date "today" is.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c Clock) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// today is the current calendar date in the gym's timezone.
func (c Clock) today() time.Time {
	return domain.CalendarDate(c.now(), c.location())
}
