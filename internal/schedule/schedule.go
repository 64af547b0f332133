// Package schedule detects overlapping technician bookings.
//
// Intervals are half-open: [Start, End). A booking ending at 11:00 and another
// starting at 11:00 do not overlap.
package schedule

import (
	"time"

	"github.com/google/uuid"
)

type Interval struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the interval ends strictly after it starts.
func (i Interval) Valid() bool {
	return i.End.After(i.Start)
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Booking is an interval already held by a technician.
type Booking struct {
	TechnicianID uuid.UUID
	Interval
}

// HasConflict reports whether proposed overlaps any of the technician's bookings.
// Bookings held by other technicians are ignored.
func HasConflict(technicianID uuid.UUID, proposed Interval, existing []Booking) bool {
	_, found := FirstConflict(technicianID, proposed, existing)
	return found
}

// FirstConflict returns the first of the technician's bookings that overlaps proposed.
func FirstConflict(technicianID uuid.UUID, proposed Interval, existing []Booking) (Booking, bool) {
	for _, b := range existing {
		if b.TechnicianID != technicianID {
			continue
		}

		if proposed.Overlaps(b.Interval) {
			return b, true
		}
	}

	return Booking{}, false
}
