package schedule_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/fieldwork/internal/schedule"
)

func at(hour int) time.Time {
	return time.Date(2024, 1, 20, hour, 0, 0, 0, time.UTC)
}

func window(from, to int) schedule.Interval {
	return schedule.Interval{Start: at(from), End: at(to)}
}

func TestHasConflict(t *testing.T) {
	techA := uuid.New()
	techB := uuid.New()

	existing := []schedule.Booking{
		{TechnicianID: techA, Interval: window(9, 11)},
	}

	tests := []struct {
		name       string
		technician uuid.UUID
		proposed   schedule.Interval
		want       bool
	}{
		{name: "OverlapsTail", technician: techA, proposed: window(10, 12), want: true},
		{name: "OverlapsHead", technician: techA, proposed: window(8, 10), want: true},
		{name: "Contains", technician: techA, proposed: window(8, 12), want: true},
		{name: "Inside", technician: techA, proposed: schedule.Interval{Start: at(9).Add(30 * time.Minute), End: at(10)}, want: true},
		{name: "Identical", technician: techA, proposed: window(9, 11), want: true},
		{name: "BackToBackAfter", technician: techA, proposed: window(11, 13), want: false},
		{name: "BackToBackBefore", technician: techA, proposed: window(7, 9), want: false},
		{name: "Disjoint", technician: techA, proposed: window(14, 15), want: false},
		{name: "OtherTechnicianSameWindow", technician: techB, proposed: window(9, 11), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.HasConflict(tt.technician, tt.proposed, existing))
		})
	}
}

func TestHasConflict_NoBookings(t *testing.T) {
	assert.False(t, schedule.HasConflict(uuid.New(), window(9, 10), nil))
}

func TestFirstConflict(t *testing.T) {
	tech := uuid.New()
	existing := []schedule.Booking{
		{TechnicianID: tech, Interval: window(8, 9)},
		{TechnicianID: tech, Interval: window(12, 14)},
		{TechnicianID: tech, Interval: window(13, 15)},
	}

	got, found := schedule.FirstConflict(tech, window(13, 16), existing)
	assert.True(t, found)
	assert.Equal(t, window(12, 14), got.Interval)

	_, found = schedule.FirstConflict(tech, window(9, 12), existing)
	assert.False(t, found)
}

// Overlap must agree with the closed-form test s1 < e2 && s2 < e1 on a grid of hours.
func TestOverlaps_MatchesDefinition(t *testing.T) {
	for s1 := 0; s1 < 6; s1++ {
		for e1 := s1 + 1; e1 <= 6; e1++ {
			for s2 := 0; s2 < 6; s2++ {
				for e2 := s2 + 1; e2 <= 6; e2++ {
					want := s1 < e2 && s2 < e1
					got := window(s1, e1).Overlaps(window(s2, e2))
					assert.Equal(t, want, got, "[%d,%d) vs [%d,%d)", s1, e1, s2, e2)
				}
			}
		}
	}
}

func TestInterval_Valid(t *testing.T) {
	assert.True(t, window(9, 10).Valid())
	assert.False(t, window(10, 10).Valid())
	assert.False(t, window(11, 10).Valid())
}
