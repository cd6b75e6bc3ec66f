package availability

import "time"

// Booking is an existing appointment as seen by the engine.
type Booking struct {
	ProviderID string
	Start      time.Time
	End        time.Time
}

func (b Booking) Slot() TimeSlot {
	return TimeSlot{Start: b.Start, End: b.End}
}

// SameDay reports whether t falls on the calendar day of date, in date's location.
func SameDay(t, date time.Time) bool {
	y1, m1, d1 := t.In(date.Location()).Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// FilterAvailable drops every candidate that overlaps a booking of providerID starting on
// date's calendar day. Candidate order is preserved and neither input is modified.
func FilterAvailable(candidates []TimeSlot, providerID string, date time.Time, bookings []Booking) []TimeSlot {
	busy := make([]TimeSlot, 0, len(bookings))
	for _, b := range bookings {
		if b.ProviderID == providerID && SameDay(b.Start, date) {
			busy = append(busy, b.Slot())
		}
	}

	out := make([]TimeSlot, 0, len(candidates))
	for _, c := range candidates {
		if !overlapsAny(c, busy) {
			out = append(out, c)
		}
	}
	return out
}

func overlapsAny(slot TimeSlot, busy []TimeSlot) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}
