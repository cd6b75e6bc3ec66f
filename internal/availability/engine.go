// Package availability computes the bookable time slots of a provider for a calendar day.
//
// Everything here is a pure function of its arguments: callers pass a fresh snapshot of the
// existing bookings on every call and nothing is cached between calls.
package availability

import "time"

// Calculator runs the resolve, generate and filter pipeline with a fixed step.
type Calculator struct {
	step time.Duration
}

// NewCalculator returns a Calculator spacing candidates step apart.
func NewCalculator(step time.Duration) (*Calculator, error) {
	if step <= 0 {
		return nil, ErrInvalidStep
	}
	return &Calculator{step: step}, nil
}

func (c *Calculator) Step() time.Duration {
	return c.step
}

// AvailableSlots returns the slots of the given duration that providerID can still take on
// date's calendar day. A closed day yields an empty, non-nil slice.
func (c *Calculator) AvailableSlots(schedule WeeklySchedule, providerID string, duration time.Duration, date time.Time, bookings []Booking) ([]TimeSlot, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	work, ok := ResolveWorkInterval(schedule, date)
	if !ok {
		return []TimeSlot{}, nil
	}

	candidates, err := GenerateCandidates(work, duration, c.step)
	if err != nil {
		return nil, err
	}

	return FilterAvailable(candidates, providerID, date, bookings), nil
}

// AvailableSlots runs the pipeline with DefaultStep.
func AvailableSlots(schedule WeeklySchedule, providerID string, duration time.Duration, date time.Time, bookings []Booking) ([]TimeSlot, error) {
	c := Calculator{step: DefaultStep}
	return c.AvailableSlots(schedule, providerID, duration, date, bookings)
}
