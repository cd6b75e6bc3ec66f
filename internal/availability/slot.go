package availability

import (
	"errors"
	"time"
)

// DefaultStep is the spacing between consecutive candidate start times.
const DefaultStep = 15 * time.Minute

var (
	ErrInvalidDuration = errors.New("slot duration must be positive")
	ErrInvalidStep     = errors.New("slot step must be positive")
)

// TimeSlot is a closed interval [Start, End].
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports whether the two intervals share any instant.
// Touching endpoints count as an overlap.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return !s.Start.After(o.End) && !o.Start.After(s.End)
}

// Contains reports whether o lies entirely within s.
func (s TimeSlot) Contains(o TimeSlot) bool {
	return !o.Start.Before(s.Start) && !o.End.After(s.End)
}

// Label formats the slot for display, e.g. "09:00 - 09:30".
func (s TimeSlot) Label() string {
	return s.Start.Format("15:04") + " - " + s.End.Format("15:04")
}

// GenerateCandidates enumerates slots of the given duration inside work, one every step,
// starting at work.Start. A duration longer than work yields no slots.
func GenerateCandidates(work TimeSlot, duration, step time.Duration) ([]TimeSlot, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if step <= 0 {
		return nil, ErrInvalidStep
	}

	slots := make([]TimeSlot, 0)
	for cursor := work.Start; !cursor.Add(duration).After(work.End); cursor = cursor.Add(step) {
		slots = append(slots, TimeSlot{Start: cursor, End: cursor.Add(duration)})
	}
	return slots, nil
}
