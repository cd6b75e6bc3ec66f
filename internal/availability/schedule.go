package availability

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	ErrInvalidClock = errors.New("time must be in HH:MM 24-hour format")
	ErrInvalidHours = errors.New("closing time must not be before opening time")
	ErrInvalidDay   = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
)

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a zero-padded 24-hour "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	if h > 23 || m > 59 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On anchors the clock onto the calendar day of date, in date's location.
func (c Clock) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, date.Location())
}

// Hours is the working window of a single weekday.
type Hours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Validate checks both bounds parse and that End is not before Start.
func (h Hours) Validate() error {
	start, err := ParseClock(h.Start)
	if err != nil {
		return err
	}
	end, err := ParseClock(h.End)
	if err != nil {
		return err
	}
	if end.Hour*60+end.Minute < start.Hour*60+start.Minute {
		return fmt.Errorf("%w: %s-%s", ErrInvalidHours, h.Start, h.End)
	}
	return nil
}

// WeeklySchedule holds working hours indexed by time.Weekday (Sunday first).
// A nil entry means the provider does not work that day.
type WeeklySchedule [7]*Hours

// Day returns the hours for the weekday, or nil when closed.
func (s WeeklySchedule) Day(d time.Weekday) *Hours {
	if d < time.Sunday || d > time.Saturday {
		return nil
	}
	return s[d]
}

// Validate reports the first malformed open day.
func (s WeeklySchedule) Validate() error {
	for d, h := range s {
		if h == nil {
			continue
		}
		if err := h.Validate(); err != nil {
			return fmt.Errorf("%s: %w", time.Weekday(d), err)
		}
	}
	return nil
}

// MarshalJSON encodes the schedule as an object keyed "0".."6" with null for closed days.
func (s WeeklySchedule) MarshalJSON() ([]byte, error) {
	m := make(map[string]*Hours, len(s))
	for d, h := range s {
		m[strconv.Itoa(d)] = h
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts the object form written by MarshalJSON. Missing keys are closed days.
func (s *WeeklySchedule) UnmarshalJSON(data []byte) error {
	var m map[string]*Hours
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out WeeklySchedule
	for k, h := range m {
		d, err := strconv.Atoi(k)
		if err != nil || d < 0 || d > 6 {
			return fmt.Errorf("%w: %q", ErrInvalidDay, k)
		}
		out[d] = h
	}
	*s = out
	return nil
}

// ResolveWorkInterval returns the working interval of the schedule on date's calendar day.
// Closed days, unparseable hours and hours closing before they open all report false.
func ResolveWorkInterval(schedule WeeklySchedule, date time.Time) (TimeSlot, bool) {
	h := schedule.Day(date.Weekday())
	if h == nil {
		return TimeSlot{}, false
	}
	open, err := ParseClock(h.Start)
	if err != nil {
		return TimeSlot{}, false
	}
	closing, err := ParseClock(h.End)
	if err != nil {
		return TimeSlot{}, false
	}
	start, end := open.On(date), closing.On(date)
	if end.Before(start) {
		return TimeSlot{}, false
	}
	return TimeSlot{Start: start, End: end}, true
}
