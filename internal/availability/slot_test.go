package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m int) time.Time {
	return time.Date(2026, 10, 19, h, m, 0, 0, time.UTC)
}

func TestTimeSlotOverlaps(t *testing.T) {
	base := TimeSlot{Start: at(9, 0), End: at(9, 30)}

	tests := []struct {
		name  string
		other TimeSlot
		want  bool
	}{
		{"identical", TimeSlot{at(9, 0), at(9, 30)}, true},
		{"inside", TimeSlot{at(9, 10), at(9, 20)}, true},
		{"straddles start", TimeSlot{at(8, 45), at(9, 15)}, true},
		{"touches end", TimeSlot{at(9, 30), at(10, 0)}, true},
		{"touches start", TimeSlot{at(8, 30), at(9, 0)}, true},
		{"before", TimeSlot{at(8, 0), at(8, 59)}, false},
		{"after", TimeSlot{at(9, 31), at(10, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestTimeSlotLabel(t *testing.T) {
	assert.Equal(t, "09:00 - 09:30", TimeSlot{Start: at(9, 0), End: at(9, 30)}.Label())
}

func TestGenerateCandidates(t *testing.T) {
	work := TimeSlot{Start: at(9, 0), End: at(18, 0)}

	t.Run("Fixed step from the start of work", func(t *testing.T) {
		slots, err := GenerateCandidates(work, 30*time.Minute, DefaultStep)
		require.NoError(t, err)
		require.Len(t, slots, 35)

		assert.Equal(t, TimeSlot{at(9, 0), at(9, 30)}, slots[0])
		assert.Equal(t, TimeSlot{at(9, 15), at(9, 45)}, slots[1])
		assert.Equal(t, TimeSlot{at(17, 30), at(18, 0)}, slots[len(slots)-1])

		for i, s := range slots {
			assert.True(t, work.Contains(s), "slot %d escapes the working interval", i)
			assert.Equal(t, 30*time.Minute, s.Duration())
			if i > 0 {
				assert.True(t, s.Start.After(slots[i-1].Start))
			}
		}
	})

	t.Run("Alignment follows work start, not the wall clock", func(t *testing.T) {
		odd := TimeSlot{Start: at(9, 10), End: at(10, 0)}
		slots, err := GenerateCandidates(odd, 20*time.Minute, DefaultStep)
		require.NoError(t, err)

		starts := make([]string, len(slots))
		for i, s := range slots {
			starts[i] = s.Start.Format("15:04")
		}
		assert.Equal(t, []string{"09:10", "09:25", "09:40"}, starts)
	})

	t.Run("Custom step", func(t *testing.T) {
		slots, err := GenerateCandidates(work, time.Hour, time.Hour)
		require.NoError(t, err)
		assert.Len(t, slots, 9)
	})

	t.Run("Duration longer than the interval", func(t *testing.T) {
		slots, err := GenerateCandidates(work, 600*time.Minute, DefaultStep)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("Zero length interval", func(t *testing.T) {
		slots, err := GenerateCandidates(TimeSlot{at(12, 0), at(12, 0)}, time.Minute, DefaultStep)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("Invalid arguments fail fast", func(t *testing.T) {
		_, err := GenerateCandidates(work, 0, DefaultStep)
		assert.ErrorIs(t, err, ErrInvalidDuration)

		_, err = GenerateCandidates(work, 30*time.Minute, 0)
		assert.ErrorIs(t, err, ErrInvalidStep)

		_, err = GenerateCandidates(work, 30*time.Minute, -time.Minute)
		assert.ErrorIs(t, err, ErrInvalidStep)
	})
}
