package barber

import (
	"context"
	"fmt"

	"github.com/nekogravitycat/barber-booking-backend/internal/availability"
)

func hours(start, end string) *availability.Hours {
	return &availability.Hours{Start: start, End: end}
}

// DemoBarbers returns the shop's starter roster.
func DemoBarbers() []CreateRequest {
	return []CreateRequest{
		{
			Name: "Alex Fade",
			Services: []ServiceInput{
				{Name: "Haircut", DurationMinutes: 30, PriceCents: 2500},
				{Name: "Beard Trim", DurationMinutes: 20, PriceCents: 1500},
				{Name: "Cut + Beard", DurationMinutes: 50, PriceCents: 3800},
			},
			Schedule: availability.WeeklySchedule{
				1: hours("09:00", "18:00"),
				2: hours("09:00", "18:00"),
				3: hours("11:00", "20:00"),
				4: hours("09:00", "18:00"),
				5: hours("09:00", "16:00"),
			},
		},
		{
			Name: "Maya Sharp",
			Services: []ServiceInput{
				{Name: "Haircut", DurationMinutes: 30, PriceCents: 2800},
				{Name: "Beard Trim", DurationMinutes: 20, PriceCents: 1600},
				{Name: "Kids Cut", DurationMinutes: 25, PriceCents: 2200},
			},
			Schedule: availability.WeeklySchedule{
				1: hours("10:00", "19:00"),
				2: hours("10:00", "19:00"),
				3: hours("10:00", "19:00"),
				4: hours("10:00", "19:00"),
				5: hours("09:00", "15:00"),
			},
		},
	}
}

// Seed creates the demo roster unless some barber already exists.
// It reports how many barbers were created.
func Seed(ctx context.Context, dir Directory) (int, error) {
	_, total, err := dir.List(ctx, Filter{Page: 1, PageSize: 1})
	if err != nil {
		return 0, fmt.Errorf("failed to check existing barbers: %w", err)
	}
	if total > 0 {
		return 0, nil
	}

	created := 0
	for _, req := range DemoBarbers() {
		if _, err := dir.Create(ctx, req); err != nil {
			return created, fmt.Errorf("failed to seed barber %q: %w", req.Name, err)
		}
		created++
	}
	return created, nil
}
