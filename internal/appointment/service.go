package appointment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/barber-booking-backend/internal/availability"
	"github.com/nekogravitycat/barber-booking-backend/internal/barber"
)

type BookRequest struct {
	BarberID       string
	ServiceID      string
	StartTime      time.Time
	CustomerNumber string
	CustomerName   string
}

type Service interface {
	// Slots lists the start times still open for the service on date's calendar day.
	Slots(ctx context.Context, barberID, serviceID string, date time.Time) ([]availability.TimeSlot, error)
	Book(ctx context.Context, req BookRequest) (*Appointment, error)
	Cancel(ctx context.Context, id, customerNumber string, isAdmin bool) error
	GetByID(ctx context.Context, id, customerNumber string, isAdmin bool) (*Appointment, error)
	// ListUpcoming returns the customer's future appointments, soonest first.
	ListUpcoming(ctx context.Context, customerNumber string, page, pageSize int) ([]*Appointment, int, error)
	List(ctx context.Context, filter Filter) ([]*Appointment, int, error)
}

type service struct {
	repo    Repository
	barbers barber.Directory
	calc    *availability.Calculator
	loc     *time.Location
	now     func() time.Time
	log     *zap.Logger
}

// NewService builds the booking service. loc decides which calendar day an appointment falls on.
func NewService(repo Repository, barbers barber.Directory, calc *availability.Calculator, loc *time.Location, log *zap.Logger) Service {
	return &service{
		repo:    repo,
		barbers: barbers,
		calc:    calc,
		loc:     loc,
		now:     time.Now,
		log:     log.Named("appointment"),
	}
}

// startOfDay returns midnight of t's calendar day in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func (s *service) Slots(ctx context.Context, barberID, serviceID string, date time.Time) ([]availability.TimeSlot, error) {
	b, svc, err := s.barbers.FindService(ctx, barberID, serviceID)
	if err != nil {
		return nil, err
	}
	return s.openSlots(ctx, b, svc, startOfDay(date, s.loc))
}

// openSlots runs the engine against a fresh snapshot of the barber's appointments for day.
func (s *service) openSlots(ctx context.Context, b *barber.Barber, svc *barber.Service, day time.Time) ([]availability.TimeSlot, error) {
	existing, err := s.repo.ListForBarberBetween(ctx, b.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	bookings := make([]availability.Booking, len(existing))
	for i, a := range existing {
		bookings[i] = a.booking()
	}

	slots, err := s.calc.AvailableSlots(b.Schedule, b.ID, svc.Duration(), day, bookings)
	if err != nil {
		return nil, ErrInvalidInput.WithErr(err)
	}
	return slots, nil
}

func (s *service) Book(ctx context.Context, req BookRequest) (*Appointment, error) {
	if req.CustomerNumber == "" || req.StartTime.IsZero() {
		return nil, ErrInvalidInput
	}
	if !req.StartTime.After(s.now()) {
		return nil, ErrStartTimePast
	}

	b, svc, err := s.barbers.FindService(ctx, req.BarberID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	slots, err := s.openSlots(ctx, b, svc, startOfDay(req.StartTime, s.loc))
	if err != nil {
		return nil, err
	}
	if !startsAny(slots, req.StartTime) {
		return nil, ErrSlotUnavailable
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		name = DefaultCustomerName
	}

	a := &Appointment{
		BarberID:       b.ID,
		BarberName:     b.Name,
		ServiceID:      svc.ID,
		ServiceName:    svc.Name,
		CustomerNumber: req.CustomerNumber,
		CustomerName:   name,
		StartTime:      req.StartTime,
		EndTime:        req.StartTime.Add(svc.Duration()),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.log.Info("appointment booked",
		zap.String("appointment_id", a.ID),
		zap.String("barber_id", a.BarberID),
		zap.String("service_id", a.ServiceID),
		zap.Time("start", a.StartTime),
	)
	return a, nil
}

func startsAny(slots []availability.TimeSlot, start time.Time) bool {
	for _, slot := range slots {
		if slot.Start.Equal(start) {
			return true
		}
	}
	return false
}

func (s *service) Cancel(ctx context.Context, id, customerNumber string, isAdmin bool) error {
	a, err := s.GetByID(ctx, id, customerNumber, isAdmin)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, a.ID); err != nil {
		return err
	}

	s.log.Info("appointment cancelled", zap.String("appointment_id", a.ID), zap.Bool("by_admin", isAdmin))
	return nil
}

// GetByID returns the appointment if it belongs to customerNumber or the caller is an admin.
func (s *service) GetByID(ctx context.Context, id, customerNumber string, isAdmin bool) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && a.CustomerNumber != customerNumber {
		return nil, ErrPermissionDenied
	}
	return a, nil
}

func (s *service) ListUpcoming(ctx context.Context, customerNumber string, page, pageSize int) ([]*Appointment, int, error) {
	if customerNumber == "" {
		return nil, 0, ErrInvalidInput
	}
	return s.List(ctx, Filter{
		CustomerNumber: customerNumber,
		Upcoming:       true,
		Page:           page,
		PageSize:       pageSize,
		SortOrder:      "ASC",
	})
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Appointment, int, error) {
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, 0, ErrInvalidInput
	}
	if filter.Upcoming {
		now := s.now()
		if filter.From == nil || filter.From.Before(now) {
			filter.From = &now
		}
	}
	return s.repo.List(ctx, filter)
}
