package http

import (
	"time"

	"github.com/nekogravitycat/barber-booking-backend/internal/appointment"
	"github.com/nekogravitycat/barber-booking-backend/internal/availability"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/request"
)

// SlotsQuery defines query parameters for GET /v1/barbers/:id/slots.
type SlotsQuery struct {
	ServiceID string `form:"service_id" binding:"required,uuid"`
	Date      string `form:"date" binding:"required"`
}

type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

type SlotsResponse struct {
	BarberID  string         `json:"barber_id"`
	ServiceID string         `json:"service_id"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots"`
}

func NewSlotsResponse(barberID, serviceID string, date time.Time, slots []availability.TimeSlot) SlotsResponse {
	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = SlotResponse{Start: s.Start, End: s.End, Label: s.Label()}
	}
	return SlotsResponse{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date.Format(request.DateLayout),
		Slots:     items,
	}
}

// BookRequest is the payload for POST /v1/appointments.
type BookRequest struct {
	BarberID     string    `json:"barber_id" binding:"required,uuid"`
	ServiceID    string    `json:"service_id" binding:"required,uuid"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	CustomerName string    `json:"customer_name" binding:"omitempty,max=100"`
}

// ListAppointmentsRequest defines query parameters for listing appointments. Filters other than
// paging only apply to admins; customers always get their own upcoming appointments.
type ListAppointmentsRequest struct {
	request.ListParams
	BarberID       string     `form:"barber_id" binding:"omitempty,uuid"`
	CustomerNumber string     `form:"customer_number" binding:"omitempty,numeric,max=15"`
	From           *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To             *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Upcoming       bool       `form:"upcoming"`
}

type AppointmentResponse struct {
	ID             string    `json:"id"`
	BarberID       string    `json:"barber_id"`
	BarberName     string    `json:"barber_name"`
	ServiceID      string    `json:"service_id"`
	ServiceName    string    `json:"service_name"`
	CustomerNumber string    `json:"customer_number"`
	CustomerName   string    `json:"customer_name"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Label          string    `json:"label"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewAppointmentResponse renders times in the shop's zone.
func NewAppointmentResponse(a *appointment.Appointment, loc *time.Location) AppointmentResponse {
	start, end := a.StartTime.In(loc), a.EndTime.In(loc)
	return AppointmentResponse{
		ID:             a.ID,
		BarberID:       a.BarberID,
		BarberName:     a.BarberName,
		ServiceID:      a.ServiceID,
		ServiceName:    a.ServiceName,
		CustomerNumber: a.CustomerNumber,
		CustomerName:   a.CustomerName,
		StartTime:      start,
		EndTime:        end,
		Label:          availability.TimeSlot{Start: start, End: end}.Label(),
		CreatedAt:      a.CreatedAt,
	}
}
