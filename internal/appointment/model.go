package appointment

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/barber-booking-backend/internal/availability"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "appointment not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "time slot already booked")
	ErrSlotUnavailable  = apperror.New(http.StatusConflict, "requested start time is not an available slot")
	ErrStartTimePast    = apperror.New(http.StatusBadRequest, "cannot book an appointment in the past")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidInput     = apperror.New(http.StatusBadRequest, "invalid input parameters")
)

// DefaultCustomerName is stored when a customer books without giving a name.
const DefaultCustomerName = "Guest"

// Appointment is a confirmed booking. EndTime is fixed when the appointment is made and does
// not follow later changes to the service's duration.
type Appointment struct {
	ID             string
	BarberID       string
	BarberName     string
	ServiceID      string
	ServiceName    string
	CustomerNumber string
	CustomerName   string
	StartTime      time.Time
	EndTime        time.Time
	CreatedAt      time.Time
}

func (a *Appointment) booking() availability.Booking {
	return availability.Booking{
		ProviderID: a.BarberID,
		Start:      a.StartTime,
		End:        a.EndTime,
	}
}

// Filter defines parameters for listing appointments.
type Filter struct {
	CustomerNumber string
	BarberID       string
	From           *time.Time // Appointments starting at or after this time
	To             *time.Time // Appointments starting before this time
	Upcoming       bool
	Page           int
	PageSize       int
	SortOrder      string
}
