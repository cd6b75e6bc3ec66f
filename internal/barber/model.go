package barber

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/barber-booking-backend/internal/availability"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "barber not found")
	ErrServiceNotFound   = apperror.New(http.StatusNotFound, "service not found")
	ErrEmptyName         = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidDuration   = apperror.New(http.StatusBadRequest, "duration_minutes must be greater than 0")
	ErrInvalidPrice      = apperror.New(http.StatusBadRequest, "price_cents cannot be negative")
	ErrInvalidSchedule   = apperror.New(http.StatusBadRequest, "invalid weekly schedule")
	ErrDuplicateService  = apperror.New(http.StatusConflict, "barber already offers a service with this name")
	ErrServiceInUse      = apperror.New(http.StatusConflict, "service is referenced by existing appointments")
	ErrAvatarNotFound    = apperror.New(http.StatusNotFound, "avatar not found")
	ErrUnsupportedAvatar = apperror.New(http.StatusBadRequest, "avatar must be a JPEG or PNG image")
	ErrAvatarTooLarge    = apperror.New(http.StatusRequestEntityTooLarge, "avatar exceeds the maximum size")
)

// Barber is a provider offering services on a weekly schedule.
type Barber struct {
	ID            string
	Name          string
	AvatarPath    *string
	ThumbnailPath *string
	Services      []Service
	Schedule      availability.WeeklySchedule
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FindService returns the barber's service with the given ID.
func (b *Barber) FindService(serviceID string) (*Service, bool) {
	for i := range b.Services {
		if b.Services[i].ID == serviceID {
			return &b.Services[i], true
		}
	}
	return nil, false
}

// Service is something a barber offers, e.g. a haircut.
type Service struct {
	ID              string
	BarberID        string
	Name            string
	DurationMinutes int
	PriceCents      int64
	Position        int
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Filter defines parameters for listing barbers.
type Filter struct {
	Keyword   string // Search in Name
	Page      int
	PageSize  int
	SortOrder string
}
