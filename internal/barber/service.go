package barber

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/nekogravitycat/barber-booking-backend/internal/availability"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/storage"
)

type ServiceInput struct {
	Name            string
	DurationMinutes int
	PriceCents      int64
}

type CreateRequest struct {
	Name     string
	Schedule availability.WeeklySchedule
	Services []ServiceInput
}

type UpdateRequest struct {
	Name *string
}

type UpdateServiceRequest struct {
	Name            *string
	DurationMinutes *int
	PriceCents      *int64
}

// Directory owns barbers, their service catalogs and their weekly schedules.
type Directory interface {
	Create(ctx context.Context, req CreateRequest) (*Barber, error)
	GetByID(ctx context.Context, id string) (*Barber, error)
	List(ctx context.Context, filter Filter) ([]*Barber, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Barber, error)
	SetSchedule(ctx context.Context, id string, schedule availability.WeeklySchedule) (*Barber, error)
	Delete(ctx context.Context, id string) error

	AddService(ctx context.Context, barberID string, in ServiceInput) (*Service, error)
	UpdateService(ctx context.Context, barberID, serviceID string, req UpdateServiceRequest) (*Service, error)
	RemoveService(ctx context.Context, barberID, serviceID string) error
	// FindService resolves a barber together with one of its services.
	FindService(ctx context.Context, barberID, serviceID string) (*Barber, *Service, error)

	Avatars
}

type directory struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
	log     *zap.Logger
}

func NewDirectory(repo Repository, store storage.Storage, log *zap.Logger) Directory {
	return &directory{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
		log:     log.Named("barber"),
	}
}

func (d *directory) Create(ctx context.Context, req CreateRequest) (*Barber, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := validateSchedule(req.Schedule); err != nil {
		return nil, err
	}

	services := make([]Service, 0, len(req.Services))
	for _, in := range req.Services {
		s, err := newService(in)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}

	b := &Barber{
		Name:     name,
		Schedule: req.Schedule,
		Services: services,
	}
	if err := d.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	d.log.Info("barber created", zap.String("barber_id", b.ID), zap.Int("services", len(b.Services)))
	return b, nil
}

func (d *directory) GetByID(ctx context.Context, id string) (*Barber, error) {
	return d.repo.GetByID(ctx, id)
}

func (d *directory) List(ctx context.Context, filter Filter) ([]*Barber, int, error) {
	return d.repo.List(ctx, filter)
}

func (d *directory) Update(ctx context.Context, id string, req UpdateRequest) (*Barber, error) {
	b, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		b.Name = name
	}

	if err := d.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (d *directory) SetSchedule(ctx context.Context, id string, schedule availability.WeeklySchedule) (*Barber, error) {
	if err := validateSchedule(schedule); err != nil {
		return nil, err
	}

	b, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Schedule = schedule
	if err := d.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	d.log.Info("weekly schedule updated", zap.String("barber_id", id))
	return b, nil
}

func (d *directory) Delete(ctx context.Context, id string) error {
	b, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := d.repo.Delete(ctx, id); err != nil {
		return err
	}

	d.removeAvatarFiles(ctx, b.AvatarPath, b.ThumbnailPath)
	d.log.Info("barber deleted", zap.String("barber_id", id))
	return nil
}

func (d *directory) AddService(ctx context.Context, barberID string, in ServiceInput) (*Service, error) {
	s, err := newService(in)
	if err != nil {
		return nil, err
	}
	if _, err := d.repo.GetByID(ctx, barberID); err != nil {
		return nil, err
	}

	s.BarberID = barberID
	if err := d.repo.CreateService(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateService edits a catalog entry. Existing appointments keep the end time they were
// booked with, so a new duration only affects future bookings.
func (d *directory) UpdateService(ctx context.Context, barberID, serviceID string, req UpdateServiceRequest) (*Service, error) {
	_, current, err := d.FindService(ctx, barberID, serviceID)
	if err != nil {
		return nil, err
	}

	s := *current
	if req.Name != nil {
		s.Name = strings.TrimSpace(*req.Name)
	}
	if req.DurationMinutes != nil {
		s.DurationMinutes = *req.DurationMinutes
	}
	if req.PriceCents != nil {
		s.PriceCents = *req.PriceCents
	}
	if err := validateService(s.Name, s.DurationMinutes, s.PriceCents); err != nil {
		return nil, err
	}

	if err := d.repo.UpdateService(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (d *directory) RemoveService(ctx context.Context, barberID, serviceID string) error {
	return d.repo.DeleteService(ctx, barberID, serviceID)
}

func (d *directory) FindService(ctx context.Context, barberID, serviceID string) (*Barber, *Service, error) {
	b, err := d.repo.GetByID(ctx, barberID)
	if err != nil {
		return nil, nil, err
	}
	s, ok := b.FindService(serviceID)
	if !ok {
		return nil, nil, ErrServiceNotFound
	}
	return b, s, nil
}

func newService(in ServiceInput) (Service, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateService(name, in.DurationMinutes, in.PriceCents); err != nil {
		return Service{}, err
	}
	return Service{
		Name:            name,
		DurationMinutes: in.DurationMinutes,
		PriceCents:      in.PriceCents,
	}, nil
}

func validateService(name string, durationMinutes int, priceCents int64) error {
	if name == "" {
		return ErrEmptyName
	}
	if durationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if priceCents < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// validateSchedule rejects malformed hours on the write path. The availability engine
// still treats any malformed day it reads as closed.
func validateSchedule(s availability.WeeklySchedule) error {
	if err := s.Validate(); err != nil {
		return ErrInvalidSchedule.WithErr(err)
	}
	return nil
}
