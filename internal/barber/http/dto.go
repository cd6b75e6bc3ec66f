package http

import (
	"strconv"
	"time"

	"github.com/nekogravitycat/barber-booking-backend/internal/availability"
	"github.com/nekogravitycat/barber-booking-backend/internal/barber"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/request"
)

// ListBarbersRequest defines query parameters for listing barbers.
type ListBarbersRequest struct {
	request.ListParams
	Keyword string `form:"q" binding:"omitempty,max=100"`
}

// ServiceURIRequest addresses one service of one barber.
type ServiceURIRequest struct {
	ID        string `uri:"id" binding:"required,uuid"`
	ServiceID string `uri:"serviceId" binding:"required,uuid"`
}

type AvatarQuery struct {
	Thumbnail bool `form:"thumbnail"`
}

type HoursBody struct {
	Start string `json:"start" binding:"required,clock"`
	End   string `json:"end" binding:"required,clock"`
}

// ScheduleBody maps weekday numbers ("0" is Sunday) to working hours. Missing or null days are closed.
type ScheduleBody map[string]*HoursBody

func (s ScheduleBody) toSchedule() availability.WeeklySchedule {
	var out availability.WeeklySchedule
	for key, h := range s {
		day, err := strconv.Atoi(key)
		if err != nil || day < 0 || day > 6 || h == nil {
			continue
		}
		out[day] = &availability.Hours{Start: h.Start, End: h.End}
	}
	return out
}

type ServiceBody struct {
	Name            string `json:"name" binding:"required,min=1,max=100"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=480"`
	PriceCents      int64  `json:"price_cents" binding:"min=0"`
}

func (b ServiceBody) toInput() barber.ServiceInput {
	return barber.ServiceInput{
		Name:            b.Name,
		DurationMinutes: b.DurationMinutes,
		PriceCents:      b.PriceCents,
	}
}

type CreateBarberBody struct {
	Name           string        `json:"name" binding:"required,min=1,max=100"`
	WeeklySchedule ScheduleBody  `json:"weekly_schedule" binding:"omitempty,dive,keys,oneof=0 1 2 3 4 5 6,endkeys"`
	Services       []ServiceBody `json:"services" binding:"omitempty,dive"`
}

type UpdateBarberBody struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

type SetScheduleBody struct {
	WeeklySchedule ScheduleBody `json:"weekly_schedule" binding:"required,dive,keys,oneof=0 1 2 3 4 5 6,endkeys"`
}

type UpdateServiceBody struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=100"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	PriceCents      *int64  `json:"price_cents" binding:"omitempty,min=0"`
}

type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int64  `json:"price_cents"`
}

func NewServiceResponse(s *barber.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		PriceCents:      s.PriceCents,
	}
}

type BarberResponse struct {
	ID             string                      `json:"id"`
	Name           string                      `json:"name"`
	AvatarURL      *string                     `json:"avatar_url"`
	ThumbnailURL   *string                     `json:"thumbnail_url"`
	Services       []ServiceResponse           `json:"services"`
	WeeklySchedule availability.WeeklySchedule `json:"weekly_schedule"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// AvatarURL is the public path serving a barber's picture.
func AvatarURL(barberID string, thumbnail bool) string {
	url := "/v1/barbers/" + barberID + "/avatar"
	if thumbnail {
		url += "?thumbnail=true"
	}
	return url
}

func NewBarberResponse(b *barber.Barber) BarberResponse {
	services := make([]ServiceResponse, len(b.Services))
	for i := range b.Services {
		services[i] = NewServiceResponse(&b.Services[i])
	}

	resp := BarberResponse{
		ID:             b.ID,
		Name:           b.Name,
		Services:       services,
		WeeklySchedule: b.Schedule,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	if b.AvatarPath != nil {
		u := AvatarURL(b.ID, false)
		resp.AvatarURL = &u
	}
	if b.ThumbnailPath != nil {
		u := AvatarURL(b.ID, true)
		resp.ThumbnailURL = &u
	}
	return resp
}
