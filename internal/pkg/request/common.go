package request

import (
	"time"

	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/apperror"
)

// DateLayout is the calendar-date format accepted in query strings.
const DateLayout = "2006-01-02"

var ErrInvalidDate = apperror.New(400, "date must be in YYYY-MM-DD format")

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Validate performs custom validation for ByIDRequest.
func (r *ByIDRequest) Validate() error {
	return nil
}

// ListParams holds the pagination and ordering query parameters shared by list endpoints.
type ListParams struct {
	Page      int    `form:"page,default=1" binding:"min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"min=1,max=100"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ParseDate parses a YYYY-MM-DD string as midnight of that day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate.WithErr(err)
	}
	return t, nil
}
