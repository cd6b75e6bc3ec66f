package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/barber-booking-backend/internal/appointment"
	"github.com/nekogravitycat/barber-booking-backend/internal/auth"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/response"
)

type Handler struct {
	service appointment.Service
	loc     *time.Location
}

// NewHandler builds the handler. Dates in query strings are read as calendar days in loc.
func NewHandler(service appointment.Service, loc *time.Location) *Handler {
	return &Handler{service: service, loc: loc}
}

// Slots lists the start times a barber still has open for a service on one day.
func (h *Handler) Slots(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barber id"})
		return
	}

	var query SlotsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	date, err := request.ParseDate(query.Date, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	slots, err := h.service.Slots(c.Request.Context(), uri.ID, query.ServiceID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotsResponse(uri.ID, query.ServiceID, date, slots))
}

func (h *Handler) Book(c *gin.Context) {
	var body BookRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	a, err := h.service.Book(c.Request.Context(), appointment.BookRequest{
		BarberID:       body.BarberID,
		ServiceID:      body.ServiceID,
		StartTime:      body.StartTime,
		CustomerNumber: auth.GetCustomerNumber(c),
		CustomerName:   body.CustomerName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewAppointmentResponse(a, h.loc))
}

func (h *Handler) List(c *gin.Context) {
	var req ListAppointmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var (
		appts []*appointment.Appointment
		total int
		err   error
	)
	if auth.IsAdmin(c) {
		appts, total, err = h.service.List(ctx, appointment.Filter{
			CustomerNumber: req.CustomerNumber,
			BarberID:       req.BarberID,
			From:           req.From,
			To:             req.To,
			Upcoming:       req.Upcoming,
			Page:           req.Page,
			PageSize:       req.PageSize,
			SortOrder:      strings.ToUpper(req.SortOrder),
		})
	} else {
		appts, total, err = h.service.ListUpcoming(ctx, auth.GetCustomerNumber(c), req.Page, req.PageSize)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AppointmentResponse, len(appts))
	for i, a := range appts {
		items[i] = NewAppointmentResponse(a, h.loc)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), uri.ID, auth.GetCustomerNumber(c), auth.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAppointmentResponse(a, h.loc))
}

// Cancel removes the appointment, freeing its slot.
func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), uri.ID, auth.GetCustomerNumber(c), auth.IsAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
