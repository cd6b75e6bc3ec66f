package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/barber-booking-backend/internal/barber"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/response"
)

type Handler struct {
	directory barber.Directory
}

func NewHandler(directory barber.Directory) *Handler {
	return &Handler{directory: directory}
}

// List retrieves a paginated list of barbers, optionally filtered by name.
func (h *Handler) List(c *gin.Context) {
	var req ListBarbersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := barber.Filter{
		Keyword:   req.Keyword,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortOrder: strings.ToUpper(req.SortOrder),
	}

	barbers, total, err := h.directory.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BarberResponse, len(barbers))
	for i, b := range barbers {
		items[i] = NewBarberResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barber id"})
		return
	}

	b, err := h.directory.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBarberResponse(b))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBarberBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	services := make([]barber.ServiceInput, len(body.Services))
	for i, s := range body.Services {
		services[i] = s.toInput()
	}

	b, err := h.directory.Create(c.Request.Context(), barber.CreateRequest{
		Name:     body.Name,
		Schedule: body.WeeklySchedule.toSchedule(),
		Services: services,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBarberResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barber id"})
		return
	}

	var body UpdateBarberBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	b, err := h.directory.Update(c.Request.Context(), uri.ID, barber.UpdateRequest{Name: body.Name})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBarberResponse(b))
}

// SetSchedule replaces the whole weekly schedule. Days left out are closed.
func (h *Handler) SetSchedule(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barber id"})
		return
	}

	var body SetScheduleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	b, err := h.directory.SetSchedule(c.Request.Context(), uri.ID, body.WeeklySchedule.toSchedule())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBarberResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barber id"})
		return
	}

	if err := h.directory.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) AddService(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barber id"})
		return
	}

	var body ServiceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	s, err := h.directory.AddService(c.Request.Context(), uri.ID, body.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewServiceResponse(s))
}

func (h *Handler) UpdateService(c *gin.Context) {
	var uri ServiceURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barber or service id"})
		return
	}

	var body UpdateServiceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	s, err := h.directory.UpdateService(c.Request.Context(), uri.ID, uri.ServiceID, barber.UpdateServiceRequest{
		Name:            body.Name,
		DurationMinutes: body.DurationMinutes,
		PriceCents:      body.PriceCents,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewServiceResponse(s))
}

func (h *Handler) RemoveService(c *gin.Context) {
	var uri ServiceURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barber or service id"})
		return
	}

	if err := h.directory.RemoveService(c.Request.Context(), uri.ID, uri.ServiceID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadAvatar accepts a multipart "avatar" field holding a JPEG or PNG picture.
func (h *Handler) UploadAvatar(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barber id"})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar is required"})
		return
	}

	b, err := h.directory.UploadAvatar(c.Request.Context(), uri.ID, fileHeader)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBarberResponse(b))
}

func (h *Handler) ServeAvatar(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barber id"})
		return
	}

	var query AvatarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	stream, contentType, err := h.directory.OpenAvatar(c.Request.Context(), uri.ID, query.Thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=300")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Headers are already sent.
		logger.FromContext(c).Warn("avatar stream interrupted", zap.String("barber_id", uri.ID), zap.Error(err))
	}
}
