package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers slot lookup and appointment routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	g.GET("/barbers/:id/slots", h.Slots) // Open slots for a service on a day

	// === Authenticated Routes ===
	group := g.Group("/appointments")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)          // Own upcoming appointments, or all for admins
		group.GET("/:id", h.Get)       // Get appointment
		group.POST("", h.Book)         // Book appointment
		group.DELETE("/:id", h.Cancel) // Cancel appointment
	}
}
