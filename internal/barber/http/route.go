package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers barber directory routes. Reads are public; writes need an admin.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/barbers")

	// === Public Routes ===
	group.GET("", h.List)                   // List barbers
	group.GET("/:id", h.Get)                // Get barber with services and schedule
	group.GET("/:id/avatar", h.ServeAvatar) // Serve avatar or its thumbnail

	// === Admin Routes ===
	admin := group.Group("", authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Create)                                  // Create barber
		admin.PATCH("/:id", h.Update)                             // Rename barber
		admin.PUT("/:id/schedule", h.SetSchedule)                 // Replace weekly schedule
		admin.DELETE("/:id", h.Delete)                            // Delete barber
		admin.POST("/:id/avatar", h.UploadAvatar)                 // Upload avatar
		admin.POST("/:id/services", h.AddService)                 // Add service
		admin.PATCH("/:id/services/:serviceId", h.UpdateService)  // Update service
		admin.DELETE("/:id/services/:serviceId", h.RemoveService) // Remove service
	}
}
