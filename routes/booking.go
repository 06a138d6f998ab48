package routes

import (
	"mindlink/handlers"
	"mindlink/middleware"
	"mindlink/models"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the lifecycle endpoints, one group per
// actor surface. Each surface exposes only the transitions its role may
// take; the field and state checks live in the lifecycle service.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api", middleware.JWTAuthMiddleware())

	api.POST("/devices", h.RegisterDevice)
	api.GET("/bookings/:bookingID", h.GetBooking)

	member := api.Group("/member", middleware.RequireRole(models.RoleMember))
	{
		member.GET("/bookings", h.ListMyBookingsAsMember)
		member.POST("/bookings/:bookingID/cancel", h.CancelAsMember)
		member.POST("/bookings/:bookingID/reschedule", h.ProposeReschedule)
		member.POST("/bookings/:bookingID/report", h.ReportBooking)
		member.POST("/bookings/:bookingID/feedback", h.SubmitFeedback)
	}

	counselor := api.Group("/counselor", middleware.RequireRole(models.RoleCounselor))
	{
		counselor.GET("/bookings", h.ListMyBookingsAsCounselor)
		counselor.POST("/bookings/:bookingID/cancel", h.CancelAsCounselor)
		counselor.POST("/bookings/:bookingID/reschedule/accept", h.AcceptReschedule)
		counselor.POST("/bookings/:bookingID/call", h.OpenCallRoom)
		counselor.POST("/bookings/:bookingID/finalize", h.FinalizeSession)
		counselor.PUT("/bookings/:bookingID/notes", h.SaveNotes)
	}

	admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/bookings", h.CreateBooking)
		admin.POST("/bookings/:bookingID/refund", h.RefundOnReport)
		admin.POST("/bookings/:bookingID/reject", h.RejectOnReport)
	}
}
