// File: handlers/admin.go
package handlers

import (
	"mindlink/middleware"

	"github.com/gin-gonic/gin"
)

// Admin report-resolution surface. The admin identity is used only for the
// role check; admins are not parties to the booking.

func (h *BookingHandler) RefundOnReport(c *gin.Context) {
	b, err := h.Svc.RefundOnReport(c.Request.Context(), c.Param("bookingID"), middleware.ActorID(c))
	respond(c, b, err)
}

func (h *BookingHandler) RejectOnReport(c *gin.Context) {
	b, err := h.Svc.RejectOnReport(c.Request.Context(), c.Param("bookingID"), middleware.ActorID(c))
	respond(c, b, err)
}
