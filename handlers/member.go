// File: handlers/member.go
package handlers

import (
	"net/http"
	"time"

	"mindlink/middleware"

	"github.com/gin-gonic/gin"
)

// Member surface: cancel, propose a reschedule, report, feedback, history.

func (h *BookingHandler) CancelAsMember(c *gin.Context) {
	var input struct {
		CancelReason string `json:"cancel_reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Svc.CancelAsMember(c.Request.Context(), c.Param("bookingID"), middleware.ActorID(c), input.CancelReason)
	respond(c, b, err)
}

func (h *BookingHandler) ProposeReschedule(c *gin.Context) {
	var input struct {
		StartAt time.Time `json:"start_at" binding:"required"`
		EndAt   time.Time `json:"end_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Svc.ProposeReschedule(c.Request.Context(), c.Param("bookingID"), middleware.ActorID(c), input.StartAt, input.EndAt)
	respond(c, b, err)
}

func (h *BookingHandler) ReportBooking(c *gin.Context) {
	var input struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Svc.ReportBooking(c.Request.Context(), c.Param("bookingID"), middleware.ActorID(c), input.Message)
	respond(c, b, err)
}

func (h *BookingHandler) SubmitFeedback(c *gin.Context) {
	var input struct {
		Rating   int    `json:"rating" binding:"required"`
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Svc.SubmitFeedback(c.Request.Context(), c.Param("bookingID"), middleware.ActorID(c), input.Rating, input.Feedback)
	respond(c, b, err)
}

func (h *BookingHandler) ListMyBookingsAsMember(c *gin.Context) {
	bookings, err := h.Svc.ListForMember(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
