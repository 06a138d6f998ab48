// File: handlers/counselor.go
package handlers

import (
	"net/http"

	"mindlink/middleware"
	"mindlink/models"

	"github.com/gin-gonic/gin"
)

// Counselor surface: cancel (straight to refund), accept reschedule, run and
// end the live call, file the clinical record.

func (h *BookingHandler) CancelAsCounselor(c *gin.Context) {
	var input struct {
		CancelReason string `json:"cancel_reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Svc.CancelAsCounselor(c.Request.Context(), c.Param("bookingID"), middleware.ActorID(c), input.CancelReason)
	respond(c, b, err)
}

func (h *BookingHandler) AcceptReschedule(c *gin.Context) {
	b, err := h.Svc.AcceptReschedule(c.Request.Context(), c.Param("bookingID"), middleware.ActorID(c))
	respond(c, b, err)
}

// OpenCallRoom creates (or rejoins) the live call room for a session.
func (h *BookingHandler) OpenCallRoom(c *gin.Context) {
	roomID, err := h.Call.OpenRoom(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open call room", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_id": roomID})
}

// FinalizeSession ends the live call: notes first, then Confirm -> Finish.
func (h *BookingHandler) FinalizeSession(c *gin.Context) {
	var draft models.NoteDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Svc.FinalizeSession(c.Request.Context(), c.Param("bookingID"), middleware.ActorID(c), draft)
	respond(c, b, err)
}

// SaveNotes writes the consultation record; on a Finish booking this also
// completes it in the same write.
func (h *BookingHandler) SaveNotes(c *gin.Context) {
	var draft models.NoteDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Svc.SaveNotesAndMaybeComplete(c.Request.Context(), c.Param("bookingID"), middleware.ActorID(c), draft)
	respond(c, b, err)
}

func (h *BookingHandler) ListMyBookingsAsCounselor(c *gin.Context) {
	bookings, err := h.Svc.ListForCounselor(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
