package handlers

import (
	"errors"
	"net/http"

	bookingRepo "mindlink/database/repository/booking"
	deviceRepo "mindlink/database/repository/device"
	"mindlink/middleware"
	"mindlink/models"
	"mindlink/services/booking"
	"mindlink/services/call"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle over HTTP. It is a thin
// shell: all state-machine decisions live in the lifecycle service, and
// every response body carries the authoritative record returned by the
// service so clients never guess the new state locally.
type BookingHandler struct {
	Svc     booking.LifecycleService
	Call    call.CallService
	Devices deviceRepo.DeviceRepository
}

func NewBookingHandler(svc booking.LifecycleService, callSvc call.CallService, devices deviceRepo.DeviceRepository) *BookingHandler {
	return &BookingHandler{Svc: svc, Call: callSvc, Devices: devices}
}

// statusForReason maps denial reasons to HTTP statuses. The reason and field
// names pass through untouched so the client can render the exact failure.
var statusForReason = map[booking.DenialReason]int{
	booking.ReasonInvalidTransition:    http.StatusConflict,
	booking.ReasonConflict:             http.StatusConflict,
	booking.ReasonRoleNotPermitted:     http.StatusForbidden,
	booking.ReasonMissingRequiredField: http.StatusUnprocessableEntity,
	booking.ReasonNotesRequired:        http.StatusUnprocessableEntity,
	booking.ReasonNotYetEligible:       http.StatusUnprocessableEntity,
}

// respond writes either the updated booking or the structured denial.
func respond(c *gin.Context, b *models.Booking, err error) {
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"booking": b})
		return
	}

	var denial *booking.TransitionError
	if errors.As(err, &denial) {
		status, ok := statusForReason[denial.Reason]
		if !ok {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error":  string(denial.Reason),
			"fields": denial.Fields,
		})
		return
	}
	if errors.Is(err, bookingRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// CreateBooking is the scheduling action; the booking starts in Confirm.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Svc.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respond(c, nil, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Svc.GetBooking(c.Request.Context(), c.Param("bookingID"))
	respond(c, b, err)
}

// RegisterDevice stores the caller's FCM token for push delivery.
func (h *BookingHandler) RegisterDevice(c *gin.Context) {
	var input struct {
		FCMToken string `json:"fcm_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	role, _ := c.Get(middleware.CtxRole)
	device := &models.ActorDevice{
		ActorID:  middleware.ActorID(c),
		Role:     role.(models.Role),
		FCMToken: input.FCMToken,
	}
	if err := h.Devices.Upsert(c.Request.Context(), device); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register device", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"registered": true})
}
