// File: services/notification/fcm.go
package notification

import (
	"context"
	"fmt"

	deviceRepo "mindlink/database/repository/device"
	"mindlink/models"
	"mindlink/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production FCM implementation.
type DefaultNotificationService struct {
	devices deviceRepo.DeviceRepository
}

func NewDefaultNotificationService(devices deviceRepo.DeviceRepository) (*DefaultNotificationService, error) {
	if devices == nil {
		return nil, fmt.Errorf("notification service initialization error: device repository is nil")
	}
	return &DefaultNotificationService{devices: devices}, nil
}

// statusChangeBody maps a target status to the member-facing message.
var statusChangeBody = map[models.BookingStatus]string{
	models.StatusReschedule:   "A new session time has been proposed.",
	models.StatusConfirm:      "Your session time has been confirmed.",
	models.StatusFinish:       "Your session has ended.",
	models.StatusMemberCancel: "Your session has been cancelled.",
	models.StatusRefund:       "Your session has been refunded.",
	models.StatusRejected:     "Your report has been reviewed.",
	models.StatusComplete:     "Your session record is complete.",
	models.StatusReport:       "A session report has been filed.",
}

// NotifyStatusChange pushes a transition notice to the member (and partner,
// for couple sessions).
func (s *DefaultNotificationService) NotifyStatusChange(ctx context.Context, b *models.Booking, from, to models.BookingStatus) error {
	body, ok := statusChangeBody[to]
	if !ok {
		body = "Your session has been updated."
	}
	data := models.StatusChangePayload{BookingID: b.ID, From: from, To: to}.Data()

	recipients := []string{b.MemberID}
	if b.IsCouple() {
		recipients = append(recipients, b.PartnerMemberID)
	}
	for _, actorID := range recipients {
		if err := s.push(ctx, actorID, "Session update", body, data); err != nil {
			return err
		}
	}
	return nil
}

// SendReminder pushes an upcoming-session reminder to both sides.
func (s *DefaultNotificationService) SendReminder(ctx context.Context, payload models.ReminderPayload) error {
	body := fmt.Sprintf("Your counseling session starts at %s.", payload.StartAt.Format("15:04"))
	data := map[string]string{"booking_id": payload.BookingID}

	for _, actorID := range []string{payload.MemberID, payload.CounselorID} {
		if err := s.push(ctx, actorID, "Upcoming session", body, data); err != nil {
			return err
		}
	}
	return nil
}

func (s *DefaultNotificationService) push(ctx context.Context, actorID, title, body string, data map[string]string) error {
	device, err := s.devices.GetByActor(ctx, actorID)
	if err != nil {
		return fmt.Errorf("push: no device for actor %s: %w", actorID, err)
	}
	if device.FCMToken == "" {
		return fmt.Errorf("push: actor %s has no FCM token", actorID)
	}

	msg := &messaging.Message{
		Token:        device.FCMToken,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
	}
	id, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("push: failed to send to actor %s: %w", actorID, err)
	}
	utils.GetLogger().Debug("push sent", zap.String("actor", actorID), zap.String("message_id", id))
	return nil
}
