package notification

import (
	"context"

	"mindlink/models"
)

// NotificationService defines methods for sending FCM pushes. All delivery
// is best-effort: a failed push never rolls back a lifecycle transition.
type NotificationService interface {
	NotifyStatusChange(ctx context.Context, b *models.Booking, from, to models.BookingStatus) error
	SendReminder(ctx context.Context, payload models.ReminderPayload) error
}
