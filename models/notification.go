// File: models/notification.go
package models

import "time"

// ReminderPayload is the queued payload for an upcoming-session reminder.
type ReminderPayload struct {
	BookingID   string    `json:"booking_id"`
	MemberID    string    `json:"member_id"`
	CounselorID string    `json:"counselor_id"`
	StartAt     time.Time `json:"start_at"`
}

// StatusChangePayload describes a lifecycle transition for push delivery.
type StatusChangePayload struct {
	BookingID string        `json:"booking_id"`
	From      BookingStatus `json:"from"`
	To        BookingStatus `json:"to"`
}

// Data renders the payload as FCM data fields, which must be flat strings.
func (p StatusChangePayload) Data() map[string]string {
	return map[string]string{
		"booking_id": p.BookingID,
		"from":       string(p.From),
		"to":         string(p.To),
	}
}
