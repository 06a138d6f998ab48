package booking

import (
	"context"
	"time"

	bookingRepo "mindlink/database/repository/booking"
	"mindlink/models"
	"mindlink/services/call"
	"mindlink/services/notification"
	"mindlink/services/payment"
	"mindlink/services/tasks"
)

// CreateBookingInput carries everything the scheduling flow fixes at
// creation time. Couple-vs-individual and topic tags are immutable after
// this point.
type CreateBookingInput struct {
	MemberID        string    `json:"member_id"`
	PartnerMemberID string    `json:"partner_member_id"`
	CounselorID     string    `json:"counselor_id"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	Price           float64   `json:"price"`
	PaymentRef      string    `json:"payment_ref"`
	Subcategories   []string  `json:"subcategories"`
}

// LifecycleService exposes exactly the transitions each actor surface may
// invoke, one named operation per edge. Every operation consults the
// transition table and performs at most one compare-and-swap store write;
// denials surface the table's structured reason unchanged.
type LifecycleService interface {
	// Scheduling and read side.
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListForCounselor(ctx context.Context, counselorID string) ([]models.Booking, error)
	ListForMember(ctx context.Context, memberID string) ([]models.Booking, error)

	// Member surface.
	CancelAsMember(ctx context.Context, bookingID, memberID, cancelReason string) (*models.Booking, error)
	ProposeReschedule(ctx context.Context, bookingID, memberID string, startAt, endAt time.Time) (*models.Booking, error)
	ReportBooking(ctx context.Context, bookingID, memberID, message string) (*models.Booking, error)
	SubmitFeedback(ctx context.Context, bookingID, memberID string, rating int, feedback string) (*models.Booking, error)

	// Counselor surface.
	CancelAsCounselor(ctx context.Context, bookingID, counselorID, cancelReason string) (*models.Booking, error)
	AcceptReschedule(ctx context.Context, bookingID, counselorID string) (*models.Booking, error)
	FinalizeSession(ctx context.Context, bookingID, counselorID string, draft models.NoteDraft) (*models.Booking, error)
	SaveNotesAndMaybeComplete(ctx context.Context, bookingID, counselorID string, draft models.NoteDraft) (*models.Booking, error)

	// Admin report-resolution surface.
	RefundOnReport(ctx context.Context, bookingID, adminID string) (*models.Booking, error)
	RejectOnReport(ctx context.Context, bookingID, adminID string) (*models.Booking, error)
}

// DefaultLifecycleService implements LifecycleService over the booking
// record store. Call, Notify, Refunds and Reminders are collaborators whose
// failures never undo a committed transition; any of them may be nil in
// contexts that do not wire them (tests, tooling).
type DefaultLifecycleService struct {
	Repo      bookingRepo.BookingRepository
	Call      call.CallService
	Notify    notification.NotificationService
	Refunds   payment.RefundIssuer
	Reminders tasks.ReminderScheduler
}
