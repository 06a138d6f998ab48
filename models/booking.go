// File: models/booking.go
package models

import (
	"strings"
	"time"
)

// Booking is one scheduled counseling session between member(s) and a
// counselor. Created in StatusConfirm by the scheduling flow; every later
// status change goes through the lifecycle service, never through direct
// field writes.
type Booking struct {
	ID              string        `bson:"id" json:"id"`                                                   // Unique booking identifier (UUID)
	MemberID        string        `bson:"member_id" json:"member_id"`                                     // Member who booked the session
	PartnerMemberID string        `bson:"partner_member_id,omitempty" json:"partner_member_id,omitempty"` // Second member for couple sessions; fixed at creation
	CounselorID     string        `bson:"counselor_id" json:"counselor_id"`                               // Counselor running the session
	StartAt         time.Time     `bson:"start_at" json:"start_at"`                                       // Session start instant
	EndAt           time.Time     `bson:"end_at" json:"end_at"`                                           // Session end instant; strictly after StartAt
	Price           float64       `bson:"price" json:"price"`                                             // Session price; never negative
	PaymentRef      string        `bson:"payment_ref,omitempty" json:"payment_ref,omitempty"`             // Payment intent reference from the checkout flow
	Status          BookingStatus `bson:"status" json:"status"`                                           // Current lifecycle state
	CancelReason    string        `bson:"cancel_reason,omitempty" json:"cancel_reason,omitempty"`         // Set only on cancel/refund transitions
	IsReport        bool          `bson:"is_report" json:"is_report"`                                     // True once the member has filed a report
	ReportMessage   string        `bson:"report_message,omitempty" json:"report_message,omitempty"`       // Non-empty iff IsReport
	ProposedStartAt time.Time     `bson:"proposed_start_at,omitempty" json:"proposed_start_at,omitempty"` // Member's reschedule proposal
	ProposedEndAt   time.Time     `bson:"proposed_end_at,omitempty" json:"proposed_end_at,omitempty"`

	// Clinical record, populated from Finish onward.
	ProblemSummary  string `bson:"problem_summary,omitempty" json:"problem_summary,omitempty"`
	ProblemAnalysis string `bson:"problem_analysis,omitempty" json:"problem_analysis,omitempty"` // Optional at every stage
	Guides          string `bson:"guides,omitempty" json:"guides,omitempty"`

	// Feedback, written only by the member surface; read-only to the lifecycle.
	Rating   int    `bson:"rating,omitempty" json:"rating,omitempty"` // 1..5, 0 when absent
	Feedback string `bson:"feedback,omitempty" json:"feedback,omitempty"`

	Subcategories []string  `bson:"subcategories" json:"subcategories"` // Topic tags, assigned at creation, immutable
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// IsCouple reports whether this is a couple session.
func (b *Booking) IsCouple() bool {
	return b.PartnerMemberID != ""
}

// NoteDraft carries the consultation-note fields a counselor is trying to
// write. ProblemAnalysis is optional everywhere.
type NoteDraft struct {
	ProblemSummary  string `json:"problem_summary"`
	ProblemAnalysis string `json:"problem_analysis"`
	Guides          string `json:"guides"`
}

// Trimmed returns the draft with surrounding whitespace removed, so that
// whitespace-only fields count as empty.
func (d NoteDraft) Trimmed() NoteDraft {
	return NoteDraft{
		ProblemSummary:  strings.TrimSpace(d.ProblemSummary),
		ProblemAnalysis: strings.TrimSpace(d.ProblemAnalysis),
		Guides:          strings.TrimSpace(d.Guides),
	}
}
