package booking

import (
	"strings"

	"mindlink/models"
)

// transitionRule is a single allowed edge in the booking lifecycle: who may
// take it and which record fields must already be satisfied on the candidate
// record for the edge to be legal.
type transitionRule struct {
	From     models.BookingStatus
	To       models.BookingStatus
	Role     models.Role
	Required []FieldName
}

// transitionTable is the single source of truth for legal status changes.
// Anything not listed here is invalid-transition; a listed edge attempted by
// the wrong role is role-not-permitted. Report has two distinct admin
// outcomes (Refund and Rejected) instead of one overloaded terminal status.
var transitionTable = []transitionRule{
	{From: models.StatusConfirm, To: models.StatusFinish, Role: models.RoleCounselor, Required: []FieldName{FieldProblemSummary, FieldGuides}},
	{From: models.StatusConfirm, To: models.StatusReschedule, Role: models.RoleMember, Required: []FieldName{FieldProposedTime}},
	{From: models.StatusReschedule, To: models.StatusConfirm, Role: models.RoleCounselor},
	{From: models.StatusConfirm, To: models.StatusMemberCancel, Role: models.RoleMember, Required: []FieldName{FieldCancelReason}},
	// Counselor-initiated cancellation goes straight to Refund, bypassing
	// MemberCancel.
	{From: models.StatusConfirm, To: models.StatusRefund, Role: models.RoleCounselor, Required: []FieldName{FieldCancelReason}},
	{From: models.StatusConfirm, To: models.StatusReport, Role: models.RoleMember, Required: []FieldName{FieldReportMessage}},
	{From: models.StatusFinish, To: models.StatusReport, Role: models.RoleMember, Required: []FieldName{FieldReportMessage}},
	{From: models.StatusComplete, To: models.StatusReport, Role: models.RoleMember, Required: []FieldName{FieldReportMessage}},
	{From: models.StatusReport, To: models.StatusRefund, Role: models.RoleAdmin},
	{From: models.StatusReport, To: models.StatusRejected, Role: models.RoleAdmin},
	{From: models.StatusFinish, To: models.StatusComplete, Role: models.RoleCounselor, Required: []FieldName{FieldProblemSummary, FieldGuides}},
}

// fieldSatisfied maps each gated field to its presence check on the
// candidate record. Gating lives here as data so a new status or field is a
// table row, not another branch at every call site.
var fieldSatisfied = map[FieldName]func(*models.Booking) bool{
	FieldCancelReason: func(b *models.Booking) bool {
		return strings.TrimSpace(b.CancelReason) != ""
	},
	FieldReportMessage: func(b *models.Booking) bool {
		return b.IsReport && strings.TrimSpace(b.ReportMessage) != ""
	},
	FieldProblemSummary: func(b *models.Booking) bool {
		return strings.TrimSpace(b.ProblemSummary) != ""
	},
	FieldGuides: func(b *models.Booking) bool {
		return strings.TrimSpace(b.Guides) != ""
	},
	FieldProposedTime: func(b *models.Booking) bool {
		return !b.ProposedStartAt.IsZero() && b.ProposedEndAt.After(b.ProposedStartAt)
	},
}

// Decision is the outcome of consulting the transition table. A denied
// decision carries the reason plus the exact missing fields, and implies no
// store write happened or will happen.
type Decision struct {
	Allowed       bool
	Reason        DenialReason
	MissingFields []FieldName
}

// Err converts a denied Decision into its TransitionError. Returns nil for
// an allowed decision.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &TransitionError{Reason: d.Reason, Fields: d.MissingFields}
}

// Decide reports whether the transition current -> target may be taken by
// role, judging required fields against candidate (the record as it would be
// written). Pure function of its inputs; it never touches the store.
func Decide(current, target models.BookingStatus, role models.Role, candidate *models.Booking) Decision {
	if !current.Valid() || !target.Valid() {
		return Decision{Reason: ReasonInvalidTransition}
	}

	edgeExists := false
	for _, rule := range transitionTable {
		if rule.From != current || rule.To != target {
			continue
		}
		edgeExists = true
		if rule.Role != role {
			continue
		}

		var missing []FieldName
		for _, f := range rule.Required {
			if !fieldSatisfied[f](candidate) {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			return Decision{Reason: ReasonMissingRequiredField, MissingFields: missing}
		}
		return Decision{Allowed: true}
	}

	if edgeExists {
		return Decision{Reason: ReasonRoleNotPermitted}
	}
	return Decision{Reason: ReasonInvalidTransition}
}
