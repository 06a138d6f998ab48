package booking

import (
	"fmt"
	"strings"
)

// DenialReason is the machine-readable code attached to every refused
// lifecycle operation. Callers render messages from these codes plus the
// offending field names; the service never rewrites them into vaguer text.
type DenialReason string

const (
	ReasonInvalidTransition    DenialReason = "invalid-transition"
	ReasonRoleNotPermitted     DenialReason = "role-not-permitted"
	ReasonMissingRequiredField DenialReason = "missing-required-field"
	ReasonNotYetEligible       DenialReason = "not-yet-eligible"
	ReasonNotesRequired        DenialReason = "notes-required"
	ReasonConflict             DenialReason = "conflict"
)

// FieldName identifies a booking field named in a denial.
type FieldName string

const (
	FieldCancelReason   FieldName = "cancelReason"
	FieldReportMessage  FieldName = "reportMessage"
	FieldProblemSummary FieldName = "problemSummary"
	FieldGuides         FieldName = "guides"
	FieldProposedTime   FieldName = "proposedTime"
)

// TransitionError is the structured result of a refused transition or note
// write. It crosses the service boundary as a value, never as a panic.
type TransitionError struct {
	Reason DenialReason
	Fields []FieldName
}

func (e *TransitionError) Error() string {
	if len(e.Fields) == 0 {
		return string(e.Reason)
	}
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(names, ", "))
}

// Denied constructs a TransitionError for the given reason and fields.
func Denied(reason DenialReason, fields ...FieldName) *TransitionError {
	return &TransitionError{Reason: reason, Fields: fields}
}
