package booking

import (
	"sort"

	"mindlink/models"
)

// noteEligibility lists, per status, the note fields that must be non-empty
// after trimming for a note write to go through. Statuses absent from the
// table are not yet eligible for notes at all. ProblemAnalysis is optional
// everywhere, so it never appears here.
var noteEligibility = map[models.BookingStatus][]FieldName{
	models.StatusFinish:   {FieldProblemSummary, FieldGuides},
	models.StatusComplete: {FieldProblemSummary, FieldGuides},
}

// NoteValidation is the per-field outcome of a note write attempt.
type NoteValidation struct {
	Ok          bool
	Reason      DenialReason
	FieldErrors map[FieldName]DenialReason
}

// Err converts a failed validation into its TransitionError.
func (v NoteValidation) Err() error {
	if v.Ok {
		return nil
	}
	fields := make([]FieldName, 0, len(v.FieldErrors))
	for f := range v.FieldErrors {
		fields = append(fields, f)
	}
	// Map iteration order is random; keep the error stable for clients.
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return &TransitionError{Reason: v.Reason, Fields: fields}
}

// ValidateNotes decides whether draft may be written to a booking currently
// in status. Before Finish every note write is rejected outright; from
// Finish onward problemSummary and guides must be non-empty, which also
// means a Complete booking can be edited in place but never cleared back to
// empty.
func ValidateNotes(status models.BookingStatus, draft models.NoteDraft) NoteValidation {
	required, eligible := noteEligibility[status]
	if !eligible {
		return NoteValidation{Reason: ReasonNotYetEligible}
	}

	trimmed := draft.Trimmed()
	present := map[FieldName]bool{
		FieldProblemSummary: trimmed.ProblemSummary != "",
		FieldGuides:         trimmed.Guides != "",
	}

	fieldErrors := make(map[FieldName]DenialReason)
	for _, f := range required {
		if !present[f] {
			fieldErrors[f] = ReasonMissingRequiredField
		}
	}
	if len(fieldErrors) > 0 {
		return NoteValidation{Reason: ReasonMissingRequiredField, FieldErrors: fieldErrors}
	}
	return NoteValidation{Ok: true}
}
