package models

import "testing"

func TestParseBookingStatus(t *testing.T) {
	for raw, want := range map[string]BookingStatus{
		"Confirm":      StatusConfirm,
		"Reschedule":   StatusReschedule,
		"Finish":       StatusFinish,
		"MemberCancel": StatusMemberCancel,
		"Report":       StatusReport,
		"Refund":       StatusRefund,
		"Rejected":     StatusRejected,
		"Complete":     StatusComplete,
	} {
		got, err := ParseBookingStatus(raw)
		if err != nil {
			t.Fatalf("ParseBookingStatus(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseBookingStatus(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestParseBookingStatusRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "7", "confirm", "Cancelled", "Done"} {
		if _, err := ParseBookingStatus(raw); err == nil {
			t.Errorf("ParseBookingStatus(%q) accepted an unknown code", raw)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	terminal := map[BookingStatus]bool{
		StatusMemberCancel: true,
		StatusRefund:       true,
		StatusRejected:     true,
	}
	for s := range allStatuses {
		if s.Terminal() != terminal[s] {
			t.Errorf("%s.Terminal() = %v, want %v", s, s.Terminal(), terminal[s])
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"member", "counselor", "admin"} {
		if _, err := ParseRole(raw); err != nil {
			t.Fatalf("ParseRole(%q): %v", raw, err)
		}
	}
	if _, err := ParseRole("superuser"); err == nil {
		t.Fatal("ParseRole accepted an unknown role")
	}
}

func TestIsCouple(t *testing.T) {
	b := Booking{MemberID: "m-1"}
	if b.IsCouple() {
		t.Fatal("individual session reported as couple")
	}
	b.PartnerMemberID = "m-2"
	if !b.IsCouple() {
		t.Fatal("couple session not detected")
	}
}

func TestNoteDraftTrimmed(t *testing.T) {
	d := NoteDraft{ProblemSummary: "  anxiety ", ProblemAnalysis: "\t", Guides: " guides\n"}
	got := d.Trimmed()
	if got.ProblemSummary != "anxiety" || got.ProblemAnalysis != "" || got.Guides != "guides" {
		t.Fatalf("Trimmed() = %+v", got)
	}
}
