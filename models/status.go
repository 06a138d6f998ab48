// File: models/status.go
package models

import "fmt"

// BookingStatus is the closed set of lifecycle states a booking can be in.
// Status values are stored as strings; unknown codes are rejected at the
// boundary rather than carried through.
type BookingStatus string

const (
	StatusConfirm      BookingStatus = "Confirm"      // scheduled and active
	StatusReschedule   BookingStatus = "Reschedule"   // member proposed a new time, awaiting counselor
	StatusFinish       BookingStatus = "Finish"       // live session ended, notes pending completion
	StatusMemberCancel BookingStatus = "MemberCancel" // cancelled by the member
	StatusReport       BookingStatus = "Report"       // flagged by the member, awaiting admin resolution
	StatusRefund       BookingStatus = "Refund"       // terminal: refunded (counselor cancel or admin resolution)
	StatusRejected     BookingStatus = "Rejected"     // terminal: report dismissed by admin
	StatusComplete     BookingStatus = "Complete"     // session done, clinical record filed
)

var allStatuses = map[BookingStatus]struct{}{
	StatusConfirm:      {},
	StatusReschedule:   {},
	StatusFinish:       {},
	StatusMemberCancel: {},
	StatusReport:       {},
	StatusRefund:       {},
	StatusRejected:     {},
	StatusComplete:     {},
}

// ParseBookingStatus converts a raw status code into a BookingStatus,
// rejecting anything outside the closed set.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(raw)
	if _, ok := allStatuses[s]; !ok {
		return "", fmt.Errorf("unknown booking status %q", raw)
	}
	return s, nil
}

// Valid reports whether s is a member of the closed status set.
func (s BookingStatus) Valid() bool {
	_, ok := allStatuses[s]
	return ok
}

// Terminal reports whether no lifecycle transition leaves s. Complete is
// retained for history but still admits a member report, so it is not
// terminal in this sense.
func (s BookingStatus) Terminal() bool {
	switch s {
	case StatusMemberCancel, StatusRefund, StatusRejected:
		return true
	}
	return false
}

// Role identifies which actor surface is driving a transition.
type Role string

const (
	RoleMember    Role = "member"
	RoleCounselor Role = "counselor"
	RoleAdmin     Role = "admin"
)

// ParseRole converts a raw role claim into a Role.
func ParseRole(raw string) (Role, error) {
	switch r := Role(raw); r {
	case RoleMember, RoleCounselor, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}
