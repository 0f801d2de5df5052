package attendance

import (
	"time"
)

// Punctuality classifications. Arrival and departure are tracked as two
// independent facts; Status() renders them as the single legacy string
// used in reports.
const (
	StatusOnTime    = "On Time"
	StatusLate      = "Late"
	StatusLeftEarly = "Left Early"
)

// Attendance is one staff member's record for one calendar day. At most
// one record exists per (StaffName, Date) pair.
type Attendance struct {
	ID              string
	StaffName       string
	Date            time.Time
	CheckIn         *time.Time
	CheckOut        *time.Time
	ArrivalStatus   string
	DepartureStatus *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LeftEarly reports whether the record carries an early departure.
func (a Attendance) LeftEarly() bool {
	return a.DepartureStatus != nil && *a.DepartureStatus == StatusLeftEarly
}

// ArrivedLate reports whether the record carries a late arrival.
func (a Attendance) ArrivedLate() bool {
	return a.ArrivalStatus == StatusLate
}

// Status renders the composite classification string:
//
//	"On Time"             arrived on time, not signed out yet
//	"Late"                arrived late, not signed out yet
//	"On Time, Left Early" / "Late, Left Early"
//	"On Time"             signed out after the afternoon cutoff, arrival was on time
//	"Late"                signed out after the afternoon cutoff, arrival was late
//
// An on-time departure never upgrades a late arrival, and an on-time
// departure after an on-time arrival renders plain "On Time".
func (a Attendance) Status() string {
	switch {
	case a.DepartureStatus == nil:
		return a.ArrivalStatus
	case *a.DepartureStatus == StatusLeftEarly:
		return a.ArrivalStatus + ", " + StatusLeftEarly
	case a.ArrivedLate():
		return StatusLate
	default:
		return StatusOnTime
	}
}
