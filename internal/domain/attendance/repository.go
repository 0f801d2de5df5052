package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Dates are compared by calendar day; implementations must treat each call
// as an atomic unit so a sign-out composes onto the latest stored record.
type AttendanceRepository interface {
	// Create inserts a new attendance record. Inserting a second record
	// for the same (name, date) pair returns ErrDuplicateSignIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByNameAndDate retrieves the record for a staff member on a given
	// day. Returns (nil, nil) when no record exists.
	GetByNameAndDate(ctx context.Context, staffName string, date time.Time) (*Attendance, error)

	// Update persists the mutable fields of an existing record.
	Update(ctx context.Context, attendance Attendance) error

	// ListByDate retrieves all records for a day, check-in ascending.
	// The ordering is part of the contract: report output depends on it.
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// WithinTransaction runs fn atomically: repository calls made with
	// the ctx passed to fn observe and mutate a single consistent state.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
