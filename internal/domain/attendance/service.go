package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// SignIn records a staff member's arrival and classifies it against
	// the morning cutoff. A second sign-in on the same day is rejected.
	SignIn(ctx context.Context, req SignInRequest) (AttendanceResponse, error)

	// SignOut records a staff member's departure and classifies it against
	// the afternoon cutoff.
	SignOut(ctx context.Context, req SignOutRequest) (AttendanceResponse, error)

	// GetTodayRecords retrieves all of today's records, check-in ascending.
	GetTodayRecords(ctx context.Context) (ListAttendanceResponse, error)
}
