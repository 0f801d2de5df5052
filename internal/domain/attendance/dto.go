package attendance

import (
	"time"

	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type SignInRequest struct {
	Name string `json:"name"`
}

func (r *SignInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SignOutRequest struct {
	Name string `json:"name"`
}

func (r *SignOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	StaffName    string  `json:"staff_name"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Status       string  `json:"status"`
}

type ListAttendanceResponse struct {
	Records []AttendanceResponse `json:"records"`
	Total   int                  `json:"total"`
}

// timePtrToString safely converts a *time.Time to a clock string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("15:04:05")
	return &formatted
}

// ToResponse converts the entity to its API representation.
func (a Attendance) ToResponse() AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		StaffName:    a.StaffName,
		Date:         a.Date.Format("2006-01-02"),
		CheckInTime:  timePtrToString(a.CheckIn),
		CheckOutTime: timePtrToString(a.CheckOut),
		Status:       a.Status(),
	}
}
