package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/config"
	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/pkg/clock"
	"github.com/staffsync/attendance-backend-go/internal/pkg/metrics"
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

// AttendanceServiceImpl classifies sign-ins and sign-outs against the two
// daily cutoffs and persists the result through the repository.
type AttendanceServiceImpl struct {
	repo      attendance.AttendanceRepository
	clock     clock.Clock
	collector metrics.Collector

	morningCutoff   config.TimeOfDay
	afternoonCutoff config.TimeOfDay
}

func NewAttendanceService(
	repo attendance.AttendanceRepository,
	clk clock.Clock,
	collector metrics.Collector,
	reportCfg config.ReportConfig,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		repo:            repo,
		clock:           clk,
		collector:       collector,
		morningCutoff:   reportCfg.MorningCutoff,
		afternoonCutoff: reportCfg.AfternoonCutoff,
	}
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)

// SignIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SignIn(ctx context.Context, req attendance.SignInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	name := validator.NormalizeName(req.Name)
	if name == "" {
		return attendance.AttendanceResponse{}, attendance.ErrEmptyName
	}

	now := s.clock.Now()

	existing, err := s.repo.GetByNameAndDate(ctx, name, now)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check for existing sign-in: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrDuplicateSignIn
	}

	// Arriving exactly at the cutoff still counts as on time.
	arrivalStatus := attendance.StatusOnTime
	if now.After(s.morningCutoff.On(now)) {
		arrivalStatus = attendance.StatusLate
	}

	record := attendance.Attendance{
		StaffName:     name,
		Date:          dateOnly(now),
		CheckIn:       &now,
		ArrivalStatus: arrivalStatus,
	}

	// The unique (name, date) index makes a concurrent duplicate lose
	// here with ErrDuplicateSignIn rather than inserting a second row.
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.collector.RecordSignIn(arrivalStatus)
	return created.ToResponse(), nil
}

// SignOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SignOut(ctx context.Context, req attendance.SignOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	name := validator.NormalizeName(req.Name)
	if name == "" {
		return attendance.AttendanceResponse{}, attendance.ErrEmptyName
	}

	now := s.clock.Now()

	var record *attendance.Attendance
	var departureStatus string

	// Read and write inside one transaction so the departure composes
	// onto the latest stored arrival status, never a cached copy.
	err := s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.repo.GetByNameAndDate(ctx, name, now)
		if err != nil {
			return fmt.Errorf("failed to look up today's sign-in: %w", err)
		}
		if record == nil {
			return attendance.ErrNoSignInFound
		}
		if record.CheckOut != nil {
			return attendance.ErrAlreadySignedOut
		}
		if record.CheckIn != nil && now.Before(*record.CheckIn) {
			return attendance.ErrSignOutBeforeSignIn
		}

		departureStatus = attendance.StatusOnTime
		if now.Before(s.afternoonCutoff.On(now)) {
			departureStatus = attendance.StatusLeftEarly
		}

		record.CheckOut = &now
		record.DepartureStatus = &departureStatus

		if err := s.repo.Update(ctx, *record); err != nil {
			return fmt.Errorf("failed to persist sign-out: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.collector.RecordSignOut(departureStatus)
	return record.ToResponse(), nil
}

// GetTodayRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayRecords(ctx context.Context) (attendance.ListAttendanceResponse, error) {
	records, err := s.repo.ListByDate(ctx, s.clock.Now())
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list today's records: %w", err)
	}

	resp := attendance.ListAttendanceResponse{
		Records: make([]attendance.AttendanceResponse, 0, len(records)),
		Total:   len(records),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, r.ToResponse())
	}
	return resp, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
