package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/report"
)

// Fixed sentinel bodies for days with nothing to report. Sent as-is so
// recipients can tell "quiet day" apart from "report never arrived".
const (
	NoLateArrivals = "All staff have checked in on time."
	NoEarlyLeavers = "No one left early today."
)

// ReportServiceImpl renders the day's records into the two report texts.
// Pure with respect to the store snapshot: same records in, same text out.
type ReportServiceImpl struct {
	repo attendance.AttendanceRepository
}

func NewReportService(repo attendance.AttendanceRepository) *ReportServiceImpl {
	return &ReportServiceImpl{repo: repo}
}

var _ report.ReportService = (*ReportServiceImpl)(nil)

// GenerateReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateReport(ctx context.Context, kind report.Kind, date time.Time) (string, error) {
	records, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return "", fmt.Errorf("failed to load records for report: %w", err)
	}

	switch kind {
	case report.KindMorning:
		return renderMorning(records), nil
	case report.KindAfternoon:
		return renderAfternoon(records), nil
	default:
		return "", report.ErrUnknownKind
	}
}

func renderMorning(records []attendance.Attendance) string {
	var lines []string
	for _, r := range records {
		if !r.ArrivedLate() || r.CheckIn == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s – signed in at %s", r.StaffName, r.CheckIn.Format("15:04")))
	}
	if len(lines) == 0 {
		return NoLateArrivals
	}
	return strings.Join(lines, "\n")
}

func renderAfternoon(records []attendance.Attendance) string {
	var lines []string
	for _, r := range records {
		if !r.LeftEarly() || r.CheckOut == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s – signed out at %s", r.StaffName, r.CheckOut.Format("15:04")))
	}
	if len(lines) == 0 {
		return NoEarlyLeavers
	}
	return strings.Join(lines, "\n")
}
