package cron

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/staffsync/attendance-backend-go/internal/config"
	"github.com/staffsync/attendance-backend-go/internal/domain/report"
	"github.com/staffsync/attendance-backend-go/internal/pkg/clock"
	"github.com/staffsync/attendance-backend-go/internal/pkg/email"
	"github.com/staffsync/attendance-backend-go/internal/pkg/metrics"
)

// ReportJobs wires the two daily report firings: generate the day's text
// and hand it to the notifier. Delivery trouble is logged and counted but
// never reaches attendance state.
type ReportJobs struct {
	reportSvc report.ReportService
	notifier  email.Notifier
	clock     clock.Clock
	collector metrics.Collector
	cfg       config.ReportConfig
}

func NewReportJobs(
	reportSvc report.ReportService,
	notifier email.Notifier,
	clk clock.Clock,
	collector metrics.Collector,
	cfg config.ReportConfig,
) *ReportJobs {
	return &ReportJobs{
		reportSvc: reportSvc,
		notifier:  notifier,
		clock:     clk,
		collector: collector,
		cfg:       cfg,
	}
}

func (j *ReportJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("morning_late_arrival_report", j.cfg.MorningTrigger, j.SendMorningReport)
	scheduler.AddJob("afternoon_early_leave_report", j.cfg.AfternoonTrigger, j.SendAfternoonReport)
}

// MorningSubject renders the morning subject line, e.g.
// "6:20 AM Late Arrival Report" with the default trigger.
func (j *ReportJobs) MorningSubject() string {
	return j.subjectAt(j.cfg.MorningTrigger) + " Late Arrival Report"
}

// AfternoonSubject renders the afternoon subject line, e.g.
// "12:50 PM Early Leave Report" with the default trigger.
func (j *ReportJobs) AfternoonSubject() string {
	return j.subjectAt(j.cfg.AfternoonTrigger) + " Early Leave Report"
}

func (j *ReportJobs) subjectAt(at config.TimeOfDay) string {
	return at.On(j.clock.Now()).Format("3:04 PM")
}

func (j *ReportJobs) SendMorningReport(ctx context.Context) error {
	return j.send(ctx, report.KindMorning, j.MorningSubject())
}

func (j *ReportJobs) SendAfternoonReport(ctx context.Context) error {
	return j.send(ctx, report.KindAfternoon, j.AfternoonSubject())
}

func (j *ReportJobs) send(ctx context.Context, kind report.Kind, subject string) error {
	today := j.clock.Now()

	text, err := j.reportSvc.GenerateReport(ctx, kind, today)
	if err != nil {
		j.collector.RecordReportFailure(string(kind))
		return fmt.Errorf("failed to generate %s report: %w", kind, err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, j.cfg.NotifyTimeout)
	defer cancel()

	if err := j.notifier.Send(sendCtx, subject, text, j.cfg.Recipients); err != nil {
		j.collector.RecordReportFailure(string(kind))
		return fmt.Errorf("failed to deliver %s report: %w", kind, err)
	}

	j.collector.RecordReportSent(string(kind))
	slog.Info("Report delivered", "kind", kind, "subject", subject, "recipients", len(j.cfg.Recipients))
	return nil
}
