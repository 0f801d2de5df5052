package report

import (
	"context"
	"errors"
	"time"
)

// Kind selects which of the two daily reports to generate.
type Kind string

const (
	// KindMorning lists staff whose arrival was late.
	KindMorning Kind = "morning"
	// KindAfternoon lists staff who left before the afternoon cutoff.
	KindAfternoon Kind = "afternoon"
)

var ErrUnknownKind = errors.New("unknown report kind")

// ParseKind validates a kind received from the outside (URL, config).
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindMorning, KindAfternoon:
		return Kind(s), nil
	}
	return "", ErrUnknownKind
}

// ReportService produces the daily report text. Same store snapshot in,
// same text out.
type ReportService interface {
	GenerateReport(ctx context.Context, kind Kind, date time.Time) (string, error)
}
