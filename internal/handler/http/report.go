package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staffsync/attendance-backend-go/internal/domain/report"
	"github.com/staffsync/attendance-backend-go/internal/handler/http/response"
	"github.com/staffsync/attendance-backend-go/internal/pkg/clock"
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

type ReportHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	clock         clock.Clock
}

func NewReportHandler(reportService report.ReportService, clk clock.Clock) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		clock:         clk,
	}
}

type reportResponse struct {
	Kind string `json:"kind"`
	Date string `json:"date"`
	Body string `json:"body"`
}

// Get renders one of the daily reports on demand. Same aggregator as the
// scheduled email jobs, so the view always matches what gets sent.
func (h *reportHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	kind, err := report.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	date := h.clock.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.BadRequest(w, "Invalid date, want YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	body, err := h.reportService.GenerateReport(r.Context(), kind, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reportResponse{
		Kind: string(kind),
		Date: date.Format("2006-01-02"),
		Body: body,
	})
}
