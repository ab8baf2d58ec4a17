package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salmanfarismn/LaborLog/internal/domain"
	"github.com/salmanfarismn/LaborLog/internal/ports"
	"github.com/salmanfarismn/LaborLog/internal/report"
	"github.com/salmanfarismn/LaborLog/internal/wage"
)

// Validation failures surfaced before any workbook is rendered.
var (
	ErrDateRangeRequired = errors.New("date range is required")
	ErrInvalidDateRange  = errors.New("start date must be before end date")
	ErrNoMatchingWorkers = errors.New("no workers found for the selected filters")
)

// ReportFilters narrows the worker set and the aggregation window. An empty
// Status means all workers regardless of status.
type ReportFilters struct {
	StartDate time.Time
	EndDate   time.Time
	SiteID    *int64
	WorkerID  *int64
	Status    domain.WorkerStatus
}

type GeneratedReport struct {
	Data     []byte
	Filename string
	MimeType string
}

const xlsxMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportService struct {
	Workers      ports.WorkerStore
	Sites        ports.SiteStore
	Attendance   ports.AttendanceStore
	Payments     ports.PaymentStore
	CompanyName  string
	CurrencyCode string
}

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// currencySymbol maps an ISO code to its display symbol; unknown codes are
// shown as-is.
func currencySymbol(code string) string {
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	if code == "" {
		return "₹"
	}
	return code + " "
}

// BuildReportRows joins worker identity, default-site name and the two
// aggregation maps into flat export rows. Workers with no in-period records
// still get a row with zero-valued fields.
func BuildReportRows(
	workers []domain.Worker,
	siteNames map[int64]string,
	counts []domain.AttendanceKindCount,
	paymentTotals []domain.PaymentWorkerTotal,
) []report.Row {
	tallies := tallyByWorker(counts)

	payments := make(map[int64]domain.PaymentWorkerTotal, len(paymentTotals))
	for _, t := range paymentTotals {
		payments[t.WorkerID] = t
	}

	rows := make([]report.Row, 0, len(workers))
	for _, w := range workers {
		t := tallies[w.ID]
		p := payments[w.ID]

		earned := wage.RoundRupees(wage.PeriodEarnings(t.fullDays, t.halfDays, t.customHours, w.DailyWage))

		site := ""
		if w.DefaultSiteID != nil {
			site = siteNames[*w.DefaultSiteID]
		}

		rows = append(rows, report.Row{
			WorkerID:        w.ID,
			FullName:        w.FullName,
			Phone:           w.Phone,
			Status:          string(w.Status),
			AssignedSite:    site,
			JoiningDate:     w.JoiningDate,
			DaysPresent:     t.fullDays + t.halfDays + t.customDays,
			DaysAbsent:      t.absents,
			OvertimeHours:   t.customHours,
			WagesEarned:     earned,
			AmountPaid:      p.TotalPaid,
			PendingBalance:  earned - p.TotalPaid,
			LastPaymentDate: p.LastPaymentDate,
		})
	}
	return rows
}

// WorkerReport validates the filter set, aggregates the period and renders
// the spreadsheet. Filter problems are reported before any store access
// where feasible; a filter matching zero workers is an error, never an
// empty file.
func (s ReportService) WorkerReport(ctx context.Context, f ReportFilters) (*GeneratedReport, error) {
	if f.StartDate.IsZero() || f.EndDate.IsZero() {
		return nil, ErrDateRangeRequired
	}
	if f.StartDate.After(f.EndDate) {
		return nil, ErrInvalidDateRange
	}

	start := time.Date(f.StartDate.Year(), f.StartDate.Month(), f.StartDate.Day(), 0, 0, 0, 0, f.StartDate.Location())
	end := time.Date(f.EndDate.Year(), f.EndDate.Month(), f.EndDate.Day(), 23, 59, 59, 999e6, f.EndDate.Location())

	workers, err := s.Workers.ListForReport(ctx, f.Status, f.SiteID, f.WorkerID)
	if err != nil {
		return nil, err
	}
	if len(workers) == 0 {
		return nil, ErrNoMatchingWorkers
	}

	workerIDs := make([]int64, 0, len(workers))
	siteIDs := make([]int64, 0, len(workers))
	for _, w := range workers {
		workerIDs = append(workerIDs, w.ID)
		if w.DefaultSiteID != nil {
			siteIDs = append(siteIDs, *w.DefaultSiteID)
		}
	}

	siteNames, err := s.Sites.NamesByIDs(ctx, siteIDs)
	if err != nil {
		return nil, err
	}
	counts, err := s.Attendance.KindCounts(ctx, start, end, workerIDs)
	if err != nil {
		return nil, err
	}
	paymentTotals, err := s.Payments.WorkerTotals(ctx, start, end, workerIDs)
	if err != nil {
		return nil, err
	}

	rows := BuildReportRows(workers, siteNames, counts, paymentTotals)

	now := time.Now()
	data, err := report.Generate(rows, report.Metadata{
		CompanyName: s.CompanyName,
		Title:       "Worker Report",
		PeriodFrom:  start.Format("02/01/2006"),
		PeriodTo:    end.Format("02/01/2006"),
		Currency:    currencySymbol(s.CurrencyCode),
		GeneratedAt: now,
	})
	if err != nil {
		return nil, err
	}

	return &GeneratedReport{
		Data:     data,
		Filename: fmt.Sprintf("worker_report_%s.xlsx", now.Format("2006-01-02")),
		MimeType: xlsxMimeType,
	}, nil
}
