package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/salmanfarismn/LaborLog/internal/domain"
	"github.com/salmanfarismn/LaborLog/internal/ports"
	"github.com/salmanfarismn/LaborLog/internal/wage"
	"github.com/shopspring/decimal"
)

// WorkerAttendanceSummary is one worker's in-period attendance rollup.
type WorkerAttendanceSummary struct {
	WorkerID       int64
	WorkerName     string
	FullDays       int64
	HalfDays       int64
	Absents        int64
	CustomHours    float64
	TotalWorkDays  int64
	EffectiveDays  float64
	DailyWage      int64
	CalculatedWage int64
}

// PaymentSummary totals in-period payments by kind.
type PaymentSummary struct {
	Advance int64
	Salary  int64
	Bonus   int64
	Other   int64
	Total   int64
}

// DashboardStats is the fleet snapshot shown on the dashboard.
type DashboardStats struct {
	TotalWorkers    int64
	ActiveWorkers   int64
	PresentToday    int64
	AbsentToday     int64
	ActiveSites     int64
	TotalDailyWages int64
	MonthlyAdvances int64
	MonthlyPayments int64
}

// Activity is one recent attendance or payment event for the dashboard feed.
type Activity struct {
	Type        string
	ID          int64
	Date        time.Time
	Description string
	Details     string
}

type SummaryService struct {
	Workers    ports.WorkerStore
	Sites      ports.SiteStore
	Attendance ports.AttendanceStore
	Payments   ports.PaymentStore
}

// MonthRange returns [first moment, last moment] of a calendar month using
// (year, month) construction rather than elapsed-days arithmetic.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, month+1, 0, 23, 59, 59, 999e6, time.Local)
	return start, end
}

type kindTally struct {
	fullDays    int64
	halfDays    int64
	absents     int64
	customDays  int64
	customHours float64
}

// tallyByWorker folds group-by rows into one typed map keyed by worker id, so
// assembly below is a lookup instead of a linear scan per worker.
func tallyByWorker(counts []domain.AttendanceKindCount) map[int64]kindTally {
	tallies := make(map[int64]kindTally, len(counts))
	for _, c := range counts {
		t := tallies[c.WorkerID]
		switch c.Kind {
		case domain.AttendanceFullDay:
			t.fullDays = c.Count
		case domain.AttendanceHalfDay:
			t.halfDays = c.Count
		case domain.AttendanceAbsent:
			t.absents = c.Count
		case domain.AttendanceCustom:
			t.customDays = c.Count
			t.customHours = c.TotalHours
		}
		tallies[c.WorkerID] = t
	}
	return tallies
}

// BuildAttendanceSummaries joins active workers against attendance group-by
// rows. Workers with no in-period records appear with zeros.
func BuildAttendanceSummaries(workers []domain.Worker, counts []domain.AttendanceKindCount) []WorkerAttendanceSummary {
	tallies := tallyByWorker(counts)

	summaries := make([]WorkerAttendanceSummary, 0, len(workers))
	for _, w := range workers {
		t := tallies[w.ID]
		effective := wage.EffectiveDays(t.fullDays, t.halfDays)
		calculated := wage.RoundRupees(effective.Mul(decimal.NewFromInt(w.DailyWage)))
		effectiveDays, _ := effective.Float64()

		summaries = append(summaries, WorkerAttendanceSummary{
			WorkerID:       w.ID,
			WorkerName:     w.FullName,
			FullDays:       t.fullDays,
			HalfDays:       t.halfDays,
			Absents:        t.absents,
			CustomHours:    t.customHours,
			TotalWorkDays:  t.fullDays + t.halfDays,
			EffectiveDays:  effectiveDays,
			DailyWage:      w.DailyWage,
			CalculatedWage: calculated,
		})
	}
	return summaries
}

// BuildPaymentSummary shapes kind-grouped sums into the fixed four buckets
// plus a grand total.
func BuildPaymentSummary(sums []domain.PaymentKindSum) PaymentSummary {
	var s PaymentSummary
	for _, row := range sums {
		switch row.Kind {
		case domain.PaymentAdvance:
			s.Advance = row.Total
		case domain.PaymentSalary:
			s.Salary = row.Total
		case domain.PaymentBonus:
			s.Bonus = row.Total
		case domain.PaymentOther:
			s.Other = row.Total
		}
		s.Total += row.Total
	}
	return s
}

func (s SummaryService) MonthlyAttendance(ctx context.Context, year int, month time.Month) ([]WorkerAttendanceSummary, error) {
	start, end := MonthRange(year, month)

	workers, err := s.Workers.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.Attendance.KindCounts(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}
	return BuildAttendanceSummaries(workers, counts), nil
}

func (s SummaryService) MonthlyPayments(ctx context.Context, year int, month time.Month) (PaymentSummary, error) {
	start, end := MonthRange(year, month)

	sums, err := s.Payments.KindSums(ctx, start, end)
	if err != nil {
		return PaymentSummary{}, err
	}
	return BuildPaymentSummary(sums), nil
}

func (s SummaryService) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalWorkers, err = s.Workers.CountAll(ctx); err != nil {
		return stats, err
	}
	if stats.ActiveWorkers, err = s.Workers.CountActive(ctx); err != nil {
		return stats, err
	}

	now := time.Now()
	if stats.PresentToday, stats.AbsentToday, err = s.Attendance.DayPresence(ctx, now); err != nil {
		return stats, err
	}

	if stats.ActiveSites, err = s.Sites.CountActive(ctx); err != nil {
		return stats, err
	}
	if stats.TotalDailyWages, err = s.Workers.SumActiveDailyWages(ctx); err != nil {
		return stats, err
	}

	monthStart, monthEnd := MonthRange(now.Year(), now.Month())
	sums, err := s.Payments.KindSums(ctx, monthStart, monthEnd)
	if err != nil {
		return stats, err
	}
	monthly := BuildPaymentSummary(sums)
	stats.MonthlyAdvances = monthly.Advance
	stats.MonthlyPayments = monthly.Total

	return stats, nil
}

// RecentActivities merges the newest attendance and payment records into one
// feed ordered by creation time.
func (s SummaryService) RecentActivities(ctx context.Context, limit int) ([]Activity, error) {
	attendances, err := s.Attendance.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	activities := make([]Activity, 0, len(attendances)+len(payments))
	for _, a := range attendances {
		details := "No site"
		if a.SiteName != nil {
			details = *a.SiteName
		}
		activities = append(activities, Activity{
			Type:        "attendance",
			ID:          a.ID,
			Date:        a.CreatedAt,
			Description: fmt.Sprintf("%s - %s", a.WorkerName, a.Kind),
			Details:     details,
		})
	}
	for _, p := range payments {
		activities = append(activities, Activity{
			Type:        "payment",
			ID:          p.ID,
			Date:        p.CreatedAt,
			Description: fmt.Sprintf("%s - ₹%d", p.WorkerName, p.Amount),
			Details:     string(p.Kind),
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}
