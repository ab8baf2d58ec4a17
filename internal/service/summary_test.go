package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salmanfarismn/LaborLog/internal/domain"
	"github.com/salmanfarismn/LaborLog/internal/service"
)

func TestMonthRange_CoversWholeMonth(t *testing.T) {
	start, end := service.MonthRange(2026, time.February)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2026, time.February, 28, 23, 59, 59, 999e6, time.Local), end)
}

func TestMonthRange_LeapFebruary(t *testing.T) {
	_, end := service.MonthRange(2028, time.February)

	assert.Equal(t, 29, end.Day())
}

func TestBuildAttendanceSummaries_EffectiveDaysAndWage(t *testing.T) {
	// GIVEN: a 700-rupee worker with 20 full and 4 half days
	// THEN: 22.0 effective days and a 15400 calculated wage
	workers := []domain.Worker{
		{ID: 1, FullName: "Ravi Kumar", DailyWage: 700, Status: domain.StatusActive},
	}
	counts := []domain.AttendanceKindCount{
		{WorkerID: 1, Kind: domain.AttendanceFullDay, Count: 20},
		{WorkerID: 1, Kind: domain.AttendanceHalfDay, Count: 4},
		{WorkerID: 1, Kind: domain.AttendanceAbsent, Count: 2},
	}

	summaries := service.BuildAttendanceSummaries(workers, counts)

	require.Len(t, summaries, 1)
	s := summaries[0]
	assert.Equal(t, int64(20), s.FullDays)
	assert.Equal(t, int64(4), s.HalfDays)
	assert.Equal(t, int64(2), s.Absents)
	assert.Equal(t, int64(24), s.TotalWorkDays)
	assert.Equal(t, 22.0, s.EffectiveDays)
	assert.Equal(t, int64(15400), s.CalculatedWage)
}

func TestBuildAttendanceSummaries_OddWage_RoundsOnce(t *testing.T) {
	// 1 half day at 701: effective 0.5 days, wage rounds 350.5 up to 351.
	workers := []domain.Worker{{ID: 1, FullName: "Asha", DailyWage: 701}}
	counts := []domain.AttendanceKindCount{
		{WorkerID: 1, Kind: domain.AttendanceHalfDay, Count: 1},
	}

	summaries := service.BuildAttendanceSummaries(workers, counts)

	require.Len(t, summaries, 1)
	assert.Equal(t, 0.5, summaries[0].EffectiveDays)
	assert.Equal(t, int64(351), summaries[0].CalculatedWage)
}

func TestBuildAttendanceSummaries_WorkerWithoutRecords_GetsZeroRow(t *testing.T) {
	workers := []domain.Worker{
		{ID: 1, FullName: "Ravi Kumar", DailyWage: 700},
		{ID: 2, FullName: "Suresh", DailyWage: 650},
	}
	counts := []domain.AttendanceKindCount{
		{WorkerID: 1, Kind: domain.AttendanceFullDay, Count: 5},
	}

	summaries := service.BuildAttendanceSummaries(workers, counts)

	require.Len(t, summaries, 2)
	assert.Equal(t, int64(0), summaries[1].FullDays)
	assert.Equal(t, int64(0), summaries[1].CalculatedWage)
}

func TestBuildPaymentSummary_Buckets(t *testing.T) {
	sums := []domain.PaymentKindSum{
		{Kind: domain.PaymentAdvance, Total: 3000},
		{Kind: domain.PaymentSalary, Total: 15000},
		{Kind: domain.PaymentBonus, Total: 1000},
		{Kind: domain.PaymentOther, Total: 500},
	}

	s := service.BuildPaymentSummary(sums)

	assert.Equal(t, int64(3000), s.Advance)
	assert.Equal(t, int64(15000), s.Salary)
	assert.Equal(t, int64(1000), s.Bonus)
	assert.Equal(t, int64(500), s.Other)
	assert.Equal(t, int64(19500), s.Total)
}

func TestBuildPaymentSummary_Empty(t *testing.T) {
	assert.Equal(t, service.PaymentSummary{}, service.BuildPaymentSummary(nil))
}

func TestSummaryService_Dashboard(t *testing.T) {
	today := time.Now()
	svc := service.SummaryService{
		Workers: fakeWorkerStore{workers: []domain.Worker{
			{ID: 1, DailyWage: 700, Status: domain.StatusActive},
			{ID: 2, DailyWage: 650, Status: domain.StatusActive},
			{ID: 3, DailyWage: 600, Status: domain.StatusInactive},
		}},
		Sites: fakeSiteStore{active: 2},
		Attendance: fakeAttendanceStore{records: []domain.Attendance{
			{WorkerID: 1, Date: today, Kind: domain.AttendanceFullDay},
			{WorkerID: 2, Date: today, Kind: domain.AttendanceAbsent},
		}},
		Payments: fakePaymentStore{records: []domain.Payment{
			{WorkerID: 1, Date: today, Amount: 2000, Kind: domain.PaymentAdvance},
			{WorkerID: 2, Date: today, Amount: 5000, Kind: domain.PaymentSalary},
		}},
	}

	stats, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalWorkers)
	assert.Equal(t, int64(2), stats.ActiveWorkers)
	assert.Equal(t, int64(1), stats.PresentToday)
	assert.Equal(t, int64(1), stats.AbsentToday)
	assert.Equal(t, int64(2), stats.ActiveSites)
	assert.Equal(t, int64(1350), stats.TotalDailyWages)
	assert.Equal(t, int64(2000), stats.MonthlyAdvances)
	assert.Equal(t, int64(7000), stats.MonthlyPayments)
}

func TestSummaryService_MonthlyAttendance_FiltersByMonth(t *testing.T) {
	svc := service.SummaryService{
		Workers: fakeWorkerStore{workers: []domain.Worker{
			{ID: 1, FullName: "Ravi Kumar", DailyWage: 700, Status: domain.StatusActive},
		}},
		Attendance: fakeAttendanceStore{records: []domain.Attendance{
			{WorkerID: 1, Date: day(2026, time.March, 10), Kind: domain.AttendanceFullDay},
			{WorkerID: 1, Date: day(2026, time.April, 1), Kind: domain.AttendanceFullDay},
		}},
	}

	summaries, err := svc.MonthlyAttendance(context.Background(), 2026, time.March)

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(1), summaries[0].FullDays)
}

func TestSummaryService_RecentActivities_MergedNewestFirst(t *testing.T) {
	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.Local)
	siteName := "North Yard"
	svc := service.SummaryService{
		Attendance: fakeAttendanceStore{records: []domain.Attendance{
			{ID: 1, WorkerID: 1, WorkerName: "Ravi Kumar", SiteName: &siteName, Kind: domain.AttendanceFullDay, CreatedAt: base},
		}},
		Payments: fakePaymentStore{records: []domain.Payment{
			{ID: 2, WorkerID: 1, WorkerName: "Ravi Kumar", Amount: 500, Kind: domain.PaymentAdvance, CreatedAt: base.Add(time.Hour)},
		}},
	}

	activities, err := svc.RecentActivities(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "payment", activities[0].Type)
	assert.Equal(t, "Ravi Kumar - ₹500", activities[0].Description)
	assert.Equal(t, "attendance", activities[1].Type)
	assert.Equal(t, "Ravi Kumar - FULL_DAY", activities[1].Description)
	assert.Equal(t, "North Yard", activities[1].Details)
}

func TestSummaryService_RecentActivities_TruncatesToLimit(t *testing.T) {
	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.Local)
	var attendances []domain.Attendance
	for i := 0; i < 5; i++ {
		attendances = append(attendances, domain.Attendance{
			ID: int64(i), WorkerID: 1, WorkerName: "Ravi Kumar",
			Kind: domain.AttendanceFullDay, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	svc := service.SummaryService{
		Attendance: fakeAttendanceStore{records: attendances},
		Payments:   fakePaymentStore{},
	}

	activities, err := svc.RecentActivities(context.Background(), 3)

	require.NoError(t, err)
	assert.Len(t, activities, 3)
}
