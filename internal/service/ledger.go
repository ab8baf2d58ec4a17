package service

import (
	"context"
	"sort"
	"time"

	"github.com/salmanfarismn/LaborLog/internal/domain"
	"github.com/salmanfarismn/LaborLog/internal/ports"
	"github.com/salmanfarismn/LaborLog/internal/wage"
)

// EntryKindAttendance marks credit entries; debit entries carry the payment kind.
const EntryKindAttendance = "ATTENDANCE"

// LedgerEntry is one derived credit-or-debit line in a worker's running
// financial history. Entries exist only inside a ledger computation and are
// never persisted.
type LedgerEntry struct {
	Date        time.Time
	Description string
	Kind        string
	Credit      int64
	Debit       int64
	Balance     int64
}

type LedgerSummary struct {
	TotalEarned int64
	TotalPaid   int64
	Balance     int64
}

type WorkerLedger struct {
	Worker  domain.Worker
	Start   time.Time
	End     time.Time
	Entries []LedgerEntry
	Summary LedgerSummary
}

type LedgerService struct {
	Workers    ports.WorkerStore
	Attendance ports.AttendanceStore
	Payments   ports.PaymentStore
}

// WorkerBalance is one active worker's month-to-date position.
type WorkerBalance struct {
	WorkerID   int64
	WorkerName string
	DailyWage  int64
	Earned     int64
	Paid       int64
	Balance    int64
}

// LedgerRange resolves an optional [start, end] request against now.
// End defaults to now; start defaults to the first day of the month two
// months before end. Both bounds cover whole days: start at midnight, end at
// the last millisecond of its day, so records anywhere in the boundary days
// are included.
func LedgerRange(now time.Time, start, end *time.Time) (time.Time, time.Time) {
	e := now
	if end != nil {
		e = *end
	}
	e = time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, 999e6, e.Location())

	var s time.Time
	if start != nil {
		s = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	} else {
		s = time.Date(e.Year(), e.Month()-2, 1, 0, 0, 0, 0, e.Location())
	}
	return s, e
}

// BuildLedger merges attendance-derived credits and payment debits into a
// date-ordered transaction list with running balances. Pure function of its
// inputs: building twice from the same records yields identical output.
//
// Credits are rounded when each entry is emitted; from there the walk is
// integer arithmetic, so the running balance never compounds rounding error.
// On date ties attendance entries precede payment entries: attendance is
// appended first and the sort is stable. That ordering is a policy choice.
func BuildLedger(dailyWage int64, attendances []domain.Attendance, payments []domain.Payment) ([]LedgerEntry, LedgerSummary) {
	entries := make([]LedgerEntry, 0, len(attendances)+len(payments))

	for _, att := range attendances {
		credit := wage.RoundRupees(wage.Credit(att.Kind, att.TotalHours, dailyWage))
		if credit == 0 {
			continue
		}
		entries = append(entries, LedgerEntry{
			Date:        att.Date,
			Description: wage.Description(att.Kind, att.TotalHours),
			Kind:        EntryKindAttendance,
			Credit:      credit,
		})
	}

	for _, pmt := range payments {
		description := pmt.Notes
		if description == "" {
			description = string(pmt.Kind)
		}
		entries = append(entries, LedgerEntry{
			Date:        pmt.Date,
			Description: description,
			Kind:        string(pmt.Kind),
			Debit:       pmt.Amount,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	var summary LedgerSummary
	var balance int64
	for i := range entries {
		balance += entries[i].Credit - entries[i].Debit
		entries[i].Balance = balance
		summary.TotalEarned += entries[i].Credit
		summary.TotalPaid += entries[i].Debit
	}
	summary.Balance = summary.TotalEarned - summary.TotalPaid

	return entries, summary
}

// WorkerLedger computes the full ledger for one worker over an optional date
// range. Missing workers surface as repository.ErrNotFound from the store.
func (s LedgerService) WorkerLedger(ctx context.Context, workerID int64, start, end *time.Time) (*WorkerLedger, error) {
	worker, err := s.Workers.Get(ctx, workerID)
	if err != nil {
		return nil, err
	}

	from, to := LedgerRange(time.Now(), start, end)

	attendances, err := s.Attendance.ListForWorker(ctx, workerID, from, to)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.ListForWorker(ctx, workerID, from, to)
	if err != nil {
		return nil, err
	}

	entries, summary := BuildLedger(worker.DailyWage, attendances, payments)
	return &WorkerLedger{
		Worker:  *worker,
		Start:   from,
		End:     to,
		Entries: entries,
		Summary: summary,
	}, nil
}

// MonthBalances returns every active worker's current-month earned and paid
// totals with the outstanding balance. Earnings are accumulated as decimals
// and rounded once per worker, not per record.
func (s LedgerService) MonthBalances(ctx context.Context) ([]WorkerBalance, error) {
	workers, err := s.Workers.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	start, end := MonthRange(now.Year(), now.Month())

	counts, err := s.Attendance.KindCounts(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}
	totals, err := s.Payments.WorkerTotals(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}

	tallies := tallyByWorker(counts)
	paid := make(map[int64]int64, len(totals))
	for _, t := range totals {
		paid[t.WorkerID] = t.TotalPaid
	}

	balances := make([]WorkerBalance, 0, len(workers))
	for _, w := range workers {
		t := tallies[w.ID]
		earned := wage.RoundRupees(wage.PeriodEarnings(t.fullDays, t.halfDays, t.customHours, w.DailyWage))
		balances = append(balances, WorkerBalance{
			WorkerID:   w.ID,
			WorkerName: w.FullName,
			DailyWage:  w.DailyWage,
			Earned:     earned,
			Paid:       paid[w.ID],
			Balance:    earned - paid[w.ID],
		})
	}
	return balances, nil
}
