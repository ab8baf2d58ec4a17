package service_test

import (
	"context"
	"time"

	"github.com/salmanfarismn/LaborLog/internal/domain"
	"github.com/salmanfarismn/LaborLog/internal/repository"
)

// In-memory stores backing the service tests. Range filtering is inclusive on
// both bounds, matching the SQL BETWEEN predicates of the real repositories.

type fakeWorkerStore struct {
	workers []domain.Worker
}

func (f fakeWorkerStore) Get(_ context.Context, id int64) (*domain.Worker, error) {
	for _, w := range f.workers {
		if w.ID == id {
			w := w
			return &w, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f fakeWorkerStore) ListActive(context.Context) ([]domain.Worker, error) {
	var out []domain.Worker
	for _, w := range f.workers {
		if w.Status == domain.StatusActive {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f fakeWorkerStore) ListForReport(_ context.Context, status domain.WorkerStatus, siteID, workerID *int64) ([]domain.Worker, error) {
	var out []domain.Worker
	for _, w := range f.workers {
		if status != "" && w.Status != status {
			continue
		}
		if siteID != nil && (w.DefaultSiteID == nil || *w.DefaultSiteID != *siteID) {
			continue
		}
		if workerID != nil && w.ID != *workerID {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (f fakeWorkerStore) CountAll(context.Context) (int64, error) {
	return int64(len(f.workers)), nil
}

func (f fakeWorkerStore) CountActive(context.Context) (int64, error) {
	var n int64
	for _, w := range f.workers {
		if w.Status == domain.StatusActive {
			n++
		}
	}
	return n, nil
}

func (f fakeWorkerStore) SumActiveDailyWages(context.Context) (int64, error) {
	var sum int64
	for _, w := range f.workers {
		if w.Status == domain.StatusActive {
			sum += w.DailyWage
		}
	}
	return sum, nil
}

type fakeSiteStore struct {
	names  map[int64]string
	active int64
}

func (f fakeSiteStore) CountActive(context.Context) (int64, error) { return f.active, nil }

func (f fakeSiteStore) NamesByIDs(_ context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

type fakeAttendanceStore struct {
	records []domain.Attendance
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func (f fakeAttendanceStore) ListForWorker(_ context.Context, workerID int64, start, end time.Time) ([]domain.Attendance, error) {
	var out []domain.Attendance
	for _, a := range f.records {
		if a.WorkerID == workerID && inRange(a.Date, start, end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f fakeAttendanceStore) KindCounts(_ context.Context, start, end time.Time, workerIDs []int64) ([]domain.AttendanceKindCount, error) {
	type key struct {
		workerID int64
		kind     domain.AttendanceKind
	}
	counts := make(map[key]*domain.AttendanceKindCount)
	var order []key
	for _, a := range f.records {
		if !inRange(a.Date, start, end) {
			continue
		}
		if workerIDs != nil && !containsID(workerIDs, a.WorkerID) {
			continue
		}
		k := key{a.WorkerID, a.Kind}
		c, ok := counts[k]
		if !ok {
			c = &domain.AttendanceKindCount{WorkerID: a.WorkerID, Kind: a.Kind}
			counts[k] = c
			order = append(order, k)
		}
		c.Count++
		if a.TotalHours != nil {
			c.TotalHours += *a.TotalHours
		}
	}
	out := make([]domain.AttendanceKindCount, 0, len(order))
	for _, k := range order {
		out = append(out, *counts[k])
	}
	return out, nil
}

func (f fakeAttendanceStore) DayPresence(_ context.Context, day time.Time) (int64, int64, error) {
	var present, absent int64
	for _, a := range f.records {
		if a.Date.Year() != day.Year() || a.Date.YearDay() != day.YearDay() {
			continue
		}
		switch a.Kind {
		case domain.AttendanceFullDay, domain.AttendanceHalfDay:
			present++
		case domain.AttendanceAbsent:
			absent++
		}
	}
	return present, absent, nil
}

func (f fakeAttendanceStore) Recent(_ context.Context, limit int) ([]domain.Attendance, error) {
	if len(f.records) > limit {
		return f.records[:limit], nil
	}
	return f.records, nil
}

type fakePaymentStore struct {
	records []domain.Payment
}

func (f fakePaymentStore) ListForWorker(_ context.Context, workerID int64, start, end time.Time) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range f.records {
		if p.WorkerID == workerID && inRange(p.Date, start, end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f fakePaymentStore) KindSums(_ context.Context, start, end time.Time) ([]domain.PaymentKindSum, error) {
	sums := make(map[domain.PaymentKind]int64)
	var order []domain.PaymentKind
	for _, p := range f.records {
		if !inRange(p.Date, start, end) {
			continue
		}
		if _, ok := sums[p.Kind]; !ok {
			order = append(order, p.Kind)
		}
		sums[p.Kind] += p.Amount
	}
	out := make([]domain.PaymentKindSum, 0, len(order))
	for _, k := range order {
		out = append(out, domain.PaymentKindSum{Kind: k, Total: sums[k]})
	}
	return out, nil
}

func (f fakePaymentStore) WorkerTotals(_ context.Context, start, end time.Time, workerIDs []int64) ([]domain.PaymentWorkerTotal, error) {
	totals := make(map[int64]*domain.PaymentWorkerTotal)
	var order []int64
	for _, p := range f.records {
		if !inRange(p.Date, start, end) {
			continue
		}
		if workerIDs != nil && !containsID(workerIDs, p.WorkerID) {
			continue
		}
		t, ok := totals[p.WorkerID]
		if !ok {
			t = &domain.PaymentWorkerTotal{WorkerID: p.WorkerID}
			totals[p.WorkerID] = t
			order = append(order, p.WorkerID)
		}
		t.TotalPaid += p.Amount
		if t.LastPaymentDate == nil || p.Date.After(*t.LastPaymentDate) {
			d := p.Date
			t.LastPaymentDate = &d
		}
	}
	out := make([]domain.PaymentWorkerTotal, 0, len(order))
	for _, id := range order {
		out = append(out, *totals[id])
	}
	return out, nil
}

func (f fakePaymentStore) Recent(_ context.Context, limit int) ([]domain.Payment, error) {
	if len(f.records) > limit {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
