package ports

import (
	"context"
	"time"

	"github.com/salmanfarismn/LaborLog/internal/domain"
)

// HealthChecker is used to probe dependencies.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// WorkerStore is the worker-facing slice of the persistence store consumed by
// the ledger, summary and report services.
type WorkerStore interface {
	Get(ctx context.Context, id int64) (*domain.Worker, error)
	ListActive(ctx context.Context) ([]domain.Worker, error)
	ListForReport(ctx context.Context, status domain.WorkerStatus, siteID, workerID *int64) ([]domain.Worker, error)
	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	SumActiveDailyWages(ctx context.Context) (int64, error)
}

type SiteStore interface {
	CountActive(ctx context.Context) (int64, error)
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type AttendanceStore interface {
	ListForWorker(ctx context.Context, workerID int64, start, end time.Time) ([]domain.Attendance, error)
	// KindCounts groups in-range attendance by (worker, kind). A nil workerIDs
	// slice means all workers.
	KindCounts(ctx context.Context, start, end time.Time, workerIDs []int64) ([]domain.AttendanceKindCount, error)
	DayPresence(ctx context.Context, day time.Time) (present, absent int64, err error)
	Recent(ctx context.Context, limit int) ([]domain.Attendance, error)
}

type PaymentStore interface {
	ListForWorker(ctx context.Context, workerID int64, start, end time.Time) ([]domain.Payment, error)
	KindSums(ctx context.Context, start, end time.Time) ([]domain.PaymentKindSum, error)
	WorkerTotals(ctx context.Context, start, end time.Time, workerIDs []int64) ([]domain.PaymentWorkerTotal, error)
	Recent(ctx context.Context, limit int) ([]domain.Payment, error)
}
