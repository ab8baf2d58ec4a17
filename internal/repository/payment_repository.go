package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/salmanfarismn/LaborLog/internal/db"
	"github.com/salmanfarismn/LaborLog/internal/domain"
)

type PaymentRepository struct {
	DB *db.Postgres
}

type CreatePaymentParams struct {
	WorkerID int64
	Date     string
	Amount   int64
	Kind     domain.PaymentKind
	Notes    string
}

const paymentColumns = `p.id, p.worker_id, w.full_name, p.pay_date, p.amount, p.kind, p.notes, p.created_at, p.updated_at`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	var kind string
	if err := row.Scan(&p.ID, &p.WorkerID, &p.WorkerName, &p.Date, &p.Amount, &kind, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Kind = domain.PaymentKind(kind)
	return &p, nil
}

func collectPayments(rows pgx.Rows) ([]domain.Payment, error) {
	defer rows.Close()
	var items []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (r PaymentRepository) Create(ctx context.Context, in CreatePaymentParams) (*domain.Payment, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		WITH created AS (
			INSERT INTO payments (worker_id, pay_date, amount, kind, notes, created_at, updated_at)
			VALUES ($1,$2::date,$3,$4,$5, now(), now())
			RETURNING *
		)
		SELECT `+paymentColumns+`
		FROM created p
		JOIN workers w ON w.id = p.worker_id
	`, in.WorkerID, in.Date, in.Amount, string(in.Kind), in.Notes)
	return scanPayment(row)
}

func (r PaymentRepository) Update(ctx context.Context, id int64, in CreatePaymentParams) (*domain.Payment, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		WITH updated AS (
			UPDATE payments
			SET worker_id=$2, pay_date=$3::date, amount=$4, kind=$5, notes=$6, updated_at=now()
			WHERE id = $1
			RETURNING *
		)
		SELECT `+paymentColumns+`
		FROM updated p
		JOIN workers w ON w.id = p.worker_id
	`, id, in.WorkerID, in.Date, in.Amount, string(in.Kind), in.Notes)
	return scanPayment(row)
}

func (r PaymentRepository) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+paymentColumns+`
		FROM payments p
		JOIN workers w ON w.id = p.worker_id
		WHERE p.id = $1
	`, id)
	return scanPayment(row)
}

func (r PaymentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns payments newest-first, optionally narrowed to one worker
// and/or a date range.
func (r PaymentRepository) List(ctx context.Context, workerID *int64, start, end *time.Time) ([]domain.Payment, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments p
		JOIN workers w ON w.id = p.worker_id
		WHERE ($1::bigint IS NULL OR p.worker_id = $1)
		  AND ($2::date IS NULL OR p.pay_date >= $2::date)
		  AND ($3::date IS NULL OR p.pay_date <= $3::date)
		ORDER BY p.pay_date DESC, p.id DESC
	`, workerID, asDatePtr(start), asDatePtr(end))
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

func (r PaymentRepository) ListForWorker(ctx context.Context, workerID int64, start, end time.Time) ([]domain.Payment, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments p
		JOIN workers w ON w.id = p.worker_id
		WHERE p.worker_id = $1
		  AND p.pay_date >= $2::date
		  AND p.pay_date <= $3::date
		ORDER BY p.pay_date ASC
	`, workerID, asDate(start), asDate(end))
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

// KindSums totals in-range payments grouped by payment kind.
func (r PaymentRepository) KindSums(ctx context.Context, start, end time.Time) ([]domain.PaymentKindSum, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT kind, COALESCE(SUM(amount),0)
		FROM payments
		WHERE pay_date >= $1::date AND pay_date <= $2::date
		GROUP BY kind
	`, asDate(start), asDate(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.PaymentKindSum
	for rows.Next() {
		var s domain.PaymentKindSum
		var kind string
		if err := rows.Scan(&kind, &s.Total); err != nil {
			return nil, err
		}
		s.Kind = domain.PaymentKind(kind)
		items = append(items, s)
	}
	return items, rows.Err()
}

// WorkerTotals aggregates amount paid and last payment date per worker.
func (r PaymentRepository) WorkerTotals(ctx context.Context, start, end time.Time, workerIDs []int64) ([]domain.PaymentWorkerTotal, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT worker_id, COALESCE(SUM(amount),0), MAX(pay_date)
		FROM payments
		WHERE pay_date >= $1::date
		  AND pay_date <= $2::date
		  AND ($3::bigint[] IS NULL OR worker_id = ANY($3))
		GROUP BY worker_id
	`, asDate(start), asDate(end), workerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.PaymentWorkerTotal
	for rows.Next() {
		var t domain.PaymentWorkerTotal
		var last pgtype.Date
		if err := rows.Scan(&t.WorkerID, &t.TotalPaid, &last); err != nil {
			return nil, err
		}
		if last.Valid {
			d := last.Time
			t.LastPaymentDate = &d
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r PaymentRepository) RecentForWorker(ctx context.Context, workerID int64, limit int) ([]domain.Payment, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments p
		JOIN workers w ON w.id = p.worker_id
		WHERE p.worker_id = $1
		ORDER BY p.pay_date DESC
		LIMIT $2
	`, workerID, limit)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

func (r PaymentRepository) Recent(ctx context.Context, limit int) ([]domain.Payment, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments p
		JOIN workers w ON w.id = p.worker_id
		ORDER BY p.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}
