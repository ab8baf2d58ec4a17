package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/salmanfarismn/LaborLog/internal/db"
	"github.com/salmanfarismn/LaborLog/internal/domain"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

type WorkerRepository struct {
	DB *db.Postgres
}

type CreateWorkerParams struct {
	FullName      string
	Phone         string
	Role          string
	DefaultSiteID *int64
	DailyWage     int64
	JoiningDate   string
	Status        domain.WorkerStatus
}

const workerColumns = `id, full_name, phone, role, default_site_id, daily_wage, monthly_salary, joining_date, status, created_at, updated_at`

func scanWorker(row pgx.Row) (*domain.Worker, error) {
	var w domain.Worker
	var siteID, monthly pgtype.Int8
	var status string
	if err := row.Scan(&w.ID, &w.FullName, &w.Phone, &w.Role, &siteID, &w.DailyWage, &monthly, &w.JoiningDate, &status, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if siteID.Valid {
		w.DefaultSiteID = &siteID.Int64
	}
	if monthly.Valid {
		w.MonthlySalary = &monthly.Int64
	}
	w.Status = domain.WorkerStatus(status)
	return &w, nil
}

func (r WorkerRepository) collect(rows pgx.Rows) ([]domain.Worker, error) {
	defer rows.Close()
	var items []domain.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *w)
	}
	return items, rows.Err()
}

func (r WorkerRepository) List(ctx context.Context, status domain.WorkerStatus) ([]domain.Worker, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+workerColumns+`
		FROM workers
		WHERE ($1::text = '' OR status = $1)
		ORDER BY created_at DESC
	`, string(status))
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r WorkerRepository) ListActive(ctx context.Context) ([]domain.Worker, error) {
	return r.List(ctx, domain.StatusActive)
}

// ListForReport applies the report filter set. An empty status means ALL;
// nil siteID/workerID leave that dimension unfiltered.
func (r WorkerRepository) ListForReport(ctx context.Context, status domain.WorkerStatus, siteID, workerID *int64) ([]domain.Worker, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+workerColumns+`
		FROM workers
		WHERE ($1::text = '' OR status = $1)
		  AND ($2::bigint IS NULL OR default_site_id = $2)
		  AND ($3::bigint IS NULL OR id = $3)
		ORDER BY full_name ASC
	`, string(status), siteID, workerID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r WorkerRepository) Get(ctx context.Context, id int64) (*domain.Worker, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+workerColumns+`
		FROM workers
		WHERE id = $1
	`, id)
	return scanWorker(row)
}

func (r WorkerRepository) Create(ctx context.Context, p CreateWorkerParams) (*domain.Worker, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO workers (full_name, phone, role, default_site_id, daily_wage, joining_date, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6::date,$7, now(), now())
		RETURNING `+workerColumns+`
	`, p.FullName, p.Phone, p.Role, p.DefaultSiteID, p.DailyWage, p.JoiningDate, string(p.Status))
	return scanWorker(row)
}

func (r WorkerRepository) Update(ctx context.Context, id int64, p CreateWorkerParams) (*domain.Worker, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE workers
		SET full_name=$2, phone=$3, role=$4, default_site_id=$5, daily_wage=$6, joining_date=$7::date, status=$8, updated_at=now()
		WHERE id = $1
		RETURNING `+workerColumns+`
	`, id, p.FullName, p.Phone, p.Role, p.DefaultSiteID, p.DailyWage, p.JoiningDate, string(p.Status))
	return scanWorker(row)
}

func (r WorkerRepository) ToggleStatus(ctx context.Context, id int64) (*domain.Worker, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE workers
		SET status = CASE WHEN status = 'ACTIVE' THEN 'INACTIVE' ELSE 'ACTIVE' END,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+workerColumns+`
	`, id)
	return scanWorker(row)
}

func (r WorkerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DetachSite clears the default-site pointer of every worker assigned to the
// given site. Executed before a site delete instead of a database cascade.
func (r WorkerRepository) DetachSite(ctx context.Context, siteID int64) error {
	_, err := r.DB.Pool.Exec(ctx, `
		UPDATE workers SET default_site_id = NULL, updated_at = now()
		WHERE default_site_id = $1
	`, siteID)
	return err
}

func (r WorkerRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM workers`).Scan(&n)
	return n, err
}

func (r WorkerRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM workers WHERE status = 'ACTIVE'`).Scan(&n)
	return n, err
}

func (r WorkerRepository) SumActiveDailyWages(ctx context.Context) (int64, error) {
	var sum int64
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(daily_wage),0) FROM workers WHERE status = 'ACTIVE'
	`).Scan(&sum)
	return sum, err
}
