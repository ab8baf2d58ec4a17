package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/salmanfarismn/LaborLog/internal/db"
	"github.com/salmanfarismn/LaborLog/internal/domain"
)

type AttendanceRepository struct {
	DB *db.Postgres
}

type UpsertAttendanceParams struct {
	WorkerID   int64
	SiteID     *int64
	Date       string
	Kind       domain.AttendanceKind
	CheckIn    *time.Time
	CheckOut   *time.Time
	TotalHours *float64
	Notes      string
}

const attendanceColumns = `a.id, a.worker_id, w.full_name, a.site_id, s.name, a.att_date, a.kind, a.check_in, a.check_out, a.total_hours, a.notes, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row) (*domain.Attendance, error) {
	var a domain.Attendance
	var siteID pgtype.Int8
	var siteName pgtype.Text
	var hours pgtype.Float8
	var kind string
	if err := row.Scan(&a.ID, &a.WorkerID, &a.WorkerName, &siteID, &siteName, &a.Date, &kind, &a.CheckIn, &a.CheckOut, &hours, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if siteID.Valid {
		a.SiteID = &siteID.Int64
	}
	if siteName.Valid {
		a.SiteName = &siteName.String
	}
	if hours.Valid {
		a.TotalHours = &hours.Float64
	}
	a.Kind = domain.AttendanceKind(kind)
	return &a, nil
}

func collectAttendance(rows pgx.Rows) ([]domain.Attendance, error) {
	defer rows.Close()
	var items []domain.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// UpsertByDay creates or replaces the single attendance record for
// (worker, calendar day). The store's unique key makes this atomic.
func (r AttendanceRepository) UpsertByDay(ctx context.Context, p UpsertAttendanceParams) (*domain.Attendance, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		WITH upserted AS (
			INSERT INTO attendance (worker_id, site_id, att_date, kind, check_in, check_out, total_hours, notes, created_at, updated_at)
			VALUES ($1,$2,$3::date,$4,$5,$6,$7,$8, now(), now())
			ON CONFLICT (worker_id, att_date) DO UPDATE SET
				site_id = EXCLUDED.site_id,
				kind = EXCLUDED.kind,
				check_in = EXCLUDED.check_in,
				check_out = EXCLUDED.check_out,
				total_hours = EXCLUDED.total_hours,
				notes = EXCLUDED.notes,
				updated_at = now()
			RETURNING *
		)
		SELECT `+attendanceColumns+`
		FROM upserted a
		JOIN workers w ON w.id = a.worker_id
		LEFT JOIN sites s ON s.id = a.site_id
	`, p.WorkerID, p.SiteID, p.Date, string(p.Kind), p.CheckIn, p.CheckOut, p.TotalHours, p.Notes)
	return scanAttendance(row)
}

func (r AttendanceRepository) ListByDate(ctx context.Context, day time.Time) ([]domain.Attendance, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance a
		JOIN workers w ON w.id = a.worker_id
		LEFT JOIN sites s ON s.id = a.site_id
		WHERE a.att_date = $1::date
		ORDER BY w.full_name ASC
	`, asDate(day))
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

func (r AttendanceRepository) ListForWorker(ctx context.Context, workerID int64, start, end time.Time) ([]domain.Attendance, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance a
		JOIN workers w ON w.id = a.worker_id
		LEFT JOIN sites s ON s.id = a.site_id
		WHERE a.worker_id = $1
		  AND a.att_date >= $2::date
		  AND a.att_date <= $3::date
		ORDER BY a.att_date ASC
	`, workerID, asDate(start), asDate(end))
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

// KindCounts groups in-range attendance by (worker, kind) in a single pass.
// Custom hours are summed alongside so report and summary callers never walk
// per-entry rows.
func (r AttendanceRepository) KindCounts(ctx context.Context, start, end time.Time, workerIDs []int64) ([]domain.AttendanceKindCount, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT worker_id, kind, COUNT(*), COALESCE(SUM(total_hours),0)
		FROM attendance
		WHERE att_date >= $1::date
		  AND att_date <= $2::date
		  AND ($3::bigint[] IS NULL OR worker_id = ANY($3))
		GROUP BY worker_id, kind
	`, asDate(start), asDate(end), workerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.AttendanceKindCount
	for rows.Next() {
		var c domain.AttendanceKindCount
		var kind string
		if err := rows.Scan(&c.WorkerID, &kind, &c.Count, &c.TotalHours); err != nil {
			return nil, err
		}
		c.Kind = domain.AttendanceKind(kind)
		items = append(items, c)
	}
	return items, rows.Err()
}

// DayPresence counts present (full or half day) and absent workers for one day.
func (r AttendanceRepository) DayPresence(ctx context.Context, day time.Time) (int64, int64, error) {
	var present, absent int64
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE kind IN ('FULL_DAY','HALF_DAY')),
			COUNT(*) FILTER (WHERE kind = 'ABSENT')
		FROM attendance
		WHERE att_date = $1::date
	`, asDate(day)).Scan(&present, &absent)
	return present, absent, err
}

func (r AttendanceRepository) Recent(ctx context.Context, limit int) ([]domain.Attendance, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance a
		JOIN workers w ON w.id = a.worker_id
		LEFT JOIN sites s ON s.id = a.site_id
		ORDER BY a.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

// RecentForWorker returns the worker's newest attendance records for the
// detail view, regardless of date range.
func (r AttendanceRepository) RecentForWorker(ctx context.Context, workerID int64, limit int) ([]domain.Attendance, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance a
		JOIN workers w ON w.id = a.worker_id
		LEFT JOIN sites s ON s.id = a.site_id
		WHERE a.worker_id = $1
		ORDER BY a.att_date DESC
		LIMIT $2
	`, workerID, limit)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

func (r AttendanceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
