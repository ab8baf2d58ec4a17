package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/salmanfarismn/LaborLog/internal/db"
	"github.com/salmanfarismn/LaborLog/internal/domain"
)

type SiteRepository struct {
	DB *db.Postgres
}

type CreateSiteParams struct {
	Name        string
	Address     string
	Description string
	Active      bool
}

const siteColumns = `id, name, address, description, active, created_at, updated_at`

func scanSite(row pgx.Row) (*domain.Site, error) {
	var s domain.Site
	if err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Description, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r SiteRepository) List(ctx context.Context) ([]domain.Site, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+siteColumns+`
		FROM sites
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Site
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

func (r SiteRepository) Get(ctx context.Context, id int64) (*domain.Site, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+siteColumns+` FROM sites WHERE id = $1`, id)
	return scanSite(row)
}

func (r SiteRepository) Create(ctx context.Context, p CreateSiteParams) (*domain.Site, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO sites (name, address, description, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4, now(), now())
		RETURNING `+siteColumns+`
	`, p.Name, p.Address, p.Description, p.Active)
	return scanSite(row)
}

func (r SiteRepository) Update(ctx context.Context, id int64, p CreateSiteParams) (*domain.Site, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE sites
		SET name=$2, address=$3, description=$4, active=$5, updated_at=now()
		WHERE id = $1
		RETURNING `+siteColumns+`
	`, id, p.Name, p.Address, p.Description, p.Active)
	return scanSite(row)
}

func (r SiteRepository) ToggleActive(ctx context.Context, id int64) (*domain.Site, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE sites SET active = NOT active, updated_at = now()
		WHERE id = $1
		RETURNING `+siteColumns+`
	`, id)
	return scanSite(row)
}

func (r SiteRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r SiteRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM sites WHERE active`).Scan(&n)
	return n, err
}

// NamesByIDs resolves site names for the given ids in one query.
func (r SiteRepository) NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	rows, err := r.DB.Pool.Query(ctx, `SELECT id, name FROM sites WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}
