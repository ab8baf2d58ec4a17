package repository

import (
	"context"

	"github.com/salmanfarismn/LaborLog/internal/domain"
)

func (r SiteRepository) SeedDefaults(ctx context.Context) error {
	defaults := []domain.Site{
		{Name: "Main Yard", Address: "Plot 12, Industrial Area", Description: "Default assembly yard", Active: true},
		{Name: "Riverside Project", Address: "NH-66 Bypass", Description: "Bridge approach earthwork", Active: true},
		{Name: "Warehouse Extension", Address: "Sector 4", Description: "", Active: false},
	}

	for _, s := range defaults {
		// Idempotent: sites.name is unique.
		_, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO sites (name, address, description, active, created_at, updated_at)
			VALUES ($1,$2,$3,$4, now(), now())
			ON CONFLICT (name) DO NOTHING
		`, s.Name, s.Address, s.Description, s.Active)
		if err != nil {
			return err
		}
	}
	return nil
}
