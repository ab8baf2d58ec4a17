// Command wagemigrate backfills workers.daily_wage from the legacy
// monthly_salary column. It divides each monthly salary by the standard
// working-days count and rounds to whole rupees. Safe to re-run: rows whose
// daily wage is already set are skipped.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/salmanfarismn/LaborLog/internal/config"
	"github.com/salmanfarismn/LaborLog/internal/db"
	"github.com/salmanfarismn/LaborLog/internal/wage"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	rows, err := pg.Pool.Query(ctx, `
		SELECT id, full_name, monthly_salary
		FROM workers
		WHERE monthly_salary IS NOT NULL AND daily_wage = 0
		ORDER BY id`)
	if err != nil {
		logger.Error("failed to list workers", "err", err)
		os.Exit(1)
	}

	type pending struct {
		id        int64
		name      string
		dailyWage int64
	}
	var updates []pending
	for rows.Next() {
		var (
			id      int64
			name    string
			monthly int64
		)
		if err := rows.Scan(&id, &name, &monthly); err != nil {
			rows.Close()
			logger.Error("failed to scan worker", "err", err)
			os.Exit(1)
		}
		daily := decimal.NewFromInt(monthly).
			Div(decimal.NewFromInt(wage.DefaultWorkingDays)).
			Round(0).IntPart()
		updates = append(updates, pending{id: id, name: name, dailyWage: daily})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		logger.Error("failed to read workers", "err", err)
		os.Exit(1)
	}

	if len(updates) == 0 {
		logger.Info("nothing to migrate")
		return
	}

	for _, u := range updates {
		if *dryRun {
			logger.Info("would update worker", "id", u.id, "name", u.name, "daily_wage", u.dailyWage)
			continue
		}
		tag, err := pg.Pool.Exec(ctx,
			`UPDATE workers SET daily_wage = $1, updated_at = NOW() WHERE id = $2`,
			u.dailyWage, u.id)
		if err != nil {
			logger.Error("failed to update worker", "id", u.id, "err", err)
			os.Exit(1)
		}
		logger.Info("updated worker", "id", u.id, "name", u.name, "daily_wage", u.dailyWage, "rows", tag.RowsAffected())
	}

	if *dryRun {
		logger.Info("dry run complete", "pending", len(updates))
		return
	}
	logger.Info("migration complete", "updated", len(updates))
}
