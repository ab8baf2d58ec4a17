package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/salmanfarismn/LaborLog/internal/config"
	"github.com/salmanfarismn/LaborLog/internal/db"
	"github.com/salmanfarismn/LaborLog/internal/handler"
	"github.com/salmanfarismn/LaborLog/internal/repository"
	"github.com/salmanfarismn/LaborLog/internal/server"
	"github.com/salmanfarismn/LaborLog/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	// repositories
	workerRepo := repository.WorkerRepository{DB: pg}
	siteRepo := repository.SiteRepository{DB: pg}
	attendanceRepo := repository.AttendanceRepository{DB: pg}
	paymentRepo := repository.PaymentRepository{DB: pg}

	if cfg.Env == "development" {
		if err := siteRepo.SeedDefaults(ctx); err != nil {
			logger.Warn("failed to seed default sites", "err", err)
		}
	}

	// services
	ledgerSvc := service.LedgerService{Workers: workerRepo, Attendance: attendanceRepo, Payments: paymentRepo}
	summarySvc := service.SummaryService{Workers: workerRepo, Sites: siteRepo, Attendance: attendanceRepo, Payments: paymentRepo}
	reportSvc := service.ReportService{Workers: workerRepo, Sites: siteRepo, Attendance: attendanceRepo, Payments: paymentRepo, CompanyName: cfg.CompanyName, CurrencyCode: cfg.CurrencyCode}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	homeHandler := handler.HomeHandler{}
	workerHandler := handler.WorkerHandler{Repo: workerRepo, Attendance: attendanceRepo, Payments: paymentRepo, Ledger: ledgerSvc}
	siteHandler := handler.SiteHandler{Repo: siteRepo, Workers: workerRepo}
	attendanceHandler := handler.AttendanceHandler{Repo: attendanceRepo, Summary: summarySvc}
	paymentHandler := handler.PaymentHandler{Repo: paymentRepo, Summary: summarySvc}
	dashboardHandler := handler.DashboardHandler{Summary: summarySvc}
	reportHandler := handler.ReportHandler{Service: reportSvc}

	router := server.NewRouter(logger, healthHandler, homeHandler, workerHandler, siteHandler, attendanceHandler, paymentHandler, dashboardHandler, reportHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
