package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/salmanfarismn/LaborLog/internal/handler"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(
	logger *slog.Logger,
	health handler.HealthHandler,
	home handler.HomeHandler,
	workers handler.WorkerHandler,
	sites handler.SiteHandler,
	attendance handler.AttendanceHandler,
	payments handler.PaymentHandler,
	dashboard handler.DashboardHandler,
	reports handler.ReportHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	home.RegisterRoutes(r)
	workers.RegisterRoutes(r)
	sites.RegisterRoutes(r)
	attendance.RegisterRoutes(r)
	payments.RegisterRoutes(r)
	dashboard.RegisterRoutes(r)
	reports.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	return r
}
