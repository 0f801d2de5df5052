package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/staffsync/attendance-backend-go/internal/config"
	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	appHTTP "github.com/staffsync/attendance-backend-go/internal/handler/http"
	"github.com/staffsync/attendance-backend-go/internal/pkg/clock"
	"github.com/staffsync/attendance-backend-go/internal/pkg/cron"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/pkg/email"
	"github.com/staffsync/attendance-backend-go/internal/pkg/metrics"
	"github.com/staffsync/attendance-backend-go/internal/repository/memory"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffsync/attendance-backend-go/internal/service/attendance"
	reportService "github.com/staffsync/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	var attendanceRepo attendance.AttendanceRepository
	switch cfg.Database.Driver {
	case "postgres":
		dsn := cfg.DatabaseURL()
		if err := database.RunMigrations(dsn); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}

		db, err := database.NewPostgreSQLDB(dsn)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		attendanceRepo = postgresql.NewAttendanceRepository(db)
	case "memory":
		slog.Warn("Using in-memory store; records are lost on restart")
		attendanceRepo = memory.NewAttendanceRepository()
	default:
		slog.Error("Unsupported DB_DRIVER", "driver", cfg.Database.Driver)
		os.Exit(1)
	}

	clk := clock.New()
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, clk, collector, cfg.Report)
	reportSvc := reportService.NewReportService(attendanceRepo)
	notifier := email.NewNotifier(cfg.SMTP)

	scheduler := cron.NewScheduler(clk)
	reportJobs := cron.NewReportJobs(reportSvc, notifier, clk, collector, cfg.Report)
	reportJobs.RegisterJobs(scheduler)
	scheduler.Start()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc, clk)

	router := appHTTP.NewRouter(
		attendanceHandler,
		reportHandler,
		registry,
		cfg.App.Env,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	// Stop the report scheduler after the HTTP listener so an in-flight
	// request can no longer observe a half-stopped process.
	scheduler.Stop()

	slog.Info("Shutdown complete")
}
