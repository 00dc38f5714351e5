package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/config"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	appHTTP "github.com/cmlabs-hris/attendance-engine/internal/handler/http"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-engine/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-engine/internal/service/attendance"
	auditService "github.com/cmlabs-hris/attendance-engine/internal/service/audit"
	employeeService "github.com/cmlabs-hris/attendance-engine/internal/service/employee"
	holidayService "github.com/cmlabs-hris/attendance-engine/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/attendance-engine/internal/service/leave"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("Error running migrations: ", err)
	}

	clk := clock.New(cfg.Location())
	schedule := attendance.DaySchedule{
		RequiredHours:    cfg.Schedule.RequiredHours,
		ExpectedCheckIn:  cfg.Schedule.ExpectedCheckIn,
		ExpectedCheckOut: cfg.Schedule.ExpectedCheckOut,
	}

	txManager := postgresql.NewTxManager(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	auditSvc := auditService.NewAuditService(auditRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		txManager,
		attendanceRepo,
		employeeRepo,
		holidaySvc,
		auditSvc,
		clk,
		schedule,
	)
	leaveSvc := leaveService.NewLeaveService(
		txManager,
		leaveTypeRepo,
		leaveRequestRepo,
		employeeRepo,
		auditSvc,
		clk,
	)
	absenceJobs := cron.NewAbsenceJobs(
		txManager,
		attendanceRepo,
		employeeRepo,
		holidaySvc,
		auditSvc,
		clk,
		schedule,
		cfg.Cron.AbsenceHour,
	)

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc, clk),
		appHTTP.NewHolidayHandler(holidaySvc, clk),
		appHTTP.NewAuditHandler(auditSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewJobHandler(absenceJobs),
		appHTTP.NewAuthHandler(JWTService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", clk.Location().String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		slog.Info("Shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		absenceJobs.RegisterJobs(scheduler, cfg.Cron.Interval)
		g.Go(func() error {
			return scheduler.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
