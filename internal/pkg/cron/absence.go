package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/audit"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

const AbsenceSweepJob = "mark_absent_employees"

type AbsenceJobs struct {
	tx             database.TxManager
	attendanceRepo attendance.AttendanceRepository
	directory      employee.Directory
	calendar       holiday.Calendar
	audit          audit.Recorder
	clock          clock.Clock
	schedule       attendance.DaySchedule
	absenceHour    int
}

func NewAbsenceJobs(
	tx database.TxManager,
	attendanceRepo attendance.AttendanceRepository,
	directory employee.Directory,
	calendar holiday.Calendar,
	recorder audit.Recorder,
	clk clock.Clock,
	schedule attendance.DaySchedule,
	absenceHour int,
) *AbsenceJobs {
	return &AbsenceJobs{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		directory:      directory,
		calendar:       calendar,
		audit:          recorder,
		clock:          clk,
		schedule:       schedule,
		absenceHour:    absenceHour,
	}
}

func (j *AbsenceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	scheduler.AddJob(AbsenceSweepJob, interval, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees is the scheduled entry point. It only sweeps during the configured hour.
func (j *AbsenceJobs) MarkAbsentEmployees(ctx context.Context) error {
	if j.clock.Now().Hour() != j.absenceHour {
		return nil
	}

	_, err := j.RunDailyAbsenceSweep(ctx)
	return err
}

// RunDailyAbsenceSweep creates a placeholder record for every active employee
// with nothing recorded today. Running it twice on the same day is a no-op.
func (j *AbsenceJobs) RunDailyAbsenceSweep(ctx context.Context) (int, error) {
	today := utils.DateOf(j.clock.Now())

	slog.Info("Cron: Starting mark absent employees job", "work_date", utils.FormatDate(today))

	if utils.IsWeekend(today) {
		slog.Info("Cron: Skipping absence sweep on weekend", "work_date", utils.FormatDate(today))
		return 0, nil
	}

	isHoliday, err := j.calendar.IsHoliday(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to check holiday calendar: %w", err)
	}
	if isHoliday {
		slog.Info("Cron: Skipping absence sweep on holiday", "work_date", utils.FormatDate(today))
		return 0, nil
	}

	employees, err := j.directory.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	created := 0
	for _, emp := range employees {
		ok, err := j.markAbsent(ctx, emp.ID, today)
		if err != nil {
			slog.Error("Cron: Failed to mark employee absent",
				"employee_id", emp.ID,
				"work_date", utils.FormatDate(today),
				"error", err)
			continue
		}
		if ok {
			created++
		}
	}

	slog.Info("Cron: Marked absent employees", "count", created, "checked", len(employees))
	return created, nil
}

func (j *AbsenceJobs) markAbsent(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	note := attendance.NoteNoAttendance
	placeholder := attendance.Record{
		EmployeeID:    employeeID,
		WorkDate:      date,
		WorkHours:     decimal.Zero,
		OvertimeHours: decimal.Zero,
		AdminNote:     &note,
		Status:        attendance.StatusPending,
	}
	j.schedule.Stamp(&placeholder)

	created := false
	err := j.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		saved, ok, err := j.attendanceRepo.CreateIfAbsent(ctx, placeholder)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		created = true
		return j.audit.Record(ctx, audit.RecordTypeAttendance, saved.ID, audit.SystemActor, audit.ActionAbsence, &note)
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
