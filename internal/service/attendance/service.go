package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/audit"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	tx database.TxManager
	attendance.AttendanceRepository
	directory employee.Directory
	calendar  holiday.Calendar
	audit     audit.Recorder
	clock     clock.Clock
	schedule  attendance.DaySchedule
}

func NewAttendanceService(
	tx database.TxManager,
	attendanceRepo attendance.AttendanceRepository,
	directory employee.Directory,
	calendar holiday.Calendar,
	recorder audit.Recorder,
	clk clock.Clock,
	schedule attendance.DaySchedule,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		directory:            directory,
		calendar:             calendar,
		audit:                recorder,
		clock:                clk,
		schedule:             schedule,
	}
}

func (s *AttendanceServiceImpl) dayPolicy(ctx context.Context, date time.Time) (attendance.DayPolicy, error) {
	name, isHoliday, err := s.calendar.HolidayName(ctx, date)
	if err != nil {
		return attendance.DayPolicy{}, fmt.Errorf("failed to look up holiday calendar: %w", err)
	}
	return attendance.NewDayPolicy(date, name, isHoliday), nil
}

func (s *AttendanceServiceImpl) getRecord(ctx context.Context, id string) (attendance.Record, error) {
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return record, nil
}

// trimmed returns nil for blank input.
func trimmed(s *string) *string {
	if validator.IsBlank(s) {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func appendReason(existing *string, extra string) *string {
	if validator.IsBlank(existing) {
		return &extra
	}
	joined := *existing + "; " + extra
	return &joined
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.directory.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	now := s.clock.Now()
	today := utils.DateOf(now)
	policy, err := s.dayPolicy(ctx, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	reason := trimmed(req.Reason)

	result, err := s.checkIn(ctx, employeeID, now, policy, reason)
	if errors.Is(err, attendance.ErrDuplicateWorkDate) {
		// today's row was inserted between the lookup and our insert, read it again
		result, err = s.checkIn(ctx, employeeID, now, policy, reason)
	}
	if errors.Is(err, attendance.ErrDuplicateWorkDate) {
		err = attendance.ErrAlreadyCheckedIn
	}
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(result), nil
}

// checkIn opens today's session in one transaction, either on a new row or on
// the existing closed row for the day.
func (s *AttendanceServiceImpl) checkIn(ctx context.Context, employeeID string, now time.Time, policy attendance.DayPolicy, reason *string) (attendance.Record, error) {
	today := utils.DateOf(now)

	var result attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		if existing != nil {
			if existing.IsOpen() {
				return attendance.ErrAlreadyCheckedIn
			}

			// Re-entry: a completed day or an absence placeholder starts a new session.
			// Hours and the admin note of the earlier session are discarded.
			record := *existing
			record.CheckIn = &now
			record.CheckOut = nil
			record.WorkHours = decimal.Zero
			record.OvertimeHours = decimal.Zero
			record.Status = attendance.StatusPending
			record.AdminNote = nil
			record.HolidayName = policy.HolidayNamePtr()
			if reason != nil {
				record.Reason = reason
			} else if validator.IsBlank(record.Reason) {
				record.Reason = policy.DefaultReason()
			}
			record.ExpectedCheckIn, record.ExpectedCheckOut = nil, nil
			s.schedule.Stamp(&record)

			if err := s.AttendanceRepository.Update(ctx, record); err != nil {
				return fmt.Errorf("failed to update attendance: %w", err)
			}
			result = record
		} else {
			record := attendance.Record{
				EmployeeID:  employeeID,
				WorkDate:    today,
				CheckIn:     &now,
				Reason:      reason,
				HolidayName: policy.HolidayNamePtr(),
				Status:      attendance.StatusPending,
			}
			if record.Reason == nil {
				record.Reason = policy.DefaultReason()
			}
			s.schedule.Stamp(&record)

			created, err := s.AttendanceRepository.Create(ctx, record)
			if err != nil {
				if errors.Is(err, attendance.ErrDuplicateWorkDate) {
					return attendance.ErrDuplicateWorkDate
				}
				return fmt.Errorf("failed to create attendance: %w", err)
			}
			result = created
		}

		return s.audit.Record(ctx, audit.RecordTypeAttendance, result.ID, employeeID, audit.ActionCheckIn, nil)
	})
	if err != nil {
		return attendance.Record{}, err
	}
	return result, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	today := utils.DateOf(now)
	policy, err := s.dayPolicy(ctx, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var result attendance.Record
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		if existing == nil || existing.CheckIn == nil {
			return attendance.ErrNotCheckedIn
		}

		record := *existing
		record.CheckOut = &now
		if reason := trimmed(req.Reason); reason != nil {
			record.Reason = appendReason(record.Reason, *reason)
		}
		if err := record.Recalculate(policy, s.schedule.RequiredHours); err != nil {
			return err
		}
		if policy.AllOvertime() {
			record.Status = attendance.StatusPending
			if validator.IsBlank(record.Reason) {
				record.Reason = policy.DefaultReason()
			}
		}
		s.schedule.Stamp(&record)

		if err := s.AttendanceRepository.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		result = record

		return s.audit.Record(ctx, audit.RecordTypeAttendance, record.ID, employeeID, audit.ActionCheckOut, nil)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(result), nil
}

// GetTodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayStatus(ctx context.Context, employeeID string) (attendance.TodayStatusResponse, error) {
	today := utils.DateOf(s.clock.Now())
	policy, err := s.dayPolicy(ctx, today)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	resp := attendance.TodayStatusResponse{
		WorkDate:    utils.FormatDate(today),
		IsHoliday:   policy.IsHoliday,
		HolidayName: policy.HolidayNamePtr(),
		IsWeekend:   policy.IsWeekend,
	}

	if record == nil {
		resp.CanCheckIn = true
		resp.ActionNeeded = attendance.ActionCheckIn
		return resp, nil
	}

	hasIn, hasOut := record.CheckIn != nil, record.CheckOut != nil
	status := record.Status
	r := attendance.ToResponse(*record)

	resp.HasRecord = true
	resp.CanCheckIn = !hasIn
	resp.CanCheckOut = hasIn && !hasOut
	resp.IsCompleted = hasIn && hasOut
	resp.CheckIn = r.CheckIn
	resp.CheckOut = r.CheckOut
	resp.Status = &status
	if record.HolidayName != nil {
		resp.IsHoliday = true
		resp.HolidayName = record.HolidayName
	}

	switch {
	case !hasIn:
		resp.ActionNeeded = attendance.ActionCheckIn
	case !hasOut:
		resp.ActionNeeded = attendance.ActionCheckOut
	default:
		resp.ActionNeeded = attendance.ActionNone
	}

	return resp, nil
}

// ListMyHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMyHistory(ctx context.Context, employeeID string, filter attendance.HistoryFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	if filter.Limit != nil && !filter.HasRange() {
		limit := min(*filter.Limit, attendance.MaxRecentHistory)
		records, err := s.AttendanceRepository.ListRecentByEmployee(ctx, employeeID, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list recent attendance: %w", err)
		}
		return attendance.ToResponses(records), nil
	}

	start, end := filter.Range(utils.DateOf(s.clock.Now()))
	records, err := s.AttendanceRepository.ListByEmployee(ctx, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}
	if filter.Limit != nil && len(records) > *filter.Limit {
		records = records[:*filter.Limit]
	}

	return attendance.ToResponses(records), nil
}

// UpdateMyReason implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateMyReason(ctx context.Context, employeeID, recordID string, req attendance.UpdateReasonRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var result attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := s.getRecord(ctx, recordID)
		if err != nil {
			return err
		}
		if record.EmployeeID != employeeID {
			return attendance.ErrNotRecordOwner
		}

		reason := strings.TrimSpace(req.Reason)
		record.Reason = &reason
		// An explained record goes back to review.
		if record.Status == attendance.StatusConfirmed {
			record.Status = attendance.StatusPending
		}

		if err := s.AttendanceRepository.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to update attendance reason: %w", err)
		}
		result = record
		return s.audit.Record(ctx, audit.RecordTypeAttendance, record.ID, employeeID, audit.ActionReasonUpdate, &reason)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(result), nil
}

// GetRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetRecord(ctx context.Context, recordID string) (attendance.AttendanceResponse, error) {
	record, err := s.getRecord(ctx, recordID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(record), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return attendance.NewListResponse(records, total, filter.PageRequest), nil
}

func (s *AttendanceServiceImpl) listByStatus(ctx context.Context, status attendance.Status, page attendance.PageRequest) (attendance.ListAttendanceResponse, error) {
	st := string(status)
	return s.List(ctx, attendance.AttendanceFilter{Status: &st, PageRequest: page})
}

// ListPending implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListPending(ctx context.Context, page attendance.PageRequest) (attendance.ListAttendanceResponse, error) {
	return s.listByStatus(ctx, attendance.StatusPending, page)
}

// ListErrors implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListErrors(ctx context.Context, page attendance.PageRequest) (attendance.ListAttendanceResponse, error) {
	return s.listByStatus(ctx, attendance.StatusError, page)
}

// Stats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Stats(ctx context.Context) (attendance.StatsResponse, error) {
	counts, err := s.AttendanceRepository.CountByStatus(ctx)
	if err != nil {
		return attendance.StatsResponse{}, fmt.Errorf("failed to count attendance: %w", err)
	}

	stats := attendance.StatsResponse{
		TotalPending:   counts[attendance.StatusPending],
		TotalConfirmed: counts[attendance.StatusConfirmed],
		TotalError:     counts[attendance.StatusError],
	}
	stats.TotalRecords = stats.TotalPending + stats.TotalConfirmed + stats.TotalError
	return stats, nil
}

// Approve implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, adminID, recordID string, req attendance.ApproveRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var result attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := s.approve(ctx, adminID, recordID, trimmed(req.AdminNote))
		result = record
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(result), nil
}

func (s *AttendanceServiceImpl) approve(ctx context.Context, adminID, recordID string, note *string) (attendance.Record, error) {
	record, err := s.getRecord(ctx, recordID)
	if err != nil {
		return attendance.Record{}, err
	}
	if record.Status != attendance.StatusPending {
		return attendance.Record{}, attendance.ErrAttendanceAlreadyProcessed
	}

	record.Status = attendance.StatusConfirmed
	if note != nil {
		record.AdminNote = note
	}

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to approve attendance: %w", err)
	}
	if err := s.audit.Record(ctx, audit.RecordTypeAttendance, record.ID, adminID, audit.ActionApprove, note); err != nil {
		return attendance.Record{}, err
	}
	return record, nil
}

// Reject implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Reject(ctx context.Context, adminID, recordID string, req attendance.RejectRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var result attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if !req.HasCorrection() {
			record, err := s.reject(ctx, adminID, recordID, trimmed(req.Reason))
			result = record
			return err
		}

		record, err := s.getRecord(ctx, recordID)
		if err != nil {
			return err
		}
		if record.Status != attendance.StatusPending {
			return attendance.ErrAttendanceAlreadyProcessed
		}

		if req.CheckIn != nil {
			record.CheckIn = req.CheckIn
		}
		if req.CheckOut != nil {
			record.CheckOut = req.CheckOut
		}
		policy, err := s.dayPolicy(ctx, record.WorkDate)
		if err != nil {
			return err
		}
		if err := record.Recalculate(policy, s.schedule.RequiredHours); err != nil {
			return err
		}

		record.Status = attendance.StatusConfirmed
		note := trimmed(req.Reason)
		if note != nil {
			record.AdminNote = note
		}

		if err := s.AttendanceRepository.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to correct attendance: %w", err)
		}
		result = record
		return s.audit.Record(ctx, audit.RecordTypeAttendance, record.ID, adminID, audit.ActionCorrect, note)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(result), nil
}

func (s *AttendanceServiceImpl) reject(ctx context.Context, adminID, recordID string, reason *string) (attendance.Record, error) {
	record, err := s.getRecord(ctx, recordID)
	if err != nil {
		return attendance.Record{}, err
	}
	if record.Status != attendance.StatusPending {
		return attendance.Record{}, attendance.ErrAttendanceAlreadyProcessed
	}

	record.Status = attendance.StatusError
	if reason != nil {
		record.AdminNote = reason
	}

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to reject attendance: %w", err)
	}
	if err := s.audit.Record(ctx, audit.RecordTypeAttendance, record.ID, adminID, audit.ActionReject, reason); err != nil {
		return attendance.Record{}, err
	}
	return record, nil
}

// MarkError implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkError(ctx context.Context, adminID, recordID string, req attendance.MarkErrorRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var result attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := s.getRecord(ctx, recordID)
		if err != nil {
			return err
		}

		reason := trimmed(req.Reason)
		record.Status = attendance.StatusError
		if reason != nil {
			record.AdminNote = reason
		}

		if err := s.AttendanceRepository.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to mark attendance as error: %w", err)
		}
		result = record
		return s.audit.Record(ctx, audit.RecordTypeAttendance, record.ID, adminID, audit.ActionMarkError, reason)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(result), nil
}

// Update implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Update(ctx context.Context, adminID, recordID string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var result attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := s.getRecord(ctx, recordID)
		if err != nil {
			return err
		}

		timesChanged := req.CheckInTime != nil || req.CheckOutTime != nil
		if req.CheckInTime != nil {
			record.CheckIn = req.CheckInTime
		}
		if req.CheckOutTime != nil {
			record.CheckOut = req.CheckOutTime
		}
		if reason := trimmed(req.Reason); reason != nil {
			record.Reason = reason
		}
		if note := trimmed(req.AdminNote); note != nil {
			record.AdminNote = note
		}

		policy, err := s.dayPolicy(ctx, record.WorkDate)
		if err != nil {
			return err
		}
		if timesChanged {
			if err := record.Recalculate(policy, s.schedule.RequiredHours); err != nil {
				return err
			}
			record.Status = attendance.StatusPending
		} else if record.Status != attendance.StatusConfirmed && !policy.AllOvertime() {
			// notes-only edits on holidays and weekends keep the review status
			record.Status = attendance.StatusPending
		}
		s.schedule.Stamp(&record)

		if err := s.AttendanceRepository.Update(ctx, record); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		result = record
		return s.audit.Record(ctx, audit.RecordTypeAttendance, record.ID, adminID, audit.ActionAdminUpdate, trimmed(req.AdminNote))
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(result), nil
}

// Export implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Export(ctx context.Context, filter attendance.AttendanceFilter) ([]byte, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.ListAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for export: %w", err)
	}

	data, err := export.AttendanceWorkbook(attendance.ToResponses(records))
	if err != nil {
		return nil, fmt.Errorf("failed to render attendance workbook: %w", err)
	}
	return data, nil
}
