package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/audit"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-engine/internal/repository/memory"
	auditService "github.com/cmlabs-hris/attendance-engine/internal/service/audit"
	holidayService "github.com/cmlabs-hris/attendance-engine/internal/service/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminID = "0190a0c0-0000-7000-8000-0000000000ad"

type testEnv struct {
	store    *memory.Store
	clock    *clock.Fixed
	holidays holiday.HolidayRepository
	repo     attendance.AttendanceRepository
	service  attendance.AttendanceService
	emp      employee.Employee
}

// Wednesday 2024-06-12 08:00 UTC
var wednesdayMorning = time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	store := memory.NewStore()
	clk := clock.NewFixed(now)
	store.Now = clk.Now

	holidays := memory.NewHolidayRepository(store)
	repo := memory.NewAttendanceRepository(store)
	svc := NewAttendanceService(
		memory.TxManager{},
		repo,
		memory.NewEmployeeDirectory(store),
		holidayService.NewHolidayService(holidays),
		auditService.NewAuditService(memory.NewAuditRepository(store)),
		clk,
		attendance.DefaultSchedule(),
	)

	emp := store.AddEmployee(employee.Employee{FullName: "Dewi Lestari", Email: "dewi@example.com"})

	return &testEnv{store: store, clock: clk, holidays: holidays, repo: repo, service: svc, emp: emp}
}

func (e *testEnv) at(hour, minute int) {
	d := e.clock.T
	e.clock.T = time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

func strPtr(s string) *string { return &s }

func TestAttendanceService_CheckInCheckOut_NormalDay(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	in, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPending, in.Status)
	assert.Equal(t, "2024-06-12", in.WorkDate)
	assert.Equal(t, "08:00", *in.ExpectedCheckIn)
	assert.Equal(t, "17:00", *in.ExpectedCheckOut)
	assert.Nil(t, in.Reason)

	env.at(19, 0)
	out, err := env.service.CheckOut(ctx, env.emp.ID, attendance.CheckOutRequest{})
	require.NoError(t, err)
	assert.Equal(t, "8.00", out.WorkHours)
	assert.Equal(t, "3.00", out.OvertimeHours)
	assert.Equal(t, "8.00", out.RequiredWorkHours)
	assert.Nil(t, out.HolidayName)

	entries := env.store.AuditEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, audit.ActionCheckIn, entries[0].Action)
	assert.Equal(t, audit.ActionCheckOut, entries[1].Action)
	assert.Equal(t, env.emp.ID, entries[1].ActorID)
}

func TestAttendanceService_CheckOut_ShortDay(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	_, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)

	env.at(12, 20)
	out, err := env.service.CheckOut(ctx, env.emp.ID, attendance.CheckOutRequest{Reason: strPtr("doctor appointment")})
	require.NoError(t, err)
	assert.Equal(t, "4.33", out.WorkHours)
	assert.Equal(t, "0.00", out.OvertimeHours)
	assert.Equal(t, "doctor appointment", *out.Reason)
}

func TestAttendanceService_Holiday_AllHoursAreOvertime(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, time.Date(2024, 8, 17, 9, 0, 0, 0, time.UTC))
	_, err := env.holidays.Create(ctx, holiday.Holiday{Date: env.clock.T, Name: "Independence Day"})
	require.NoError(t, err)

	in, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	require.NotNil(t, in.Reason)
	assert.Equal(t, attendance.ReasonHolidayOvertime, *in.Reason)
	require.NotNil(t, in.HolidayName)
	assert.Equal(t, "Independence Day", *in.HolidayName)

	env.at(14, 30)
	out, err := env.service.CheckOut(ctx, env.emp.ID, attendance.CheckOutRequest{})
	require.NoError(t, err)
	assert.Equal(t, "0.00", out.WorkHours)
	assert.Equal(t, "5.50", out.OvertimeHours)
	assert.Equal(t, attendance.StatusPending, out.Status)
}

func TestAttendanceService_Weekend_DefaultReason(t *testing.T) {
	ctx := context.Background()
	// Saturday
	env := newTestEnv(t, time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))

	in, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.ReasonWeekendOvertime, *in.Reason)

	env.at(12, 0)
	out, err := env.service.CheckOut(ctx, env.emp.ID, attendance.CheckOutRequest{})
	require.NoError(t, err)
	assert.Equal(t, "0.00", out.WorkHours)
	assert.Equal(t, "2.00", out.OvertimeHours)
}

func TestAttendanceService_CheckIn_Twice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	_, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)

	env.at(8, 5)
	_, err = env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_CheckIn_UnknownEmployee(t *testing.T) {
	env := newTestEnv(t, wednesdayMorning)

	_, err := env.service.CheckIn(context.Background(), "0190a0c0-0000-7000-8000-00000000dead", attendance.CheckInRequest{})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceService_CheckOut_WithoutCheckIn(t *testing.T) {
	env := newTestEnv(t, wednesdayMorning)

	_, err := env.service.CheckOut(context.Background(), env.emp.ID, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceService_CheckOut_OnAbsencePlaceholder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	note := attendance.NoteNoAttendance
	_, created, err := env.repo.CreateIfAbsent(ctx, attendance.Record{
		EmployeeID: env.emp.ID,
		WorkDate:   env.clock.T,
		AdminNote:  &note,
		Status:     attendance.StatusPending,
	})
	require.NoError(t, err)
	require.True(t, created)

	_, err = env.service.CheckOut(ctx, env.emp.ID, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	// checking in on top of the placeholder reuses the row
	in, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.NotNil(t, in.CheckIn)
	assert.Nil(t, in.AdminNote)
}

// sweepRaceRepo inserts the absence placeholder right after the first day
// lookup has returned nothing, as the daily sweep would when it commits first.
type sweepRaceRepo struct {
	attendance.AttendanceRepository
	raced bool
}

func (r *sweepRaceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	found, err := r.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil || found != nil || r.raced {
		return found, err
	}
	r.raced = true

	note := attendance.NoteNoAttendance
	_, _, err = r.AttendanceRepository.CreateIfAbsent(ctx, attendance.Record{
		EmployeeID: employeeID,
		WorkDate:   date,
		AdminNote:  &note,
		Status:     attendance.StatusPending,
	})
	return nil, err
}

func TestAttendanceService_CheckIn_RacesAbsenceSweep(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	repo := &sweepRaceRepo{AttendanceRepository: env.repo}
	svc := NewAttendanceService(
		memory.TxManager{},
		repo,
		memory.NewEmployeeDirectory(env.store),
		holidayService.NewHolidayService(env.holidays),
		auditService.NewAuditService(memory.NewAuditRepository(env.store)),
		env.clock,
		attendance.DefaultSchedule(),
	)

	in, err := svc.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.True(t, repo.raced)
	require.NotNil(t, in.CheckIn)
	assert.Nil(t, in.AdminNote)
	assert.Equal(t, attendance.StatusPending, in.Status)

	stored, err := env.repo.GetByEmployeeAndDate(ctx, env.emp.ID, env.clock.T)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, in.ID, stored.ID)
	assert.NotNil(t, stored.CheckIn)
}

func TestAttendanceService_ReEntryAfterCompletedDay(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	first, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	env.at(12, 0)
	_, err = env.service.CheckOut(ctx, env.emp.ID, attendance.CheckOutRequest{})
	require.NoError(t, err)

	env.at(13, 0)
	again, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{Reason: strPtr("back from site visit")})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Nil(t, again.CheckOut)
	assert.Equal(t, "0.00", again.WorkHours)

	status, err := env.service.GetTodayStatus(ctx, env.emp.ID)
	require.NoError(t, err)
	assert.True(t, status.CanCheckOut)
	assert.Equal(t, attendance.ActionCheckOut, status.ActionNeeded)
}

func TestAttendanceService_GetTodayStatus(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	status, err := env.service.GetTodayStatus(ctx, env.emp.ID)
	require.NoError(t, err)
	assert.False(t, status.HasRecord)
	assert.True(t, status.CanCheckIn)
	assert.Equal(t, attendance.ActionCheckIn, status.ActionNeeded)

	_, err = env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	env.at(17, 0)
	_, err = env.service.CheckOut(ctx, env.emp.ID, attendance.CheckOutRequest{})
	require.NoError(t, err)

	status, err = env.service.GetTodayStatus(ctx, env.emp.ID)
	require.NoError(t, err)
	assert.True(t, status.HasRecord)
	assert.True(t, status.IsCompleted)
	assert.False(t, status.CanCheckIn)
	assert.False(t, status.CanCheckOut)
	assert.Equal(t, attendance.ActionNone, status.ActionNeeded)
}

func TestAttendanceService_UpdateMyReason_NotOwner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)
	other := env.store.AddEmployee(employee.Employee{FullName: "Budi Santoso"})

	rec, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = env.service.UpdateMyReason(ctx, other.ID, rec.ID, attendance.UpdateReasonRequest{Reason: "traffic"})
	assert.ErrorIs(t, err, attendance.ErrNotRecordOwner)

	updated, err := env.service.UpdateMyReason(ctx, env.emp.ID, rec.ID, attendance.UpdateReasonRequest{Reason: "  traffic  "})
	require.NoError(t, err)
	assert.Equal(t, "traffic", *updated.Reason)
}

func TestAttendanceService_ApproveAndReject(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	rec, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)

	approved, err := env.service.Approve(ctx, testAdminID, rec.ID, attendance.ApproveRequest{AdminNote: strPtr("ok")})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusConfirmed, approved.Status)
	assert.Equal(t, "ok", *approved.AdminNote)

	_, err = env.service.Approve(ctx, testAdminID, rec.ID, attendance.ApproveRequest{})
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyProcessed)

	_, err = env.service.Reject(ctx, testAdminID, rec.ID, attendance.RejectRequest{Reason: strPtr("late")})
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyProcessed)

	_, err = env.service.Approve(ctx, testAdminID, "0190a0c0-0000-7000-8000-00000000dead", attendance.ApproveRequest{})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceService_Reject_WithoutCorrection(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	rec, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)

	rejected, err := env.service.Reject(ctx, testAdminID, rec.ID, attendance.RejectRequest{Reason: strPtr("no evidence")})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusError, rejected.Status)
	assert.Equal(t, "no evidence", *rejected.AdminNote)
}

func TestAttendanceService_Reject_WithCorrection(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	_, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	env.at(20, 0)
	rec, err := env.service.CheckOut(ctx, env.emp.ID, attendance.CheckOutRequest{})
	require.NoError(t, err)
	require.Equal(t, "4.00", rec.OvertimeHours)

	corrected, err := env.service.Reject(ctx, testAdminID, rec.ID, attendance.RejectRequest{
		Reason:            strPtr("left at 18:00 per gate log"),
		CorrectedCheckOut: strPtr("2024-06-12T18:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusConfirmed, corrected.Status)
	assert.Equal(t, "8.00", corrected.WorkHours)
	assert.Equal(t, "2.00", corrected.OvertimeHours)
	assert.Equal(t, "left at 18:00 per gate log", *corrected.AdminNote)

	entries := env.store.AuditEntries()
	last := entries[len(entries)-1]
	assert.Equal(t, audit.ActionCorrect, last.Action)
	assert.Equal(t, testAdminID, last.ActorID)
}

func TestAttendanceService_Reject_CorrectionBeforeCheckIn(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	rec, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = env.service.Reject(ctx, testAdminID, rec.ID, attendance.RejectRequest{
		CorrectedCheckOut: strPtr("2024-06-12T07:00:00Z"),
	})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}

func TestAttendanceService_MarkError_FromAnyStatus(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	rec, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	_, err = env.service.Approve(ctx, testAdminID, rec.ID, attendance.ApproveRequest{})
	require.NoError(t, err)

	marked, err := env.service.MarkError(ctx, testAdminID, rec.ID, attendance.MarkErrorRequest{Reason: strPtr("duplicate badge")})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusError, marked.Status)
}

func TestAttendanceService_AdminUpdate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	_, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	env.at(17, 0)
	rec, err := env.service.CheckOut(ctx, env.emp.ID, attendance.CheckOutRequest{})
	require.NoError(t, err)
	_, err = env.service.Approve(ctx, testAdminID, rec.ID, attendance.ApproveRequest{})
	require.NoError(t, err)

	t.Run("notes only keeps confirmed", func(t *testing.T) {
		updated, err := env.service.Update(ctx, testAdminID, rec.ID, attendance.UpdateAttendanceRequest{AdminNote: strPtr("checked")})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusConfirmed, updated.Status)
	})

	t.Run("time change sends back to review", func(t *testing.T) {
		updated, err := env.service.Update(ctx, testAdminID, rec.ID, attendance.UpdateAttendanceRequest{
			CheckOut: strPtr("2024-06-12T18:30:00Z"),
		})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusPending, updated.Status)
		assert.Equal(t, "8.00", updated.WorkHours)
		assert.Equal(t, "2.50", updated.OvertimeHours)
	})

	t.Run("check-out before check-in", func(t *testing.T) {
		_, err := env.service.Update(ctx, testAdminID, rec.ID, attendance.UpdateAttendanceRequest{
			CheckIn: strPtr("2024-06-12T19:00:00Z"),
		})
		assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
	})
}

func TestAttendanceService_AdminUpdate_NotesOnErrorRecord(t *testing.T) {
	ctx := context.Background()

	markedError := func(t *testing.T, env *testEnv) attendance.AttendanceResponse {
		t.Helper()
		rec, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
		require.NoError(t, err)
		marked, err := env.service.MarkError(ctx, testAdminID, rec.ID, attendance.MarkErrorRequest{})
		require.NoError(t, err)
		require.Equal(t, attendance.StatusError, marked.Status)
		return marked
	}

	t.Run("weekday returns to pending", func(t *testing.T) {
		env := newTestEnv(t, wednesdayMorning)
		rec := markedError(t, env)

		updated, err := env.service.Update(ctx, testAdminID, rec.ID, attendance.UpdateAttendanceRequest{AdminNote: strPtr("badge reader fixed")})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusPending, updated.Status)
	})

	t.Run("weekend keeps error", func(t *testing.T) {
		env := newTestEnv(t, time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))
		rec := markedError(t, env)

		updated, err := env.service.Update(ctx, testAdminID, rec.ID, attendance.UpdateAttendanceRequest{AdminNote: strPtr("badge reader fixed")})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusError, updated.Status)
		assert.Equal(t, "badge reader fixed", *updated.AdminNote)
	})
}

func TestAttendanceService_BatchApprove_SkipsProcessed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)
	second := env.store.AddEmployee(employee.Employee{FullName: "Budi Santoso"})

	a, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	b, err := env.service.CheckIn(ctx, second.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	_, err = env.service.Reject(ctx, testAdminID, b.ID, attendance.RejectRequest{})
	require.NoError(t, err)

	missing := "0190a0c0-0000-7000-8000-00000000dead"
	changed, err := env.service.BatchApprove(ctx, testAdminID, attendance.BatchApproveRequest{
		RecordIDs: []string{a.ID, b.ID, missing},
	})
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, a.ID, changed[0].ID)
	assert.Equal(t, attendance.StatusConfirmed, changed[0].Status)
}

func TestAttendanceService_BatchReject(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	a, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)

	changed, err := env.service.BatchReject(ctx, testAdminID, attendance.BatchRejectRequest{
		RecordIDs: []string{a.ID},
		Reason:    strPtr("outside office"),
	})
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, attendance.StatusError, changed[0].Status)

	_, err = env.service.BatchReject(ctx, testAdminID, attendance.BatchRejectRequest{})
	assert.Error(t, err)
}

func TestAttendanceService_ListAndStats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)
	second := env.store.AddEmployee(employee.Employee{FullName: "Budi Santoso"})

	a, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	_, err = env.service.CheckIn(ctx, second.ID, attendance.CheckInRequest{})
	require.NoError(t, err)
	_, err = env.service.Approve(ctx, testAdminID, a.ID, attendance.ApproveRequest{})
	require.NoError(t, err)

	pending, err := env.service.ListPending(ctx, attendance.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.TotalCount)
	require.Len(t, pending.Records, 1)
	assert.Equal(t, "Budi Santoso", *pending.Records[0].EmployeeName)

	stats, err := env.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalPending)
	assert.Equal(t, int64(1), stats.TotalConfirmed)
	assert.Equal(t, int64(2), stats.TotalRecords)

	bad := "unknown"
	_, err = env.service.List(ctx, attendance.AttendanceFilter{Status: &bad})
	assert.Error(t, err)
}

func TestAttendanceService_ListMyHistory(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	for day := 10; day <= 12; day++ {
		env.clock.T = time.Date(2024, 6, day, 8, 0, 0, 0, time.UTC)
		_, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
		require.NoError(t, err)
	}

	limit := 2
	recent, err := env.service.ListMyHistory(ctx, env.emp.ID, attendance.HistoryFilter{Limit: &limit})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2024-06-12", recent[0].WorkDate)

	month, year := 6, 2024
	all, err := env.service.ListMyHistory(ctx, env.emp.ID, attendance.HistoryFilter{Month: &month, Year: &year})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = env.service.ListMyHistory(ctx, env.emp.ID, attendance.HistoryFilter{Month: &month})
	assert.Error(t, err)
}

func TestAttendanceService_Export(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, wednesdayMorning)

	_, err := env.service.CheckIn(ctx, env.emp.ID, attendance.CheckInRequest{})
	require.NoError(t, err)

	data, err := env.service.Export(ctx, attendance.AttendanceFilter{})
	require.NoError(t, err)
	// xlsx files are zip archives
	assert.Equal(t, []byte("PK"), data[:2])
}
