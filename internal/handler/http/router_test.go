package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/config"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-engine/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/attendance-engine/internal/service/attendance"
	auditService "github.com/cmlabs-hris/attendance-engine/internal/service/audit"
	employeeService "github.com/cmlabs-hris/attendance-engine/internal/service/employee"
	holidayService "github.com/cmlabs-hris/attendance-engine/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/attendance-engine/internal/service/leave"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminUserID = "0190a0c0-0000-7000-8000-0000000000ad"

type apiEnv struct {
	router *chi.Mux
	tokens jwt.Service
	clock  *clock.Fixed
	store  *memory.Store
	emp    employee.Employee
	other  employee.Employee
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()

	store := memory.NewStore()
	// Wednesday
	clk := clock.NewFixed(time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC))
	store.Now = clk.Now

	attendanceRepo := memory.NewAttendanceRepository(store)
	directory := memory.NewEmployeeDirectory(store)
	holidays := holidayService.NewHolidayService(memory.NewHolidayRepository(store))
	audits := auditService.NewAuditService(memory.NewAuditRepository(store))
	schedule := attendance.DefaultSchedule()

	attendanceSvc := attendanceService.NewAttendanceService(memory.TxManager{}, attendanceRepo, directory, holidays, audits, clk, schedule)
	leaveSvc := leaveService.NewLeaveService(
		memory.TxManager{},
		memory.NewLeaveTypeRepository(store),
		memory.NewLeaveRequestRepository(store),
		directory,
		audits,
		clk,
	)
	absence := cron.NewAbsenceJobs(memory.TxManager{}, attendanceRepo, directory, holidays, audits, clk, schedule, 23)

	tokens := jwt.NewJWTService("test-secret", "1h")
	router := NewRouter(
		config.AppConfig{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		tokens,
		NewAttendanceHandler(attendanceSvc),
		NewLeaveHandler(leaveSvc, clk),
		NewHolidayHandler(holidays, clk),
		NewAuditHandler(audits),
		NewEmployeeHandler(employeeService.NewEmployeeService(directory)),
		NewJobHandler(absence),
		NewAuthHandler(tokens),
	)

	hired := utils.NewDate(2024, 1, 1)
	emp := store.AddEmployee(employee.Employee{FullName: "Dewi Lestari", Email: "dewi@example.com", HireDate: &hired})
	other := store.AddEmployee(employee.Employee{FullName: "Budi Santoso", Email: "budi@example.com", HireDate: &hired})

	return &apiEnv{router: router, tokens: tokens, clock: clk, store: store, emp: emp, other: other}
}

func (e *apiEnv) employeeToken(t *testing.T, emp employee.Employee) string {
	t.Helper()
	token, _, err := e.tokens.GenerateAccessToken("0190a0c0-0000-7000-8000-0000000000e1", &emp.ID, auth.RoleEmployee)
	require.NoError(t, err)
	return token
}

func (e *apiEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := e.tokens.GenerateAccessToken(testAdminUserID, nil, auth.RoleAdmin)
	require.NoError(t, err)
	return token
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestRouter_RequiresToken(t *testing.T) {
	env := newAPIEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/attendance/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, body.Success)
}

func TestRouter_RevokedToken(t *testing.T) {
	env := newAPIEnv(t)
	token := env.employeeToken(t, env.emp)

	rec, _ := env.do(t, http.MethodGet, "/api/v1/attendance/today", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body := env.do(t, http.MethodPost, "/api/v1/auth/revoke", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/attendance/today", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// other tokens stay valid
	rec, _ = env.do(t, http.MethodGet, "/api/v1/attendance/today", env.employeeToken(t, env.other), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RoleGuards(t *testing.T) {
	env := newAPIEnv(t)

	t.Run("employee cannot reach admin routes", func(t *testing.T) {
		rec, _ := env.do(t, http.MethodGet, "/api/v1/admin/attendance", env.employeeToken(t, env.emp), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin without employee link cannot check in", func(t *testing.T) {
		rec, _ := env.do(t, http.MethodPost, "/api/v1/attendance/check-in", env.adminToken(t), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("both roles read holidays", func(t *testing.T) {
		rec, _ := env.do(t, http.MethodGet, "/api/v1/holidays?year=2024", env.employeeToken(t, env.emp), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		rec, _ = env.do(t, http.MethodGet, "/api/v1/holidays?year=2024", env.adminToken(t), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_AttendanceFlow(t *testing.T) {
	env := newAPIEnv(t)
	token := env.employeeToken(t, env.emp)
	admin := env.adminToken(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var record attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(body.Data, &record))
	assert.Equal(t, "2024-06-12", record.WorkDate)

	rec, _ = env.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	env.clock.Advance(9 * time.Hour)
	rec, body = env.do(t, http.MethodPost, "/api/v1/attendance/check-out", token, map[string]string{"reason": "release day"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(body.Data, &record))
	assert.Equal(t, "8.00", record.WorkHours)
	assert.Equal(t, "1.00", record.OvertimeHours)

	rec, body = env.do(t, http.MethodGet, "/api/v1/attendance/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var today attendance.TodayStatusResponse
	require.NoError(t, json.Unmarshal(body.Data, &today))
	assert.True(t, today.IsCompleted)

	rec, body = env.do(t, http.MethodPost, "/api/v1/admin/attendance/"+record.ID+"/approve", admin, map[string]string{"admin_note": "ok"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(body.Data, &record))
	assert.Equal(t, attendance.StatusConfirmed, record.Status)

	rec, _ = env.do(t, http.MethodPost, "/api/v1/admin/attendance/"+record.ID+"/approve", admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body = env.do(t, http.MethodGet, "/api/v1/admin/attendance/"+record.ID+"/audit", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trail []map[string]interface{}
	require.NoError(t, json.Unmarshal(body.Data, &trail))
	assert.Len(t, trail, 3)
}

func TestRouter_AttendanceNotFound(t *testing.T) {
	env := newAPIEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/admin/attendance/0190a0c0-0000-7000-8000-00000000ffff", env.adminToken(t), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, body.Success)
}

func TestRouter_MyHistoryRejectsBadQuery(t *testing.T) {
	env := newAPIEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/api/v1/attendance/my?limit=abc", env.employeeToken(t, env.emp), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_LeaveSubmission(t *testing.T) {
	env := newAPIEnv(t)
	token := env.employeeToken(t, env.emp)
	admin := env.adminToken(t)

	rec, body := env.do(t, http.MethodPost, "/api/v1/admin/leave/types", admin, map[string]string{
		"name":     "Annual Leave",
		"category": "annual",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var annual struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &annual))

	t.Run("missing fields fail validation", func(t *testing.T) {
		rec, body := env.do(t, http.MethodPost, "/api/v1/leave/requests", token, map[string]string{})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, body.Error)
		assert.Contains(t, body.Error.Details, "leave_type_id")
	})

	t.Run("more days than the balance", func(t *testing.T) {
		rec, body := env.do(t, http.MethodPost, "/api/v1/leave/requests", token, map[string]string{
			"leave_type_id": annual.ID,
			"from_date":     "2024-07-01",
			"to_date":       "2024-07-13",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, body.Success)
	})

	t.Run("submit and approve", func(t *testing.T) {
		rec, body := env.do(t, http.MethodPost, "/api/v1/leave/requests", token, map[string]string{
			"leave_type_id": annual.ID,
			"from_date":     "2024-07-01",
			"to_date":       "2024-07-03",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		var created struct {
			ID   string `json:"id"`
			Days int    `json:"days"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &created))
		assert.Equal(t, 3, created.Days)

		rec, _ = env.do(t, http.MethodPost, "/api/v1/admin/leave/requests/"+created.ID+"/approve", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec, body = env.do(t, http.MethodGet, "/api/v1/admin/leave/requests/"+created.ID+"/audit", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var trail []struct {
			ActorID string `json:"actor_id"`
			Action  string `json:"action"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &trail))
		require.Len(t, trail, 2)
		assert.Equal(t, "submitted", trail[0].Action)
		assert.Equal(t, env.emp.ID, trail[0].ActorID)
		assert.Equal(t, "approved", trail[1].Action)
		assert.Equal(t, testAdminUserID, trail[1].ActorID)

		rec, body = env.do(t, http.MethodGet, "/api/v1/admin/audit?record_type=leave_request&actor_id="+testAdminUserID, admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var page struct {
			TotalCount int64 `json:"total_count"`
			Entries    []struct {
				RecordID string `json:"record_id"`
			} `json:"entries"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &page))
		assert.Equal(t, int64(1), page.TotalCount)
		require.Len(t, page.Entries, 1)
		assert.Equal(t, created.ID, page.Entries[0].RecordID)

		rec, body = env.do(t, http.MethodGet, "/api/v1/leave/summary?year=2024", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var summary struct {
			Entitlement int `json:"entitlement"`
			Remaining   int `json:"remaining"`
		}
		require.NoError(t, json.Unmarshal(body.Data, &summary))
		assert.Equal(t, 12, summary.Entitlement)
		assert.Equal(t, 9, summary.Remaining)

		// another employee cannot delete it
		rec, _ = env.do(t, http.MethodDelete, "/api/v1/leave/requests/"+created.ID, env.employeeToken(t, env.other), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("summary pdf", func(t *testing.T) {
		rec, _ := env.do(t, http.MethodGet, "/api/v1/leave/summary/pdf", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
	})
}

func TestRouter_AuditListRejectsBadFilter(t *testing.T) {
	env := newAPIEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/v1/admin/audit?record_type=payroll", env.adminToken(t), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, body.Error)
	assert.Contains(t, body.Error.Details, "record_type")
}

func TestRouter_AbsenceSweep(t *testing.T) {
	env := newAPIEnv(t)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/attendance/check-in", env.employeeToken(t, env.emp), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := env.do(t, http.MethodPost, "/api/v1/admin/jobs/absence-sweep", env.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var result absenceSweepResponse
	require.NoError(t, json.Unmarshal(body.Data, &result))
	assert.Equal(t, 1, result.Created)

	rec, body = env.do(t, http.MethodGet, "/api/v1/admin/attendance/pending", env.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list attendance.ListAttendanceResponse
	require.NoError(t, json.Unmarshal(body.Data, &list))
	assert.Equal(t, int64(2), list.TotalCount)
}

func TestRouter_Export(t *testing.T) {
	env := newAPIEnv(t)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/attendance/check-in", env.employeeToken(t, env.emp), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/admin/attendance/export?start_date=2024-06-01&end_date=2024-06-30", env.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance_2024-06-01_2024-06-30.xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}
