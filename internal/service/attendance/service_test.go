package attendance

import (
	"context"
	"testing"

	"github.com/medroster/roster-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestService() attendance.AttendanceService {
	return NewAttendanceService(attendance.DefaultPolicy())
}

func reconcileRecords(t *testing.T, records ...attendance.DayRecordPayload) attendance.ReconcileResponse {
	t.Helper()
	resp, err := newTestService().Reconcile(context.Background(), attendance.ReconcileRequest{Records: records})
	require.NoError(t, err)
	return resp
}

func TestAttendanceService_Reconcile_MidnightStitching(t *testing.T) {
	// A 17:00-01:00 shift arrives as two calendar-day rows.
	resp := reconcileRecords(t,
		attendance.DayRecordPayload{Employee: "X", Date: "2024-01-15", ClockIn: strPtr("17:00")},
		attendance.DayRecordPayload{Employee: "X", Date: "2024-01-16", ClockIn: strPtr("01:00")},
	)

	require.Len(t, resp.Employees, 1)
	emp := resp.Employees[0]
	// The absorbed day contributes no independent record, absent or
	// otherwise.
	require.Len(t, emp.Days, 1)

	day := emp.Days[0]
	assert.Equal(t, "2024-01-15", day.Date)
	require.NotNil(t, day.ClockOut)
	assert.Equal(t, "01:00", *day.ClockOut)
	assert.True(t, day.Stitched)
	assert.InDelta(t, 8, day.TotalHours, 1e-9)
	assert.Equal(t, string(attendance.StatusPresent), day.Status)
	assert.Equal(t, 1, emp.WorkDays)
}

func TestAttendanceService_Reconcile_NightShiftHours(t *testing.T) {
	resp := reconcileRecords(t,
		attendance.DayRecordPayload{Employee: "Ahmed", Date: "2024-01-15", ClockIn: strPtr("21:00")},
		attendance.DayRecordPayload{Employee: "Ahmed", Date: "2024-01-16", ClockIn: strPtr("05:30")},
	)

	require.Len(t, resp.Employees, 1)
	emp := resp.Employees[0]
	require.Len(t, emp.Days, 1)
	assert.InDelta(t, 8.5, emp.Days[0].TotalHours, 1e-9)
	assert.InDelta(t, 0, emp.Days[0].OvertimeHours, 1e-9)
	assert.Equal(t, 0, emp.Days[0].LateMinutes)
}

func TestAttendanceService_Reconcile_StitchingLeavesClosedDaysAlone(t *testing.T) {
	// Day one closed its shift, so day two's early punch is its own.
	resp := reconcileRecords(t,
		attendance.DayRecordPayload{Employee: "X", Date: "2024-01-15",
			ClockIn: strPtr("08:00"), ClockOut: strPtr("16:00")},
		attendance.DayRecordPayload{Employee: "X", Date: "2024-01-16",
			ClockIn: strPtr("06:00"), ClockOut: strPtr("14:00")},
	)

	emp := resp.Employees[0]
	require.Len(t, emp.Days, 2)
	assert.False(t, emp.Days[0].Stitched)
	assert.False(t, emp.Days[1].Stitched)
	assert.InDelta(t, 8, emp.Days[1].TotalHours, 1e-9)
}

func TestAttendanceService_Reconcile_FourPunchDay(t *testing.T) {
	resp := reconcileRecords(t,
		attendance.DayRecordPayload{Employee: "X", Date: "2024-01-15",
			ClockIn: strPtr("08:00"), BreakOut: strPtr("12:00"),
			BreakIn: strPtr("13:00"), ClockOut: strPtr("17:00")},
	)

	day := resp.Employees[0].Days[0]
	assert.InDelta(t, 8, day.TotalHours, 1e-9)
	assert.InDelta(t, 0, day.OvertimeHours, 1e-9)
	assert.InDelta(t, 0, day.ShortfallHours, 1e-9)
}

func TestAttendanceService_Reconcile_OvertimeAndShortfall(t *testing.T) {
	cases := []struct {
		name      string
		clockOut  string
		hours     float64
		overtime  float64
		shortfall float64
	}{
		{"short day", "14:00", 6, 0, 2},
		{"exactly standard", "16:00", 8, 0, 0},
		{"exactly threshold", "17:00", 9, 0, 0},
		{"long day", "18:00", 10, 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp := reconcileRecords(t, attendance.DayRecordPayload{
				Employee: "X", Date: "2024-01-15",
				ClockIn: strPtr("08:00"), ClockOut: strPtr(c.clockOut),
			})
			day := resp.Employees[0].Days[0]
			assert.InDelta(t, c.hours, day.TotalHours, 1e-9)
			assert.InDelta(t, c.overtime, day.OvertimeHours, 1e-9)
			assert.InDelta(t, c.shortfall, day.ShortfallHours, 1e-9)
			// Never both at once.
			assert.False(t, day.OvertimeHours > 0 && day.ShortfallHours > 0)
		})
	}
}

func TestAttendanceService_Reconcile_Lateness(t *testing.T) {
	cases := []struct {
		name    string
		clockIn string
		want    int
	}{
		{"within grace", "08:10", 0},
		{"at grace boundary", "08:15", 0},
		{"late morning arrival", "08:20", 20},
		{"very late morning", "10:00", 120},
		{"afternoon shift is not late", "13:00", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := "20:00"
			resp := reconcileRecords(t, attendance.DayRecordPayload{
				Employee: "X", Date: "2024-01-15",
				ClockIn: strPtr(c.clockIn), ClockOut: strPtr(out),
			})
			assert.Equal(t, c.want, resp.Employees[0].Days[0].LateMinutes)
		})
	}
}

func TestAttendanceService_Reconcile_MissingPunch(t *testing.T) {
	resp := reconcileRecords(t,
		attendance.DayRecordPayload{Employee: "X", Date: "2024-01-15", ClockIn: strPtr("08:00")},
	)

	day := resp.Employees[0].Days[0]
	assert.Equal(t, string(attendance.StatusMissingPunch), day.Status)
	assert.InDelta(t, 0, day.TotalHours, 1e-9)
	assert.Equal(t, 0, resp.Employees[0].WorkDays)
}

func TestAttendanceService_Reconcile_AbsenceBackfill(t *testing.T) {
	// Worked Monday and Thursday; Tuesday and Wednesday become absences.
	resp := reconcileRecords(t,
		attendance.DayRecordPayload{Employee: "X", Date: "2024-01-15",
			ClockIn: strPtr("08:00"), ClockOut: strPtr("16:00")},
		attendance.DayRecordPayload{Employee: "X", Date: "2024-01-18",
			ClockIn: strPtr("08:00"), ClockOut: strPtr("16:00")},
	)

	emp := resp.Employees[0]
	assert.Equal(t, 2, emp.AbsentDays)
	assert.InDelta(t, 16, emp.ShortfallHours, 1e-9)
	require.Len(t, emp.Days, 4)
	assert.Equal(t, string(attendance.StatusAbsent), emp.Days[1].Status)
	assert.Equal(t, "2024-01-16", emp.Days[1].Date)
	assert.Equal(t, string(attendance.StatusAbsent), emp.Days[2].Status)
}

func TestAttendanceService_Reconcile_NoAbsenceOnFriday(t *testing.T) {
	// Thursday 2024-01-18 through Saturday 2024-01-20; Friday is skipped.
	resp := reconcileRecords(t,
		attendance.DayRecordPayload{Employee: "X", Date: "2024-01-18",
			ClockIn: strPtr("08:00"), ClockOut: strPtr("16:00")},
		attendance.DayRecordPayload{Employee: "X", Date: "2024-01-20",
			ClockIn: strPtr("08:00"), ClockOut: strPtr("16:00")},
	)

	emp := resp.Employees[0]
	assert.Equal(t, 0, emp.AbsentDays)
	require.Len(t, emp.Days, 2)
	for _, day := range emp.Days {
		assert.NotEqual(t, string(attendance.StatusAbsent), day.Status)
	}
}

func TestAttendanceService_Reconcile_FridayWorkedCounts(t *testing.T) {
	resp := reconcileRecords(t,
		attendance.DayRecordPayload{Employee: "X", Date: "2024-01-19",
			ClockIn: strPtr("08:00"), ClockOut: strPtr("16:00")},
	)

	emp := resp.Employees[0]
	assert.Equal(t, 1, emp.WorkDays)
	assert.Equal(t, 1, emp.FridaysWorked)
}

func TestAttendanceService_Reconcile_EmployeesSortedByName(t *testing.T) {
	resp := reconcileRecords(t,
		attendance.DayRecordPayload{Employee: "Zara", Date: "2024-01-15",
			ClockIn: strPtr("08:00"), ClockOut: strPtr("16:00")},
		attendance.DayRecordPayload{Employee: "Ahmed", Date: "2024-01-15",
			ClockIn: strPtr("08:00"), ClockOut: strPtr("16:00")},
	)

	require.Len(t, resp.Employees, 2)
	assert.Equal(t, "Ahmed", resp.Employees[0].Name)
	assert.Equal(t, "Zara", resp.Employees[1].Name)
}

func TestAttendanceService_Reconcile_EmptyInput(t *testing.T) {
	svc := newTestService()

	_, err := svc.Reconcile(context.Background(), attendance.ReconcileRequest{})
	assert.Error(t, err)

	// Rows that parse to nothing are a hard error, not zero employees.
	_, err = svc.Reconcile(context.Background(), attendance.ReconcileRequest{
		Rows: [][]string{{"", "", "", "", ""}, {"1", "Ahmed", "no date here", "xx", "yy"}},
	})
	assert.ErrorIs(t, err, attendance.ErrNoUsableRows)
}
