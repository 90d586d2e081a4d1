package attendance

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/medroster/roster-backend-go/internal/domain/attendance"
	"github.com/medroster/roster-backend-go/internal/pkg/timeparse"
)

// Lateness applies to morning arrivals only. A first punch at or after
// noon belongs to an afternoon or night shift and is never flagged late.
const noonMinutes = 12 * 60

type AttendanceServiceImpl struct {
	policy attendance.Policy
}

func NewAttendanceService(policy attendance.Policy) attendance.AttendanceService {
	if policy == (attendance.Policy{}) {
		policy = attendance.DefaultPolicy()
	}
	return &AttendanceServiceImpl{policy: policy}
}

// Reconcile implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Reconcile(ctx context.Context, req attendance.ReconcileRequest) (attendance.ReconcileResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ReconcileResponse{}, err
	}

	var records []attendance.DayRecord
	if len(req.Rows) > 0 {
		records = recordsFromRows(req.Rows)
	} else {
		records = recordsFromPayload(req.Records)
	}
	if len(records) == 0 {
		return attendance.ReconcileResponse{}, attendance.ErrNoUsableRows
	}

	records = applyStitches(records, planStitches(records, s.policy))

	first, last := dateSpan(records)
	summaries := s.summarize(records, first, last)

	runID := uuid.Must(uuid.NewV7()).String()
	slog.Info("attendance reconciliation completed",
		"run_id", runID,
		"employees", len(summaries),
		"rows", len(records),
		"period_start", first.Format("2006-01-02"),
		"period_end", last.Format("2006-01-02"))

	return toResponse(runID, first, last, summaries), nil
}

// summarize scores every non-absorbed record, backfills absences over
// the observed span, and aggregates per employee. Employees are keyed by
// display name; output order is name-sorted for determinism.
func (s *AttendanceServiceImpl) summarize(records []attendance.DayRecord, first, last time.Time) []attendance.EmployeeSummary {
	covered := make(map[string]map[string]bool)
	processed := make(map[string][]attendance.ProcessedRecord)
	var names []string

	for _, rec := range records {
		if covered[rec.Employee] == nil {
			covered[rec.Employee] = make(map[string]bool)
			names = append(names, rec.Employee)
		}
		// Absorbed rows stay in the covered set: their date was worked as
		// the tail of the previous day's shift, not missed.
		covered[rec.Employee][rec.Date.Format("2006-01-02")] = true
		if rec.Absorbed {
			continue
		}
		processed[rec.Employee] = append(processed[rec.Employee], s.score(rec))
	}
	sort.Strings(names)

	summaries := make([]attendance.EmployeeSummary, 0, len(names))
	for _, name := range names {
		days := processed[name]
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			// Fridays are the weekly off day and are never auto-marked
			// absent.
			if d.Weekday() == time.Friday {
				continue
			}
			if covered[name][d.Format("2006-01-02")] {
				continue
			}
			days = append(days, attendance.ProcessedRecord{
				Date:           d,
				Weekday:        d.Weekday().String(),
				ShortfallHours: s.policy.StandardDayHours,
				Status:         attendance.StatusAbsent,
			})
		}
		sort.Slice(days, func(i, j int) bool {
			return days[i].Date.Before(days[j].Date)
		})

		summary := attendance.EmployeeSummary{Name: name, Records: days}
		for _, day := range days {
			summary.OvertimeHours += day.OvertimeHours
			summary.ShortfallHours += day.ShortfallHours
			summary.LateMinutes += day.LateMinutes
			if day.Status == attendance.StatusAbsent {
				summary.AbsentDays++
			}
			if day.TotalHours > 0 {
				summary.WorkDays++
				if day.Date.Weekday() == time.Friday {
					summary.FridaysWorked++
				}
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// score computes one day's metrics from its reconciled punches.
func (s *AttendanceServiceImpl) score(rec attendance.DayRecord) attendance.ProcessedRecord {
	hours := dailyHours(rec)

	out := attendance.ProcessedRecord{
		Date:          rec.Date,
		Weekday:       rec.Date.Weekday().String(),
		ClockIn:       rec.ClockIn,
		BreakOut:      rec.BreakOut,
		BreakIn:       rec.BreakIn,
		ClockOut:      rec.ClockOut,
		Stitched:      rec.Stitched,
		TotalHours:    hours,
		OvertimeHours: math.Max(0, hours-s.policy.OvertimeThresholdHours),
		Status:        attendance.StatusMissingPunch,
	}
	if hours > 0 {
		out.Status = attendance.StatusPresent
		if hours < s.policy.StandardDayHours {
			out.ShortfallHours = s.policy.StandardDayHours - hours
		}
	}

	if fp := firstPunch(rec); fp != nil {
		if m, ok := timeparse.Minutes(*fp); ok {
			startMinutes, okStart := timeparse.Minutes(s.policy.StandardStart)
			if okStart && m > startMinutes+s.policy.GraceMinutes && m < noonMinutes {
				out.LateMinutes = m - startMinutes
			}
		}
	}
	return out
}

// dailyHours pairs the four device columns into up to two shift spans.
// Each span adds a day when it runs past midnight, a safety net for rows
// the stitching pass could not repair.
func dailyHours(rec attendance.DayRecord) float64 {
	var total float64
	if rec.ClockIn != nil && rec.BreakOut != nil {
		if h, ok := timeparse.SpanHours(*rec.ClockIn, *rec.BreakOut); ok {
			total += h
		}
	} else if rec.ClockIn != nil && rec.ClockOut != nil && rec.BreakIn == nil {
		// No break columns at all: one plain shift.
		if h, ok := timeparse.SpanHours(*rec.ClockIn, *rec.ClockOut); ok {
			total += h
		}
	}
	if rec.BreakIn != nil && rec.ClockOut != nil {
		if h, ok := timeparse.SpanHours(*rec.BreakIn, *rec.ClockOut); ok {
			total += h
		}
	}
	return total
}

// firstPunch picks the day's earliest recorded column, used only for
// lateness.
func firstPunch(rec attendance.DayRecord) *string {
	for _, slot := range []*string{rec.ClockIn, rec.BreakOut, rec.BreakIn, rec.ClockOut} {
		if slot != nil {
			return slot
		}
	}
	return nil
}

func dateSpan(records []attendance.DayRecord) (time.Time, time.Time) {
	first, last := records[0].Date, records[0].Date
	for _, rec := range records[1:] {
		if rec.Date.Before(first) {
			first = rec.Date
		}
		if rec.Date.After(last) {
			last = rec.Date
		}
	}
	return first, last
}

func toResponse(runID string, first, last time.Time, summaries []attendance.EmployeeSummary) attendance.ReconcileResponse {
	resp := attendance.ReconcileResponse{
		RunID:       runID,
		PeriodStart: first.Format("2006-01-02"),
		PeriodEnd:   last.Format("2006-01-02"),
		Employees:   make([]attendance.EmployeeSummaryResponse, 0, len(summaries)),
	}
	for _, s := range summaries {
		emp := attendance.EmployeeSummaryResponse{
			Name:           s.Name,
			WorkDays:       s.WorkDays,
			FridaysWorked:  s.FridaysWorked,
			AbsentDays:     s.AbsentDays,
			OvertimeHours:  s.OvertimeHours,
			ShortfallHours: s.ShortfallHours,
			LateMinutes:    s.LateMinutes,
			Days:           make([]attendance.ProcessedRecordResponse, 0, len(s.Records)),
		}
		for _, day := range s.Records {
			emp.Days = append(emp.Days, attendance.ProcessedRecordResponse{
				Date:           day.Date.Format("2006-01-02"),
				Weekday:        day.Weekday,
				ClockIn:        day.ClockIn,
				BreakOut:       day.BreakOut,
				BreakIn:        day.BreakIn,
				ClockOut:       day.ClockOut,
				Stitched:       day.Stitched,
				TotalHours:     day.TotalHours,
				OvertimeHours:  day.OvertimeHours,
				ShortfallHours: day.ShortfallHours,
				LateMinutes:    day.LateMinutes,
				Status:         string(day.Status),
			})
		}
		resp.Employees = append(resp.Employees, emp)
	}
	return resp
}
