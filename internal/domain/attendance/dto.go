package attendance

import (
	"github.com/medroster/roster-backend-go/internal/pkg/validator"
)

// ========================================
// RECONCILIATION DTOs
// ========================================

// DayRecordPayload is a pre-parsed attendance row. Time values may be in
// any form the normalizer accepts; they are canonicalized on ingest.
type DayRecordPayload struct {
	Employee string  `json:"employee"`
	Date     string  `json:"date"` // YYYY-MM-DD
	ClockIn  *string `json:"clock_in,omitempty"`
	BreakOut *string `json:"break_out,omitempty"`
	BreakIn  *string `json:"break_in,omitempty"`
	ClockOut *string `json:"clock_out,omitempty"`
}

// ReconcileRequest carries either raw spreadsheet rows (array-of-arrays,
// name in column B, a YYYY-MM-DD cell anywhere, four time columns at
// fixed offsets) or pre-parsed records. Exactly one of the two must be
// provided.
type ReconcileRequest struct {
	Rows    [][]string         `json:"rows,omitempty"`
	Records []DayRecordPayload `json:"records,omitempty"`
}

func (r *ReconcileRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Rows) == 0 && len(r.Records) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: "either rows or records is required",
		})
	}
	if len(r.Rows) > 0 && len(r.Records) > 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: "rows and records are mutually exclusive",
		})
	}

	for i, rec := range r.Records {
		if validator.IsEmpty(rec.Employee) {
			errs = append(errs, validator.ValidationError{
				Field:   "records[" + validator.Itoa(i) + "].employee",
				Message: "employee is required",
			})
		}
		if _, valid := validator.IsValidDate(rec.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "records[" + validator.Itoa(i) + "].date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProcessedRecordResponse struct {
	Date           string  `json:"date"` // YYYY-MM-DD
	Weekday        string  `json:"weekday"`
	ClockIn        *string `json:"clock_in,omitempty"`
	BreakOut       *string `json:"break_out,omitempty"`
	BreakIn        *string `json:"break_in,omitempty"`
	ClockOut       *string `json:"clock_out,omitempty"`
	Stitched       bool    `json:"stitched,omitempty"`
	TotalHours     float64 `json:"total_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	ShortfallHours float64 `json:"shortfall_hours"`
	LateMinutes    int     `json:"late_minutes"`
	Status         string  `json:"status"`
}

type EmployeeSummaryResponse struct {
	Name           string                    `json:"name"`
	WorkDays       int                       `json:"work_days"`
	FridaysWorked  int                       `json:"fridays_worked"`
	AbsentDays     int                       `json:"absent_days"`
	OvertimeHours  float64                   `json:"overtime_hours"`
	ShortfallHours float64                   `json:"shortfall_hours"`
	LateMinutes    int                       `json:"late_minutes"`
	Days           []ProcessedRecordResponse `json:"days"`
}

type ReconcileResponse struct {
	RunID       string                    `json:"run_id"`
	PeriodStart string                    `json:"period_start"` // YYYY-MM-DD
	PeriodEnd   string                    `json:"period_end"`   // YYYY-MM-DD
	Employees   []EmployeeSummaryResponse `json:"employees"`
}
