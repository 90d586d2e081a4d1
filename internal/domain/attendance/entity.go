package attendance

import (
	"time"
)

// DayRecord is one employee's punches for one calendar day, parsed into
// the four named device columns. Slots hold canonical "HH:MM" values or
// nil when the device produced nothing usable. Records are built fresh
// per analysis run and mutated only by the stitching pass.
type DayRecord struct {
	Employee string
	Date     time.Time
	ClockIn  *string
	BreakOut *string
	BreakIn  *string
	ClockOut *string

	// Stitched marks a record whose checkout was pulled in from the next
	// calendar day's early-morning punch.
	Stitched bool
	// Absorbed marks a record fully consumed by the previous day. It
	// contributes no independent day to the output.
	Absorbed bool
}

type DayStatus string

const (
	StatusPresent      DayStatus = "Present"
	StatusMissingPunch DayStatus = "Missing Punch"
	StatusAbsent       DayStatus = "Absent"
)

// ProcessedRecord is one scored day for one employee.
type ProcessedRecord struct {
	Date           time.Time
	Weekday        string
	ClockIn        *string
	BreakOut       *string
	BreakIn        *string
	ClockOut       *string
	Stitched       bool
	TotalHours     float64
	OvertimeHours  float64
	ShortfallHours float64
	LateMinutes    int
	Status         DayStatus
}

// EmployeeSummary aggregates one employee's scored days. Employees are
// keyed by display name, so a name typo produces a separate bucket. That
// is a known upstream data-quality risk, not something this engine
// corrects.
type EmployeeSummary struct {
	Name           string
	WorkDays       int
	FridaysWorked  int
	AbsentDays     int
	OvertimeHours  float64
	ShortfallHours float64
	LateMinutes    int
	Records        []ProcessedRecord
}
