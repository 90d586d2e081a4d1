package roster

import "time"

// ShiftWindow is one continuous work period in canonical "HH:MM" form.
// End may be numerically earlier than Start, which means the window
// crosses midnight.
type ShiftWindow struct {
	Start string
	End   string
}

// ScheduleEntry is one roster row. Entries with a Date apply to that
// calendar day only; entries without one are recurring weekly patterns.
// The engine never mutates entries.
type ScheduleEntry struct {
	ID         string
	UserID     string
	Date       *string // "2006-01-02"; nil means recurring weekly
	LocationID string  // may encode "Friday" or "Holiday" semantics by substring
	Note       string  // free text, may carry shift ranges and a PP marker
	Shifts     []ShiftWindow
	ValidFrom  *string // inclusive bound for recurring entries
	ValidTo    *string
	StaffName  string // display-name snapshot taken at schedule creation
}

type PunchType string

const (
	PunchIn  PunchType = "IN"
	PunchOut PunchType = "OUT"
)

// Punch is a single clock event from a fingerprint device.
type Punch struct {
	UserID    string
	Date      string // "2006-01-02", the calendar day the punch was logged on
	Type      PunchType
	Timestamp time.Time
}

type UserProfile struct {
	ID   string
	Name string
	Role string
}

const RoleDoctor = "doctor"

// FilterMode controls which scheduled people the resolver reports.
type FilterMode string

const (
	// FilterOnDuty keeps doctors and anyone whose last punch today is an IN.
	FilterOnDuty FilterMode = "on-duty"
	// FilterAll keeps everyone scheduled right now, present or not.
	FilterAll FilterMode = "all"
)

// DefaultShift applies when an entry has no explicit windows and its note
// yields none. Showing a scheduled person with an approximate window beats
// hiding them.
var DefaultShift = ShiftWindow{Start: "08:00", End: "16:00"}

// PresenceEntry is one person whose shift window contains "now".
type PresenceEntry struct {
	Name              string
	Location          string
	TimeWindow        string
	Role              string
	PortableProcedure bool
	Present           bool
}
