package attendance

// Policy holds the scoring thresholds for a reconciliation run. Callers
// own persistence of these settings; the engine only consumes them.
type Policy struct {
	// OvertimeThresholdHours is the daily total beyond which hours count
	// as overtime.
	OvertimeThresholdHours float64
	// StandardDayHours is the full-day baseline; shorter worked days
	// accumulate shortfall.
	StandardDayHours float64
	// StandardStart is the assumed shift start ("HH:MM") used by the
	// lateness rule.
	StandardStart string
	// GraceMinutes past StandardStart before a first punch counts late.
	GraceMinutes int
	// StitchCutoff ("HH:MM"): a next-day punch earlier than this is
	// treated as the previous day's missing checkout.
	StitchCutoff string
}

func DefaultPolicy() Policy {
	return Policy{
		OvertimeThresholdHours: 9,
		StandardDayHours:       8,
		StandardStart:          "08:00",
		GraceMinutes:           15,
		StitchCutoff:           "07:00",
	}
}
