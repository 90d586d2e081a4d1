package attendance

import (
	"github.com/medroster/roster-backend-go/internal/domain/attendance"
	"github.com/medroster/roster-backend-go/internal/pkg/timeparse"
)

// The fingerprint device logs every punch under the calendar date on
// which it physically occurred, so a 17:00-01:00 shift arrives as two
// rows. Stitching moves the early-morning punch back onto the day the
// shift started. Decisions are planned over a scratch copy first and
// applied to a fresh copy second, so no caller slice is aliased while
// adjacent rows are being rewritten.

type stitchDecision struct {
	// target gains the checkout, source loses its early clock-in.
	target int
	source int
	punch  string
	absorb bool
}

// planStitches scans adjacent same-employee rows exactly one day apart.
// The scratch copy is mutated as decisions accumulate so that a row
// already robbed of its clock-in cannot donate it again.
func planStitches(records []attendance.DayRecord, policy attendance.Policy) []stitchDecision {
	cutoff, ok := timeparse.Minutes(policy.StitchCutoff)
	if !ok {
		cutoff, _ = timeparse.Minutes(attendance.DefaultPolicy().StitchCutoff)
	}

	scratch := cloneRecords(records)
	var plan []stitchDecision
	for i := 0; i+1 < len(scratch); i++ {
		cur := &scratch[i]
		next := &scratch[i+1]
		if cur.Employee != next.Employee {
			continue
		}
		if !cur.Date.AddDate(0, 0, 1).Equal(next.Date) {
			continue
		}
		if !hasOpenShift(*cur) {
			continue
		}

		punch, ok := earliestMorningPunch(*next, cutoff)
		if !ok {
			continue
		}

		cur.ClockOut = &punch
		next.ClockIn = nil
		absorb := next.BreakOut == nil && next.BreakIn == nil && next.ClockOut == nil
		if absorb {
			next.Absorbed = true
		}
		plan = append(plan, stitchDecision{target: i, source: i + 1, punch: punch, absorb: absorb})
	}
	return plan
}

// applyStitches replays the plan onto a fresh copy of the input.
func applyStitches(records []attendance.DayRecord, plan []stitchDecision) []attendance.DayRecord {
	out := cloneRecords(records)
	for _, d := range plan {
		punch := d.punch
		out[d.target].ClockOut = &punch
		out[d.target].Stitched = true
		out[d.source].ClockIn = nil
		if d.absorb {
			out[d.source].Absorbed = true
		}
	}
	return out
}

// hasOpenShift reports whether a row started a shift it never closed.
func hasOpenShift(r attendance.DayRecord) bool {
	return (r.ClockIn != nil || r.BreakIn != nil) && r.ClockOut == nil
}

// earliestMorningPunch returns the earlier of the row's clock-in and
// break-out when it falls before the cutoff.
func earliestMorningPunch(r attendance.DayRecord, cutoff int) (string, bool) {
	best := ""
	bestMinutes := 0
	for _, slot := range []*string{r.ClockIn, r.BreakOut} {
		if slot == nil {
			continue
		}
		m, ok := timeparse.Minutes(*slot)
		if !ok {
			continue
		}
		if best == "" || m < bestMinutes {
			best, bestMinutes = *slot, m
		}
	}
	if best == "" || bestMinutes >= cutoff {
		return "", false
	}
	return best, true
}

func cloneRecords(records []attendance.DayRecord) []attendance.DayRecord {
	out := make([]attendance.DayRecord, len(records))
	copy(out, records)
	return out
}
