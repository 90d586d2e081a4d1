package attendance

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/medroster/roster-backend-go/internal/domain/attendance"
	"github.com/medroster/roster-backend-go/internal/pkg/timeparse"
)

// Fixed column layout of the fingerprint-device export: employee name in
// column B, the four time columns at D through G. The date cell moves
// around between export versions, so it is matched anywhere in the row.
const (
	colName     = 1
	colClockIn  = 3
	colBreakOut = 4
	colBreakIn  = 5
	colClockOut = 6
)

var dateCellRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// recordsFromRows builds day records from raw spreadsheet rows. Rows
// without a name, without a date cell, or with zero parseable punches
// are dropped here and never enter reconciliation.
func recordsFromRows(rows [][]string) []attendance.DayRecord {
	var records []attendance.DayRecord
	for _, row := range rows {
		if len(row) <= colName {
			continue
		}
		name := strings.TrimSpace(row[colName])
		if name == "" {
			continue
		}

		date, ok := findDate(row)
		if !ok {
			continue
		}

		rec := attendance.DayRecord{
			Employee: name,
			Date:     date,
			ClockIn:  normalizeCell(row, colClockIn),
			BreakOut: normalizeCell(row, colBreakOut),
			BreakIn:  normalizeCell(row, colBreakIn),
			ClockOut: normalizeCell(row, colClockOut),
		}
		if rec.ClockIn == nil && rec.BreakOut == nil && rec.BreakIn == nil && rec.ClockOut == nil {
			continue
		}
		records = append(records, rec)
	}
	sortRecords(records)
	return records
}

// recordsFromPayload builds day records from pre-parsed rows. Slot values
// still run through the normalizer so callers may pass any accepted time
// form; slots that fail to normalize become missing punches.
func recordsFromPayload(payload []attendance.DayRecordPayload) []attendance.DayRecord {
	var records []attendance.DayRecord
	for _, p := range payload {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			continue
		}
		rec := attendance.DayRecord{
			Employee: strings.TrimSpace(p.Employee),
			Date:     date,
			ClockIn:  normalizeSlot(p.ClockIn),
			BreakOut: normalizeSlot(p.BreakOut),
			BreakIn:  normalizeSlot(p.BreakIn),
			ClockOut: normalizeSlot(p.ClockOut),
		}
		if rec.Employee == "" {
			continue
		}
		if rec.ClockIn == nil && rec.BreakOut == nil && rec.BreakIn == nil && rec.ClockOut == nil {
			continue
		}
		records = append(records, rec)
	}
	sortRecords(records)
	return records
}

func findDate(row []string) (time.Time, bool) {
	for _, cell := range row {
		match := dateCellRe.FindString(cell)
		if match == "" {
			continue
		}
		date, err := time.Parse("2006-01-02", match)
		if err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}

func normalizeCell(row []string, col int) *string {
	if col >= len(row) {
		return nil
	}
	return normalizeSlot(&row[col])
}

func normalizeSlot(v *string) *string {
	if v == nil {
		return nil
	}
	norm, ok := timeparse.Normalize(*v)
	if !ok {
		return nil
	}
	return &norm
}

// sortRecords orders by employee then date, the order the stitching pass
// relies on.
func sortRecords(records []attendance.DayRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Employee != records[j].Employee {
			return records[i].Employee < records[j].Employee
		}
		return records[i].Date.Before(records[j].Date)
	})
}
