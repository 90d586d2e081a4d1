package roster

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/medroster/roster-backend-go/internal/domain/roster"
	"github.com/medroster/roster-backend-go/internal/pkg/timeparse"
)

type RosterServiceImpl struct {
	defaultShift roster.ShiftWindow
	defaultMode  roster.FilterMode
}

func NewRosterService(defaultShift roster.ShiftWindow, defaultMode roster.FilterMode) roster.RosterService {
	if defaultShift.Start == "" || defaultShift.End == "" {
		defaultShift = roster.DefaultShift
	}
	if defaultMode == "" {
		defaultMode = roster.FilterOnDuty
	}
	return &RosterServiceImpl{
		defaultShift: defaultShift,
		defaultMode:  defaultMode,
	}
}

// ResolvePresence implements roster.RosterService.
func (s *RosterServiceImpl) ResolvePresence(ctx context.Context, req roster.ResolvePresenceRequest) (roster.PresenceResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.PresenceResponse{}, err
	}

	now := time.Now()
	if req.Now != nil && *req.Now != "" {
		parsed, _ := time.Parse(time.RFC3339, *req.Now)
		now = parsed
	}

	mode := s.defaultMode
	if req.Mode != "" {
		mode = roster.FilterMode(req.Mode)
	}

	entries := s.resolve(req.Entries(), req.PunchLog(), req.Profiles(), now, mode)

	resp := roster.PresenceResponse{
		ResolvedAt: now.Format(time.RFC3339),
		Mode:       string(mode),
		Entries:    make([]roster.PresenceEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, roster.PresenceEntryResponse{
			Name:              e.Name,
			Location:          e.Location,
			TimeWindow:        e.TimeWindow,
			Role:              e.Role,
			PortableProcedure: e.PortableProcedure,
			Present:           e.Present,
		})
	}
	return resp, nil
}

// resolve walks the roster once. A malformed entry is never dropped
// outright because the default window always applies as a last resort.
func (s *RosterServiceImpl) resolve(
	entries []roster.ScheduleEntry,
	punches []roster.Punch,
	users []roster.UserProfile,
	now time.Time,
	mode roster.FilterMode,
) []roster.PresenceEntry {
	nowMinutes := now.Hour()*60 + now.Minute()
	present := presenceByUser(punches, now.Format("2006-01-02"))

	profiles := make(map[string]roster.UserProfile, len(users))
	for _, u := range users {
		profiles[u.ID] = u
	}

	seen := make(map[string]bool)
	var out []roster.PresenceEntry
	for _, entry := range entries {
		if !appliesToday(entry, now) {
			continue
		}

		var active []roster.ShiftWindow
		for _, w := range s.windows(entry) {
			if timeparse.InWindow(w.Start, w.End, nowMinutes) {
				active = append(active, w)
			}
		}
		if len(active) == 0 {
			continue
		}

		profile := profiles[entry.UserID]
		name := entry.StaffName
		if profile.Name != "" {
			name = profile.Name
		}
		name, markedName := stripPortableMarker(name)
		_, markedNote := stripPortableMarker(entry.Note)

		isPresent := present[entry.UserID]
		if mode == roster.FilterOnDuty && !isPresent && !strings.EqualFold(profile.Role, roster.RoleDoctor) {
			continue
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		out = append(out, roster.PresenceEntry{
			Name:              name,
			Location:          entry.LocationID,
			TimeWindow:        windowLabel(active),
			Role:              profile.Role,
			PortableProcedure: markedName || markedNote,
			Present:           isPresent,
		})
	}
	return out
}

// windows materializes an entry's shift windows: explicit shifts first,
// then ranges parsed from the note, then the default window.
func (s *RosterServiceImpl) windows(entry roster.ScheduleEntry) []roster.ShiftWindow {
	if len(entry.Shifts) > 0 {
		return entry.Shifts
	}
	parsed := timeparse.ParseMultiShifts(entry.Note)
	if len(parsed) > 0 {
		windows := make([]roster.ShiftWindow, 0, len(parsed))
		for _, r := range parsed {
			windows = append(windows, roster.ShiftWindow{Start: r.Start, End: r.End})
		}
		return windows
	}
	return []roster.ShiftWindow{s.defaultShift}
}

// appliesToday decides whether a roster row is in effect on the given
// day. Dated entries match their date exactly. Recurring entries follow
// the Friday/Holiday substring convention used by the scheduling staff:
// a row mentioning Friday runs only on Fridays, and rows mentioning
// Friday or Holiday are skipped on ordinary days.
func appliesToday(entry roster.ScheduleEntry, now time.Time) bool {
	today := now.Format("2006-01-02")
	if entry.Date != nil && *entry.Date != "" {
		return *entry.Date == today
	}

	// ISO dates compare correctly as strings.
	if entry.ValidFrom != nil && *entry.ValidFrom != "" && today < *entry.ValidFrom {
		return false
	}
	if entry.ValidTo != nil && *entry.ValidTo != "" && today > *entry.ValidTo {
		return false
	}

	marker := strings.ToLower(entry.LocationID + " " + entry.Note)
	mentionsFriday := strings.Contains(marker, "friday")
	mentionsHoliday := strings.Contains(marker, "holiday")
	if now.Weekday() == time.Friday {
		return mentionsFriday
	}
	return !mentionsFriday && !mentionsHoliday
}

// presenceByUser reduces today's punch log to a per-user presence flag.
// A user is present iff their most recent punch today is an IN; a
// dangling IN with no matching OUT still counts as presence.
func presenceByUser(punches []roster.Punch, today string) map[string]bool {
	byUser := make(map[string][]roster.Punch)
	for _, p := range punches {
		if p.Date != today {
			continue
		}
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}

	present := make(map[string]bool, len(byUser))
	for userID, log := range byUser {
		sort.Slice(log, func(i, j int) bool {
			return log[i].Timestamp.Before(log[j].Timestamp)
		})
		present[userID] = log[len(log)-1].Type == roster.PunchIn
	}
	return present
}

// The Portable & Procedure duty marker appears in names and notes as
// (PP), [PP], {PP} or the bare word.
var portableMarkerRe = regexp.MustCompile(`(?i)\(\s*pp\s*\)|\[\s*pp\s*\]|\{\s*pp\s*\}|\bpp\b`)

// stripPortableMarker removes the PP marker from s and reports whether
// one was found.
func stripPortableMarker(s string) (string, bool) {
	if !portableMarkerRe.MatchString(s) {
		return strings.TrimSpace(s), false
	}
	cleaned := portableMarkerRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(cleaned), " "), true
}

func windowLabel(windows []roster.ShiftWindow) string {
	labels := make([]string, 0, len(windows))
	for _, w := range windows {
		labels = append(labels, w.Start+"-"+w.End)
	}
	return strings.Join(labels, " / ")
}
