package roster

import (
	"errors"
	"time"

	"github.com/medroster/roster-backend-go/internal/pkg/validator"
)

// ========================================
// ROSTER SNAPSHOT DTOs
// ========================================

type ShiftWindowPayload struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ScheduleEntryPayload struct {
	ID         string               `json:"id,omitempty"`
	UserID     string               `json:"user_id"`
	Date       *string              `json:"date,omitempty"` // YYYY-MM-DD
	LocationID string               `json:"location_id,omitempty"`
	Note       string               `json:"note,omitempty"`
	Shifts     []ShiftWindowPayload `json:"shifts,omitempty"`
	ValidFrom  *string              `json:"valid_from,omitempty"` // YYYY-MM-DD
	ValidTo    *string              `json:"valid_to,omitempty"`   // YYYY-MM-DD
	StaffName  string               `json:"staff_name,omitempty"`
}

type PunchPayload struct {
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Type      string    `json:"type"` // IN or OUT
	Timestamp time.Time `json:"timestamp"`
}

type UserPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// SnapshotPayload is a full roster/punch/user snapshot, either posted
// inline with a presence request or stored for the live endpoint.
type SnapshotPayload struct {
	Schedules []ScheduleEntryPayload `json:"schedules"`
	Punches   []PunchPayload         `json:"punches"`
	Users     []UserPayload          `json:"users"`
}

func (s *SnapshotPayload) Validate() error {
	var errs validator.ValidationErrors

	for i, entry := range s.Schedules {
		if validator.IsEmpty(entry.UserID) && validator.IsEmpty(entry.StaffName) {
			errs = append(errs, validator.ValidationError{
				Field:   "schedules[" + validator.Itoa(i) + "].user_id",
				Message: "user_id or staff_name is required",
			})
		}
		for field, value := range map[string]*string{"date": entry.Date, "valid_from": entry.ValidFrom, "valid_to": entry.ValidTo} {
			if value != nil && *value != "" {
				if _, valid := validator.IsValidDate(*value); !valid {
					errs = append(errs, validator.ValidationError{
						Field:   "schedules[" + validator.Itoa(i) + "]." + field,
						Message: field + " must be in YYYY-MM-DD format",
					})
				}
			}
		}
	}

	for i, punch := range s.Punches {
		if validator.IsEmpty(punch.UserID) {
			errs = append(errs, validator.ValidationError{
				Field:   "punches[" + validator.Itoa(i) + "].user_id",
				Message: "user_id is required",
			})
		}
		if !validator.IsInSlice(punch.Type, []string{string(PunchIn), string(PunchOut)}) {
			errs = append(errs, validator.ValidationError{
				Field:   "punches[" + validator.Itoa(i) + "].type",
				Message: "type must be one of: IN, OUT",
			})
		}
		if punch.Date != "" {
			if _, valid := validator.IsValidDate(punch.Date); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   "punches[" + validator.Itoa(i) + "].date",
					Message: "date must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Entries converts the payload schedules to domain entities.
func (s *SnapshotPayload) Entries() []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, len(s.Schedules))
	for _, p := range s.Schedules {
		entry := ScheduleEntry{
			ID:         p.ID,
			UserID:     p.UserID,
			Date:       p.Date,
			LocationID: p.LocationID,
			Note:       p.Note,
			ValidFrom:  p.ValidFrom,
			ValidTo:    p.ValidTo,
			StaffName:  p.StaffName,
		}
		for _, w := range p.Shifts {
			entry.Shifts = append(entry.Shifts, ShiftWindow{Start: w.Start, End: w.End})
		}
		entries = append(entries, entry)
	}
	return entries
}

// PunchLog converts the payload punches to domain entities.
func (s *SnapshotPayload) PunchLog() []Punch {
	punches := make([]Punch, 0, len(s.Punches))
	for _, p := range s.Punches {
		punches = append(punches, Punch{
			UserID:    p.UserID,
			Date:      p.Date,
			Type:      PunchType(p.Type),
			Timestamp: p.Timestamp,
		})
	}
	return punches
}

// Profiles converts the payload users to domain entities.
func (s *SnapshotPayload) Profiles() []UserProfile {
	users := make([]UserProfile, 0, len(s.Users))
	for _, u := range s.Users {
		users = append(users, UserProfile{ID: u.ID, Name: u.Name, Role: u.Role})
	}
	return users
}

// ========================================
// PRESENCE DTOs
// ========================================

type ResolvePresenceRequest struct {
	SnapshotPayload
	Now  *string `json:"now,omitempty"`  // RFC3339; defaults to wall clock
	Mode string  `json:"mode,omitempty"` // on-duty (default) or all
}

func (r *ResolvePresenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Now != nil && *r.Now != "" {
		if _, valid := validator.IsValidDateTime(*r.Now); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "now",
				Message: "now must be an RFC3339 timestamp",
			})
		}
	}

	if r.Mode != "" && !validator.IsInSlice(r.Mode, []string{string(FilterOnDuty), string(FilterAll)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: on-duty, all",
		})
	}

	if err := r.SnapshotPayload.Validate(); err != nil {
		var snapErrs validator.ValidationErrors
		if errors.As(err, &snapErrs) {
			errs = append(errs, snapErrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PresenceEntryResponse struct {
	Name              string `json:"name"`
	Location          string `json:"location,omitempty"`
	TimeWindow        string `json:"time_window"`
	Role              string `json:"role,omitempty"`
	PortableProcedure bool   `json:"portable_procedure"`
	Present           bool   `json:"present"`
}

type PresenceResponse struct {
	ResolvedAt string                  `json:"resolved_at"` // RFC3339
	Mode       string                  `json:"mode"`
	Entries    []PresenceEntryResponse `json:"entries"`
}
