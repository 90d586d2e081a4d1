package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/medroster/roster-backend-go/internal/domain/roster"
	"github.com/medroster/roster-backend-go/internal/handler/http/response"
	"github.com/medroster/roster-backend-go/internal/pkg/snapshot"
)

type RosterHandler interface {
	ResolvePresence(w http.ResponseWriter, r *http.Request)
	PutSnapshot(w http.ResponseWriter, r *http.Request)
	GetPresence(w http.ResponseWriter, r *http.Request)
}

type rosterHandlerImpl struct {
	rosterService roster.RosterService
	store         *snapshot.Store
	defaultMode   string
}

func NewRosterHandler(rosterService roster.RosterService, store *snapshot.Store, defaultMode string) RosterHandler {
	return &rosterHandlerImpl{
		rosterService: rosterService,
		store:         store,
		defaultMode:   defaultMode,
	}
}

// ResolvePresence implements RosterHandler. The full snapshot travels in
// the request body, so the call is self-contained and stateless.
func (h *rosterHandlerImpl) ResolvePresence(w http.ResponseWriter, r *http.Request) {
	var req roster.ResolvePresenceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode presence request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.rosterService.ResolvePresence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PutSnapshot implements RosterHandler.
func (h *rosterHandlerImpl) PutSnapshot(w http.ResponseWriter, r *http.Request) {
	var payload roster.SnapshotPayload

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		slog.Error("Failed to decode snapshot", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := payload.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	version := h.store.Set(payload)
	slog.Info("Roster snapshot replaced",
		"version", version,
		"schedules", len(payload.Schedules),
		"punches", len(payload.Punches),
		"users", len(payload.Users))

	response.Created(w, "Snapshot stored", map[string]string{"version": version})
}

// GetPresence implements RosterHandler. It resolves against the stored
// snapshot, which must have been uploaded first.
func (h *rosterHandlerImpl) GetPresence(w http.ResponseWriter, r *http.Request) {
	payload, version, ok := h.store.Get()
	if !ok {
		response.NotFound(w, "No roster snapshot uploaded")
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = h.defaultMode
	}

	req := roster.ResolvePresenceRequest{
		SnapshotPayload: payload,
		Mode:            mode,
	}

	result, err := h.rosterService.ResolvePresence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("X-Snapshot-Version", version)
	response.Success(w, result)
}
