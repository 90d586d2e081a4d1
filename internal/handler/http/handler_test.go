package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medroster/roster-backend-go/internal/config"
	"github.com/medroster/roster-backend-go/internal/domain/roster"
	"github.com/medroster/roster-backend-go/internal/pkg/snapshot"
	attendanceService "github.com/medroster/roster-backend-go/internal/service/attendance"
	rosterService "github.com/medroster/roster-backend-go/internal/service/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() http.Handler {
	cfg := &config.Config{
		App: config.AppConfig{
			Env:            "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
	store := snapshot.NewStore()
	attendanceHandler := NewAttendanceHandler(attendanceService.NewAttendanceService(cfg.Policy()))
	rosterHandler := NewRosterHandler(
		rosterService.NewRosterService(roster.DefaultShift, roster.FilterOnDuty),
		store,
		string(roster.FilterAll),
	)
	return NewRouter(cfg, attendanceHandler, rosterHandler)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestReconcileEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/attendance/reconcile", map[string]interface{}{
		"records": []map[string]interface{}{
			{"employee": "Ahmed", "date": "2024-01-15", "clock_in": "08:00", "clock_out": "17:00"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			RunID     string `json:"run_id"`
			Employees []struct {
				Name string `json:"name"`
			} `json:"employees"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.RunID)
	require.Len(t, body.Data.Employees, 1)
	assert.Equal(t, "Ahmed", body.Data.Employees[0].Name)
}

func TestReconcileEndpoint_EmptyBody(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/attendance/reconcile", map[string]interface{}{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestResolvePresenceEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/roster/presence", map[string]interface{}{
		"schedules": []map[string]interface{}{
			{"user_id": "u1", "location_id": "ICU", "note": "9am-5pm"},
		},
		"users": []map[string]interface{}{
			{"id": "u1", "name": "Dr. Lina", "role": "doctor"},
		},
		"now":  "2024-01-16T10:00:00Z",
		"mode": "all",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Mode    string `json:"mode"`
			Entries []struct {
				Name       string `json:"name"`
				TimeWindow string `json:"time_window"`
			} `json:"entries"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "all", body.Data.Mode)
	require.Len(t, body.Data.Entries, 1)
	assert.Equal(t, "Dr. Lina", body.Data.Entries[0].Name)
	assert.Equal(t, "09:00-17:00", body.Data.Entries[0].TimeWindow)
}

func TestPresenceEndpoint_InvalidMode(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/roster/presence", map[string]interface{}{
		"mode": "sideways",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSnapshotFlow(t *testing.T) {
	router := newTestRouter()

	// Nothing uploaded yet.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/roster/presence?mode=all", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Two round-the-clock rows; exactly one applies on any given weekday.
	put := doJSON(t, router, http.MethodPut, "/api/v1/roster/snapshot", map[string]interface{}{
		"schedules": []map[string]interface{}{
			{"user_id": "u1", "location_id": "ER",
				"shifts": []map[string]string{{"start": "00:00", "end": "24:00"}}},
			{"user_id": "u2", "location_id": "ER Friday cover",
				"shifts": []map[string]string{{"start": "00:00", "end": "24:00"}}},
		},
		"users": []map[string]interface{}{
			{"id": "u1", "name": "Dr. Omar", "role": "doctor"},
			{"id": "u2", "name": "Dr. Huda", "role": "doctor"},
		},
	})
	require.Equal(t, http.StatusCreated, put.Code)

	var created struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(put.Body.Bytes(), &created))
	version := created.Data["version"]
	require.NotEmpty(t, version)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/roster/presence?mode=all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, version, rec.Header().Get("X-Snapshot-Version"))

	var body struct {
		Data struct {
			Entries []struct {
				Name string `json:"name"`
			} `json:"entries"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Entries, 1)
}

func TestSnapshotEndpoint_RejectsBadPunchType(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPut, "/api/v1/roster/snapshot", map[string]interface{}{
		"punches": []map[string]interface{}{
			{"user_id": "u1", "date": "2024-01-16", "type": "SIDEWAYS"},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
