package attendance

import (
	"context"
)

// AttendanceService defines business logic for historical attendance
// analysis
type AttendanceService interface {
	// Reconcile pairs raw daily punches into coherent shifts, stitching
	// shifts that cross midnight onto the day they started, then scores
	// worked hours, overtime, shortfall and lateness per employee per day
	// and backfills absences over the observed date span.
	Reconcile(ctx context.Context, req ReconcileRequest) (ReconcileResponse, error)
}
