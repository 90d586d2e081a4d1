package roster

import (
	"context"
)

// RosterService defines business logic for live presence resolution
type RosterService interface {
	// ResolvePresence computes who is scheduled to be working at the
	// request's instant and whether each person is actually present
	ResolvePresence(ctx context.Context, req ResolvePresenceRequest) (PresenceResponse, error)
}
