package session

import (
	"context"
	"errors"

	"frontdesk/models"
)

// ErrUnknownSession is returned when a call id has no session yet.
var ErrUnknownSession = errors.New("unknown call session")

// Store holds one conversation state per active call, keyed by the call id
// assigned by the telephony transport. Sessions are owned by the store:
// callers mutate them only through Append/SetState/Evict. Access for
// different call ids never interferes; access for the same call id is
// serialized, so a session's turn order always equals call order.
type Store interface {
	// GetOrCreate returns the session for callID, creating an empty-history
	// session in the greeting state on first access.
	GetOrCreate(ctx context.Context, callID, callerPhone string) (*models.CallSession, error)
	// Append adds one turn to the session history.
	Append(ctx context.Context, callID string, turn models.Turn) error
	// History returns the ordered turns of the session.
	History(ctx context.Context, callID string) ([]models.Turn, error)
	// SetState moves the session to a new dialogue state.
	SetState(ctx context.Context, callID, state string) error
	// Evict removes the session, freeing its memory.
	Evict(ctx context.Context, callID string) error
}
