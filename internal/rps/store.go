package rps

import "context"

// Store keeps in-flight sessions between webhook events. Implementations
// must make Take atomic: of two racing callers, exactly one receives the
// session and the other ErrSessionNotFound. That property stands in for
// a lock around the choose step.
type Store interface {
	// Create stores a new session; ErrDuplicateSession if the id is live.
	Create(ctx context.Context, s *Session) error
	// Get returns the session or ErrSessionNotFound. No mutation.
	Get(ctx context.Context, id string) (*Session, error)
	// Take atomically removes and returns the session, or
	// ErrSessionNotFound if it is already gone.
	Take(ctx context.Context, id string) (*Session, error)
	// Delete removes the session; no-op when absent.
	Delete(ctx context.Context, id string) error
	// Count reports the number of live sessions (health reporting).
	Count(ctx context.Context) (int, error)
	Close() error
}
