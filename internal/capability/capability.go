// Package capability defines what happens over an established
// endpoint.  Each Capability is one session driver: [Chat] runs the
// stream state machine (banner, then interactive sends) and [Talker]
// runs the datagram state machine.  Both operate on a Session rather
// than a raw socket, which keeps them testable and decoupled from
// transport details.
package capability

import (
	"context"

	"gotalk/config"
	"gotalk/internal/session"
)

// Capability drives a single session according to a specific
// behaviour.
type Capability interface {
	// Handle runs the driver against the given session until the
	// sentinel is seen, the input is exhausted, or a fatal error
	// occurs.  It never closes the endpoint; teardown belongs to the
	// caller.
	Handle(ctx context.Context, sess *session.Session) error
}

func sentinelOr(s string) string {
	if s == "" {
		return config.DefaultSentinel
	}
	return s
}
