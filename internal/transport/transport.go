// Package transport provides the abstractions for endpoint
// establishment.  Transports handle the "how" of data movement: which
// kind of socket is opened, how it is connected, and how bytes reach
// the peer.  What is sent over the endpoint is the capability layer's
// job.
package transport

import (
	"fmt"

	tkerr "gotalk/internal/errors"
)

// Kind selects the transport for a whole process lifetime.
type Kind int

const (
	// Reliable is a connection-oriented byte stream (TCP).
	Reliable Kind = iota + 1
	// Connectionless is a best-effort datagram service (UDP).
	Connectionless
)

// ParseKind maps the CLI selector onto a Kind.  The match is exact and
// case-sensitive.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "tcp":
		return Reliable, nil
	case "udp":
		return Connectionless, nil
	default:
		return 0, fmt.Errorf("%w %q (want tcp or udp)", tkerr.ErrUnknownTransport, s)
	}
}

// Network returns the base Go network name ("tcp" or "udp").
func (k Kind) Network() string {
	switch k {
	case Reliable:
		return "tcp"
	case Connectionless:
		return "udp"
	default:
		return ""
	}
}

func (k Kind) String() string {
	if n := k.Network(); n != "" {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
