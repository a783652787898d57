// Package transporttest provides an in-memory Endpoint for driver and
// mode tests.
package transporttest

import (
	"net/netip"
	"time"

	tkerr "gotalk/internal/errors"
	"gotalk/internal/transport"
)

// Endpoint records every operation performed on it.
type Endpoint struct {
	// Banner is returned by the first Receive, truncated to the
	// caller's buffer.  RecvErr, when set, is returned instead.
	Banner  []byte
	RecvErr error

	// SendErr is returned by the send whose 1-based index is FailOn
	// (0 = every send).
	SendErr error
	FailOn  int

	PeerAddr transport.Candidate

	Recvs     int
	Sent      [][]byte
	Closes    int
	Deadlines []time.Time
}

// New returns an Endpoint whose peer is 127.0.0.1:port of the given kind.
func New(kind transport.Kind, port int) *Endpoint {
	return &Endpoint{PeerAddr: transport.NewCandidate(kind, netip.MustParseAddr("127.0.0.1"), port)}
}

func (e *Endpoint) Send(p []byte) (int, error) {
	if e.Closes > 0 {
		return 0, tkerr.ErrEndpointClosed
	}
	attempt := len(e.Sent) + 1
	if e.SendErr != nil && (e.FailOn == 0 || e.FailOn == attempt) {
		return 0, e.SendErr
	}
	e.Sent = append(e.Sent, append([]byte(nil), p...))
	return len(p), nil
}

func (e *Endpoint) Receive(p []byte) (int, error) {
	if e.Closes > 0 {
		return 0, tkerr.ErrEndpointClosed
	}
	e.Recvs++
	if e.RecvErr != nil {
		return 0, e.RecvErr
	}
	return copy(p, e.Banner), nil
}

func (e *Endpoint) SetDeadline(t time.Time) error {
	e.Deadlines = append(e.Deadlines, t)
	return nil
}

func (e *Endpoint) Peer() transport.Candidate { return e.PeerAddr }

func (e *Endpoint) Close() error {
	e.Closes++
	return nil
}

// Payloads returns the sent payloads as strings.
func (e *Endpoint) Payloads() []string {
	out := make([]string, len(e.Sent))
	for i, p := range e.Sent {
		out[i] = string(p)
	}
	return out
}
