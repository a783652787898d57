package transport

import (
	"net"
	"time"

	tkerr "gotalk/internal/errors"
)

// Endpoint is the live, exclusively-owned handle a session talks over.
// Close releases the underlying socket once; later calls are no-ops.
type Endpoint interface {
	Send(p []byte) (int, error)
	Receive(p []byte) (int, error)
	SetDeadline(t time.Time) error
	Peer() Candidate
	Close() error
}

// StreamEndpoint is a connected byte stream.
type StreamEndpoint struct {
	conn   net.Conn
	peer   Candidate
	closed bool
}

// NewStreamEndpoint takes ownership of conn.
func NewStreamEndpoint(conn net.Conn, peer Candidate) *StreamEndpoint {
	return &StreamEndpoint{conn: conn, peer: peer}
}

// Send writes p to the stream as-is.
func (e *StreamEndpoint) Send(p []byte) (int, error) {
	if e.closed {
		return 0, tkerr.ErrEndpointClosed
	}
	return e.conn.Write(p)
}

// Receive performs a single read of at most len(p) bytes.
func (e *StreamEndpoint) Receive(p []byte) (int, error) {
	if e.closed {
		return 0, tkerr.ErrEndpointClosed
	}
	return e.conn.Read(p)
}

func (e *StreamEndpoint) SetDeadline(t time.Time) error { return e.conn.SetDeadline(t) }

func (e *StreamEndpoint) Peer() Candidate { return e.peer }

// Close closes the connection the first time it is called.
func (e *StreamEndpoint) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return e.conn.Close()
}

// DatagramEndpoint is an unconnected packet socket paired with the
// fixed target every datagram is addressed to.
type DatagramEndpoint struct {
	conn   net.PacketConn
	target net.Addr
	peer   Candidate
	closed bool
}

// NewDatagramEndpoint takes ownership of conn; datagrams go to peer.Addr.
func NewDatagramEndpoint(conn net.PacketConn, peer Candidate) *DatagramEndpoint {
	return &DatagramEndpoint{conn: conn, target: peer.Addr, peer: peer}
}

// Send transmits p as one datagram to the target.  An empty p sends a
// zero-length datagram.
func (e *DatagramEndpoint) Send(p []byte) (int, error) {
	if e.closed {
		return 0, tkerr.ErrEndpointClosed
	}
	return e.conn.WriteTo(p, e.target)
}

// Receive reads one datagram from any source.
func (e *DatagramEndpoint) Receive(p []byte) (int, error) {
	if e.closed {
		return 0, tkerr.ErrEndpointClosed
	}
	n, _, err := e.conn.ReadFrom(p)
	return n, err
}

func (e *DatagramEndpoint) SetDeadline(t time.Time) error { return e.conn.SetDeadline(t) }

func (e *DatagramEndpoint) Peer() Candidate { return e.peer }

// Target returns the retained destination address.
func (e *DatagramEndpoint) Target() net.Addr { return e.target }

// Close closes the socket the first time it is called.
func (e *DatagramEndpoint) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return e.conn.Close()
}
