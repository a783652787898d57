package transport

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

// StreamSocket is an opened, not yet connected, stream socket.
type StreamSocket interface {
	// Connect connects the socket to its candidate.  On success the
	// returned conn owns the socket.
	Connect(ctx context.Context) (net.Conn, error)

	// Close releases a socket that never connected.
	Close() error
}

// Opener creates sockets for candidates.  Implementations include the
// plain [NetOpener] and the SOCKS5-routed [ProxyOpener].
type Opener interface {
	// OpenStream opens a stream socket for c without connecting it.
	OpenStream(ctx context.Context, c Candidate) (StreamSocket, error)

	// OpenDatagram opens a packet socket able to address c.
	OpenDatagram(ctx context.Context, c Candidate) (net.PacketConn, error)
}

// NetOpener opens plain TCP/UDP sockets, optionally binding to a
// specific source port.
type NetOpener struct {
	Timeout   time.Duration // connect timeout (0 = none)
	LocalPort int           // optional source-port binding (0 = ephemeral)
}

// OpenStream prepares a dialer pinned to the candidate's family.
func (o *NetOpener) OpenStream(_ context.Context, c Candidate) (StreamSocket, error) {
	dialer, err := o.dialer()
	if err != nil {
		return nil, err
	}
	return &netStreamSocket{dialer: dialer, cand: c}, nil
}

// dialer returns a stream dialer bound to LocalPort when one is set.
// The local IP is left unspecified so it suits either family.
func (o *NetOpener) dialer() (*net.Dialer, error) {
	d := &net.Dialer{Timeout: o.Timeout}
	if o.LocalPort > 0 {
		a, err := net.ResolveTCPAddr("tcp", o.local())
		if err != nil {
			return nil, fmt.Errorf("resolve local addr: %w", err)
		}
		d.LocalAddr = a
	}
	return d, nil
}

// OpenDatagram binds an unconnected UDP socket of the candidate's
// family.
func (o *NetOpener) OpenDatagram(ctx context.Context, c Candidate) (net.PacketConn, error) {
	var lc net.ListenConfig
	return lc.ListenPacket(ctx, c.Network(), o.local())
}

func (o *NetOpener) local() string {
	if o.LocalPort > 0 {
		return ":" + strconv.Itoa(o.LocalPort)
	}
	return ":0"
}

type netStreamSocket struct {
	dialer *net.Dialer
	cand   Candidate
}

func (s *netStreamSocket) Connect(ctx context.Context) (net.Conn, error) {
	return s.dialer.DialContext(ctx, s.cand.Network(), s.cand.Addr.String())
}

// Close is a no-op: a net.Dialer releases its descriptor itself when
// the connect fails.
func (s *netStreamSocket) Close() error { return nil }
