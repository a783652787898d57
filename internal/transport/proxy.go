package transport

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"golang.org/x/net/proxy"
)

// ProxyOpener routes stream connects through a SOCKS5 proxy.  The
// candidate address is resolved locally and handed to the proxy as a
// numeric destination, so establishment order is unchanged.
type ProxyOpener struct {
	URL     *url.URL
	Forward *NetOpener // how to reach the proxy itself
}

// NewProxyOpener validates raw ("socks5://[user:pass@]host:port") and
// returns an opener for it.
func NewProxyOpener(raw string, forward *NetOpener) (*ProxyOpener, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("proxy url: %w", err)
	}
	if u.Scheme != "socks5" {
		return nil, fmt.Errorf("unsupported proxy scheme %q (want socks5)", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("proxy url %q has no host", raw)
	}
	if forward == nil {
		forward = &NetOpener{}
	}
	return &ProxyOpener{URL: u, Forward: forward}, nil
}

// OpenStream builds the proxy dialer for one candidate.  The hop to
// the proxy honours the forward opener's timeout and source port.
func (o *ProxyOpener) OpenStream(_ context.Context, c Candidate) (StreamSocket, error) {
	forward, err := o.Forward.dialer()
	if err != nil {
		return nil, err
	}
	d, err := proxy.FromURL(o.URL, forward)
	if err != nil {
		return nil, fmt.Errorf("socks5 %s: %w", o.URL.Host, err)
	}
	return &proxyStreamSocket{dialer: d, cand: c}, nil
}

// OpenDatagram always fails: SOCKS5 UDP ASSOCIATE is not supported.
func (o *ProxyOpener) OpenDatagram(context.Context, Candidate) (net.PacketConn, error) {
	return nil, fmt.Errorf("udp is not supported through a socks5 proxy")
}

type proxyStreamSocket struct {
	dialer proxy.Dialer
	cand   Candidate
}

func (s *proxyStreamSocket) Connect(ctx context.Context) (net.Conn, error) {
	if cd, ok := s.dialer.(proxy.ContextDialer); ok {
		return cd.DialContext(ctx, s.cand.Network(), s.cand.Addr.String())
	}
	return s.dialer.Dial(s.cand.Network(), s.cand.Addr.String())
}

func (s *proxyStreamSocket) Close() error { return nil }
