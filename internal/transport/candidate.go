package transport

import (
	"net"
	"net/netip"

	"gotalk/util"
)

// Candidate is one resolved address eligible for an establishment
// attempt.
type Candidate struct {
	Family   string // "ip4" or "ip6"
	SockType string // "stream" or "dgram"
	Protocol string // "tcp" or "udp"
	Addr     net.Addr
}

// NewCandidate builds the candidate for ip:port under the given kind.
// IPv4-mapped IPv6 addresses are treated as IPv4.
func NewCandidate(kind Kind, ip netip.Addr, port int) Candidate {
	ip = ip.Unmap()
	c := Candidate{Family: "ip6", Protocol: kind.Network()}
	if ip.Is4() {
		c.Family = "ip4"
	}

	addr := netip.AddrPortFrom(ip, uint16(port))
	switch kind {
	case Connectionless:
		c.SockType = "dgram"
		c.Addr = net.UDPAddrFromAddrPort(addr)
	default:
		c.SockType = "stream"
		c.Addr = net.TCPAddrFromAddrPort(addr)
	}
	return c
}

// Network returns the family-qualified Go network name, e.g. "tcp6".
func (c Candidate) Network() string {
	if c.Family == "ip4" {
		return c.Protocol + "4"
	}
	return c.Protocol + "6"
}

// Host returns the printable address without the port.
func (c Candidate) Host() string {
	h, _ := util.AddrHostPort(c.Addr)
	return h
}

// Port returns the destination port.
func (c Candidate) Port() int {
	_, p := util.AddrHostPort(c.Addr)
	return p
}

func (c Candidate) String() string {
	if c.Addr == nil {
		return "<nil>"
	}
	return c.Addr.String()
}
