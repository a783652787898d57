package util

import (
	"net"
	"net/netip"
)

// IsIPLiteral reports whether host is a numeric IPv4 or IPv6 address,
// including scoped IPv6 forms such as "fe80::1%eth0".
func IsIPLiteral(host string) bool {
	_, err := netip.ParseAddr(host)
	return err == nil
}

// AddrHostPort splits a TCP or UDP address into its printable host and
// numeric port.  Other address types yield their String() and port 0.
func AddrHostPort(addr net.Addr) (string, int) {
	switch a := addr.(type) {
	case *net.TCPAddr:
		return ipString(a.IP, a.Zone), a.Port
	case *net.UDPAddr:
		return ipString(a.IP, a.Zone), a.Port
	case nil:
		return "", 0
	default:
		return addr.String(), 0
	}
}

func ipString(ip net.IP, zone string) string {
	s := ip.String()
	if zone != "" {
		s += "%" + zone
	}
	return s
}

// FindFreePort returns an available TCP port on 127.0.0.1.
func FindFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
