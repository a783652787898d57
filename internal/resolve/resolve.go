// Package resolve turns a (host, service) pair into the ordered list of
// candidate addresses the establisher walks.
package resolve

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strconv"

	tkerr "gotalk/internal/errors"
	"gotalk/internal/transport"
	"gotalk/util"
)

// Address families accepted by [Resolver.Family].
const (
	FamilyAny = "any"
	FamilyIP4 = "ip4"
	FamilyIP6 = "ip6"
)

// LookupIPFunc resolves host to addresses.  network is "ip", "ip4" or
// "ip6".  It matches net.Resolver.LookupNetIP.
type LookupIPFunc func(ctx context.Context, network, host string) ([]netip.Addr, error)

// LookupPortFunc maps a service name to a port.  It matches
// net.Resolver.LookupPort.
type LookupPortFunc func(ctx context.Context, network, service string) (int, error)

// Resolver produces candidates in resolver order, restricted to one
// family unless Family is "any".
type Resolver struct {
	Family     string
	NoDNS      bool // numeric hosts only
	LookupIP   LookupIPFunc
	LookupPort LookupPortFunc
	Logger     *util.Logger
}

// New returns a Resolver backed by net.DefaultResolver.
func New(family string, noDNS bool, logger *util.Logger) *Resolver {
	return &Resolver{
		Family:     family,
		NoDNS:      noDNS,
		LookupIP:   net.DefaultResolver.LookupNetIP,
		LookupPort: net.DefaultResolver.LookupPort,
		Logger:     logger,
	}
}

// Resolve maps host and service onto candidates for kind.  Any failure,
// including an empty result, is an *errors.ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, host, service string, kind transport.Kind) ([]transport.Candidate, error) {
	port, err := r.port(ctx, service, kind)
	if err != nil {
		return nil, tkerr.Resolution(host, service, err)
	}

	addrs, err := r.addrs(ctx, host)
	if err != nil {
		return nil, tkerr.Resolution(host, service, err)
	}

	seen := make(map[netip.Addr]bool, len(addrs))
	var out []transport.Candidate
	for _, a := range addrs {
		a = a.Unmap()
		if !r.wants(a) || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, transport.NewCandidate(kind, a, port))
	}

	if len(out) == 0 {
		return nil, tkerr.Resolution(host, service, fmt.Errorf("%w for family %s", tkerr.ErrNoCandidates, r.family()))
	}

	r.Logger.WithField("host", host).WithField("candidates", len(out)).
		Debug("resolved %s", net.JoinHostPort(host, service))
	return out, nil
}

func (r *Resolver) port(ctx context.Context, service string, kind transport.Kind) (int, error) {
	if p, err := strconv.Atoi(service); err == nil {
		if p < 0 || p > 65535 {
			return 0, fmt.Errorf("port %d out of range 0-65535", p)
		}
		return p, nil
	}
	if r.LookupPort == nil {
		return 0, fmt.Errorf("unknown service %q", service)
	}
	return r.LookupPort(ctx, kind.Network(), service)
}

func (r *Resolver) addrs(ctx context.Context, host string) ([]netip.Addr, error) {
	if a, err := netip.ParseAddr(host); err == nil {
		return []netip.Addr{a}, nil
	}
	if r.NoDNS {
		return nil, fmt.Errorf("cannot parse %q as an IP address (DNS disabled with -n)", host)
	}
	if r.LookupIP == nil {
		return nil, fmt.Errorf("no resolver configured for %q", host)
	}

	network := "ip"
	if f := r.family(); f != FamilyAny {
		network = f
	}
	return r.LookupIP(ctx, network, host)
}

func (r *Resolver) wants(a netip.Addr) bool {
	switch r.family() {
	case FamilyIP4:
		return a.Is4()
	case FamilyIP6:
		return a.Is6()
	default:
		return a.IsValid()
	}
}

func (r *Resolver) family() string {
	if r.Family == "" {
		return FamilyAny
	}
	return r.Family
}
