package core

import (
	"context"

	"gotalk/internal/metrics"
	"gotalk/internal/transport"
	"gotalk/util"
)

// ProbeMode checks that an endpoint can be established and tears it
// down again without exchanging any data (-z).  For udp this only
// proves a socket could be created, since nothing is sent.
type ProbeMode struct {
	Resolver    Resolver
	Establisher Establisher
	Kind        transport.Kind
	Host        string
	Service     string
	Logger      *util.Logger
	Metrics     *metrics.Collector
}

// Run resolves, establishes and reports the result.
func (m *ProbeMode) Run(ctx context.Context) error {
	candidates, err := m.Resolver.Resolve(ctx, m.Host, m.Service, m.Kind)
	if err != nil {
		m.Metrics.RecordError(err.Error())
		return err
	}

	m.Logger.Verbose("probing %s - %d candidate(s)", m.Host, len(candidates))

	ep, err := m.Establisher.Establish(ctx, m.Kind, candidates)
	if err != nil {
		m.Metrics.RecordError(err.Error())
		return err
	}
	defer func() {
		if err := ep.Close(); err != nil {
			m.Logger.Debug("close %s: %v", ep.Peer(), err)
		}
		m.Metrics.EndpointClosed()
	}()

	peer := ep.Peer()
	if m.Kind == transport.Reliable {
		m.Logger.Info("%s %s/%s open", peer.Host(), m.Service, m.Kind)
	} else {
		m.Logger.Info("%s %s/%s socket ready", peer.Host(), m.Service, m.Kind)
	}
	return nil
}
