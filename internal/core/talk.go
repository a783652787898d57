package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"gotalk/internal/capability"
	"gotalk/internal/metrics"
	"gotalk/internal/session"
	"gotalk/internal/transport"
	"gotalk/util"
)

// TalkMode resolves the destination, establishes an endpoint and runs
// the session driver on it: the default mode.
type TalkMode struct {
	Resolver    Resolver
	Establisher Establisher
	Capability  capability.Capability
	Kind        transport.Kind
	Host        string
	Service     string
	Timeout     time.Duration
	Logger      *util.Logger
	Metrics     *metrics.Collector

	// Stats prints a JSON metrics snapshot to Stderr after teardown.
	Stats bool

	// Hint is shown once on Stderr when Stdin is a terminal.
	Hint string

	// Stdin/Stdout/Stderr default to the process streams when nil.
	// Override in tests for deterministic I/O.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (m *TalkMode) stdin() io.Reader {
	if m.Stdin != nil {
		return m.Stdin
	}
	return os.Stdin
}

func (m *TalkMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

func (m *TalkMode) stderr() io.Writer {
	if m.Stderr != nil {
		return m.Stderr
	}
	return os.Stderr
}

// Run performs one complete session.  Once an endpoint exists it is
// released exactly once on every return path.
func (m *TalkMode) Run(ctx context.Context) error {
	m.Logger.Verbose("resolving %s port %s (%s)", m.Host, m.Service, m.Kind)

	candidates, err := m.Resolver.Resolve(ctx, m.Host, m.Service, m.Kind)
	if err != nil {
		m.Metrics.RecordError(err.Error())
		return err
	}

	ep, err := m.Establisher.Establish(ctx, m.Kind, candidates)
	if err != nil {
		m.Metrics.RecordError(err.Error())
		return err
	}
	defer m.teardown(ep)

	out := m.stdout()
	peer := ep.Peer()
	if m.Kind == transport.Reliable {
		fmt.Fprintf(out, "Connected with %s at port %s\n\n", peer.Host(), m.Service)
	} else {
		fmt.Fprintf(out, "Sending UDP messages to %s at port %s\n\n", peer.Host(), m.Service)
	}

	in := m.stdin()
	if m.Hint != "" && util.IsTerminal(in) {
		fmt.Fprintln(m.stderr(), m.Hint)
	}

	sess := session.New(ep, util.NewTokenReader(in), out, m.Logger)
	sess.Metrics = m.Metrics
	sess.Timeout = m.Timeout

	return m.Capability.Handle(ctx, sess)
}

func (m *TalkMode) teardown(ep transport.Endpoint) {
	host := ep.Peer().Host()
	if err := ep.Close(); err != nil {
		m.Logger.Debug("close %s: %v", ep.Peer(), err)
	}
	m.Metrics.EndpointClosed()

	if m.Kind == transport.Reliable {
		fmt.Fprintf(m.stdout(), "\nDisconnected with %s\n", host)
	} else {
		fmt.Fprintf(m.stdout(), "\nStopped sending the UDP messages to %s\n", host)
	}

	if m.Stats {
		fmt.Fprintln(m.stderr(), m.Metrics.JSON())
	}
}
