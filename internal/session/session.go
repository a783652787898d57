// Package session represents a single endpoint lifecycle, binding the
// established endpoint with the token input, the status writer and
// shared instrumentation.
//
// Sessions decouple the drivers from concrete I/O sources: a driver
// doesn't need to know whether tokens come from os.Stdin or a test
// fixture, it just pulls from the session's Input.
package session

import (
	"fmt"
	"io"
	"time"

	tkerr "gotalk/internal/errors"
	"gotalk/internal/metrics"
	"gotalk/internal/transport"
	"gotalk/util"
)

// Source is a lazy sequence of input tokens.  Next returns io.EOF once
// the sequence is exhausted.
type Source interface {
	Next() (string, error)
}

// Session encapsulates the runtime context for a single endpoint.
type Session struct {
	Endpoint transport.Endpoint
	Input    Source
	Stdout   io.Writer
	Logger   *util.Logger
	Metrics  *metrics.Collector

	// Timeout bounds each Send and Receive.  Zero blocks indefinitely.
	Timeout time.Duration
}

// New creates a Session bound to the given endpoint and I/O pair.
func New(ep transport.Endpoint, input Source, stdout io.Writer, logger *util.Logger) *Session {
	return &Session{
		Endpoint: ep,
		Input:    input,
		Stdout:   stdout,
		Logger:   logger,
	}
}

// Send transmits p over the endpoint and records it.
func (s *Session) Send(p []byte) (int, error) {
	if err := s.arm(); err != nil {
		return 0, err
	}
	n, err := s.Endpoint.Send(p)
	if err != nil {
		s.fail("send", err)
		return n, err
	}
	s.Metrics.MessageSent(n)
	s.Logger.Debug("sent %d bytes to %s", n, s.Endpoint.Peer())
	return n, nil
}

// Receive performs a single receive into p and records it.
func (s *Session) Receive(p []byte) (int, error) {
	if err := s.arm(); err != nil {
		return 0, err
	}
	n, err := s.Endpoint.Receive(p)
	s.Metrics.BytesReceived(n)
	if err != nil && err != io.EOF {
		s.fail("receive", err)
	}
	return n, err
}

func (s *Session) fail(op string, err error) {
	s.Metrics.RecordError(err.Error())
	if tkerr.IsTimeout(err) {
		s.Logger.Verbose("%s timed out after %s", op, s.Timeout)
	}
}

// Printf writes a status message to the session's output.
func (s *Session) Printf(format string, args ...interface{}) {
	fmt.Fprintf(s.Stdout, format, args...)
}

func (s *Session) arm() error {
	if s.Timeout <= 0 {
		return nil
	}
	return s.Endpoint.SetDeadline(time.Now().Add(s.Timeout))
}
