package transport

import (
	"context"
	"fmt"

	tkerr "gotalk/internal/errors"
	"gotalk/internal/metrics"
	"gotalk/util"
)

// Establisher turns an ordered candidate list into a live Endpoint.
// Candidates are tried strictly in order and the first one that fully
// succeeds wins; the list is never walked twice.
type Establisher struct {
	Opener  Opener
	Logger  *util.Logger
	Metrics *metrics.Collector
}

// Establish realizes an endpoint of the given kind.  When every
// candidate fails it returns an *errors.EstablishmentError listing
// each attempt.
func (e *Establisher) Establish(ctx context.Context, kind Kind, candidates []Candidate) (Endpoint, error) {
	switch kind {
	case Reliable:
		return e.connectStream(ctx, candidates)
	case Connectionless:
		return e.openDatagram(ctx, candidates)
	default:
		return nil, fmt.Errorf("%w %v", tkerr.ErrUnknownTransport, kind)
	}
}

// connectStream: open, then connect; a socket whose connect fails is
// closed before the next candidate is tried.
func (e *Establisher) connectStream(ctx context.Context, candidates []Candidate) (Endpoint, error) {
	var attempts []error

	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log := e.Logger.WithField("candidate", c.String()).WithField("attempt", i+1)
		e.Metrics.AttemptStarted()

		sock, err := e.Opener.OpenStream(ctx, c)
		if err != nil {
			log.Verbose("socket: %v", err)
			attempts = append(attempts, tkerr.Attempt("socket", c.String(), err))
			e.Metrics.AttemptFailed()
			continue
		}

		conn, err := sock.Connect(ctx)
		if err != nil {
			if cerr := sock.Close(); cerr != nil {
				log.Debug("close after failed connect: %v", cerr)
			}
			log.Verbose("connect: %v", err)
			attempts = append(attempts, tkerr.Attempt("connect", c.String(), err))
			e.Metrics.AttemptFailed()
			continue
		}

		log.Verbose("connected via %s", c.Network())
		e.Metrics.EndpointOpened()
		return NewStreamEndpoint(conn, c), nil
	}

	return nil, &tkerr.EstablishmentError{Network: "tcp", Attempts: attempts}
}

// openDatagram: the first candidate whose socket opens wins; there is
// no connect phase.
func (e *Establisher) openDatagram(ctx context.Context, candidates []Candidate) (Endpoint, error) {
	var attempts []error

	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log := e.Logger.WithField("candidate", c.String()).WithField("attempt", i+1)
		e.Metrics.AttemptStarted()

		pc, err := e.Opener.OpenDatagram(ctx, c)
		if err != nil {
			log.Verbose("socket: %v", err)
			attempts = append(attempts, tkerr.Attempt("socket", c.String(), err))
			e.Metrics.AttemptFailed()
			continue
		}

		log.Verbose("datagram socket %s ready", pc.LocalAddr())
		e.Metrics.EndpointOpened()
		return NewDatagramEndpoint(pc, c), nil
	}

	return nil, &tkerr.EstablishmentError{Network: "udp", Attempts: attempts}
}
