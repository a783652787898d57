package capability

import (
	"context"
	"io"

	tkerr "gotalk/internal/errors"
	"gotalk/internal/session"
)

// Talker drives a datagram endpoint: every input token becomes one
// datagram addressed to the fixed target.
//
// On the sentinel, a Talker with StopDatagram set transmits a
// zero-length datagram and then stops, so a listening peer sees the
// end of the session.  Without StopDatagram it stops silently.
type Talker struct {
	Sentinel     string // default "quit"
	StopDatagram bool
}

// Handle runs Sending → Closed.
func (t *Talker) Handle(ctx context.Context, sess *session.Session) error {
	peer := sess.Endpoint.Peer().String()
	sentinel := sentinelOr(t.Sentinel)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tok, err := sess.Input.Next()
		if err == io.EOF {
			sess.Logger.Verbose("input closed")
			return nil
		}
		if err != nil {
			return tkerr.Transmission("input", "", err)
		}

		payload := []byte(tok)
		if tok == sentinel {
			if !t.StopDatagram {
				return nil
			}
			payload = nil
		}

		if _, err := sess.Send(payload); err != nil {
			return tkerr.Transmission("sendto", peer, err)
		}
		if len(payload) == 0 {
			return nil
		}
	}
}
