package capability

import (
	"context"
	"io"

	"gotalk/config"
	tkerr "gotalk/internal/errors"
	"gotalk/internal/session"
)

// ChatState is a step of the stream session.
type ChatState int

const (
	AwaitingBanner ChatState = iota
	Interacting
	Closed
)

func (s ChatState) String() string {
	switch s {
	case AwaitingBanner:
		return "awaiting-banner"
	case Interacting:
		return "interacting"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Chat drives a connected stream: one banner receive, then every
// input token is written to the peer until the sentinel.
type Chat struct {
	Sentinel   string // default "quit"
	BannerSize int    // default 99

	// OnState, when set, observes every transition.
	OnState func(ChatState)
}

// Handle runs AwaitingBanner → Interacting → Closed.
func (c *Chat) Handle(ctx context.Context, sess *session.Session) error {
	peer := sess.Endpoint.Peer().String()
	sentinel := sentinelOr(c.Sentinel)

	c.enter(AwaitingBanner)
	banner, err := c.readBanner(sess)
	if err != nil {
		return tkerr.Transmission("recv", peer, err)
	}
	sess.Printf("%s\n\n", banner)

	c.enter(Interacting)
	defer c.enter(Closed)

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
		if tok == sentinel {
			return nil
		}

		if _, err := sess.Send([]byte(tok)); err != nil {
			return tkerr.Transmission("send", peer, err)
		}
	}
}

// readBanner issues exactly one receive.  A peer that closes before
// sending anything yields an empty banner, not an error.
func (c *Chat) readBanner(sess *session.Session) ([]byte, error) {
	size := c.BannerSize
	if size <= 0 {
		size = config.DefaultBannerSize
	}
	buf := make([]byte, size)

	n, err := sess.Receive(buf)
	if err != nil && err != io.EOF {
		return nil, err
	}
	sess.Logger.Verbose("banner: %d bytes", n)
	return buf[:n], nil
}

func (c *Chat) enter(s ChatState) {
	if c.OnState != nil {
		c.OnState(s)
	}
}
