// Package core is the orchestration layer.  It composes resolution,
// establishment and the session drivers into complete operational
// modes and provides a builder that selects the right mode from a
// Config.
//
// Architecture layers (bottom → top):
//
//	transport  →  capability  →  session  →  core  →  cmd (CLI)
//
// The builder in this package is the single dispatch point on the
// transport kind; nothing above or below it branches on tcp vs udp
// again.
package core

import (
	"context"

	"gotalk/internal/transport"
)

// Mode represents a complete operational mode of gotalk (talk or
// probe).  Each mode owns its full lifecycle from resolution to
// teardown.
type Mode interface {
	Run(ctx context.Context) error
}

// Resolver maps a host and service onto ordered candidates.
type Resolver interface {
	Resolve(ctx context.Context, host, service string, kind transport.Kind) ([]transport.Candidate, error)
}

// Establisher turns candidates into a live endpoint.
type Establisher interface {
	Establish(ctx context.Context, kind transport.Kind, candidates []transport.Candidate) (transport.Endpoint, error)
}
