// Package config defines the runtime configuration for gotalk and
// validates it before any network resource is touched.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	tkerr "gotalk/internal/errors"
	"gotalk/internal/transport"
	"gotalk/util"
)

// Config holds every tuneable for a single gotalk session.
type Config struct {
	// ── Destination ──────────────────────────────────────────────────
	Transport string // "tcp" or "udp", exactly as typed
	Host      string
	Service   string // port number or service name
	Family    string // "any", "ip4" or "ip6"
	NoDNS     bool
	LocalPort int // -p: source port binding
	Timeout   time.Duration
	Proxy     string // socks5://[user:pass@]host:port (tcp only)

	// ── Session ──────────────────────────────────────────────────────
	Sentinel     string
	BannerSize   int
	StopDatagram bool // udp: send an empty datagram on the sentinel
	ZeroIO       bool // establish, report, tear down; no session

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
	Stats   bool
	DryRun  bool
}

// Kind parses the transport selector.
func (c *Config) Kind() (transport.Kind, error) {
	k, err := transport.ParseKind(c.Transport)
	if err != nil {
		return 0, &tkerr.UsageError{Err: err}
	}
	return k, nil
}

// Validate checks that the configuration is internally consistent.
// The transport selector is checked first so an unknown transport is
// rejected before anything else is looked at.
func (c *Config) Validate() error {
	kind, err := c.Kind()
	if err != nil {
		return err
	}

	if c.Host == "" {
		return tkerr.Usage("hostname is required (use --help for usage)")
	}
	if c.Service == "" {
		return tkerr.Usage("destination port is required")
	}

	if c.NoDNS && !util.IsIPLiteral(c.Host) {
		return &tkerr.ConfigError{
			Field:   "no-dns",
			Value:   c.Host,
			Message: "host is not a numeric address",
			Hint:    "drop -n to allow DNS lookups",
		}
	}

	switch c.Family {
	case "", "any", "ip4", "ip6":
	default:
		return &tkerr.ConfigError{
			Field:   "family",
			Value:   c.Family,
			Message: "unknown address family",
			Hint:    "use -4, -6, or neither",
		}
	}

	if c.LocalPort < 0 || c.LocalPort > 65535 {
		return &tkerr.ConfigError{
			Field:   "local-port",
			Value:   c.LocalPort,
			Message: "out of range 0-65535",
		}
	}

	if c.Timeout < 0 {
		return &tkerr.ConfigError{Field: "timeout", Value: c.Timeout, Message: "must not be negative"}
	}

	if c.Sentinel == "" {
		return &tkerr.ConfigError{Field: "sentinel", Message: "must not be empty"}
	}
	if strings.ContainsAny(c.Sentinel, " \t\r\n\v\f") {
		return &tkerr.ConfigError{
			Field:   "sentinel",
			Value:   fmt.Sprintf("%q", c.Sentinel),
			Message: "must be a single token",
			Hint:    "input is split on whitespace, so this sentinel could never match",
		}
	}

	if c.BannerSize < 1 || c.BannerSize > MaxBannerSize {
		return &tkerr.ConfigError{
			Field:   "banner-size",
			Value:   c.BannerSize,
			Message: fmt.Sprintf("out of range 1-%d", MaxBannerSize),
			Hint:    fmt.Sprintf("the default is %d", DefaultBannerSize),
		}
	}

	if c.Proxy != "" {
		if kind != transport.Reliable {
			return &tkerr.ConfigError{
				Field:   "proxy",
				Value:   c.Proxy,
				Message: "udp is not supported through a socks5 proxy",
			}
		}
		u, err := url.Parse(c.Proxy)
		if err != nil || u.Scheme != "socks5" || u.Host == "" {
			return &tkerr.ConfigError{
				Field:   "proxy",
				Value:   c.Proxy,
				Message: "invalid proxy url",
				Hint:    "expected socks5://[user:pass@]host:port",
			}
		}
	}

	return nil
}
