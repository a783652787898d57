package core

import (
	"fmt"

	"gotalk/config"
	"gotalk/internal/capability"
	"gotalk/internal/metrics"
	"gotalk/internal/resolve"
	"gotalk/internal/transport"
	"gotalk/util"
)

// Build constructs the appropriate Mode from the given configuration.
// The transport kind is examined here and nowhere else.
func Build(cfg *config.Config, logger *util.Logger) (Mode, error) {
	kind, err := cfg.Kind()
	if err != nil {
		return nil, err
	}

	opener, err := buildOpener(cfg)
	if err != nil {
		return nil, err
	}

	collector := metrics.New()
	resolver := resolve.New(cfg.Family, cfg.NoDNS, logger)
	establisher := &transport.Establisher{
		Opener:  opener,
		Logger:  logger,
		Metrics: collector,
	}

	if cfg.ZeroIO {
		return &ProbeMode{
			Resolver:    resolver,
			Establisher: establisher,
			Kind:        kind,
			Host:        cfg.Host,
			Service:     cfg.Service,
			Logger:      logger,
			Metrics:     collector,
		}, nil
	}

	return &TalkMode{
		Resolver:    resolver,
		Establisher: establisher,
		Capability:  buildCapability(cfg, kind),
		Kind:        kind,
		Host:        cfg.Host,
		Service:     cfg.Service,
		Timeout:     cfg.Timeout,
		Logger:      logger,
		Metrics:     collector,
		Stats:       cfg.Stats,
		Hint:        fmt.Sprintf("type whitespace-separated tokens; %q ends the session", sentinel(cfg)),
	}, nil
}

// ── shared helpers ───────────────────────────────────────────────────

// buildOpener picks the socket source: plain sockets, or a SOCKS5
// proxy when --proxy is set.
func buildOpener(cfg *config.Config) (transport.Opener, error) {
	direct := &transport.NetOpener{
		Timeout:   cfg.Timeout,
		LocalPort: cfg.LocalPort,
	}
	if cfg.Proxy == "" {
		return direct, nil
	}
	return transport.NewProxyOpener(cfg.Proxy, direct)
}

// buildCapability selects the session driver for kind.
func buildCapability(cfg *config.Config, kind transport.Kind) capability.Capability {
	if kind == transport.Connectionless {
		return &capability.Talker{
			Sentinel:     cfg.Sentinel,
			StopDatagram: cfg.StopDatagram,
		}
	}
	return &capability.Chat{
		Sentinel:   cfg.Sentinel,
		BannerSize: cfg.BannerSize,
	}
}

func sentinel(cfg *config.Config) string {
	if cfg.Sentinel == "" {
		return config.DefaultSentinel
	}
	return cfg.Sentinel
}
