package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultSentinel is the token that ends a session.
	DefaultSentinel = "quit"

	// DefaultBannerSize is how many bytes the single banner receive
	// may return on a stream session.
	DefaultBannerSize = 99

	// MaxBannerSize caps --banner-size.
	MaxBannerSize = 64 * 1024

	// DefaultFamily lets the resolver return every address family.
	DefaultFamily = "any"

	// DefaultTimeout of zero blocks on every socket operation.
	DefaultTimeout time.Duration = 0
)

// Defaults returns a Config populated with every default value.
func Defaults() *Config {
	return &Config{
		Family:       DefaultFamily,
		Sentinel:     DefaultSentinel,
		BannerSize:   DefaultBannerSize,
		Timeout:      DefaultTimeout,
		StopDatagram: true,
	}
}
