package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the GOTALK_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).  The positional
// arguments (transport, host, port) have no env equivalent.

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("GOTALK_FAMILY"); v != "" {
		cfg.Family = v
	}
	if envBool("GOTALK_NO_DNS") {
		cfg.NoDNS = true
	}
	if v := envInt("GOTALK_LOCAL_PORT"); v > 0 {
		cfg.LocalPort = v
	}
	if v := envInt("GOTALK_TIMEOUT"); v > 0 {
		cfg.Timeout = secondsDuration(v)
	}
	if v := os.Getenv("GOTALK_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Session
	if v := os.Getenv("GOTALK_SENTINEL"); v != "" {
		cfg.Sentinel = v
	}
	if v := envInt("GOTALK_BANNER_SIZE"); v > 0 {
		cfg.BannerSize = v
	}
	if envBool("GOTALK_NO_STOP_DATAGRAM") {
		cfg.StopDatagram = false
	}

	// Output
	if v := envInt("GOTALK_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
	if envBool("GOTALK_STATS") {
		cfg.Stats = true
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

func secondsDuration(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}
