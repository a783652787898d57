// Package cmd wires up the CLI flags and dispatches to the core modes.
package cmd

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"gotalk/config"
	"gotalk/internal/core"
	tkerr "gotalk/internal/errors"
	"gotalk/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X gotalk/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// stdout receives help, version and dry-run output.
var stdout io.Writer = os.Stdout //nolint:gochecknoglobals

// Execute parses args and runs one gotalk session.
func Execute(ctx context.Context, args []string) error {
	cfg := config.Defaults()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("gotalk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// ── resolution ───────────────────────────────────────────────
	var only4, only6 bool
	fs.BoolVarP(&only4, "ipv4", "4", false, "Use IPv4 addresses only")
	fs.BoolVarP(&only6, "ipv6", "6", false, "Use IPv6 addresses only")
	fs.BoolVarP(&cfg.NoDNS, "no-dns", "n", cfg.NoDNS, "Numeric-only, no DNS resolution")

	// ── connection ───────────────────────────────────────────────
	timeoutSec := int(cfg.Timeout / time.Second)
	fs.IntVarP(&timeoutSec, "timeout", "w", timeoutSec, "Connect and per-operation timeout in seconds")
	fs.IntVarP(&cfg.LocalPort, "local-port", "p", cfg.LocalPort, "Local source port")
	fs.StringVar(&cfg.Proxy, "proxy", cfg.Proxy, "Route tcp through socks5://[user:pass@]host:port")
	fs.BoolVarP(&cfg.ZeroIO, "zero-io", "z", false, "Establish and tear down without sending")

	// ── session ──────────────────────────────────────────────────
	fs.StringVar(&cfg.Sentinel, "sentinel", cfg.Sentinel, "Token that ends the session")
	fs.IntVar(&cfg.BannerSize, "banner-size", cfg.BannerSize, "Maximum banner bytes read on tcp")
	noStop := !cfg.StopDatagram
	fs.BoolVar(&noStop, "no-stop-datagram", noStop, "udp: end on the sentinel without sending an empty datagram")

	// ── output ───────────────────────────────────────────────────
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVar(&cfg.Stats, "stats", cfg.Stats, "Print a JSON metrics snapshot on teardown")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Validate and print the plan without touching the network")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return &tkerr.UsageError{Err: err}
	}

	if showHelp || len(args) == 0 {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Fprintf(stdout, "gotalk %s\n", version)
		return nil
	}

	switch {
	case only4 && only6:
		return tkerr.Usage("-4 and -6 are mutually exclusive")
	case only4:
		cfg.Family = "ip4"
	case only6:
		cfg.Family = "ip6"
	}
	if timeoutSec < 0 {
		return tkerr.Usage("timeout must not be negative")
	}
	cfg.Timeout = time.Duration(timeoutSec) * time.Second
	cfg.StopDatagram = !noStop

	// ── positional arguments ─────────────────────────────────────
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return err
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.DryRun {
		printPlan(cfg)
		return nil
	}

	// ── build and run ────────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)

	mode, err := core.Build(cfg, logger)
	if err != nil {
		return err
	}
	return mode.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

func parsePositional(cfg *config.Config, remaining []string) error {
	if len(remaining) != 3 {
		return tkerr.Usage("expected <tcp|udp> <host> <port>, got %d argument(s) (use --help for usage)", len(remaining))
	}
	cfg.Transport = remaining[0]
	cfg.Host = remaining[1]
	cfg.Service = remaining[2]
	return nil
}

func printPlan(cfg *config.Config) {
	action := "talk to"
	if cfg.ZeroIO {
		action = "probe"
	}
	fmt.Fprintf(stdout, "plan: %s %s %s (family %s, dns %v)\n",
		action, cfg.Transport, net.JoinHostPort(cfg.Host, cfg.Service), cfg.Family, !cfg.NoDNS)
	if cfg.Proxy != "" {
		fmt.Fprintf(stdout, "  via proxy %s\n", cfg.Proxy)
	}
	if cfg.LocalPort > 0 {
		fmt.Fprintf(stdout, "  from local port %d\n", cfg.LocalPort)
	}
	if cfg.Timeout > 0 {
		fmt.Fprintf(stdout, "  timeout %s\n", cfg.Timeout)
	}
	fmt.Fprintf(stdout, "  sentinel %q", cfg.Sentinel)
	if cfg.Transport == "tcp" {
		fmt.Fprintf(stdout, ", banner up to %d bytes\n", cfg.BannerSize)
	} else {
		fmt.Fprintf(stdout, ", stop datagram %v\n", cfg.StopDatagram)
	}
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(stdout, `gotalk - interactive tcp/udp test client v%s

Connects to a host and sends every whitespace-separated token read
from stdin as one message (tcp) or one datagram (udp) until the
sentinel token is read.

Usage:
  gotalk [options] <tcp|udp> <host> <port>

Options:
`, version)
	fs.SetOutput(stdout)
	fs.PrintDefaults()
	fmt.Fprintf(stdout, `
Exit status:
  0  session ended normally
  1  usage, configuration or resolution error
  2  no candidate address could be connected
  3  send or receive failed
  130  interrupted by SIGINT or SIGTERM

Examples:
  gotalk tcp localhost 7000                     Chat with a stream server
  gotalk -6 udp ::1 9000                        Datagrams over IPv6
  echo "ping quit" | gotalk udp 127.0.0.1 9000  Scripted input
  gotalk --proxy socks5://127.0.0.1:1080 tcp example.com 80
`)
}
