package core

import (
	"testing"

	"gotalk/config"
	"gotalk/internal/capability"
	tkerr "gotalk/internal/errors"
	"gotalk/internal/transport"
	"gotalk/util"
)

func testConfig(network, host string) *config.Config {
	cfg := config.Defaults()
	cfg.Transport = network
	cfg.Host = host
	cfg.Service = "7000"
	return cfg
}

// TestBuild_TCP verifies that Build produces a TalkMode driven by Chat
// for a stream destination.
func TestBuild_TCP(t *testing.T) {
	cfg := testConfig("tcp", "example.com")
	cfg.BannerSize = 512

	mode, err := Build(cfg, util.NewLogger(0))
	if err != nil {
		t.Fatal(err)
	}
	tm, ok := mode.(*TalkMode)
	if !ok {
		t.Fatalf("expected *TalkMode, got %T", mode)
	}
	if tm.Kind != transport.Reliable {
		t.Errorf("kind = %v, want tcp", tm.Kind)
	}
	chat, ok := tm.Capability.(*capability.Chat)
	if !ok {
		t.Fatalf("expected *capability.Chat, got %T", tm.Capability)
	}
	if chat.BannerSize != 512 || chat.Sentinel != "quit" {
		t.Errorf("chat = %+v", chat)
	}
}

// TestBuild_UDP verifies that udp selects the Talker driver with the
// stop datagram enabled by default.
func TestBuild_UDP(t *testing.T) {
	cfg := testConfig("udp", "::1")

	mode, err := Build(cfg, util.NewLogger(0))
	if err != nil {
		t.Fatal(err)
	}
	tm := mode.(*TalkMode)
	talker, ok := tm.Capability.(*capability.Talker)
	if !ok {
		t.Fatalf("expected *capability.Talker, got %T", tm.Capability)
	}
	if !talker.StopDatagram {
		t.Error("StopDatagram should be enabled")
	}
}

func TestBuild_NoStopDatagram(t *testing.T) {
	cfg := testConfig("udp", "::1")
	cfg.StopDatagram = false

	mode, err := Build(cfg, util.NewLogger(0))
	if err != nil {
		t.Fatal(err)
	}
	if mode.(*TalkMode).Capability.(*capability.Talker).StopDatagram {
		t.Error("StopDatagram should be disabled")
	}
}

// TestBuild_Probe verifies that -z produces a ProbeMode.
func TestBuild_Probe(t *testing.T) {
	cfg := testConfig("tcp", "127.0.0.1")
	cfg.ZeroIO = true

	mode, err := Build(cfg, util.NewLogger(0))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := mode.(*ProbeMode); !ok {
		t.Errorf("expected *ProbeMode, got %T", mode)
	}
}

// TestBuild_UnknownTransport verifies that an unrecognized transport
// is rejected before any mode exists.
func TestBuild_UnknownTransport(t *testing.T) {
	cfg := testConfig("sctp", "127.0.0.1")

	mode, err := Build(cfg, util.NewLogger(0))
	if err == nil {
		t.Fatalf("expected error, got mode %T", mode)
	}
	if !tkerr.Is(err, tkerr.ErrUnknownTransport) {
		t.Errorf("error = %v, want ErrUnknownTransport", err)
	}
	if code := tkerr.ExitCode(err); code != tkerr.ExitUsage {
		t.Errorf("exit code = %d, want %d", code, tkerr.ExitUsage)
	}
}

func TestBuild_Proxy(t *testing.T) {
	cfg := testConfig("tcp", "127.0.0.1")
	cfg.Proxy = "socks5://127.0.0.1:1080"

	mode, err := Build(cfg, util.NewLogger(0))
	if err != nil {
		t.Fatal(err)
	}
	est := mode.(*TalkMode).Establisher.(*transport.Establisher)
	if _, ok := est.Opener.(*transport.ProxyOpener); !ok {
		t.Errorf("expected *transport.ProxyOpener, got %T", est.Opener)
	}
}

func TestBuild_BadProxy(t *testing.T) {
	cfg := testConfig("tcp", "127.0.0.1")
	cfg.Proxy = "http://127.0.0.1:3128"

	if _, err := Build(cfg, util.NewLogger(0)); err == nil {
		t.Fatal("expected error for non-socks5 proxy")
	}
}
