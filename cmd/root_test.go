package cmd

import (
	"bytes"
	"context"
	"net"
	"strconv"
	"strings"
	"testing"

	tkerr "gotalk/internal/errors"
	"gotalk/util"
)

// capture redirects help, version and plan output for one test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := stdout
	stdout = buf
	t.Cleanup(func() { stdout = prev })
	return buf
}

// TestExecute_Version verifies --version prints a version string.
func TestExecute_Version(t *testing.T) {
	out := capture(t)
	if err := Execute(context.Background(), []string{"--version"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "gotalk ") {
		t.Errorf("version output = %q", out.String())
	}
}

// TestExecute_Help verifies --help (and no args) returns without error.
func TestExecute_Help(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {}} {
		name := "no-args"
		if len(args) > 0 {
			name = args[0]
		}
		t.Run(name, func(t *testing.T) {
			out := capture(t)
			if err := Execute(context.Background(), args); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out.String(), "<tcp|udp> <host> <port>") {
				t.Errorf("usage missing synopsis:\n%s", out.String())
			}
		})
	}
}

// TestExecute_DryRun verifies --dry-run validates and prints the plan.
func TestExecute_DryRun(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--dry-run", "tcp", "localhost", "7000"}, "plan: talk to tcp localhost:7000 (family any, dns true)"},
		{[]string{"--dry-run", "-6", "-n", "udp", "::1", "9000"}, "plan: talk to udp [::1]:9000 (family ip6, dns false)"},
		{[]string{"--dry-run", "--no-stop-datagram", "udp", "::1", "9000"}, "stop datagram false"},
		{[]string{"--dry-run", "--banner-size", "512", "tcp", "h", "1"}, "banner up to 512 bytes"},
		{[]string{"--dry-run", "-z", "-w", "3", "tcp", "h", "1"}, "timeout 3s"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out := capture(t)
			if err := Execute(context.Background(), tt.args); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("plan %q does not contain %q", out.String(), tt.want)
			}
		})
	}
}

// TestExecute_DryRunInvalid verifies --dry-run still catches bad configs.
func TestExecute_DryRunInvalid(t *testing.T) {
	err := Execute(context.Background(), []string{
		"--dry-run", "--banner-size", "0", "tcp", "localhost", "7000",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

// TestExecute_InvalidFlags verifies unknown flags produce a usage error.
func TestExecute_InvalidFlags(t *testing.T) {
	err := Execute(context.Background(), []string{"--nonexistent-flag"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if code := tkerr.ExitCode(err); code != tkerr.ExitUsage {
		t.Errorf("exit code = %d, want %d", code, tkerr.ExitUsage)
	}
}

// TestExecute_ArgumentCount verifies that anything but three
// positional arguments is rejected.
func TestExecute_ArgumentCount(t *testing.T) {
	for _, args := range [][]string{
		{"tcp", "localhost"},
		{"tcp", "localhost", "7000", "extra"},
		{"-v"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			err := Execute(context.Background(), args)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "expected <tcp|udp> <host> <port>") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// TestExecute_UnknownTransport verifies sctp is refused before any
// resolution; the host would never resolve if it were tried.
func TestExecute_UnknownTransport(t *testing.T) {
	err := Execute(context.Background(), []string{"sctp", "host.invalid", "9"})
	if !tkerr.Is(err, tkerr.ErrUnknownTransport) {
		t.Fatalf("error = %v, want ErrUnknownTransport", err)
	}
	if !strings.Contains(err.Error(), `"sctp"`) {
		t.Errorf("error should name the transport: %v", err)
	}
	if code := tkerr.ExitCode(err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

// TestExecute_ConflictingFamilies verifies -4 and -6 conflict is caught.
func TestExecute_ConflictingFamilies(t *testing.T) {
	err := Execute(context.Background(), []string{"-4", "-6", "tcp", "localhost", "80", "--dry-run"})
	if err == nil {
		t.Fatal("expected error for -4 and -6 conflict")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("error should mention mutually exclusive: %v", err)
	}
}

// TestExecute_EnvThenFlags verifies GOTALK_* values apply and flags win.
func TestExecute_EnvThenFlags(t *testing.T) {
	t.Setenv("GOTALK_SENTINEL", "bye")

	out := capture(t)
	if err := Execute(context.Background(), []string{"--dry-run", "tcp", "h", "1"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `sentinel "bye"`) {
		t.Errorf("env sentinel not applied: %q", out.String())
	}

	out.Reset()
	if err := Execute(context.Background(), []string{"--dry-run", "--sentinel", "stop", "tcp", "h", "1"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `sentinel "stop"`) {
		t.Errorf("flag should override env: %q", out.String())
	}
}

// TestExecute_Probe verifies -z against a live and a closed port.
func TestExecute_Probe(t *testing.T) {
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	port := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)
	if err := Execute(context.Background(), []string{"-z", "-w", "2", "-n", "tcp", "127.0.0.1", port}); err != nil {
		t.Fatalf("probe open port: %v", err)
	}

	closed, err := util.FindFreePort()
	if err != nil {
		t.Fatal(err)
	}
	err = Execute(context.Background(), []string{"-z", "-w", "2", "-n", "tcp", "127.0.0.1", strconv.Itoa(closed)})
	if code := tkerr.ExitCode(err); code != tkerr.ExitEstablish {
		t.Errorf("exit code = %d, want %d (err %v)", code, tkerr.ExitEstablish, err)
	}
}
