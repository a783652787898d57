package errors

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"testing"
)

func TestResolutionError_Format(t *testing.T) {
	err := Resolution("example.invalid", "7000", fmt.Errorf("no such host"))
	want := "resolve example.invalid:7000: no such host"
	if got := err.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	v6 := Resolution("::1", "80", ErrNoCandidates)
	if got := v6.Error(); got != "resolve [::1]:80: no usable addresses" {
		t.Errorf("got %q", got)
	}
}

func TestResolutionError_Unwrap(t *testing.T) {
	err := Resolution("x", "1", ErrNoCandidates)
	if !Is(err, ErrNoCandidates) {
		t.Error("should unwrap to ErrNoCandidates")
	}
}

func TestEstablishmentError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  EstablishmentError
		want string
	}{
		{
			name: "tcp no attempts",
			err:  EstablishmentError{Network: "tcp"},
			want: "failed to connect: no usable addresses",
		},
		{
			name: "udp no attempts",
			err:  EstablishmentError{Network: "udp"},
			want: "failed to create socket: no usable addresses",
		},
		{
			name: "two attempts",
			err: EstablishmentError{
				Network: "tcp",
				Attempts: []error{
					Attempt("connect", "[::1]:9", fmt.Errorf("refused")),
					Attempt("connect", "127.0.0.1:9", fmt.Errorf("refused")),
				},
			},
			want: "failed to connect (2 attempts): connect [::1]:9: refused; connect 127.0.0.1:9: refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEstablishmentError_UnwrapAttempts(t *testing.T) {
	err := &EstablishmentError{
		Network:  "tcp",
		Attempts: []error{Attempt("socket", "x", os.ErrPermission)},
	}
	if !Is(err, os.ErrPermission) {
		t.Error("should see through attempts to os.ErrPermission")
	}
}

func TestTransmissionError_Format(t *testing.T) {
	if got := Transmission("recv", "", io.ErrUnexpectedEOF).Error(); got != "recv: unexpected EOF" {
		t.Errorf("got %q", got)
	}
	if got := Transmission("sendto", "[::1]:53", io.ErrClosedPipe).Error(); got != "sendto [::1]:53: io: read/write on closed pipe" {
		t.Errorf("got %q", got)
	}
}

func TestConfigError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  ConfigError
		want string
	}{
		{
			name: "with value and hint",
			err: ConfigError{
				Field:   "banner-size",
				Value:   0,
				Message: "must be positive",
				Hint:    "the default is 99",
			},
			want: "config: --banner-size=0: must be positive\n  hint: the default is 99",
		},
		{
			name: "missing value no hint",
			err: ConfigError{
				Field:   "sentinel",
				Message: "must not be empty",
			},
			want: "config: --sentinel: must not be empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestUsageError_Format(t *testing.T) {
	if got := Usage("expected %d arguments", 3).Error(); got != "expected 3 arguments" {
		t.Errorf("got %q", got)
	}
	wrapped := &UsageError{Message: "transport", Err: ErrUnknownTransport}
	if got := wrapped.Error(); got != "transport: unrecognized transport" {
		t.Errorf("got %q", got)
	}
	if !Is(wrapped, ErrUnknownTransport) {
		t.Error("should unwrap to ErrUnknownTransport")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"usage", Usage("bad"), ExitUsage},
		{"config", &ConfigError{Field: "x", Message: "y"}, ExitUsage},
		{"resolution", Resolution("h", "1", ErrNoCandidates), 1},
		{"establishment", &EstablishmentError{Network: "tcp"}, 2},
		{"transmission", Transmission("send", "", io.EOF), ExitTransmission},
		{"wrapped establishment", fmt.Errorf("talk: %w", &EstablishmentError{Network: "udp"}), 2},
		{"plain", fmt.Errorf("boom"), ExitUsage},
		{"interrupted", context.Canceled, ExitInterrupted},
		{"interrupted mid-establish", fmt.Errorf("talk: %w", context.Canceled), 130},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsTimeout(t *testing.T) {
	opErr := &net.OpError{Op: "read", Net: "tcp", Err: os.ErrDeadlineExceeded}
	if !IsTimeout(opErr) {
		t.Error("deadline exceeded should be a timeout")
	}
	if IsTimeout(io.EOF) {
		t.Error("EOF is not a timeout")
	}
}

func TestSentinels(t *testing.T) {
	// Verify sentinel errors are distinct.
	sentinels := []error{
		ErrNoCandidates, ErrUnknownTransport, ErrEndpointClosed,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && Is(a, b) {
				t.Errorf("sentinel %d and %d should not match", i, j)
			}
		}
	}
}
