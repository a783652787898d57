// Package errors provides domain-specific error types for gotalk.
//
// Every fatal condition of a session maps onto one of the structured
// types below.  They carry enough context (host, service, operation,
// attempted candidates) for a useful diagnostic, and [ExitCode] turns
// them into the process exit status.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrNoCandidates     = errors.New("no usable addresses")
	ErrUnknownTransport = errors.New("unrecognized transport")
	ErrEndpointClosed   = errors.New("endpoint is closed")
)

// Exit codes returned by [ExitCode].
const (
	ExitOK           = 0
	ExitUsage        = 1
	ExitResolution   = 1
	ExitEstablish    = 2
	ExitTransmission = 3
	ExitInterrupted  = 130 // SIGINT or SIGTERM ended the session
)

// ── Structured error types ───────────────────────────────────────────

// ResolutionError means a host/service pair could not be mapped to any
// candidate address.
type ResolutionError struct {
	Host    string
	Service string
	Err     error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", net.JoinHostPort(e.Host, e.Service), e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// EstablishmentError means no candidate yielded a usable endpoint.
// Attempts holds one error per candidate tried, in resolver order.
type EstablishmentError struct {
	Network  string // "tcp" or "udp"
	Attempts []error
}

func (e *EstablishmentError) Error() string {
	verb := "failed to connect"
	if e.Network == "udp" {
		verb = "failed to create socket"
	}
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("%s: %v", verb, ErrNoCandidates)
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return fmt.Sprintf("%s (%d attempts): %s", verb, len(e.Attempts), strings.Join(parts, "; "))
}

// Unwrap exposes every attempt so errors.Is sees through to the
// individual dial failures.
func (e *EstablishmentError) Unwrap() []error { return e.Attempts }

// TransmissionError represents a failed send or receive on an
// established endpoint.
type TransmissionError struct {
	Op   string // "recv", "send", "sendto", "input"
	Addr string
	Err  error
}

func (e *TransmissionError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *TransmissionError) Unwrap() error { return e.Err }

// AttemptError records a single failed candidate during establishment.
type AttemptError struct {
	Op   string // "socket" or "connect"
	Addr string
	Err  error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *AttemptError) Unwrap() error { return e.Err }

// UsageError is a malformed invocation (wrong argument count, bad
// transport name, unknown flag).
type UsageError struct {
	Message string
	Err     error
}

func (e *UsageError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UsageError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// Resolution creates a ResolutionError.
func Resolution(host, service string, err error) *ResolutionError {
	return &ResolutionError{Host: host, Service: service, Err: err}
}

// Attempt creates an AttemptError for one candidate.
func Attempt(op, addr string, err error) *AttemptError {
	return &AttemptError{Op: op, Addr: addr, Err: err}
}

// Transmission creates a TransmissionError.
func Transmission(op, addr string, err error) *TransmissionError {
	return &TransmissionError{Op: op, Addr: addr, Err: err}
}

// Usage creates a UsageError with a formatted message.
func Usage(format string, args ...interface{}) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// ── Classification helpers ───────────────────────────────────────────

// ExitCode maps err onto the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		re *ResolutionError
		ee *EstablishmentError
		te *TransmissionError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &ee):
		return ExitEstablish
	case errors.As(err, &te):
		return ExitTransmission
	case errors.As(err, &re):
		return ExitResolution
	default:
		return ExitUsage
	}
}

// IsTimeout reports whether err is a network deadline expiry.
func IsTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }
