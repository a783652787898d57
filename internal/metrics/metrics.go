// Package metrics provides lightweight, lock-free counters for
// tracking the statistics of a gotalk session.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a gotalk session.
// A nil Collector is safe to use; all methods become no-ops.
type Collector struct {
	attemptsTotal   atomic.Int64
	attemptFailures atomic.Int64
	endpointsOpened atomic.Int64
	endpointsClosed atomic.Int64
	messagesSent    atomic.Int64
	bytesIn         atomic.Int64
	bytesOut        atomic.Int64
	errorsTotal     atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Establishment metrics ────────────────────────────────────────────

// AttemptStarted counts one candidate establishment attempt.
func (c *Collector) AttemptStarted() {
	if c == nil {
		return
	}
	c.attemptsTotal.Add(1)
}

// AttemptFailed counts one candidate that did not yield an endpoint.
func (c *Collector) AttemptFailed() {
	if c == nil {
		return
	}
	c.attemptFailures.Add(1)
}

// Attempts returns the number of candidates tried.
func (c *Collector) Attempts() int64 {
	if c == nil {
		return 0
	}
	return c.attemptsTotal.Load()
}

// FailedAttempts returns the number of candidates that failed.
func (c *Collector) FailedAttempts() int64 {
	if c == nil {
		return 0
	}
	return c.attemptFailures.Load()
}

// ── Endpoint lifecycle ───────────────────────────────────────────────

// EndpointOpened records a successfully established endpoint.
func (c *Collector) EndpointOpened() {
	if c == nil {
		return
	}
	c.endpointsOpened.Add(1)
}

// EndpointClosed records an endpoint release.
func (c *Collector) EndpointClosed() {
	if c == nil {
		return
	}
	c.endpointsClosed.Add(1)
}

// OpenEndpoints returns opened minus closed endpoints.
func (c *Collector) OpenEndpoints() int64 {
	if c == nil {
		return 0
	}
	return c.endpointsOpened.Load() - c.endpointsClosed.Load()
}

// ── I/O metrics ──────────────────────────────────────────────────────

// MessageSent records one transmitted payload of n bytes.  Zero-length
// datagrams count as messages.
func (c *Collector) MessageSent(n int) {
	if c == nil {
		return
	}
	c.messagesSent.Add(1)
	c.bytesOut.Add(int64(n))
}

// BytesReceived records n bytes read from the network.
func (c *Collector) BytesReceived(n int) {
	if c == nil {
		return
	}
	c.bytesIn.Add(int64(n))
}

// MessagesSent returns the number of transmitted payloads.
func (c *Collector) MessagesSent() int64 {
	if c == nil {
		return 0
	}
	return c.messagesSent.Load()
}

// TotalBytesIn returns total bytes received.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// TotalBytesOut returns total bytes sent.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	Attempts         int64  `json:"attempts"`
	FailedAttempts   int64  `json:"failed_attempts"`
	EndpointsOpened  int64  `json:"endpoints_opened"`
	EndpointsClosed  int64  `json:"endpoints_closed"`
	MessagesSent     int64  `json:"messages_sent"`
	BytesIn          int64  `json:"bytes_in"`
	BytesOut         int64  `json:"bytes_out"`
	ErrorsTotal      int64  `json:"errors_total"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:          time.Since(c.startTime).Truncate(time.Millisecond).String(),
		Attempts:        c.attemptsTotal.Load(),
		FailedAttempts:  c.attemptFailures.Load(),
		EndpointsOpened: c.endpointsOpened.Load(),
		EndpointsClosed: c.endpointsClosed.Load(),
		MessagesSent:    c.messagesSent.Load(),
		BytesIn:         c.bytesIn.Load(),
		BytesOut:        c.bytesOut.Load(),
		ErrorsTotal:     c.errorsTotal.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
