// Package util provides low-level helpers shared by all other packages.
package util

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

// LogLevel controls output verbosity.
type LogLevel int

const (
	LogQuiet   LogLevel = 0
	LogNormal  LogLevel = 1
	LogVerbose LogLevel = 2
	LogDebug   LogLevel = 3
)

// Logger writes levelled messages to stderr with optional timestamps
// and level prefixes.  It is a thin veneer over a logrus logger so
// callers can attach structured fields with [Logger.WithField].
type Logger struct {
	entry     *logrus.Entry
	formatter *prefixFormatter
}

// NewLogger returns a Logger that prints messages at or below the given
// verbosity (0 = quiet, 1 = normal, 2 = verbose, 3 = debug).
func NewLogger(verbosity int) *Logger {
	f := &prefixFormatter{timestamps: verbosity >= 3} // auto-enable timestamps in debug mode

	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetFormatter(f)
	base.SetLevel(logrusLevel(LogLevel(verbosity)))

	return &Logger{
		entry:     logrus.NewEntry(base),
		formatter: f,
	}
}

// SetTimestamps enables or disables timestamp prefixes.
func (l *Logger) SetTimestamps(on bool) { l.formatter.timestamps = on }

// SetOutput overrides the output writer (default: os.Stderr).
func (l *Logger) SetOutput(w io.Writer) { l.entry.Logger.SetOutput(w) }

// WithField returns a child logger that appends key=value to every
// message.  The child shares output and level with its parent.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		entry:     l.entry.WithField(key, value),
		formatter: l.formatter,
	}
}

// Info prints when verbosity ≥ 1.  Prefixed with [INF].
func (l *Logger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Verbose prints when verbosity ≥ 2.  Prefixed with [VRB].
func (l *Logger) Verbose(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Debug prints when verbosity ≥ 3.  Prefixed with [DBG].
func (l *Logger) Debug(format string, args ...interface{}) {
	l.entry.Tracef(format, args...)
}

// logrusLevel maps gotalk verbosity onto the logrus threshold.  Verbose
// rides on logrus' Debug level and Debug on Trace.
func logrusLevel(lvl LogLevel) logrus.Level {
	switch {
	case lvl <= LogQuiet:
		return logrus.ErrorLevel
	case lvl == LogNormal:
		return logrus.InfoLevel
	case lvl == LogVerbose:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}

// prefixFormatter renders "[INF] message key=value" lines.
type prefixFormatter struct {
	timestamps bool
}

func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	if f.timestamps {
		b.WriteString(e.Time.Format("15:04:05.000"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "[%s] %s", levelTag(e.Level), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelTag(lvl logrus.Level) string {
	switch lvl {
	case logrus.InfoLevel:
		return "INF"
	case logrus.DebugLevel:
		return "VRB"
	default:
		return "DBG"
	}
}
