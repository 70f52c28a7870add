// Package log is a thin leveled-logging shim for schemacore's ambient
// tooling (cmd/schemalint and tests that want to observe intermediate
// Validator state). The validator/shape core itself never imports this
// package: it is a library boundary that returns values, not one that
// logs (§7/§5 of the design — no core operation suspends on I/O).
//
// Grounded on the teacher's (kaptinlin/jsonschema) own cmd/ and examples/
// diagnostics, which write directly with plain fmt/log rather than pulling
// in a structured-logging framework; schemacore's core has no logging
// dependency in its own go.mod for the same reason, and this package
// writes leveled lines with fmt to a plain io.Writer rather than reaching for a
// third-party structured logger, since nothing in the example pack
// actually demonstrates one in use (the one third-party logging module
// anywhere in the pack appears only as an indirect, unexercised go.mod
// entry in an unrelated repo) — adopting it here would be grounding on a
// name, not on an observed usage pattern.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level orders the severities this package recognizes, least to most
// severe.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes leveled, prefixed lines to an underlying writer. The zero
// value is not usable; construct one with New.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	level  Level
	prefix string
}

// New returns a Logger writing to out, suppressing messages below level.
// A nil out defaults to os.Stderr.
func New(out io.Writer, level Level) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{out: out, level: level}
}

// Default returns a Logger at LevelInfo writing to os.Stderr, the logger
// cmd/schemalint uses unless told otherwise.
func Default() *Logger {
	return New(os.Stderr, LevelInfo)
}

// With returns a copy of l that prefixes every message with name, for
// scoping messages to a subsystem ("validator", "index", ...).
func (l *Logger) With(name string) *Logger {
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}
	return &Logger{out: l.out, level: l.level, prefix: prefix}
}

func (l *Logger) log(level Level, format string, args ...any) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		fmt.Fprintf(l.out, "%s [%s] %s\n", level, l.prefix, msg)
		return
	}
	fmt.Fprintf(l.out, "%s %s\n", level, msg)
}

func (l *Logger) Debugf(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log(LevelError, format, args...) }
