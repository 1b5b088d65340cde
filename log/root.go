// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

var root atomic.Value

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the default global logger.
func SetDefault(l Logger) {
	root.Store(l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger.
func Root() Logger {
	return root.Load().(Logger)
}

// WithContext returns a logger deriving the root logger with the given attributes.
// Packages conventionally call this once, e.g. log.WithContext("pkg", "staking").
// The root is resolved on every call, not at creation, so package-level loggers
// built at init pick up a handler installed later via SetDefault.
func WithContext(ctx ...any) Logger {
	return &ctxLogger{ctx: ctx}
}

// ctxLogger binds attributes but defers to the current root for output.
type ctxLogger struct {
	ctx []any
}

func (l *ctxLogger) resolve() Logger {
	return Root().With(l.ctx...)
}

func (l *ctxLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	merged = append(merged, ctx...)
	return &ctxLogger{ctx: merged}
}

func (l *ctxLogger) New(ctx ...any) Logger {
	return l.With(ctx...)
}

func (l *ctxLogger) Handler() slog.Handler {
	return l.resolve().Handler()
}

func (l *ctxLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.resolve().Enabled(ctx, level)
}

// The forwarding methods below call Write on the resolved logger directly so
// the call depth stays the same as on a concrete logger and runtime.Caller
// still refers to client code.

func (l *ctxLogger) Write(level slog.Level, msg string, attrs ...any) {
	l.resolve().Write(level, msg, attrs...)
}

func (l *ctxLogger) Log(level slog.Level, msg string, ctx ...any) {
	l.resolve().Write(level, msg, ctx...)
}

func (l *ctxLogger) Trace(msg string, ctx ...any) {
	l.resolve().Write(LevelTrace, msg, ctx...)
}

func (l *ctxLogger) Debug(msg string, ctx ...any) {
	l.resolve().Write(slog.LevelDebug, msg, ctx...)
}

func (l *ctxLogger) Info(msg string, ctx ...any) {
	l.resolve().Write(slog.LevelInfo, msg, ctx...)
}

func (l *ctxLogger) Warn(msg string, ctx ...any) {
	l.resolve().Write(slog.LevelWarn, msg, ctx...)
}

func (l *ctxLogger) Error(msg string, ctx ...any) {
	l.resolve().Write(slog.LevelError, msg, ctx...)
}

func (l *ctxLogger) Crit(msg string, ctx ...any) {
	l.resolve().Write(LevelCrit, msg, ctx...)
}

// The following functions bypass the exported logger methods (logger.Debug,
// etc.) to keep the call depth the same for all paths to logger.Write so
// runtime.Caller(2) always refers to the call site in client code.

// Trace is a convenient alias for Root().Trace
func Trace(msg string, ctx ...any) {
	Root().Write(LevelTrace, msg, ctx...)
}

// Debug is a convenient alias for Root().Debug
func Debug(msg string, ctx ...any) {
	Root().Write(slog.LevelDebug, msg, ctx...)
}

// Info is a convenient alias for Root().Info
func Info(msg string, ctx ...any) {
	Root().Write(slog.LevelInfo, msg, ctx...)
}

// Warn is a convenient alias for Root().Warn
func Warn(msg string, ctx ...any) {
	Root().Write(slog.LevelWarn, msg, ctx...)
}

// Error is a convenient alias for Root().Error
func Error(msg string, ctx ...any) {
	Root().Write(slog.LevelError, msg, ctx...)
}

// Crit is a convenient alias for Root().Crit, it exits the process after logging.
func Crit(msg string, ctx ...any) {
	Root().Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}
