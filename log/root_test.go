// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureHandler records every handled record, folding in attributes bound
// via WithAttrs so derived loggers stay observable.
type captureHandler struct {
	mu      *sync.Mutex
	records *[]slog.Record
	attrs   []slog.Attr
}

func newCaptureHandler() *captureHandler {
	return &captureHandler{mu: new(sync.Mutex), records: new([]slog.Record)}
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	r.AddAttrs(h.attrs...)
	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, r)
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &captureHandler{mu: h.mu, records: h.records, attrs: merged}
}

func (h *captureHandler) WithGroup(string) slog.Handler { return h }

func (h *captureHandler) attrMap(t *testing.T, i int) map[string]string {
	h.mu.Lock()
	defer h.mu.Unlock()
	require.Greater(t, len(*h.records), i)
	attrs := map[string]string{}
	(*h.records)[i].Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})
	return attrs
}

func TestWithContextResolvesRootLazily(t *testing.T) {
	defer SetDefault(Root())

	// package-level loggers are created before any handler is installed
	lg := WithContext("pkg", "sample")

	capture := newCaptureHandler()
	SetDefault(NewLogger(capture))

	lg.Info("hello", "k", "v")

	require.Len(t, *capture.records, 1)
	assert.Equal(t, "hello", (*capture.records)[0].Message)

	attrs := capture.attrMap(t, 0)
	assert.Equal(t, "sample", attrs["pkg"])
	assert.Equal(t, "v", attrs["k"])
}

func TestWithContextWithMergesAttributes(t *testing.T) {
	defer SetDefault(Root())

	lg := WithContext("pkg", "sample").With("sub", "unit")

	capture := newCaptureHandler()
	SetDefault(NewLogger(capture))

	lg.Debug("nested")

	attrs := capture.attrMap(t, 0)
	assert.Equal(t, "sample", attrs["pkg"])
	assert.Equal(t, "unit", attrs["sub"])
}
