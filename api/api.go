// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api assembles the HTTP router over the native contracts.
package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	stakingapi "github.com/aurumchain/aurum/api/staking"
	"github.com/aurumchain/aurum/builtin"
	"github.com/aurumchain/aurum/log"
	"github.com/aurumchain/aurum/metrics"
)

var logger = log.WithContext("pkg", "api")

// Options tunes the assembled router.
type Options struct {
	AllowedOrigins string
	EnableMetrics  bool
}

// New returns the assembled handler.
func New(b *builtin.Builtin, now func() uint64, opts Options) http.HandlerFunc {
	router := mux.NewRouter()

	stakingapi.New(b.Staking, now).Mount(router, "/staking")
	if opts.EnableMetrics {
		router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	}

	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.TrimSpace(o)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	return func(w http.ResponseWriter, req *http.Request) {
		logger.Debug("handling request", "method", req.Method, "url", req.URL.Path)
		handler.ServeHTTP(w, req)
	}
}
