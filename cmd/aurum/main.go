// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/aurumchain/aurum/api"
	"github.com/aurumchain/aurum/genesis"
	"github.com/aurumchain/aurum/log"
	"github.com/aurumchain/aurum/metrics"
	"github.com/aurumchain/aurum/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Aurum",
		Usage:     "Aurum economic-contract playground node",
		Copyright: "2025 The Aurum developers",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
		},
		Action: runAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAction(ctx *cli.Context) error {
	initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	db, err := openDB(ctx.String(dataDirFlag.Name))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	config := &genesis.Config{Admin: devAdmin}
	if path := ctx.String(genesisFlag.Name); path != "" {
		if config, err = genesis.Load(path); err != nil {
			return err
		}
	}
	st := state.New(db)
	b, err := config.Apply(st)
	if err != nil {
		return fmt.Errorf("apply genesis: %w", err)
	}

	now := func() uint64 { return uint64(time.Now().Unix()) }
	handler := api.New(b, now, api.Options{
		AllowedOrigins: ctx.String(apiCorsFlag.Name),
		EnableMetrics:  ctx.Bool(enableMetricsFlag.Name),
	})

	listener, err := net.Listen("tcp", ctx.String(apiAddrFlag.Name))
	if err != nil {
		return fmt.Errorf("listen API address: %w", err)
	}
	server := &http.Server{Handler: handler}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()
	log.Info("API server started", "addr", listener.Addr(), "version", fullVersion())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// devAdmin is the throwaway admin of a dev node started without a genesis file.
const devAdmin = "0x000000000000000000000000000000000000dead"
