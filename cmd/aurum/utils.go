// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"log/slog"
	"os"
	"path/filepath"

	isatty "github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/aurumchain/aurum/log"
	"github.com/aurumchain/aurum/lvldb"
)

func initLogger(ctx *cli.Context) {
	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stdout, level)
	} else {
		useColor := isatty.IsTerminal(os.Stdout.Fd())
		handler = log.NewTerminalHandlerWithLevel(os.Stdout, level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

// openDB opens the state database under dataDir, or an in-memory one when
// dataDir is empty.
func openDB(dataDir string) (*lvldb.LevelDB, error) {
	if dataDir == "" {
		return lvldb.NewMem()
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}
	return lvldb.New(filepath.Join(dataDir, "state.db"), lvldb.Options{})
}
