// seehuhn.de/go/mapcolor - geometry and colouring state for map colouring
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command mapcolor inspects boundary files and saved coloring progress.
//
// Usage:
//
//	mapcolor regions FILE
//	mapcolor locate FILE LON LAT
//	mapcolor adjacent FILE [KEY]
//	mapcolor history FILE --side N --color C [--frames DIR --scale K]
//	mapcolor pdf FILE OUT [--store DIR]
//
// Settings are read from a YAML file given by --config. Logging is
// controlled by the LOG_LEVEL and LOG_FORMAT environment variables, which
// may also be set in a .env file in the current directory.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"seehuhn.de/go/mapcolor"
	"seehuhn.de/go/mapcolor/config"
	"seehuhn.de/go/mapcolor/region"
)

// app holds the state shared by all subcommands.
type app struct {
	fs         afero.Fs
	configFile string
	logLevel   string
	cfg        config.Config
}

func main() {
	_ = godotenv.Load(".env")

	a := &app{fs: afero.NewOsFs()}
	if err := a.rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mapcolor:", err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mapcolor",
		Short:         "inspect map coloring data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			mapcolor.SetLogger(newLogger(a.logLevel))
			return a.loadConfig()
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", os.Getenv("LOG_LEVEL"),
		"log level (debug, info, warn or error)")

	root.AddCommand(
		a.regionsCmd(),
		a.locateCmd(),
		a.adjacentCmd(),
		a.historyCmd(),
		a.pdfCmd(),
	)
	return root
}

func (a *app) loadConfig() error {
	if a.configFile == "" {
		a.cfg = config.Default()
		return nil
	}
	cfg, err := config.Load(a.fs, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) loadIndex(name string) (*region.Index, error) {
	ix, err := region.LoadFile(a.fs, name, a.cfg.Boundaries)
	if err != nil {
		return nil, err
	}
	mapcolor.Logger().Info("boundaries loaded", "file", name, "regions", ix.Len())
	return ix, nil
}

// newLogger builds a logger writing to stderr. LOG_FORMAT=json selects
// JSON output.
func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(h)
}
