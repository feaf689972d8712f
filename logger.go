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

// Package mapcolor is the geometric and state-tracking core of a map
// colouring application.
//
// The sub-packages split the work as follows:
//   - [seehuhn.de/go/mapcolor/geometry]: point-in-polygon, triangulation,
//     coordinate normalisation and stroke expansion
//   - [seehuhn.de/go/mapcolor/region]: indexed sets of named multi-part
//     regions loaded from GeoJSON
//   - [seehuhn.de/go/mapcolor/raster]: polygon rasterisation into cell masks
//   - [seehuhn.de/go/mapcolor/coloring]: the per-cell colouring grid and its
//     compressed snapshot history
//   - [seehuhn.de/go/mapcolor/save]: persistence records and stores
//   - [seehuhn.de/go/mapcolor/session]: a single colouring session
//
// By default nothing is logged. Use [SetLogger] to enable logging.
package mapcolor

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled reports false, so callers skip
// formatting altogether.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by mapcolor and all its sub-packages.
// Passing nil restores the default, silent logger.
//
// Log levels used:
//   - [slog.LevelDebug]: load statistics, stream sizes, snapshot bookkeeping
//   - [slog.LevelInfo]: lifecycle events (session started, save completed)
//   - [slog.LevelWarn]: input oddities which do not stop processing
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
