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

// Package session drives the coloring of one region: brush strokes are
// applied to the grid, snapshots are recorded into the history, and
// frozen checkpoints are written to a store while coloring goes on.
package session

import (
	"context"

	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/mapcolor"
	"seehuhn.de/go/mapcolor/coloring"
	"seehuhn.de/go/mapcolor/config"
	"seehuhn.de/go/mapcolor/geometry"
	"seehuhn.de/go/mapcolor/pending"
	"seehuhn.de/go/mapcolor/save"
)

// Session is the coloring state of one region.
// A Session must only be used by one goroutine at a time.
type Session struct {
	cfg   config.Config
	key   save.Key
	color coloring.Color

	grid *coloring.Grid
	hist *coloring.History
	mask *bitset.BitSet

	stroking bool
	last     geometry.Point
	strokes  int
}

// New starts coloring a region from scratch.
//
// The mask marks the grid cells inside the region, as returned by
// region.Index.Mask with side cfg.Resolution. If mask is nil, all cells
// count.
func New(cfg config.Config, key save.Key, c coloring.Color, mask *bitset.BitSet) (*Session, error) {
	grid, err := coloring.NewGrid(cfg.Resolution, cfg.Downsample)
	if err != nil {
		return nil, err
	}
	return newSession(cfg, key, c, grid, coloring.NewHistory(grid.SmallSide()), mask)
}

// Resume continues coloring from a saved record and its encoded history.
// A completed record carries no cells; its grid is filled from the mask.
func Resume(cfg config.Config, key save.Key, rec save.Record, history []byte, mask *bitset.BitSet) (*Session, error) {
	var grid *coloring.Grid
	var err error
	if rec.Complete() {
		grid, err = coloring.NewGrid(cfg.Resolution, cfg.Downsample)
		if err == nil {
			fill(grid, mask)
		}
	} else {
		grid, err = coloring.FromBitSet(cfg.Resolution, cfg.Downsample, rec.ColoredPoints)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "resuming %s", key)
	}

	hist, err := coloring.DecodeHistory(history, rec.Color, grid.SmallSide())
	if err != nil {
		return nil, errors.Wrapf(err, "resuming %s", key)
	}
	return newSession(cfg, key, rec.Color, grid, hist, mask)
}

func newSession(cfg config.Config, key save.Key, c coloring.Color, grid *coloring.Grid, hist *coloring.History, mask *bitset.BitSet) (*Session, error) {
	if !c.Valid() {
		return nil, errors.Newf("invalid colour %d", int(c))
	}
	n := uint(grid.Side() * grid.Side())
	if mask != nil && mask.Len() != n {
		return nil, errors.Wrapf(coloring.ErrSizeMismatch,
			"mask has %d cells, grid has %d", mask.Len(), n)
	}
	return &Session{
		cfg:   cfg,
		key:   key,
		color: c,
		grid:  grid,
		hist:  hist,
		mask:  mask,
	}, nil
}

// fill sets every cell of the mask, or the whole grid if mask is nil.
func fill(g *coloring.Grid, mask *bitset.BitSet) {
	side := g.Side()
	if mask == nil {
		for y := range side {
			for x := range side {
				g.Set(x, y)
			}
		}
		return
	}
	for i, ok := mask.NextSet(0); ok; i, ok = mask.NextSet(i + 1) {
		g.Set(int(i)%side, int(i)/side)
	}
}

// Key returns the region being coloured.
func (s *Session) Key() save.Key {
	return s.key
}

// Color returns the fill colour.
func (s *Session) Color() coloring.Color {
	return s.color
}

// Grid returns the coloring grid. The caller must not modify it.
func (s *Session) Grid() *coloring.Grid {
	return s.grid
}

// History returns the snapshot history. The caller must not modify it.
func (s *Session) History() *coloring.History {
	return s.hist
}

// BeginStroke puts the brush down at p, in grid coordinates.
// It returns the number of newly filled cells.
func (s *Session) BeginStroke(p geometry.Point) int {
	s.stroking = true
	s.last = p
	return s.grid.ApplyBrush(p, s.cfg.BrushRadius)
}

// ContinueStroke drags the brush from the previous sample to p.
// Without an active stroke this starts a new one.
func (s *Session) ContinueStroke(p geometry.Point) int {
	if !s.stroking {
		return s.BeginStroke(p)
	}
	n := s.grid.Stroke(s.last, p, s.cfg.BrushRadius)
	s.last = p
	return n
}

// EndStroke lifts the brush. Every SnapshotEvery strokes the downsampled
// grid is recorded in the history; once the history is full, the last
// snapshot is overwritten so that playback ends on the latest state.
func (s *Session) EndStroke() error {
	if !s.stroking {
		return nil
	}
	s.stroking = false
	s.strokes++
	every := max(s.cfg.SnapshotEvery, 1)
	if s.strokes%every != 0 {
		return nil
	}
	return s.record()
}

func (s *Session) record() error {
	snap := s.grid.Snapshot(s.color)
	if n := s.hist.Len(); n > 0 && s.hist.At(n-1).Equal(snap) {
		return nil
	}
	err := s.hist.Add(snap)
	if errors.Is(err, coloring.ErrHistoryFull) {
		err = s.hist.ReplaceLast(snap)
	}
	return err
}

// Completion returns the fraction of the region which is coloured.
func (s *Session) Completion() float64 {
	if s.mask == nil {
		return s.grid.Progress()
	}
	return s.grid.Completion(s.mask)
}

// Checkpoint is a frozen copy of a session, ready to be saved.
type Checkpoint struct {
	Key     save.Key
	Record  save.Record
	History []byte
}

// Checkpoint captures the current state. The result does not share
// memory with the session.
func (s *Session) Checkpoint() (Checkpoint, error) {
	hist, err := s.hist.Encode()
	if err != nil {
		return Checkpoint{}, err
	}
	rec := save.Record{Color: s.color, Completion: s.Completion()}
	if !rec.Complete() {
		rec.ColoredPoints = s.grid.AsBitSet()
	}
	return Checkpoint{Key: s.key, Record: rec, History: hist}, nil
}

// Save writes the record and the history of cp to store.
func Save(ctx context.Context, store save.Store, cp Checkpoint) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return store.SaveRecord(ctx, cp.Key, cp.Record)
	})
	// An empty history is written too, so that a restarted region does
	// not keep the snapshots of an earlier session.
	g.Go(func() error {
		return store.SaveHistory(ctx, cp.Key, cp.History)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	mapcolor.Logger().Debug("checkpoint saved",
		"key", cp.Key.String(),
		"completion", cp.Record.Completion,
		"history_bytes", len(cp.History))
	return nil
}

// SaveAsync runs Save in the background.
func SaveAsync(store save.Store, cp Checkpoint) *pending.Task[save.Key] {
	return pending.Start(func() (save.Key, error) {
		return cp.Key, Save(context.Background(), store, cp)
	})
}
