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

package session

import (
	"context"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/mapcolor/coloring"
	"seehuhn.de/go/mapcolor/config"
	"seehuhn.de/go/mapcolor/geometry"
	"seehuhn.de/go/mapcolor/region"
	"seehuhn.de/go/mapcolor/save"
	"seehuhn.de/go/mapcolor/testcases"
)

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Resolution = 16
	cfg.Downsample = 4
	cfg.BrushRadius = 2
	cfg.SnapshotEvery = 1
	return cfg
}

var key = save.Key{State: "XX", Region: "R1C1"}

func TestStrokes(t *testing.T) {
	s, err := New(smallConfig(), key, coloring.Orange, nil)
	require.NoError(t, err)

	require.Positive(t, s.BeginStroke(geometry.Point{X: 2, Y: 2}))
	s.ContinueStroke(geometry.Point{X: 12, Y: 2})
	require.NoError(t, s.EndStroke())

	for x := 2; x <= 12; x++ {
		require.True(t, s.Grid().Get(x, 2))
	}
	require.Equal(t, 1, s.History().Len())

	// ending twice records nothing
	require.NoError(t, s.EndStroke())
	require.Equal(t, 1, s.History().Len())

	// a stroke which changes nothing in the downsampled grid is skipped
	s.BeginStroke(geometry.Point{X: 2, Y: 2})
	require.NoError(t, s.EndStroke())
	require.Equal(t, 1, s.History().Len())
}

func TestSnapshotCadence(t *testing.T) {
	cfg := smallConfig()
	cfg.SnapshotEvery = 2
	s, err := New(cfg, key, coloring.Red, nil)
	require.NoError(t, err)

	for i := range 4 {
		s.BeginStroke(geometry.Point{X: 2 + 4*float64(i), Y: 2})
		require.NoError(t, s.EndStroke())
	}
	require.Equal(t, 2, s.History().Len())
}

func TestHistoryStaysBounded(t *testing.T) {
	cfg := smallConfig()
	cfg.Resolution = 64
	cfg.Downsample = 1
	cfg.BrushRadius = 1
	s, err := New(cfg, key, coloring.Green, nil)
	require.NoError(t, err)

	for i := range 2 * coloring.MaxSnapshots {
		s.BeginStroke(geometry.Point{X: float64(i), Y: 5})
		require.NoError(t, s.EndStroke())
	}
	h := s.History()
	require.Equal(t, coloring.MaxSnapshots, h.Len())
	require.True(t, h.At(h.Len()-1).Equal(s.Grid().Snapshot(coloring.Green)))
}

func TestMaskSize(t *testing.T) {
	_, err := New(smallConfig(), key, coloring.Red, bitset.New(10))
	require.ErrorIs(t, err, coloring.ErrSizeMismatch)

	_, err = New(smallConfig(), key, coloring.Color(42), nil)
	require.Error(t, err)
}

func regionMask(t *testing.T, name string, side int) *bitset.BitSet {
	t.Helper()
	ix, err := region.Load(testcases.Enclave().Reader(), config.Default().Boundaries)
	require.NoError(t, err)
	mask, err := ix.Mask(name, side)
	require.NoError(t, err)
	return mask
}

func TestCheckpointAndResume(t *testing.T) {
	cfg := smallConfig()
	mask := regionMask(t, "VA/Fairfax City", cfg.Resolution)
	k := save.Key{State: "VA", Region: "Fairfax City"}

	s, err := New(cfg, k, coloring.Purple, mask)
	require.NoError(t, err)
	s.BeginStroke(geometry.Point{X: 4, Y: 4})
	s.ContinueStroke(geometry.Point{X: 8, Y: 8})
	require.NoError(t, s.EndStroke())

	cp, err := s.Checkpoint()
	require.NoError(t, err)
	completion := s.Completion()
	require.Greater(t, completion, 0.0)
	require.Less(t, completion, 1.0)
	require.Equal(t, completion, cp.Record.Completion)

	// the checkpoint is frozen
	s.BeginStroke(geometry.Point{X: 12, Y: 12})
	require.NoError(t, s.EndStroke())
	require.NotEqual(t, s.Grid().AsBitSet(), cp.Record.ColoredPoints)

	store := save.NewFileStore(afero.NewMemMapFs(), "saves")
	require.NoError(t, Save(context.Background(), store, cp))

	rec, err := store.LoadRecord(context.Background(), k)
	require.NoError(t, err)
	hist, err := store.LoadHistory(context.Background(), k)
	require.NoError(t, err)

	r, err := Resume(cfg, k, rec, hist, mask)
	require.NoError(t, err)
	require.Equal(t, completion, r.Completion())
	require.Equal(t, coloring.Purple, r.Color())
	require.Equal(t, 1, r.History().Len())
}

func TestCompletedRegion(t *testing.T) {
	cfg := smallConfig()
	cfg.BrushRadius = 30
	s, err := New(cfg, key, coloring.Yellow, nil)
	require.NoError(t, err)
	s.BeginStroke(geometry.Point{X: 8, Y: 8})
	require.NoError(t, s.EndStroke())
	require.Equal(t, 1.0, s.Completion())

	cp, err := s.Checkpoint()
	require.NoError(t, err)
	require.Nil(t, cp.Record.ColoredPoints)

	store := save.NewFileStore(afero.NewMemMapFs(), "saves")
	k, err := SaveAsync(store, cp).Wait()
	require.NoError(t, err)
	require.Equal(t, key, k)

	rec, err := store.LoadRecord(context.Background(), key)
	require.NoError(t, err)
	require.True(t, rec.Complete())

	r, err := Resume(cfg, key, rec, cp.History, nil)
	require.NoError(t, err)
	require.Equal(t, 1.0, r.Completion())
}

func TestRestartReplacesHistory(t *testing.T) {
	cfg := smallConfig()
	store := save.NewFileStore(afero.NewMemMapFs(), "saves")
	ctx := context.Background()

	first, err := New(cfg, key, coloring.Red, nil)
	require.NoError(t, err)
	first.BeginStroke(geometry.Point{X: 8, Y: 8})
	require.NoError(t, first.EndStroke())
	cp, err := first.Checkpoint()
	require.NoError(t, err)
	require.NoError(t, Save(ctx, store, cp))

	// start the region again and save before any stroke
	second, err := New(cfg, key, coloring.Red, nil)
	require.NoError(t, err)
	cp, err = second.Checkpoint()
	require.NoError(t, err)
	require.Empty(t, cp.History)
	require.NoError(t, Save(ctx, store, cp))

	rec, err := store.LoadRecord(ctx, key)
	require.NoError(t, err)
	hist, err := store.LoadHistory(ctx, key)
	require.NoError(t, err)
	require.Empty(t, hist)

	r, err := Resume(cfg, key, rec, hist, nil)
	require.NoError(t, err)
	require.Zero(t, r.Grid().Cardinality())
	require.Zero(t, r.History().Len())
}
