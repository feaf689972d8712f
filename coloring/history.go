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

package coloring

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"image"
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	xdraw "golang.org/x/image/draw"

	"seehuhn.de/go/mapcolor/pending"
)

// MaxSnapshots is the maximum number of snapshots in a History.
const MaxSnapshots = 20

var (
	// ErrHistoryFull is returned by [History.Add] once MaxSnapshots
	// snapshots have been recorded.
	ErrHistoryFull = errors.New("history is full")

	// ErrCorruptHistory is returned when an encoded history cannot be
	// decoded.
	ErrCorruptHistory = errors.New("corrupt history")
)

// Snapshot is the downsampled grid of a region at one point in time.
// The bit map must not be modified once the snapshot is taken.
type Snapshot struct {
	Color Color
	Bits  *bitset.BitSet
}

// Equal reports whether two snapshots have the same cells set.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Bits == nil || other.Bits == nil {
		return s.Bits == other.Bits
	}
	return s.Bits.Equal(other.Bits)
}

// History is the ordered list of snapshots of one region.
type History struct {
	side  int
	snaps []Snapshot

	frames []image.Image
	next   int // index of the first snapshot without a frame
}

// NewHistory returns an empty history for downsampled grids of the given
// side length.
func NewHistory(side int) *History {
	return &History{side: side}
}

// Side returns the side length of the downsampled grids.
func (h *History) Side() int {
	return h.side
}

// Len returns the number of snapshots.
func (h *History) Len() int {
	return len(h.snaps)
}

// At returns snapshot i.
func (h *History) At(i int) Snapshot {
	return h.snaps[i]
}

// Snapshots returns the snapshots in recording order.
func (h *History) Snapshots() []Snapshot {
	return append([]Snapshot(nil), h.snaps...)
}

func (h *History) check(s Snapshot) error {
	n := uint(h.side * h.side)
	if s.Bits == nil || s.Bits.Len() != n {
		var got uint
		if s.Bits != nil {
			got = s.Bits.Len()
		}
		return errors.Wrapf(ErrSizeMismatch, "snapshot has %d cells, want %d", got, n)
	}
	return nil
}

// Add appends a snapshot.
func (h *History) Add(s Snapshot) error {
	if err := h.check(s); err != nil {
		return err
	}
	if len(h.snaps) >= MaxSnapshots {
		return ErrHistoryFull
	}
	h.snaps = append(h.snaps, s)
	return nil
}

// ReplaceLast overwrites the most recent snapshot. On an empty history
// this is the same as Add.
func (h *History) ReplaceLast(s Snapshot) error {
	if len(h.snaps) == 0 {
		return h.Add(s)
	}
	if err := h.check(s); err != nil {
		return err
	}
	last := len(h.snaps) - 1
	h.snaps[last] = s
	if h.next > last {
		h.next = last
		h.frames = h.frames[:last]
	}
	return nil
}

// run is a maximal range of consecutive set bits.
type run struct {
	start, length uint32
}

// runsOf lists the runs of set bits in b, in increasing order.
func runsOf(b *bitset.BitSet) []run {
	var res []run
	var i uint
	for {
		start, ok := b.NextSet(i)
		if !ok {
			return res
		}
		end, found := b.NextClear(start)
		if !found || end > b.Len() {
			end = b.Len()
		}
		res = append(res, run{start: uint32(start), length: uint32(end - start)})
		i = end
	}
}

// Encode serialises the history. Each snapshot becomes one record holding
// the cells which are new relative to the previous snapshot: a uvarint run
// count, followed by that many big-endian uint32 pairs (start, length).
// The concatenated records are gzip-compressed. An empty history encodes
// as an empty slice.
func (h *History) Encode() ([]byte, error) {
	if len(h.snaps) == 0 {
		return []byte{}, nil
	}

	buf := &bytes.Buffer{}
	zw := gzip.NewWriter(buf)
	prev := bitset.New(uint(h.side * h.side))
	var rec []byte
	for _, s := range h.snaps {
		runs := runsOf(s.Bits.Difference(prev))
		rec = binary.AppendUvarint(rec[:0], uint64(len(runs)))
		for _, r := range runs {
			rec = binary.BigEndian.AppendUint32(rec, r.start)
			rec = binary.BigEndian.AppendUint32(rec, r.length)
		}
		if _, err := zw.Write(rec); err != nil {
			return nil, errors.Wrap(err, "compressing history")
		}
		prev = s.Bits
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "compressing history")
	}
	return buf.Bytes(), nil
}

// readRecords decompresses an encoded history and calls fn once per
// record. Runs are checked against a grid of n cells.
func readRecords(data []byte, n uint64, fn func([]run) error) error {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return errors.Mark(errors.Wrap(err, "history header"), ErrCorruptHistory)
	}
	defer zr.Close()
	br := bufio.NewReader(zr)

	for k := 0; ; k++ {
		count, err := binary.ReadUvarint(br)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Mark(errors.Wrapf(err, "record %d", k), ErrCorruptHistory)
		}
		if k >= MaxSnapshots {
			return errors.Wrapf(ErrCorruptHistory, "more than %d records", MaxSnapshots)
		}
		if count > n {
			return errors.Wrapf(ErrCorruptHistory, "record %d: %d runs", k, count)
		}

		runs := make([]run, count)
		var pair [8]byte
		for j := range runs {
			if _, err := io.ReadFull(br, pair[:]); err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				return errors.Mark(errors.Wrapf(err, "record %d", k), ErrCorruptHistory)
			}
			r := run{
				start:  binary.BigEndian.Uint32(pair[:4]),
				length: binary.BigEndian.Uint32(pair[4:]),
			}
			if uint64(r.start)+uint64(r.length) > n {
				return errors.Wrapf(ErrCorruptHistory,
					"record %d: run %d+%d outside %d cells", k, r.start, r.length, n)
			}
			runs[j] = r
		}
		if err := fn(runs); err != nil {
			return err
		}
	}
}

// DecodeHistory reverses [History.Encode]. All snapshots are tagged with
// colour c. An empty input gives an empty history.
func DecodeHistory(data []byte, c Color, side int) (*History, error) {
	h := NewHistory(side)
	if len(data) == 0 {
		return h, nil
	}

	acc := bitset.New(uint(side * side))
	err := readRecords(data, uint64(side*side), func(runs []run) error {
		for _, r := range runs {
			for i := r.start; i < r.start+r.length; i++ {
				acc.Set(uint(i))
			}
		}
		h.snaps = append(h.snaps, Snapshot{Color: c, Bits: acc.Clone()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// DecodeHistoryAsync runs DecodeHistory in the background.
func DecodeHistoryAsync(data []byte, c Color, side int) *pending.Task[*History] {
	return pending.Start(func() (*History, error) {
		return DecodeHistory(data, c, side)
	})
}

// Pending reports whether some snapshots have not been rasterised yet.
func (h *History) Pending() bool {
	return h.next < len(h.snaps)
}

// RasterizeNext turns the next snapshot into an image, where every set
// cell becomes a scale×scale block in the snapshot's colour and all other
// pixels are transparent. The second return value is false once every
// snapshot has a frame. Calling this once per tick keeps the work per
// tick bounded.
func (h *History) RasterizeNext(scale int) (image.Image, bool) {
	if !h.Pending() {
		return nil, false
	}
	s := h.snaps[h.next]

	src := image.NewNRGBA(image.Rect(0, 0, h.side, h.side))
	col := s.Color.RGBA()
	for i, ok := s.Bits.NextSet(0); ok; i, ok = s.Bits.NextSet(i + 1) {
		src.SetNRGBA(int(i)%h.side, int(i)/h.side, col)
	}

	var frame image.Image = src
	if scale > 1 {
		dst := image.NewNRGBA(image.Rect(0, 0, h.side*scale, h.side*scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		frame = dst
	}

	h.frames = append(h.frames, frame)
	h.next++
	return frame, true
}

// Frames returns the images produced so far by RasterizeNext.
func (h *History) Frames() []image.Image {
	return append([]image.Image(nil), h.frames...)
}
