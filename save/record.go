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

// Package save persists coloring progress: one record per region with the
// filled cells and the completion ratio, and the region's encoded history.
package save

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"

	"seehuhn.de/go/mapcolor/coloring"
)

var (
	// ErrNotFound is returned when a store has no entry for a key.
	ErrNotFound = errors.New("not found")

	// ErrInvalidKey is returned for keys which cannot be stored.
	ErrInvalidKey = errors.New("invalid key")
)

// Key identifies a region within a state.
type Key struct {
	State  string
	Region string
}

// ParseKey splits a region index key at its last slash.
func ParseKey(s string) (Key, error) {
	i := strings.LastIndexByte(s, '/')
	if i <= 0 || i == len(s)-1 {
		return Key{}, errors.Wrapf(ErrInvalidKey, "%q", s)
	}
	return Key{State: s[:i], Region: s[i+1:]}, nil
}

func (k Key) String() string {
	return k.State + "/" + k.Region
}

func (k Key) check() error {
	if k.State == "" || k.Region == "" {
		return errors.Wrapf(ErrInvalidKey, "%q", k.String())
	}
	return nil
}

// Record is the saved coloring state of one region.
type Record struct {
	Color coloring.Color

	// ColoredPoints holds the filled cells as returned by
	// [coloring.Grid.AsBitSet]. It is nil for completed regions.
	ColoredPoints []byte

	Completion float64
}

// Complete reports whether the whole region has been coloured.
func (r Record) Complete() bool {
	return r.Completion >= 1
}

type recordJSON struct {
	Color         coloring.Color `json:"color"`
	ColoredPoints []byte         `json:"coloredPoints,omitempty"`
	Completion    float64        `json:"completion"`
}

// MarshalJSON implements [json.Marshaler]. The cells are gzip-compressed
// and base64-encoded; they are left out for completed regions.
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{Color: r.Color, Completion: r.Completion}
	if !r.Complete() {
		buf := &bytes.Buffer{}
		zw := gzip.NewWriter(buf)
		if _, err := zw.Write(r.ColoredPoints); err != nil {
			return nil, errors.Wrap(err, "compressing colored points")
		}
		if err := zw.Close(); err != nil {
			return nil, errors.Wrap(err, "compressing colored points")
		}
		out.ColoredPoints = buf.Bytes()
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	rec := Record{Color: in.Color, Completion: in.Completion}
	if !rec.Complete() && len(in.ColoredPoints) > 0 {
		zr, err := gzip.NewReader(bytes.NewReader(in.ColoredPoints))
		if err != nil {
			return errors.Wrap(err, "colored points")
		}
		rec.ColoredPoints, err = io.ReadAll(zr)
		if err != nil {
			return errors.Wrap(err, "colored points")
		}
	}
	*r = rec
	return nil
}
