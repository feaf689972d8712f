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

package region

import (
	"slices"
	"sync"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/mapcolor/geometry"
)

// Index holds the regions of one boundary dataset.
type Index struct {
	regions []*Region // probe order: descending priority, then key
	byKey   map[string]*Region

	frame   rect.Rect // raw bounding box, after the longitude wrap
	wrapped bool

	adjOnce sync.Once
	adj     map[string][]string
}

// Len returns the number of regions.
func (ix *Index) Len() int {
	return len(ix.regions)
}

// Regions returns all regions in probe order. The caller must not modify
// the result.
func (ix *Index) Regions() []*Region {
	return ix.regions
}

// Keys returns the sorted keys of all regions.
func (ix *Index) Keys() []string {
	keys := make([]string, len(ix.regions))
	for i, r := range ix.regions {
		keys[i] = r.Key
	}
	slices.Sort(keys)
	return keys
}

// Lookup returns the region with the given key.
func (ix *Index) Lookup(key string) (*Region, bool) {
	r, ok := ix.byKey[key]
	return r, ok
}

// Frame returns the raw coordinate box which is mapped onto [-1,1]².
// If the longitude wrap was applied, the box uses the shifted longitudes.
func (ix *Index) Frame() rect.Rect {
	return ix.frame
}

// Wrapped reports whether negative longitudes were shifted by 360
// degrees when the index was loaded.
func (ix *Index) Wrapped() bool {
	return ix.wrapped
}

// Relativize maps a raw longitude/latitude pair into the frame of the
// index.
func (ix *Index) Relativize(raw geometry.Point) geometry.Point {
	if ix.wrapped && raw.X < 0 {
		raw.X += 360
	}
	return geometry.Relativize(raw, ix.frame)
}

// RegionAt returns the key of the region containing p.
// Regions are probed in order of descending priority and the first match
// is returned.
func (ix *Index) RegionAt(p geometry.Point) (string, bool) {
	for _, r := range ix.regions {
		if r.Polygons.Contains(p) {
			return r.Key, true
		}
	}
	return "", false
}

// Visible returns the sorted keys of all regions whose bounding box
// intersects view.
func (ix *Index) Visible(view rect.Rect) []string {
	var keys []string
	for _, r := range ix.regions {
		if geometry.Overlaps(r.Polygons.Bounds(), view) {
			keys = append(keys, r.Key)
		}
	}
	slices.Sort(keys)
	return keys
}
