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

// Command export writes the synthetic boundary datasets as GeoJSON files,
// so that they can be used with the mapcolor command line tool.
package main

import (
	"flag"
	"log"
	"maps"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"

	"seehuhn.de/go/mapcolor/testcases"
)

func main() {
	dir := flag.String("dir", "testdata", "output directory")
	flag.Parse()

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(*dir, 0o755); err != nil {
		log.Fatal(err)
	}

	for _, name := range slices.Sorted(maps.Keys(testcases.All)) {
		data, err := testcases.All[name].GeoJSON()
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		fname := filepath.Join(*dir, name+".geojson")
		if err := afero.WriteFile(fs, fname, data, 0o644); err != nil {
			log.Fatal(err)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(testcases.Malformed)) {
		fname := filepath.Join(*dir, "malformed_"+name+".geojson")
		if err := afero.WriteFile(fs, fname, []byte(testcases.Malformed[name]), 0o644); err != nil {
			log.Fatal(err)
		}
	}
}
