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

package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"seehuhn.de/go/mapcolor/geometry"
	"seehuhn.de/go/mapcolor/region"
)

func (a *app) regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions FILE",
		Short: "list the regions of a boundary file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := a.loadIndex(args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tPARTS\tTRIANGLES\tPRIORITY\tAREA")
			for _, key := range ix.Keys() {
				r, _ := ix.Lookup(key)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s km²\n",
					key, r.Polygons.Len(), r.Polygons.NumTriangles(), r.Priority,
					humanize.Comma(int64(r.AreaKm2+0.5)))
			}
			if ix.Wrapped() {
				fmt.Fprintln(w, "(longitudes wrapped across the antimeridian)")
			}
			return w.Flush()
		},
	}
}

func (a *app) locateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate FILE LON LAT",
		Short: "find the region containing a coordinate",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.Wrap(err, "longitude")
			}
			lat, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return errors.Wrap(err, "latitude")
			}
			ix, err := a.loadIndex(args[0])
			if err != nil {
				return err
			}
			key, ok := ix.RegionAt(ix.Relativize(geometry.Point{X: lon, Y: lat}))
			if !ok {
				return errors.Newf("no region at %g, %g", lon, lat)
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}

func (a *app) adjacentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adjacent FILE [KEY]",
		Short: "list neighbouring regions",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := a.loadIndex(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 2 {
				if _, ok := ix.Lookup(args[1]); !ok {
					return errors.Wrapf(region.ErrUnknownRegion, "%q", args[1])
				}
				for _, other := range ix.AdjacentRegions(args[1]) {
					fmt.Fprintf(out, "%s\t%d shared edges\n", other, len(ix.SharedEdges(args[1], other)))
				}
				return nil
			}
			adj := ix.Adjacency()
			for _, key := range ix.Keys() {
				fmt.Fprintf(out, "%s: %s\n", key, strings.Join(adj[key], ", "))
			}
			return nil
		},
	}
}
