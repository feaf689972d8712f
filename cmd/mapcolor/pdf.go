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
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/mapcolor"
	"seehuhn.de/go/mapcolor/config"
	"seehuhn.de/go/mapcolor/geometry"
	"seehuhn.de/go/mapcolor/region"
	"seehuhn.de/go/mapcolor/save"
)

// pageSize is the width and height of the exported page, in PDF points.
const pageSize = 600

func (a *app) pdfCmd() *cobra.Command {
	var storeDir string
	cmd := &cobra.Command{
		Use:   "pdf FILE OUT",
		Short: "export the map as PDF, shaded by coloring progress",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := a.loadIndex(args[0])
			if err != nil {
				return err
			}
			opts, err := config.NewOptions(a.cfg.Options)
			if err != nil {
				return err
			}
			storeCfg := a.cfg.Store
			if storeDir != "" {
				storeCfg = config.Store{Dir: storeDir}
			}
			progress, err := loadProgress(cmd.Context(), save.Open(storeCfg, a.fs), ix)
			if err != nil {
				return err
			}
			borders, _ := opts.Get("show_borders")
			return writeMap(args[1], ix, progress, borders)
		},
	}
	cmd.Flags().StringVar(&storeDir, "store", "", "directory of saved progress (default from the configuration)")
	return cmd
}

// loadProgress returns the saved completion of every region in ix.
// Regions whose key has no state part are skipped.
func loadProgress(ctx context.Context, store save.Store, ix *region.Index) (map[string]float64, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	byState := map[string]map[string]save.Record{}
	res := map[string]float64{}
	for _, key := range ix.Keys() {
		k, err := save.ParseKey(key)
		if err != nil {
			continue
		}
		recs, seen := byState[k.State]
		if !seen {
			recs, err = store.Records(ctx, k.State)
			if err != nil {
				return nil, err
			}
			byState[k.State] = recs
		}
		if rec, ok := recs[k.Region]; ok {
			res[key] = rec.Completion
		}
	}
	mapcolor.Logger().Debug("progress loaded", "states", len(byState), "regions", len(res))
	return res, nil
}

func writeMap(out string, ix *region.Index, progress map[string]float64, borders bool) error {
	paper := &pdf.Rectangle{URx: pageSize, URy: pageSize}
	page, err := document.CreateSinglePage(out, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// The normalised frame [-1,1]² fills the page.
	const h = pageSize / 2
	page.Transform(matrix.Matrix{h, 0, 0, h, h, h})

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(0.25 / h)
	for _, r := range ix.Regions() {
		page.SetFillColor(color.DeviceGray(1 - 0.7*progress[r.Key]))
		drawPath(page, geometry.RingPath(r.Polygons.Rings()...))
		page.Fill()
		drawPath(page, geometry.RingPath(r.Polygons.Rings()...))
		page.Stroke()
	}

	if borders {
		page.SetLineWidth(1.5 / h)
		adj := ix.Adjacency()
		for _, a := range ix.Keys() {
			for _, b := range adj[a] {
				if b < a {
					continue
				}
				for _, line := range ix.BorderLines(a, b) {
					if len(line) < 2 {
						continue
					}
					page.MoveTo(line[0].X, line[0].Y)
					for _, p := range line[1:] {
						page.LineTo(p.X, p.Y)
					}
				}
				page.Stroke()
			}
		}
	}

	if err := page.Close(); err != nil {
		return errors.Wrapf(err, "writing %s", out)
	}
	mapcolor.Logger().Info("map written", "file", out, "regions", ix.Len())
	return nil
}

// pathWriter is the part of a PDF page used to draw outlines.
type pathWriter interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

func drawPath(w pathWriter, p *path.Data) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			w.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			w.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			w.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			w.ClosePath()
		}
	}
}
