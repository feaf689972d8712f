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
	"image/png"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"seehuhn.de/go/mapcolor/coloring"
)

func (a *app) historyCmd() *cobra.Command {
	var (
		side      int
		colorName string
		framesDir string
		scale     int
	)
	cmd := &cobra.Command{
		Use:   "history FILE",
		Short: "decode a history stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := coloring.ParseColor(colorName)
			if err != nil {
				return err
			}
			if side <= 0 {
				side = a.cfg.Resolution / a.cfg.Downsample
			}
			data, err := afero.ReadFile(a.fs, args[0])
			if err != nil {
				return err
			}
			h, err := coloring.DecodeHistory(data, c, side)
			if err != nil {
				return errors.Wrapf(err, "%s", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, %d snapshots of %d×%d cells\n",
				humanize.Bytes(uint64(len(data))), h.Len(), side, side)
			for i, s := range h.Snapshots() {
				n := s.Bits.Count()
				fmt.Fprintf(out, "%3d  %6d cells  %5.1f%%\n",
					i, n, 100*float64(n)/float64(side*side))
			}

			if framesDir == "" {
				return nil
			}
			if err := a.fs.MkdirAll(framesDir, 0o755); err != nil {
				return err
			}
			for i := 0; h.Pending(); i++ {
				img, _ := h.RasterizeNext(scale)
				name := filepath.Join(framesDir, fmt.Sprintf("frame%02d.png", i))
				f, err := a.fs.Create(name)
				if err != nil {
					return err
				}
				err = png.Encode(f, img)
				if cerr := f.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return errors.Wrapf(err, "writing %s", name)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&side, "side", 0, "side of the downsampled grid (default from the configuration)")
	cmd.Flags().StringVar(&colorName, "color", coloring.Red.String(), "colour of the frames")
	cmd.Flags().StringVar(&framesDir, "frames", "", "directory for PNG frames")
	cmd.Flags().IntVar(&scale, "scale", 4, "pixels per cell in the frames")
	return cmd
}
