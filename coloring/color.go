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
	"image/color"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Color is one of the fill colours a region can be coloured with.
type Color int

const (
	Red Color = iota
	Orange
	Yellow
	Green
	Teal
	Blue
	Purple
	Pink
)

var colorNames = [...]string{
	Red:    "red",
	Orange: "orange",
	Yellow: "yellow",
	Green:  "green",
	Teal:   "teal",
	Blue:   "blue",
	Purple: "purple",
	Pink:   "pink",
}

var colorValues = [...]color.NRGBA{
	Red:    {R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
	Orange: {R: 0xfb, G: 0x8c, B: 0x00, A: 0xff},
	Yellow: {R: 0xfd, G: 0xd8, B: 0x35, A: 0xff},
	Green:  {R: 0x43, G: 0xa0, B: 0x47, A: 0xff},
	Teal:   {R: 0x00, G: 0x89, B: 0x7b, A: 0xff},
	Blue:   {R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
	Purple: {R: 0x8e, G: 0x24, B: 0xaa, A: 0xff},
	Pink:   {R: 0xd8, G: 0x1b, B: 0x60, A: 0xff},
}

// Colors lists all colours in order.
var Colors = []Color{Red, Orange, Yellow, Green, Teal, Blue, Purple, Pink}

// Valid reports whether c is one of the defined colours.
func (c Color) Valid() bool {
	return c >= 0 && int(c) < len(colorNames)
}

// String returns the lower case name of the colour.
func (c Color) String() string {
	if !c.Valid() {
		return "Color(" + strconv.Itoa(int(c)) + ")"
	}
	return colorNames[c]
}

// ParseColor returns the colour with the given lower case name.
func ParseColor(name string) (Color, error) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return 0, errors.Newf("unknown colour %q", name)
}

// MarshalText implements [encoding.TextMarshaler].
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.Newf("invalid colour %d", int(c))
	}
	return []byte(colorNames[c]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// RGBA returns the display colour. Invalid colours are shown in grey.
func (c Color) RGBA() color.NRGBA {
	if !c.Valid() {
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	return colorValues[c]
}
