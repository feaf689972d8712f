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

// Package config holds the settings which are passed explicitly to the
// region, coloring and session constructors.
package config

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalid is returned for settings which cannot be used.
	ErrInvalid = errors.New("invalid configuration")

	// ErrDuplicateOption is returned when two options use the same key.
	ErrDuplicateOption = errors.New("duplicate option key")
)

// Config collects all settings.
type Config struct {
	// Resolution is the side length S of the coloring grid, in cells.
	Resolution int `yaml:"resolution"`

	// Downsample is the factor D between the coloring grid and the
	// downsampled grid used for history snapshots. Resolution must be a
	// multiple of Downsample.
	Downsample int `yaml:"downsample"`

	// BrushRadius is the brush radius in grid cells.
	BrushRadius float64 `yaml:"brush_radius"`

	// SnapshotEvery is the number of completed strokes between two
	// history snapshots.
	SnapshotEvery int `yaml:"snapshot_every"`

	// RenderSize is the size, in render units, of the normalised frame.
	RenderSize float64 `yaml:"render_size"`

	Boundaries Boundaries `yaml:"boundaries"`
	Options    []Option   `yaml:"options"`
	Store      Store      `yaml:"store"`
}

// Boundaries describes how features of a boundary file become regions.
type Boundaries struct {
	// NameProperty is the feature property holding the display name.
	NameProperty string `yaml:"name_property"`

	// KeyProperties are the feature properties which, together with the
	// name, make a region key unique (for example the state code).
	KeyProperties []string `yaml:"key_properties"`

	// Priority assigns probe priorities to features. Regions with higher
	// priority are tested first by point lookups.
	Priority []PriorityRule `yaml:"priority"`
}

// PriorityRule gives all features whose Property equals Value the
// priority Priority.
type PriorityRule struct {
	Property string `yaml:"property"`
	Value    string `yaml:"value"`
	Priority int    `yaml:"priority"`
}

// PriorityOf returns the highest priority of all rules matching props,
// or 0 if no rule matches.
func (b Boundaries) PriorityOf(props map[string]any) int {
	prio := 0
	matched := false
	for _, rule := range b.Priority {
		v, ok := props[rule.Property].(string)
		if !ok || v != rule.Value {
			continue
		}
		if !matched || rule.Priority > prio {
			prio = rule.Priority
			matched = true
		}
	}
	return prio
}

// Store selects where coloring progress is kept.
type Store struct {
	// Dir is the directory of the file store.
	Dir string `yaml:"dir"`

	// RedisAddr selects the redis store if non-empty.
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
}

// Default returns the default settings.
func Default() Config {
	return Config{
		Resolution:    512,
		Downsample:    4,
		BrushRadius:   6,
		SnapshotEvery: 1,
		RenderSize:    1000,
		Boundaries: Boundaries{
			NameProperty:  "NAME",
			KeyProperties: []string{"STATE"},
			Priority: []PriorityRule{
				{Property: "LSAD", Value: "city", Priority: 1},
			},
		},
		Options: []Option{
			{Key: "show_borders", Default: true},
			{Key: "show_names", Default: true},
			{Key: "replay_history", Default: true},
		},
		Store: Store{Dir: "saves"},
	}
}

// Validate checks that the settings can be used.
func (c Config) Validate() error {
	switch {
	case c.Resolution <= 0:
		return errors.Wrapf(ErrInvalid, "resolution %d", c.Resolution)
	case c.Downsample <= 0:
		return errors.Wrapf(ErrInvalid, "downsample factor %d", c.Downsample)
	case c.Resolution%c.Downsample != 0:
		return errors.Wrapf(ErrInvalid,
			"resolution %d is not a multiple of the downsample factor %d",
			c.Resolution, c.Downsample)
	case c.BrushRadius <= 0:
		return errors.Wrapf(ErrInvalid, "brush radius %g", c.BrushRadius)
	case c.SnapshotEvery <= 0:
		return errors.Wrapf(ErrInvalid, "snapshot interval %d", c.SnapshotEvery)
	case c.RenderSize <= 0:
		return errors.Wrapf(ErrInvalid, "render size %g", c.RenderSize)
	case c.Boundaries.NameProperty == "":
		return errors.Wrap(ErrInvalid, "empty name property")
	}
	if _, err := NewOptions(c.Options); err != nil {
		return err
	}
	return nil
}

// Load reads a YAML configuration file from fs. Settings missing from the
// file keep their default values; unknown settings are an error.
func Load(fs afero.Fs, name string) (Config, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading configuration %q", name)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, errors.Wrapf(err, "configuration %q", name)
	}
	return cfg, nil
}

// Parse reads a YAML configuration from r, on top of the defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Mark(errors.Wrap(err, "decoding YAML"), ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
