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

package save

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"

	"seehuhn.de/go/mapcolor/config"
)

// Store keeps records and histories.
type Store interface {
	LoadRecord(ctx context.Context, key Key) (Record, error)
	SaveRecord(ctx context.Context, key Key, rec Record) error

	// Records returns all records of a state, by region name.
	Records(ctx context.Context, state string) (map[string]Record, error)

	LoadHistory(ctx context.Context, key Key) ([]byte, error)
	SaveHistory(ctx context.Context, key Key, data []byte) error
}

// Open returns the store selected by cfg: redis if an address is given,
// otherwise files below cfg.Dir on fs.
func Open(cfg config.Store, fs afero.Fs) Store {
	if cfg.RedisAddr != "" {
		return NewRedisStore(redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		}))
	}
	return NewFileStore(fs, cfg.Dir)
}
