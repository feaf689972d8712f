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
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps records in one hash per state and histories in plain
// string keys:
//
//	mapcolor:records:<state>           hash, region → record JSON
//	mapcolor:history:<state>:<region>  encoded history
type RedisStore struct {
	rc *redis.Client
}

// NewRedisStore wraps a redis client.
func NewRedisStore(rc *redis.Client) *RedisStore {
	return &RedisStore{rc: rc}
}

func recordsKey(state string) string {
	return "mapcolor:records:" + state
}

func historyKey(key Key) string {
	return "mapcolor:history:" + key.State + ":" + key.Region
}

// LoadRecord implements [Store].
func (s *RedisStore) LoadRecord(ctx context.Context, key Key) (Record, error) {
	if err := key.check(); err != nil {
		return Record{}, err
	}
	data, err := s.rc.HGet(ctx, recordsKey(key.State), key.Region).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, errors.Wrapf(ErrNotFound, "record %s", key)
	} else if err != nil {
		return Record{}, errors.Wrapf(err, "loading record %s", key)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.Wrapf(err, "record %s", key)
	}
	return rec, nil
}

// SaveRecord implements [Store].
func (s *RedisStore) SaveRecord(ctx context.Context, key Key, rec Record) error {
	if err := key.check(); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrapf(err, "encoding record %s", key)
	}
	err = s.rc.HSet(ctx, recordsKey(key.State), key.Region, data).Err()
	return errors.Wrapf(err, "saving record %s", key)
}

// Records implements [Store].
func (s *RedisStore) Records(ctx context.Context, state string) (map[string]Record, error) {
	all, err := s.rc.HGetAll(ctx, recordsKey(state)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "loading records of %q", state)
	}
	res := make(map[string]Record, len(all))
	for region, data := range all {
		var rec Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, errors.Wrapf(err, "record %s/%s", state, region)
		}
		res[region] = rec
	}
	return res, nil
}

// LoadHistory implements [Store].
func (s *RedisStore) LoadHistory(ctx context.Context, key Key) ([]byte, error) {
	if err := key.check(); err != nil {
		return nil, err
	}
	data, err := s.rc.Get(ctx, historyKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errors.Wrapf(ErrNotFound, "history %s", key)
	} else if err != nil {
		return nil, errors.Wrapf(err, "loading history %s", key)
	}
	return data, nil
}

// SaveHistory implements [Store].
func (s *RedisStore) SaveHistory(ctx context.Context, key Key, data []byte) error {
	if err := key.check(); err != nil {
		return err
	}
	err := s.rc.Set(ctx, historyKey(key), data, 0).Err()
	return errors.Wrapf(err, "saving history %s", key)
}
