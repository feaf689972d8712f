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
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"seehuhn.de/go/mapcolor"
)

// FileStore keeps one JSON file per state, mapping region names to
// records, and one file per region history:
//
//	<dir>/<state>.json
//	<dir>/history/<state>/<region>.bin
//
// Names are path-escaped.
type FileStore struct {
	fs  afero.Fs
	dir string

	mu sync.Mutex // serialises writes
}

// NewFileStore returns a store below dir on fs.
func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, dir: dir}
}

func (s *FileStore) statePath(state string) string {
	return filepath.Join(s.dir, url.PathEscape(state)+".json")
}

func (s *FileStore) historyPath(key Key) string {
	return filepath.Join(s.dir, "history", url.PathEscape(key.State), url.PathEscape(key.Region)+".bin")
}

func (s *FileStore) readState(state string) (map[string]Record, error) {
	data, err := afero.ReadFile(s.fs, s.statePath(state))
	if errors.Is(err, os.ErrNotExist) {
		return map[string]Record{}, nil
	} else if err != nil {
		return nil, err
	}
	recs := map[string]Record{}
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, errors.Wrapf(err, "state file for %q", state)
	}
	return recs, nil
}

// writeFile replaces name atomically. Every call writes to a temporary
// file of its own.
func (s *FileStore) writeFile(name string, data []byte) error {
	dir := filepath.Dir(name)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := afero.TempFile(s.fs, dir, filepath.Base(name)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = s.fs.Rename(tmp, name)
	}
	if err != nil {
		_ = s.fs.Remove(tmp)
		return err
	}
	return nil
}

// LoadRecord implements [Store].
func (s *FileStore) LoadRecord(ctx context.Context, key Key) (Record, error) {
	if err := key.check(); err != nil {
		return Record{}, err
	}
	recs, err := s.Records(ctx, key.State)
	if err != nil {
		return Record{}, err
	}
	rec, ok := recs[key.Region]
	if !ok {
		return Record{}, errors.Wrapf(ErrNotFound, "record %s", key)
	}
	return rec, nil
}

// SaveRecord implements [Store].
func (s *FileStore) SaveRecord(ctx context.Context, key Key, rec Record) error {
	if err := key.check(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.readState(key.State)
	if err != nil {
		return err
	}
	recs[key.Region] = rec
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding record %s", key)
	}
	if err := s.writeFile(s.statePath(key.State), data); err != nil {
		return errors.Wrapf(err, "saving record %s", key)
	}
	mapcolor.Logger().Debug("record saved", "key", key.String(), "completion", rec.Completion)
	return nil
}

// Records implements [Store].
func (s *FileStore) Records(ctx context.Context, state string) (map[string]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readState(state)
}

// LoadHistory implements [Store].
func (s *FileStore) LoadHistory(ctx context.Context, key Key) ([]byte, error) {
	if err := key.check(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, s.historyPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(ErrNotFound, "history %s", key)
	}
	return data, err
}

// SaveHistory implements [Store].
func (s *FileStore) SaveHistory(ctx context.Context, key Key, data []byte) error {
	if err := key.check(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeFile(s.historyPath(key), data); err != nil {
		return errors.Wrapf(err, "saving history %s", key)
	}
	return nil
}
