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

package pending

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestTaskReady(t *testing.T) {
	release := make(chan struct{})
	task := Start(func() (int, error) {
		<-release
		return 42, nil
	})

	state, v, err := task.Poll()
	require.Equal(t, Loading, state)
	require.Zero(t, v)
	require.NoError(t, err)

	close(release)
	<-task.C()

	state, v, err = task.Poll()
	require.Equal(t, Ready, state)
	require.Equal(t, 42, v)
	require.NoError(t, err)
}

func TestTaskFailed(t *testing.T) {
	errBoom := errors.New("boom")
	task := Start(func() (string, error) {
		return "partial", errBoom
	})

	_, err := task.Wait()
	require.ErrorIs(t, err, errBoom)

	state, v, err := task.Poll()
	require.Equal(t, Failed, state)
	require.Empty(t, v)
	require.ErrorIs(t, err, errBoom)
}

func TestTaskPanic(t *testing.T) {
	task := Start(func() ([]int, error) {
		panic("bad input")
	})
	v, err := task.Wait()
	require.Nil(t, v)
	require.ErrorContains(t, err, "bad input")
}

func TestDone(t *testing.T) {
	state, v, err := Done("x").Poll()
	require.Equal(t, Ready, state)
	require.Equal(t, "x", v)
	require.NoError(t, err)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "loading", Loading.String())
	require.Equal(t, "ready", Ready.String())
	require.Equal(t, "failed", Failed.String())
	require.Equal(t, "State(7)", State(7).String())
}
