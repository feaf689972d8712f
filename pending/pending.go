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

// Package pending provides a value which is being computed in the
// background and which a caller polls once per tick.
package pending

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// State describes the progress of a Task.
type State int

const (
	Loading State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// Task holds the result of a background computation.
// The result is written once, before done is closed, and is read-only
// afterwards.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Start runs fn on a new goroutine and returns a task which becomes
// Ready or Failed once fn returns. A panic in fn is turned into a
// failure.
func Start[T any](fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				var zero T
				t.value = zero
				t.err = errors.Newf("background task panicked: %v", r)
			}
		}()
		t.value, t.err = fn()
	}()
	return t
}

// Done returns a task which is already Ready with value v.
func Done[T any](v T) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), value: v}
	close(t.done)
	return t
}

// Poll reports the state of the task without blocking. The value is only
// meaningful in state Ready, the error only in state Failed.
func (t *Task[T]) Poll() (State, T, error) {
	select {
	case <-t.done:
	default:
		var zero T
		return Loading, zero, nil
	}
	if t.err != nil {
		var zero T
		return Failed, zero, t.err
	}
	return Ready, t.value, nil
}

// Wait blocks until the task has finished.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	if t.err != nil {
		var zero T
		return zero, t.err
	}
	return t.value, nil
}

// C returns a channel which is closed when the task has finished.
func (t *Task[T]) C() <-chan struct{} {
	return t.done
}
