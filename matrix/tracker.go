// Copyright 2024 The corelayout Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matrix

import "github.com/mkfw/corelayout"

// StateTracker lets a Scanner fold one auxiliary, non-matrix input (a
// rotary encoder detent, a reed switch, anything sampled alongside the
// matrix) into the same debounce cycle and event stream as the switch
// matrix itself. State values must be comparable with ==.
type StateTracker interface {
	// GetState samples the tracked input's current raw state.
	GetState() any
	// DefaultState is the state a freshly constructed tracker starts at.
	DefaultState() any
	// EmitEvent compares the last stable state to the newly stable state
	// and reports the Event that transition represents, if any.
	EmitEvent(last, now any) (corelayout.Event, bool)
}

// NopTracker is the zero-cost default StateTracker: it never emits an
// event. Boards with no auxiliary input use this.
type NopTracker struct{}

func (NopTracker) GetState() any     { return false }
func (NopTracker) DefaultState() any { return false }
func (NopTracker) EmitEvent(last, now any) (corelayout.Event, bool) {
	return corelayout.Event{}, false
}

// RotaryTracker turns a two-phase quadrature rotary encoder into a single
// synthetic matrix coordinate: turning the encoder past its idle detent in
// either direction presses that coordinate, and returning to the idle
// detent releases it. This mirrors a momentary switch's press/release
// balance closely enough that it satisfies the layout engine's invariant
// that every press eventually has a matching release.
//
// A and B are the encoder's two quadrature phase pins. Coord is the
// synthetic matrix coordinate the tracker reports events at; it must not
// collide with a real matrix coordinate on the same board.
type RotaryTracker struct {
	A, B  InputPin
	Coord corelayout.Coord
}

// rotaryPhase packs the two quadrature pins into a 2-bit phase, 0 meaning
// the detent ("idle") position.
func (t RotaryTracker) rotaryPhase() (int, error) {
	a, err := t.A.IsLow()
	if err != nil {
		return 0, err
	}
	b, err := t.B.IsLow()
	if err != nil {
		return 0, err
	}
	phase := 0
	if a {
		phase |= 1
	}
	if b {
		phase |= 2
	}
	return phase, nil
}

// GetState implements StateTracker. A pin read error collapses to the idle
// phase and is not reported anywhere: the scanner's own row/column reads
// never touch A or B.
func (t RotaryTracker) GetState() any {
	phase, err := t.rotaryPhase()
	if err != nil {
		return 0
	}
	return phase
}

// DefaultState implements StateTracker.
func (t RotaryTracker) DefaultState() any { return 0 }

// EmitEvent implements StateTracker: leaving phase 0 presses Coord,
// returning to phase 0 releases it. Movement between two non-zero phases
// without passing through idle emits nothing — the encoder is still
// "held".
func (t RotaryTracker) EmitEvent(last, now any) (corelayout.Event, bool) {
	lastPhase, _ := last.(int)
	nowPhase, _ := now.(int)
	switch {
	case lastPhase == 0 && nowPhase != 0:
		return corelayout.Press(t.Coord.Row, t.Coord.Col), true
	case lastPhase != 0 && nowPhase == 0:
		return corelayout.Release(t.Coord.Row, t.Coord.Col), true
	default:
		return corelayout.Event{}, false
	}
}
