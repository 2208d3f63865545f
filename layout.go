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

package corelayout

import "iter"

// statesCap bounds how many simultaneous NormalKey/LayerModifier/Custom
// effects a Layout tracks at once. 64 matches a USB HID report's practical
// ceiling — far more keys than a human can physically hold down together.
const statesCap = 64

// Layout is the layout engine: it consumes matrix Events and periodic
// Ticks, arbitrates hold-tap ambiguity, resolves layer modifiers, and
// tracks which effects (key codes, layer shifts, custom actions) are
// currently active. A Layout is sized entirely at construction and never
// allocates afterward.
//
// A Layout is not safe for concurrent use; Event and Tick are meant to be
// driven from a single loop, exactly like the matrix scanner that feeds it.
type Layout[T any] struct {
	layers       Layers[T]
	defaultLayer int

	states  [statesCap]engineState[T]
	nStates int

	waiting       waitingState[T]
	waitingActive bool

	deque eventDeque

	noop Action[T]
}

// New builds a Layout over layers. layers must describe at least one
// layer; New returns ErrLayersEmpty otherwise. The Layout retains layers by
// reference — callers must not mutate it afterward, since Layout treats
// every Action's address as stable for the life of the process.
func New[T any](layers Layers[T]) (*Layout[T], error) {
	if len(layers) == 0 {
		return nil, ErrLayersEmpty
	}
	return &Layout[T]{layers: layers}, nil
}

// Keycodes iterates the key codes corresponding to every currently active
// NormalKey state, in activation order. It yields one code per state, so
// the same code can appear more than once; callers building a HID report
// must deduplicate.
func (l *Layout[T]) Keycodes() iter.Seq[KeyCode] {
	return func(yield func(KeyCode) bool) {
		for i := 0; i < l.nStates; i++ {
			kc, ok := l.states[i].asKeycode()
			if !ok {
				continue
			}
			if !yield(kc) {
				return
			}
		}
	}
}

// CurrentLayer returns the index of the layer currently in effect: the
// default layer if no LayerModifier is active, otherwise the first active
// LayerModifier's value plus the values of every later one. The default
// layer is not added to the modifiers.
func (l *Layout[T]) CurrentLayer() int {
	layer := l.defaultLayer
	seenFirst := false
	for i := 0; i < l.nStates; i++ {
		v, ok := l.states[i].asLayer()
		if !ok {
			continue
		}
		if !seenFirst {
			layer = v
			seenFirst = true
		} else {
			layer += v
		}
	}
	return layer
}

// SetDefaultLayer changes the default layer to value, if value names a
// layer that exists. An out-of-range value is silently ignored, matching
// the defensive behavior of a DefaultLayer action encountering a
// misconfigured layout.
func (l *Layout[T]) SetDefaultLayer(value int) {
	if value >= 0 && value < len(l.layers) {
		l.defaultLayer = value
	}
}

// Event registers a physical key press or release. If the pending-event
// deque is already full, the oldest queued event is force-resolved first:
// any hold-tap arbitration in progress is immediately decided as Hold, and
// the evicted event is unstacked, before e is accepted.
//
// Event never returns a CustomEvent directly; custom-action transitions
// surface later through Tick, once e has worked its way through the deque
// and any hold-tap arbitration it's waiting behind. On overflow, any custom
// transition produced by the forced Hold or by unstacking the evicted
// event is discarded and never reported.
func (l *Layout[T]) Event(e Event) {
	evicted, full := l.deque.pushBack(e)
	if !full {
		return
	}
	l.waitingIntoHold()
	l.unstack(evicted)
}

// Tick advances the layout by one time step. It must be called regularly —
// typically at a fixed millisecond period — to age queued events and drive
// the hold-tap arbiter and event deque forward. It returns the highest-
// ranked CustomEvent produced this tick, combined across every custom
// action evaluated (see CustomEvent's doc for the ranking).
func (l *Layout[T]) Tick() CustomEvent[T] {
	l.deque.tick()
	if l.waitingActive {
		switch l.waiting.tick(&l.deque) {
		case waitingHold:
			return l.waitingIntoHold()
		case waitingTap:
			return l.waitingIntoTap()
		default:
			return NoCustomEvent[T]()
		}
	}
	s, ok := l.deque.popFront()
	if !ok {
		return NoCustomEvent[T]()
	}
	return l.unstack(s)
}

func (l *Layout[T]) waitingIntoHold() CustomEvent[T] {
	if !l.waitingActive {
		return NoCustomEvent[T]()
	}
	hold, coord := l.waiting.hold, l.waiting.coord
	l.waitingActive = false
	return l.doAction(hold, coord, 0)
}

func (l *Layout[T]) waitingIntoTap() CustomEvent[T] {
	if !l.waitingActive {
		return NoCustomEvent[T]()
	}
	tap, coord := l.waiting.tap, l.waiting.coord
	l.waitingActive = false
	return l.doAction(tap, coord, 0)
}

func (l *Layout[T]) unstack(s stacked) CustomEvent[T] {
	coord := s.event.Coord()
	if s.event.IsRelease() {
		custom := NoCustomEvent[T]()
		l.releaseStates(coord, &custom)
		return custom
	}
	action := l.pressAsAction(coord, l.CurrentLayer())
	return l.doAction(action, coord, s.since)
}

// releaseStates drops every tracked state tied to coord, folding any
// released custom action into custom.
func (l *Layout[T]) releaseStates(coord Coord, custom *CustomEvent[T]) {
	kept := 0
	for i := 0; i < l.nStates; i++ {
		if s, ok := l.states[i].release(coord, custom); ok {
			l.states[kept] = s
			kept++
		}
	}
	l.nStates = kept
}

// pushState records a new active state, silently dropping it if the
// bounded states table is already full — unlike the deque in stacked.go,
// which evicts its oldest entry, the states table keeps the oldest and
// drops the newest rather than growing unbounded.
func (l *Layout[T]) pushState(s engineState[T]) bool {
	if l.nStates >= statesCap {
		return false
	}
	l.states[l.nStates] = s
	l.nStates++
	return true
}

// pressAsAction resolves the static action bound to coord on layer,
// falling back to the default layer when it resolves to Trans, and to NoOp
// when the coordinate or layer is out of range.
func (l *Layout[T]) pressAsAction(coord Coord, layer int) *Action[T] {
	if layer < 0 || layer >= len(l.layers) {
		return &l.noop
	}
	rows := l.layers[layer]
	if int(coord.Row) >= len(rows) {
		return &l.noop
	}
	cols := rows[coord.Row]
	if int(coord.Col) >= len(cols) {
		return &l.noop
	}
	action := &cols[coord.Col]
	if action.Kind == ActionTrans {
		if layer != l.defaultLayer {
			return l.pressAsAction(coord, l.defaultLayer)
		}
		return &l.noop
	}
	return action
}

// doAction evaluates action as though it were just pressed at coord. delay
// is how many ticks have already elapsed since the originating press (it
// seeds a HoldTap action's WaitingState so its timeout accounts for time
// already spent queued).
func (l *Layout[T]) doAction(action *Action[T], coord Coord, delay uint16) CustomEvent[T] {
	switch action.Kind {
	case ActionNoOp, ActionTrans:
		return NoCustomEvent[T]()
	case ActionHoldTap:
		l.waiting = waitingState[T]{
			coord:   coord,
			timeout: action.Timeout,
			delay:   delay,
			hold:    action.Hold,
			tap:     action.Tap,
			config:  action.Config,
		}
		l.waitingActive = true
		return NoCustomEvent[T]()
	case ActionKeyCode:
		l.pushState(engineState[T]{kind: stateNormalKey, coord: coord, keycode: action.KeyCode})
		return NoCustomEvent[T]()
	case ActionMultipleKeyCodes:
		for _, kc := range action.KeyCodes {
			l.pushState(engineState[T]{kind: stateNormalKey, coord: coord, keycode: kc})
		}
		return NoCustomEvent[T]()
	case ActionMultipleActions:
		custom := NoCustomEvent[T]()
		for i := range action.Actions {
			custom = combineCustomEvent(custom, l.doAction(&action.Actions[i], coord, delay))
		}
		return custom
	case ActionLayer:
		l.pushState(engineState[T]{kind: stateLayerModifier, coord: coord, layer: action.Layer})
		return NoCustomEvent[T]()
	case ActionDefaultLayer:
		l.SetDefaultLayer(action.Layer)
		return NoCustomEvent[T]()
	case ActionCustom:
		if l.pushState(engineState[T]{kind: stateCustom, coord: coord, custom: action.Custom}) {
			return CustomPress(action.Custom)
		}
		return NoCustomEvent[T]()
	default:
		return NoCustomEvent[T]()
	}
}
