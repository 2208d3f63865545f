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

// stateKind discriminates the variant held by an engineState.
type stateKind uint8

const (
	stateNormalKey stateKind = iota
	stateLayerModifier
	stateCustom
)

// engineState is one entry in Layout's bounded set of currently active
// effects: a pressed key, an active layer modifier, or an active custom
// action. It is keyed by the coordinate that produced it so a later release
// at that coordinate can find and remove it again.
type engineState[T any] struct {
	kind    stateKind
	coord   Coord
	keycode KeyCode // stateNormalKey
	layer   int     // stateLayerModifier
	custom  T       // stateCustom
}

// asKeycode returns (keycode, true) if s is a NormalKey state.
func (s engineState[T]) asKeycode() (KeyCode, bool) {
	if s.kind != stateNormalKey {
		return 0, false
	}
	return s.keycode, true
}

// asLayer returns (layer, true) if s is a LayerModifier state.
func (s engineState[T]) asLayer() (int, bool) {
	if s.kind != stateLayerModifier {
		return 0, false
	}
	return s.layer, true
}

// release reports whether s survives a release at c. A NormalKey or
// LayerModifier tied to c is dropped silently; a Custom tied to c is dropped
// and folds a Release event into custom. States tied to any other
// coordinate are untouched.
func (s engineState[T]) release(c Coord, custom *CustomEvent[T]) (engineState[T], bool) {
	switch s.kind {
	case stateNormalKey, stateLayerModifier:
		if s.coord == c {
			return engineState[T]{}, false
		}
	case stateCustom:
		if s.coord == c {
			*custom = combineCustomEvent(*custom, CustomRelease(s.custom))
			return engineState[T]{}, false
		}
	}
	return s, true
}
