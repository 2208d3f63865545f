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

// Coord names a physical key by its position in the switch matrix. It is
// opaque to the layout engine except as an equality key.
type Coord struct {
	Row uint8
	Col uint8
}

// Event is a press or release of the key at Coord. The zero Event is a
// Press at (0, 0); callers should use Press or Release to construct one.
type Event struct {
	coord   Coord
	release bool
}

// Press returns a press Event at (row, col).
func Press(row, col uint8) Event {
	return Event{coord: Coord{Row: row, Col: col}}
}

// Release returns a release Event at (row, col).
func Release(row, col uint8) Event {
	return Event{coord: Coord{Row: row, Col: col}, release: true}
}

// Coord returns the coordinate the event occurred at.
func (e Event) Coord() Coord { return e.coord }

// IsPress reports whether e is a press event.
func (e Event) IsPress() bool { return !e.release }

// IsRelease reports whether e is a release event.
func (e Event) IsRelease() bool { return e.release }

// Transform rewrites the event's coordinate via f, preserving the
// press/release tag. It is intended for split keyboards whose halves
// report events in their own coordinate space and need relocating or
// mirroring before reaching a Layout.
func (e Event) Transform(f func(Coord) Coord) Event {
	e.coord = f(e.coord)
	return e
}
