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

// waitingAction is the arbiter's verdict for a tick: keep waiting, or
// resolve as Hold or Tap.
type waitingAction uint8

const (
	waitingNoOp waitingAction = iota
	waitingHold
	waitingTap
)

// waitingState holds a hold-tap action's arbitration in progress. Only one
// can be active at a time. doAction does not check this; it relies on its
// callers: Tick pops no event from the deque while one is active, so events
// pile up there until the arbiter resolves, and Event's overflow path
// resolves it as Hold before unstacking the evicted event.
type waitingState[T any] struct {
	coord   Coord
	timeout uint16
	delay   uint16
	hold    *Action[T]
	tap     *Action[T]
	config  HoldTapConfig
}

// isCorrespondingRelease reports whether e is the release of the key this
// waitingState's press is arbitrating.
func (w *waitingState[T]) isCorrespondingRelease(e Event) bool {
	return e.IsRelease() && e.Coord() == w.coord
}

// tick advances the arbiter by one tick and returns its verdict. deque is
// the queue of events that arrived while this hold-tap action was waiting;
// it is consulted both for the configured pre-check and for finding the
// matching release that would resolve a tap.
func (w *waitingState[T]) tick(deque *eventDeque) waitingAction {
	if w.timeout > 0 {
		w.timeout--
	}

	switch w.config {
	case HoldTapConfigDefault:
	case HoldTapConfigHoldOnOtherKeyPress:
		found := false
		deque.forEach(func(s stacked) bool {
			if s.event.IsPress() {
				found = true
				return false
			}
			return true
		})
		if found {
			return waitingHold
		}
	case HoldTapConfigPermissiveHold:
		resolved := false
		var entries [stackedCap]stacked
		n := 0
		deque.forEach(func(s stacked) bool {
			entries[n] = s
			n++
			return true
		})
		for i := 0; i < n; i++ {
			if !entries[i].event.IsPress() {
				continue
			}
			target := Release(entries[i].event.Coord().Row, entries[i].event.Coord().Col)
			for j := i + 1; j < n; j++ {
				if entries[j].event == target {
					resolved = true
					break
				}
			}
			if resolved {
				break
			}
		}
		if resolved {
			return waitingHold
		}
	}

	var matchSince uint16
	matched := false
	deque.forEach(func(s stacked) bool {
		if w.isCorrespondingRelease(s.event) {
			matchSince = s.since
			matched = true
			return false
		}
		return true
	})
	if matched {
		if int32(w.timeout) >= int32(w.delay)-int32(matchSince) {
			return waitingTap
		}
		return waitingHold
	}
	if w.timeout == 0 {
		return waitingHold
	}
	return waitingNoOp
}
