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

// stackedCap is the depth of the pending-event deque. It bounds how many
// events can be waiting on a hold-tap decision at once; a 17th event forces
// the oldest one out.
const stackedCap = 16

// stacked is a queued Event, tagged with how many ticks have elapsed since
// it was queued. A hold-tap arbiter uses since to compute how much of its
// own timeout has already been "pre-spent" waiting in the deque.
type stacked struct {
	event Event
	since uint16
}

// eventDeque is a fixed-capacity ring buffer of stacked events with
// wrapping-on-overflow semantics: pushing onto a full deque evicts and
// returns the oldest entry instead of growing.
type eventDeque struct {
	buf  [stackedCap]stacked
	head int
	n    int
}

// tick advances every queued entry's since counter by one, saturating at
// the uint16 maximum rather than wrapping.
func (d *eventDeque) tick() {
	for i := 0; i < d.n; i++ {
		idx := (d.head + i) % stackedCap
		if d.buf[idx].since != ^uint16(0) {
			d.buf[idx].since++
		}
	}
}

// pushBack appends e to the tail of the deque. If the deque was already at
// capacity, the oldest entry is evicted to make room and returned alongside
// ok == true.
func (d *eventDeque) pushBack(e Event) (evicted stacked, ok bool) {
	if d.n == stackedCap {
		evicted = d.buf[d.head]
		d.head = (d.head + 1) % stackedCap
		d.n--
		ok = true
	}
	tail := (d.head + d.n) % stackedCap
	d.buf[tail] = stacked{event: e}
	d.n++
	return evicted, ok
}

// popFront removes and returns the oldest entry, if any.
func (d *eventDeque) popFront() (stacked, bool) {
	if d.n == 0 {
		return stacked{}, false
	}
	s := d.buf[d.head]
	d.head = (d.head + 1) % stackedCap
	d.n--
	return s, true
}

// forEach calls f with every queued entry, oldest first, stopping early if
// f returns false.
func (d *eventDeque) forEach(f func(stacked) bool) {
	for i := 0; i < d.n; i++ {
		if !f(d.buf[(d.head+i)%stackedCap]) {
			return
		}
	}
}
