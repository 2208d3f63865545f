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

import (
	"errors"
	"iter"

	"github.com/mkfw/corelayout"
)

// ErrTooManyColumns indicates a board descriptor asked for more than 32
// columns in a single row, which does not fit this scanner's uint32 row
// bitmask.
var ErrTooManyColumns = errors.New("matrix: row width exceeds 32 columns")

// Scanner drives a row-strobed, column-sampled switch matrix and reports
// only transitions that have been sampled on more than debounceTicks
// consecutive scans. Its rows/cols bitmask storage is allocated once, in
// NewScanner; a Scan that reports a change still allocates the returned
// event sequence.
type Scanner struct {
	rows []OutputPin
	cols []InputPin

	debounceTicks uint32

	stable  []uint32 // last confirmed image, one word per row
	pending []uint32 // image being debounced, one word per row
	scratch []uint32 // this tick's raw sample, reused every call

	since uint32

	tracker      StateTracker
	pendingTrack any
	stableTrack  any
}

// NewScanner builds a Scanner over rows physical row-drive pins and cols
// physical column-sample pins. A transition is reported once the new image
// has been sampled on more than debounceTicks consecutive scans; 0 means
// "report on the first scan that sees it, no debounce". tracker folds one auxiliary input into the
// same debounce cycle; pass NopTracker{} if the board has none.
//
// NewScanner returns ErrTooManyColumns if len(cols) > 32.
func NewScanner(rows []OutputPin, cols []InputPin, debounceTicks uint32, tracker StateTracker) (*Scanner, error) {
	if len(cols) > 32 {
		return nil, ErrTooManyColumns
	}
	s := &Scanner{
		rows:          rows,
		cols:          cols,
		debounceTicks: debounceTicks,
		stable:        make([]uint32, len(rows)),
		pending:       make([]uint32, len(rows)),
		scratch:       make([]uint32, len(rows)),
		tracker:       tracker,
	}
	s.pendingTrack = tracker.DefaultState()
	s.stableTrack = tracker.DefaultState()
	if err := s.clear(); err != nil {
		return nil, err
	}
	return s, nil
}

// clear drives every row pin high (inactive), the resting state between
// scans of an active-low matrix.
func (s *Scanner) clear() error {
	for _, r := range s.rows {
		if err := r.SetHigh(); err != nil {
			return err
		}
	}
	return nil
}

// update performs one electrical scan of the matrix and advances the
// debounce state machine. It reports whether the confirmed (stable) image
// changed this call.
func (s *Scanner) update() (bool, error) {
	for ri, row := range s.rows {
		if err := row.SetLow(); err != nil {
			return false, err
		}
		var bits uint32
		for ci, col := range s.cols {
			low, err := col.IsLow()
			if err != nil {
				return false, err
			}
			if low {
				bits |= 1 << uint(ci)
			}
		}
		s.scratch[ri] = bits
		if err := row.SetHigh(); err != nil {
			return false, err
		}
	}

	trackedNow := s.tracker.GetState()

	if equalRows(s.scratch, s.stable) && trackedNow == s.stableTrack {
		s.since = 0
		return false, nil
	}

	if !equalRows(s.pending, s.scratch) || s.pendingTrack != trackedNow {
		copy(s.pending, s.scratch)
		s.pendingTrack = trackedNow
		s.since = 1
	} else {
		s.since++
	}

	if s.since > s.debounceTicks {
		s.stable, s.pending = s.pending, s.stable
		s.stableTrack, s.pendingTrack = s.pendingTrack, s.stableTrack
		s.since = 0
		return true, nil
	}
	return false, nil
}

// Scan performs one electrical scan and, if the debounced image changed,
// returns a sequence of the Press/Release events that change represents
// along with ok == true. If nothing newly stabilized this call, Scan
// returns ok == false.
//
// The returned sequence is only valid until the next call to Scan on this
// Scanner — it walks the Scanner's own row buffers lazily
// rather than copying them.
func (s *Scanner) Scan() (seq iter.Seq[corelayout.Event], ok bool, err error) {
	changed, err := s.update()
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return nil, false, nil
	}

	// After the swap in update, s.pending holds the image that was stable
	// before this change and s.stable holds the image newly confirmed.
	old, now := s.pending, s.stable
	oldTrack, nowTrack := s.pendingTrack, s.stableTrack
	tracker := s.tracker

	return func(yield func(corelayout.Event) bool) {
		for ri := range now {
			o, n := old[ri], now[ri]
			for b := uint(0); b < 32; b++ {
				mask := uint32(1) << b
				switch {
				case o&mask == 0 && n&mask != 0:
					if !yield(corelayout.Press(uint8(ri), uint8(b))) {
						return
					}
				case o&mask != 0 && n&mask == 0:
					if !yield(corelayout.Release(uint8(ri), uint8(b))) {
						return
					}
				}
			}
		}
		if e, ok := tracker.EmitEvent(oldTrack, nowTrack); ok {
			yield(e)
		}
	}, true, nil
}

func equalRows(a, b []uint32) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
