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

import (
	"slices"
	"testing"
)

// row builds one layer row out of bare actions.
func row[T any](actions ...Action[T]) []Action[T] { return actions }

// assertKeys fails the test unless the layout's currently active key codes,
// in activation order, equal want.
func assertKeys[T any](t *testing.T, l *Layout[T], want []KeyCode) {
	t.Helper()
	var got []KeyCode
	for kc := range l.Keycodes() {
		got = append(got, kc)
	}
	if !slices.Equal(got, want) {
		t.Fatalf("keycodes = %v, want %v", got, want)
	}
}

func mustNew[T any](t *testing.T, layers Layers[T]) *Layout[T] {
	t.Helper()
	l, err := New(layers)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

// TestNewRejectsEmptyLayers exercises the one error condition New can
// return.
func TestNewRejectsEmptyLayers(t *testing.T) {
	if _, err := New(Layers[NoCustom]{}); err != ErrLayersEmpty {
		t.Fatalf("New(empty) error = %v, want ErrLayersEmpty", err)
	}
}

// TestBasicHoldTap covers a HoldTap whose hold is a layer modifier and
// whose tap is a plain key, interleaved with a second HoldTap'd key that
// is pressed first and resolves to its hold (LCtrl) on timeout, after
// which the first key's late-queued release resolves it to its tap.
func TestBasicHoldTap(t *testing.T) {
	layers := Layers[NoCustom]{
		{row(
			HoldTap[NoCustom](200, LayerMod[NoCustom](1), Key[NoCustom](Space), HoldTapConfigDefault, 0),
			HoldTap[NoCustom](200, Key[NoCustom](LCtrl), Key[NoCustom](Enter), HoldTapConfigDefault, 0),
		)},
		{row(
			Action[NoCustom]{Kind: ActionTrans},
			Keys[NoCustom](LCtrl, Enter),
		)},
	}
	l := mustNew(t, layers)

	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)

	l.Event(Press(0, 1))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)

	l.Event(Press(0, 0))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)

	l.Event(Release(0, 0))
	for i := 0; i < 197; i++ {
		assertNoCustom(t, l.Tick())
		assertKeys(t, l, nil)
	}
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LCtrl})
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LCtrl})
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LCtrl, Space})
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LCtrl})

	l.Event(Release(0, 1))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
}

// TestHoldTapInterleavedTimeout presses a second HoldTap key while the
// first is still undecided, holds past the second key's own timeout, and
// checks the first resolves to its tap (Space) once it releases while the
// second, released too late, resolves to its hold (LCtrl).
func TestHoldTapInterleavedTimeout(t *testing.T) {
	layers := Layers[NoCustom]{
		{row(
			HoldTap[NoCustom](200, Key[NoCustom](LAlt), Key[NoCustom](Space), HoldTapConfigDefault, 0),
			HoldTap[NoCustom](20, Key[NoCustom](LCtrl), Key[NoCustom](Enter), HoldTapConfigDefault, 0),
		)},
	}
	l := mustNew(t, layers)

	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)

	l.Event(Press(0, 0))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)

	l.Event(Press(0, 1))
	for i := 0; i < 15; i++ {
		assertNoCustom(t, l.Tick())
		assertKeys(t, l, nil)
	}

	l.Event(Release(0, 0))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{Space})
	for i := 0; i < 10; i++ {
		assertNoCustom(t, l.Tick())
		assertKeys(t, l, []KeyCode{Space})
	}

	l.Event(Release(0, 1))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{Space, LCtrl})
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LCtrl})
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
}

// TestHoldOnOtherKeyPress checks HoldTapConfigHoldOnOtherKeyPress: pressing
// any other key while the HoldTap is undecided immediately resolves it to
// Hold, both before and after its own timeout would otherwise have fired.
func TestHoldOnOtherKeyPress(t *testing.T) {
	layers := Layers[NoCustom]{
		{row(
			HoldTap[NoCustom](200, Key[NoCustom](LAlt), Key[NoCustom](Space), HoldTapConfigHoldOnOtherKeyPress, 0),
			Key[NoCustom](Enter),
		)},
	}
	l := mustNew(t, layers)

	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
	l.Event(Press(0, 0))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
	l.Event(Press(0, 1))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LAlt})
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LAlt, Enter})
	l.Event(Release(0, 0))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{Enter})
	l.Event(Release(0, 1))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)

	// Press another key after the hold-tap has already timed out.
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
	l.Event(Press(0, 0))
	for i := 0; i < 200; i++ {
		assertNoCustom(t, l.Tick())
		assertKeys(t, l, nil)
	}
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LAlt})
	l.Event(Press(0, 1))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LAlt, Enter})
	l.Event(Release(0, 0))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{Enter})
	l.Event(Release(0, 1))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
}

// TestPermissiveHold checks HoldTapConfigPermissiveHold: the HoldTap only
// resolves to Hold once the other key has both pressed and released while
// it was still undecided, not merely on the other key's press.
func TestPermissiveHold(t *testing.T) {
	layers := Layers[NoCustom]{
		{row(
			HoldTap[NoCustom](200, Key[NoCustom](LAlt), Key[NoCustom](Space), HoldTapConfigPermissiveHold, 0),
			Key[NoCustom](Enter),
		)},
	}
	l := mustNew(t, layers)

	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
	l.Event(Press(0, 0))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
	l.Event(Press(0, 1))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
	l.Event(Release(0, 1))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LAlt})
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LAlt, Enter})
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LAlt})
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LAlt})
	l.Event(Release(0, 0))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
}

// TestMultipleActionsAndLayer checks a MultipleActions that bundles a
// layer modifier with a plain key, plus a second key whose action comes
// from the layer that modifier momentarily activates.
func TestMultipleActionsAndLayer(t *testing.T) {
	layers := Layers[NoCustom]{
		{row(
			Multi(LayerMod[NoCustom](1), Key[NoCustom](LShift)),
			Key[NoCustom](F),
		)},
		{row(
			Action[NoCustom]{Kind: ActionTrans},
			Key[NoCustom](E),
		)},
	}
	l := mustNew(t, layers)

	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
	l.Event(Press(0, 0))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LShift})
	l.Event(Press(0, 1))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LShift, E})
	l.Event(Release(0, 1))
	l.Event(Release(0, 0))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{LShift})
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
}

// TestMultipleCustomActionsCoalesce demonstrates the monoidal coalescing
// rule: only the highest-ranked custom transition of a MultipleActions
// survives in a single tick.
func TestMultipleCustomActionsCoalesce(t *testing.T) {
	layers := Layers[uint8]{
		{row(Multi[uint8](CustomAction[uint8](1), CustomAction[uint8](2), CustomAction[uint8](3)))},
	}
	l := mustNew(t, layers)

	l.Event(Press(0, 0))
	assertCustomPress(t, l.Tick(), 1)
	assertKeys(t, l, nil)

	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)

	l.Event(Release(0, 0))
	assertCustomRelease(t, l.Tick(), 1)
	assertKeys(t, l, nil)
}

// TestCustom checks a bare CustomAction presses and releases cleanly
// without ever contributing a KeyCode.
func TestCustom(t *testing.T) {
	layers := Layers[uint8]{
		{row(CustomAction[uint8](42))},
	}
	l := mustNew(t, layers)

	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)

	l.Event(Press(0, 0))
	assertCustomPress(t, l.Tick(), 42)
	assertKeys(t, l, nil)

	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)

	l.Event(Release(0, 0))
	assertCustomRelease(t, l.Tick(), 42)
	assertKeys(t, l, nil)
}

// TestTransFallsThroughToDefaultLayer checks that a Trans action on a
// non-default layer resolves against the default layer at the same
// coordinate.
func TestTransFallsThroughToDefaultLayer(t *testing.T) {
	layers := Layers[NoCustom]{
		{row(Key[NoCustom](A), LayerMod[NoCustom](1))},
		{row(Action[NoCustom]{Kind: ActionTrans}, Action[NoCustom]{Kind: ActionTrans})},
	}
	l := mustNew(t, layers)

	l.Event(Press(0, 1))
	assertNoCustom(t, l.Tick())
	if got := l.CurrentLayer(); got != 1 {
		t.Fatalf("CurrentLayer() = %d, want 1", got)
	}

	l.Event(Press(0, 0))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, []KeyCode{A})
}

// TestSetDefaultLayerIgnoresOutOfRange checks that setting the default
// layer to an index past the end of the layers table is silently ignored.
func TestSetDefaultLayerIgnoresOutOfRange(t *testing.T) {
	layers := Layers[NoCustom]{
		{row(Action[NoCustom]{})},
		{row(Action[NoCustom]{})},
	}
	l := mustNew(t, layers)

	l.SetDefaultLayer(5)
	if l.defaultLayer != 0 {
		t.Fatalf("SetDefaultLayer(5) changed defaultLayer to %d, want unchanged 0", l.defaultLayer)
	}
	l.SetDefaultLayer(1)
	if l.defaultLayer != 1 {
		t.Fatalf("SetDefaultLayer(1) defaultLayer = %d, want 1", l.defaultLayer)
	}
}

// TestDequeOverflowForcesHold covers the forcing rule: the 17th queued
// event evicts the oldest and, if a hold-tap was waiting, resolves it as
// Hold before the evicted event is unstacked.
func TestDequeOverflowForcesHold(t *testing.T) {
	layers := Layers[NoCustom]{
		{row(
			HoldTap[NoCustom](200, Key[NoCustom](LAlt), Key[NoCustom](Space), HoldTapConfigDefault, 0),
			Key[NoCustom](Enter),
		)},
	}
	l := mustNew(t, layers)

	l.Event(Press(0, 0)) // begins arbitration, nothing queued yet
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)

	// Fill the 16-deep deque without ticking: no eviction yet.
	for i := 0; i < 16; i++ {
		l.Event(Press(0, 1))
	}
	if !l.waitingActive {
		t.Fatal("waiting was force-resolved too early")
	}

	l.Event(Press(0, 1)) // 17th: overflow, forces Hold
	if l.waitingActive {
		t.Fatal("waiting should have been force-resolved to Hold on deque overflow")
	}
	found := false
	for kc := range l.Keycodes() {
		if kc == LAlt {
			found = true
		}
	}
	if !found {
		t.Fatalf("keycodes after forced hold = %v, want LAlt present", slicesCollect(l.Keycodes()))
	}
}

func slicesCollect(seq func(func(KeyCode) bool)) []KeyCode {
	var out []KeyCode
	for kc := range seq {
		out = append(out, kc)
	}
	return out
}

// TestStatesCapDropsNewestSilently checks that pressing more keys than the
// bounded active-states table can hold silently drops the newest pushes
// rather than growing the table or erroring.
func TestStatesCapDropsNewestSilently(t *testing.T) {
	actions := make([]Action[NoCustom], statesCap+4)
	for i := range actions {
		actions[i] = Key[NoCustom](KeyCode(int(A) + i%20))
	}
	layers := Layers[NoCustom]{{actions}}
	l := mustNew(t, layers)

	for i := range actions {
		l.Event(Press(0, uint8(i)))
		assertNoCustom(t, l.Tick())
	}

	count := 0
	for range l.Keycodes() {
		count++
	}
	if count != statesCap {
		t.Fatalf("active states = %d, want capped at %d", count, statesCap)
	}
}

// TestOutOfRangeLookupDegradesToNoOp checks that a coordinate or layer
// outside the table's extent resolves to NoOp rather than erroring.
func TestOutOfRangeLookupDegradesToNoOp(t *testing.T) {
	layers := Layers[NoCustom]{{row(Key[NoCustom](A))}}
	l := mustNew(t, layers)

	l.Event(Press(9, 9))
	assertNoCustom(t, l.Tick())
	assertKeys(t, l, nil)
}

func assertNoCustom[T any](t *testing.T, e CustomEvent[T]) {
	t.Helper()
	if e.Kind != CustomEventNone {
		t.Fatalf("CustomEvent = %v, want NoEvent", e.Kind)
	}
}

func assertCustomPress(t *testing.T, e CustomEvent[uint8], want uint8) {
	t.Helper()
	if e.Kind != CustomEventPress || e.Value != want {
		t.Fatalf("CustomEvent = (%v, %v), want (Press, %v)", e.Kind, e.Value, want)
	}
}

func assertCustomRelease(t *testing.T, e CustomEvent[uint8], want uint8) {
	t.Helper()
	if e.Kind != CustomEventRelease || e.Value != want {
		t.Fatalf("CustomEvent = (%v, %v), want (Release, %v)", e.Kind, e.Value, want)
	}
}
