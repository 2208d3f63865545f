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

// NoCustom is the custom-payload type for layouts that never use
// Action.Custom: an empty struct whose zero value carries nothing, used
// when a layout has no custom payload.
type NoCustom struct{}

// ActionKind discriminates the variant held by an Action.
type ActionKind uint8

const (
	// ActionNoOp does nothing on press. It is also the zero value of
	// ActionKind, so an unset Action — or an out-of-range table lookup —
	// behaves as NoOp without any extra bookkeeping.
	ActionNoOp ActionKind = iota
	// ActionTrans falls through to the default layer's action at the same
	// coordinate.
	ActionTrans
	// ActionKeyCode presses a single key for as long as the physical key
	// is held.
	ActionKeyCode
	// ActionMultipleKeyCodes presses every code in KeyCodes simultaneously.
	ActionMultipleKeyCodes
	// ActionMultipleActions evaluates every action in Actions in order.
	ActionMultipleActions
	// ActionLayer adds Layer to the active layer index while held.
	ActionLayer
	// ActionDefaultLayer latches the default layer to Layer on press.
	ActionDefaultLayer
	// ActionHoldTap arbitrates between Hold and Tap; see the Layout
	// hold-tap arbiter.
	ActionHoldTap
	// ActionCustom surfaces a user-defined payload through the
	// CustomEvent channel.
	ActionCustom
)

// HoldTapConfig selects the pre-check a hold-tap arbiter runs before
// falling back to its timeout/tap-release logic.
type HoldTapConfig uint8

const (
	// HoldTapConfigDefault runs no pre-check.
	HoldTapConfigDefault HoldTapConfig = iota
	// HoldTapConfigHoldOnOtherKeyPress resolves Hold as soon as any other
	// key is pressed while this one is waiting.
	HoldTapConfigHoldOnOtherKeyPress
	// HoldTapConfigPermissiveHold resolves Hold as soon as another key is
	// both pressed and released while this one is waiting.
	HoldTapConfigPermissiveHold
)

// Action is a node in the static, acyclic action tree that describes what a
// physical key does. Its zero value is NoOp. Actions are built once (by
// hand, or by a loader such as boardcfg) and referenced by pointer from a
// Layers table for the remainder of the process; Layout never copies or
// mutates an Action.
type Action[T any] struct {
	Kind ActionKind

	// ActionKeyCode
	KeyCode KeyCode
	// ActionMultipleKeyCodes
	KeyCodes []KeyCode
	// ActionMultipleActions
	Actions []Action[T]
	// ActionLayer / ActionDefaultLayer
	Layer int
	// ActionHoldTap
	Timeout         uint16
	Hold            *Action[T]
	Tap             *Action[T]
	Config          HoldTapConfig
	TapHoldInterval uint16 // carried for a future arbiter revision; the current arbiter never reads it
	// ActionCustom
	Custom T
}

// Key returns a KeyCode action.
func Key[T any](k KeyCode) Action[T] {
	return Action[T]{Kind: ActionKeyCode, KeyCode: k}
}

// Keys returns a MultipleKeyCodes action pressing every code in ks at once.
func Keys[T any](ks ...KeyCode) Action[T] {
	cp := append([]KeyCode(nil), ks...)
	return Action[T]{Kind: ActionMultipleKeyCodes, KeyCodes: cp}
}

// Multi returns a MultipleActions action evaluating each action in as, in
// order, on press.
func Multi[T any](as ...Action[T]) Action[T] {
	cp := append([]Action[T](nil), as...)
	return Action[T]{Kind: ActionMultipleActions, Actions: cp}
}

// LayerMod returns a Layer(n) action: while held, n is added to the active
// layer index.
func LayerMod[T any](n int) Action[T] {
	return Action[T]{Kind: ActionLayer, Layer: n}
}

// DefaultLayer returns a DefaultLayer(n) action: on press, latches the
// default layer to n (subject to n being within range at evaluation time).
func DefaultLayer[T any](n int) Action[T] {
	return Action[T]{Kind: ActionDefaultLayer, Layer: n}
}

// CustomAction returns a Custom(v) action surfacing v through the
// CustomEvent channel.
func CustomAction[T any](v T) Action[T] {
	return Action[T]{Kind: ActionCustom, Custom: v}
}

// HoldTap returns a hold-tap action. hold and tap are copied once, at
// construction; their addresses are stable for the Action's lifetime.
func HoldTap[T any](timeout uint16, hold, tap Action[T], config HoldTapConfig, tapHoldInterval uint16) Action[T] {
	h, t := hold, tap
	return Action[T]{
		Kind:            ActionHoldTap,
		Timeout:         timeout,
		Hold:            &h,
		Tap:             &t,
		Config:          config,
		TapHoldInterval: tapHoldInterval,
	}
}

// Layers is a build-time-sized table of Action, indexed [layer][row][col].
// layers[l][r][c] is the action for the key at (row r, col c) on layer l.
type Layers[T any] [][][]Action[T]
