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

// KeyCode is a HID keyboard/keypad usage identifier (USB HID Usage Tables,
// usage page 0x07). It is opaque to the layout engine: only equality and
// identity matter here, the HID report builder is the collaborator that
// cares about the numeric value.
type KeyCode uint16

// Letter, digit and whitespace keys.
const (
	A KeyCode = iota + 0x04
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
	Kb1
	Kb2
	Kb3
	Kb4
	Kb5
	Kb6
	Kb7
	Kb8
	Kb9
	Kb0
	Enter
	Escape
	BSpace
	Tab
	Space
	Minus
	Equal
	LBracket
	RBracket
	Bslash
	NonUSHash
	SColon
	Quote
	Grave
	Comma
	Dot
	Slash
	CapsLock
)

// Function keys.
const (
	F1 KeyCode = iota + 0x3A
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

// Navigation cluster and keypad.
const (
	PrintScreen KeyCode = iota + 0x46
	ScrollLock
	Pause
	Insert
	Home
	PgUp
	Delete
	End
	PgDown
	Right
	Left
	Down
	Up
	NumLock
	KpSlash
	KpAsterisk
	KpMinus
	KpPlus
	KpEnter
	Kp1
	Kp2
	Kp3
	Kp4
	Kp5
	Kp6
	Kp7
	Kp8
	Kp9
	Kp0
	KpDot
)

// Modifier keys. Modifiers are ordinary key codes as far as this package is
// concerned — they are included in the same Keycodes iterator as any other
// active key, and it is the HID report builder's job to pack them into the
// report's modifier byte.
const (
	LCtrl KeyCode = iota + 0xE0
	LShift
	LAlt
	LGui
	RCtrl
	RShift
	RAlt
	RGui
)

// named maps bare key-name identifiers, as they'd appear in a plain-text
// keymap file, to the KeyCode they denote. It backs boardcfg's demo
// keymap loader.
var named = map[string]KeyCode{
	"A": A, "B": B, "C": C, "D": D, "E": E, "F": F, "G": G, "H": H, "I": I,
	"J": J, "K": K, "L": L, "M": M, "N": N, "O": O, "P": P, "Q": Q, "R": R,
	"S": S, "T": T, "U": U, "V": V, "W": W, "X": X, "Y": Y, "Z": Z,
	"1": Kb1, "2": Kb2, "3": Kb3, "4": Kb4, "5": Kb5,
	"6": Kb6, "7": Kb7, "8": Kb8, "9": Kb9, "0": Kb0,
	"Enter": Enter, "Escape": Escape, "Esc": Escape, "BSpace": BSpace,
	"Tab": Tab, "Space": Space, "Minus": Minus, "Equal": Equal,
	"LBracket": LBracket, "RBracket": RBracket, "Bslash": Bslash,
	"SColon": SColon, "Quote": Quote, "Grave": Grave, "Comma": Comma,
	"Dot": Dot, "Slash": Slash, "CapsLock": CapsLock,
	"F1": F1, "F2": F2, "F3": F3, "F4": F4, "F5": F5, "F6": F6,
	"F7": F7, "F8": F8, "F9": F9, "F10": F10, "F11": F11, "F12": F12,
	"Left": Left, "Right": Right, "Up": Up, "Down": Down,
	"Home": Home, "End": End, "PgUp": PgUp, "PgDown": PgDown,
	"Insert": Insert, "Delete": Delete,
	"LCtrl": LCtrl, "LShift": LShift, "LAlt": LAlt, "LGui": LGui,
	"RCtrl": RCtrl, "RShift": RShift, "RAlt": RAlt, "RGui": RGui,
}

// Named looks up the KeyCode for a DSL-style bare identifier such as "A" or
// "LShift". It reports false if name does not match a known key.
func Named(name string) (KeyCode, bool) {
	kc, ok := named[name]
	return kc, ok
}
