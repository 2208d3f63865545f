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

// CustomEventKind tags the variant held by a CustomEvent.
type CustomEventKind uint8

const (
	// CustomEventNone is the zero value: no custom action transitioned
	// this tick.
	CustomEventNone CustomEventKind = iota
	// CustomEventPress fired on this tick.
	CustomEventPress
	// CustomEventRelease fired on this tick.
	CustomEventRelease
)

// CustomEvent reports whether a custom action's payload started or stopped
// being active on a given tick. Layout.Tick returns at most one
// CustomEvent per call, combined across every custom action evaluated that
// tick under the ordering None < Press < Release: a Release anywhere
// outranks a Press anywhere, which in turn outranks no event at all, since
// a key coming back up always needs reporting even if another custom
// action pressed down in the same tick.
type CustomEvent[T any] struct {
	Kind  CustomEventKind
	Value T
}

// NoCustomEvent returns the zero CustomEvent.
func NoCustomEvent[T any]() CustomEvent[T] {
	return CustomEvent[T]{}
}

// CustomPress returns a Press CustomEvent carrying v.
func CustomPress[T any](v T) CustomEvent[T] {
	return CustomEvent[T]{Kind: CustomEventPress, Value: v}
}

// CustomRelease returns a Release CustomEvent carrying v.
func CustomRelease[T any](v T) CustomEvent[T] {
	return CustomEvent[T]{Kind: CustomEventRelease, Value: v}
}

// combineCustomEvent folds a newly observed CustomEvent into the running result for a
// tick, keeping the higher-ranked of the two under None < Press < Release.
func combineCustomEvent[T any](acc, next CustomEvent[T]) CustomEvent[T] {
	if next.Kind > acc.Kind {
		return next
	}
	return acc
}
