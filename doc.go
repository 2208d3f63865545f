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

// Package corelayout is an event-driven layout engine for mechanical
// keyboard firmware. It consumes matrix press/release events and periodic
// clock ticks, resolves hold-tap ambiguity and layer modifiers against a
// static multi-layer key map, and exposes the set of currently active key
// codes along with custom-action press/release transitions.
//
// The engine is sized entirely at construction time, never allocates after
// construction, and assumes a single cooperative caller driving Event and
// Tick from one goroutine — the same constraints a no-heap, single-threaded
// microcontroller firmware imposes. The companion package
// github.com/mkfw/corelayout/matrix turns a raw GPIO matrix into the
// Press/Release events this package consumes.
package corelayout
