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

// Package matrix turns a raw GPIO switch matrix into debounced
// corelayout.Event values. It drives one row low at a time, samples every
// column, and only reports a transition once it has been electrically
// stable for a configured number of scan ticks.
package matrix

// InputPin is a single digital input capable of being sampled. It is the
// capability a matrix column needs; callers provide the concrete GPIO
// binding for their target.
type InputPin interface {
	IsLow() (bool, error)
}

// OutputPin is a single digital output capable of being driven high or low.
// It is the capability a matrix row needs.
type OutputPin interface {
	SetHigh() error
	SetLow() error
}
