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

// Command kbsim is a host-side terminal demonstration of corelayout: it
// reads raw keystrokes from the controlling tty, maps each one to a
// synthetic matrix coordinate, drives a Layout with them on a fixed tick
// rate, and logs the resulting key codes. It stands in for the HID report
// formatter and USB transport the core packages treat as external
// collaborators.
package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// simConfig is kbsim's own on-disk settings, distinct from the board
// geometry boardcfg loads: how fast to tick, and which single keystrokes
// the operator's terminal maps to which matrix coordinate.
type simConfig struct {
	TickMillis int               `toml:"tick_millis"`
	Bindings   map[string]string `toml:"bindings"`
}

// loadSimConfig reads a TOML settings file, replacing a non-positive
// tick_millis with 1.
func loadSimConfig(path string) (*simConfig, error) {
	var cfg simConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("kbsim: decode %s: %w", path, err)
	}
	if cfg.TickMillis <= 0 {
		cfg.TickMillis = 1
	}
	return &cfg, nil
}
