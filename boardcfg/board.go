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

// Package boardcfg loads the host-side, build-time board description that
// a real firmware image would instead bake in as const generics: matrix
// geometry, pin names, debounce depth, and a demonstration keymap. None of
// this runs on the no-heap scan/tick hot path — it executes once, before a
// matrix.Scanner or corelayout.Layout is constructed.
package boardcfg

import (
	"fmt"
	"os"

	"github.com/mkfw/corelayout"
	"gopkg.in/yaml.v3"
)

// Board is the geometry and pin assignment of a physical keyboard matrix.
type Board struct {
	Name          string   `yaml:"name"`
	Rows          int      `yaml:"rows"`
	Cols          int      `yaml:"cols"`
	DebounceTicks uint32   `yaml:"debounce_ticks"`
	RowPins       []string `yaml:"row_pins"`
	ColPins       []string `yaml:"col_pins"`
	// SplitCols is the column count of one half of a split board; zero
	// means the board is not split. It is what MirrorCols needs to build
	// the right-half column transform.
	SplitCols int `yaml:"split_cols"`
}

// LoadBoard reads and validates a Board descriptor from a YAML file.
func LoadBoard(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("boardcfg: read %s: %w", path, err)
	}
	var b Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("boardcfg: parse %s: %w", path, err)
	}
	if b.Rows <= 0 || b.Cols <= 0 {
		return nil, fmt.Errorf("boardcfg: %s: rows and cols must be positive", path)
	}
	if len(b.RowPins) != b.Rows {
		return nil, fmt.Errorf("boardcfg: %s: want %d row_pins, got %d", path, b.Rows, len(b.RowPins))
	}
	if len(b.ColPins) != b.Cols {
		return nil, fmt.Errorf("boardcfg: %s: want %d col_pins, got %d", path, b.Cols, len(b.ColPins))
	}
	return &b, nil
}

// MirrorCols returns a coordinate transform that mirrors the column axis
// of events produced by one half of a split keyboard, so both halves can
// feed the same corelayout.Layout in a single unified coordinate space. The
// right half's column j becomes width-1-j, the usual convention for
// wiring a mirrored split-keyboard half into one shared column space.
func MirrorCols(width int) func(corelayout.Coord) corelayout.Coord {
	return func(c corelayout.Coord) corelayout.Coord {
		if int(c.Col) < width {
			c.Col = uint8(width - 1 - int(c.Col))
		}
		return c
	}
}
