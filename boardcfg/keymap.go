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

package boardcfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mkfw/corelayout"
	"gopkg.in/yaml.v3"
)

// keymapFile is the on-disk YAML shape: one list of rows per layer, one
// list of cell identifiers per row.
type keymapFile struct {
	Layers [][][]string `yaml:"layers"`
}

// LoadKeymap reads a demonstration keymap from path and builds the
// corelayout.Layers table it describes. This is a deliberately small
// keyword grammar — not the bracket/brace macro DSL a full build-time code
// generator would offer — recognizing:
//
//	""        an empty cell, same as "noop"
//	"noop"    Action.NoOp
//	"trans"   Action.Trans
//	"layer:N" Action.Layer(N)
//	"deflt:N" Action.DefaultLayer(N)
//	anything else is looked up as a KeyCode name (corelayout.Named)
//
// LoadKeymap only ever produces corelayout.NoCustom layouts; a layout using
// custom actions must be built in Go directly.
func LoadKeymap(path string) (corelayout.Layers[corelayout.NoCustom], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("boardcfg: read %s: %w", path, err)
	}
	var kf keymapFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("boardcfg: parse %s: %w", path, err)
	}

	layers := make(corelayout.Layers[corelayout.NoCustom], len(kf.Layers))
	for li, rows := range kf.Layers {
		layers[li] = make([][]corelayout.Action[corelayout.NoCustom], len(rows))
		for ri, cells := range rows {
			layers[li][ri] = make([]corelayout.Action[corelayout.NoCustom], len(cells))
			for ci, cell := range cells {
				action, err := parseCell(cell)
				if err != nil {
					return nil, fmt.Errorf("boardcfg: %s: layer %d row %d col %d: %w", path, li, ri, ci, err)
				}
				layers[li][ri][ci] = action
			}
		}
	}
	return layers, nil
}

func parseCell(cell string) (corelayout.Action[corelayout.NoCustom], error) {
	switch {
	case cell == "" || cell == "noop":
		return corelayout.Action[corelayout.NoCustom]{}, nil
	case cell == "trans":
		return corelayout.Action[corelayout.NoCustom]{Kind: corelayout.ActionTrans}, nil
	case strings.HasPrefix(cell, "layer:"):
		n, err := strconv.Atoi(strings.TrimPrefix(cell, "layer:"))
		if err != nil {
			return corelayout.Action[corelayout.NoCustom]{}, fmt.Errorf("bad layer index %q: %w", cell, err)
		}
		return corelayout.LayerMod[corelayout.NoCustom](n), nil
	case strings.HasPrefix(cell, "deflt:"):
		n, err := strconv.Atoi(strings.TrimPrefix(cell, "deflt:"))
		if err != nil {
			return corelayout.Action[corelayout.NoCustom]{}, fmt.Errorf("bad default-layer index %q: %w", cell, err)
		}
		return corelayout.DefaultLayer[corelayout.NoCustom](n), nil
	default:
		kc, ok := corelayout.Named(cell)
		if !ok {
			return corelayout.Action[corelayout.NoCustom]{}, fmt.Errorf("unknown key identifier %q", cell)
		}
		return corelayout.Key[corelayout.NoCustom](kc), nil
	}
}
