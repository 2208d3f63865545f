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

package main

import (
	"flag"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mkfw/corelayout"
	"github.com/mkfw/corelayout/boardcfg"
)

// holdTicks is how many Tick calls a simulated keystroke stays "pressed"
// before kbsim synthesizes its Release — a terminal keystroke carries no
// separate key-up signal, unlike a real switch matrix.
const holdTicks = 12

func main() {
	boardPath := flag.String("board", "board.yaml", "path to a boardcfg board descriptor")
	keymapPath := flag.String("keymap", "keymap.yaml", "path to a boardcfg demo keymap")
	configPath := flag.String("config", "kbsim.toml", "path to kbsim's own TOML settings")
	flag.Parse()

	if err := run(*boardPath, *keymapPath, *configPath); err != nil {
		log.Fatal(err)
	}
}

func run(boardPath, keymapPath, configPath string) error {
	board, err := boardcfg.LoadBoard(boardPath)
	if err != nil {
		return err
	}
	layers, err := boardcfg.LoadKeymap(keymapPath)
	if err != nil {
		return err
	}
	cfg, err := loadSimConfig(configPath)
	if err != nil {
		return err
	}
	bindings, err := parseBindings(cfg.Bindings)
	if err != nil {
		return err
	}

	layout, err := corelayout.New(layers)
	if err != nil {
		return err
	}

	tty, err := openRawTerminal()
	if err != nil {
		return err
	}
	defer tty.Close()

	keys := make(chan byte, 16)
	go func() {
		for {
			b, err := tty.ReadByte()
			if err != nil {
				close(keys)
				return
			}
			keys <- b
		}
	}()

	log.Printf("kbsim: board %q, %dx%d matrix, tick=%dms (ctrl-c to quit)",
		board.Name, board.Rows, board.Cols, cfg.TickMillis)

	ticker := time.NewTicker(time.Duration(cfg.TickMillis) * time.Millisecond)
	defer ticker.Stop()

	type pendingRelease struct {
		coord corelayout.Coord
		at    int
	}
	var pending []pendingRelease
	tickCount := 0
	var lastKeys []corelayout.KeyCode

	for {
		select {
		case b, ok := <-keys:
			if !ok {
				return nil
			}
			if b == 3 { // ctrl-c
				return nil
			}
			coord, ok := bindings[b]
			if !ok {
				continue
			}
			layout.Event(corelayout.Press(coord.Row, coord.Col))
			pending = append(pending, pendingRelease{coord: coord, at: tickCount + holdTicks})

		case <-ticker.C:
			tickCount++

			kept := pending[:0]
			for _, p := range pending {
				if p.at <= tickCount {
					layout.Event(corelayout.Release(p.coord.Row, p.coord.Col))
				} else {
					kept = append(kept, p)
				}
			}
			pending = kept

			custom := layout.Tick()
			switch custom.Kind {
			case corelayout.CustomEventPress:
				log.Printf("custom press: %v", custom.Value)
			case corelayout.CustomEventRelease:
				log.Printf("custom release: %v", custom.Value)
			}

			var now []corelayout.KeyCode
			for kc := range layout.Keycodes() {
				now = append(now, kc)
			}
			if !slices.Equal(now, lastKeys) {
				logReport(now)
				lastKeys = now
			}
		}
	}
}

// logReport stands in for the external HID report formatter: it just dumps
// the deduplicated, sorted key code set.
func logReport(keys []corelayout.KeyCode) {
	dedup := make(map[corelayout.KeyCode]struct{}, len(keys))
	uniq := make([]corelayout.KeyCode, 0, len(keys))
	for _, k := range keys {
		if _, seen := dedup[k]; seen {
			continue
		}
		dedup[k] = struct{}{}
		uniq = append(uniq, k)
	}
	slices.Sort(uniq)
	log.Printf("report: %v", uniq)
}

// parseBindings turns the TOML "key -> row,col" string table into a byte ->
// Coord map. Each key is a single ASCII character as it arrives from the
// raw tty; each value is "row,col".
func parseBindings(raw map[string]string) (map[byte]corelayout.Coord, error) {
	out := make(map[byte]corelayout.Coord, len(raw))
	for k, v := range raw {
		if len(k) != 1 {
			return nil, fmt.Errorf("kbsim: binding key %q must be exactly one character", k)
		}
		parts := strings.SplitN(v, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("kbsim: binding %q=%q must have the form \"row,col\"", k, v)
		}
		row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("kbsim: binding %q=%q: bad row: %w", k, v, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("kbsim: binding %q=%q: bad col: %w", k, v, err)
		}
		out[k[0]] = corelayout.Coord{Row: uint8(row), Col: uint8(col)}
	}
	return out, nil
}
