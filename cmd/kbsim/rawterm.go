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
	"fmt"

	"github.com/pkg/term"
)

// rawTerminal is the controlling tty, switched to raw mode so kbsim can
// read one keystroke at a time without the line discipline waiting on
// Enter — the host-side analogue of a microcontroller sampling a GPIO pin
// the instant it changes.
type rawTerminal struct {
	t *term.Term
}

// openRawTerminal puts the controlling tty into raw mode, so ctrl-c arrives
// as an ordinary byte rather than a signal.
func openRawTerminal() (*rawTerminal, error) {
	t, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("kbsim: open tty: %w", err)
	}
	return &rawTerminal{t: t}, nil
}

// ReadByte blocks for the next keystroke.
func (r *rawTerminal) ReadByte() (byte, error) {
	buf := make([]byte, 1)
	for {
		n, err := r.t.Read(buf)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return buf[0], nil
		}
	}
}

// Close restores the tty's original mode.
func (r *rawTerminal) Close() error {
	if err := r.t.Restore(); err != nil {
		r.t.Close()
		return fmt.Errorf("kbsim: restore tty: %w", err)
	}
	return r.t.Close()
}
