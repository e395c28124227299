// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"fmt"
	"strconv"
	"strings"
)

// Input is a cursor over field-value text, as used by part paths and
// the "partname { field value ... }" set syntax.
type Input struct {
	s   string
	pos int
}

// NewInput returns an [Input] reading the given string from the start.
func NewInput(s string) *Input {
	return &Input{s: s}
}

// Pos returns the current byte offset.
func (in *Input) Pos() int { return in.pos }

// AtEnd returns whether the cursor has consumed all input.
func (in *Input) AtEnd() bool { return in.pos >= len(in.s) }

// Peek returns the byte at the cursor, or 0 at end of input.
func (in *Input) Peek() byte {
	if in.AtEnd() {
		return 0
	}
	return in.s[in.pos]
}

// SkipSpace advances the cursor past any whitespace.
func (in *Input) SkipSpace() {
	for !in.AtEnd() && isSpace(in.s[in.pos]) {
		in.pos++
	}
}

// Expect consumes the given byte if it is next after whitespace,
// returning whether it was found.
func (in *Input) Expect(c byte) bool {
	in.SkipSpace()
	if in.Peek() == c {
		in.pos++
		return true
	}
	return false
}

// ReadName reads a name token: any run of non-whitespace bytes, also
// terminated by '{' or '}'. It returns the empty string if no name
// bytes are present.
func (in *Input) ReadName() string {
	in.SkipSpace()
	start := in.pos
	for !in.AtEnd() {
		c := in.s[in.pos]
		if isSpace(c) || c == '{' || c == '}' {
			break
		}
		in.pos++
	}
	return in.s[start:in.pos]
}

// ReadFloat32 reads a float32 value.
func (in *Input) ReadFloat32() (float32, error) {
	w := in.ReadName()
	v, err := strconv.ParseFloat(w, 32)
	if err != nil {
		return 0, in.Errorf("invalid number %q", w)
	}
	return float32(v), nil
}

// ReadInt reads an int value.
func (in *Input) ReadInt() (int, error) {
	w := in.ReadName()
	v, err := strconv.Atoi(w)
	if err != nil {
		return 0, in.Errorf("invalid integer %q", w)
	}
	return v, nil
}

// ReadBool reads TRUE or FALSE, case-insensitively.
func (in *Input) ReadBool() (bool, error) {
	w := in.ReadName()
	switch strings.ToUpper(w) {
	case "TRUE":
		return true, nil
	case "FALSE":
		return false, nil
	}
	return false, in.Errorf("invalid boolean %q", w)
}

// ReadString reads a double-quoted string, or a bare name token if the
// value is unquoted.
func (in *Input) ReadString() (string, error) {
	in.SkipSpace()
	if in.Peek() != '"' {
		return in.ReadName(), nil
	}
	in.pos++
	start := in.pos
	for !in.AtEnd() && in.s[in.pos] != '"' {
		in.pos++
	}
	if in.AtEnd() {
		return "", in.Errorf("unterminated string")
	}
	s := in.s[start:in.pos]
	in.pos++
	return s, nil
}

// Errorf returns an error annotated with the current input position.
func (in *Input) Errorf(format string, args ...any) error {
	return fmt.Errorf("%s (at offset %d in %q)",
		fmt.Sprintf(format, args...), in.pos, in.s)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
