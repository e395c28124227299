// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"bytes"
	"fmt"
)

// Stage is the phase of a write traversal. Every write runs the
// [CountRefs] stage over the whole graph first, then the [Write] stage;
// nodes may stash per-write state during counting and must discard it
// after writing.
type Stage int32

const (
	// CountRefs is the first stage: visit everything, record reference
	// counts, and let nodes precompute what they will emit.
	CountRefs Stage = iota

	// Write is the second stage: emit text.
	Write
)

// Output collects the text produced by a write traversal and carries
// the stage and the per-node reference counts across the two passes.
type Output struct {
	stage       Stage
	refs        map[Node]int
	written     map[Node]string
	defCounter  int
	buf         bytes.Buffer
	indent      int
	atLineStart bool
}

// NewOutput returns an [Output] in the [CountRefs] stage.
func NewOutput() *Output {
	return &Output{
		refs:        map[Node]int{},
		written:     map[Node]string{},
		atLineStart: true,
	}
}

// Stage returns the current write stage.
func (o *Output) Stage() Stage { return o.stage }

// SetStage sets the current write stage.
func (o *Output) SetStage(s Stage) { o.stage = s }

// AddRef records one reference to the given node during counting and
// returns the updated count.
func (o *Output) AddRef(n Node) int {
	o.refs[n]++
	return o.refs[n]
}

// RefCount returns the number of references recorded for the given
// node.
func (o *Output) RefCount(n Node) int { return o.refs[n] }

// Indent increases the indentation level for subsequent lines.
func (o *Output) Indent() { o.indent++ }

// Unindent decreases the indentation level.
func (o *Output) Unindent() {
	if o.indent > 0 {
		o.indent--
	}
}

// Printf writes formatted text, inserting the current indentation at
// the start of a line.
func (o *Output) Printf(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	if s == "" {
		return
	}
	if o.atLineStart {
		for i := 0; i < o.indent; i++ {
			o.buf.WriteString("  ")
		}
	}
	o.buf.WriteString(s)
	o.atLineStart = s[len(s)-1] == '\n'
}

// WriteFieldValue writes one "name value" field line.
func (o *Output) WriteFieldValue(name, value string) {
	o.Printf("%s %s\n", name, value)
}

// BeginNode opens the block for the given node, handling sharing: a
// node counted more than once gets a DEF name on its first emission,
// and later emissions become a USE reference. It returns whether the
// caller should emit the node's contents and close the block.
func (o *Output) BeginNode(n Node) bool {
	if name, has := o.written[n]; has {
		o.Printf("USE %s\n", name)
		return false
	}
	if o.refs[n] > 1 {
		name := fmt.Sprintf("+%d", o.defCounter)
		o.defCounter++
		o.written[n] = name
		o.Printf("DEF %s %s {\n", name, TypeLabel(n))
	} else {
		o.Printf("%s {\n", TypeLabel(n))
	}
	o.Indent()
	return true
}

// CloseNode unindents and writes the closing brace of a node block.
func (o *Output) CloseNode() {
	o.Unindent()
	o.Printf("}\n")
}

// Bytes returns the accumulated output text.
func (o *Output) Bytes() []byte { return o.buf.Bytes() }

// String returns the accumulated output text as a string.
func (o *Output) String() string { return o.buf.String() }
