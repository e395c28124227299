// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import "slices"

// ChildList is the ordered child collection of a node. Each slot holds
// exactly one node; a node is not tracked across lists, so callers
// manage sharing themselves.
type ChildList struct {
	nodes []Node
}

// Len returns the number of children.
func (cl *ChildList) Len() int { return len(cl.nodes) }

// Child returns the child at the given index, or nil if out of range.
func (cl *ChildList) Child(i int) Node {
	if i < 0 || i >= len(cl.nodes) {
		return nil
	}
	return cl.nodes[i]
}

// Append adds the given node at the end.
func (cl *ChildList) Append(n Node) {
	cl.nodes = append(cl.nodes, n)
}

// Insert inserts the given node at the given index, which is clamped
// to the valid range.
func (cl *ChildList) Insert(i int, n Node) {
	if i < 0 {
		i = 0
	}
	if i > len(cl.nodes) {
		i = len(cl.nodes)
	}
	cl.nodes = slices.Insert(cl.nodes, i, n)
}

// Replace replaces the child at the given index, returning false if the
// index is out of range.
func (cl *ChildList) Replace(i int, n Node) bool {
	if i < 0 || i >= len(cl.nodes) {
		return false
	}
	cl.nodes[i] = n
	return true
}

// RemoveAt removes the child at the given index, returning false if the
// index is out of range.
func (cl *ChildList) RemoveAt(i int) bool {
	if i < 0 || i >= len(cl.nodes) {
		return false
	}
	cl.nodes = slices.Delete(cl.nodes, i, i+1)
	return true
}

// Remove removes the first occurrence of the given node (by identity),
// returning whether it was present.
func (cl *ChildList) Remove(n Node) bool {
	i := cl.Find(n)
	if i < 0 {
		return false
	}
	return cl.RemoveAt(i)
}

// Find returns the index of the given node (by identity), or -1.
func (cl *ChildList) Find(n Node) int {
	for i, c := range cl.nodes {
		if c == n {
			return i
		}
	}
	return -1
}

// Truncate drops all children at or beyond the given index.
func (cl *ChildList) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(cl.nodes) {
		cl.nodes = cl.nodes[:n]
	}
}

// Clear removes all children.
func (cl *ChildList) Clear() {
	cl.nodes = nil
}

// Traverse forwards the given action to every child in order.
func (cl *ChildList) Traverse(a Action) {
	for _, c := range cl.nodes {
		c.Accept(a)
	}
}

// TraverseRange forwards the given action to the children in [from, to]
// inclusive, clamped to the valid range.
func (cl *ChildList) TraverseRange(a Action, from, to int) {
	if from < 0 {
		from = 0
	}
	if to >= len(cl.nodes) {
		to = len(cl.nodes) - 1
	}
	for i := from; i <= to; i++ {
		cl.nodes[i].Accept(a)
	}
}

// TraverseInPath forwards the given action only to the children at the
// given indices, in order, skipping any that are out of range.
func (cl *ChildList) TraverseInPath(a Action, indices []int) {
	for _, i := range indices {
		if c := cl.Child(i); c != nil {
			c.Accept(a)
		}
	}
}
