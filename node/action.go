// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"github.com/partkit/partkit/math32"
	"github.com/partkit/partkit/types"
)

const (
	// Continue = true can be returned from callback functions
	// to continue traversing.
	Continue = true

	// Break = false can be returned from callback functions
	// to stop traversing.
	Break = false
)

// Action is a traversal dispatched through [Node.Accept]. An action may
// carry a restricted index path, which limits forwarding at the node it
// is applied to; once taken, deeper levels traverse normally.
type Action interface {

	// TakeIndices returns the restricted index path and clears it, so
	// that the restriction applies only at one level. It returns nil if
	// there is no restriction (or it was already taken).
	TakeIndices() []int
}

// ActionBase provides the index-path handling shared by all actions.
type ActionBase struct {

	// Indices is the optional restricted index path: the ordered child
	// indices the action is forwarded to at the node it is applied to.
	Indices []int
}

func (a *ActionBase) TakeIndices() []int {
	inds := a.Indices
	a.Indices = nil
	return inds
}

// CallbackAction visits every node in traversal order, calling Func
// until it returns [Break].
type CallbackAction struct {
	ActionBase

	// Func is called for each node visited. Returning [Break] stops the
	// traversal.
	Func func(n Node) bool

	stopped bool
}

// Apply runs this action on the given root node.
func (a *CallbackAction) Apply(root Node) {
	root.Accept(a)
}

// Stopped returns whether the callback broke the traversal.
func (a *CallbackAction) Stopped() bool { return a.stopped }

func (a *CallbackAction) visit(n Node) {
	if a.stopped || a.Func == nil {
		return
	}
	if a.Func(n) == Break {
		a.stopped = true
	}
}

// SearchAction finds the first node whose type is or derives from Type,
// in traversal order.
type SearchAction struct {
	ActionBase

	// Type is the registered type to search for.
	Type *types.Type

	// SearchChildren makes kits forward the search into their part
	// children, which they do not by default.
	SearchChildren bool

	found Node
}

// Apply runs this action on the given root node and returns the found
// node, or nil.
func (a *SearchAction) Apply(root Node) Node {
	root.Accept(a)
	return a.found
}

// Found returns the found node, or nil.
func (a *SearchAction) Found() Node { return a.found }

func (a *SearchAction) test(n Node) {
	if a.found != nil || a.Type == nil {
		return
	}
	if n.NodeType().DerivedFrom(a.Type) {
		a.found = n
	}
}

// BoundsAction accumulates an axis-aligned bounding box and an averaged
// center point over the traversed nodes. Shape nodes extend the box and
// set their center; aggregate nodes average the centers their children
// report.
type BoundsAction struct {
	ActionBase

	// Box is the accumulated bounding box.
	Box math32.Box3

	center    math32.Vector3
	centerSet bool
}

// NewBoundsAction returns a [BoundsAction] with an empty box.
func NewBoundsAction() *BoundsAction {
	return &BoundsAction{Box: math32.B3Empty()}
}

// Apply runs this action on the given root node and returns the
// accumulated box.
func (a *BoundsAction) Apply(root Node) math32.Box3 {
	root.Accept(a)
	return a.Box
}

// SetCenter records the center point reported by the current node,
// replacing any previous one.
func (a *BoundsAction) SetCenter(c math32.Vector3) {
	a.center = c
	a.centerSet = true
}

// IsCenterSet returns whether a center has been recorded since the last
// [BoundsAction.ResetCenter].
func (a *BoundsAction) IsCenterSet() bool { return a.centerSet }

// ResetCenter clears the recorded center.
func (a *BoundsAction) ResetCenter() {
	a.center = math32.Vector3{}
	a.centerSet = false
}

// Center returns the recorded center point.
func (a *BoundsAction) Center() math32.Vector3 { return a.center }

// WriteAction emits the text form of the traversed nodes into Out,
// in whatever stage Out is currently in. Use [WriteNode] to run both
// stages over a root node.
type WriteAction struct {
	ActionBase

	// Out is the destination output.
	Out *Output
}

// Apply runs this action on the given root node in the output's current
// stage.
func (a *WriteAction) Apply(root Node) {
	root.Accept(a)
}

// WriteNode runs a full two-stage write of the given root node and
// returns the produced text.
func WriteNode(root Node) []byte {
	out := NewOutput()
	root.Accept(&WriteAction{Out: out})
	out.SetStage(Write)
	root.Accept(&WriteAction{Out: out})
	return out.Bytes()
}
