// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package node provides the scene-object substrate for the kit system:
// the core [Node] interface and [Base] implementation, typed fields with
// default flags, the ordered [ChildList] collection, basic group and
// callback node types, and the traversal actions with the two-stage
// [Output] protocol.
package node

import (
	"reflect"
	"strings"

	"github.com/jinzhu/copier"

	"github.com/partkit/partkit/base/errors"
	"github.com/partkit/partkit/types"
)

// Node is the interface that all scene objects satisfy. The core
// functionality is defined on [Base], which all higher-level node types
// must embed. You can call [Node.AsNode] to get the [Base] of a Node
// and access the core functionality.
type Node interface {

	// AsNode returns the [Base] of this Node.
	AsNode() *Base

	// Init is called once when the node is first initialized, before it
	// is added to any parent. It is the place to register fields and set
	// their default values. It does nothing by default.
	Init()

	// NodeType returns the registered [types.Type] of this node.
	NodeType() *types.Type

	// FieldData returns the node's ordered field table.
	FieldData() *FieldData

	// ChildList returns the node's ordered child collection, or nil if
	// this node type does not hold children.
	ChildList() *ChildList

	// Accept handles the given traversal action at this node,
	// forwarding it to children as appropriate for the node type.
	Accept(a Action)

	// CopyContentsFrom copies the fields and children of the given node
	// into this node. The source must be of the same type.
	CopyContentsFrom(from Node)
}

// Base implements the [Node] interface and provides the core node
// functionality. All nodes must be initialized through [Init], [New],
// or [NewOfType] so that the [Base.This] field is set.
type Base struct {

	// This is the value of this Node as its true underlying type.
	// It allows methods defined on base types to call methods defined
	// on higher-level types. It is set automatically during [Init].
	This Node `copier:"-"`

	fields FieldData
}

// BaseType is the abstract root of the registered node type hierarchy.
var BaseType = types.AddType(&types.Type{
	Name:     "github.com/partkit/partkit/node.Base",
	IDName:   "base",
	Instance: &Base{},
})

// AsNode returns the [Base] for this Node.
func (n *Base) AsNode() *Base { return n }

// Init does nothing by default; node types override it to register
// their fields.
func (n *Base) Init() {}

// NodeType returns the registered [types.Type] of this node.
// It panics if the concrete type has not been registered, which is a
// programmer error in the type's package initialization.
func (n *Base) NodeType() *types.Type {
	t := types.TypeByValue(n.This)
	if t == nil {
		panic("node: type not registered: " + types.TypeNameValue(n.This))
	}
	return t
}

// FieldData returns the node's ordered field table.
func (n *Base) FieldData() *FieldData { return &n.fields }

// ChildList returns nil; node types holding children override it.
func (n *Base) ChildList() *ChildList { return nil }

// AddField registers the given field under the given name.
// Fields must be registered in [Node.Init], in declaration order.
func (n *Base) AddField(f Field, name string) {
	n.fields.AddField(f, name)
}

// NewInstance returns a new uninitialized instance of this node's
// concrete type.
func (n *Base) NewInstance() Node {
	return reflect.New(reflect.TypeOf(n.This).Elem()).Interface().(Node)
}

// Clone returns a deep copy of this node, with all fields and children
// copied.
func (n *Base) Clone() Node {
	nc := n.NewInstance()
	Init(nc)
	nc.CopyContentsFrom(n.This)
	return nc
}

// Accept implements the default action handling for a childless node:
// visit for callback and search traversals, and emit fields for write
// traversals. See [Group.Accept] for the forwarding version.
func (n *Base) Accept(a Action) {
	switch a := a.(type) {
	case *CallbackAction:
		a.visit(n.This)
	case *SearchAction:
		a.test(n.This)
	case *WriteAction:
		n.acceptWrite(a)
	}
}

// acceptWrite handles the two output stages for a plain node.
func (n *Base) acceptWrite(a *WriteAction) {
	out := a.Out
	if out.Stage() == CountRefs {
		out.AddRef(n.This)
		n.countRefFields(a)
		if cl := n.This.ChildList(); cl != nil {
			cl.Traverse(a)
		}
		return
	}
	if !out.BeginNode(n.This) {
		return
	}
	n.writeFields(out)
	if cl := n.This.ChildList(); cl != nil {
		cl.Traverse(a)
	}
	out.CloseNode()
}

// countRefFields forwards the counting stage into any node-valued
// fields.
func (n *Base) countRefFields(a *WriteAction) {
	fd := n.This.FieldData()
	for i, nf := 0, fd.NumFields(); i < nf; i++ {
		if rf, ok := fd.Field(i).(*Ref); ok && rf.Value != nil {
			rf.Value.Accept(a)
		}
	}
}

// writeFields emits all non-default fields of this node.
func (n *Base) writeFields(out *Output) {
	fd := n.This.FieldData()
	for i, nf := 0, fd.NumFields(); i < nf; i++ {
		f := fd.Field(i)
		if !f.IsDefault() {
			f.Write(out)
		}
	}
}

// CopyContentsFrom copies the fields of the given node into this node,
// using [copier] for plain struct members and per-field copying for the
// registered field table so that default flags carry over. Node types
// holding children override this to also copy the children.
func (n *Base) CopyContentsFrom(from Node) {
	err := copier.CopyWithOption(n.This, from.AsNode().This,
		copier.Option{CaseSensitive: true, DeepCopy: true})
	if err != nil {
		errors.Log(err)
	}
	n.fields.CopyFrom(from.FieldData())
}

// Init initializes the given node, setting [Base.This] and calling
// [Node.Init] exactly once in the node's lifetime. It returns the node.
func Init(n Node) Node {
	nb := n.AsNode()
	if nb.This == nil {
		nb.This = n
		n.Init()
	}
	return n
}

// New creates and initializes a new node of the given type.
func New[T Node]() T {
	var z T
	n := reflect.New(reflect.TypeOf(z).Elem()).Interface().(Node)
	Init(n)
	return n.(T)
}

// NewOfType creates and initializes a new node of the given registered
// type. It returns nil if the type is abstract or is not a node type.
func NewOfType(t *types.Type) Node {
	inst := t.NewInstance()
	if inst == nil {
		return nil
	}
	n, ok := inst.(Node)
	if !ok {
		return nil
	}
	Init(n)
	return n
}

// ShouldWrite returns whether the given node has any content justifying
// emission: a non-default field or at least one child.
func ShouldWrite(n Node) bool {
	if n == nil {
		return false
	}
	fd := n.FieldData()
	for i, nf := 0, fd.NumFields(); i < nf; i++ {
		if !fd.Field(i).IsDefault() {
			return true
		}
	}
	cl := n.ChildList()
	return cl != nil && cl.Len() > 0
}

// TypeLabel returns the bare type name of the given node as used in
// text output (eg: Separator).
func TypeLabel(n Node) string {
	sn := n.NodeType().ShortName()
	if i := strings.LastIndex(sn, "."); i >= 0 {
		return sn[i+1:]
	}
	return sn
}
