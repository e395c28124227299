// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import "github.com/partkit/partkit/types"

// Group is a node holding an ordered list of children. Actions applied
// to a group forward to every child, or to the children named by the
// action's restricted index path.
type Group struct {
	Base

	children ChildList
}

// GroupType is the registered type of [Group].
var GroupType = types.AddType(&types.Type{
	Name:     "github.com/partkit/partkit/node.Group",
	IDName:   "group",
	Parent:   BaseType,
	Instance: &Group{},
})

// ChildList returns the group's child collection.
func (g *Group) ChildList() *ChildList { return &g.children }

// AddChild appends the given node as a child.
func (g *Group) AddChild(n Node) {
	g.children.Append(n)
}

// Accept visits the group itself, then forwards the action to the
// children named by the action's restricted index path, or to every
// child if there is none.
func (g *Group) Accept(a Action) {
	g.Base.Accept(a)
	switch a := a.(type) {
	case *CallbackAction:
		if a.stopped {
			return
		}
	case *SearchAction:
		if a.found != nil {
			return
		}
	case *WriteAction:
		// the write stages forward from within acceptWrite, where the
		// children belong inside the braces
		return
	}
	if inds := a.TakeIndices(); inds != nil {
		g.children.TraverseInPath(a, inds)
	} else {
		g.children.Traverse(a)
	}
}

// CopyContentsFrom copies the fields and deep-copies the children of
// the given group into this group.
func (g *Group) CopyContentsFrom(from Node) {
	g.Base.CopyContentsFrom(from)
	fcl := from.ChildList()
	g.children.Clear()
	for i, fn := 0, fcl.Len(); i < fn; i++ {
		g.children.Append(fcl.Child(i).AsNode().Clone())
	}
}

// Separator is a [Group] that isolates the effects of its children from
// the rest of the graph during traversal.
type Separator struct {
	Group
}

// SeparatorType is the registered type of [Separator].
var SeparatorType = types.AddType(&types.Type{
	Name:     "github.com/partkit/partkit/node.Separator",
	IDName:   "separator",
	Parent:   GroupType,
	Instance: &Separator{},
})
