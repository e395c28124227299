// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kit

import (
	"fmt"

	"github.com/partkit/partkit/node"
	"github.com/partkit/partkit/types"
)

// ListPart is the node installed in a list part slot. It wraps a
// container group node holding the list items and enforces the item
// types the catalog permits. Once installed by the part machinery the
// permitted types are locked.
type ListPart struct {
	node.Base

	containerTypeName node.String
	containerNode     node.Ref

	allowed []*types.Type
	locked  bool
}

// ListPartType is the registered type of [ListPart].
var ListPartType = types.AddType(&types.Type{
	Name:     "github.com/partkit/partkit/kit.ListPart",
	IDName:   "list-part",
	Parent:   node.BaseType,
	Instance: &ListPart{},
})

func (p *ListPart) Init() {
	p.containerTypeName.Value = node.GroupType.ShortName()
	p.AddField(&p.containerTypeName, "containerTypeName")
	p.AddField(&p.containerNode, "containerNode")
}

// SetContainerType sets the node type used as the list container,
// which must be [node.GroupType] or derived from it. It fails if the
// container already exists or the list is locked.
func (p *ListPart) SetContainerType(t *types.Type) error {
	if p.locked {
		return fmt.Errorf("kit: list container type is locked")
	}
	if p.containerNode.Value != nil {
		return fmt.Errorf("kit: list container already exists")
	}
	if t == nil || !t.DerivedFrom(node.GroupType) {
		return fmt.Errorf("kit: list container type must derive from Group")
	}
	if t.Instance == nil {
		return fmt.Errorf("kit: list container type %s is abstract", t.Name)
	}
	p.containerTypeName.Value = t.ShortName()
	return nil
}

// AddChildType adds a permitted item type. It fails if the list is
// locked.
func (p *ListPart) AddChildType(t *types.Type) error {
	if p.locked {
		return fmt.Errorf("kit: list item types are locked")
	}
	p.allowed = append(p.allowed, t)
	return nil
}

// lockTypes freezes the container and item types. The part machinery
// locks every list it installs.
func (p *ListPart) lockTypes() { p.locked = true }

// IsTypePermitted returns whether items of the given type may be added.
func (p *ListPart) IsTypePermitted(t *types.Type) bool {
	for _, at := range p.allowed {
		if t.DerivedFrom(at) {
			return true
		}
	}
	return false
}

// ContainerNode returns the container group node, creating it if
// makeIfNeeded is true and it does not exist yet.
func (p *ListPart) ContainerNode(makeIfNeeded bool) node.Node {
	if p.containerNode.Value == nil && makeIfNeeded {
		t := typeByShortName(p.containerTypeName.Value)
		if t == nil {
			t = node.GroupType
		}
		cn := node.NewOfType(t)
		p.containerNode.Value = cn
		p.containerNode.SetDefault(true)
	}
	return p.containerNode.Value
}

// containerChildren returns the container's child list, or nil if the
// container does not exist.
func (p *ListPart) containerChildren() *node.ChildList {
	cn := p.containerNode.Value
	if cn == nil {
		return nil
	}
	return cn.ChildList()
}

// NumChildren returns the number of list items.
func (p *ListPart) NumChildren() int {
	cl := p.containerChildren()
	if cl == nil {
		return 0
	}
	return cl.Len()
}

// Child returns the list item at the given index, or nil if out of
// range.
func (p *ListPart) Child(i int) node.Node {
	cl := p.containerChildren()
	if cl == nil {
		return nil
	}
	return cl.Child(i)
}

// AddChild appends a list item, failing if its type is not permitted.
func (p *ListPart) AddChild(n node.Node) error {
	return p.InsertChild(n, p.NumChildren())
}

// InsertChild inserts a list item at the given index, which may be at
// most the current length.
func (p *ListPart) InsertChild(n node.Node, i int) error {
	if !p.IsTypePermitted(n.NodeType()) {
		return fmt.Errorf("kit: list does not permit items of type %s", n.NodeType().Name)
	}
	if i < 0 || i > p.NumChildren() {
		return fmt.Errorf("kit: list index %d out of range [0, %d]", i, p.NumChildren())
	}
	cn := p.ContainerNode(true)
	cn.ChildList().Insert(i, n)
	p.containerNode.SetDefault(false)
	return nil
}

// ReplaceChild replaces the list item at the given index.
func (p *ListPart) ReplaceChild(i int, n node.Node) error {
	if !p.IsTypePermitted(n.NodeType()) {
		return fmt.Errorf("kit: list does not permit items of type %s", n.NodeType().Name)
	}
	cl := p.containerChildren()
	if cl == nil || !cl.Replace(i, n) {
		return fmt.Errorf("kit: list index %d out of range [0, %d)", i, p.NumChildren())
	}
	p.containerNode.SetDefault(false)
	return nil
}

// RemoveChild removes the list item at the given index.
func (p *ListPart) RemoveChild(i int) error {
	cl := p.containerChildren()
	if cl == nil || !cl.RemoveAt(i) {
		return fmt.Errorf("kit: list index %d out of range [0, %d)", i, p.NumChildren())
	}
	p.containerNode.SetDefault(false)
	return nil
}

// SetChild installs the given node at the given index: replacing an
// existing item, appending when the index equals the length, or
// removing the item when the node is nil.
func (p *ListPart) SetChild(i int, n node.Node) error {
	if n == nil {
		if i < 0 || i >= p.NumChildren() {
			return nil
		}
		return p.RemoveChild(i)
	}
	if i == p.NumChildren() {
		return p.InsertChild(n, i)
	}
	return p.ReplaceChild(i, n)
}

// CanCreateDefaultChild returns whether the list has a permitted item
// type that can be instantiated.
func (p *ListPart) CanCreateDefaultChild() bool {
	return p.defaultChildType() != nil
}

// CreateAndAddDefaultChild appends a new item of the first
// instantiable permitted type and returns it.
func (p *ListPart) CreateAndAddDefaultChild() (node.Node, error) {
	t := p.defaultChildType()
	if t == nil {
		return nil, fmt.Errorf("kit: list has no instantiable item type")
	}
	n := node.NewOfType(t)
	if err := p.AddChild(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *ListPart) defaultChildType() *types.Type {
	for _, t := range p.allowed {
		if t.Instance != nil {
			return t
		}
	}
	return nil
}

// Accept forwards non-write actions into the container; writes use the
// default field emission, which writes the container as a nested
// block.
func (p *ListPart) Accept(a node.Action) {
	if _, ok := a.(*node.WriteAction); ok {
		p.Base.Accept(a)
		return
	}
	p.Base.Accept(a)
	switch a := a.(type) {
	case *node.CallbackAction:
		if a.Stopped() {
			return
		}
	case *node.SearchAction:
		if a.Found() != nil {
			return
		}
	}
	if cn := p.containerNode.Value; cn != nil {
		cn.Accept(a)
	}
}

// CopyContentsFrom deep-copies the list: permitted types, lock state,
// and the container with its items.
func (p *ListPart) CopyContentsFrom(from node.Node) {
	fp, ok := from.(*ListPart)
	if !ok {
		return
	}
	p.containerTypeName.CopyFrom(&fp.containerTypeName)
	p.allowed = append([]*types.Type(nil), fp.allowed...)
	p.locked = fp.locked
	if fcn := fp.containerNode.Value; fcn != nil {
		p.containerNode.Value = fcn.AsNode().Clone()
	} else {
		p.containerNode.Value = nil
	}
	p.containerNode.SetDefault(fp.containerNode.IsDefault())
}

// typeByShortName resolves a short name (package.Type) recorded in the
// containerTypeName field back to a registered type.
func typeByShortName(sn string) *types.Type {
	for _, t := range types.Types {
		if t.ShortName() == sn {
			return t
		}
	}
	return nil
}
