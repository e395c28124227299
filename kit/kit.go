// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kit implements schema-driven composite nodes: each kit type
// declares an immutable [Catalog] of named part slots, and each kit
// instance builds, replaces, and locates the actual part nodes on
// demand, keeping the child tree ordered the way the catalog demands.
package kit

import (
	"fmt"

	"github.com/partkit/partkit/math32"
	"github.com/partkit/partkit/node"
	"github.com/partkit/partkit/types"
)

// Kit is the interface satisfied by all composite nodes. The core
// functionality is defined on [BaseKit], which all kit types embed.
type Kit interface {
	node.Node

	// AsBaseKit returns the [BaseKit] of this kit.
	AsBaseKit() *BaseKit
}

// BaseKit is the base type of all composite nodes. It holds the
// per-instance part slot table, parallel to the type's [Catalog]
// entries, and the child tree the parts live in. Part slots are
// node-valued fields registered under the part names, so parts
// participate in field reads and writes.
type BaseKit struct {
	node.Base

	children node.ChildList
	catalog  *Catalog
	slots    []*node.Ref

	// writeData is the per-write field view assembled during the
	// counting stage and discarded after the write stage.
	writeData *node.FieldData
}

// BaseKitType is the registered type of [BaseKit], the root of the kit
// type hierarchy. Its catalog has the "this" entry and a public
// callbackList part for hanging behavior on any kit.
var BaseKitType = types.AddType(&types.Type{
	Name:     "github.com/partkit/partkit/kit.BaseKit",
	IDName:   "base-kit",
	Parent:   node.BaseType,
	Instance: &BaseKit{},
})

func init() {
	AddCatalog(BaseKitType, func(c *Catalog) error {
		err := c.AddEntry(Entry{
			Name: "this",
			Type: BaseKitType,
		}, "", "")
		if err != nil {
			return err
		}
		return c.AddEntry(Entry{
			Name:              "callbackList",
			Type:              ListPartType,
			IsList:            true,
			ListContainerType: node.SeparatorType,
			ListItemTypes:     []*types.Type{node.CallbackType},
			IsPublic:          true,
			NullByDefault:     true,
		}, "this", "")
	})
}

// AsBaseKit returns the [BaseKit] of this kit.
func (k *BaseKit) AsBaseKit() *BaseKit { return k }

// Init looks up the catalog registered for the kit's concrete type,
// registers one node-valued field per part slot, and builds the parts
// that are not null by default. Kit types adding their own fields must
// call this first in their Init.
func (k *BaseKit) Init() {
	t := k.This.NodeType()
	k.catalog = CatalogFor(t)
	if k.catalog == nil {
		panic("kit: no catalog registered for type " + t.Name)
	}
	n := k.catalog.NumEntries()
	k.slots = make([]*node.Ref, n)
	for i := 1; i < n; i++ {
		r := &node.Ref{}
		k.AddField(r, k.catalog.Entry(i).Name)
		k.slots[i] = r
	}
	k.createDefaultParts()
}

// createDefaultParts builds every part that is not null by default and
// flags it as default content.
func (k *BaseKit) createDefaultParts() {
	for i := 1; i < k.catalog.NumEntries(); i++ {
		e := k.catalog.Entry(i)
		if e.NullByDefault || k.slots[i].Value != nil {
			continue
		}
		if _, err := k.makePart(i); err != nil {
			panic(fmt.Sprintf("kit: default part %q: %v", e.Name, err))
		}
		k.slots[i].SetDefault(true)
	}
}

// Catalog returns the immutable part catalog of this kit's type.
func (k *BaseKit) Catalog() *Catalog { return k.catalog }

// ChildList returns the kit's child tree. The tree is managed by the
// part machinery; callers should use the part operations rather than
// editing it directly.
func (k *BaseKit) ChildList() *node.ChildList { return &k.children }

// PartAt returns the node in the slot with the given part number, or
// nil if the slot is empty or the number is out of range. Part number 0
// ("this") returns the kit itself.
func (k *BaseKit) PartAt(i int) node.Node {
	if i == 0 {
		return k.This
	}
	if i < 1 || i >= len(k.slots) {
		return nil
	}
	return k.slots[i].Value
}

// PartIsDefault returns whether the slot with the given part number
// still holds default content: never explicitly set from outside.
func (k *BaseKit) PartIsDefault(i int) bool {
	if i < 1 || i >= len(k.slots) {
		return true
	}
	return k.slots[i].IsDefault()
}

// Part returns the part with the given name or path, building it (and
// any missing slots on the way) if absent. Only public leaf parts can
// be retrieved; see [BaseKit.AnyPart] for the unchecked version.
func (k *BaseKit) Part(path string) (node.Node, error) {
	return k.AnyPart(path, true, true, true)
}

// AnyPart returns the part with the given name or path. If makeIfNeeded
// is true, missing slots on the way are built. If leafCheck is true,
// only leaf parts are allowed; if publicCheck is true, only public
// parts. The complete path "this" returns the kit itself.
//
// A path addressing a list slot with an index, such as "childList[2]",
// returns that item of the list.
func (k *BaseKit) AnyPart(path string, makeIfNeeded, leafCheck, publicCheck bool) (node.Node, error) {
	owner, partNum, listIdx, err := k.findPart(path, makeIfNeeded, leafCheck, publicCheck)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, nil
	}
	p := owner.PartAt(partNum)
	if listIdx < 0 {
		return p, nil
	}
	lp, ok := p.(*ListPart)
	if !ok {
		return nil, fmt.Errorf("kit: part %q is not a list", path)
	}
	return lp.Child(listIdx), nil
}

// SetPart installs the given node in the named part slot, or clears
// the slot if the node is nil. Only public leaf parts can be set; see
// [BaseKit.SetAnyPart] for the unchecked version.
func (k *BaseKit) SetPart(path string, n node.Node) error {
	return k.SetAnyPart(path, n, false)
}

// SetAnyPart installs the given node in the part slot at the given name
// or path, or clears the slot if the node is nil. If anyPart is true,
// private and non-leaf parts can also be set.
func (k *BaseKit) SetAnyPart(path string, n node.Node, anyPart bool) error {
	leafCheck := !anyPart
	publicCheck := !anyPart
	makeIfNeeded := n != nil
	owner, partNum, listIdx, err := k.findPart(path, makeIfNeeded, leafCheck, publicCheck)
	if err != nil {
		return err
	}
	if owner == nil {
		if n == nil {
			return nil
		}
		return fmt.Errorf("kit: no part %q", path)
	}
	if listIdx >= 0 {
		pn := owner.PartAt(partNum)
		if pn == nil && n == nil {
			return nil
		}
		p, ok := pn.(*ListPart)
		if !ok {
			return fmt.Errorf("kit: part %q is not a list", path)
		}
		return p.SetChild(listIdx, n)
	}
	if err := owner.setPartAt(partNum, n); err != nil {
		return err
	}
	if n != nil {
		owner.slots[partNum].SetDefault(false)
	}
	return nil
}

// Accept dispatches traversal actions over the kit. Generic actions
// visit the kit and forward into the child tree, honoring a restricted
// index path at this level. Searches enter the child tree only when
// asked to. Bounds traversals average the centers their children
// report. Writes run the two-stage part emission.
func (k *BaseKit) Accept(a node.Action) {
	switch a := a.(type) {
	case *node.SearchAction:
		k.Base.Accept(a)
		if a.Found() != nil || !a.SearchChildren {
			return
		}
	case *node.BoundsAction:
		k.acceptBounds(a)
		return
	case *node.WriteAction:
		k.acceptWrite(a)
		return
	default:
		k.Base.Accept(a)
		if ca, ok := a.(*node.CallbackAction); ok && ca.Stopped() {
			return
		}
	}
	if inds := a.TakeIndices(); inds != nil {
		k.children.TraverseInPath(a, inds)
	} else {
		k.children.Traverse(a)
	}
}

// acceptBounds forwards a bounds traversal into the children and
// replaces the reported center with the average of the centers the
// children set.
func (k *BaseKit) acceptBounds(a *node.BoundsAction) {
	inds := a.TakeIndices()
	var sum math32.Vector3
	nc := 0
	visit := func(c node.Node) {
		a.ResetCenter()
		c.Accept(a)
		if a.IsCenterSet() {
			sum = sum.Add(a.Center())
			nc++
		}
	}
	if inds != nil {
		for _, i := range inds {
			if c := k.children.Child(i); c != nil {
				visit(c)
			}
		}
	} else {
		for i, fn := 0, k.children.Len(); i < fn; i++ {
			visit(k.children.Child(i))
		}
	}
	a.ResetCenter()
	if nc > 0 {
		a.SetCenter(sum.DivScalar(float32(nc)))
	}
}

// CopyContentsFrom deep-copies the given kit into this one: fields,
// part slots, default flags, and the child tree, with the copied parts
// re-parented onto the copied tree. See copy.go.
func (k *BaseKit) CopyContentsFrom(from node.Node) {
	k.copyContentsFrom(from)
}
