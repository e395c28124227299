// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kit

import (
	"github.com/jinzhu/copier"

	"github.com/partkit/partkit/base/errors"
	"github.com/partkit/partkit/node"
)

// copyContentsFrom deep-copies a kit of the same type into this one.
// Parts are copied in two passes: parts living directly under the kit
// are cloned with their whole subtrees, and parts living under an
// interior part are then located inside the already-cloned parent
// subtree by their child position, so a part and its copy hold the
// same node the parent's copy already carries. Slot default flags are
// restored from the source afterwards, so copying never promotes
// default content to explicit.
func (k *BaseKit) copyContentsFrom(from node.Node) {
	fk, ok := from.(Kit)
	if !ok {
		return
	}
	fb := fk.AsBaseKit()

	err := copier.CopyWithOption(k.This, fb.This,
		copier.Option{CaseSensitive: true, DeepCopy: true})
	if err != nil {
		errors.Log(err)
	}

	// regular fields copy by name; slot fields are handled below
	ffd := fb.FieldData()
	fd := k.FieldData()
	for i, fn := 0, ffd.NumFields(); i < fn; i++ {
		ff := ffd.Field(i)
		if fb.slotIndex(ff) >= 0 {
			continue
		}
		if mf := fd.FieldByName(ff.Name()); mf != nil {
			mf.CopyFrom(ff)
		}
	}

	n := k.catalog.NumEntries()
	partlist := make([]node.Node, n)
	flaglist := make([]bool, n)
	for i := 1; i < n; i++ {
		flaglist[i] = fb.slots[i].IsDefault()
	}

	// pass A: clone the parts parented by the kit itself, subtrees
	// included
	for i := 1; i < n; i++ {
		sp := fb.slots[i].Value
		if sp == nil || k.catalog.Entry(i).Parent != 0 {
			continue
		}
		partlist[i] = sp.AsNode().Clone()
	}

	// pass B: parts under an interior part already exist inside the
	// parent's clone; find each by its position in the source parent
	for i := 1; i < n; i++ {
		e := k.catalog.Entry(i)
		if e.Parent == 0 {
			continue
		}
		sp := fb.slots[i].Value
		if sp == nil {
			continue
		}
		sparent := fb.slots[e.Parent].Value
		cparent := partlist[e.Parent]
		if sparent == nil || cparent == nil {
			continue
		}
		scl := sparent.ChildList()
		ccl := cparent.ChildList()
		if scl == nil || ccl == nil {
			continue
		}
		if idx := scl.Find(sp); idx >= 0 {
			partlist[i] = ccl.Child(idx)
		}
	}

	k.children.Clear()
	for i := 1; i < n; i++ {
		k.slots[i].Value = nil
		k.slots[i].SetDefault(true)
	}
	for i := 1; i < n; i++ {
		if partlist[i] == nil {
			continue
		}
		if err := k.installPart(i, partlist[i], true); err != nil {
			errors.Log(err)
			continue
		}
		k.slots[i].SetDefault(flaglist[i])
	}
}
