// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kit

import "github.com/partkit/partkit/node"

// acceptWrite runs the two-stage part emission. The counting stage
// assembles the per-write field view once per kit, deciding for every
// part whether it writes; the write stage emits that view and discards
// it. Parts are emitted as fields, so a part node reached both through
// an interior part's children and through its own slot is shared with a
// DEF/USE reference.
func (k *BaseKit) acceptWrite(a *node.WriteAction) {
	out := a.Out
	if out.Stage() == node.CountRefs {
		if out.AddRef(k.This) > 1 {
			return
		}
		k.writeData = k.createWriteData()
		for i, fn := 0, k.writeData.NumFields(); i < fn; i++ {
			f := k.writeData.Field(i)
			if f.IsDefault() {
				continue
			}
			if rf, ok := f.(*node.Ref); ok && rf.Value != nil {
				rf.Value.Accept(a)
			}
		}
		return
	}
	if !out.BeginNode(k.This) {
		return
	}
	wd := k.writeData
	if wd == nil {
		// written without a counting pass over this kit
		wd = k.createWriteData()
	}
	for i, fn := 0, wd.NumFields(); i < fn; i++ {
		f := wd.Field(i)
		if !f.IsDefault() {
			f.Write(out)
		}
	}
	out.CloseNode()
	k.writeData = nil
}

// createWriteData assembles the ordered field view of one write:
// the regular fields first, then the public leaf parts, then the
// public interior parts. Private parts never appear. Part fields are
// fresh copies so the emission decisions do not touch the kit's own
// default flags.
func (k *BaseKit) createWriteData() *node.FieldData {
	written := k.partWriteDecisions()
	wd := &node.FieldData{}
	fd := k.FieldData()
	for i, fn := 0, fd.NumFields(); i < fn; i++ {
		f := fd.Field(i)
		if k.slotIndex(f) < 0 {
			wd.Append(f)
		}
	}
	k.appendPartFields(wd, written, true)
	k.appendPartFields(wd, written, false)
	return wd
}

// appendPartFields adds copies of the public part fields that are
// leaves (or interiors, per wantLeaf) to the write view, flagged
// default when the part was decided out of the write.
func (k *BaseKit) appendPartFields(wd *node.FieldData, written []bool, wantLeaf bool) {
	for i := 1; i < k.catalog.NumEntries(); i++ {
		e := k.catalog.Entry(i)
		if !e.IsPublic || e.Leaf != wantLeaf {
			continue
		}
		f := &node.Ref{Value: k.slots[i].Value}
		wd.AddField(f, e.Name)
		f.SetDefault(!written[i])
	}
}

// partWriteDecisions evaluates, for every part slot, whether the part
// is emitted. A part writes when its slot was explicitly set, when its
// node carries content of its own, when an empty slot contradicts a
// null-by-default catalog entry, or when the part it lives under is
// itself written. Entry order puts parents first, so one ascending pass
// settles the parent-driven case.
func (k *BaseKit) partWriteDecisions() []bool {
	n := k.catalog.NumEntries()
	written := make([]bool, n)
	for i := 1; i < n; i++ {
		e := k.catalog.Entry(i)
		if !e.IsPublic {
			continue
		}
		written[i] = k.partShouldWrite(i)
		if !written[i] && e.Parent > 0 && written[e.Parent] && k.slots[i].Value != nil {
			written[i] = true
		}
	}
	return written
}

// partShouldWrite is the structural decision for one slot, ignoring
// the parent-driven case.
func (k *BaseKit) partShouldWrite(i int) bool {
	e := k.catalog.Entry(i)
	slot := k.slots[i]
	if slot.Value == nil {
		return !e.NullByDefault
	}
	if !slot.IsDefault() {
		return true
	}
	if lp, ok := slot.Value.(*ListPart); ok {
		return lp.NumChildren() > 0
	}
	if nk, ok := slot.Value.(Kit); ok {
		return nk.AsBaseKit().hasWriteContent()
	}
	return node.ShouldWrite(slot.Value)
}

// hasWriteContent returns whether this kit would emit anything of its
// own: a non-default regular field, or any part decided into the write.
// Part decisions for a nested kit consult this instead of a plain
// content check, so a part removal deep inside default-flagged kits
// still forces every kit above it to write.
func (k *BaseKit) hasWriteContent() bool {
	fd := k.FieldData()
	for i, fn := 0, fd.NumFields(); i < fn; i++ {
		f := fd.Field(i)
		if k.slotIndex(f) < 0 && !f.IsDefault() {
			return true
		}
	}
	for _, w := range k.partWriteDecisions() {
		if w {
			return true
		}
	}
	return false
}

// slotIndex returns the part number whose slot field is the given
// field, or -1 if it is a regular field.
func (k *BaseKit) slotIndex(f node.Field) int {
	for i := 1; i < len(k.slots); i++ {
		if node.Field(k.slots[i]) == f {
			return i
		}
	}
	return -1
}
