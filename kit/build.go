// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kit

import (
	"fmt"

	"github.com/partkit/partkit/node"
)

// makePart builds the part with the given number from its default type
// and installs it, recursively building any missing ancestor parts.
// It returns the existing node unchanged if the slot is already filled.
func (k *BaseKit) makePart(partNum int) (node.Node, error) {
	e := k.catalog.Entry(partNum)
	if e == nil || partNum == 0 {
		return nil, fmt.Errorf("kit: invalid part number %d", partNum)
	}
	if p := k.slots[partNum].Value; p != nil {
		return p, nil
	}
	var n node.Node
	if e.IsList {
		lp := node.New[*ListPart]()
		if e.ListContainerType != nil {
			if err := lp.SetContainerType(e.ListContainerType); err != nil {
				return nil, err
			}
		}
		for _, it := range e.ListItemTypes {
			if err := lp.AddChildType(it); err != nil {
				return nil, err
			}
		}
		lp.lockTypes()
		n = lp
	} else {
		n = node.NewOfType(e.DefaultType)
		if n == nil {
			return nil, fmt.Errorf("kit: part %q default type %s cannot be instantiated",
				e.Name, e.DefaultType.Name)
		}
	}
	if err := k.setPartAt(partNum, n); err != nil {
		return nil, err
	}
	return n, nil
}

// setPartAt installs the given node in the slot with the given part
// number, or removes the current part if the node is nil. A node that
// already sits elsewhere in the parent's child list is rejected, so one
// node cannot serve two catalog roles.
func (k *BaseKit) setPartAt(partNum int, from node.Node) error {
	return k.installPart(partNum, from, false)
}

// installPart does the work of [BaseKit.setPartAt]: type checking,
// splicing into the child tree at the position the catalog demands, and
// slot assignment. The slot's default flag is not touched; callers
// decide whether the change counts as explicit. The copy machinery sets
// allowAliased, since its pass-B nodes already sit inside the cloned
// parent and must become slot-only installs.
func (k *BaseKit) installPart(partNum int, from node.Node, allowAliased bool) error {
	e := k.catalog.Entry(partNum)
	if e == nil || partNum == 0 {
		return fmt.Errorf("kit: invalid part number %d", partNum)
	}
	if from != nil {
		if e.IsList {
			if _, ok := from.(*ListPart); !ok {
				return fmt.Errorf("kit: part %q requires a list part, got %s",
					e.Name, from.NodeType().Name)
			}
		} else if !from.NodeType().DerivedFrom(e.Type) {
			return fmt.Errorf("kit: part %q requires type %s, got %s",
				e.Name, e.Type.Name, from.NodeType().Name)
		}
	}
	slot := k.slots[partNum]
	old := slot.Value
	if old == from {
		return nil
	}

	// locate or build the child list the part lives in
	var parentList *node.ChildList
	if e.Parent == 0 {
		parentList = &k.children
	} else {
		pn := k.slots[e.Parent].Value
		if pn == nil {
			if from == nil {
				slot.Value = nil
				slot.SetDefault(true)
				return nil
			}
			built, err := k.makePart(e.Parent)
			if err != nil {
				return err
			}
			pn = built
		}
		parentList = pn.ChildList()
		if parentList == nil {
			return fmt.Errorf("kit: part %q parent %q cannot hold children",
				e.Name, k.catalog.Entry(e.Parent).Name)
		}
	}

	if from != nil && !allowAliased && parentList.Find(from) >= 0 {
		return fmt.Errorf("kit: node already serves under the parent of part %q", e.Name)
	}

	if old != nil {
		idx := parentList.Find(old)
		switch {
		case idx >= 0 && from != nil:
			parentList.Replace(idx, from)
		case idx >= 0:
			parentList.RemoveAt(idx)
		case from != nil && parentList.Find(from) < 0:
			parentList.Insert(k.partInsertIndex(partNum, parentList), from)
		}
	} else if from != nil && parentList.Find(from) < 0 {
		parentList.Insert(k.partInsertIndex(partNum, parentList), from)
	}
	slot.Value = from
	if from == nil {
		slot.SetDefault(true)
	}
	return nil
}

// partInsertIndex returns the child index a new part must be spliced in
// at: immediately before the nearest right sibling that already exists
// in the parent list, or at the end if none does.
func (k *BaseKit) partInsertIndex(partNum int, parentList *node.ChildList) int {
	e := k.catalog.Entry(partNum)
	for sib := e.RightSibling; sib >= 0; sib = k.catalog.Entry(sib).RightSibling {
		sn := k.slots[sib].Value
		if sn == nil {
			continue
		}
		if idx := parentList.Find(sn); idx >= 0 {
			return idx
		}
	}
	return parentList.Len()
}
