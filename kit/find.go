// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/partkit/partkit/node"
)

// pathSeg is one '.'-separated segment of a part path: a name with an
// optional "[idx]" list index.
type pathSeg struct {
	name   string
	idx    int
	hasIdx bool
}

// parsePartPath splits a part path into its segments. The grammar is
// name or name[idx], joined with '.'.
func parsePartPath(path string) ([]pathSeg, error) {
	if path == "" {
		return nil, fmt.Errorf("kit: empty part path")
	}
	parts := strings.Split(path, ".")
	segs := make([]pathSeg, 0, len(parts))
	for _, p := range parts {
		seg := pathSeg{name: p, idx: -1}
		if ob := strings.IndexByte(p, '['); ob >= 0 {
			if !strings.HasSuffix(p, "]") {
				return nil, fmt.Errorf("kit: malformed list index in %q", p)
			}
			idx, err := strconv.Atoi(p[ob+1 : len(p)-1])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("kit: malformed list index in %q", p)
			}
			seg.name = p[:ob]
			seg.idx = idx
			seg.hasIdx = true
		}
		if seg.name == "" {
			return nil, fmt.Errorf("kit: empty part name in path %q", path)
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// findPart resolves a part path to the kit owning the final slot and
// its part number, plus the list index if the final segment addressed a
// list item (or -1). A nil owner with a nil error means the part does
// not exist and makeIfNeeded was off.
//
// The complete path "this" resolves to part number 0 of this kit. A
// first segment not found in this catalog falls back to a recursive
// search of the leaf parts that are themselves kits.
func (k *BaseKit) findPart(path string, makeIfNeeded, leafCheck, publicCheck bool) (*BaseKit, int, int, error) {
	if path == "this" {
		return k, 0, -1, nil
	}
	segs, err := parsePartPath(path)
	if err != nil {
		return nil, 0, -1, err
	}
	return k.findPartSegs(segs, makeIfNeeded, leafCheck, publicCheck)
}

func (k *BaseKit) findPartSegs(segs []pathSeg, makeIfNeeded, leafCheck, publicCheck bool) (*BaseKit, int, int, error) {
	seg := segs[0]
	if seg.name == "this" {
		return nil, 0, -1, fmt.Errorf("kit: \"this\" is only valid as a complete path")
	}
	pn := k.catalog.IndexOf(seg.name)
	if pn < 0 {
		return k.findInLeafKits(segs, makeIfNeeded, leafCheck, publicCheck)
	}
	e := k.catalog.Entry(pn)
	if publicCheck && !e.IsPublic {
		return nil, 0, -1, fmt.Errorf("kit: part %q is not public", seg.name)
	}
	if seg.hasIdx && !e.IsList {
		return nil, 0, -1, fmt.Errorf("kit: part %q is not a list", seg.name)
	}

	last := len(segs) == 1
	if last {
		if leafCheck && !e.Leaf {
			return nil, 0, -1, fmt.Errorf("kit: part %q is not a leaf", seg.name)
		}
		if !seg.hasIdx {
			if makeIfNeeded {
				if _, err := k.makePart(pn); err != nil {
					return nil, 0, -1, err
				}
			}
			return k, pn, -1, nil
		}
		lp, err := k.listForSeg(pn, seg, makeIfNeeded)
		if err != nil {
			return nil, 0, -1, err
		}
		if lp == nil {
			return nil, 0, -1, nil
		}
		return k, pn, seg.idx, nil
	}

	// intermediate segment: resolve to a nested kit and continue there
	var next node.Node
	if seg.hasIdx {
		lp, err := k.listForSeg(pn, seg, makeIfNeeded)
		if err != nil {
			return nil, 0, -1, err
		}
		if lp == nil {
			return nil, 0, -1, nil
		}
		next = lp.Child(seg.idx)
	} else if makeIfNeeded {
		n, err := k.makePart(pn)
		if err != nil {
			return nil, 0, -1, err
		}
		next = n
	} else {
		next = k.PartAt(pn)
	}
	if next == nil {
		return nil, 0, -1, nil
	}
	nk, ok := next.(Kit)
	if !ok {
		return nil, 0, -1, fmt.Errorf("kit: part %q is not a kit; cannot resolve %q under it",
			seg.name, segs[1].name)
	}
	return nk.AsBaseKit().findPartSegs(segs[1:], makeIfNeeded, leafCheck, publicCheck)
}

// listForSeg returns the list part for a list-indexed segment, building
// the list and, when the index is exactly one past the end, a default
// item. An index beyond that is an error; a missing list without
// makeIfNeeded returns nil with no error.
func (k *BaseKit) listForSeg(pn int, seg pathSeg, makeIfNeeded bool) (*ListPart, error) {
	var pnode node.Node
	if makeIfNeeded {
		n, err := k.makePart(pn)
		if err != nil {
			return nil, err
		}
		pnode = n
	} else {
		pnode = k.PartAt(pn)
	}
	if pnode == nil {
		return nil, nil
	}
	lp, ok := pnode.(*ListPart)
	if !ok {
		return nil, fmt.Errorf("kit: part %q is not a list", seg.name)
	}
	nc := lp.NumChildren()
	switch {
	case seg.idx < nc:
	case seg.idx == nc && makeIfNeeded && lp.CanCreateDefaultChild():
		if _, err := lp.CreateAndAddDefaultChild(); err != nil {
			return nil, err
		}
	case makeIfNeeded:
		return nil, fmt.Errorf("kit: list index %d in %q out of range [0, %d]",
			seg.idx, seg.name, nc)
	default:
		return nil, nil
	}
	return lp, nil
}

// findInLeafKits searches the leaf parts that are themselves kits for
// the given path, probing each in turn. A kit part built only for the
// probe is removed again if the path is not found under it.
func (k *BaseKit) findInLeafKits(segs []pathSeg, makeIfNeeded, leafCheck, publicCheck bool) (*BaseKit, int, int, error) {
	for i := 1; i < k.catalog.NumEntries(); i++ {
		e := k.catalog.Entry(i)
		if !e.Leaf || e.IsList || !e.Type.DerivedFrom(BaseKitType) {
			continue
		}
		if publicCheck && !e.IsPublic {
			continue
		}
		wasNil := k.slots[i].Value == nil
		if wasNil && !makeIfNeeded {
			continue
		}
		pn, err := k.makePart(i)
		if err != nil {
			continue
		}
		nk, ok := pn.(Kit)
		if !ok {
			continue
		}
		owner, partNum, listIdx, err := nk.AsBaseKit().findPartSegs(segs, makeIfNeeded, leafCheck, publicCheck)
		if owner != nil && err == nil {
			return owner, partNum, listIdx, nil
		}
		if wasNil {
			// undo the probe; best effort, the slot goes back to empty
			k.setPartAt(i, nil)
		}
	}
	return nil, 0, -1, nil
}

// PartString returns the part path addressing the given node within
// this kit, or the empty string if the node is not a part (or a list
// item) of this kit or a nested one. The kit itself maps to "this".
func (k *BaseKit) PartString(n node.Node) string {
	if n == nil {
		return ""
	}
	if n == k.This {
		return "this"
	}
	for i := 1; i < k.catalog.NumEntries(); i++ {
		p := k.slots[i].Value
		if p == nil {
			continue
		}
		name := k.catalog.Entry(i).Name
		if p == n {
			return name
		}
		if lp, ok := p.(*ListPart); ok {
			if s := listPartString(lp, name, n); s != "" {
				return s
			}
			continue
		}
		if nk, ok := p.(Kit); ok {
			if s := nk.AsBaseKit().PartString(n); s != "" && s != "this" {
				return name + "." + s
			}
		}
	}
	return ""
}

func listPartString(lp *ListPart, name string, n node.Node) string {
	for i, fn := 0, lp.NumChildren(); i < fn; i++ {
		c := lp.Child(i)
		if c == n {
			return fmt.Sprintf("%s[%d]", name, i)
		}
		if nk, ok := c.(Kit); ok {
			if s := nk.AsBaseKit().PartString(n); s != "" && s != "this" {
				return fmt.Sprintf("%s[%d].%s", name, i, s)
			}
		}
	}
	return ""
}

// Path is an ordered node chain from a kit down to one of its parts.
type Path []node.Node

// PathToPart returns the node chain from this kit down to the part at
// the given path, building missing parts on the way if makeIfNeeded is
// true. Only public parts are reachable; non-leaf parts are allowed.
func (k *BaseKit) PathToPart(path string, makeIfNeeded bool) (Path, error) {
	p, err := k.AnyPart(path, makeIfNeeded, false, true)
	if err != nil || p == nil {
		return nil, err
	}
	np := nodePath(k.This, p)
	if np == nil {
		return nil, fmt.Errorf("kit: part %q is not in the child tree", path)
	}
	return np, nil
}

// nodePath finds target under root by depth-first search over child
// lists and list containers, returning the chain including both ends.
func nodePath(root, target node.Node) Path {
	if root == target {
		return Path{root}
	}
	if lp, ok := root.(*ListPart); ok {
		if cn := lp.ContainerNode(false); cn != nil {
			if sub := nodePath(cn, target); sub != nil {
				return append(Path{root}, sub...)
			}
		}
		return nil
	}
	cl := root.ChildList()
	if cl == nil {
		return nil
	}
	for i, fn := 0, cl.Len(); i < fn; i++ {
		if sub := nodePath(cl.Child(i), target); sub != nil {
			return append(Path{root}, sub...)
		}
	}
	return nil
}

// Set applies one or more "partname { field value ... }" blocks to the
// named parts, building them as needed. Blocks are applied in order;
// an error aborts at the failing block, leaving earlier blocks applied.
func (k *BaseKit) Set(cmd string) error {
	in := node.NewInput(cmd)
	for {
		in.SkipSpace()
		if in.AtEnd() {
			return nil
		}
		name := in.ReadName()
		if name == "" {
			return in.Errorf("expected part name")
		}
		if !in.Expect('{') {
			return in.Errorf("expected '{' after part name %q", name)
		}
		p, err := k.AnyPart(name, true, false, true)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("kit: no part %q", name)
		}
		if err := p.FieldData().ReadBlock(in); err != nil {
			return err
		}
	}
}

// SetValue applies "field value ..." text to the named part, building
// it as needed.
func (k *BaseKit) SetValue(partName, fieldValues string) error {
	p, err := k.AnyPart(partName, true, false, true)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("kit: no part %q", partName)
	}
	return p.FieldData().ReadValues(node.NewInput(fieldValues))
}
