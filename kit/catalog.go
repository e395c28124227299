// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kit

import (
	"fmt"

	"github.com/partkit/partkit/node"
	"github.com/partkit/partkit/types"
)

// Entry describes one named part slot in a kit type's [Catalog].
// Entries are immutable once the catalog is registered.
type Entry struct {

	// Name is the part name, unique within the catalog. Entry 0 is
	// always named "this" and stands for the kit itself.
	Name string

	// Type is the required runtime type of the part: any node placed in
	// the slot must be of this type or derived from it.
	Type *types.Type

	// DefaultType is the concrete type instantiated when the part is
	// built on demand. It must derive from Type and be instantiable.
	DefaultType *types.Type

	// Parent is the index of the entry that holds this part as a child,
	// or -1 for the "this" entry.
	Parent int

	// RightSibling is the index of the entry that must come immediately
	// after this part under the shared parent, or -1 if this part goes
	// last.
	RightSibling int

	// IsList marks this part as a list slot: the part node is a
	// [ListPart] container holding a sequence of items.
	IsList bool

	// ListContainerType is the node type holding the items of a list
	// part, typically [node.GroupType] or [node.SeparatorType].
	ListContainerType *types.Type

	// ListItemTypes are the types permitted as items of a list part.
	// A candidate item must derive from at least one of them.
	ListItemTypes []*types.Type

	// IsPublic marks the part as reachable by outside callers; private
	// parts can only be addressed from within the kit's own methods.
	IsPublic bool

	// NullByDefault leaves the slot empty at construction; parts with
	// it false are built eagerly when the kit is created.
	NullByDefault bool

	// Leaf records whether no other entry names this one as parent.
	// Only leaf parts can be set and retrieved directly.
	Leaf bool
}

// Catalog is the immutable part layout shared by every instance of one
// kit type: an ordered table of [Entry] slots with by-name lookup.
// Entry order follows registration order, with parents registered
// before children.
type Catalog struct {
	entries []*Entry
	index   map[string]int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{index: map[string]int{}}
}

// Clone returns a deep copy of this catalog, for a subtype to extend
// without changing its supertype's layout.
func (c *Catalog) Clone() *Catalog {
	nc := NewCatalog()
	nc.entries = make([]*Entry, len(c.entries))
	for i, e := range c.entries {
		ec := *e
		ec.ListItemTypes = append([]*types.Type(nil), e.ListItemTypes...)
		nc.entries[i] = &ec
	}
	for name, i := range c.index {
		nc.index[name] = i
	}
	return nc
}

// NumEntries returns the number of entries, including "this".
func (c *Catalog) NumEntries() int { return len(c.entries) }

// Entry returns the entry at the given part number, or nil if out of
// range.
func (c *Catalog) Entry(i int) *Entry {
	if i < 0 || i >= len(c.entries) {
		return nil
	}
	return c.entries[i]
}

// IndexOf returns the part number of the entry with the given name, or
// -1 if there is none.
func (c *Catalog) IndexOf(name string) int {
	i, ok := c.index[name]
	if !ok {
		return -1
	}
	return i
}

// EntryByName returns the entry with the given name, or nil.
func (c *Catalog) EntryByName(name string) *Entry {
	return c.Entry(c.IndexOf(name))
}

// AddEntry validates and appends a part slot. The given entry uses
// names to identify the parent and right sibling; they are resolved to
// part numbers here. The first entry added must be named "this" with no
// parent; every later entry must name an already-registered parent, and
// a right sibling (if any) registered under the same parent.
func (c *Catalog) AddEntry(e Entry, parentName, rightSiblingName string) error {
	if _, has := c.index[e.Name]; has {
		return fmt.Errorf("catalog: duplicate part name %q", e.Name)
	}
	if e.Type == nil {
		return fmt.Errorf("catalog: part %q has no type", e.Name)
	}
	if e.DefaultType == nil {
		e.DefaultType = e.Type
	}
	if !e.DefaultType.DerivedFrom(e.Type) {
		return fmt.Errorf("catalog: part %q default type %s does not derive from %s",
			e.Name, e.DefaultType.Name, e.Type.Name)
	}
	if e.DefaultType.Instance == nil {
		return fmt.Errorf("catalog: part %q default type %s is abstract",
			e.Name, e.DefaultType.Name)
	}
	if e.IsList {
		if e.ListContainerType == nil {
			e.ListContainerType = node.GroupType
		}
		if len(e.ListItemTypes) == 0 {
			return fmt.Errorf("catalog: list part %q has no item types", e.Name)
		}
	}
	e.Parent = -1
	e.RightSibling = -1
	e.Leaf = true
	if len(c.entries) == 0 {
		if e.Name != "this" || parentName != "" {
			return fmt.Errorf("catalog: first entry must be \"this\" with no parent, got %q", e.Name)
		}
	} else {
		if e.Name == "this" {
			return fmt.Errorf("catalog: \"this\" must be the first entry")
		}
		pi := c.IndexOf(parentName)
		if pi < 0 {
			return fmt.Errorf("catalog: part %q names unknown parent %q", e.Name, parentName)
		}
		e.Parent = pi
		c.entries[pi].Leaf = false
		if rightSiblingName != "" {
			si := c.IndexOf(rightSiblingName)
			if si < 0 {
				return fmt.Errorf("catalog: part %q names unknown right sibling %q", e.Name, rightSiblingName)
			}
			if c.entries[si].Parent != pi {
				return fmt.Errorf("catalog: part %q right sibling %q has a different parent", e.Name, rightSiblingName)
			}
			e.RightSibling = si
		}
	}
	c.index[e.Name] = len(c.entries)
	c.entries = append(c.entries, &e)
	return nil
}

// NarrowTypes restricts an inherited entry to a more derived required
// type and default type, for a subtype that needs a more specific part.
func (c *Catalog) NarrowTypes(name string, typ, defaultType *types.Type) error {
	e := c.EntryByName(name)
	if e == nil {
		return fmt.Errorf("catalog: no part named %q", name)
	}
	if !typ.DerivedFrom(e.Type) {
		return fmt.Errorf("catalog: part %q cannot widen type %s to %s",
			name, e.Type.Name, typ.Name)
	}
	if defaultType == nil {
		defaultType = typ
	}
	if !defaultType.DerivedFrom(typ) {
		return fmt.Errorf("catalog: part %q default type %s does not derive from %s",
			name, defaultType.Name, typ.Name)
	}
	if defaultType.Instance == nil {
		return fmt.Errorf("catalog: part %q default type %s is abstract",
			name, defaultType.Name)
	}
	e.Type = typ
	e.DefaultType = defaultType
	return nil
}

// AddListItemType adds a permitted item type to an inherited list
// entry.
func (c *Catalog) AddListItemType(name string, typ *types.Type) error {
	e := c.EntryByName(name)
	if e == nil {
		return fmt.Errorf("catalog: no part named %q", name)
	}
	if !e.IsList {
		return fmt.Errorf("catalog: part %q is not a list", name)
	}
	e.ListItemTypes = append(e.ListItemTypes, typ)
	return nil
}

// catalogs records the registered catalog of each kit type.
var catalogs = map[*types.Type]*Catalog{}

// AddCatalog registers the part catalog of the given kit type. The
// build function starts from a copy of the nearest supertype catalog
// (or an empty one for the root kit type) and extends it. Registration
// happens once per type, at package initialization; errors there are
// programmer errors and panic.
func AddCatalog(t *types.Type, build func(c *Catalog) error) *types.Type {
	base := CatalogFor(t.Parent)
	var c *Catalog
	if base != nil {
		c = base.Clone()
	} else {
		c = NewCatalog()
	}
	if err := build(c); err != nil {
		panic(fmt.Sprintf("kit: catalog for %s: %v", t.Name, err))
	}
	catalogs[t] = c
	return t
}

// CatalogFor returns the catalog of the given kit type, falling back
// through the supertype chain, or nil if no type in the chain has one.
func CatalogFor(t *types.Type) *Catalog {
	for ; t != nil; t = t.Parent {
		if c, has := catalogs[t]; has {
			return c
		}
	}
	return nil
}
