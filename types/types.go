// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types provides a runtime type registry with explicit nominal
// supertype chains, used to drive part catalogs, default-type
// instantiation, and assignability checks.
package types

import (
	"log/slog"
	"reflect"
	"strings"
	"sync/atomic"
)

// Type represents a registered type.
type Type struct {

	// Name is the fully package-path-qualified name of the type
	// (eg: github.com/partkit/partkit/node.Group).
	Name string

	// IDName is the short, package-unqualified, kebab-case name of the
	// type that is suitable for use in an ID (eg: group).
	IDName string

	// Doc has the type's documentation as one string.
	Doc string

	// Parent is the nominal supertype of this type, or nil for
	// hierarchy roots. Catalog inheritance and [Type.DerivedFrom]
	// follow this chain.
	Parent *Type

	// Instance is an optional prototype instance of the type, used by
	// [Type.NewInstance]. Abstract types leave it nil.
	Instance any

	// ID is the unique type ID number.
	ID uint64
}

var (
	// Types records all registered types, keyed by long type name.
	Types = map[string]*Type{}

	// typeIDCounter is an atomically incremented uint64 used for
	// assigning new [Type.ID] numbers.
	typeIDCounter uint64
)

// AddType adds a constructed [Type] to the registry and returns it.
// This sets the ID. If a type with the same name is already registered,
// that type is returned instead.
func AddType(typ *Type) *Type {
	if et, has := Types[typ.Name]; has {
		slog.Debug("types.AddType: Type already exists", "Type.Name", typ.Name)
		return et
	}
	typ.ID = atomic.AddUint64(&typeIDCounter, 1)
	Types[typ.Name] = typ
	return typ
}

// TypeByName returns a [Type] by name
// (eg: github.com/partkit/partkit/node.Group), or nil if not found.
func TypeByName(name string) *Type {
	return Types[name]
}

// TypeByValue returns the [Type] of the given value, or nil if it is
// not registered.
func TypeByValue(v any) *Type {
	return TypeByName(TypeNameValue(v))
}

// TypeName returns the long, full package-path-qualified name of the
// given [reflect.Type], removing any pointer indirection.
func TypeName(typ reflect.Type) string {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ.PkgPath() + "." + typ.Name()
}

// TypeNameValue returns the long, full package-path-qualified name of
// the type of the given value.
func TypeNameValue(v any) string {
	return TypeName(reflect.TypeOf(v))
}

func (tp *Type) String() string {
	return tp.Name
}

// ShortName returns the short name of the type (package.Type).
func (tp *Type) ShortName() string {
	li := strings.LastIndex(tp.Name, "/")
	return tp.Name[li+1:]
}

// ReflectType returns the [reflect.Type] for this type, using the
// Instance. It returns nil for abstract types with no Instance.
func (tp *Type) ReflectType() reflect.Type {
	if tp.Instance == nil {
		return nil
	}
	return reflect.TypeOf(tp.Instance).Elem()
}

// NewInstance returns a new instance of this type, or nil if the type
// is abstract (has no prototype Instance).
func (tp *Type) NewInstance() any {
	rt := tp.ReflectType()
	if rt == nil {
		return nil
	}
	return reflect.New(rt).Interface()
}

// DerivedFrom returns whether this type is the given type or has it
// anywhere in its [Type.Parent] chain.
func (tp *Type) DerivedFrom(sup *Type) bool {
	if sup == nil {
		return false
	}
	for t := tp; t != nil; t = t.Parent {
		if t == sup {
			return true
		}
	}
	return false
}
