// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import (
	"strconv"

	"github.com/partkit/partkit/math32"
)

// Field is a named, typed value slot on a node, carrying a default flag
// that tracks whether the value has been changed from its initial
// state. Fields are registered on a node in [Node.Init] through
// [Base.AddField], which sets the name.
type Field interface {

	// Name returns the registered name of this field.
	Name() string

	// IsDefault returns whether this field still holds its default
	// value. Fields start as default; any Set or Read clears the flag.
	IsDefault() bool

	// SetDefault sets the default flag directly, without changing the
	// value.
	SetDefault(def bool)

	// Read parses a value for this field from the given input.
	Read(in *Input) error

	// Write emits this field as "name value" to the given output.
	Write(out *Output)

	// Same returns whether the other field holds an equal value.
	// Fields of different concrete types are never the same.
	Same(other Field) bool

	// CopyFrom copies the value and default flag from the other field,
	// which must be of the same concrete type.
	CopyFrom(other Field)

	setName(name string)
}

// FieldBase provides the name and default flag handling shared by all
// field types.
type FieldBase struct {
	name    string
	changed bool
}

func (f *FieldBase) Name() string        { return f.name }
func (f *FieldBase) IsDefault() bool     { return !f.changed }
func (f *FieldBase) SetDefault(def bool) { f.changed = !def }
func (f *FieldBase) setName(name string) { f.name = name }

// FieldData is the ordered field table of a node. Field order is the
// registration order, which determines read and write order.
type FieldData struct {
	fields []Field
}

// AddField appends the given field under the given name.
func (fd *FieldData) AddField(f Field, name string) {
	f.setName(name)
	fd.fields = append(fd.fields, f)
}

// Append appends an already-named field, sharing it with its original
// table. This is used when assembling the per-write field view of a
// kit.
func (fd *FieldData) Append(f Field) {
	fd.fields = append(fd.fields, f)
}

// NumFields returns the number of registered fields.
func (fd *FieldData) NumFields() int { return len(fd.fields) }

// Field returns the field at the given index, or nil if out of range.
func (fd *FieldData) Field(i int) Field {
	if i < 0 || i >= len(fd.fields) {
		return nil
	}
	return fd.fields[i]
}

// FieldByName returns the field with the given name, or nil if there is
// none.
func (fd *FieldData) FieldByName(name string) Field {
	for _, f := range fd.fields {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// Index returns the index of the given field (by identity), or -1.
func (fd *FieldData) Index(f Field) int {
	for i, ef := range fd.fields {
		if ef == f {
			return i
		}
	}
	return -1
}

// ReadBlock reads "name value" pairs from the input until a closing
// brace, which it consumes. Unknown field names are an error.
func (fd *FieldData) ReadBlock(in *Input) error {
	if err := fd.ReadValues(in); err != nil {
		return err
	}
	if !in.Expect('}') {
		return in.Errorf("unexpected end of input in field block")
	}
	return nil
}

// ReadValues reads "name value" pairs from the input until a closing
// brace (not consumed) or the end of the input. Unknown field names are
// an error.
func (fd *FieldData) ReadValues(in *Input) error {
	for {
		in.SkipSpace()
		if in.AtEnd() || in.Peek() == '}' {
			return nil
		}
		name := in.ReadName()
		if name == "" {
			return in.Errorf("expected field name")
		}
		f := fd.FieldByName(name)
		if f == nil {
			return in.Errorf("no field named %q", name)
		}
		if err := f.Read(in); err != nil {
			return err
		}
	}
}

// Same returns whether the other table has the same number of fields
// and every field holds an equal value.
func (fd *FieldData) Same(other *FieldData) bool {
	if len(fd.fields) != len(other.fields) {
		return false
	}
	for i, f := range fd.fields {
		if !f.Same(other.fields[i]) {
			return false
		}
	}
	return true
}

// CopyFrom copies values and default flags from the corresponding
// fields of the other table. The tables must have the same shape, which
// holds for two nodes of the same type.
func (fd *FieldData) CopyFrom(other *FieldData) {
	n := min(len(fd.fields), len(other.fields))
	for i := 0; i < n; i++ {
		fd.fields[i].CopyFrom(other.fields[i])
	}
}

// Float is a float32-valued field.
type Float struct {
	FieldBase
	Value float32
}

// Set sets the value and marks the field non-default.
func (f *Float) Set(v float32) {
	f.Value = v
	f.SetDefault(false)
}

func (f *Float) Read(in *Input) error {
	v, err := in.ReadFloat32()
	if err != nil {
		return err
	}
	f.Set(v)
	return nil
}

func (f *Float) Write(out *Output) {
	out.WriteFieldValue(f.name, strconv.FormatFloat(float64(f.Value), 'g', -1, 32))
}

func (f *Float) Same(other Field) bool {
	o, ok := other.(*Float)
	return ok && o.Value == f.Value
}

func (f *Float) CopyFrom(other Field) {
	if o, ok := other.(*Float); ok {
		f.Value = o.Value
		f.SetDefault(o.IsDefault())
	}
}

// Int is an int-valued field.
type Int struct {
	FieldBase
	Value int
}

func (f *Int) Set(v int) {
	f.Value = v
	f.SetDefault(false)
}

func (f *Int) Read(in *Input) error {
	v, err := in.ReadInt()
	if err != nil {
		return err
	}
	f.Set(v)
	return nil
}

func (f *Int) Write(out *Output) {
	out.WriteFieldValue(f.name, strconv.Itoa(f.Value))
}

func (f *Int) Same(other Field) bool {
	o, ok := other.(*Int)
	return ok && o.Value == f.Value
}

func (f *Int) CopyFrom(other Field) {
	if o, ok := other.(*Int); ok {
		f.Value = o.Value
		f.SetDefault(o.IsDefault())
	}
}

// Bool is a bool-valued field, written as TRUE or FALSE.
type Bool struct {
	FieldBase
	Value bool
}

func (f *Bool) Set(v bool) {
	f.Value = v
	f.SetDefault(false)
}

func (f *Bool) Read(in *Input) error {
	v, err := in.ReadBool()
	if err != nil {
		return err
	}
	f.Set(v)
	return nil
}

func (f *Bool) Write(out *Output) {
	v := "FALSE"
	if f.Value {
		v = "TRUE"
	}
	out.WriteFieldValue(f.name, v)
}

func (f *Bool) Same(other Field) bool {
	o, ok := other.(*Bool)
	return ok && o.Value == f.Value
}

func (f *Bool) CopyFrom(other Field) {
	if o, ok := other.(*Bool); ok {
		f.Value = o.Value
		f.SetDefault(o.IsDefault())
	}
}

// String is a string-valued field, written in double quotes.
type String struct {
	FieldBase
	Value string
}

func (f *String) Set(v string) {
	f.Value = v
	f.SetDefault(false)
}

func (f *String) Read(in *Input) error {
	v, err := in.ReadString()
	if err != nil {
		return err
	}
	f.Set(v)
	return nil
}

func (f *String) Write(out *Output) {
	out.WriteFieldValue(f.name, strconv.Quote(f.Value))
}

func (f *String) Same(other Field) bool {
	o, ok := other.(*String)
	return ok && o.Value == f.Value
}

func (f *String) CopyFrom(other Field) {
	if o, ok := other.(*String); ok {
		f.Value = o.Value
		f.SetDefault(o.IsDefault())
	}
}

// Vec3 is a [math32.Vector3]-valued field, written as three numbers.
type Vec3 struct {
	FieldBase
	Value math32.Vector3
}

func (f *Vec3) Set(v math32.Vector3) {
	f.Value = v
	f.SetDefault(false)
}

func (f *Vec3) Read(in *Input) error {
	var v math32.Vector3
	for _, p := range []*float32{&v.X, &v.Y, &v.Z} {
		c, err := in.ReadFloat32()
		if err != nil {
			return err
		}
		*p = c
	}
	f.Set(v)
	return nil
}

func (f *Vec3) Write(out *Output) {
	fc := func(v float32) string {
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	out.WriteFieldValue(f.name, fc(f.Value.X)+" "+fc(f.Value.Y)+" "+fc(f.Value.Z))
}

func (f *Vec3) Same(other Field) bool {
	o, ok := other.(*Vec3)
	return ok && o.Value == f.Value
}

func (f *Vec3) CopyFrom(other Field) {
	if o, ok := other.(*Vec3); ok {
		f.Value = o.Value
		f.SetDefault(o.IsDefault())
	}
}

// Ref is a node-valued field. A nil value writes as NULL; a non-nil
// value writes as a nested node block.
type Ref struct {
	FieldBase
	Value Node
}

func (f *Ref) Set(n Node) {
	f.Value = n
	f.SetDefault(false)
}

// Read returns an error: node-valued fields cannot be parsed from
// field-value text.
func (f *Ref) Read(in *Input) error {
	return in.Errorf("field %q holds a node and cannot be set from a value", f.name)
}

func (f *Ref) Write(out *Output) {
	if f.Value == nil {
		out.WriteFieldValue(f.name, "NULL")
		return
	}
	out.Printf("%s ", f.name)
	f.Value.Accept(&WriteAction{Out: out})
}

// Same compares node identity, not contents.
func (f *Ref) Same(other Field) bool {
	o, ok := other.(*Ref)
	return ok && o.Value == f.Value
}

func (f *Ref) CopyFrom(other Field) {
	if o, ok := other.(*Ref); ok {
		f.Value = o.Value
		f.SetDefault(o.IsDefault())
	}
}
