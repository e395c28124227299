// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package node

import "github.com/partkit/partkit/types"

// Callback is a leaf node that runs a user function for every action
// that reaches it, so behavior can be hung on a graph without defining
// a new node type. Write traversals bypass Func and emit an empty
// block.
type Callback struct {
	Base

	// Func is called with each non-write action that reaches this node.
	Func func(a Action) `copier:"-"`
}

// CallbackType is the registered type of [Callback].
var CallbackType = types.AddType(&types.Type{
	Name:     "github.com/partkit/partkit/node.Callback",
	IDName:   "callback",
	Parent:   BaseType,
	Instance: &Callback{},
})

func (c *Callback) Accept(a Action) {
	if wa, ok := a.(*WriteAction); ok {
		c.acceptWrite(wa)
		return
	}
	c.Base.Accept(a)
	if c.Func != nil {
		c.Func(a)
	}
}

func (c *Callback) CopyContentsFrom(from Node) {
	c.Base.CopyContentsFrom(from)
	if fc, ok := from.(*Callback); ok {
		c.Func = fc.Func
	}
}
