// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testdata provides node and kit types for testing.
package testdata

import (
	"github.com/partkit/partkit/kit"
	"github.com/partkit/partkit/math32"
	"github.com/partkit/partkit/node"
	"github.com/partkit/partkit/types"
)

// ShapeType is the abstract base type of the test shape nodes.
var ShapeType = types.AddType(&types.Type{
	Name:   "github.com/partkit/partkit/kit/testdata.Shape",
	IDName: "shape",
	Parent: node.BaseType,
})

// Marker is a point shape with a radius, reporting its center to
// bounds traversals.
type Marker struct {
	node.Base

	Radius node.Float
	Center node.Vec3
}

var MarkerType = types.AddType(&types.Type{
	Name:     "github.com/partkit/partkit/kit/testdata.Marker",
	IDName:   "marker",
	Parent:   ShapeType,
	Instance: &Marker{},
})

func (m *Marker) Init() {
	m.Radius.Value = 1
	m.AddField(&m.Radius, "radius")
	m.AddField(&m.Center, "center")
}

func (m *Marker) Accept(a node.Action) {
	if ba, ok := a.(*node.BoundsAction); ok {
		c := m.Center.Value
		r := m.Radius.Value
		ba.Box.ExpandByPoint(c.Sub(math32.Vector3Scalar(r)))
		ba.Box.ExpandByPoint(c.Add(math32.Vector3Scalar(r)))
		ba.SetCenter(c)
		return
	}
	m.Base.Accept(a)
}

// Panel is a flat rectangular shape.
type Panel struct {
	node.Base

	Width  node.Float
	Height node.Float
}

var PanelType = types.AddType(&types.Type{
	Name:     "github.com/partkit/partkit/kit/testdata.Panel",
	IDName:   "panel",
	Parent:   ShapeType,
	Instance: &Panel{},
})

func (p *Panel) Init() {
	p.Width.Value = 1
	p.Height.Value = 1
	p.AddField(&p.Width, "width")
	p.AddField(&p.Height, "height")
}

func (p *Panel) Accept(a node.Action) {
	if ba, ok := a.(*node.BoundsAction); ok {
		w := p.Width.Value / 2
		h := p.Height.Value / 2
		ba.Box.ExpandByPoint(math32.Vec3(-w, -h, 0))
		ba.Box.ExpandByPoint(math32.Vec3(w, h, 0))
		ba.SetCenter(math32.Vector3{})
		return
	}
	p.Base.Accept(a)
}

// Transform carries a translation applied to what follows it.
type Transform struct {
	node.Base

	Translation node.Vec3
}

var TransformType = types.AddType(&types.Type{
	Name:     "github.com/partkit/partkit/kit/testdata.Transform",
	IDName:   "transform",
	Parent:   node.BaseType,
	Instance: &Transform{},
})

func (t *Transform) Init() {
	t.AddField(&t.Translation, "translation")
}

// FrameKit is a test kit with an interior separator holding an
// optional transform and a shape, a private group, and a public list
// of extra shapes.
//
// The catalog, in entry order; transform names shape as its right
// sibling, so in the child tree it comes before it:
//
//	"this"
//	   "callbackList" [list]
//	   "topSeparator"
//	      "shape"
//	      "transform"
//	      "trim" (private)
//	   "accessories" [list]
type FrameKit struct {
	kit.BaseKit
}

var FrameKitType = types.AddType(&types.Type{
	Name:     "github.com/partkit/partkit/kit/testdata.FrameKit",
	IDName:   "frame-kit",
	Parent:   kit.BaseKitType,
	Instance: &FrameKit{},
})

// PairKit is a test kit with two shape slots of the same type under one
// separator, for exercising assignments across sibling slots.
type PairKit struct {
	kit.BaseKit
}

var PairKitType = types.AddType(&types.Type{
	Name:     "github.com/partkit/partkit/kit/testdata.PairKit",
	IDName:   "pair-kit",
	Parent:   kit.BaseKitType,
	Instance: &PairKit{},
})

// SceneKit is a test kit holding a nested [FrameKit] part and a list
// of extra frames, for exercising paths that cross kit boundaries.
type SceneKit struct {
	kit.BaseKit
}

var SceneKitType = types.AddType(&types.Type{
	Name:     "github.com/partkit/partkit/kit/testdata.SceneKit",
	IDName:   "scene-kit",
	Parent:   kit.BaseKitType,
	Instance: &SceneKit{},
})

func init() {
	kit.AddCatalog(FrameKitType, func(c *kit.Catalog) error {
		err := c.AddEntry(kit.Entry{
			Name:     "topSeparator",
			Type:     node.SeparatorType,
			IsPublic: true,
		}, "this", "")
		if err != nil {
			return err
		}
		err = c.AddEntry(kit.Entry{
			Name:          "shape",
			Type:          ShapeType,
			DefaultType:   MarkerType,
			IsPublic:      true,
			NullByDefault: false,
		}, "topSeparator", "")
		if err != nil {
			return err
		}
		err = c.AddEntry(kit.Entry{
			Name:          "transform",
			Type:          TransformType,
			IsPublic:      true,
			NullByDefault: true,
		}, "topSeparator", "shape")
		if err != nil {
			return err
		}
		err = c.AddEntry(kit.Entry{
			Name:          "trim",
			Type:          node.GroupType,
			IsPublic:      false,
			NullByDefault: true,
		}, "topSeparator", "")
		if err != nil {
			return err
		}
		return c.AddEntry(kit.Entry{
			Name:          "accessories",
			Type:          kit.ListPartType,
			IsList:        true,
			ListItemTypes: []*types.Type{MarkerType, PanelType},
			IsPublic:      true,
			NullByDefault: true,
		}, "this", "")
	})

	kit.AddCatalog(PairKitType, func(c *kit.Catalog) error {
		err := c.AddEntry(kit.Entry{
			Name:     "base",
			Type:     node.SeparatorType,
			IsPublic: true,
		}, "this", "")
		if err != nil {
			return err
		}
		err = c.AddEntry(kit.Entry{
			Name:          "left",
			Type:          MarkerType,
			IsPublic:      true,
			NullByDefault: true,
		}, "base", "")
		if err != nil {
			return err
		}
		return c.AddEntry(kit.Entry{
			Name:          "right",
			Type:          MarkerType,
			IsPublic:      true,
			NullByDefault: true,
		}, "base", "")
	})

	kit.AddCatalog(SceneKitType, func(c *kit.Catalog) error {
		err := c.AddEntry(kit.Entry{
			Name:          "frame",
			Type:          FrameKitType,
			IsPublic:      true,
			NullByDefault: true,
		}, "this", "")
		if err != nil {
			return err
		}
		return c.AddEntry(kit.Entry{
			Name:              "extras",
			Type:              kit.ListPartType,
			IsList:            true,
			ListContainerType: node.SeparatorType,
			ListItemTypes:     []*types.Type{FrameKitType},
			IsPublic:          true,
			NullByDefault:     true,
		}, "this", "")
	})
}
