// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partkit/partkit/kit"
	"github.com/partkit/partkit/kit/testdata"
	"github.com/partkit/partkit/math32"
	"github.com/partkit/partkit/node"
)

func cloneFrame(t *testing.T, fk *testdata.FrameKit) *testdata.FrameKit {
	t.Helper()
	c, ok := fk.Clone().(*testdata.FrameKit)
	require.True(t, ok)
	return c
}

func TestCopyDefaultKit(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	c := cloneFrame(t, fk)

	sepNum := fk.Catalog().IndexOf("topSeparator")
	shapeNum := fk.Catalog().IndexOf("shape")

	require.NotNil(t, c.PartAt(sepNum))
	require.NotNil(t, c.PartAt(shapeNum))
	assert.NotSame(t, fk.PartAt(sepNum), c.PartAt(sepNum))
	assert.NotSame(t, fk.PartAt(shapeNum), c.PartAt(shapeNum))

	// the copied shape is the very node inside the copied separator
	csep := c.PartAt(sepNum)
	require.Equal(t, 1, csep.ChildList().Len())
	assert.Equal(t, c.PartAt(shapeNum), csep.ChildList().Child(0))

	// default flags survive the copy
	assert.True(t, c.PartIsDefault(sepNum))
	assert.True(t, c.PartIsDefault(shapeNum))
}

func TestCopyKeepsFieldValues(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	require.NoError(t, fk.Set(`shape { radius 6 center 1 2 3 }`))
	c := cloneFrame(t, fk)

	m, err := c.Part("shape")
	require.NoError(t, err)
	assert.Equal(t, float32(6), m.(*testdata.Marker).Radius.Value)
	assert.Equal(t, math32.Vec3(1, 2, 3), m.(*testdata.Marker).Center.Value)
	assert.False(t, m.(*testdata.Marker).Radius.IsDefault())
}

func TestCopyExplicitPartStaysExplicit(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	p := node.New[*testdata.Panel]()
	require.NoError(t, fk.SetPart("shape", p))
	c := cloneFrame(t, fk)

	shapeNum := fk.Catalog().IndexOf("shape")
	assert.False(t, c.PartIsDefault(shapeNum))
	cp := c.PartAt(shapeNum)
	require.NotNil(t, cp)
	_, ok := cp.(*testdata.Panel)
	assert.True(t, ok)
	assert.NotSame(t, node.Node(p), cp)
}

func TestCopyEmptySlotsStayEmpty(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	require.NoError(t, fk.SetPart("shape", nil))
	c := cloneFrame(t, fk)

	assert.Nil(t, c.PartAt(fk.Catalog().IndexOf("shape")))
	assert.Nil(t, c.PartAt(fk.Catalog().IndexOf("transform")))
}

func TestCopySiblingOrder(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	tr := node.New[*testdata.Transform]()
	tr.Translation.Set(math32.Vec3(5, 0, 0))
	require.NoError(t, fk.SetPart("transform", tr))
	c := cloneFrame(t, fk)

	csep := c.PartAt(fk.Catalog().IndexOf("topSeparator"))
	require.Equal(t, 2, csep.ChildList().Len())
	ctr := c.PartAt(fk.Catalog().IndexOf("transform"))
	assert.Equal(t, ctr, csep.ChildList().Child(0))
	assert.Equal(t, c.PartAt(fk.Catalog().IndexOf("shape")), csep.ChildList().Child(1))
	assert.Equal(t, float32(5), ctr.(*testdata.Transform).Translation.Value.X)
}

func TestCopyListPart(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	lp, err := fk.Part("accessories")
	require.NoError(t, err)
	m := node.New[*testdata.Marker]()
	m.Radius.Set(2)
	require.NoError(t, lp.(*kit.ListPart).AddChild(m))
	c := cloneFrame(t, fk)

	clp, err := c.AnyPart("accessories", false, true, true)
	require.NoError(t, err)
	require.NotNil(t, clp)
	cl := clp.(*kit.ListPart)
	require.Equal(t, 1, cl.NumChildren())
	assert.NotSame(t, node.Node(m), cl.Child(0))
	assert.Equal(t, float32(2), cl.Child(0).(*testdata.Marker).Radius.Value)

	// the copied list still enforces its item types
	assert.Error(t, cl.AddChild(node.New[*testdata.Transform]()))
}

func TestCopyNestedKit(t *testing.T) {
	sk := node.New[*testdata.SceneKit]()
	require.NoError(t, sk.Set(`frame.shape { radius 3 }`))
	c, ok := sk.Clone().(*testdata.SceneKit)
	require.True(t, ok)

	cm, err := c.Part("frame.shape")
	require.NoError(t, err)
	assert.Equal(t, float32(3), cm.(*testdata.Marker).Radius.Value)

	sm, err := sk.Part("frame.shape")
	require.NoError(t, err)
	assert.NotSame(t, sm, cm)

	// the copied frame is wired into the copy's own tree
	cf, err := c.Part("frame")
	require.NoError(t, err)
	assert.Equal(t, node.Node(cf), c.ChildList().Child(0))
}

func TestCopySharedSourceUnchanged(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	c := cloneFrame(t, fk)
	require.NoError(t, c.Set(`shape { radius 9 }`))

	m, err := fk.Part("shape")
	require.NoError(t, err)
	assert.True(t, m.(*testdata.Marker).Radius.IsDefault())
}
