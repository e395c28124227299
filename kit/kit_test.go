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

func TestKitDefaultParts(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()

	// shape is not null by default, so it and its ancestor separator
	// exist right away, flagged default
	sepNum := fk.Catalog().IndexOf("topSeparator")
	shapeNum := fk.Catalog().IndexOf("shape")
	require.NotNil(t, fk.PartAt(sepNum))
	require.NotNil(t, fk.PartAt(shapeNum))
	assert.True(t, fk.PartIsDefault(sepNum))
	assert.True(t, fk.PartIsDefault(shapeNum))

	// null-by-default slots stay empty
	assert.Nil(t, fk.PartAt(fk.Catalog().IndexOf("transform")))
	assert.Nil(t, fk.PartAt(fk.Catalog().IndexOf("callbackList")))

	// the default shape is spliced under the separator
	sep := fk.PartAt(sepNum)
	require.Equal(t, 1, sep.ChildList().Len())
	assert.Equal(t, fk.PartAt(shapeNum), sep.ChildList().Child(0))

	// the kit's own children hold just the separator
	assert.Equal(t, 1, fk.ChildList().Len())
}

func TestPartAtZeroIsKit(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	assert.Equal(t, node.Node(fk), fk.PartAt(0))
}

func TestPartLazyBuild(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	tr, err := fk.Part("transform")
	require.NoError(t, err)
	require.NotNil(t, tr)
	_, ok := tr.(*testdata.Transform)
	assert.True(t, ok)

	// built lazily, still default content
	assert.True(t, fk.PartIsDefault(fk.Catalog().IndexOf("transform")))

	// second retrieval returns the same node
	tr2, err := fk.Part("transform")
	require.NoError(t, err)
	assert.Equal(t, tr, tr2)
}

func TestPartSiblingOrder(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	tr, err := fk.Part("transform")
	require.NoError(t, err)

	// transform names shape as right sibling, so it is spliced before
	// the already-present default shape
	sep := fk.PartAt(fk.Catalog().IndexOf("topSeparator"))
	require.Equal(t, 2, sep.ChildList().Len())
	assert.Equal(t, tr, sep.ChildList().Child(0))
}

func TestSetPartTypeCheck(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	err := fk.SetPart("shape", node.New[*node.Group]())
	assert.Error(t, err)

	p := node.New[*testdata.Panel]()
	require.NoError(t, fk.SetPart("shape", p))
	got, err := fk.Part("shape")
	require.NoError(t, err)
	assert.Equal(t, node.Node(p), got)
	assert.False(t, fk.PartIsDefault(fk.Catalog().IndexOf("shape")))
}

func TestSetPartReplacesInPlace(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	_, err := fk.Part("transform")
	require.NoError(t, err)

	p := node.New[*testdata.Panel]()
	require.NoError(t, fk.SetPart("shape", p))

	sep := fk.PartAt(fk.Catalog().IndexOf("topSeparator"))
	require.Equal(t, 2, sep.ChildList().Len())
	assert.Equal(t, node.Node(p), sep.ChildList().Child(1))
}

func TestSetPartNilRemoves(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	require.NoError(t, fk.SetPart("shape", nil))

	shapeNum := fk.Catalog().IndexOf("shape")
	assert.Nil(t, fk.PartAt(shapeNum))
	assert.True(t, fk.PartIsDefault(shapeNum))

	sep := fk.PartAt(fk.Catalog().IndexOf("topSeparator"))
	assert.Equal(t, 0, sep.ChildList().Len())
}

func TestSetPartChecks(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()

	// non-leaf parts cannot be set through the public operation
	err := fk.SetPart("topSeparator", node.New[*node.Separator]())
	assert.Error(t, err)

	// private parts are not reachable
	err = fk.SetPart("trim", node.New[*node.Group]())
	assert.Error(t, err)

	// both work through the unchecked operation
	require.NoError(t, fk.SetAnyPart("trim", node.New[*node.Group](), true))
	p, err := fk.AnyPart("trim", false, true, false)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestPartChecks(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	_, err := fk.Part("topSeparator")
	assert.Error(t, err)
	_, err = fk.Part("trim")
	assert.Error(t, err)
	_, err = fk.Part("nothere")
	assert.NoError(t, err) // absent, not an error

	p, err := fk.AnyPart("topSeparator", true, false, true)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestSetPartAliasedNode(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	m := node.New[*testdata.Marker]()
	require.NoError(t, fk.SetPart("shape", m))
	require.NoError(t, fk.SetPart("shape", m))

	sep := fk.PartAt(fk.Catalog().IndexOf("topSeparator"))
	assert.Equal(t, 1, sep.ChildList().Len())
}

func TestSetPartRejectsAliasedSibling(t *testing.T) {
	pk := node.New[*testdata.PairKit]()
	m := node.New[*testdata.Marker]()
	require.NoError(t, pk.SetPart("left", m))

	// the node already serves as the left part; a second role under the
	// same parent is refused and the tree keeps two distinct children
	err := pk.SetPart("right", m)
	require.Error(t, err)

	leftNum := pk.Catalog().IndexOf("left")
	rightNum := pk.Catalog().IndexOf("right")
	assert.Equal(t, node.Node(m), pk.PartAt(leftNum))
	assert.NotSame(t, node.Node(m), pk.PartAt(rightNum))
	assert.True(t, pk.PartIsDefault(rightNum))

	base := pk.PartAt(pk.Catalog().IndexOf("base"))
	assert.Equal(t, 2, base.ChildList().Len())
}

func TestTransitiveAncestorBuild(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	require.NoError(t, fk.SetPart("shape", nil))
	require.NoError(t, fk.SetAnyPart("topSeparator", nil, true))
	assert.Equal(t, 0, fk.ChildList().Len())

	// setting a leaf rebuilds the missing interior above it
	require.NoError(t, fk.SetPart("transform", node.New[*testdata.Transform]()))
	sepNum := fk.Catalog().IndexOf("topSeparator")
	sep := fk.PartAt(sepNum)
	require.NotNil(t, sep)
	assert.Equal(t, 1, sep.ChildList().Len())
	assert.Equal(t, 1, fk.ChildList().Len())
}

func TestCallbackListPart(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	p, err := fk.Part("callbackList[0]")
	require.NoError(t, err)
	require.NotNil(t, p)
	_, ok := p.(*node.Callback)
	assert.True(t, ok)
}

func TestKitCallbackTraversal(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	var visited []node.Node
	ca := &node.CallbackAction{Func: func(n node.Node) bool {
		visited = append(visited, n)
		return node.Continue
	}}
	ca.Apply(fk)
	sep := fk.PartAt(fk.Catalog().IndexOf("topSeparator"))
	shape := fk.PartAt(fk.Catalog().IndexOf("shape"))
	assert.Equal(t, []node.Node{fk, sep, shape}, visited)
}

func TestKitSearchNeedsOptIn(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()

	sa := &node.SearchAction{Type: testdata.MarkerType}
	assert.Nil(t, sa.Apply(fk))

	sa = &node.SearchAction{Type: testdata.MarkerType, SearchChildren: true}
	assert.Equal(t, fk.PartAt(fk.Catalog().IndexOf("shape")), sa.Apply(fk))

	// the kit itself is found without entering children
	sa = &node.SearchAction{Type: testdata.FrameKitType}
	assert.Equal(t, node.Node(fk), sa.Apply(fk))
}

func TestKitBoundsAveraging(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	m, err := fk.Part("shape")
	require.NoError(t, err)
	m.(*testdata.Marker).Center.Set(math32.Vec3(2, 0, 0))

	lp, err := fk.Part("accessories")
	require.NoError(t, err)
	m2 := node.New[*testdata.Marker]()
	m2.Center.Set(math32.Vec3(0, 4, 0))
	require.NoError(t, lp.(*kit.ListPart).AddChild(m2))

	ba := node.NewBoundsAction()
	ba.Apply(fk)
	assert.True(t, ba.IsCenterSet())
	assert.Equal(t, math32.Vec3(1, 2, 0), ba.Center())
	assert.False(t, ba.Box.IsEmpty())
}
