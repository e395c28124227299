// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partkit/partkit/kit"
	"github.com/partkit/partkit/kit/testdata"
	"github.com/partkit/partkit/math32"
	"github.com/partkit/partkit/node"
)

func TestWriteDefaultKit(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	out := string(node.WriteNode(fk))

	// the default shape writes nothing of its own, but the separator
	// above it holds a child, so both emit: the separator with its
	// content and the shape slot as a shared reference
	want := `FrameKit {
  shape DEF +0 Marker {
  }
  topSeparator Separator {
    USE +0
  }
}
`
	assert.Equal(t, want, out)
}

func TestWriteEmptiedKit(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	require.NoError(t, fk.SetPart("shape", nil))
	out := string(node.WriteNode(fk))

	// the separator is empty and default again, so only the cleared
	// shape slot emits; it is not null by default, so the emptiness is
	// stated explicitly
	assert.Equal(t, "FrameKit {\n  shape NULL\n}\n", out)
}

func TestWriteSuppressesEmptyList(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	_, err := fk.Part("accessories")
	require.NoError(t, err)
	out := string(node.WriteNode(fk))
	assert.NotContains(t, out, "accessories")
}

func TestWriteListWithItems(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	require.NoError(t, fk.SetPart("shape", nil))
	lp, err := fk.Part("accessories")
	require.NoError(t, err)
	m := node.New[*testdata.Marker]()
	m.Radius.Set(3)
	require.NoError(t, lp.(*kit.ListPart).AddChild(m))

	out := string(node.WriteNode(fk))
	assert.Contains(t, out, "accessories ListPart {")
	assert.Contains(t, out, "containerNode Group {")
	assert.Contains(t, out, "radius 3")
}

func TestWriteSetFields(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	require.NoError(t, fk.Set(`shape { radius 2.5 }`))
	out := string(node.WriteNode(fk))
	assert.Contains(t, out, "radius 2.5")
}

func TestWriteTransform(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	tr := node.New[*testdata.Transform]()
	tr.Translation.Set(math32.Vec3(1, 2, 3))
	require.NoError(t, fk.SetPart("transform", tr))
	out := string(node.WriteNode(fk))

	want := `FrameKit {
  shape DEF +0 Marker {
  }
  transform DEF +1 Transform {
    translation 1 2 3
  }
  topSeparator Separator {
    USE +1
    USE +0
  }
}
`
	assert.Equal(t, want, out)
}

func TestWritePrivatePartNeverEmits(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	g := node.New[*node.Group]()
	g.AddChild(node.New[*node.Separator]())
	require.NoError(t, fk.SetAnyPart("trim", g, true))
	out := string(node.WriteNode(fk))
	assert.NotContains(t, out, "trim")
}

func TestWriteNestedKit(t *testing.T) {
	sk := node.New[*testdata.SceneKit]()
	require.NoError(t, sk.Set(`frame.shape { radius 8 }`))
	out := string(node.WriteNode(sk))
	assert.True(t, strings.HasPrefix(out, "SceneKit {\n  frame FrameKit {\n"))
	assert.Contains(t, out, "radius 8")
}

func TestWriteNestedKitClearedParts(t *testing.T) {
	sk := node.New[*testdata.SceneKit]()
	_, err := sk.Part("frame.shape")
	require.NoError(t, err)
	require.NoError(t, sk.SetPart("frame.shape", nil))
	require.NoError(t, sk.SetAnyPart("frame.topSeparator", nil, true))

	// the frame slot itself is still default-flagged, but the cleared
	// slots inside it must write, which forces the frame block out too
	out := string(node.WriteNode(sk))
	want := `SceneKit {
  frame FrameKit {
    shape NULL
    topSeparator NULL
  }
}
`
	assert.Equal(t, want, out)
}

func TestWriteCountIdempotent(t *testing.T) {
	fk := node.New[*testdata.FrameKit]()
	require.NoError(t, fk.Set(`shape { radius 2 }`))
	first := string(node.WriteNode(fk))
	second := string(node.WriteNode(fk))
	assert.Equal(t, first, second)

	// writing does not disturb the slot default flags
	assert.True(t, fk.PartIsDefault(fk.Catalog().IndexOf("topSeparator")))
}
