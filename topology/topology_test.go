package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddNodeAndEdge(t *testing.T) {
	g := NewGraph()

	require.NoError(t, g.AddNode(&Node{ID: "s1", Kind: Switch, DatapathID: 1}))
	require.NoError(t, g.AddNode(&Node{ID: "s2", Kind: Switch, DatapathID: 2}))
	require.ErrorIs(t, g.AddNode(&Node{ID: "s1", Kind: Switch}), ErrNodeExists)
	require.ErrorIs(t, g.AddNode(&Node{ID: ""}), ErrEmptyNodeID)

	require.NoError(t, g.AddEdge("s1", "s2", 1, 2, true))
	assert.True(t, g.HasEdge("s1", "s2"))
	assert.False(t, g.HasEdge("s2", "s1"))

	e, err := g.Edge("s1", "s2")
	require.NoError(t, err)
	assert.Equal(t, 1, e.SrcPort)
	assert.Equal(t, 2, e.DstPort)
	assert.True(t, e.Live)
}

func TestGraph_SetLiveAndMarkSwitchDead(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode(&Node{ID: "s1", Kind: Switch}))
	require.NoError(t, g.AddNode(&Node{ID: "s2", Kind: Switch}))
	require.NoError(t, g.AddNode(&Node{ID: "s3", Kind: Switch}))
	require.NoError(t, g.AddEdge("s1", "s2", 1, 1, true))
	require.NoError(t, g.AddEdge("s2", "s3", 2, 1, true))

	require.NoError(t, g.SetLive("s1", "s2", false))
	e, err := g.Edge("s1", "s2")
	require.NoError(t, err)
	assert.False(t, e.Live)

	g.MarkSwitchDead("s2")
	e1, _ := g.Edge("s1", "s2")
	e2, _ := g.Edge("s2", "s3")
	assert.False(t, e1.Live)
	assert.False(t, e2.Live)
}

func TestGraph_IsHost(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode(&Node{ID: "s1", Kind: Switch}))
	require.NoError(t, g.AddNode(&Node{ID: "hA", Kind: Host, MAC: "aa:aa:aa:aa:aa:aa"}))

	isHost, err := g.IsHost("hA")
	require.NoError(t, err)
	assert.True(t, isHost)

	isHost, err = g.IsHost("s1")
	require.NoError(t, err)
	assert.False(t, isHost)

	_, err = g.IsHost("missing")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestGraph_RemoveNodeRemovesEdges(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode(&Node{ID: "s1", Kind: Switch}))
	require.NoError(t, g.AddNode(&Node{ID: "s2", Kind: Switch}))
	require.NoError(t, g.AddEdge("s1", "s2", 1, 1, true))

	require.NoError(t, g.RemoveNode("s2"))
	assert.False(t, g.HasEdge("s1", "s2"))
	assert.False(t, g.HasNode("s2"))
}

func TestGraph_NodesSorted(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode(&Node{ID: "s3", Kind: Switch}))
	require.NoError(t, g.AddNode(&Node{ID: "s1", Kind: Switch}))
	require.NoError(t, g.AddNode(&Node{ID: "s2", Kind: Switch}))

	assert.Equal(t, []string{"s1", "s2", "s3"}, g.Nodes())
}
