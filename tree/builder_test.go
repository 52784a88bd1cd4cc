package tree

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcastlab/resilmcast/forwarding"
	"github.com/mcastlab/resilmcast/pathjoin"
	"github.com/mcastlab/resilmcast/switchdriver"
	"github.com/mcastlab/resilmcast/topology"
)

// diamondNet builds s1 (root) -- {s2,s3} -- s4 -- hv, every switch link
// bidirectional, so the join strategies always have a redundant alternative.
func diamondNet(t *testing.T) *topology.Graph {
	net := topology.NewGraph()
	for _, id := range []string{"s1", "s2", "s3", "s4"} {
		require.NoError(t, net.AddNode(&topology.Node{ID: id, Kind: topology.Switch}))
	}
	require.NoError(t, net.AddNode(&topology.Node{ID: "hv", Kind: topology.Host, MAC: "aa:aa:aa:aa:aa:aa"}))

	link := func(a, b string, pa, pb int) {
		require.NoError(t, net.AddEdge(a, b, pa, pb, true))
		require.NoError(t, net.AddEdge(b, a, pb, pa, true))
	}
	link("s1", "s2", 1, 1)
	link("s1", "s3", 2, 1)
	link("s2", "s4", 2, 1)
	link("s3", "s4", 2, 2)
	require.NoError(t, net.AddEdge("s4", "hv", 3, topology.PortLocal, true))

	return net
}

func newTestBuilder(t *testing.T, f int) (*TreeBuilder, *Registry, *switchdriver.RecordingDriver) {
	net := diamondNet(t)
	drv := switchdriver.NewRecordingDriver()
	compiler := forwarding.NewCompiler(net, drv, logrus.New())
	registry := NewRegistry()
	tb := NewTreeBuilder(registry, net, pathjoin.SPT{}, compiler, f, logrus.New())
	return tb, registry, drv
}

func TestTreeBuilder_AddSubscriber_InstallsPrimaryPath(t *testing.T) {
	tb, registry, drv := newTestBuilder(t, 1)
	handle, created := registry.Create("230.0.0.1", "10.0.0.1", "s1")
	require.True(t, created)

	require.NoError(t, tb.AddSubscriber(context.Background(), "230.0.0.1", "10.0.0.1", "hv"))

	primary, err := registry.Get(handle)
	require.NoError(t, err)
	assert.True(t, primary.HasNode("hv"))
	assert.True(t, primary.HasNode("s4"))

	var sawAddFlow bool
	for _, cmd := range drv.Commands() {
		if cmd.Op == "add_flow" {
			sawAddFlow = true
		}
	}
	assert.True(t, sawAddFlow)
}

func TestTreeBuilder_AddSubscriber_AllocatesBackups(t *testing.T) {
	tb, registry, _ := newTestBuilder(t, 1)
	handle, _ := registry.Create("230.0.0.1", "10.0.0.1", "s1")

	require.NoError(t, tb.AddSubscriber(context.Background(), "230.0.0.1", "10.0.0.1", "hv"))

	primary, err := registry.Get(handle)
	require.NoError(t, err)

	path := primary.PathFromRoot("hv")
	require.True(t, len(path) >= 2)

	var sawBackup bool
	for i := 1; i < len(path); i++ {
		if primary.Backup(path[i-1], path[i]) != 0 {
			sawBackup = true
		}
	}
	assert.True(t, sawBackup)
}

func TestTreeBuilder_AddSubscriber_Idempotent(t *testing.T) {
	tb, registry, _ := newTestBuilder(t, 1)
	registry.Create("230.0.0.1", "10.0.0.1", "s1")

	require.NoError(t, tb.AddSubscriber(context.Background(), "230.0.0.1", "10.0.0.1", "hv"))
	err := tb.AddSubscriber(context.Background(), "230.0.0.1", "10.0.0.1", "hv")
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestTreeBuilder_AddSubscriber_UnknownGroup(t *testing.T) {
	tb, _, _ := newTestBuilder(t, 1)
	err := tb.AddSubscriber(context.Background(), "230.0.0.9", "10.0.0.9", "hv")
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestTreeBuilder_RemoveSubscriber_PrunesPrimary(t *testing.T) {
	tb, registry, _ := newTestBuilder(t, 1)
	handle, _ := registry.Create("230.0.0.1", "10.0.0.1", "s1")
	require.NoError(t, tb.AddSubscriber(context.Background(), "230.0.0.1", "10.0.0.1", "hv"))

	require.NoError(t, tb.RemoveSubscriber(context.Background(), "230.0.0.1", "10.0.0.1", "hv"))

	primary, err := registry.Get(handle)
	require.NoError(t, err)
	assert.False(t, primary.HasNode("hv"))

	// The sole subscriber's whole forward-only chain collapses back to the
	// root: s4 (the only route to hv from either branch) loses both its
	// node bookkeeping and the now-dangling edge pointing at the pruned
	// child, so OutDegree walks all the way back up to s1 rather than
	// stalling on a stale edge.
	assert.False(t, primary.HasNode("s4"))
	assert.Equal(t, 0, primary.OutDegree("s1"))
}

func TestTreeBuilder_RemoveSubscriber_RootIsNoop(t *testing.T) {
	tb, registry, _ := newTestBuilder(t, 1)
	registry.Create("230.0.0.1", "10.0.0.1", "s1")
	require.NoError(t, tb.AddSubscriber(context.Background(), "230.0.0.1", "10.0.0.1", "hv"))

	assert.NoError(t, tb.RemoveSubscriber(context.Background(), "230.0.0.1", "10.0.0.1", "s1"))
}

func TestTreeBuilder_Repair_NoopLogsOnly(t *testing.T) {
	tb, _, _ := newTestBuilder(t, 1)
	tb.Repair([][2]string{{"s2", "s4"}})
}
