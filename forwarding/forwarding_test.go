package forwarding

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcastlab/resilmcast/switchdriver"
	"github.com/mcastlab/resilmcast/topology"
)

func newTestNet(t *testing.T) *topology.Graph {
	net := topology.NewGraph()
	require.NoError(t, net.AddNode(&topology.Node{ID: "s1", Kind: topology.Switch}))
	require.NoError(t, net.AddNode(&topology.Node{ID: "s2", Kind: topology.Switch}))
	require.NoError(t, net.AddNode(&topology.Node{ID: "s3", Kind: topology.Switch}))
	require.NoError(t, net.AddNode(&topology.Node{ID: "hB", Kind: topology.Host, MAC: "bb:bb:bb:bb:bb:bb"}))
	require.NoError(t, net.AddEdge("s1", "s2", 1, 1, true))
	require.NoError(t, net.AddEdge("s1", "s3", 2, 1, true))
	require.NoError(t, net.AddEdge("s3", "s2", 2, 2, true))
	require.NoError(t, net.AddEdge("s2", "hB", 3, topology.PortLocal, true))
	return net
}

func TestCompiler_AddFlow_DirectOutput(t *testing.T) {
	net := newTestNet(t)
	drv := switchdriver.NewRecordingDriver()
	c := NewCompiler(net, drv, logrus.New())

	key := FlowKey{GroupIP: "230.0.0.1", SourceIP: "10.0.0.1"}
	require.NoError(t, c.AddFlow(context.Background(), "s1", key, []string{"s2"}, false))

	cmds := drv.Commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, "add_flow", cmds[0].Op)
	assert.Equal(t, TableDirect, cmds[0].TableID)
}

func TestCompiler_AddFlow_NoopWithoutChange(t *testing.T) {
	net := newTestNet(t)
	drv := switchdriver.NewRecordingDriver()
	c := NewCompiler(net, drv, logrus.New())

	key := FlowKey{GroupIP: "230.0.0.1", SourceIP: "10.0.0.1"}
	require.NoError(t, c.AddFlow(context.Background(), "s1", key, []string{"s2"}, false))
	require.NoError(t, c.AddFlow(context.Background(), "s1", key, []string{"s2"}, false))

	assert.Len(t, drv.Commands(), 1)
}

func TestCompiler_AddBackup_FirstLevelAllocatesGroup(t *testing.T) {
	net := newTestNet(t)
	drv := switchdriver.NewRecordingDriver()
	c := NewCompiler(net, drv, logrus.New())

	origin := FlowKey{GroupIP: "230.0.0.1", SourceIP: "10.0.0.1"}
	require.NoError(t, c.AddFlow(context.Background(), "s1", origin, []string{"s2"}, false))
	require.NoError(t, c.AddBackup(context.Background(), "s1", origin, "s2", "s3", 1, false))

	// The group is added with the base bucket alone, then modified (Case A)
	// to append the tag-1 backup bucket.
	var sawGroup, sawBackupBucket bool
	for _, cmd := range drv.Commands() {
		if cmd.Op == "add_group" {
			sawGroup = true
			require.Len(t, cmd.Buckets, 1)
		}
		if cmd.Op == "modify_group" {
			sawBackupBucket = true
			require.Len(t, cmd.Buckets, 2)
		}
	}
	assert.True(t, sawGroup)
	assert.True(t, sawBackupBucket)
}

func TestCompiler_AddBackup_NestedCaseC_PushesVlanPastDroppedPrefix(t *testing.T) {
	net := newTestNet(t)
	require.NoError(t, net.AddNode(&topology.Node{ID: "s4", Kind: topology.Switch}))
	require.NoError(t, net.AddEdge("s1", "s4", 4, 1, true))

	drv := switchdriver.NewRecordingDriver()
	c := NewCompiler(net, drv, logrus.New())

	origin := FlowKey{GroupIP: "230.0.0.1", SourceIP: "10.0.0.1"}
	require.NoError(t, c.AddFlow(context.Background(), "s1", origin, []string{"s2"}, false))

	// First level (Case A): s1 -> s2 direct, s1 -> s3 as tag-1 backup.
	require.NoError(t, c.AddBackup(context.Background(), "s1", origin, "s2", "s3", 1, false))

	// Second backup for the same output (Case C, needsMore): this new backup
	// itself needs a deeper nested level, so the existing [base, tag-1]
	// prefix clones as drop markers and a tag-2 bucket to s4 is appended.
	require.NoError(t, c.AddBackup(context.Background(), "s1", origin, "s2", "s4", 2, true))

	cmds := drv.Commands()
	var last *switchdriver.Command
	for i := range cmds {
		if cmds[i].Op == "add_group" || cmds[i].Op == "modify_group" {
			last = &cmds[i]
		}
	}
	require.NotNil(t, last)
	require.Len(t, last.Buckets, 3)

	// Both cloned prefix buckets are drop markers: no actions at all, even
	// though the second one (tag 1) nominally carries a VLAN tag.
	assert.Empty(t, last.Buckets[0].Actions)
	assert.Empty(t, last.Buckets[1].Actions)

	// The new tail bucket reaches the wire still untagged (nothing upstream
	// of it ever executed), so it must push a VLAN header before setting
	// the tag, then output.
	assert.Equal(t, []switchdriver.Action{
		{Kind: switchdriver.ActionPushVlan},
		{Kind: switchdriver.ActionSetVlanVid, VlanVid: vlanBase | 2},
		{Kind: switchdriver.ActionOutput, Port: 4},
	}, last.Buckets[2].Actions)
}

func TestCompiler_RemoveAllFlows(t *testing.T) {
	net := newTestNet(t)
	drv := switchdriver.NewRecordingDriver()
	c := NewCompiler(net, drv, logrus.New())

	key := FlowKey{GroupIP: "230.0.0.1", SourceIP: "10.0.0.1"}
	require.NoError(t, c.AddFlow(context.Background(), "s1", key, []string{"s2"}, false))
	require.NoError(t, c.RemoveAllFlows(context.Background(), "s1", key))

	_, ok := c.flows["s1"][key]
	assert.False(t, ok)
}
