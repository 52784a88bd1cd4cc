package controller

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcastlab/resilmcast/forwarding"
	"github.com/mcastlab/resilmcast/membership"
	"github.com/mcastlab/resilmcast/pathjoin"
	"github.com/mcastlab/resilmcast/switchdriver"
	"github.com/mcastlab/resilmcast/topology"
	"github.com/mcastlab/resilmcast/tree"
)

// linearNet builds s1 -- s2 -- s3 -- hB, every switch link bidirectional.
func linearNet(t *testing.T) *topology.Graph {
	net := topology.NewGraph()
	for _, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, net.AddNode(&topology.Node{ID: id, Kind: topology.Switch}))
	}
	require.NoError(t, net.AddNode(&topology.Node{ID: "hB", Kind: topology.Host, MAC: "bb:bb:bb:bb:bb:bb"}))

	link := func(a, b string, pa, pb int) {
		require.NoError(t, net.AddEdge(a, b, pa, pb, true))
		require.NoError(t, net.AddEdge(b, a, pb, pa, true))
	}
	link("s1", "s2", 1, 1)
	link("s2", "s3", 2, 1)
	require.NoError(t, net.AddEdge("s3", "hB", 2, topology.PortLocal, true))
	return net
}

func newTestController(t *testing.T) (*Controller, *switchdriver.RecordingDriver) {
	net := linearNet(t)
	drv := switchdriver.NewRecordingDriver()
	compiler := forwarding.NewCompiler(net, drv, logrus.New())
	registry := tree.NewRegistry()
	builder := tree.NewTreeBuilder(registry, net, pathjoin.SPT{}, compiler, 0, logrus.New())
	return New(net, registry, builder, compiler, drv, logrus.New()), drv
}

func TestController_DiscoverSource_InstallsPuntFlow(t *testing.T) {
	c, drv := newTestController(t)

	require.NoError(t, c.DiscoverSource(context.Background(), "s1", "230.0.0.1", "10.0.0.1", "01:00:5e:00:00:01", "aa:aa:aa:aa:aa:aa"))

	assert.Equal(t, []string{"10.0.0.1"}, c.KnownSources("230.0.0.1"))
	mac, ok := c.ResolveMAC("10.0.0.1")
	require.True(t, ok)
	assert.Equal(t, "aa:aa:aa:aa:aa:aa", mac)

	var sawPunt bool
	for _, cmd := range drv.Commands() {
		if cmd.Op == "add_flow" && cmd.Priority == forwarding.PriorityLow {
			sawPunt = true
		}
	}
	assert.True(t, sawPunt)
}

func TestController_DiscoverSource_Duplicate(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.DiscoverSource(context.Background(), "s1", "230.0.0.1", "10.0.0.1", "m1", "m2"))
	err := c.DiscoverSource(context.Background(), "s1", "230.0.0.1", "10.0.0.1", "m1", "m2")
	assert.ErrorIs(t, err, ErrSourceAlreadyKnown)
}

func TestController_HandleChange_UnknownGroup(t *testing.T) {
	c, _ := newTestController(t)
	ev := membership.ChangeEvent{Subscriber: "hB", GroupIP: "230.0.0.9", Mode: membership.ModeInclude}
	err := c.HandleChange(context.Background(), ev)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestController_HandleChange_AddsSubscriber(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.DiscoverSource(context.Background(), "s1", "230.0.0.1", "10.0.0.1", "m1", "m2"))

	ev := membership.ChangeEvent{
		Subscriber: "hB",
		GroupIP:    "230.0.0.1",
		SourceIP:   "10.0.0.99", // hB's own address, distinct from the group's source
		Mode:       membership.ModeInclude,
		Sources:    []string{"10.0.0.1"},
	}
	require.NoError(t, c.HandleChange(context.Background(), ev))
}

func TestController_SwitchLeave_MarksEdgesDead(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.SwitchEnter("s9", 9))
	require.NoError(t, c.LinkAdd("s1", "s9", 5, 1))
	c.SwitchLeave("s9")

	e, err := c.net.Edge("s1", "s9")
	require.NoError(t, err)
	assert.False(t, e.Live)
}

func TestController_LinkDelete_MarksDead(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.LinkDelete("s1", "s2"))

	e, err := c.net.Edge("s1", "s2")
	require.NoError(t, err)
	assert.False(t, e.Live)
}

func TestController_HostFound_AttachesHost(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.HostFound("s1", "hZ", "cc:cc:cc:cc:cc:cc", 9))
	assert.True(t, c.net.HasNode("hZ"))
	assert.True(t, c.net.HasEdge("s1", "hZ"))
}

func TestController_RemoveGroup_TearsDownFlowsAndBuckets(t *testing.T) {
	c, drv := newTestController(t)

	require.NoError(t, c.DiscoverSource(context.Background(), "s1", "230.0.0.1", "10.0.0.1", "m1", "m2"))
	require.NoError(t, c.builder.AddSubscriber(context.Background(), "230.0.0.1", "10.0.0.1", "hB"))

	require.NoError(t, c.RemoveGroup(context.Background(), "230.0.0.1", "10.0.0.1"))

	_, ok := c.registry.Lookup("230.0.0.1", "10.0.0.1")
	assert.False(t, ok)
	assert.Empty(t, c.KnownSources("230.0.0.1"))

	var sawDeleteFlow bool
	for _, cmd := range drv.Commands() {
		if cmd.Op == "delete_flow_strict" {
			sawDeleteFlow = true
		}
	}
	assert.True(t, sawDeleteFlow)

	// A second removal finds nothing left to tear down.
	err := c.RemoveGroup(context.Background(), "230.0.0.1", "10.0.0.1")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestController_HandleTopologyEvent_Dispatches(t *testing.T) {
	c, _ := newTestController(t)

	require.NoError(t, c.HandleTopologyEvent(topology.Event{Kind: topology.SwitchEnter, Switch: "s9", DatapathID: 9}))
	assert.True(t, c.net.HasNode("s9"))

	require.NoError(t, c.HandleTopologyEvent(topology.Event{Kind: topology.LinkAdd, From: "s1", To: "s9", SrcPort: 5, DstPort: 1}))
	assert.True(t, c.net.HasEdge("s1", "s9"))

	require.NoError(t, c.HandleTopologyEvent(topology.Event{Kind: topology.LinkDelete, From: "s1", To: "s9"}))
	e, err := c.net.Edge("s1", "s9")
	require.NoError(t, err)
	assert.False(t, e.Live)

	require.NoError(t, c.HandleTopologyEvent(topology.Event{Kind: topology.HostFound, Switch: "s1", Host: "hZ", HostMAC: "cc:cc:cc:cc:cc:cc", SrcPort: 9}))
	assert.True(t, c.net.HasNode("hZ"))

	require.NoError(t, c.HandleTopologyEvent(topology.Event{Kind: topology.SwitchLeave, Switch: "s9"}))
}
