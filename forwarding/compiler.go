package forwarding

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mcastlab/resilmcast/switchdriver"
	"github.com/mcastlab/resilmcast/topology"
)

// Compiler is the Forwarding Compiler: it owns every switch's flows,
// fast-failover groups, and bucket lists, and drives a switchdriver.Driver.
type Compiler struct {
	net    *topology.Graph
	driver switchdriver.Driver
	log    logrus.FieldLogger

	flows       map[string]map[FlowKey]*flowState
	ffGroups    map[string]map[ffKey]ffLoc
	buckets     map[string]map[uint32][]Bucket
	nextGroupID map[string]uint32
}

// NewCompiler returns a Compiler driving commands for net through driver.
func NewCompiler(net *topology.Graph, driver switchdriver.Driver, log logrus.FieldLogger) *Compiler {
	return &Compiler{
		net:         net,
		driver:      driver,
		log:         log,
		flows:       make(map[string]map[FlowKey]*flowState),
		ffGroups:    make(map[string]map[ffKey]ffLoc),
		buckets:     make(map[string]map[uint32][]Bucket),
		nextGroupID: make(map[string]uint32),
	}
}

func (c *Compiler) flowsOn(sw string) map[FlowKey]*flowState {
	m, ok := c.flows[sw]
	if !ok {
		m = make(map[FlowKey]*flowState)
		c.flows[sw] = m
	}
	return m
}

func (c *Compiler) ffGroupsOn(sw string) map[ffKey]ffLoc {
	m, ok := c.ffGroups[sw]
	if !ok {
		m = make(map[ffKey]ffLoc)
		c.ffGroups[sw] = m
	}
	return m
}

func (c *Compiler) bucketsOn(sw string) map[uint32][]Bucket {
	m, ok := c.buckets[sw]
	if !ok {
		m = make(map[uint32][]Bucket)
		c.buckets[sw] = m
	}
	return m
}

// allocGroupID returns the next 32-bit group id for sw, wrapping at the
// 32-bit boundary (§3, next_group_id). 0 is never issued: it is reserved as
// the "no group" zero value of ffLoc.
func (c *Compiler) allocGroupID(sw string) uint32 {
	if c.nextGroupID[sw] == 0 {
		c.nextGroupID[sw] = 1
	}
	id := c.nextGroupID[sw]
	next := id + 1
	if next == 0 {
		next = 1
	}
	c.nextGroupID[sw] = next
	return id
}

// resolvePort resolves the output port for a destination node reachable
// directly from sw, and whether that destination is a host.
func (c *Compiler) resolvePort(sw, dst string) (port int, isHost bool, err error) {
	e, err := c.net.Edge(sw, dst)
	if err != nil {
		return 0, false, ErrSwitchAbsent
	}
	isHost, err = c.net.IsHost(dst)
	if err != nil {
		return 0, false, ErrSwitchAbsent
	}
	return e.SrcPort, isHost, nil
}

// toDriverActions converts the compiler's tagged action sequence into the
// switchdriver wire-neutral representation. Ports are copied as given;
// callers apply substituteInPort beforehand where InPortAlias is needed.
func toDriverActions(actions []Action) []switchdriver.Action {
	out := make([]switchdriver.Action, len(actions))
	for i, a := range actions {
		switch a.Kind {
		case ActOutput:
			out[i] = switchdriver.Action{Kind: switchdriver.ActionOutput, Port: a.Port}
		case ActOutputGroup:
			out[i] = switchdriver.Action{Kind: switchdriver.ActionOutputGroup, GroupID: a.GroupID}
		case ActPushVlan:
			out[i] = switchdriver.Action{Kind: switchdriver.ActionPushVlan}
		case ActSetVlanVid:
			out[i] = switchdriver.Action{Kind: switchdriver.ActionSetVlanVid, VlanVid: a.VlanVid}
		case ActPopVlan:
			out[i] = switchdriver.Action{Kind: switchdriver.ActionPopVlan}
		}
	}
	return out
}

func substituteInPort(port, inboundPort int) int {
	if inboundPort != noInPort && port == inboundPort {
		return InPortAlias
	}
	return port
}

// installPipeline installs/updates/tears-down tables [0..len(tables)) of a
// flow entry, against the switch's previously installed table count, per
// §4.4.2: ADD when the table index is new, MODIFY_STRICT when it already
// existed, DELETE_STRICT for any table beyond the new pipeline's length
// that a prior, longer pipeline had installed.
func (c *Compiler) installPipeline(ctx context.Context, sw string, key FlowKey, matchInPort bool, inboundPort int, tables map[int][]Action, priorTableCount int) (int, error) {
	match := buildMatch(key, func() int {
		if matchInPort {
			return inboundPort
		}
		return noInPort
	}())
	prio := priority(key, matchInPort)

	maxTable := 0
	for id := range tables {
		if id+1 > maxTable {
			maxTable = id + 1
		}
	}

	for id := 0; id < maxTable; id++ {
		actions, ok := tables[id]
		if !ok {
			continue
		}
		gotoNext := id+1 < maxTable
		driverActions := toDriverActions(actions)
		var err error
		if id < priorTableCount {
			err = c.driver.ModifyFlowStrict(ctx, sw, id, prio, match, driverActions, gotoNext)
		} else {
			err = c.driver.AddFlow(ctx, sw, id, prio, match, driverActions, gotoNext)
		}
		if err != nil {
			return 0, err
		}
	}

	for id := maxTable; id < priorTableCount; id++ {
		if err := c.driver.DeleteFlowStrict(ctx, sw, id, prio, match); err != nil {
			return 0, err
		}
	}

	return maxTable, nil
}
