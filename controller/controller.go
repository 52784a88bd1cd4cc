package controller

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mcastlab/resilmcast/forwarding"
	"github.com/mcastlab/resilmcast/membership"
	"github.com/mcastlab/resilmcast/switchdriver"
	"github.com/mcastlab/resilmcast/topology"
	"github.com/mcastlab/resilmcast/tree"
)

// Controller is the Controller Façade (§2, §5): the single actor that
// serializes every Tree Registry / forwarding-state mutation behind mu,
// wires topology and membership events into the Tree Builder, and tracks
// the group/source discovery table and ip_2_mac resolution cache.
type Controller struct {
	mu sync.Mutex

	net      *topology.Graph
	registry *tree.Registry
	builder  *tree.TreeBuilder
	compiler *forwarding.Compiler
	driver   switchdriver.Driver
	log      logrus.FieldLogger

	groups map[string]map[string]bool // group_ip -> set of known source_ip
	ip2mac map[string]string          // ip -> mac, populated as addresses are observed
}

// New returns a Controller orchestrating builder/compiler/driver against
// net.
func New(net *topology.Graph, registry *tree.Registry, builder *tree.TreeBuilder, compiler *forwarding.Compiler, driver switchdriver.Driver, log logrus.FieldLogger) *Controller {
	return &Controller{
		net:      net,
		registry: registry,
		builder:  builder,
		compiler: compiler,
		driver:   driver,
		log:      log,
		groups:   make(map[string]map[string]bool),
		ip2mac:   make(map[string]string),
	}
}

func (c *Controller) opLogger(op string) logrus.FieldLogger {
	return c.log.WithFields(logrus.Fields{"op": op, "op_id": uuid.NewString()})
}

// KnownSources returns the sorted set of sources currently tracked for
// groupIP.
func (c *Controller) KnownSources(groupIP string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.knownSourcesLocked(groupIP)
}

func (c *Controller) knownSourcesLocked(groupIP string) []string {
	srcs := c.groups[groupIP]
	out := make([]string, 0, len(srcs))
	for s := range srcs {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// ResolveMAC returns the MAC address last observed for ip, if any.
func (c *Controller) ResolveMAC(ip string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mac, ok := c.ip2mac[ip]
	return mac, ok
}

// DiscoverSource registers a newly observed (groupIP, sourceIP) pair first
// seen on switchID's data plane: it creates the primary tree, records both
// addresses' MACs, and installs a low-priority controller-punt flow so
// further data-plane packets of this flow stop reaching the controller
// (§6, "observing the first data packet").
func (c *Controller) DiscoverSource(ctx context.Context, switchID, groupIP, sourceIP, groupMAC, sourceMAC string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := c.opLogger("discover_source").WithFields(logrus.Fields{"group_ip": groupIP, "source_ip": sourceIP, "switch": switchID})

	srcs, ok := c.groups[groupIP]
	if !ok {
		srcs = make(map[string]bool)
		c.groups[groupIP] = srcs
	}
	if srcs[sourceIP] {
		log.Warn("discover_source: source already known")
		return ErrSourceAlreadyKnown
	}

	if _, created := c.registry.Create(groupIP, sourceIP, switchID); !created {
		log.Warn("discover_source: primary tree already existed")
	}
	srcs[sourceIP] = true
	c.ip2mac[groupIP] = groupMAC
	c.ip2mac[sourceIP] = sourceMAC

	match := switchdriver.FieldPredicate{EthDst: groupMAC, EthSrc: sourceMAC}
	if err := c.driver.AddFlow(ctx, switchID, forwarding.TableDirect, forwarding.PriorityLow, match, nil, false); err != nil {
		log.WithError(err).Error("discover_source: failed to install controller-punt flow")
		return err
	}

	log.Info("discover_source: new group/source pair registered")
	return nil
}

// RemoveGroup tears down (group, source) entirely: every flow and
// fast-failover bucket belonging to the primary delivery tree and its full
// backup hierarchy, deepest backup first, then discards the tree state.
func (c *Controller) RemoveGroup(ctx context.Context, group, source string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := c.opLogger("remove_group").WithFields(logrus.Fields{"group_ip": group, "source_ip": source})

	handle, ok := c.registry.Lookup(group, source)
	if !ok {
		log.Warn("remove_group: unknown group")
		return ErrGroupNotFound
	}

	for _, h := range c.registry.WalkPostOrder(handle) {
		t, err := c.registry.Get(h)
		if err != nil {
			return err
		}
		key := forwarding.FlowKey{GroupIP: group, SourceIP: source, Tag: t.Tag(), InboundSwitch: t.PredecessorSwitch()}

		if !t.IsPrimary() {
			parent, err := c.registry.Get(t.Parent())
			if err != nil {
				return err
			}
			origin := forwarding.FlowKey{GroupIP: group, SourceIP: source, Tag: parent.Tag(), InboundSwitch: parent.PredecessorSwitch()}
			for _, child := range t.Children(t.Root()) {
				if err := c.compiler.RemoveBackup(ctx, t.Root(), origin, child, t.Tag()); err != nil &&
					err != forwarding.ErrNoSuchGroup {
					return err
				}
			}
		}

		for _, node := range t.Nodes() {
			if node == t.Root() && !t.IsPrimary() {
				continue // the root's own outgoing edges were just torn down above
			}
			if t.OutDegree(node) == 0 {
				continue
			}
			if err := c.compiler.RemoveAllFlows(ctx, node, key); err != nil &&
				err != forwarding.ErrNoSuchFlow {
				return err
			}
		}
	}

	if err := c.registry.Remove(group, source); err != nil {
		return err
	}

	if srcs, ok := c.groups[group]; ok {
		delete(srcs, source)
		if len(srcs) == 0 {
			delete(c.groups, group)
		}
	}
	log.Info("remove_group: torn down")
	return nil
}

// HandleChange reacts to one membership.ChangeEvent, expanding it via
// membership.Resolve against the group's currently known sources and
// driving the resulting add/remove actions through the Tree Builder.
func (c *Controller) HandleChange(ctx context.Context, ev membership.ChangeEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := c.opLogger("handle_change").WithFields(logrus.Fields{"group_ip": ev.GroupIP, "subscriber": ev.Subscriber})

	known := c.knownSourcesLocked(ev.GroupIP)
	if len(known) == 0 {
		log.Warn("handle_change: group does not exist (yet)")
		return ErrGroupNotFound
	}

	for _, action := range membership.Resolve(ev, known) {
		actionLog := log.WithField("source_ip", action.SourceIP)
		var err error
		switch action.Kind {
		case membership.ActionAdd:
			err = c.builder.AddSubscriber(ctx, action.GroupIP, action.SourceIP, action.Subscriber)
		case membership.ActionRemove:
			err = c.builder.RemoveSubscriber(ctx, action.GroupIP, action.SourceIP, action.Subscriber)
		}
		if err != nil && err != tree.ErrDuplicateRequest && err != tree.ErrUnknownGroup {
			actionLog.WithError(err).Error("handle_change: tree builder call failed")
			return err
		}
	}
	return nil
}
